package handler

import (
	"net/http"

	"github.com/glasspack/api/internal/catalog"
	"github.com/glasspack/api/internal/enum"
	"github.com/go-chi/chi/v5"
)

// CatalogHandler serves reference-catalog suggestion lists.
type CatalogHandler struct {
	catalogs *catalog.Set
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(catalogs *catalog.Set) *CatalogHandler {
	return &CatalogHandler{catalogs: catalogs}
}

// RegisterRoutes registers catalog endpoints on the given Chi router.
func (h *CatalogHandler) RegisterRoutes(r chi.Router) {
	r.Get("/{category}", h.List)
}

type catalogResponse struct {
	Category string          `json:"category"`
	Entries  []catalog.Entry `json:"entries"`
}

// List handles GET /api/catalogs/{category}?q=. An empty q returns the full
// suggestion list, which is what a search box shows on focus; the N/A
// placeholder only appears when q is literally "n/a".
func (h *CatalogHandler) List(w http.ResponseWriter, r *http.Request) {
	category := chi.URLParam(r, "category")
	if !enum.IsCategory(category) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unknown category"})
		return
	}

	entries := catalog.Filter(h.catalogs.ByCategory(r.Context(), category), r.URL.Query().Get("q"))
	writeJSON(w, http.StatusOK, catalogResponse{Category: category, Entries: entries})
}
