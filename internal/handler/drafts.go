package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/glasspack/api/internal/cache"
	"github.com/glasspack/api/internal/catalog"
	"github.com/glasspack/api/internal/draft"
	"github.com/glasspack/api/internal/enum"
	"github.com/glasspack/api/internal/forex"
	"github.com/glasspack/api/internal/middleware"
	"github.com/glasspack/api/internal/service"
	"github.com/glasspack/api/internal/session"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// DraftHandler drives the order form state machine: one server-held draft
// session per open form, mutated operation by operation and finally
// submitted as an order.
type DraftHandler struct {
	sessions *session.Store
	catalogs *catalog.Set
	svc      OrderServicer
	hub      Notifier
	recent   *cache.RecentOrders
	rates    *forex.Converter
}

// NewDraftHandler creates a new DraftHandler.
func NewDraftHandler(sessions *session.Store, catalogs *catalog.Set, svc OrderServicer, hub Notifier, recent *cache.RecentOrders, rates *forex.Converter) *DraftHandler {
	return &DraftHandler{sessions: sessions, catalogs: catalogs, svc: svc, hub: hub, recent: recent, rates: rates}
}

// RegisterRoutes registers draft endpoints on the given Chi router.
// Expected to be mounted at /api/drafts behind authentication.
func (h *DraftHandler) RegisterRoutes(r chi.Router) {
	r.Post("/", h.Create)
	r.Get("/{id}", h.Get)
	r.Delete("/{id}", h.Discard)
	r.Patch("/{id}/header", h.SetHeader)
	r.Post("/{id}/items", h.AddItem)
	r.Delete("/{id}/items/{idx}", h.RemoveItem)
	r.Patch("/{id}/items/{idx}/name", h.RenameItem)
	r.Post("/{id}/items/{idx}/{category}/rows", h.AddRow)
	r.Delete("/{id}/items/{idx}/{category}/rows/{ridx}", h.RemoveRow)
	r.Patch("/{id}/items/{idx}/{category}/rows/{ridx}", h.SetField)
	r.Post("/{id}/items/{idx}/{category}/rows/{ridx}/focus", h.Focus)
	r.Post("/{id}/items/{idx}/{category}/rows/{ridx}/search", h.Search)
	r.Post("/{id}/items/{idx}/{category}/rows/{ridx}/select", h.Select)
	r.Post("/{id}/dropdown/close", h.CloseDropdown)
	r.Get("/{id}/totals", h.Totals)
	r.Post("/{id}/duplicate", h.Duplicate)
	r.Post("/{id}/submit", h.Submit)
}

// --- Request / Response types ---

type createDraftRequest struct {
	TeamOrder bool `json:"team_order"`
}

type fieldRequest struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

type nameRequest struct {
	Name string `json:"name"`
}

type searchRequest struct {
	Text string `json:"text"`
}

type duplicateRequest struct {
	OrderNumber string `json:"order_number"`
}

type draftResponse struct {
	ID         uuid.UUID         `json:"id"`
	Draft      draft.Draft       `json:"draft"`
	Search     draft.SearchState `json:"search"`
	Totals     totalsResponse    `json:"totals"`
	Searching  bool              `json:"is_searching"`
	Submitting bool              `json:"is_submitting"`
}

// totalsResponse carries the INR totals and their conversions. Converted
// values are nil while exchange rates are still loading so clients show a
// placeholder instead of a stale or zero amount.
type totalsResponse struct {
	ItemsINR []string `json:"items_inr"`
	TotalINR string   `json:"total_inr"`
	TotalUSD *string  `json:"total_usd"`
	TotalEUR *string  `json:"total_eur"`
	TotalGBP *string  `json:"total_gbp"`
}

type suggestionsResponse struct {
	draftResponse
	Suggestions []catalog.Entry `json:"suggestions"`
}

func (h *DraftHandler) toResponse(sess session.Session) draftResponse {
	totals := totalsResponse{TotalINR: draft.TotalPrice(sess.Draft).StringFixed(2)}
	for _, it := range sess.Draft.Items {
		totals.ItemsINR = append(totals.ItemsINR, draft.ItemPrice(it).StringFixed(2))
	}
	total := draft.TotalPrice(sess.Draft)
	for cur, dst := range map[string]**string{
		enum.CurrencyUSD: &totals.TotalUSD,
		enum.CurrencyEUR: &totals.TotalEUR,
		enum.CurrencyGBP: &totals.TotalGBP,
	} {
		if v, ok := h.rates.Convert(total, cur); ok {
			s := v.StringFixed(2)
			*dst = &s
		}
	}
	return draftResponse{
		ID:         sess.ID,
		Draft:      sess.Draft,
		Search:     sess.Search,
		Totals:     totals,
		Searching:  sess.Searching,
		Submitting: sess.Submitting,
	}
}

// --- Handlers ---

// Create opens a new draft session.
func (h *DraftHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createDraftRequest
	if r.Body != nil {
		// An empty body means a plain order draft.
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	var team, username string
	if claims := middleware.ClaimsFromContext(r.Context()); claims != nil {
		team = claims.Team
		username = claims.Username
	}

	sess := h.sessions.Create(req.TeamOrder, team, username)
	writeJSON(w, http.StatusCreated, h.toResponse(*sess))
}

// Get returns the current draft snapshot.
func (h *DraftHandler) Get(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.lookup(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, h.toResponse(sess))
}

// Discard drops the session.
func (h *DraftHandler) Discard(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid draft ID"})
		return
	}
	h.sessions.Delete(id)
	w.WriteHeader(http.StatusNoContent)
}

// SetHeader writes one order header field.
func (h *DraftHandler) SetHeader(w http.ResponseWriter, r *http.Request) {
	var req fieldRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	h.update(w, r, func(d draft.Draft, s draft.SearchState) (draft.Draft, draft.SearchState, error) {
		nd, err := d.SetHeader(req.Field, req.Value)
		return nd, s, err
	})
}

// AddItem appends a new order item.
func (h *DraftHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	h.update(w, r, func(d draft.Draft, s draft.SearchState) (draft.Draft, draft.SearchState, error) {
		return d.AddItem(), s, nil
	})
}

// RemoveItem deletes an item; removing the only item is a no-op.
func (h *DraftHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	idx, ok := h.index(w, r, "idx")
	if !ok {
		return
	}
	h.update(w, r, func(d draft.Draft, s draft.SearchState) (draft.Draft, draft.SearchState, error) {
		nd, err := d.RemoveItem(idx)
		return nd, s, err
	})
}

// RenameItem sets an item's free-text name.
func (h *DraftHandler) RenameItem(w http.ResponseWriter, r *http.Request) {
	idx, ok := h.index(w, r, "idx")
	if !ok {
		return
	}
	var req nameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	h.update(w, r, func(d draft.Draft, s draft.SearchState) (draft.Draft, draft.SearchState, error) {
		nd, err := d.RenameItem(idx, req.Name)
		return nd, s, err
	})
}

// AddRow appends a default row to an item's category list.
func (h *DraftHandler) AddRow(w http.ResponseWriter, r *http.Request) {
	idx, ok := h.index(w, r, "idx")
	if !ok {
		return
	}
	h.update(w, r, func(d draft.Draft, s draft.SearchState) (draft.Draft, draft.SearchState, error) {
		nd, err := d.AddRow(idx, chi.URLParam(r, "category"))
		return nd, s, err
	})
}

// RemoveRow deletes a row; removing the last row of a category is a no-op.
func (h *DraftHandler) RemoveRow(w http.ResponseWriter, r *http.Request) {
	idx, ok := h.index(w, r, "idx")
	if !ok {
		return
	}
	ridx, ok := h.index(w, r, "ridx")
	if !ok {
		return
	}
	h.update(w, r, func(d draft.Draft, s draft.SearchState) (draft.Draft, draft.SearchState, error) {
		nd, err := d.RemoveRow(idx, ridx, chi.URLParam(r, "category"))
		return nd, s, err
	})
}

// SetField writes a single row field.
func (h *DraftHandler) SetField(w http.ResponseWriter, r *http.Request) {
	idx, ok := h.index(w, r, "idx")
	if !ok {
		return
	}
	ridx, ok := h.index(w, r, "ridx")
	if !ok {
		return
	}
	var req fieldRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	h.update(w, r, func(d draft.Draft, s draft.SearchState) (draft.Draft, draft.SearchState, error) {
		nd, err := d.SetField(idx, ridx, chi.URLParam(r, "category"), req.Field, req.Value)
		return nd, s, err
	})
}

// Focus opens a row's dropdown and returns the full suggestion list.
func (h *DraftHandler) Focus(w http.ResponseWriter, r *http.Request) {
	h.suggest(w, r, func(key string, s draft.SearchState) (draft.SearchState, string) {
		return s.Focus(key), ""
	})
}

// Search records a keystroke and returns the recomputed suggestion list.
func (h *DraftHandler) Search(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	h.suggest(w, r, func(key string, s draft.SearchState) (draft.SearchState, string) {
		return s.SetTerm(key, req.Text), req.Text
	})
}

// suggest applies a search-state change and responds with the filtered
// catalog for that row.
func (h *DraftHandler) suggest(w http.ResponseWriter, r *http.Request, fn func(key string, s draft.SearchState) (draft.SearchState, string)) {
	idx, ok := h.index(w, r, "idx")
	if !ok {
		return
	}
	ridx, ok := h.index(w, r, "ridx")
	if !ok {
		return
	}
	category := chi.URLParam(r, "category")
	if !enum.IsCategory(category) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unknown category"})
		return
	}

	var query string
	sess, err := h.updateSession(r, func(d draft.Draft, s draft.SearchState) (draft.Draft, draft.SearchState, error) {
		if idx < 0 || idx >= len(d.Items) {
			return d, s, draft.ErrBadIndex
		}
		rows, ok := d.Items[idx].Assignments[category]
		if !ok {
			// The plain variant has no accessories section.
			return d, s, draft.ErrBadCategory
		}
		if ridx < 0 || ridx >= len(rows) {
			return d, s, draft.ErrBadIndex
		}
		ns, q := fn(draft.SearchKey(category, idx, ridx), s)
		query = q
		return d, ns, nil
	})
	if err != nil {
		h.writeUpdateError(w, err)
		return
	}

	entries := catalog.Filter(h.catalogs.ByCategory(r.Context(), category), query)
	writeJSON(w, http.StatusOK, suggestionsResponse{draftResponse: h.toResponse(sess), Suggestions: entries})
}

// Select copies a catalog entry into a row and closes the dropdown.
func (h *DraftHandler) Select(w http.ResponseWriter, r *http.Request) {
	idx, ok := h.index(w, r, "idx")
	if !ok {
		return
	}
	ridx, ok := h.index(w, r, "ridx")
	if !ok {
		return
	}
	category := chi.URLParam(r, "category")
	if !enum.IsCategory(category) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unknown category"})
		return
	}

	var req nameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	entry, found := catalog.Find(h.catalogs.ByCategory(r.Context(), category), req.Name)
	if !found {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "catalog entry not found"})
		return
	}

	h.update(w, r, func(d draft.Draft, s draft.SearchState) (draft.Draft, draft.SearchState, error) {
		nd, err := d.Select(idx, ridx, category, entry)
		if err != nil {
			return d, s, err
		}
		return nd, s.Selected(draft.SearchKey(category, idx, ridx), entry.Name), nil
	})
}

// CloseDropdown closes whatever dropdown is open.
func (h *DraftHandler) CloseDropdown(w http.ResponseWriter, r *http.Request) {
	h.update(w, r, func(d draft.Draft, s draft.SearchState) (draft.Draft, draft.SearchState, error) {
		return d, s.Close(), nil
	})
}

// Totals returns the INR totals and their currency conversions.
func (h *DraftHandler) Totals(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.lookup(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, h.toResponse(sess).Totals)
}

// Duplicate handles the duplicate-order flow: look an order up by number
// and rebuild the whole draft from it. The session's searching guard
// refuses a second lookup while one is in flight, and a failed lookup
// leaves the draft untouched.
func (h *DraftHandler) Duplicate(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid draft ID"})
		return
	}

	var req duplicateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.OrderNumber == "" {
		writeFailure(w, http.StatusBadRequest, "Please enter an order number")
		return
	}

	if err := h.sessions.BeginSearch(id); err != nil {
		h.writeUpdateError(w, err)
		return
	}
	defer h.sessions.EndSearch(id)

	wo, err := h.svc.GetOrderByNumber(r.Context(), req.OrderNumber)
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			writeFailure(w, http.StatusNotFound, "Order not found")
			return
		}
		log.Printf("ERROR: duplicate lookup: %v", err)
		writeFailure(w, http.StatusInternalServerError, "internal server error")
		return
	}

	sess, err := h.updateSession(r, func(d draft.Draft, s draft.SearchState) (draft.Draft, draft.SearchState, error) {
		nd := draft.Rehydrate(d, wo)
		return nd, draft.RebuildSearch(nd), nil
	})
	if err != nil {
		h.writeUpdateError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.toResponse(sess))
}

// Submit validates the draft, creates the order, caches it, notifies the
// team when connected, and resets the form. The submitting guard refuses
// duplicate concurrent submissions; any failure leaves the draft intact for
// correction.
func (h *DraftHandler) Submit(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid draft ID"})
		return
	}

	if err := h.sessions.BeginSubmit(id); err != nil {
		h.writeUpdateError(w, err)
		return
	}
	defer h.sessions.EndSubmit(id)

	sess, err := h.sessions.Get(id)
	if err != nil {
		h.writeUpdateError(w, err)
		return
	}

	var user draft.Identity
	if claims := middleware.ClaimsFromContext(r.Context()); claims != nil {
		user = draft.Identity{Username: claims.Username, Team: claims.Team}
	}

	wo, err := draft.BuildOrder(sess.Draft, user)
	if err != nil {
		writeFailure(w, http.StatusBadRequest, err.Error())
		return
	}

	created, err := h.svc.CreateOrder(r.Context(), wo)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrDuplicateNumber):
			writeFailure(w, http.StatusConflict, err.Error())
		default:
			log.Printf("ERROR: submit order: %v", err)
			writeFailure(w, http.StatusInternalServerError, "Failed to create order. Please try again.")
		}
		return
	}

	h.recent.Add(created, created.Team)
	if created.Team == "" || h.hub.IsConnected(created.Team) {
		h.hub.NotifyTeam(created)
	}

	// Success resets the whole form.
	if _, err := h.updateSession(r, func(d draft.Draft, s draft.SearchState) (draft.Draft, draft.SearchState, error) {
		return d.Reset(), draft.NewSearchState(), nil
	}); err != nil {
		log.Printf("ERROR: reset draft after submit: %v", err)
	}

	writeSuccess(w, http.StatusCreated, created)
}

// --- Helpers ---

func (h *DraftHandler) lookup(w http.ResponseWriter, r *http.Request) (session.Session, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid draft ID"})
		return session.Session{}, false
	}
	sess, err := h.sessions.Get(id)
	if err != nil {
		h.writeUpdateError(w, err)
		return session.Session{}, false
	}
	return sess, true
}

func (h *DraftHandler) index(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	v, err := strconv.Atoi(chi.URLParam(r, name))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid index"})
		return 0, false
	}
	return v, true
}

func (h *DraftHandler) update(w http.ResponseWriter, r *http.Request, fn func(draft.Draft, draft.SearchState) (draft.Draft, draft.SearchState, error)) {
	sess, err := h.updateSession(r, fn)
	if err != nil {
		h.writeUpdateError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.toResponse(sess))
}

func (h *DraftHandler) updateSession(r *http.Request, fn func(draft.Draft, draft.SearchState) (draft.Draft, draft.SearchState, error)) (session.Session, error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return session.Session{}, draft.ErrBadIndex
	}
	return h.sessions.Update(id, fn)
}

func (h *DraftHandler) writeUpdateError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, session.ErrNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "draft session not found"})
	case errors.Is(err, session.ErrSearchBusy), errors.Is(err, session.ErrSubmitBusy):
		writeJSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
	case errors.Is(err, draft.ErrBadCategory), errors.Is(err, draft.ErrBadIndex), errors.Is(err, draft.ErrBadField):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	default:
		log.Printf("ERROR: draft update: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
	}
}
