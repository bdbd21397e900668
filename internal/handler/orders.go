package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/glasspack/api/internal/cache"
	"github.com/glasspack/api/internal/draft"
	"github.com/glasspack/api/internal/middleware"
	"github.com/glasspack/api/internal/service"
	"github.com/go-chi/chi/v5"
)

// OrderServicer defines the service methods needed by order handlers.
// Satisfied by *service.OrderService; narrow interface for testability.
type OrderServicer interface {
	CreateOrder(ctx context.Context, wo draft.WireOrder) (draft.WireOrder, error)
	GetOrderByNumber(ctx context.Context, orderNumber string) (draft.WireOrder, error)
	ListRecentOrders(ctx context.Context, limit int) ([]draft.WireOrder, error)
}

// Notifier is the team notification collaborator. Satisfied by *ws.Hub.
type Notifier interface {
	NotifyTeam(o draft.WireOrder)
	IsConnected(team string) bool
}

// OrderHandler handles the order API: creation (plain and team variants)
// and duplicate lookup by order number. Every response uses the
// {success, data, message} envelope.
type OrderHandler struct {
	svc    OrderServicer
	hub    Notifier
	recent *cache.RecentOrders
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(svc OrderServicer, hub Notifier, recent *cache.RecentOrders) *OrderHandler {
	return &OrderHandler{svc: svc, hub: hub, recent: recent}
}

// RegisterRoutes registers order endpoints on the given Chi router.
func (h *OrderHandler) RegisterRoutes(r chi.Router) {
	r.Post("/orders", h.Create)
	r.Post("/team-orders", h.CreateTeam)
	r.Get("/orders/number/{orderNumber}", h.GetByNumber)
	r.Get("/orders/recent", h.Recent)
}

// Create handles POST /api/orders.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var wo draft.WireOrder
	if err := json.NewDecoder(r.Body).Decode(&wo); err != nil {
		writeFailure(w, http.StatusBadRequest, "invalid request body")
		return
	}
	// Plain orders carry no team attribution.
	wo.Team = ""
	wo.CreatedBy = ""
	h.create(w, r, wo)
}

// CreateTeam handles POST /api/team-orders. The order is attributed to the
// authenticated user's team and username; a token without both is refused.
func (h *OrderHandler) CreateTeam(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromContext(r.Context())
	if claims == nil || claims.Team == "" || claims.Username == "" {
		writeFailure(w, http.StatusUnauthorized, "user team and username are required")
		return
	}

	var wo draft.WireOrder
	if err := json.NewDecoder(r.Body).Decode(&wo); err != nil {
		writeFailure(w, http.StatusBadRequest, "invalid request body")
		return
	}
	wo.Team = claims.Team
	wo.CreatedBy = claims.Username
	h.create(w, r, wo)
}

func (h *OrderHandler) create(w http.ResponseWriter, r *http.Request, wo draft.WireOrder) {
	if wo.OrderNumber == "" || wo.DispatcherName == "" || wo.CustomerName == "" {
		writeFailure(w, http.StatusBadRequest, "order_number, dispatcher_name and customer_name are required")
		return
	}

	created, err := h.svc.CreateOrder(r.Context(), wo)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyItems):
			writeFailure(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrDuplicateNumber):
			writeFailure(w, http.StatusConflict, err.Error())
		default:
			log.Printf("ERROR: create order: %v", err)
			writeFailure(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	h.recent.Add(created, created.Team)
	// The notification is best effort and, for team orders, gated on a live
	// connection; the order is created either way.
	if created.Team == "" || h.hub.IsConnected(created.Team) {
		h.hub.NotifyTeam(created)
	}

	writeSuccess(w, http.StatusCreated, created)
}

// GetByNumber handles GET /api/orders/number/{orderNumber}, the duplicate
// lookup.
func (h *OrderHandler) GetByNumber(w http.ResponseWriter, r *http.Request) {
	orderNumber := chi.URLParam(r, "orderNumber")
	if orderNumber == "" {
		writeFailure(w, http.StatusBadRequest, "order number is required")
		return
	}

	wo, err := h.svc.GetOrderByNumber(r.Context(), orderNumber)
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			writeFailure(w, http.StatusNotFound, "Order not found")
			return
		}
		log.Printf("ERROR: get order by number: %v", err)
		writeFailure(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeSuccess(w, http.StatusOK, wo)
}

// Recent handles GET /api/orders/recent?team=. A fresh process starts with
// an empty cache; the first read rebuilds it from the newest stored orders.
func (h *OrderHandler) Recent(w http.ResponseWriter, r *http.Request) {
	if !h.recent.Seeded() {
		stored, err := h.svc.ListRecentOrders(r.Context(), h.recent.Limit())
		if err != nil {
			// Serve what the cache has; the next read retries the seed.
			log.Printf("ERROR: list recent orders: %v", err)
		} else {
			h.recent.Seed(stored)
		}
	}
	writeSuccess(w, http.StatusOK, h.recent.Recent(r.URL.Query().Get("team")))
}
