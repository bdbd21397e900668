package router

import (
	"log"
	"net/http"

	"github.com/glasspack/api/internal/cache"
	"github.com/glasspack/api/internal/catalog"
	"github.com/glasspack/api/internal/config"
	"github.com/glasspack/api/internal/database"
	"github.com/glasspack/api/internal/forex"
	"github.com/glasspack/api/internal/handler"
	mw "github.com/glasspack/api/internal/middleware"
	"github.com/glasspack/api/internal/service"
	"github.com/glasspack/api/internal/session"
	"github.com/glasspack/api/internal/ws"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// New creates a Chi router with all application routes wired up.
func New(cfg *config.Config, queries *database.Queries, pool *pgxpool.Pool, hub *ws.Hub, rates *forex.Converter) chi.Router {
	r := chi.NewRouter()

	// Standard middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS configuration
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "https://orders.glasspack.in"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300, // 5 minutes
	}))

	// Public routes
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok","version":"1.0.0"}`))
	})

	// Auth routes (public)
	authHandler := handler.NewAuthHandler(queries, cfg.JWTSecret)
	authHandler.RegisterRoutes(r)

	// WebSocket route (handles auth internally via query param)
	r.Get("/ws/teams", func(w http.ResponseWriter, r *http.Request) {
		ws.ServeWS(hub, cfg.JWTSecret, w, r)
	})

	// Shared application state
	catalogs := catalog.NewSet(queries)
	sessions := session.NewStore()
	recent := cache.NewRecentOrders(0)

	newOrderStore := func(tx pgx.Tx) service.OrderStore {
		return queries.WithTx(tx)
	}
	orderService := service.NewOrderService(pool, queries, newOrderStore)

	// Protected routes (require authentication)
	r.Group(func(r chi.Router) {
		r.Use(mw.Authenticate(cfg.JWTSecret))

		r.Route("/api", func(r chi.Router) {
			catalogHandler := handler.NewCatalogHandler(catalogs)
			r.Route("/catalogs", catalogHandler.RegisterRoutes)

			draftHandler := handler.NewDraftHandler(sessions, catalogs, orderService, hub, recent, rates)
			r.Route("/drafts", draftHandler.RegisterRoutes)

			orderHandler := handler.NewOrderHandler(orderService, hub, recent)
			orderHandler.RegisterRoutes(r)
		})
	})

	log.Println("Router initialized with all handlers")
	return r
}
