package router

import (
	"net/http"

	"github.com/Rohit6800/UniStay/internal/handlers"
	"github.com/Rohit6800/UniStay/internal/metrics"
	"github.com/Rohit6800/UniStay/internal/middleware"
	"github.com/gorilla/mux"
	"github.com/redis/go-redis/v9"
)

// Options carries the cross-cutting pieces the routes are wrapped with.
// Redis, Metrics and MetricsHandler are optional.
type Options struct {
	Auth           middleware.Authenticator
	Redis          *redis.Client
	Metrics        *metrics.Metrics
	MetricsHandler http.Handler
}

// SetupRouter creates and configures the HTTP router
func SetupRouter(h *handlers.Handler, opts Options) *mux.Router {
	r := mux.NewRouter()

	// CORS middleware
	r.Use(corsMiddleware)
	if opts.Metrics != nil {
		r.Use(opts.Metrics.Middleware)
	}

	required := middleware.Auth(opts.Auth, true)
	optional := middleware.Auth(opts.Auth, false)
	idempotent := func(next http.Handler) http.Handler { return next }
	if opts.Redis != nil {
		idempotent = middleware.Idempotency(opts.Redis)
	}

	// API routes
	api := r.PathPrefix("/api").Subrouter()

	// Session
	api.HandleFunc("/auth/login", h.Login).Methods(http.MethodPost, http.MethodOptions)
	api.Handle("/auth/logout", required(http.HandlerFunc(h.Logout))).Methods(http.MethodPost, http.MethodOptions)

	// Listings
	api.HandleFunc("/locations", h.Locations).Methods(http.MethodGet, http.MethodOptions)
	api.Handle("/listings", optional(http.HandlerFunc(h.ListListings))).Methods(http.MethodGet, http.MethodOptions)
	api.Handle("/listings", required(http.HandlerFunc(h.CreateListing))).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/listings/{id}", h.GetListing).Methods(http.MethodGet, http.MethodOptions)
	api.Handle("/dealer/listings", required(http.HandlerFunc(h.MyListings))).Methods(http.MethodGet, http.MethodOptions)

	// Wishlist
	api.Handle("/wishlist", required(http.HandlerFunc(h.GetWishlist))).Methods(http.MethodGet, http.MethodOptions)
	api.Handle("/wishlist/{id}", required(http.HandlerFunc(h.ToggleWishlist))).Methods(http.MethodPost, http.MethodOptions)

	// Orders
	api.Handle("/orders", required(idempotent(http.HandlerFunc(h.CreateOrder)))).Methods(http.MethodPost, http.MethodOptions)
	api.Handle("/orders", required(http.HandlerFunc(h.ListOrders))).Methods(http.MethodGet, http.MethodOptions)
	api.Handle("/orders/{id}/status", required(http.HandlerFunc(h.UpdateOrderStatus))).Methods(http.MethodPatch, http.MethodOptions)

	// Assistant and calculator
	api.HandleFunc("/assistant/chat", h.AssistantChat).Methods(http.MethodPost, http.MethodOptions)
	api.Handle("/assistant/search", optional(http.HandlerFunc(h.AssistantSearch))).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/budget", h.Budget).Methods(http.MethodGet, http.MethodOptions)

	// WebSocket for live order updates
	api.Handle("/ws", required(http.HandlerFunc(h.LiveFeed))).Methods(http.MethodGet)

	// Health check
	r.HandleFunc("/health", h.HealthCheck).Methods(http.MethodGet)
	if opts.MetricsHandler != nil {
		r.Handle("/metrics", opts.MetricsHandler).Methods(http.MethodGet)
	}

	return r
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, Idempotency-Key")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
