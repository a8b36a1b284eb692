package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/Rohit6800/UniStay/internal/budget"
	"github.com/Rohit6800/UniStay/internal/filter"
	"github.com/Rohit6800/UniStay/internal/middleware"
	"github.com/Rohit6800/UniStay/internal/models"
	"github.com/Rohit6800/UniStay/internal/service"
	"github.com/Rohit6800/UniStay/internal/websocket"
	"github.com/gorilla/mux"
)

// Handler contains HTTP handlers for the API
type Handler struct {
	marketplace service.MarketplaceService
	hub         *websocket.Hub
}

// NewHandler creates a new Handler instance. hub may be nil, in which case
// the live feed endpoint answers 503.
func NewHandler(marketplace service.MarketplaceService, hub *websocket.Hub) *Handler {
	return &Handler{
		marketplace: marketplace,
		hub:         hub,
	}
}

// Response helpers
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondServiceError maps service errors onto status codes. Unexpected
// errors are logged and reported generically.
func respondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": verr.Message, "field": verr.Field})
	case errors.Is(err, service.ErrUnauthenticated):
		respondError(w, http.StatusUnauthorized, "authentication required")
	case errors.Is(err, service.ErrForbidden):
		respondError(w, http.StatusForbidden, "Not allowed")
	case errors.Is(err, service.ErrNotFound):
		respondError(w, http.StatusNotFound, "Not found")
	case errors.Is(err, service.ErrInvalidTransition):
		respondError(w, http.StatusConflict, "Order has already been decided")
	default:
		slog.ErrorContext(r.Context(), "request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		respondError(w, http.StatusInternalServerError, "Something went wrong, please try again")
	}
}

func decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

// Login handles POST /api/auth/login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if !decode(w, r, &req) {
		return
	}

	resp, err := h.marketplace.Login(r.Context(), req)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, resp)
}

// Logout handles POST /api/auth/logout
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.marketplace.Logout(r.Context(), middleware.SessionFrom(r.Context())); err != nil {
		respondServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Locations handles GET /api/locations. With ?state= it answers the cities
// and colleges of that state only.
func (h *Handler) Locations(w http.ResponseWriter, r *http.Request) {
	state := r.URL.Query().Get("state")
	if state == "" {
		respondJSON(w, http.StatusOK, filter.States)
		return
	}

	cities := filter.CitiesOf(state)
	if cities == nil {
		respondError(w, http.StatusNotFound, "Not found")
		return
	}
	respondJSON(w, http.StatusOK, filter.State{
		Name:     state,
		Cities:   cities,
		Colleges: filter.CollegesOf(state),
	})
}

func queryInt(q map[string][]string, key string, def int) (int, bool) {
	vals := q[key]
	if len(vals) == 0 || strings.TrimSpace(vals[0]) == "" {
		return def, true
	}
	n, err := strconv.Atoi(strings.TrimSpace(vals[0]))
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// criteriaFromQuery builds search criteria from query parameters, starting
// from the defaults
func criteriaFromQuery(r *http.Request) (filter.Criteria, error) {
	q := r.URL.Query()
	c := filter.DefaultCriteria()
	c.Query = strings.TrimSpace(q.Get("q"))
	c.State = q.Get("state")
	c.City = q.Get("city")
	c.College = q.Get("college")
	c.Gender = q.Get("gender")
	c.WishlistOnly = q.Get("tab") == "wishlist"

	if t := q.Get("type"); t != "" {
		c.Type = models.RoomType(t)
		if c.Type != filter.TypeAny && !c.Type.Valid() {
			return c, &service.ValidationError{Field: "type", Message: "type must be Any, Single, Sharing or PG"}
		}
	}

	var ok bool
	if c.MinBudget, ok = queryInt(q, "minBudget", filter.DefaultMinBudget); !ok {
		return c, &service.ValidationError{Field: "minBudget", Message: "minBudget must be a non-negative integer"}
	}
	if c.MaxBudget, ok = queryInt(q, "maxBudget", filter.DefaultMaxBudget); !ok {
		return c, &service.ValidationError{Field: "maxBudget", Message: "maxBudget must be a non-negative integer"}
	}
	return c, nil
}

// ListListings handles GET /api/listings
func (h *Handler) ListListings(w http.ResponseWriter, r *http.Request) {
	c, err := criteriaFromQuery(r)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	listings, err := h.marketplace.Search(r.Context(), middleware.SessionFrom(r.Context()), c)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	if quick := r.URL.Query().Get("quick"); quick != "" {
		listings = filter.ByTab(listings, filter.Tab(quick))
	}
	respondJSON(w, http.StatusOK, listings)
}

// GetListing handles GET /api/listings/{id}
func (h *Handler) GetListing(w http.ResponseWriter, r *http.Request) {
	listing, err := h.marketplace.GetListing(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, listing)
}

// CreateListing handles POST /api/listings
func (h *Handler) CreateListing(w http.ResponseWriter, r *http.Request) {
	var req models.CreateListingRequest
	if !decode(w, r, &req) {
		return
	}

	listing, err := h.marketplace.CreateListing(r.Context(), middleware.SessionFrom(r.Context()), &req)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, listing)
}

// MyListings handles GET /api/dealer/listings
func (h *Handler) MyListings(w http.ResponseWriter, r *http.Request) {
	listings, err := h.marketplace.MyProperties(r.Context(), middleware.SessionFrom(r.Context()))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, listings)
}

// GetWishlist handles GET /api/wishlist
func (h *Handler) GetWishlist(w http.ResponseWriter, r *http.Request) {
	listings, err := h.marketplace.Wishlist(r.Context(), middleware.SessionFrom(r.Context()))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, listings)
}

// ToggleWishlist handles POST /api/wishlist/{id}
func (h *Handler) ToggleWishlist(w http.ResponseWriter, r *http.Request) {
	saved, ids, err := h.marketplace.ToggleWishlist(r.Context(), middleware.SessionFrom(r.Context()), mux.Vars(r)["id"])
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"saved": saved,
		"ids":   ids,
	})
}

// CreateOrder handles POST /api/orders
func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req models.CreateOrderRequest
	if !decode(w, r, &req) {
		return
	}

	order, err := h.marketplace.CreateBooking(r.Context(), middleware.SessionFrom(r.Context()), &req)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, order)
}

// ListOrders handles GET /api/orders
func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.marketplace.Orders(r.Context(), middleware.SessionFrom(r.Context()))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, orders)
}

// UpdateOrderStatus handles PATCH /api/orders/{id}/status
func (h *Handler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateOrderStatusRequest
	if !decode(w, r, &req) {
		return
	}

	order, err := h.marketplace.UpdateBookingStatus(r.Context(), middleware.SessionFrom(r.Context()), mux.Vars(r)["id"], req.Status)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, order)
}

type chatRequest struct {
	Question string `json:"question"`
	Budget   int    `json:"budget,omitempty"`
}

// AssistantChat handles POST /api/assistant/chat
func (h *Handler) AssistantChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if !decode(w, r, &req) {
		return
	}

	reply, err := h.marketplace.RentAdvice(r.Context(), req.Budget, req.Question)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"reply": reply})
}

type searchRequest struct {
	Query string `json:"query"`
}

// AssistantSearch handles POST /api/assistant/search
func (h *Handler) AssistantSearch(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if !decode(w, r, &req) {
		return
	}

	result, err := h.marketplace.SmartSearch(r.Context(), middleware.SessionFrom(r.Context()), req.Query)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// Budget handles GET /api/budget
func (h *Handler) Budget(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	income, ok := queryInt(q, "income", 0)
	if !ok {
		respondError(w, http.StatusBadRequest, "income must be a non-negative integer")
		return
	}
	expenses, ok := queryInt(q, "expenses", 0)
	if !ok {
		respondError(w, http.StatusBadRequest, "expenses must be a non-negative integer")
		return
	}
	respondJSON(w, http.StatusOK, budget.Suggest(income, expenses))
}

// LiveFeed handles GET /api/ws
func (h *Handler) LiveFeed(w http.ResponseWriter, r *http.Request) {
	if h.hub == nil {
		respondError(w, http.StatusServiceUnavailable, "Live updates are not available")
		return
	}
	sess := middleware.SessionFrom(r.Context())
	if sess == nil {
		respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	h.hub.Serve(w, r, sess.User.ID)
}

// HealthCheck handles GET /health
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}
