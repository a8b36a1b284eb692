package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Rohit6800/UniStay/internal/assistant"
	"github.com/Rohit6800/UniStay/internal/database"
	"github.com/Rohit6800/UniStay/internal/filter"
	"github.com/Rohit6800/UniStay/internal/metrics"
	"github.com/Rohit6800/UniStay/internal/models"
	"github.com/Rohit6800/UniStay/internal/session"
	"github.com/google/uuid"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrUnauthenticated   = session.ErrUnauthenticated
	ErrForbidden         = errors.New("forbidden")
	ErrInvalidTransition = errors.New("order has already been decided")
)

// ValidationError reports a missing or malformed input field
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// Store is the listing/order persistence the service depends on
type Store interface {
	ListListings(ctx context.Context) ([]database.ListingRow, error)
	GetListing(ctx context.Context, id uuid.UUID) (*database.ListingRow, error)
	InsertListing(ctx context.Context, l *database.ListingRow) (*database.ListingRow, error)
	InsertOrder(ctx context.Context, o *database.OrderRow) (*database.OrderRow, error)
	GetOrder(ctx context.Context, id uuid.UUID) (*database.OrderRow, error)
	UpdateOrderStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus) (*database.OrderRow, error)
	ListOrdersByDealer(ctx context.Context, dealerID uuid.UUID) ([]database.OrderRow, error)
	ListOrdersByStudent(ctx context.Context, studentID uuid.UUID) ([]database.OrderRow, error)
}

// ListingCache holds the projected listing collection between requests
type ListingCache interface {
	Get(ctx context.Context) ([]models.Listing, bool, error)
	Set(ctx context.Context, listings []models.Listing) error
	Invalidate(ctx context.Context) error
}

// Notifier is told about booking lifecycle changes after they are stored
type Notifier interface {
	BookingRequested(ctx context.Context, order models.Order) error
	BookingDecided(ctx context.Context, order models.Order) error
}

// SmartSearchResult is the outcome of a free-text search
type SmartSearchResult struct {
	Intent   *models.SearchIntent `json:"intent"`
	Criteria filter.Criteria      `json:"criteria"`
	Listings []models.Listing     `json:"listings"`
}

// MarketplaceService defines the marketplace operations behind the HTTP API
type MarketplaceService interface {
	Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error)
	Authenticate(ctx context.Context, token string) (*session.Session, error)
	Logout(ctx context.Context, sess *session.Session) error

	Listings(ctx context.Context) ([]models.Listing, error)
	Search(ctx context.Context, sess *session.Session, c filter.Criteria) ([]models.Listing, error)
	GetListing(ctx context.Context, id string) (*models.Listing, error)
	MyProperties(ctx context.Context, sess *session.Session) ([]models.Listing, error)
	CreateListing(ctx context.Context, sess *session.Session, req *models.CreateListingRequest) (*models.Listing, error)

	CreateBooking(ctx context.Context, sess *session.Session, req *models.CreateOrderRequest) (*models.Order, error)
	UpdateBookingStatus(ctx context.Context, sess *session.Session, orderID string, status models.OrderStatus) (*models.Order, error)
	Orders(ctx context.Context, sess *session.Session) ([]models.Order, error)

	Wishlist(ctx context.Context, sess *session.Session) ([]models.Listing, error)
	ToggleWishlist(ctx context.Context, sess *session.Session, listingID string) (bool, []string, error)

	RentAdvice(ctx context.Context, budget int, question string) (string, error)
	SmartSearch(ctx context.Context, sess *session.Session, query string) (*SmartSearchResult, error)
}

// Deps are the collaborators of the marketplace service. Cache, Metrics and
// Notifiers are optional.
type Deps struct {
	Store     Store
	Cache     ListingCache
	Sessions  *session.Manager
	Assistant *assistant.Assistant
	Notifiers []Notifier
	Metrics   *metrics.Metrics
}

// marketplaceServiceImpl implements MarketplaceService
type marketplaceServiceImpl struct {
	store     Store
	cache     ListingCache
	sessions  *session.Manager
	assistant *assistant.Assistant
	notifiers []Notifier
	metrics   *metrics.Metrics
}

// NewMarketplaceService creates a new MarketplaceService
func NewMarketplaceService(d Deps) MarketplaceService {
	if d.Assistant == nil {
		d.Assistant = assistant.New(nil, nil)
	}
	return &marketplaceServiceImpl{
		store:     d.Store,
		cache:     d.Cache,
		sessions:  d.Sessions,
		assistant: d.Assistant,
		notifiers: d.Notifiers,
		metrics:   d.Metrics,
	}
}

func (s *marketplaceServiceImpl) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	sess, token, err := s.sessions.Login(ctx, req)
	if errors.Is(err, session.ErrInvalidLogin) {
		return nil, invalid("login", err.Error())
	}
	if err != nil {
		return nil, err
	}
	return &models.LoginResponse{Token: token, User: sess.User}, nil
}

func (s *marketplaceServiceImpl) Authenticate(ctx context.Context, token string) (*session.Session, error) {
	if token == "" {
		return nil, ErrUnauthenticated
	}
	sess, err := s.sessions.Resolve(ctx, token)
	if errors.Is(err, session.ErrInvalidToken) || errors.Is(err, session.ErrNoSession) {
		return nil, ErrUnauthenticated
	}
	if err != nil {
		return nil, err
	}
	return sess, nil
}

func (s *marketplaceServiceImpl) Logout(ctx context.Context, sess *session.Session) error {
	if sess == nil {
		return ErrUnauthenticated
	}
	return s.sessions.Logout(ctx, sess)
}

// Listings returns every listing, newest first
func (s *marketplaceServiceImpl) Listings(ctx context.Context) ([]models.Listing, error) {
	if s.cache != nil {
		listings, ok, err := s.cache.Get(ctx)
		if err != nil {
			slog.WarnContext(ctx, "listings cache read failed", "error", err)
		} else if ok {
			return listings, nil
		}
	}

	rows, err := s.store.ListListings(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list listings: %w", err)
	}
	listings := make([]models.Listing, len(rows))
	for i := range rows {
		listings[i] = rows[i].ToListing()
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, listings); err != nil {
			slog.WarnContext(ctx, "listings cache write failed", "error", err)
		}
	}
	return listings, nil
}

func (s *marketplaceServiceImpl) Search(ctx context.Context, sess *session.Session, c filter.Criteria) ([]models.Listing, error) {
	listings, err := s.Listings(ctx)
	if err != nil {
		return nil, err
	}
	var saved filter.Saved
	if sess != nil && sess.Wishlist != nil {
		saved = sess.Wishlist
	}
	return filter.Apply(listings, c, saved), nil
}

func (s *marketplaceServiceImpl) GetListing(ctx context.Context, id string) (*models.Listing, error) {
	listingID, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrNotFound
	}
	row, err := s.store.GetListing(ctx, listingID)
	if errors.Is(err, database.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	l := row.ToListing()
	return &l, nil
}

// MyProperties returns the dealer's own listings, matched by owner id
func (s *marketplaceServiceImpl) MyProperties(ctx context.Context, sess *session.Session) ([]models.Listing, error) {
	if err := requireDealer(sess); err != nil {
		return nil, err
	}
	listings, err := s.Listings(ctx)
	if err != nil {
		return nil, err
	}
	mine := make([]models.Listing, 0)
	for _, l := range listings {
		if l.OwnerID == sess.User.ID {
			mine = append(mine, l)
		}
	}
	return mine, nil
}

func validateListing(req *models.CreateListingRequest) error {
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		return invalid("title", "Listing title is required")
	}
	if !req.Type.Valid() {
		return invalid("type", "Room type must be Single, Sharing or PG")
	}
	if req.Rent <= 0 {
		return invalid("rent", "Monthly rent must be positive")
	}
	if req.Deposit < 0 {
		return invalid("deposit", "Security deposit cannot be negative")
	}
	if req.State == "" || req.City == "" || req.CollegeName == "" {
		return invalid("location", "Please select State, City, and Near College")
	}
	cityOK, collegeOK := filter.ValidLocation(req.State, req.City, req.CollegeName)
	if !cityOK {
		return invalid("city", fmt.Sprintf("%s is not a city in %s", req.City, req.State))
	}
	if !collegeOK {
		return invalid("collegeName", fmt.Sprintf("%s is not a college in %s", req.CollegeName, req.State))
	}
	if req.GenderPref != "" && !req.GenderPref.Valid() {
		return invalid("genderPref", "Gender preference must be Girls, Boys or Co-ed")
	}
	return nil
}

// CreateListing publishes a dealer's listing and returns it as stored
func (s *marketplaceServiceImpl) CreateListing(ctx context.Context, sess *session.Session, req *models.CreateListingRequest) (*models.Listing, error) {
	if err := requireDealer(sess); err != nil {
		return nil, err
	}
	if err := validateListing(req); err != nil {
		return nil, err
	}

	ownerID, err := userID(sess)
	if err != nil {
		return nil, err
	}

	row, err := s.store.InsertListing(ctx, database.NewListingRow(ownerID, sess.User.Name, req))
	if err != nil {
		return nil, fmt.Errorf("failed to create listing: %w", err)
	}
	s.invalidateListings(ctx)
	if s.metrics != nil {
		s.metrics.ListingsCreated.Inc()
	}

	l := row.ToListing()
	slog.InfoContext(ctx, "listing created", "listingId", l.ID, "ownerId", l.OwnerID)
	return &l, nil
}

func (s *marketplaceServiceImpl) invalidateListings(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		slog.WarnContext(ctx, "listings cache invalidation failed", "error", err)
	}
}

// CreateBooking stores a pending order for the student. Rent, deposit and
// title are copied from the listing as it is now.
func (s *marketplaceServiceImpl) CreateBooking(ctx context.Context, sess *session.Session, req *models.CreateOrderRequest) (*models.Order, error) {
	if sess == nil {
		return nil, ErrUnauthenticated
	}
	if !sess.IsStudent() {
		return nil, ErrForbidden
	}
	studentID, err := userID(sess)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.RoomID) == "" {
		return nil, invalid("roomId", "Room is required")
	}
	moveIn := strings.TrimSpace(req.MoveInDate)
	if moveIn == "" {
		return nil, invalid("moveInDate", "Move-in date is required")
	}

	roomID, err := uuid.Parse(req.RoomID)
	if err != nil {
		return nil, ErrNotFound
	}
	listing, err := s.store.GetListing(ctx, roomID)
	if errors.Is(err, database.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	row, err := s.store.InsertOrder(ctx, database.NewOrderRow(listing, studentID, sess.User, moveIn, strings.TrimSpace(req.Message)))
	if err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}
	if s.metrics != nil {
		s.metrics.BookingsCreated.Inc()
	}

	order := row.ToOrder()
	slog.InfoContext(ctx, "booking requested", "orderId", order.ID, "roomId", order.RoomID, "studentId", order.StudentID)
	s.notify(ctx, order, Notifier.BookingRequested)
	return &order, nil
}

// UpdateBookingStatus records the owning dealer's decision on a pending order.
// Decided orders never change again.
func (s *marketplaceServiceImpl) UpdateBookingStatus(ctx context.Context, sess *session.Session, orderID string, status models.OrderStatus) (*models.Order, error) {
	if err := requireDealer(sess); err != nil {
		return nil, err
	}
	if !status.IsDecision() {
		return nil, invalid("status", "Status must be confirmed or cancelled")
	}

	id, err := uuid.Parse(orderID)
	if err != nil {
		return nil, ErrNotFound
	}
	current, err := s.store.GetOrder(ctx, id)
	if errors.Is(err, database.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if current.DealerID.String() != sess.User.ID {
		return nil, ErrForbidden
	}
	if !current.Status.CanTransition(status) {
		return nil, ErrInvalidTransition
	}

	row, err := s.store.UpdateOrderStatus(ctx, id, status)
	switch {
	case errors.Is(err, database.ErrAlreadyDecided):
		return nil, ErrInvalidTransition
	case errors.Is(err, database.ErrNotFound):
		return nil, ErrNotFound
	case err != nil:
		return nil, fmt.Errorf("failed to update booking: %w", err)
	}
	if s.metrics != nil {
		s.metrics.BookingDecisions.WithLabelValues(string(status)).Inc()
	}

	order := row.ToOrder()
	slog.InfoContext(ctx, "booking decided", "orderId", order.ID, "status", order.Status)
	s.notify(ctx, order, Notifier.BookingDecided)
	return &order, nil
}

func (s *marketplaceServiceImpl) notify(ctx context.Context, order models.Order, fn func(Notifier, context.Context, models.Order) error) {
	for _, n := range s.notifiers {
		if err := fn(n, ctx, order); err != nil {
			slog.WarnContext(ctx, "booking notification failed",
				"orderId", order.ID, "status", order.Status, "error", err)
		}
	}
}

// userID parses the session's user id. Sessions issued here always carry a
// UUID, so a malformed one is treated as no session at all.
func userID(sess *session.Session) (uuid.UUID, error) {
	id, err := uuid.Parse(sess.User.ID)
	if err != nil {
		return uuid.Nil, ErrUnauthenticated
	}
	return id, nil
}

// Orders returns the orders on a dealer's listings, or a student's own
// requests, newest first
func (s *marketplaceServiceImpl) Orders(ctx context.Context, sess *session.Session) ([]models.Order, error) {
	if sess == nil {
		return nil, ErrUnauthenticated
	}
	id, err := userID(sess)
	if err != nil {
		return nil, err
	}

	var rows []database.OrderRow
	if sess.IsDealer() {
		rows, err = s.store.ListOrdersByDealer(ctx, id)
	} else {
		rows, err = s.store.ListOrdersByStudent(ctx, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	orders := make([]models.Order, len(rows))
	for i := range rows {
		orders[i] = rows[i].ToOrder()
	}
	return orders, nil
}

func (s *marketplaceServiceImpl) Wishlist(ctx context.Context, sess *session.Session) ([]models.Listing, error) {
	if sess == nil {
		return nil, ErrUnauthenticated
	}
	c := filter.DefaultCriteria()
	c.WishlistOnly = true
	return s.Search(ctx, sess, c)
}

// ToggleWishlist flips listingID in the session wishlist and returns the
// membership afterwards along with the saved ids
func (s *marketplaceServiceImpl) ToggleWishlist(ctx context.Context, sess *session.Session, listingID string) (bool, []string, error) {
	if sess == nil {
		return false, nil, ErrUnauthenticated
	}
	if strings.TrimSpace(listingID) == "" {
		return false, nil, invalid("id", "Listing id is required")
	}
	saved, err := s.sessions.ToggleWishlist(ctx, sess, listingID)
	if errors.Is(err, session.ErrNoSession) {
		return false, nil, ErrUnauthenticated
	}
	if err != nil {
		return false, nil, err
	}
	return saved, sess.Wishlist.IDs(), nil
}

func (s *marketplaceServiceImpl) RentAdvice(ctx context.Context, budget int, question string) (string, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return "", invalid("question", "Question is required")
	}
	if budget <= 0 {
		budget = assistant.DefaultBudget
	}
	return s.assistant.RentAdvice(ctx, budget, question), nil
}

// SmartSearch turns a free-text query into criteria. When the query cannot
// be interpreted it is used as a plain text filter.
func (s *marketplaceServiceImpl) SmartSearch(ctx context.Context, sess *session.Session, query string) (*SmartSearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, invalid("query", "Query is required")
	}

	c := filter.DefaultCriteria()
	intent, ok := s.assistant.ParseSearchIntent(ctx, query)
	if ok {
		c = filter.ApplyIntent(c, intent)
	} else {
		intent = nil
		c.Query = query
	}

	listings, err := s.Search(ctx, sess, c)
	if err != nil {
		return nil, err
	}
	return &SmartSearchResult{Intent: intent, Criteria: c, Listings: listings}, nil
}

func requireDealer(sess *session.Session) error {
	if sess == nil {
		return ErrUnauthenticated
	}
	if !sess.IsDealer() {
		return ErrForbidden
	}
	return nil
}
