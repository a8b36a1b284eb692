package mocks

import (
	"context"

	"github.com/Rohit6800/UniStay/internal/filter"
	"github.com/Rohit6800/UniStay/internal/models"
	"github.com/Rohit6800/UniStay/internal/service"
	"github.com/Rohit6800/UniStay/internal/session"
	"github.com/stretchr/testify/mock"
)

// MockMarketplaceService is a mock implementation of MarketplaceService
type MockMarketplaceService struct {
	mock.Mock
}

var _ service.MarketplaceService = (*MockMarketplaceService)(nil)

func (m *MockMarketplaceService) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LoginResponse), args.Error(1)
}

func (m *MockMarketplaceService) Authenticate(ctx context.Context, token string) (*session.Session, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*session.Session), args.Error(1)
}

func (m *MockMarketplaceService) Logout(ctx context.Context, sess *session.Session) error {
	args := m.Called(ctx, sess)
	return args.Error(0)
}

func (m *MockMarketplaceService) Listings(ctx context.Context) ([]models.Listing, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Listing), args.Error(1)
}

func (m *MockMarketplaceService) Search(ctx context.Context, sess *session.Session, c filter.Criteria) ([]models.Listing, error) {
	args := m.Called(ctx, sess, c)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Listing), args.Error(1)
}

func (m *MockMarketplaceService) GetListing(ctx context.Context, id string) (*models.Listing, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Listing), args.Error(1)
}

func (m *MockMarketplaceService) MyProperties(ctx context.Context, sess *session.Session) ([]models.Listing, error) {
	args := m.Called(ctx, sess)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Listing), args.Error(1)
}

func (m *MockMarketplaceService) CreateListing(ctx context.Context, sess *session.Session, req *models.CreateListingRequest) (*models.Listing, error) {
	args := m.Called(ctx, sess, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Listing), args.Error(1)
}

func (m *MockMarketplaceService) CreateBooking(ctx context.Context, sess *session.Session, req *models.CreateOrderRequest) (*models.Order, error) {
	args := m.Called(ctx, sess, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *MockMarketplaceService) UpdateBookingStatus(ctx context.Context, sess *session.Session, orderID string, status models.OrderStatus) (*models.Order, error) {
	args := m.Called(ctx, sess, orderID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *MockMarketplaceService) Orders(ctx context.Context, sess *session.Session) ([]models.Order, error) {
	args := m.Called(ctx, sess)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Order), args.Error(1)
}

func (m *MockMarketplaceService) Wishlist(ctx context.Context, sess *session.Session) ([]models.Listing, error) {
	args := m.Called(ctx, sess)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Listing), args.Error(1)
}

func (m *MockMarketplaceService) ToggleWishlist(ctx context.Context, sess *session.Session, listingID string) (bool, []string, error) {
	args := m.Called(ctx, sess, listingID)
	if args.Get(1) == nil {
		return args.Bool(0), nil, args.Error(2)
	}
	return args.Bool(0), args.Get(1).([]string), args.Error(2)
}

func (m *MockMarketplaceService) RentAdvice(ctx context.Context, budget int, question string) (string, error) {
	args := m.Called(ctx, budget, question)
	return args.String(0), args.Error(1)
}

func (m *MockMarketplaceService) SmartSearch(ctx context.Context, sess *session.Session, query string) (*service.SmartSearchResult, error) {
	args := m.Called(ctx, sess, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.SmartSearchResult), args.Error(1)
}
