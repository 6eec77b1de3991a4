package handlers_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/Elviskarani/carsawa-frontend-elvis/internal/apiclient"
	"github.com/Elviskarani/carsawa-frontend-elvis/internal/browse"
	"github.com/Elviskarani/carsawa-frontend-elvis/internal/models"
)

// --- Mocks ---

// MockMarketAPI mocks the upstream client slices the handlers consume.
type MockMarketAPI struct {
	mock.Mock
}

func (m *MockMarketAPI) GetCarByID(ctx context.Context, id string) (*models.Car, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Car), args.Error(1)
}

func (m *MockMarketAPI) GetDealerByID(ctx context.Context, id string) (*models.Dealer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Dealer), args.Error(1)
}

func (m *MockMarketAPI) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockMarketAPI) GetAllDealers(ctx context.Context, page, pageSize int) (*models.PaginatedDealers, error) {
	args := m.Called(ctx, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PaginatedDealers), args.Error(1)
}

func (m *MockMarketAPI) GetCarsByDealer(ctx context.Context, dealerID string, q apiclient.CarQuery) (*models.PaginatedCars, error) {
	args := m.Called(ctx, dealerID, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PaginatedCars), args.Error(1)
}

func (m *MockMarketAPI) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AuthResponse), args.Error(1)
}

func (m *MockMarketAPI) Login(ctx context.Context, email, password string) (*models.AuthResponse, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AuthResponse), args.Error(1)
}

func (m *MockMarketAPI) GetProfile(ctx context.Context, token string) (*models.User, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockMarketAPI) UpdateProfile(ctx context.Context, token string, req models.UpdateProfileRequest) (*models.User, error) {
	args := m.Called(ctx, token, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockMarketAPI) ChangePassword(ctx context.Context, token string, req models.ChangePasswordRequest) error {
	args := m.Called(ctx, token, req)
	return args.Error(0)
}

func (m *MockMarketAPI) Logout(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockMarketAPI) ToggleFavorite(ctx context.Context, token, carID string) (*models.FavoriteToggleResponse, error) {
	args := m.Called(ctx, token, carID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.FavoriteToggleResponse), args.Error(1)
}

func (m *MockMarketAPI) CheckFavorite(ctx context.Context, token, carID string) (*models.FavoriteCheckResponse, error) {
	args := m.Called(ctx, token, carID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.FavoriteCheckResponse), args.Error(1)
}

func (m *MockMarketAPI) GetFavorites(ctx context.Context, token string, page, limit int) (*models.UserFavorites, error) {
	args := m.Called(ctx, token, page, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserFavorites), args.Error(1)
}

func (m *MockMarketAPI) RemoveFavorite(ctx context.Context, token, carID string) error {
	args := m.Called(ctx, token, carID)
	return args.Error(0)
}

func (m *MockMarketAPI) FavoriteCount(ctx context.Context, token string) (*models.FavoriteCountResponse, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.FavoriteCountResponse), args.Error(1)
}

// MockCatalog mocks browse.ICatalog.
type MockCatalog struct {
	mock.Mock
}

func (m *MockCatalog) Refresh(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockCatalog) Browse(filters browse.Filters, page int) (browse.Page, error) {
	args := m.Called(filters, page)
	return args.Get(0).(browse.Page), args.Error(1)
}

func (m *MockCatalog) CarByID(id string) (*models.Car, bool) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Bool(1)
	}
	return args.Get(0).(*models.Car), args.Bool(1)
}

func (m *MockCatalog) LastRefreshed() time.Time {
	args := m.Called()
	return args.Get(0).(time.Time)
}

// MockEnqueuer mocks the background refresh enqueuer.
type MockEnqueuer struct {
	mock.Mock
}

func (m *MockEnqueuer) EnqueueCatalogRefresh() error {
	args := m.Called()
	return args.Error(0)
}

// MockSessionStore mocks session.Store.
type MockSessionStore struct {
	mock.Mock
}

func (m *MockSessionStore) Token(ctx context.Context, sessionID string) (string, error) {
	args := m.Called(ctx, sessionID)
	return args.String(0), args.Error(1)
}

func (m *MockSessionStore) SetToken(ctx context.Context, sessionID, token string, remember bool) error {
	args := m.Called(ctx, sessionID, token, remember)
	return args.Error(0)
}

func (m *MockSessionStore) Clear(ctx context.Context, sessionID string) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}
