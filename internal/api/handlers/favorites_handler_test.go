package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Elviskarani/carsawa-frontend-elvis/internal/api/handlers"
	"github.com/Elviskarani/carsawa-frontend-elvis/internal/apiclient"
	"github.com/Elviskarani/carsawa-frontend-elvis/internal/models"
)

func TestFavoritesHandler_Toggle(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockMarket := new(MockMarketAPI)
	mockStore := new(MockSessionStore)
	handler := handlers.NewFavoritesHandler(mockMarket, mockStore)

	r := gin.New()
	r.Use(withSession("sess-f", "tok"))
	r.POST("/favorites/toggle/:carId", handler.Toggle)

	mockMarket.On("ToggleFavorite", mock.Anything, "tok", "c1").
		Return(&models.FavoriteToggleResponse{IsFavorited: true, CarID: "c1"}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/favorites/toggle/c1", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var body models.FavoriteToggleResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.IsFavorited)
	assert.Equal(t, "c1", body.CarID)
	mockMarket.AssertExpectations(t)
}

func TestFavoritesHandler_UpstreamRejectsTokenClearsSession(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockMarket := new(MockMarketAPI)
	mockStore := new(MockSessionStore)
	handler := handlers.NewFavoritesHandler(mockMarket, mockStore)

	r := gin.New()
	r.Use(withSession("sess-f2", "revoked"))
	r.GET("/favorites/count", handler.Count)

	mockMarket.On("FavoriteCount", mock.Anything, "revoked").
		Return(nil, &apiclient.APIError{StatusCode: 401, Message: "Unauthorized"})
	mockStore.On("Clear", mock.Anything, "sess-f2").Return(nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/favorites/count", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	mockStore.AssertExpectations(t)
}

func TestFavoritesHandler_ListWithPaging(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockMarket := new(MockMarketAPI)
	handler := handlers.NewFavoritesHandler(mockMarket, new(MockSessionStore))

	r := gin.New()
	r.Use(withSession("sess-f3", "tok"))
	r.GET("/favorites", handler.List)

	favorites := &models.UserFavorites{
		Favorites: []models.FavoriteEntry{{ID: "f1", Car: models.Car{ID: "c1"}}},
		Pagination: models.FavoritesPagination{
			CurrentPage: 2, TotalPages: 3, TotalItems: 25, ItemsPerPage: 10,
		},
	}
	mockMarket.On("GetFavorites", mock.Anything, "tok", 2, 10).Return(favorites, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/favorites?page=2&limit=10", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var body models.UserFavorites
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 2, body.Pagination.CurrentPage)
	require.Len(t, body.Favorites, 1)
	mockMarket.AssertExpectations(t)
}

func TestFavoritesHandler_Remove(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockMarket := new(MockMarketAPI)
	handler := handlers.NewFavoritesHandler(mockMarket, new(MockSessionStore))

	r := gin.New()
	r.Use(withSession("sess-f4", "tok"))
	r.DELETE("/favorites/:carId", handler.Remove)

	mockMarket.On("RemoveFavorite", mock.Anything, "tok", "c9").Return(nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("DELETE", "/favorites/c9", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockMarket.AssertExpectations(t)
}
