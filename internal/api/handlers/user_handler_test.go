package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Elviskarani/carsawa-frontend-elvis/internal/api/handlers"
	"github.com/Elviskarani/carsawa-frontend-elvis/internal/api/middleware"
	"github.com/Elviskarani/carsawa-frontend-elvis/internal/apiclient"
	"github.com/Elviskarani/carsawa-frontend-elvis/internal/models"
)

// withSession fakes the session middleware for handler tests.
func withSession(sessionID, token string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ContextKeySessionID, sessionID)
		if token != "" {
			c.Set(middleware.ContextKeyToken, token)
		}
		c.Next()
	}
}

func TestUserHandler_Login_StoresTokenWithRememberTTL(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockMarket := new(MockMarketAPI)
	mockStore := new(MockSessionStore)
	handler := handlers.NewUserHandler(mockMarket, mockStore)

	r := gin.New()
	r.Use(withSession("sess-1", ""))
	r.POST("/users/login", handler.Login)

	auth := &models.AuthResponse{User: models.User{ID: "u1", Email: "a@b.com"}, Token: "fresh-token"}
	mockMarket.On("Login", mock.Anything, "a@b.com", "secret123").Return(auth, nil)
	mockStore.On("SetToken", mock.Anything, "sess-1", "fresh-token", true).Return(nil)

	payload, _ := json.Marshal(map[string]interface{}{
		"email": "a@b.com", "password": "secret123", "remember": true,
	})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/users/login", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var body models.User
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "u1", body.ID)
	mockMarket.AssertExpectations(t)
	mockStore.AssertExpectations(t)
}

func TestUserHandler_Login_BadCredentials(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockMarket := new(MockMarketAPI)
	mockStore := new(MockSessionStore)
	handler := handlers.NewUserHandler(mockMarket, mockStore)

	r := gin.New()
	r.Use(withSession("sess-1", ""))
	r.POST("/users/login", handler.Login)

	mockMarket.On("Login", mock.Anything, "a@b.com", "wrongpass").
		Return(nil, &apiclient.APIError{StatusCode: 401, Message: "Invalid credentials"})

	payload, _ := json.Marshal(map[string]string{"email": "a@b.com", "password": "wrongpass"})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/users/login", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	mockStore.AssertNotCalled(t, "SetToken")
}

func TestUserHandler_Login_MissingFields(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := handlers.NewUserHandler(new(MockMarketAPI), new(MockSessionStore))

	r := gin.New()
	r.Use(withSession("sess-1", ""))
	r.POST("/users/login", handler.Login)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/users/login", bytes.NewReader([]byte(`{"email":"a@b.com"}`)))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUserHandler_Register_StoresToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockMarket := new(MockMarketAPI)
	mockStore := new(MockSessionStore)
	handler := handlers.NewUserHandler(mockMarket, mockStore)

	r := gin.New()
	r.Use(withSession("sess-2", ""))
	r.POST("/users/register", handler.Register)

	reg := models.RegisterRequest{Name: "Jane", Email: "j@x.com", Phone: "0711000000", Password: "longenough"}
	auth := &models.AuthResponse{User: models.User{ID: "u2", Name: "Jane"}, Token: "new-token"}
	mockMarket.On("Register", mock.Anything, reg).Return(auth, nil)
	mockStore.On("SetToken", mock.Anything, "sess-2", "new-token", false).Return(nil)

	payload, _ := json.Marshal(reg)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/users/register", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	mockStore.AssertExpectations(t)
}

func TestUserHandler_Me_ClearsTokenOn401(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockMarket := new(MockMarketAPI)
	mockStore := new(MockSessionStore)
	handler := handlers.NewUserHandler(mockMarket, mockStore)

	r := gin.New()
	r.Use(withSession("sess-3", "stale-token"))
	r.GET("/users/me", handler.Me)

	mockMarket.On("GetProfile", mock.Anything, "stale-token").
		Return(nil, &apiclient.APIError{StatusCode: 401, Message: "Token expired"})
	mockStore.On("Clear", mock.Anything, "sess-3").Return(nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/users/me", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	mockStore.AssertExpectations(t)
}

func TestUserHandler_Logout_ClearsSessionEvenWhenUpstreamFails(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockMarket := new(MockMarketAPI)
	mockStore := new(MockSessionStore)
	handler := handlers.NewUserHandler(mockMarket, mockStore)

	r := gin.New()
	r.Use(withSession("sess-4", "tok"))
	r.POST("/users/logout", handler.Logout)

	mockMarket.On("Logout", mock.Anything, "tok").
		Return(&apiclient.APIError{StatusCode: 500, Message: "oops"})
	mockStore.On("Clear", mock.Anything, "sess-4").Return(nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/users/logout", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockStore.AssertExpectations(t)
}
