package handlers

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Elviskarani/carsawa-frontend-elvis/internal/api/middleware"
	"github.com/Elviskarani/carsawa-frontend-elvis/internal/apiclient"
	"github.com/Elviskarani/carsawa-frontend-elvis/internal/models"
	"github.com/Elviskarani/carsawa-frontend-elvis/internal/session"
)

// IAuthAPI is the slice of the upstream client the account surface needs.
type IAuthAPI interface {
	Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error)
	Login(ctx context.Context, email, password string) (*models.AuthResponse, error)
	GetProfile(ctx context.Context, token string) (*models.User, error)
	UpdateProfile(ctx context.Context, token string, req models.UpdateProfileRequest) (*models.User, error)
	ChangePassword(ctx context.Context, token string, req models.ChangePasswordRequest) error
	Logout(ctx context.Context, token string) error
}

// UserHandler proxies account operations to the upstream API and owns the
// session token lifecycle: store on login/register, clear on logout or 401.
type UserHandler struct {
	market IAuthAPI
	store  session.Store
}

// NewUserHandler creates a UserHandler.
func NewUserHandler(market IAuthAPI, store session.Store) *UserHandler {
	return &UserHandler{market: market, store: store}
}

// Register handles POST /users/register. A successful registration logs the
// user in: the returned token is stored for the session.
func (h *UserHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid registration details: " + err.Error()})
		return
	}

	resp, err := h.market.Register(c.Request.Context(), req)
	if err != nil {
		h.respondAuthError(c, err)
		return
	}

	if err := h.store.SetToken(c.Request.Context(), middleware.SessionID(c), resp.Token, false); err != nil {
		log.Printf("Failed to store session token after registration: %v", err)
	}
	c.JSON(http.StatusCreated, resp.User)
}

// Login handles POST /users/login. The remember flag picks the long-lived
// session TTL.
func (h *UserHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email and password are required"})
		return
	}

	resp, err := h.market.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.respondAuthError(c, err)
		return
	}

	if err := h.store.SetToken(c.Request.Context(), middleware.SessionID(c), resp.Token, req.Remember); err != nil {
		log.Printf("Failed to store session token after login: %v", err)
	}
	c.JSON(http.StatusOK, resp.User)
}

// Me handles GET /users/me.
func (h *UserHandler) Me(c *gin.Context) {
	user, err := h.market.GetProfile(c.Request.Context(), middleware.Token(c))
	if err != nil {
		h.clearOnUnauthorized(c, err)
		respondUpstreamError(c, err, "User not found")
		return
	}
	c.JSON(http.StatusOK, user)
}

// UpdateProfile handles PUT /users/update-profile.
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var req models.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid profile details: " + err.Error()})
		return
	}

	user, err := h.market.UpdateProfile(c.Request.Context(), middleware.Token(c), req)
	if err != nil {
		h.clearOnUnauthorized(c, err)
		respondUpstreamError(c, err, "User not found")
		return
	}
	c.JSON(http.StatusOK, user)
}

// ChangePassword handles PUT /users/change-password.
func (h *UserHandler) ChangePassword(c *gin.Context) {
	var req models.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Current and new password are required"})
		return
	}

	if err := h.market.ChangePassword(c.Request.Context(), middleware.Token(c), req); err != nil {
		h.clearOnUnauthorized(c, err)
		respondUpstreamError(c, err, "User not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password changed"})
}

// Logout handles POST /users/logout. The local session token is cleared even
// when the upstream call fails; a dead upstream must not pin a login.
func (h *UserHandler) Logout(c *gin.Context) {
	if err := h.market.Logout(c.Request.Context(), middleware.Token(c)); err != nil {
		log.Printf("Upstream logout failed (clearing session anyway): %v", err)
	}
	if err := h.store.Clear(c.Request.Context(), middleware.SessionID(c)); err != nil {
		log.Printf("Failed to clear session token on logout: %v", err)
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// respondAuthError surfaces login/registration failures. Upstream rejects
// bad credentials with a 401, which here is a form-level failure rather than
// an expired session.
func (h *UserHandler) respondAuthError(c *gin.Context, err error) {
	var apiErr *apiclient.APIError
	if ok := asAPIError(err, &apiErr); ok && apiErr.StatusCode >= 400 && apiErr.StatusCode < 500 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials or registration details"})
		return
	}
	c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to reach the server, please try again"})
}

// clearOnUnauthorized drops the stored token when upstream rejected it.
func (h *UserHandler) clearOnUnauthorized(c *gin.Context, err error) {
	if apiclient.IsUnauthorized(err) {
		if clearErr := h.store.Clear(c.Request.Context(), middleware.SessionID(c)); clearErr != nil {
			log.Printf("Failed to clear rejected session token: %v", clearErr)
		}
	}
}
