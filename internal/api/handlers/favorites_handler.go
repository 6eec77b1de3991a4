package handlers

import (
	"context"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Elviskarani/carsawa-frontend-elvis/internal/api/middleware"
	"github.com/Elviskarani/carsawa-frontend-elvis/internal/apiclient"
	"github.com/Elviskarani/carsawa-frontend-elvis/internal/models"
	"github.com/Elviskarani/carsawa-frontend-elvis/internal/session"
)

// IFavoritesAPI is the slice of the upstream client the favorites surface needs.
type IFavoritesAPI interface {
	ToggleFavorite(ctx context.Context, token, carID string) (*models.FavoriteToggleResponse, error)
	CheckFavorite(ctx context.Context, token, carID string) (*models.FavoriteCheckResponse, error)
	GetFavorites(ctx context.Context, token string, page, limit int) (*models.UserFavorites, error)
	RemoveFavorite(ctx context.Context, token, carID string) error
	FavoriteCount(ctx context.Context, token string) (*models.FavoriteCountResponse, error)
}

// FavoritesHandler proxies the favorites relationship to the upstream API.
// The upstream persists favorites; this gateway only forwards the token.
type FavoritesHandler struct {
	market IFavoritesAPI
	store  session.Store
}

// NewFavoritesHandler creates a FavoritesHandler.
func NewFavoritesHandler(market IFavoritesAPI, store session.Store) *FavoritesHandler {
	return &FavoritesHandler{market: market, store: store}
}

// Toggle handles POST /favorites/toggle/:carId.
func (h *FavoritesHandler) Toggle(c *gin.Context) {
	resp, err := h.market.ToggleFavorite(c.Request.Context(), middleware.Token(c), c.Param("carId"))
	if err != nil {
		h.fail(c, err, "Car not found")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Check handles GET /favorites/check/:carId.
func (h *FavoritesHandler) Check(c *gin.Context) {
	resp, err := h.market.CheckFavorite(c.Request.Context(), middleware.Token(c), c.Param("carId"))
	if err != nil {
		h.fail(c, err, "Car not found")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// List handles GET /favorites.
func (h *FavoritesHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	resp, err := h.market.GetFavorites(c.Request.Context(), middleware.Token(c), page, limit)
	if err != nil {
		h.fail(c, err, "Favorites not found")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Remove handles DELETE /favorites/:carId.
func (h *FavoritesHandler) Remove(c *gin.Context) {
	carID := c.Param("carId")
	if err := h.market.RemoveFavorite(c.Request.Context(), middleware.Token(c), carID); err != nil {
		h.fail(c, err, "Favorite not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Favorite removed", "carId": carID})
}

// Count handles GET /favorites/count.
func (h *FavoritesHandler) Count(c *gin.Context) {
	resp, err := h.market.FavoriteCount(c.Request.Context(), middleware.Token(c))
	if err != nil {
		h.fail(c, err, "Favorites not found")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// fail maps upstream failures, clearing the stored token when the upstream
// rejected it so the next request prompts a re-login instead of looping.
func (h *FavoritesHandler) fail(c *gin.Context, err error, notFoundMsg string) {
	if apiclient.IsUnauthorized(err) {
		if clearErr := h.store.Clear(c.Request.Context(), middleware.SessionID(c)); clearErr != nil {
			log.Printf("Failed to clear rejected session token: %v", clearErr)
		}
	}
	respondUpstreamError(c, err, notFoundMsg)
}
