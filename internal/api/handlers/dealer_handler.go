package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Elviskarani/carsawa-frontend-elvis/internal/apiclient"
	"github.com/Elviskarani/carsawa-frontend-elvis/internal/models"
)

// IDealerAPI is the slice of the upstream client the dealer pages need.
type IDealerAPI interface {
	GetAllDealers(ctx context.Context, page, pageSize int) (*models.PaginatedDealers, error)
	GetDealerByID(ctx context.Context, id string) (*models.Dealer, error)
	GetCarsByDealer(ctx context.Context, dealerID string, q apiclient.CarQuery) (*models.PaginatedCars, error)
}

// DealerHandler serves dealer directory and profile views.
type DealerHandler struct {
	market IDealerAPI
}

// NewDealerHandler creates a DealerHandler.
func NewDealerHandler(market IDealerAPI) *DealerHandler {
	return &DealerHandler{market: market}
}

// ListDealers handles GET /dealers.
func (h *DealerHandler) ListDealers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "12"))

	resp, err := h.market.GetAllDealers(c.Request.Context(), page, pageSize)
	if err != nil {
		respondUpstreamError(c, err, "Dealers not found")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetDealerByID handles GET /dealers/:id.
func (h *DealerHandler) GetDealerByID(c *gin.Context) {
	dealer, err := h.market.GetDealerByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondUpstreamError(c, err, "Dealer not found")
		return
	}
	c.JSON(http.StatusOK, dealer)
}

// GetDealerCars handles GET /dealers/:id/cars.
func (h *DealerHandler) GetDealerCars(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "9"))

	q := apiclient.CarQuery{
		Page:     page,
		PageSize: pageSize,
		Status:   c.Query("status"),
		Sort:     c.Query("sort"),
	}
	resp, err := h.market.GetCarsByDealer(c.Request.Context(), c.Param("id"), q)
	if err != nil {
		respondUpstreamError(c, err, "Dealer not found")
		return
	}
	c.JSON(http.StatusOK, resp)
}
