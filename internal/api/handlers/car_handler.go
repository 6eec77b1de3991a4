package handlers

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Elviskarani/carsawa-frontend-elvis/internal/models"
)

// ICarAPI is the slice of the upstream client the car detail page needs.
type ICarAPI interface {
	GetCarByID(ctx context.Context, id string) (*models.Car, error)
	GetDealerByID(ctx context.Context, id string) (*models.Dealer, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}

// CarHandler serves single-car detail views, resolving the polymorphic
// lister reference and enriching the response with contact details.
type CarHandler struct {
	market ICarAPI
}

// NewCarHandler creates a CarHandler.
func NewCarHandler(market ICarAPI) *CarHandler {
	return &CarHandler{market: market}
}

// carDetailResponse is the car plus its resolved lister contact. Dealer and
// User are mutually exclusive; both are nil when the lister is unknown or
// the contact lookup failed.
type carDetailResponse struct {
	Car        *models.Car    `json:"car"`
	ListerType string         `json:"listerType"`
	Dealer     *models.Dealer `json:"dealer,omitempty"`
	User       *models.User   `json:"user,omitempty"`
}

// GetCarByID handles GET /cars/:id. A failed contact lookup degrades
// gracefully: the car still renders, contact details are simply absent.
func (h *CarHandler) GetCarByID(c *gin.Context) {
	id := c.Param("id")

	car, err := h.market.GetCarByID(c.Request.Context(), id)
	if err != nil {
		respondUpstreamError(c, err, "Car not found")
		return
	}

	resp := carDetailResponse{Car: car}
	lister := models.ResolveLister(car)
	resp.ListerType = lister.Kind.String()

	switch lister.Kind {
	case models.ListerDealer:
		dealer, err := h.market.GetDealerByID(c.Request.Context(), lister.ID)
		if err != nil {
			log.Printf("Best-effort dealer lookup failed for car %s (dealer %s): %v", car.Identifier(), lister.ID, err)
		} else {
			resp.Dealer = dealer
		}
	case models.ListerUser:
		user, err := h.market.GetUserByID(c.Request.Context(), lister.ID)
		if err != nil {
			log.Printf("Best-effort user lookup failed for car %s (user %s): %v", car.Identifier(), lister.ID, err)
		} else {
			resp.User = user
		}
	}

	c.JSON(http.StatusOK, resp)
}
