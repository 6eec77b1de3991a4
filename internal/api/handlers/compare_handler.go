package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Elviskarani/carsawa-frontend-elvis/internal/api/middleware"
	"github.com/Elviskarani/carsawa-frontend-elvis/internal/browse"
	"github.com/Elviskarani/carsawa-frontend-elvis/internal/compare"
	"github.com/Elviskarani/carsawa-frontend-elvis/internal/models"
)

// CompareHandler serves the session-scoped comparison set. Cars are looked
// up in the catalog's cached candidate set, so only browsable cars can be
// compared.
type CompareHandler struct {
	sets    *compare.Manager
	catalog browse.ICatalog
}

// NewCompareHandler creates a CompareHandler.
func NewCompareHandler(sets *compare.Manager, catalog browse.ICatalog) *CompareHandler {
	return &CompareHandler{sets: sets, catalog: catalog}
}

// compareResponse is the current set plus any active limit notice.
type compareResponse struct {
	Cars   []models.Car    `json:"cars"`
	Count  int             `json:"count"`
	Notice *compare.Notice `json:"notice,omitempty"`
}

func (h *CompareHandler) respondSet(c *gin.Context, set *compare.Set, status int) {
	cars := set.Cars()
	c.JSON(status, compareResponse{
		Cars:   cars,
		Count:  len(cars),
		Notice: set.ActiveNotice(),
	})
}

// Get handles GET /compare.
func (h *CompareHandler) Get(c *gin.Context) {
	h.respondSet(c, h.sets.ForSession(middleware.SessionID(c)), http.StatusOK)
}

// Toggle handles POST /compare/toggle/:carId. Toggling a 5th car in leaves
// the set unchanged and surfaces the limit notice in the response.
func (h *CompareHandler) Toggle(c *gin.Context) {
	car, ok := h.catalog.CarByID(c.Param("carId"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Car not found"})
		return
	}

	set := h.sets.ForSession(middleware.SessionID(c))
	switch set.Toggle(*car) {
	case compare.ToggleRejected:
		h.respondSet(c, set, http.StatusConflict)
	default:
		h.respondSet(c, set, http.StatusOK)
	}
}

// Remove handles DELETE /compare/:carId.
func (h *CompareHandler) Remove(c *gin.Context) {
	set := h.sets.ForSession(middleware.SessionID(c))
	set.Remove(c.Param("carId"))
	h.respondSet(c, set, http.StatusOK)
}

// Clear handles DELETE /compare.
func (h *CompareHandler) Clear(c *gin.Context) {
	set := h.sets.ForSession(middleware.SessionID(c))
	set.Clear()
	h.respondSet(c, set, http.StatusOK)
}
