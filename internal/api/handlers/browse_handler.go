package handlers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Elviskarani/carsawa-frontend-elvis/internal/browse"
)

// IRefreshEnqueuer schedules a background refresh of the listing catalog.
type IRefreshEnqueuer interface {
	EnqueueCatalogRefresh() error
}

// BrowseHandler serves the car browse surface: the filtered, fair-shuffled,
// status-sorted, paginated listing pages.
type BrowseHandler struct {
	catalog   browse.ICatalog
	enqueuer  IRefreshEnqueuer
	debouncer *browse.Debouncer
}

// NewBrowseHandler creates a BrowseHandler. The debouncer collapses bursts
// of manual refresh requests into one enqueued task.
func NewBrowseHandler(catalog browse.ICatalog, enqueuer IRefreshEnqueuer, debouncer *browse.Debouncer) *BrowseHandler {
	return &BrowseHandler{catalog: catalog, enqueuer: enqueuer, debouncer: debouncer}
}

// browseResponse mirrors the envelope the original frontend consumed.
type browseResponse struct {
	Cars  interface{} `json:"cars"`
	Total int         `json:"total"`
	Page  int         `json:"page"`
	Pages int         `json:"pages"`
}

// ListCars handles GET /cars. All filter params are optional; page defaults
// to 1 and out-of-range pages clamp back to the first page.
func (h *BrowseHandler) ListCars(c *gin.Context) {
	var filters browse.Filters
	if err := c.ShouldBindQuery(&filters); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid filter parameters"})
		return
	}

	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil {
		page = 1
	}

	result, err := h.catalog.Browse(filters, page)
	if err != nil {
		if err == browse.ErrNotLoaded {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Listings are still loading, please retry"})
			return
		}
		respondUpstreamError(c, err, "Listings not found")
		return
	}

	c.JSON(http.StatusOK, browseResponse{
		Cars:  result.Items,
		Total: result.TotalItems,
		Page:  result.Number,
		Pages: result.TotalPages,
	})
}

// RefreshCatalog handles POST /cars/refresh: a debounced request to re-pull
// the bulk candidate set in the background. The reply reports when the
// current set was fetched so clients can tell how stale it is.
func (h *BrowseHandler) RefreshCatalog(c *gin.Context) {
	h.debouncer.Trigger(func() {
		if err := h.enqueuer.EnqueueCatalogRefresh(); err != nil {
			log.Printf("Failed to enqueue catalog refresh: %v", err)
		}
	})

	resp := gin.H{"message": "Refresh scheduled"}
	if last := h.catalog.LastRefreshed(); !last.IsZero() {
		resp["lastRefreshed"] = last
	}
	c.JSON(http.StatusAccepted, resp)
}
