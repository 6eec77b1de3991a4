package browse

import "github.com/Elviskarani/carsawa-frontend-elvis/internal/models"

// Page is one window of an ordered result set plus pagination metadata.
type Page struct {
	Items      []models.Car
	Number     int
	Size       int
	TotalItems int
	TotalPages int
}

// Paginate slices cars into the 1-indexed page of the given size. A page
// beyond the last (a filter change can shrink the set under the current
// page) clamps back to page 1; so does page < 1. An empty input yields
// zero pages and an empty page 1.
func Paginate(cars []models.Car, page, size int) Page {
	if size <= 0 {
		size = 1
	}
	totalItems := len(cars)
	totalPages := (totalItems + size - 1) / size

	if page < 1 || (page > totalPages && totalPages > 0) {
		page = 1
	}

	start := (page - 1) * size
	end := start + size
	if start > totalItems {
		start = totalItems
	}
	if end > totalItems {
		end = totalItems
	}

	items := make([]models.Car, end-start)
	copy(items, cars[start:end])

	return Page{
		Items:      items,
		Number:     page,
		Size:       size,
		TotalItems: totalItems,
		TotalPages: totalPages,
	}
}
