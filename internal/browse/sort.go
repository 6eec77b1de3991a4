package browse

import (
	"sort"
	"strings"

	"github.com/Elviskarani/carsawa-frontend-elvis/internal/models"
)

// statusPriority orders listings for display: available first, then
// reserved, then sold. Anything else (including empty) goes last.
var statusPriority = map[string]int{
	models.StatusAvailable: 1,
	models.StatusReserved:  2,
	models.StatusSold:      3,
}

const unknownStatusPriority = 99

func priorityOf(status string) int {
	if p, ok := statusPriority[strings.ToLower(status)]; ok {
		return p
	}
	return unknownStatusPriority
}

// SortByStatus returns a copy of cars stable-sorted by status priority.
// Stability matters: the incoming fair-shuffled order is the tie-break.
func SortByStatus(cars []models.Car) []models.Car {
	out := make([]models.Car, len(cars))
	copy(out, cars)
	sort.SliceStable(out, func(i, j int) bool {
		return priorityOf(out[i].Status) < priorityOf(out[j].Status)
	})
	return out
}
