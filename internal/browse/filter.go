package browse

import (
	"strconv"
	"strings"

	"github.com/Elviskarani/carsawa-frontend-elvis/internal/models"
)

// Filters is the browse filter specification. Empty fields impose no
// constraint; all set fields must match (conjunction).
type Filters struct {
	Search       string `form:"search" json:"search"`
	Brand        string `form:"brand" json:"brand"`
	Model        string `form:"model" json:"model"`
	BodyType     string `form:"bodyType" json:"bodyType"`
	FuelType     string `form:"fuelType" json:"fuelType"`
	Transmission string `form:"transmission" json:"transmission"`
	ModelYear    string `form:"modelYear" json:"modelYear"`
	Price        string `form:"price" json:"price"`
	Mileage      string `form:"mileage" json:"mileage"`
}

// IsZero reports whether no filter field is set. Whitespace-only search
// counts as unset.
func (f Filters) IsZero() bool {
	return strings.TrimSpace(f.Search) == "" && f.Brand == "" && f.Model == "" &&
		f.BodyType == "" && f.FuelType == "" && f.Transmission == "" &&
		f.ModelYear == "" && f.Price == "" && f.Mileage == ""
}

// Apply returns the cars matching every set predicate, preserving input
// order. Pure: the input slice is never mutated.
func Apply(cars []models.Car, f Filters) []models.Car {
	out := make([]models.Car, 0, len(cars))
	for _, car := range cars {
		if matches(&car, f) {
			out = append(out, car)
		}
	}
	return out
}

func matches(car *models.Car, f Filters) bool {
	if term := strings.ToLower(strings.TrimSpace(f.Search)); term != "" {
		haystack := strings.ToLower(car.Make + " " + car.Model + " " + car.BodyType + " " + car.FuelType)
		if !strings.Contains(haystack, term) {
			return false
		}
	}
	if f.Brand != "" && car.Make != f.Brand {
		return false
	}
	if f.Model != "" && car.Model != f.Model {
		return false
	}
	if f.BodyType != "" && car.BodyType != f.BodyType {
		return false
	}
	if f.FuelType != "" && car.FuelType != f.FuelType {
		return false
	}
	if f.Transmission != "" && car.Transmission != f.Transmission {
		return false
	}
	if f.ModelYear != "" && strconv.Itoa(car.Year) != f.ModelYear {
		return false
	}
	if f.Price != "" {
		if min, max, open, ok := parseRange(f.Price); ok {
			if car.Price < min || (!open && car.Price > max) {
				return false
			}
		}
	}
	if f.Mileage != "" {
		if min, max, open, ok := parseRange(f.Mileage); ok {
			if car.Mileage < min || (!open && car.Mileage > max) {
				return false
			}
		}
	}
	return true
}

// parseRange parses the "<min>-<max>" and "<min>+" range forms. open is true
// for the "+" form (no upper bound). A malformed range returns ok=false and
// the field is treated as unset.
func parseRange(s string) (min, max int64, open, ok bool) {
	s = strings.TrimSpace(s)
	if rest, found := strings.CutSuffix(s, "+"); found {
		min, err := strconv.ParseInt(rest, 10, 64)
		if err != nil {
			return 0, 0, false, false
		}
		return min, 0, true, true
	}
	parts := strings.SplitN(s, "-", 2)
	if len(parts) != 2 {
		return 0, 0, false, false
	}
	min, errMin := strconv.ParseInt(parts[0], 10, 64)
	max, errMax := strconv.ParseInt(parts[1], 10, 64)
	if errMin != nil || errMax != nil {
		return 0, 0, false, false
	}
	return min, max, false, true
}
