package browse

import (
	"math/rand"
	"time"

	"github.com/Elviskarani/carsawa-frontend-elvis/internal/models"
)

// listerKey buckets a car by who posted it. Cars with no resolvable lister
// share a single "unknown" bucket so they still interleave as one group.
func listerKey(car *models.Car) string {
	lister := models.ResolveLister(car)
	if lister.Kind == models.ListerUnknown {
		return "unknown"
	}
	return lister.Kind.String() + ":" + lister.ID
}

// FairShuffle reorders cars so no single lister dominates consecutive
// positions: cars are grouped per lister, each group is shuffled, and the
// output is built round-robin with a freshly shuffled lister order each
// round. Every input car appears exactly once in the output.
//
// rng may be nil, in which case a time-seeded source is used; tests inject a
// seeded one for reproducibility.
func FairShuffle(cars []models.Car, rng *rand.Rand) []models.Car {
	if len(cars) <= 1 {
		out := make([]models.Car, len(cars))
		copy(out, cars)
		return out
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	groups := make(map[string][]models.Car)
	keys := make([]string, 0)
	for _, car := range cars {
		key := listerKey(&car)
		if _, seen := groups[key]; !seen {
			keys = append(keys, key)
		}
		groups[key] = append(groups[key], car)
	}

	maxLen := 0
	for _, group := range groups {
		rng.Shuffle(len(group), func(i, j int) {
			group[i], group[j] = group[j], group[i]
		})
		if len(group) > maxLen {
			maxLen = len(group)
		}
	}

	out := make([]models.Car, 0, len(cars))
	for round := 0; round < maxLen; round++ {
		rng.Shuffle(len(keys), func(i, j int) {
			keys[i], keys[j] = keys[j], keys[i]
		})
		for _, key := range keys {
			if group := groups[key]; round < len(group) {
				out = append(out, group[round])
			}
		}
	}
	return out
}
