package compare

import (
	"sync"
	"time"

	"github.com/Elviskarani/carsawa-frontend-elvis/internal/models"
)

// DefaultLimit is how many cars fit in a comparison set.
const DefaultLimit = 4

// noticeTTL is how long the "limit reached" notice stays active before it
// auto-dismisses.
const noticeTTL = 4 * time.Second

// ToggleOutcome reports what a Toggle call did.
type ToggleOutcome int

const (
	ToggleAdded ToggleOutcome = iota
	ToggleRemoved
	ToggleRejected
)

// Notice is a transient user-facing message with an expiry.
type Notice struct {
	Message   string    `json:"message"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Set is a bounded ordered set of cars selected for side-by-side comparison.
// It is ephemeral: nothing is persisted and the set dies with its session.
type Set struct {
	limit int

	mu     sync.Mutex
	cars   []models.Car
	notice *Notice
	now    func() time.Time // injected in tests
}

// NewSet creates an empty comparison set. limit <= 0 uses DefaultLimit.
func NewSet(limit int) *Set {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Set{limit: limit, now: time.Now}
}

// Toggle removes the car when present (by identifier), appends it when
// there is room, and otherwise rejects the addition and raises the
// limit-reached notice without mutating the set.
func (s *Set) Toggle(car models.Car) ToggleOutcome {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := car.Identifier()
	for i := range s.cars {
		if s.cars[i].Identifier() == id {
			s.cars = append(s.cars[:i], s.cars[i+1:]...)
			return ToggleRemoved
		}
	}

	if len(s.cars) >= s.limit {
		s.notice = &Notice{
			Message:   "Comparison limit reached",
			ExpiresAt: s.now().Add(noticeTTL),
		}
		return ToggleRejected
	}

	s.cars = append(s.cars, car)
	return ToggleAdded
}

// Remove drops the car with the given identifier; no-op when absent.
func (s *Set) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.cars {
		if s.cars[i].Identifier() == id {
			s.cars = append(s.cars[:i], s.cars[i+1:]...)
			return true
		}
	}
	return false
}

// Clear empties the set.
func (s *Set) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cars = nil
	s.notice = nil
}

// Cars returns a copy of the set in insertion order.
func (s *Set) Cars() []models.Car {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Car, len(s.cars))
	copy(out, s.cars)
	return out
}

// Len returns the number of cars in the set.
func (s *Set) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.cars)
}

// ActiveNotice returns the limit-reached notice while it has not expired,
// else nil. Reading an expired notice clears it.
func (s *Set) ActiveNotice() *Notice {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.notice == nil {
		return nil
	}
	if s.now().After(s.notice.ExpiresAt) {
		s.notice = nil
		return nil
	}
	n := *s.notice
	return &n
}
