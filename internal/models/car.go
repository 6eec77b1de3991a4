package models

import (
	"encoding/json"
	"time"
)

// CarStatus values known to the status sort. Anything else sorts last.
const (
	StatusAvailable = "available"
	StatusReserved  = "reserved"
	StatusSold      = "sold"
)

// Car mirrors the upstream listing payload. The `dealer` and `user` fields are
// polymorphic (a bare ID string or an embedded object), so they are kept raw
// and resolved through ResolveLister.
type Car struct {
	ID         string          `json:"_id,omitempty"`
	AltID      string          `json:"id,omitempty"`
	Dealer     json.RawMessage `json:"dealer,omitempty"`
	User       json.RawMessage `json:"user,omitempty"`
	ListerType string          `json:"listerType,omitempty"`

	Name         string `json:"name,omitempty"`
	Make         string `json:"make"`
	Model        string `json:"model"`
	Year         int    `json:"year"`
	Transmission string `json:"transmission,omitempty"`
	EngineSize   string `json:"engineSize,omitempty"`
	Condition    string `json:"condition,omitempty"`
	Price        int64  `json:"price"`
	Mileage      int64  `json:"mileage"`
	FuelType     string `json:"fuelType,omitempty"`
	BodyType     string `json:"bodyType,omitempty"`
	Color        string `json:"color,omitempty"`

	ComfortFeatures []string `json:"comfortFeatures,omitempty"`
	SafetyFeatures  []string `json:"safetyFeatures,omitempty"`
	Images          []string `json:"images,omitempty"`
	Status          string   `json:"status,omitempty"`

	CreatedAt *time.Time `json:"createdAt,omitempty"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// Identifier returns the car's stable identity, preferring the Mongo-style
// `_id` over the plain `id` alias. Empty when upstream sent neither.
func (c *Car) Identifier() string {
	if c.ID != "" {
		return c.ID
	}
	return c.AltID
}

// PaginatedCars is the envelope returned by the upstream /cars endpoints.
type PaginatedCars struct {
	Cars  []Car `json:"cars"`
	Total int   `json:"total"`
	Page  int   `json:"page"`
	Pages int   `json:"pages"`
}
