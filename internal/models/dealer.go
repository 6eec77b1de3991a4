package models

// DealerLocation holds a dealer's physical address and map coordinates.
type DealerLocation struct {
	Address   string  `json:"address"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Dealer mirrors the upstream dealer payload.
type Dealer struct {
	ID           string         `json:"_id"`
	AltID        string         `json:"id,omitempty"`
	Name         string         `json:"name"`
	Email        string         `json:"email,omitempty"`
	Phone        string         `json:"phone,omitempty"`
	Whatsapp     string         `json:"whatsapp,omitempty"`
	Location     DealerLocation `json:"location"`
	ProfileImage string         `json:"profileImage,omitempty"`
}

// PaginatedDealers is the envelope returned by the upstream /dealers endpoint.
type PaginatedDealers struct {
	Dealers []Dealer `json:"dealers"`
	Total   int      `json:"total"`
	Page    int      `json:"page"`
	Pages   int      `json:"pages"`
}
