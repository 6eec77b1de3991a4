package models

// FavoriteToggleResponse is returned by POST /favorites/toggle/{carId}.
type FavoriteToggleResponse struct {
	Message     string `json:"message,omitempty"`
	IsFavorited bool   `json:"isFavorited"`
	CarID       string `json:"carId"`
}

// FavoriteCheckResponse is returned by GET /favorites/check/{carId}.
type FavoriteCheckResponse struct {
	IsFavorited bool   `json:"isFavorited"`
	CarID       string `json:"carId"`
}

// FavoriteCountResponse is returned by GET /favorites/count.
type FavoriteCountResponse struct {
	Count int `json:"count"`
}

// FavoriteEntry is one saved car in the favorites list.
type FavoriteEntry struct {
	ID        string `json:"_id"`
	User      string `json:"user"`
	Car       Car    `json:"car"`
	CreatedAt string `json:"createdAt,omitempty"`
}

// FavoritesPagination describes the favorites list window.
type FavoritesPagination struct {
	CurrentPage  int `json:"currentPage"`
	TotalPages   int `json:"totalPages"`
	TotalItems   int `json:"totalItems"`
	ItemsPerPage int `json:"itemsPerPage"`
}

// UserFavorites is the envelope returned by GET /favorites.
type UserFavorites struct {
	Favorites  []FavoriteEntry     `json:"favorites"`
	Pagination FavoritesPagination `json:"pagination"`
}
