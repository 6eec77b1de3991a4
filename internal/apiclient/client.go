package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Elviskarani/carsawa-frontend-elvis/internal/models"
)

// Client is the HTTP client for the external marketplace API. It is stateless
// with respect to authentication: calls that need a bearer token take it
// explicitly, so the session lifecycle stays with the caller.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a Client for the given base URL (e.g. "https://api.example.com").
// The "/api" prefix of the upstream routes is added per request.
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// do performs a JSON request against the upstream API. A non-empty token is
// sent as a bearer Authorization header. The decoded body is written into out
// when out is non-nil.
func (c *Client) do(ctx context.Context, method, endpoint, token string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body for %s: %w", endpoint, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+"/api"+endpoint, reader)
	if err != nil {
		return fmt.Errorf("failed to build request for %s: %w", endpoint, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &APIError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(msg))}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response from %s: %w", endpoint, err)
		}
	}
	return nil
}

// ---- Cars ----

// CarQuery holds the optional query parameters for GetAllCars. Zero values
// are omitted from the request.
type CarQuery struct {
	Page     int
	PageSize int
	Status   string
	Sort     string
}

func (q CarQuery) encode() string {
	values := url.Values{}
	if q.Page > 0 {
		values.Set("page", strconv.Itoa(q.Page))
	}
	if q.PageSize > 0 {
		values.Set("pageSize", strconv.Itoa(q.PageSize))
	}
	if q.Status != "" {
		values.Set("status", q.Status)
	}
	if q.Sort != "" {
		values.Set("sort", q.Sort)
	}
	if len(values) == 0 {
		return ""
	}
	return "?" + values.Encode()
}

// GetAllCars fetches a page of listings. The browse catalog calls this once
// with a large page size to pull the full candidate set into memory.
func (c *Client) GetAllCars(ctx context.Context, q CarQuery) (*models.PaginatedCars, error) {
	var out models.PaginatedCars
	if err := c.do(ctx, http.MethodGet, "/cars"+q.encode(), "", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetCarByID fetches a single listing.
func (c *Client) GetCarByID(ctx context.Context, id string) (*models.Car, error) {
	if id == "" {
		return nil, fmt.Errorf("car ID cannot be empty")
	}
	var out models.Car
	if err := c.do(ctx, http.MethodGet, "/cars/"+url.PathEscape(id), "", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetCarsByDealer fetches a dealer's listings.
func (c *Client) GetCarsByDealer(ctx context.Context, dealerID string, q CarQuery) (*models.PaginatedCars, error) {
	if dealerID == "" {
		return nil, fmt.Errorf("dealer ID cannot be empty")
	}
	var out models.PaginatedCars
	endpoint := "/dealers/" + url.PathEscape(dealerID) + "/cars" + q.encode()
	if err := c.do(ctx, http.MethodGet, endpoint, "", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ---- Dealers ----

// GetAllDealers fetches a page of dealer profiles.
func (c *Client) GetAllDealers(ctx context.Context, page, pageSize int) (*models.PaginatedDealers, error) {
	var out models.PaginatedDealers
	endpoint := "/dealers" + CarQuery{Page: page, PageSize: pageSize}.encode()
	if err := c.do(ctx, http.MethodGet, endpoint, "", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetDealerByID fetches a single dealer profile.
func (c *Client) GetDealerByID(ctx context.Context, id string) (*models.Dealer, error) {
	if id == "" {
		return nil, fmt.Errorf("dealer ID cannot be empty")
	}
	var out models.Dealer
	if err := c.do(ctx, http.MethodGet, "/dealers/"+url.PathEscape(id), "", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetUserByID fetches a user's public profile, used to show contact details
// for individually listed cars.
func (c *Client) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	if id == "" {
		return nil, fmt.Errorf("user ID cannot be empty")
	}
	var out models.User
	if err := c.do(ctx, http.MethodGet, "/users/"+url.PathEscape(id), "", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ---- Users / auth ----

// Register creates an account and returns the profile plus a fresh token.
func (c *Client) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error) {
	var out models.AuthResponse
	if err := c.do(ctx, http.MethodPost, "/users/register", "", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Login authenticates and returns the profile plus a fresh token.
func (c *Client) Login(ctx context.Context, email, password string) (*models.AuthResponse, error) {
	body := map[string]string{"email": email, "password": password}
	var out models.AuthResponse
	if err := c.do(ctx, http.MethodPost, "/users/login", "", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetProfile fetches the authenticated user's profile.
func (c *Client) GetProfile(ctx context.Context, token string) (*models.User, error) {
	var out models.User
	if err := c.do(ctx, http.MethodGet, "/users/me", token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateProfile updates the authenticated user's profile.
func (c *Client) UpdateProfile(ctx context.Context, token string, req models.UpdateProfileRequest) (*models.User, error) {
	var out models.User
	if err := c.do(ctx, http.MethodPut, "/users/update-profile", token, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ChangePassword changes the authenticated user's password.
func (c *Client) ChangePassword(ctx context.Context, token string, req models.ChangePasswordRequest) error {
	return c.do(ctx, http.MethodPut, "/users/change-password", token, req, nil)
}

// Logout invalidates the token upstream. Callers clear the local session
// regardless of the outcome.
func (c *Client) Logout(ctx context.Context, token string) error {
	return c.do(ctx, http.MethodPost, "/users/logout", token, nil, nil)
}

// ---- Favorites ----

// ToggleFavorite flips the favorite state of a car for the authenticated user.
func (c *Client) ToggleFavorite(ctx context.Context, token, carID string) (*models.FavoriteToggleResponse, error) {
	var out models.FavoriteToggleResponse
	if err := c.do(ctx, http.MethodPost, "/favorites/toggle/"+url.PathEscape(carID), token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CheckFavorite reports whether a car is favorited by the authenticated user.
func (c *Client) CheckFavorite(ctx context.Context, token, carID string) (*models.FavoriteCheckResponse, error) {
	var out models.FavoriteCheckResponse
	if err := c.do(ctx, http.MethodGet, "/favorites/check/"+url.PathEscape(carID), token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetFavorites fetches a page of the authenticated user's favorites.
func (c *Client) GetFavorites(ctx context.Context, token string, page, limit int) (*models.UserFavorites, error) {
	values := url.Values{}
	values.Set("page", strconv.Itoa(page))
	values.Set("limit", strconv.Itoa(limit))
	var out models.UserFavorites
	if err := c.do(ctx, http.MethodGet, "/favorites?"+values.Encode(), token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RemoveFavorite removes a car from the authenticated user's favorites.
func (c *Client) RemoveFavorite(ctx context.Context, token, carID string) error {
	return c.do(ctx, http.MethodDelete, "/favorites/"+url.PathEscape(carID), token, nil, nil)
}

// FavoriteCount returns how many cars the authenticated user has favorited.
func (c *Client) FavoriteCount(ctx context.Context, token string) (*models.FavoriteCountResponse, error) {
	var out models.FavoriteCountResponse
	if err := c.do(ctx, http.MethodGet, "/favorites/count", token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
