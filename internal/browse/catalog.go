package browse

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"sync"
	"time"

	"github.com/Elviskarani/carsawa-frontend-elvis/internal/apiclient"
	"github.com/Elviskarani/carsawa-frontend-elvis/internal/models"
)

// ErrNotLoaded is returned by Browse before the first successful bulk fetch.
var ErrNotLoaded = errors.New("catalog not loaded yet")

// Fetcher retrieves the full candidate listing set in one bulk call.
type Fetcher interface {
	FetchAll(ctx context.Context) ([]models.Car, error)
}

// ClientFetcher adapts the upstream API client to the Fetcher interface,
// requesting a single large page so filtering can run client-side.
type ClientFetcher struct {
	client   *apiclient.Client
	pageSize int
}

// NewClientFetcher creates a ClientFetcher with the given bulk page size.
func NewClientFetcher(client *apiclient.Client, pageSize int) *ClientFetcher {
	return &ClientFetcher{client: client, pageSize: pageSize}
}

// FetchAll pulls the candidate set from the upstream /cars endpoint.
func (f *ClientFetcher) FetchAll(ctx context.Context) ([]models.Car, error) {
	resp, err := f.client.GetAllCars(ctx, apiclient.CarQuery{Page: 1, PageSize: f.pageSize})
	if err != nil {
		return nil, fmt.Errorf("bulk fetch failed: %w", err)
	}
	return resp.Cars, nil
}

// ICatalog defines the browse-side view of the listing catalog.
type ICatalog interface {
	Refresh(ctx context.Context) error
	Browse(filters Filters, page int) (Page, error)
	CarByID(id string) (*models.Car, bool)
	LastRefreshed() time.Time
}

// catalog holds the bulk-fetched listing set and runs the
// filter -> fair-shuffle -> paginate -> status-sort pipeline over it.
//
// The filtered+shuffled order is cached per filter signature so that page
// navigation reslices the same order instead of re-shuffling; a filter
// change or a refresh invalidates the cache.
type catalog struct {
	fetcher  Fetcher
	pageSize int

	mu        sync.Mutex
	rng       *rand.Rand
	all       []models.Car
	loaded    bool
	fetchedAt time.Time

	orderedFor Filters
	ordered    []models.Car
	haveOrder  bool
}

// NewCatalog creates a catalog over the given fetcher. rng may be nil for a
// time-seeded source; tests pass a seeded one.
func NewCatalog(fetcher Fetcher, pageSize int, rng *rand.Rand) ICatalog {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &catalog{fetcher: fetcher, pageSize: pageSize, rng: rng}
}

// Refresh replaces the candidate set with a fresh bulk fetch and invalidates
// the cached ordering. On failure the previous set stays in place.
func (c *catalog) Refresh(ctx context.Context) error {
	cars, err := c.fetcher.FetchAll(ctx)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.all = cars
	c.loaded = true
	c.fetchedAt = time.Now()
	c.haveOrder = false
	c.ordered = nil
	c.mu.Unlock()

	log.Printf("Catalog refreshed: %d cars loaded", len(cars))
	return nil
}

// Browse runs the pipeline for the given filters and returns the requested
// page: the page slice is cut from the cached filtered+shuffled order, then
// stable-sorted by status so available listings lead within the page.
func (c *catalog) Browse(filters Filters, page int) (Page, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.loaded {
		return Page{}, ErrNotLoaded
	}

	if !c.haveOrder || c.orderedFor != filters {
		candidates := c.all
		if !filters.IsZero() {
			candidates = Apply(c.all, filters)
		}
		c.ordered = FairShuffle(candidates, c.rng)
		c.orderedFor = filters
		c.haveOrder = true
	}

	pg := Paginate(c.ordered, page, c.pageSize)
	pg.Items = SortByStatus(pg.Items)
	return pg, nil
}

// CarByID looks a car up in the cached candidate set.
func (c *catalog) CarByID(id string) (*models.Car, bool) {
	if id == "" {
		return nil, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.all {
		if c.all[i].Identifier() == id {
			car := c.all[i]
			return &car, true
		}
	}
	return nil, false
}

// LastRefreshed reports when the candidate set was last fetched.
func (c *catalog) LastRefreshed() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fetchedAt
}
