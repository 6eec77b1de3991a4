package tasks

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"github.com/Elviskarani/carsawa-frontend-elvis/internal/browse"
	"github.com/Elviskarani/carsawa-frontend-elvis/internal/config"
)

// Task types handled by the background worker.
const (
	TypeCatalogRefresh = "catalog:refresh"
)

// --- Task Client (Enqueuing tasks) ---

// Client wraps the asynq client with the task types this gateway enqueues.
type Client struct {
	asynq *asynq.Client
}

// NewClient creates a task client over the given redis connection.
func NewClient(rdb *redis.Client) *Client {
	clientOpt := asynq.RedisClientOpt{
		Addr:     rdb.Options().Addr,
		Password: rdb.Options().Password,
		DB:       rdb.Options().DB,
	}
	return &Client{asynq: asynq.NewClient(clientOpt)}
}

// EnqueueCatalogRefresh schedules a bulk re-fetch of the listing catalog.
// Refreshes are idempotent, so duplicates within a short window are dropped.
func (c *Client) EnqueueCatalogRefresh() error {
	task := asynq.NewTask(TypeCatalogRefresh, nil)
	_, err := c.asynq.Enqueue(task, asynq.Unique(30*time.Second), asynq.Queue("default"))
	if err != nil && err != asynq.ErrDuplicateTask {
		return fmt.Errorf("failed to enqueue catalog refresh: %w", err)
	}
	return nil
}

// Close releases the underlying asynq client.
func (c *Client) Close() error {
	return c.asynq.Close()
}

// InlineRefresher runs catalog refreshes in-process, used in api mode when
// no task broker is available. It exposes the same fire-and-forget enqueue
// surface as Client.
type InlineRefresher struct {
	catalog browse.ICatalog
	timeout time.Duration
}

// NewInlineRefresher creates an InlineRefresher with the given per-refresh
// timeout.
func NewInlineRefresher(catalog browse.ICatalog, timeout time.Duration) *InlineRefresher {
	return &InlineRefresher{catalog: catalog, timeout: timeout}
}

// EnqueueCatalogRefresh runs the refresh on its own goroutine. Failures are
// logged, not retried; the next refresh trigger tries again.
func (r *InlineRefresher) EnqueueCatalogRefresh() error {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
		defer cancel()
		if err := r.catalog.Refresh(ctx); err != nil {
			log.Printf("Inline catalog refresh failed: %v", err)
		}
	}()
	return nil
}

// --- Task Server (Processing tasks) ---

// TaskProcessor handles the processing of tasks.
// It holds dependencies needed by task handlers.
type TaskProcessor struct {
	cfg     *config.Config
	catalog browse.ICatalog
}

// NewTaskProcessor creates a TaskProcessor.
func NewTaskProcessor(cfg *config.Config, catalog browse.ICatalog) *TaskProcessor {
	return &TaskProcessor{cfg: cfg, catalog: catalog}
}

// HandleCatalogRefreshTask re-pulls the bulk candidate set. A failed fetch
// returns the error so asynq retries with backoff; the stale set keeps
// serving in the meantime.
func (p *TaskProcessor) HandleCatalogRefreshTask(ctx context.Context, t *asynq.Task) error {
	ctx, cancel := context.WithTimeout(ctx, p.cfg.MarketAPITimeout+5*time.Second)
	defer cancel()
	if err := p.catalog.Refresh(ctx); err != nil {
		return fmt.Errorf("catalog refresh task failed: %w", err)
	}
	return nil
}

// SetupServer configures and returns an Asynq server instance.
func SetupServer(rdb *redis.Client, processor *TaskProcessor) (*asynq.Server, *asynq.ServeMux) {
	serverOpt := asynq.RedisClientOpt{
		Addr:     rdb.Options().Addr,
		Password: rdb.Options().Password,
		DB:       rdb.Options().DB,
	}

	srv := asynq.NewServer(
		serverOpt,
		asynq.Config{
			Concurrency: 2,
			Queues: map[string]int{
				"default": 1,
			},
			ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
				log.Printf("[Asynq Error] Task Type: %s, Error: %v", task.Type(), err)
			}),
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeCatalogRefresh, processor.HandleCatalogRefreshTask)

	return srv, mux
}

// StartPeriodicRefresh enqueues a catalog refresh on a fixed interval until
// ctx is cancelled. Runs alongside the asynq server in bg mode.
func StartPeriodicRefresh(ctx context.Context, client *Client, interval time.Duration) {
	if interval <= 0 {
		return
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := client.EnqueueCatalogRefresh(); err != nil {
					log.Printf("Periodic catalog refresh enqueue failed: %v", err)
				}
			}
		}
	}()
}
