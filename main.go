package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/hibiken/asynq"

	"github.com/Elviskarani/carsawa-frontend-elvis/internal/api"
	"github.com/Elviskarani/carsawa-frontend-elvis/internal/api/handlers"
	"github.com/Elviskarani/carsawa-frontend-elvis/internal/apiclient"
	"github.com/Elviskarani/carsawa-frontend-elvis/internal/browse"
	"github.com/Elviskarani/carsawa-frontend-elvis/internal/cache"
	"github.com/Elviskarani/carsawa-frontend-elvis/internal/config"
	"github.com/Elviskarani/carsawa-frontend-elvis/internal/session"
	"github.com/Elviskarani/carsawa-frontend-elvis/internal/tasks"
)

var runMode = flag.String("m", "all", "Run mode: 'api', 'bg' (background refresh worker), 'all' (default)")

func main() {
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*runMode)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize Cache (Redis). The background worker cannot run without its
	// broker; the API server can, in a degraded mode.
	redisClient, redisErr := cache.ConnectRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if redisErr != nil && cfg.RunMode != "api" {
		log.Fatalf("Failed to connect to Redis: %v", redisErr)
	}
	if redisClient != nil {
		defer func() {
			if err := cache.DisconnectRedis(redisClient); err != nil {
				log.Printf("Error disconnecting from Redis: %v", err)
			}
		}()
	}

	// Upstream marketplace API client
	market := apiclient.New(cfg.MarketAPIURL, cfg.MarketAPITimeout)

	// Listing catalog: one bulk fetch, then in-process filter/shuffle/page
	catalog := browse.NewCatalog(browse.NewClientFetcher(market, cfg.BulkFetchPageSize), cfg.CarsPerPage, nil)

	// Initial mount fetch. A failure is not fatal: the catalog serves 503
	// until the background refresh task succeeds.
	initCtx, cancelInit := context.WithTimeout(context.Background(), cfg.MarketAPITimeout+5*time.Second)
	if err := catalog.Refresh(initCtx); err != nil {
		log.Printf("WARNING: Initial catalog fetch failed: %v", err)
	}
	cancelInit()

	// Session store and refresh scheduling degrade together: with Redis up,
	// tokens are shared across instances and refreshes go through asynq;
	// without it (api mode only) sessions are process-local and refreshes
	// run inline.
	var (
		store      session.Store
		taskClient *tasks.Client
		refresher  handlers.IRefreshEnqueuer
	)
	if redisErr != nil {
		log.Printf("WARNING: Redis unreachable, using in-memory sessions and inline catalog refresh: %v", redisErr)
		store = session.NewMemoryStore(cfg.SessionTTL, cfg.RememberTTL)
		refresher = tasks.NewInlineRefresher(catalog, cfg.MarketAPITimeout+5*time.Second)
	} else {
		store = session.NewRedisStore(redisClient, cfg.SessionTTL, cfg.RememberTTL)
		taskClient = tasks.NewClient(redisClient)
		defer taskClient.Close()
		refresher = taskClient
	}
	taskProcessor := tasks.NewTaskProcessor(cfg, catalog)

	// WaitGroup for managing goroutines
	var wg sync.WaitGroup

	var mainApiSrv *http.Server
	var taskSrv *asynq.Server
	var taskMux *asynq.ServeMux

	periodicCtx, cancelPeriodic := context.WithCancel(context.Background())
	defer cancelPeriodic()

	fmt.Printf("Starting application in '%s' mode...\n", cfg.RunMode)

	apiMode := func() {
		fmt.Println("Starting main API server...")
		router := api.SetupRouter(cfg, market, catalog, store, refresher)
		mainApiSrv = &http.Server{
			Addr:    ":" + cfg.ApiPort,
			Handler: router,
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			fmt.Printf("Main API listening on :%s\n", cfg.ApiPort)
			if err := mainApiSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Fatalf("Main API ListenAndServe error: %v", err)
			}
			fmt.Println("Main API server stopped.")
		}()
	}

	bgMode := func() {
		fmt.Println("Starting background refresh worker...")
		taskSrv, taskMux = tasks.SetupServer(redisClient, taskProcessor)
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := taskSrv.Run(taskMux); err != nil {
				log.Fatalf("Background task server error: %v", err)
			}
			fmt.Println("Background task server stopped.")
		}()
		tasks.StartPeriodicRefresh(periodicCtx, taskClient, cfg.CatalogRefreshInterval)
	}

	switch cfg.RunMode {
	case "api":
		apiMode()
	case "bg":
		bgMode()
	case "all":
		apiMode()
		bgMode()
	default:
		log.Fatalf("Invalid run mode specified: %s.", cfg.RunMode)
	}

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	sig := <-quit
	fmt.Printf("\nReceived signal: %s. Shutting down gracefully...\n", sig)

	cancelPeriodic()

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancelShutdown()

	if mainApiSrv != nil {
		fmt.Println("Shutting down Main API server...")
		if err := mainApiSrv.Shutdown(ctxShutdown); err != nil {
			log.Printf("Main API server shutdown error: %v", err)
		}
	}

	if taskSrv != nil {
		fmt.Println("Shutting down Background Task server...")
		taskSrv.Shutdown()
	}

	// Wait for all server goroutines to finish
	fmt.Println("Waiting for servers to stop...")
	wg.Wait()

	fmt.Println("Server gracefully stopped")
}
