package api

import (
	"github.com/gin-gonic/gin"

	"github.com/Elviskarani/carsawa-frontend-elvis/internal/api/handlers"
	"github.com/Elviskarani/carsawa-frontend-elvis/internal/api/middleware"
	"github.com/Elviskarani/carsawa-frontend-elvis/internal/apiclient"
	"github.com/Elviskarani/carsawa-frontend-elvis/internal/browse"
	"github.com/Elviskarani/carsawa-frontend-elvis/internal/compare"
	"github.com/Elviskarani/carsawa-frontend-elvis/internal/config"
	"github.com/Elviskarani/carsawa-frontend-elvis/internal/session"
)

// SetupRouter configures and returns the main Gin engine.
func SetupRouter(
	cfg *config.Config,
	market *apiclient.Client,
	catalog browse.ICatalog,
	store session.Store,
	refreshEnqueuer handlers.IRefreshEnqueuer,
) *gin.Engine {
	r := gin.Default()

	// Apply global middleware first (order matters)
	rateLimiter := middleware.NewRateLimiterMiddleware(cfg)
	r.Use(middleware.CORSMiddleware())
	r.Use(rateLimiter.Limit())
	r.Use(middleware.SessionMiddleware())

	// Handlers
	browseHandler := handlers.NewBrowseHandler(catalog, refreshEnqueuer, browse.NewDebouncer(cfg.SearchDebounce))
	carHandler := handlers.NewCarHandler(market)
	dealerHandler := handlers.NewDealerHandler(market)
	userHandler := handlers.NewUserHandler(market, store)
	favoritesHandler := handlers.NewFavoritesHandler(market, store)
	compareHandler := handlers.NewCompareHandler(compare.NewManager(cfg.CompareLimit), catalog)

	// Public routes
	r.GET("/cars", browseHandler.ListCars)
	r.POST("/cars/refresh", browseHandler.RefreshCatalog)
	r.GET("/cars/:id", carHandler.GetCarByID)

	r.GET("/dealers", dealerHandler.ListDealers)
	r.GET("/dealers/:id", dealerHandler.GetDealerByID)
	r.GET("/dealers/:id/cars", dealerHandler.GetDealerCars)

	r.POST("/users/register", userHandler.Register)
	r.POST("/users/login", userHandler.Login)

	// Comparison set is session scoped, not account scoped
	r.GET("/compare", compareHandler.Get)
	r.POST("/compare/toggle/:carId", compareHandler.Toggle)
	r.DELETE("/compare/:carId", compareHandler.Remove)
	r.DELETE("/compare", compareHandler.Clear)

	// Authenticated routes
	authRequired := r.Group("/")
	authRequired.Use(middleware.AuthMiddleware(store))
	{
		authRequired.GET("/users/me", userHandler.Me)
		authRequired.PUT("/users/update-profile", userHandler.UpdateProfile)
		authRequired.PUT("/users/change-password", userHandler.ChangePassword)
		authRequired.POST("/users/logout", userHandler.Logout)

		authRequired.POST("/favorites/toggle/:carId", favoritesHandler.Toggle)
		authRequired.GET("/favorites/check/:carId", favoritesHandler.Check)
		authRequired.GET("/favorites", favoritesHandler.List)
		authRequired.GET("/favorites/count", favoritesHandler.Count)
		authRequired.DELETE("/favorites/:carId", favoritesHandler.Remove)
	}

	return r
}
