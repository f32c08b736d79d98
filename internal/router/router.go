package router

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/yummiapp/yummi-api/internal/config"
	"github.com/yummiapp/yummi-api/internal/handlers"
	"github.com/yummiapp/yummi-api/internal/logger"
	"github.com/yummiapp/yummi-api/internal/middleware"
	"github.com/yummiapp/yummi-api/internal/provider"
	"github.com/yummiapp/yummi-api/internal/repository"
	"github.com/yummiapp/yummi-api/internal/service"
	"github.com/yummiapp/yummi-api/internal/state"
	"github.com/yummiapp/yummi-api/internal/ws"
	"gorm.io/gorm"
)

var allowedOrigins = []string{
	"https://yummi.app",
	"https://www.yummi.app",
}

// Deps are the long-lived collaborators the routes are built on. The HTTP
// client and hub are owned by the caller so they can be shut down with the
// process.
type Deps struct {
	DB         *gorm.DB
	HTTPClient *http.Client
	Hub        *ws.Hub
	Store      *state.Store
}

// SetupRouter sets up the Gin router. Background work started here stops
// when ctx is done.
func SetupRouter(ctx context.Context, cfg *config.Config, deps Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowCredentials = true
	corsConfig.AllowOrigins = allowedOrigins
	corsConfig.AddAllowHeaders(middleware.IDHeader, logger.RequestIDHeader)
	r.Use(cors.New(corsConfig))

	// Add request ID middleware for request correlation
	r.Use(logger.RequestIDMiddleware())

	// Ping route for liveness checks
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	// Upstream providers share one HTTP client
	recipeProvider := provider.NewRecipeNinjasProvider(deps.HTTPClient, cfg.EnvVars.RecipeAPIBaseURL, cfg.EnvVars.RecipeAPIKey, cfg.EnvVars.RecipeAPIHost)
	imageProvider := provider.NewPexelsProvider(deps.HTTPClient, cfg.EnvVars.PexelsBaseURL, cfg.EnvVars.PexelsAPIKey)

	// Search-related routes setup
	searchService := service.NewSearchService(cfg, recipeProvider, imageProvider, deps.Store)
	searchHandler := handlers.NewSearchHandler(searchService, cfg.Presets)
	stateHandler := handlers.NewStateHandler(deps.Store)

	// Favorite-related routes setup
	favoriteRepo := repository.NewFavoriteRepository(deps.DB)
	favoriteService := service.NewFavoriteService(favoriteRepo, deps.Store)
	recipeHandler := handlers.NewRecipeHandler(deps.Store, favoriteService)

	// Shopping-list routes setup
	shoppingRepo := repository.NewShoppingRepository(deps.DB)
	shoppingService := service.NewShoppingService(shoppingRepo)
	shoppingHandler := handlers.NewShoppingHandler(shoppingService)

	// State stream
	streamHandler := ws.NewStateHandler(deps.Hub, deps.Store, allowedOrigins)
	streamHandler.StartRelay(ctx)

	api := r.Group("/v1")
	{
		api.Use(middleware.RateLimitByIP(ctx, cfg.EnvVars.RateLimitRPS, time.Minute, 10*time.Minute))
		api.Use(middleware.CheckIDHeader(cfg.EnvVars.IDHeader))

		// Search routes
		api.GET("/recipes/search", searchHandler.SearchRecipes)
		api.GET("/recipes/search/preference", searchHandler.SearchByPreference)
		api.GET("/search/presets", searchHandler.GetPresets)

		// Recipe routes
		api.GET("/recipes/:recipe_id", recipeHandler.GetRecipe)
		api.POST("/recipes/:recipe_id/favorite", recipeHandler.ToggleFavorite)
		api.GET("/favorites", recipeHandler.ListFavorites)

		// State routes
		api.GET("/state", stateHandler.GetState)
		api.POST("/state/navigation/consume", stateHandler.ConsumeNavigation)

		// Shopping-list routes
		api.GET("/shopping", shoppingHandler.ListItems)
		api.POST("/shopping", shoppingHandler.AddItem)
		api.PUT("/shopping/:item_id/check", shoppingHandler.CheckItem)
		api.DELETE("/shopping/checked", shoppingHandler.ClearChecked)

		// WebSocket state stream
		api.GET("/ws/state", streamHandler.HandleStateStream)
	}

	return r
}
