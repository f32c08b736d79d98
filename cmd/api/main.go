package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yummiapp/yummi-api/internal/config"
	"github.com/yummiapp/yummi-api/internal/db"
	"github.com/yummiapp/yummi-api/internal/logger"
	"github.com/yummiapp/yummi-api/internal/router"
	"github.com/yummiapp/yummi-api/internal/state"
	"github.com/yummiapp/yummi-api/internal/ws"
	"go.uber.org/zap"
)

const shutdownTimeout = 15 * time.Second

// init is called before the main function.
func init() {
	// Initialize structured logger (dev mode if GIN_MODE != release)
	isDev := os.Getenv("GIN_MODE") != "release"
	logger.Init(isDev)

	// Configure the runtime
	ConfigureRuntime()
}

// Entry point for the API.
func main() {
	defer logger.Sync()

	// Load the config
	var cfg *config.Config
	if c, err := config.LoadConfig(); err != nil {
		logger.Get().Fatal("failed to load config", zap.Error(err))
	} else {
		cfg = c
	}

	// Check that all ENV variables are set
	if err := cfg.CheckConfigEnvFields(); err != nil {
		logger.Get().Fatal("missing required config fields", zap.Error(err))
	}

	// Load search presets from YAML
	presets, err := config.LoadPresets(cfg.EnvVars.PresetsPath)
	if err != nil {
		logger.Get().Fatal("failed to load presets", zap.Error(err))
	}
	cfg.Presets = presets

	// Connect to the database
	database, err := db.New(cfg)
	if err != nil {
		logger.Get().Fatal("failed to connect to database", zap.Error(err))
	}
	sqlDB, err := database.DB()
	if err != nil {
		logger.Get().Fatal("failed to get underlying sql.DB", zap.Error(err))
	}
	defer sqlDB.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// One client for both upstreams, released on shutdown
	httpClient := &http.Client{Timeout: cfg.EnvVars.HTTPTimeout}
	defer httpClient.CloseIdleConnections()

	hub := ws.NewHub()
	go hub.Run()
	defer hub.Stop()

	// Create a new gin router
	gin.SetMode(gin.ReleaseMode)
	r := router.SetupRouter(ctx, cfg, router.Deps{
		DB:         database,
		HTTPClient: httpClient,
		Hub:        hub,
		Store:      state.NewStore(),
	})

	srv := &http.Server{
		Addr:    ":" + cfg.EnvVars.Port,
		Handler: r,
	}

	// Run the server
	go func() {
		logger.Get().Info("starting server", zap.String("port", cfg.EnvVars.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Get().Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Get().Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Get().Error("server shutdown failed", zap.Error(err))
	}
}

// ConfigureRuntime sets the number of operating system threads.
func ConfigureRuntime() {
	nuCPU := runtime.NumCPU()
	runtime.GOMAXPROCS(nuCPU)
	logger.Get().Info("runtime configured", zap.Int("cpus", nuCPU))
}
