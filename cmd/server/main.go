package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/anonto42/linkup/backend/internal/router"
	"github.com/anonto42/linkup/backend/internal/validators"
	"github.com/anonto42/linkup/backend/pkg/config"
	"github.com/anonto42/linkup/backend/pkg/firebase"
	"github.com/anonto42/linkup/backend/pkg/logger"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	if err := logger.Init(cfg.Env, cfg.LogLevel); err != nil {
		panic(err)
	}
	defer logger.Sync()
	log := logger.Get()

	if err := cfg.Validate(); err != nil {
		log.Fatal("Invalid configuration", zap.Error(err))
	}

	// Stores
	var repos router.Repositories
	switch cfg.DataStore {
	case config.StoreMemory:
		log.Warn("Using in-memory store, data is lost on exit")
		repos = router.MemoryRepositories()
	default:
		db, err := config.InitDB(cfg, log)
		if err != nil {
			log.Fatal("Failed to initialize databases", zap.Error(err))
		}
		defer db.CloseDB()
		repos = router.PersistentRepositories(db.Database, db.Postgres)
	}

	opts := router.Options{
		AuthProvider:      cfg.AuthProvider,
		JWTSecret:         cfg.JWTSecret,
		LookupConcurrency: cfg.NetworkLookupConcurrency,
	}
	if cfg.AuthProvider == config.AuthFirebase {
		app, err := firebase.InitFirebase(context.Background(), cfg.FirebaseCredentialsPath, log)
		if err != nil {
			log.Fatal("Failed to initialize Firebase", zap.Error(err))
		}
		opts.FirebaseVerifier = app.AuthClient
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = validators.NewValidator()
	config.SetupMiddleware(e, log)

	if err := router.SetupRoutes(e, repos, opts, log); err != nil {
		log.Fatal("Failed to configure routes", zap.Error(err))
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: e,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()
	log.Info("Server started", zap.String("port", cfg.Port), zap.String("env", cfg.Env), zap.String("store", cfg.DataStore))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited")
}
