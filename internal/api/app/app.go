package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpapi "github.com/NimrodLoozar/OwnProject/internal/api/http"
	"github.com/NimrodLoozar/OwnProject/internal/api/service"
	"github.com/NimrodLoozar/OwnProject/internal/api/store"
	"github.com/NimrodLoozar/OwnProject/internal/api/store/drivers/sqlite"
	"github.com/NimrodLoozar/OwnProject/pkg/jwtx"
	"github.com/NimrodLoozar/OwnProject/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags. Later problem
	BuildVersion = "v0.1.0"
)

// Application encapsulates the API service with all its dependencies
type Application struct {
	cfg    Config
	logger *slog.Logger

	// Core dependencies
	db       store.Store
	signer   jwtx.Signer
	verifier jwtx.Verifier

	// Services
	authService      *service.AuthService
	userService      *service.UserService
	lifecycleService *service.LifecycleService
	bootstrapService *service.BootstrapService
	dataService      *service.DataService

	// HTTP server
	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "api-service",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	if cfg.Algorithm != "HS256" {
		return nil, fmt.Errorf("unsupported token algorithm %q", cfg.Algorithm)
	}

	signer, err := jwtx.NewSignerHS256(cfg.SecretKey)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize token signer: %w", err)
	}
	app.signer = signer

	verifier, err := jwtx.NewVerifierHS256(cfg.SecretKey)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize token verifier: %w", err)
	}
	app.verifier = verifier

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	app.initServices()

	if err := app.bootstrapOwner(); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	app.logger.Info("api service starting", "port", app.cfg.Port, "version", BuildVersion)

	// Start server in a goroutine
	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	// Setup signal handling for graceful shutdown
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a shutdown signal or server error
	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the application
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down api service...")

	// Give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("api service stopped")
	return nil
}

// initDatabase initializes the database and applies migrations
func (app *Application) initDatabase() error {
	host := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", app.cfg.DatabaseFile)
	db, err := sqlite.NewStore(host)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully")
	return nil
}

// initServices initializes all business logic services
func (app *Application) initServices() {
	app.authService = &service.AuthService{
		Store:     app.db,
		Signer:    app.signer,
		AccessTTL: app.cfg.AccessTokenExpires,
	}
	app.userService = &service.UserService{Store: app.db}
	app.lifecycleService = &service.LifecycleService{Store: app.db}
	app.dataService = &service.DataService{Store: app.db}
	app.bootstrapService = &service.BootstrapService{
		Store:         app.db,
		OwnerUsername: app.cfg.OwnerUsername,
		OwnerEmail:    app.cfg.OwnerEmail,
		OwnerPassword: app.cfg.OwnerPassword,
	}
}

// bootstrapOwner makes sure the owner account exists before the server takes
// traffic. Skipped silently when the owner credentials are not configured.
func (app *Application) bootstrapOwner() error {
	owner, err := app.bootstrapService.EnsureOwner(context.Background())
	if err != nil {
		if errors.Is(err, service.ErrBootstrapNotConfigured) {
			app.logger.Warn("owner bootstrap skipped, credentials not configured")
			return nil
		}
		return fmt.Errorf("failed to ensure owner account: %w", err)
	}

	app.logger.Info("owner account ready", "username", owner.Username, "id", owner.ID)
	return nil
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.verifier,
		BuildVersion,
		app.cfg.UploadDir,
		app.db,
		app.logger,
	)

	// Wire services to router
	router.AuthService = app.authService
	router.UserService = app.userService
	router.LifecycleService = app.lifecycleService
	router.DataService = app.dataService
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", app.cfg.Port),
		Handler: router,
	}
}
