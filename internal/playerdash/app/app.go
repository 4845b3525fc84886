package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/pixelforge/playerdash/internal/playerdash/http"
	"github.com/pixelforge/playerdash/internal/playerdash/service"
	"github.com/pixelforge/playerdash/internal/playerdash/store"
	"github.com/pixelforge/playerdash/internal/playerdash/store/drivers/jsonfile"
	"github.com/pixelforge/playerdash/internal/playerdash/store/drivers/sqlite"
	"github.com/pixelforge/playerdash/internal/playerdash/upstream"
	"github.com/pixelforge/playerdash/pkg/cryptox"
	"github.com/pixelforge/playerdash/pkg/sessions"
	"github.com/pixelforge/playerdash/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags. Later problem
	BuildVersion = "v0.1.0"
)

// Application encapsulates the playerdash service with all its dependencies
type Application struct {
	cfg    Config
	logger *slog.Logger

	users    store.Users
	sessions *sessions.Manager

	authService   *service.AuthService
	profileClient *upstream.ProfileClient
	likeClient    *upstream.LikeClient

	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "playerdash",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	// Set pepper path for password hashing
	cryptox.SetPepperPath(app.cfg.PepperFile)

	if err := app.initStore(); err != nil {
		return nil, err
	}

	app.initServices()
	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	app.logger.Info("playerdash starting",
		"port", app.cfg.Port,
		"version", BuildVersion,
		"store_driver", app.cfg.StoreDriver,
	)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

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
	app.logger.Info("shutting down playerdash...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	if err := app.users.Close(); err != nil {
		app.logger.Error("error closing user store", "error", err)
		return err
	}

	app.logger.Info("playerdash stopped")
	return nil
}

// initStore binds the configured user store driver
func (app *Application) initStore() error {
	switch app.cfg.StoreDriver {
	case "jsonfile":
		app.users = jsonfile.New(app.cfg.UsersFile, app.logger)
	case "sqlite":
		dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", app.cfg.DatabaseFile)
		db, err := sqlite.NewStore(dsn)
		if err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		if err := db.ApplyMigrations(); err != nil {
			_ = db.Close()
			return fmt.Errorf("failed to apply database migrations: %w", err)
		}
		app.logger.Info("database migrations applied successfully")
		app.users = db
	default:
		return fmt.Errorf("unknown store driver %q", app.cfg.StoreDriver)
	}
	return nil
}

// initServices initializes business logic services and upstream clients
func (app *Application) initServices() {
	app.sessions = sessions.NewManager(
		[]byte(app.cfg.SessionSecret),
		app.cfg.SessionTTL,
		app.cfg.Env != "dev",
	)

	app.authService = &service.AuthService{Store: app.users}

	httpClient := upstream.NewHTTPClient(app.cfg.UpstreamTimeout)
	app.profileClient = &upstream.ProfileClient{
		BaseURL:    app.cfg.ProfileAPIURL,
		HTTPClient: httpClient,
	}
	app.likeClient = &upstream.LikeClient{
		BaseURL:    app.cfg.LikeAPIURL,
		APIKey:     app.cfg.VortexAPIKey,
		HTTPClient: httpClient,
	}
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(BuildVersion, app.sessions, app.users, app.logger)
	router.AuthService = app.authService
	router.ProfileClient = app.profileClient
	router.LikeClient = app.likeClient
	router.ApplyRoutes()

	app.router = router
	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}
}
