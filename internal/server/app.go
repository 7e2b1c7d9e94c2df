// Package server wires the catalog admin service together: configuration,
// the relational store and its migrations, blob storage, services, the REST
// API and the gRPC health server. Both servers stop gracefully on SIGINT,
// SIGTERM or SIGQUIT.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/catalogadmin/internal/logging"
	"github.com/dmitrijs2005/catalogadmin/internal/server/config"
	"github.com/dmitrijs2005/catalogadmin/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/catalogadmin/internal/server/services"
	"github.com/dmitrijs2005/catalogadmin/internal/server/storage"

	gs "github.com/dmitrijs2005/catalogadmin/internal/server/grpc"
	hs "github.com/dmitrijs2005/catalogadmin/internal/server/http"
)

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	http   *hs.HTTPServer
	health *gs.HealthServer
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	logger := logging.NewJSONLogger(os.Stdout, c.LogLevel)

	db, err := repomanager.Open(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrations: %w", err)
	}

	store, err := storage.NewS3Store(ctx, c)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("storage init error: %w", err)
	}

	handler := hs.NewHandler(
		services.NewAuthService(db, rm, c),
		services.NewAdminService(db, rm, c),
		services.NewCatalogService(db, rm, store, logger.With("module", "catalog")),
		logger,
		c.MaxUploadSize,
	)

	router := hs.NewRouter(hs.RouterOptions{
		Handler:     handler,
		Guard:       hs.NewGuard(c.SecretKey, c.Owner(), hs.LabelEmail, logger.With("module", "guard")),
		Metrics:     hs.NewMetrics(),
		Logger:      logger,
		MaxBodySize: c.MaxBodySize,
	})

	return &App{
		config: c,
		logger: logger,
		db:     db,
		http:   hs.NewHTTPServer(c.EndpointAddrHTTP, router, logger),
		health: gs.NewHealthServer(c.EndpointAddrGRPC, db, c.HealthCheckInterval, logger),
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// runServer calls run and cancels the other server if it fails.
func (app *App) runServer(ctx context.Context, cancelFunc context.CancelFunc, name string, run func(context.Context) error) {
	if err := run(ctx); err != nil {
		app.logger.Error(ctx, "server failed", "server", name, "error", err)
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(2)
	go func() {
		defer wg.Done()
		app.runServer(ctx, cancelFunc, "http", app.http.Run)
	}()
	go func() {
		defer wg.Done()
		app.runServer(ctx, cancelFunc, "grpc", app.health.Run)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "closing database", "error", err)
	}
	app.logger.Info(ctx, "Stopped")
}
