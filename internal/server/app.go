// Package server wires the lifeboard API together: database and migrations,
// services, the REST router and the gRPC health server. It also handles
// signals and graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dmitrijs2005/lifeboard/internal/logging"
	"github.com/dmitrijs2005/lifeboard/internal/server/config"
	"github.com/dmitrijs2005/lifeboard/internal/server/httpapi"
	"github.com/dmitrijs2005/lifeboard/internal/server/metrics"
	"github.com/dmitrijs2005/lifeboard/internal/server/objectstore"
	"github.com/dmitrijs2005/lifeboard/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/lifeboard/internal/server/services"
	_ "github.com/jackc/pgx/v5/stdlib"

	gs "github.com/dmitrijs2005/lifeboard/internal/server/grpc"
)

const (
	migrationTimeout    = time.Minute
	rateLimiterIdleTTL  = 10 * time.Minute
	rateLimiterSweepGap = 10 * time.Minute
)

// Seams for tests.
var (
	openDB = func(dsn string) (*sql.DB, error) {
		return sql.Open("pgx", dsn)
	}
	newRepoManager = repomanager.NewPostgresRepositoryManager
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	db          *sql.DB
	metrics     *metrics.Metrics
	rateLimiter *httpapi.RateLimiter
	router      http.Handler
}

// NewApp opens the database, applies migrations and builds the services and
// router. The database handle is closed when Run returns.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.New(c.LogLevel, "json", os.Stdout)

	db, err := openDB(c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := newRepoManager()

	mctx, cancel := context.WithTimeout(ctx, migrationTimeout)
	defer cancel()
	if err := rm.RunMigrations(mctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration error: %w", err)
	}

	var uploader services.ImageUploader
	if p := objectstore.NewPresigner(c); p.Enabled() {
		uploader = p
	} else {
		logger.Warn(ctx, "object storage bucket not set, image uploads disabled")
	}

	todos := services.NewTodoService(db, rm)
	goals := services.NewGoalService(db, rm)
	notes := services.NewNoteService(db, rm)
	diaries := services.NewDiaryService(db, rm, uploader, c.VideoEmbedBaseURL)

	m := metrics.New()

	var rl *httpapi.RateLimiter
	if c.RateLimitRPS > 0 {
		rl = httpapi.NewRateLimiter(c.RateLimitRPS, c.RateLimitBurst, logger.With("module", "ratelimit"))
	}

	router := httpapi.NewRouter(httpapi.Deps{
		Todos:              todos,
		Goals:              goals,
		Notes:              notes,
		Diaries:            diaries,
		Logger:             logger,
		Metrics:            m,
		RateLimiter:        rl,
		CORSAllowedOrigins: c.CORSAllowedOrigins,
	})

	return &App{
		config:      c,
		logger:      logger,
		db:          db,
		metrics:     m,
		rateLimiter: rl,
		router:      router,
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	srv := &http.Server{
		Addr:              app.config.EndpointAddrHTTP,
		Handler:           app.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		app.logger.Info(ctx, "Starting HTTP server", "address", app.config.EndpointAddrHTTP)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			app.logger.Error(ctx, "HTTP server failed", "error", err)
			cancelFunc()
		}
	case <-ctx.Done():
		app.logger.Info(ctx, "Stopping HTTP server...")
		sctx, cancel := context.WithTimeout(context.Background(), app.config.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(sctx); err != nil {
			app.logger.Error(ctx, "HTTP server shutdown", "error", err)
		}
	}
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := gs.NewHealthServer(app.config.EndpointAddrGRPC, app.logger, app.db, app.config.HealthCheckInterval, app.metrics.SetDatabaseUp)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) sweepRateLimiter(ctx context.Context) {
	ticker := time.NewTicker(rateLimiterSweepGap)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			app.rateLimiter.Cleanup(rateLimiterIdleTTL)
		}
	}
}

// Run serves until ctx is cancelled, a stop signal arrives or a server
// fails, then shuts both servers down and closes the database.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(2)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()
	go func() {
		defer wg.Done()
		app.startGRPCServer(ctx, cancelFunc)
	}()

	if app.rateLimiter != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			app.sweepRateLimiter(ctx)
		}()
	}

	wg.Wait()

	app.logger.Info(context.Background(), "App stopped")
	return app.db.Close()
}
