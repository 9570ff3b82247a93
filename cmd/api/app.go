package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"booksearch/internal/config"
	"booksearch/internal/history"
	"booksearch/internal/platform/database"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// App owns the api server and everything it needs to release on exit.
type App struct {
	config   *config.Config
	logger   *zap.Logger
	server   *http.Server
	cleanups []func()
}

func NewApp(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	app := &App{config: cfg, logger: logger}

	repo, ready, err := app.openHistoryRepository(ctx)
	if err != nil {
		app.Clean()
		return nil, err
	}

	handler, stop := newHandler(cfg, logger, repo, ready)
	app.cleanups = append(app.cleanups, stop)

	app.server = &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		ErrorLog:     zap.NewStdLog(logger.Named("http")),
	}
	return app, nil
}

func (app *App) openHistoryRepository(ctx context.Context) (history.Repository, readinessFunc, error) {
	dbCfg := app.config.Database

	switch dbCfg.Driver {
	case config.DriverPostgres:
		pool, err := database.OpenPostgres(ctx, dbCfg.DSN)
		if err != nil {
			return nil, nil, err
		}
		app.cleanups = append(app.cleanups, pool.Close)
		app.logger.Info("database connection OK", zap.String("driver", dbCfg.Driver), zap.String("dsn", database.RedactDSN(dbCfg.DSN)))
		return history.NewPostgresRepo(pool, dbCfg.QueryTimeout), pool.Ping, nil

	case config.DriverSQLite:
		db, err := database.OpenSQLite(dbCfg.DSN)
		if err != nil {
			return nil, nil, err
		}
		app.cleanups = append(app.cleanups, func() { _ = db.Close() })
		if err := database.Migrate(db, database.DriverSQLite); err != nil {
			return nil, nil, err
		}
		app.logger.Info("database connection OK", zap.String("driver", dbCfg.Driver), zap.String("path", dbCfg.DSN))
		return history.NewSQLiteRepo(db), db.PingContext, nil

	default:
		return nil, nil, fmt.Errorf("unsupported database driver %q", dbCfg.Driver)
	}
}

// Run starts the api server and blocks until it stops, either because it
// failed or because SIGINT/SIGTERM was received.
func (app *App) Run() error {
	defer app.Clean()
	nCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gCtx := errgroup.WithContext(nCtx)

	g.Go(app.Serve())
	g.Go(app.Stop(nCtx, gCtx))

	err := g.Wait()
	app.logger.Info("api server stopped", zap.String("addr", app.config.Server.Addr), zap.Error(err))
	return err
}

// Clean runs the registered cleanups, last registered first.
func (app *App) Clean() {
	for i := len(app.cleanups) - 1; i >= 0; i-- {
		app.cleanups[i]()
	}
	app.cleanups = nil
}

func (app *App) Serve() func() error {
	return func() error {
		app.logger.Info("api server starting", zap.String("addr", app.config.Server.Addr))
		err := app.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			err = nil
		}
		return err
	}
}

// Stop waits for the group context and shuts the server down gracefully,
// closing it outright when the grace period runs out.
func (app *App) Stop(nCtx, gCtx context.Context) func() error {
	return func() error {
		<-gCtx.Done()

		if nCtx.Err() != nil {
			app.logger.Info("api server stopping. reason: requested to stop")
		} else {
			app.logger.Info("api server stopping. reason: errored at running")
		}

		sCtx, cancel := context.WithTimeout(context.Background(), app.config.Server.ShutdownTimeout)
		defer cancel()
		err := app.server.Shutdown(sCtx)
		switch {
		case err == nil:
			app.logger.Info("api server graceful shutdown succeeded")
		case errors.Is(err, context.DeadlineExceeded):
			app.logger.Warn("api server graceful shutdown timed out", zap.Duration("timeout", app.config.Server.ShutdownTimeout))
		default:
			app.logger.Error("api server graceful shutdown failed", zap.Error(err))
		}

		if err != nil {
			app.logger.Info("api server going to force shutdown", zap.Error(app.server.Close()))
		}
		return nil
	}
}
