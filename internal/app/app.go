// Package app assembles the server out of its parts: configuration,
// database, session keeper, routes and middleware, and runs the whole
// thing until the context says stop.
package app

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/fenying/minesweeper-go/internal/config"
	"github.com/fenying/minesweeper-go/internal/database"
	"github.com/fenying/minesweeper-go/internal/middleware"
	"github.com/fenying/minesweeper-go/internal/session"
)

const shutdownTimeout = 30 * time.Second

type App struct {
	logger     *logrus.Logger
	config     *config.Config
	migrations fs.FS

	db     *pgxpool.Pool
	keeper *session.Keeper
	router http.Handler
}

func New(logger *logrus.Logger, cfg *config.Config, migrations fs.FS) *App {
	return &App{
		logger:     logger,
		config:     cfg,
		migrations: migrations,
	}
}

// Start migrates the database, mounts the routes and serves until ctx
// is cancelled or a component fails. On the way out it drains open
// requests for up to shutdownTimeout.
func (a *App) Start(ctx context.Context) error {
	connString, err := a.config.Database.ConnString()
	if err != nil {
		return fmt.Errorf("unable to resolve database credentials: %w", err)
	}

	db, _, err := database.ConnectAndMigrate(ctx, connString, a.migrations)
	if err != nil {
		return fmt.Errorf("unable to connect to db: %w", err)
	}
	a.db = db
	defer db.Close()

	jwt, err := config.NewJWT(a.config.JWT)
	if err != nil {
		return fmt.Errorf("unable to load token signing keys: %w", err)
	}
	cookies := config.NewCookies(a.config.Cookies, jwt)

	a.keeper = session.NewKeeper(
		a.config.SessionTTL,
		session.WithLogger(a.logger),
	)
	a.loadRoutes(cookies, jwt)

	server := &http.Server{
		Addr: a.config.Addr,
		Handler: middleware.Wrap(
			a.router,
			middleware.Auth(a.logger, cookies),
			middleware.CORS(a.config.AllowedOrigins),
			middleware.Logging(a.logger),
		),
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return a.keeper.Run(gCtx)
	})
	g.Go(func() error {
		err := server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	})
	g.Go(func() error {
		<-gCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	a.logger.WithFields(logrus.Fields{
		"addr":      a.config.Addr,
		"base_path": a.config.BasePath,
	}).Info("server listening")

	err = g.Wait()
	a.logger.WithField("live_sessions", a.keeper.Count()).Info("server stopped")
	return err
}
