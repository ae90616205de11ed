// Package server wires configuration, storage, services and transports into
// the runnable Lumen server and handles graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/lumen/internal/logging"
	"github.com/dmitrijs2005/lumen/internal/server/config"
	"github.com/dmitrijs2005/lumen/internal/server/httpapi"
	"github.com/dmitrijs2005/lumen/internal/server/objectstore"
	"github.com/dmitrijs2005/lumen/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/lumen/internal/server/roles"
	"github.com/dmitrijs2005/lumen/internal/server/services"
	"github.com/dmitrijs2005/lumen/internal/server/store"

	gs "github.com/dmitrijs2005/lumen/internal/server/grpc"
)

type App struct {
	config         *config.Config
	logger         logging.Logger
	db             *sql.DB
	store          store.ProfileStore
	sessionService *services.SessionService
	mailboxService *services.MailboxService
	adminService   *services.AdminService
}

// NewApp validates c, opens the store (running migrations) and builds the
// services.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	logger, err := logging.New(c.LogBackend, c.LogLevel, os.Stdout)
	if err != nil {
		return nil, err
	}

	db, rm, err := repomanager.Open(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}
	logger.Info(ctx, "store opened", "dialect", rm.Dialect())

	st := store.NewSQLStore(db, rm)
	resolver := roles.NewResolver(c.AdminEmails...)
	reports := objectstore.NewS3Storage(objectstore.Options{
		Region:       c.S3Region,
		AccessKey:    c.S3RootUser,
		SecretKey:    c.S3RootPassword,
		Bucket:       c.S3Bucket,
		BaseEndpoint: c.S3BaseEndpoint,
		URLValidity:  c.ReportURLValidity,
	})

	return &App{
		config:         c,
		logger:         logger,
		db:             db,
		store:          st,
		sessionService: services.NewSessionService(st, resolver, c, logger),
		mailboxService: services.NewMailboxService(st, resolver, logger),
		adminService:   services.NewAdminService(st, resolver, reports, logger),
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

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s, err := gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger,
		app.sessionService, app.mailboxService, app.adminService, app.store,
		app.config.SecretKey, app.config.AdminKeyHash)
	if err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
		return
	}

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := httpapi.NewHTTPServer(app.config.EndpointAddrHTTP, app.logger, app.store)
	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run serves gRPC and HTTP until ctx is cancelled, a termination signal
// arrives or either server fails, then closes the database.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(2)
	go func() {
		defer wg.Done()
		app.startGRPCServer(ctx, cancelFunc)
	}()
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "db close error", "error", err)
	}
	app.logger.Info(ctx, "App stopped")
}
