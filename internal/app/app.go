// Package app wires configuration, storage, services and the CLI into a
// runnable PassKeeper process.
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/passkeeper/internal/cli"
	"github.com/dmitrijs2005/passkeeper/internal/config"
	"github.com/dmitrijs2005/passkeeper/internal/docstore"
	"github.com/dmitrijs2005/passkeeper/internal/logging"
	"github.com/dmitrijs2005/passkeeper/internal/records"
	"github.com/dmitrijs2005/passkeeper/internal/services"
	"github.com/dmitrijs2005/passkeeper/internal/throttle"
	"github.com/dmitrijs2005/passkeeper/internal/users"
)

type App struct {
	config  *config.Config
	logger  logging.Logger
	backend docstore.Backend
	cli     *cli.App

	closeOnce sync.Once
	closeErr  error
}

// NewApp opens the configured backend and builds the service graph. Logs
// go to logOut so they stay apart from the interactive output.
func NewApp(ctx context.Context, c *config.Config, in io.Reader, out, logOut io.Writer) (*App, error) {
	logger, err := logging.New(logOut, c.LogLevel, c.LogFormat)
	if err != nil {
		return nil, err
	}

	backend, err := docstore.Open(ctx, c.StoreOptions())
	if err != nil {
		return nil, fmt.Errorf("storage init error: %w", err)
	}

	us := users.NewStore(backend, c.UsersDocument, logger)
	rs := records.NewStore(backend, c.RecordsDocument, logger)
	limiter := throttle.New(c.MaxFailedAttempts, c.LockoutDuration)

	as := services.NewAuthService(us, rs, limiter, c.Policy(), logger)
	ss := services.NewSecretService(rs, logger)

	return &App{
		config:  c,
		logger:  logger,
		backend: backend,
		cli:     cli.NewApp(as, ss, in, out, logger),
	}, nil
}

// exitFn is a test seam for os.Exit.
var exitFn = os.Exit

// watchSignals closes the backend and exits when a termination signal
// arrives while the REPL is blocked on input.
func (app *App) watchSignals(ctx context.Context) (stop func()) {
	sigCtx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigCtx.Done()
		if ctx.Err() != nil {
			return
		}
		app.logger.Info(ctx, "signal received, shutting down")
		if err := app.Close(); err != nil {
			app.logger.Error(ctx, err.Error())
		}
		exitFn(130)
	}()

	return cancel
}

// Run serves the REPL until the user exits or input ends, then closes the
// backend.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	stop := app.watchSignals(ctx)
	defer stop()

	app.logger.Debug(ctx, "starting", "backend", app.config.Backend, "data_dir", app.config.DataDir)
	app.cli.Run(ctx)

	cancelFunc()
	return app.Close()
}

// Close releases the backend. It is safe to call more than once.
func (app *App) Close() error {
	app.closeOnce.Do(func() {
		if err := app.backend.Close(); err != nil {
			app.closeErr = fmt.Errorf("close storage: %w", err)
		}
	})
	return app.closeErr
}
