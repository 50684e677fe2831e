// Package riskservice runs the deterministic risk-evaluation mock: a single
// HTTP endpoint with no database behind it.
package riskservice

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/mycompany/credit-platform/internal/logging"
	"github.com/mycompany/credit-platform/internal/riskservice/config"
	"github.com/mycompany/credit-platform/internal/riskservice/httpapi"
)

type App struct {
	config *config.Config
	logger logging.Logger
}

func NewApp(c *config.Config) (*App, error) {
	logger := logging.NewJSON().With("service", "risk-service")
	return &App{config: c, logger: logger}, nil
}

// Run serves the HTTP API until ctx is cancelled or a termination signal
// arrives, then shuts down gracefully.
func (app *App) Run(ctx context.Context) {
	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer cancel()

	router := httpapi.NewRouter(app.logger)
	srv := &http.Server{Addr: app.config.EndpointAddr, Handler: router}

	go func() {
		app.logger.Info(ctx, "starting http server", "addr", app.config.EndpointAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			app.logger.Error(ctx, "http server error", "error", err.Error())
			cancel()
		}
	}()

	<-ctx.Done()

	app.logger.Info(ctx, "shutting down")
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		app.logger.Error(ctx, "shutdown error", "error", err.Error())
	}
}
