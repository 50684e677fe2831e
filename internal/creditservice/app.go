// Package creditservice initializes and runs the credit application service:
// it opens the database, applies migrations, wires the application and
// document services with the auth and risk clients and serves the HTTP API
// until the process is signalled to stop.
package creditservice

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/mycompany/credit-platform/internal/creditservice/clients/authclient"
	"github.com/mycompany/credit-platform/internal/creditservice/clients/riskclient"
	"github.com/mycompany/credit-platform/internal/creditservice/config"
	"github.com/mycompany/credit-platform/internal/creditservice/httpapi"
	"github.com/mycompany/credit-platform/internal/creditservice/migrations"
	apprepo "github.com/mycompany/credit-platform/internal/creditservice/repositories/applications"
	docrepo "github.com/mycompany/credit-platform/internal/creditservice/repositories/documents"
	"github.com/mycompany/credit-platform/internal/creditservice/services"
	"github.com/mycompany/credit-platform/internal/logging"
	"github.com/mycompany/credit-platform/internal/token"
)

// tokenTTL only matters for issuing; this service just verifies tokens
// minted by the auth service.
const tokenTTL = 24 * time.Hour

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	codec  *token.Codec
	apps   *services.ApplicationService
	docs   *services.DocumentService
}

func NewApp(c *config.Config) (*App, error) {
	logger := logging.NewJSON().With("service", "credit-service")

	db, err := sql.Open("pgx", c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		return nil, fmt.Errorf("db ping error: %w", err)
	}

	if err := runMigrations(db); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	codec := token.NewCodec(c.SecretKey, tokenTTL)
	applications := apprepo.NewPostgresRepository(db)
	documents := docrepo.NewPostgresRepository(db)
	users := authclient.New(c.AuthServiceURL)
	risk := riskclient.New(c.RiskServiceURL)

	apps := services.NewApplicationService(applications, users, risk, logger)
	docs := services.NewDocumentService(applications, documents, c, logger)

	return &App{config: c, logger: logger, db: db, codec: codec, apps: apps, docs: docs}, nil
}

func runMigrations(db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	return goose.Up(db, ".")
}

// Run serves the HTTP API until ctx is cancelled or a termination signal
// arrives, then shuts down gracefully.
func (app *App) Run(ctx context.Context) {
	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer cancel()

	router := httpapi.NewRouter(app.apps, app.docs, app.codec, app.logger, app.config.CORSAllowedOrigin)
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

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "db close error", "error", err.Error())
	}
}
