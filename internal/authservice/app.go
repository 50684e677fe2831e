// Package authservice initializes and runs the authentication service: it
// opens the database, applies migrations, wires the user service and serves
// the HTTP API until the process is signalled to stop.
package authservice

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

	"github.com/mycompany/credit-platform/internal/authservice/config"
	"github.com/mycompany/credit-platform/internal/authservice/httpapi"
	"github.com/mycompany/credit-platform/internal/authservice/migrations"
	userrepo "github.com/mycompany/credit-platform/internal/authservice/repositories/users"
	"github.com/mycompany/credit-platform/internal/authservice/services"
	"github.com/mycompany/credit-platform/internal/logging"
	"github.com/mycompany/credit-platform/internal/password"
	"github.com/mycompany/credit-platform/internal/token"
)

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	codec  *token.Codec
	users  *services.UserService
}

func NewApp(c *config.Config) (*App, error) {
	logger := logging.NewJSON().With("service", "auth-service")

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

	codec := token.NewCodec(c.SecretKey, c.TokenValidityDuration)
	repo := userrepo.NewPostgresRepository(db)
	users := services.NewUserService(repo, password.NewHasher(c.BcryptCost), codec, logger)

	return &App{config: c, logger: logger, db: db, codec: codec, users: users}, nil
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

	router := httpapi.NewRouter(app.users, app.codec, app.logger, app.config.CORSAllowedOrigin)
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
