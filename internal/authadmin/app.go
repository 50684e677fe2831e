// Package authadmin is the operator CLI that seeds privileged accounts.
// Registration through the API always produces AFFILIATE users and roles are
// immutable afterwards, so ANALYST and ADMIN accounts are created here,
// directly against the auth database.
package authadmin

import (
	"bufio"
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/mycompany/credit-platform/internal/authservice/config"
	"github.com/mycompany/credit-platform/internal/authservice/models"
	userrepo "github.com/mycompany/credit-platform/internal/authservice/repositories/users"
	"github.com/mycompany/credit-platform/internal/authservice/services"
	"github.com/mycompany/credit-platform/internal/password"
	"github.com/mycompany/credit-platform/internal/roles"
)

const minPasswordLen = 6

type App struct {
	db     *sql.DB
	repo   userrepo.Repository
	hasher *password.Hasher
	now    func() time.Time
}

func NewApp(c *config.Config) (*App, error) {
	db, err := sql.Open("pgx", c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		return nil, fmt.Errorf("db ping error: %w", err)
	}

	return &App{
		db:     db,
		repo:   userrepo.NewPostgresRepository(db),
		hasher: password.NewHasher(c.BcryptCost),
		now:    time.Now,
	}, nil
}

func (a *App) Close() error {
	return a.db.Close()
}

// Run interactively collects the account details and inserts the user.
func (a *App) Run(ctx context.Context) error {
	return a.run(ctx, bufio.NewReader(os.Stdin), os.Stdout)
}

func (a *App) run(ctx context.Context, reader *bufio.Reader, w io.Writer) error {
	document, err := getSimpleText(reader, "Document number", w)
	if err != nil {
		return err
	}
	name, err := getSimpleText(reader, "Full name", w)
	if err != nil {
		return err
	}
	email, err := getSimpleText(reader, "Email", w)
	if err != nil {
		return err
	}
	roleStr, err := getSimpleText(reader, "Role (ANALYST or ADMIN)", w)
	if err != nil {
		return err
	}
	role, err := roles.Parse(roleStr)
	if err != nil {
		return fmt.Errorf("unknown role %q", roleStr)
	}
	if !role.Privileged() {
		return fmt.Errorf("affiliates register through the API; use ANALYST or ADMIN")
	}
	salaryStr, err := getSimpleText(reader, "Salary (optional)", w)
	if err != nil {
		return err
	}

	pw, err := getPassword("Password", w)
	if err != nil {
		return err
	}
	if len(pw) < minPasswordLen {
		return fmt.Errorf("password must be at least %d characters", minPasswordLen)
	}
	confirm, err := getPassword("Confirm password", w)
	if err != nil {
		return err
	}
	if !bytes.Equal(pw, confirm) {
		return fmt.Errorf("passwords do not match")
	}

	return a.create(ctx, w, document, name, email, string(pw), salaryStr, role)
}

func (a *App) create(ctx context.Context, w io.Writer, document, name, email, plaintext, salaryStr string, role roles.Role) error {
	if exists, err := a.repo.ExistsByEmail(ctx, email); err != nil {
		return fmt.Errorf("db error: %w", err)
	} else if exists {
		return fmt.Errorf("email %s is already registered", email)
	}
	if exists, err := a.repo.ExistsByDocument(ctx, document); err != nil {
		return fmt.Errorf("db error: %w", err)
	} else if exists {
		return fmt.Errorf("document %s is already registered", document)
	}

	hash, err := a.hasher.Hash(plaintext)
	if err != nil {
		return fmt.Errorf("error hashing password: %w", err)
	}

	user := models.NewUser(document, name, email, hash, services.ParseSalary(salaryStr), a.now().UTC())
	user.Role = role

	user, err = a.repo.Create(ctx, user)
	if err != nil {
		return fmt.Errorf("error creating user: %w", err)
	}

	fmt.Fprintf(w, "Created %s user %d (%s)\n", user.Role, user.ID, user.Email)
	return nil
}
