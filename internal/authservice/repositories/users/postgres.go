package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/mycompany/credit-platform/internal/authservice/models"
	"github.com/mycompany/credit-platform/internal/common"
	"github.com/mycompany/credit-platform/internal/dbx"
)

// uniqueViolation is the PostgreSQL error code for unique constraint
// violations, the backstop that keeps concurrent duplicate registrations
// atomic.
const uniqueViolation = "23505"

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {

	query :=
		`INSERT INTO users (document, name, email, password_hash, salary, affiliation_date, status, role, created_at, updated_at)
         VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING id
		 `

	err := r.db.QueryRowContext(ctx, query,
		user.Document, user.Name, user.Email, user.PasswordHash, user.Salary,
		user.AffiliationDate, user.Status, user.Role, user.CreatedAt, user.UpdatedAt).Scan(&user.ID)

	if err != nil {
		if dup := duplicateError(err); dup != nil {
			return nil, dup
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

// duplicateError maps a unique-violation on one of the users constraints to
// the matching domain error, or returns nil for anything else.
func duplicateError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != uniqueViolation {
		return nil
	}
	if strings.Contains(pgErr.ConstraintName, "document") {
		return common.ErrDuplicateDocument
	}
	return common.ErrDuplicateEmail
}

const selectUser = `SELECT id, document, name, email, password_hash, salary, affiliation_date, status, role, created_at, updated_at FROM users`

func (r *PostgresRepository) scanUser(row *sql.Row) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(&user.ID, &user.Document, &user.Name, &user.Email, &user.PasswordHash,
		&user.Salary, &user.AffiliationDate, &user.Status, &user.Role, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return user, nil
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := selectUser + ` WHERE email = $1`
	return r.scanUser(r.db.QueryRowContext(ctx, query, email))
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	query := selectUser + ` WHERE id = $1`
	return r.scanUser(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, email).Scan(&exists); err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return exists, nil
}

func (r *PostgresRepository) ExistsByDocument(ctx context.Context, document string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE document = $1)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, document).Scan(&exists); err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return exists, nil
}

func (r *PostgresRepository) UpdateStatus(ctx context.Context, user *models.User) error {
	query :=
		`UPDATE users SET status = $2, updated_at = $3
		 WHERE id = $1
		 `

	res, err := r.db.ExecContext(ctx, query, user.ID, user.Status, user.UpdatedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if affected == 0 {
		return common.ErrNotFound
	}
	return nil
}
