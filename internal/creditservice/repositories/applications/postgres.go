package applications

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mycompany/credit-platform/internal/common"
	"github.com/mycompany/credit-platform/internal/creditservice/models"
	"github.com/mycompany/credit-platform/internal/dbx"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, app *models.Application) (*models.Application, error) {

	query :=
		`INSERT INTO applications (user_id, amount, term_months, purpose, status, analyst_notes, interest_rate, created_at, updated_at)
         VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING id
		 `

	err := r.db.QueryRowContext(ctx, query,
		app.UserID, app.Amount, app.TermMonths, app.Purpose, app.Status,
		app.AnalystNotes, app.InterestRate, app.CreatedAt, app.UpdatedAt).Scan(&app.ID)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return app, nil
}

const selectApplication = `SELECT id, user_id, amount, term_months, purpose, status, analyst_notes, interest_rate, created_at, updated_at FROM applications`

func scanApplication(sc interface{ Scan(...any) error }) (*models.Application, error) {
	app := &models.Application{}
	err := sc.Scan(&app.ID, &app.UserID, &app.Amount, &app.TermMonths, &app.Purpose,
		&app.Status, &app.AnalystNotes, &app.InterestRate, &app.CreatedAt, &app.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return app, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.Application, error) {
	query := selectApplication + ` WHERE id = $1`
	return scanApplication(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresRepository) list(ctx context.Context, query string, args ...any) ([]*models.Application, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	apps := []*models.Application{}
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		apps = append(apps, app)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return apps, nil
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID int64) ([]*models.Application, error) {
	query := selectApplication + ` WHERE user_id = $1 ORDER BY created_at DESC`
	return r.list(ctx, query, userID)
}

func (r *PostgresRepository) ListAll(ctx context.Context) ([]*models.Application, error) {
	query := selectApplication + ` ORDER BY created_at DESC`
	return r.list(ctx, query)
}

func (r *PostgresRepository) Update(ctx context.Context, app *models.Application) error {
	query :=
		`UPDATE applications SET status = $2, analyst_notes = $3, interest_rate = $4, updated_at = $5
		 WHERE id = $1
		 `

	res, err := r.db.ExecContext(ctx, query,
		app.ID, app.Status, app.AnalystNotes, app.InterestRate, app.UpdatedAt)
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

func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM applications WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, id)
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
