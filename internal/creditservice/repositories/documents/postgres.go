package documents

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

func (r *PostgresRepository) Create(ctx context.Context, doc *models.Document) (*models.Document, error) {

	query :=
		`INSERT INTO application_documents (application_id, file_name, storage_key, created_at)
         VALUES ($1, $2, $3, $4)
		 RETURNING id
		 `

	err := r.db.QueryRowContext(ctx, query,
		doc.ApplicationID, doc.FileName, doc.StorageKey, doc.CreatedAt).Scan(&doc.ID)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return doc, nil
}

const selectDocument = `SELECT id, application_id, file_name, storage_key, created_at FROM application_documents`

// GetByID is scoped to the application so a document id from another
// application can never be reached through a foreign URL.
func (r *PostgresRepository) GetByID(ctx context.Context, applicationID, id int64) (*models.Document, error) {
	query := selectDocument + ` WHERE application_id = $1 AND id = $2`

	doc := &models.Document{}
	err := r.db.QueryRowContext(ctx, query, applicationID, id).
		Scan(&doc.ID, &doc.ApplicationID, &doc.FileName, &doc.StorageKey, &doc.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return doc, nil
}

func (r *PostgresRepository) ListByApplication(ctx context.Context, applicationID int64) ([]*models.Document, error) {
	query := selectDocument + ` WHERE application_id = $1 ORDER BY created_at`

	rows, err := r.db.QueryContext(ctx, query, applicationID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	docs := []*models.Document{}
	for rows.Next() {
		doc := &models.Document{}
		if err := rows.Scan(&doc.ID, &doc.ApplicationID, &doc.FileName, &doc.StorageKey, &doc.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return docs, nil
}
