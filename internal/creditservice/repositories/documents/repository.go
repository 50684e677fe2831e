package documents

import (
	"context"

	"github.com/mycompany/credit-platform/internal/creditservice/models"
)

type Repository interface {
	Create(ctx context.Context, doc *models.Document) (*models.Document, error)
	GetByID(ctx context.Context, applicationID, id int64) (*models.Document, error)
	ListByApplication(ctx context.Context, applicationID int64) ([]*models.Document, error)
}
