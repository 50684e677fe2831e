package applications

import (
	"context"

	"github.com/mycompany/credit-platform/internal/creditservice/models"
)

type Repository interface {
	Create(ctx context.Context, app *models.Application) (*models.Application, error)
	GetByID(ctx context.Context, id int64) (*models.Application, error)
	ListByUser(ctx context.Context, userID int64) ([]*models.Application, error)
	ListAll(ctx context.Context) ([]*models.Application, error)
	Update(ctx context.Context, app *models.Application) error
	Delete(ctx context.Context, id int64) error
}
