package professors

import (
	"context"

	"github.com/dmitrijs2005/catalogadmin/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, p *models.Professor) (*models.Professor, error)
	List(ctx context.Context) ([]*models.Professor, error)
	FindByID(ctx context.Context, id int64) (*models.Professor, error)
	Update(ctx context.Context, p *models.Professor) (*models.Professor, error)
	Delete(ctx context.Context, id int64) (*models.Professor, error)
}
