package products

import (
	"context"

	"github.com/dmitrijs2005/catalogadmin/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, p *models.Product) (*models.Product, error)
	List(ctx context.Context) ([]*models.Product, error)
	FindByID(ctx context.Context, id int64) (*models.Product, error)
	Update(ctx context.Context, p *models.Product) (*models.Product, error)
	// Delete removes the row and returns it as it was.
	Delete(ctx context.Context, id int64) (*models.Product, error)
}
