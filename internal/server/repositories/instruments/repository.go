package instruments

import (
	"context"

	"github.com/dmitrijs2005/catalogadmin/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, i *models.Instrument) (*models.Instrument, error)
	List(ctx context.Context) ([]*models.Instrument, error)
	FindByID(ctx context.Context, id int64) (*models.Instrument, error)
	Update(ctx context.Context, i *models.Instrument) (*models.Instrument, error)
	Delete(ctx context.Context, id int64) (*models.Instrument, error)
}
