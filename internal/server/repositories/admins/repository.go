// Package admins is the credential store: administrator identities keyed by
// id, with username and email each unique.
package admins

import (
	"context"

	"github.com/dmitrijs2005/catalogadmin/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, admin *models.Admin) (*models.Admin, error)
	FindByID(ctx context.Context, id int64) (*models.Admin, error)
	FindByEmail(ctx context.Context, email string) (*models.Admin, error)
	FindByUsername(ctx context.Context, username string) (*models.Admin, error)
	ExistsWithEmail(ctx context.Context, email string, excludeID int64) (bool, error)
	ExistsWithUsername(ctx context.Context, username string, excludeID int64) (bool, error)
	Update(ctx context.Context, id int64, changes models.AdminChanges) (*models.Admin, error)
	List(ctx context.Context) ([]*models.Admin, error)
	Delete(ctx context.Context, id int64) error
}
