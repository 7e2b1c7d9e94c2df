package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/catalogadmin/internal/common"
	"github.com/dmitrijs2005/catalogadmin/internal/dbx"
	"github.com/dmitrijs2005/catalogadmin/internal/server/auth"
	"github.com/dmitrijs2005/catalogadmin/internal/server/config"
	"github.com/dmitrijs2005/catalogadmin/internal/server/models"
	"github.com/dmitrijs2005/catalogadmin/internal/server/repositories/repomanager"
)

// AdminService manages administrator accounts. Callers are expected to have
// passed the Owner Guard already.
type AdminService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	owner       auth.OwnerDescriptor
	hashCost    int
}

func NewAdminService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *AdminService {
	return &AdminService{
		db:          db,
		repomanager: m,
		owner:       cfg.Owner(),
		hashCost:    cfg.PasswordHashCost,
	}
}

// Create registers a new admin with a bcrypt-hashed password.
func (s *AdminService) Create(ctx context.Context, username, email, password string) (*models.Admin, error) {
	email = strings.ToLower(email)

	var created *models.Admin
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Admins(tx)

		taken, err := repo.ExistsWithUsername(ctx, username, 0)
		if err != nil {
			return err
		}
		if taken {
			return fmt.Errorf("username %w", common.ErrConflict)
		}

		taken, err = repo.ExistsWithEmail(ctx, email, 0)
		if err != nil {
			return err
		}
		if taken {
			return fmt.Errorf("email %w", common.ErrConflict)
		}

		hash, err := auth.HashPassword(password, s.hashCost)
		if err != nil {
			return err
		}

		created, err = repo.Create(ctx, &models.Admin{Username: username, Email: email, PasswordHash: hash})
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *AdminService) List(ctx context.Context) ([]*models.Admin, error) {
	return s.repomanager.Admins(s.db).List(ctx)
}

func (s *AdminService) Get(ctx context.Context, id int64) (*models.Admin, error) {
	return s.repomanager.Admins(s.db).FindByID(ctx, id)
}

// Update changes username and/or email; at least one must be given.
func (s *AdminService) Update(ctx context.Context, id int64, username, email *string) (*models.Admin, error) {
	if username == nil && email == nil {
		return nil, common.ErrNothingToUpdate
	}

	var updated *models.Admin
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Admins(tx)

		current, err := repo.FindByID(ctx, id)
		if err != nil {
			return err
		}

		var changes models.AdminChanges
		if username != nil && *username != current.Username {
			taken, err := repo.ExistsWithUsername(ctx, *username, id)
			if err != nil {
				return err
			}
			if taken {
				return fmt.Errorf("username %w", common.ErrConflict)
			}
			changes.Username = username
		}
		if email != nil {
			e := strings.ToLower(*email)
			if e != current.Email {
				taken, err := repo.ExistsWithEmail(ctx, e, id)
				if err != nil {
					return err
				}
				if taken {
					return fmt.Errorf("email %w", common.ErrConflict)
				}
				changes.Email = &e
			}
		}

		if changes.Empty() {
			updated = current
			return nil
		}
		updated, err = repo.Update(ctx, id, changes)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes an admin. The configured Owner can never be deleted.
func (s *AdminService) Delete(ctx context.Context, id int64) error {
	if id == s.owner.ID {
		return common.ErrOwnerUndeletable
	}
	return s.repomanager.Admins(s.db).Delete(ctx, id)
}

// SetPassword replaces the password of the admin with the given email.
func (s *AdminService) SetPassword(ctx context.Context, email, password string) (*models.Admin, error) {
	repo := s.repomanager.Admins(s.db)

	admin, err := repo.FindByEmail(ctx, strings.ToLower(email))
	if err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(password, s.hashCost)
	if err != nil {
		return nil, err
	}

	return repo.Update(ctx, admin.ID, models.AdminChanges{PasswordHash: &hash})
}
