// Package services contains server-side business logic. This file implements
// AuthService: login, profile reads and the self-service profile update.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/catalogadmin/internal/common"
	"github.com/dmitrijs2005/catalogadmin/internal/dbx"
	"github.com/dmitrijs2005/catalogadmin/internal/server/auth"
	"github.com/dmitrijs2005/catalogadmin/internal/server/config"
	"github.com/dmitrijs2005/catalogadmin/internal/server/models"
	"github.com/dmitrijs2005/catalogadmin/internal/server/repositories/admins"
	"github.com/dmitrijs2005/catalogadmin/internal/server/repositories/repomanager"
)

// LoginResult is returned on successful login.
type LoginResult struct {
	Token string
	Role  auth.Role
}

// ProfileUpdate is a partial self-service change. Nil fields are left alone.
type ProfileUpdate struct {
	Username        *string
	Email           *string
	NewPassword     *string
	CurrentPassword string
}

func (u ProfileUpdate) empty() bool {
	return u.Username == nil && u.Email == nil && u.NewPassword == nil
}

// ProfileResult carries the updated admin and, only when the username or
// email changed, a freshly issued token.
type ProfileResult struct {
	Admin *models.Admin
	Token string
}

type AuthService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	secret      []byte
	validity    time.Duration
	owner       auth.OwnerDescriptor
	hashCost    int
}

func NewAuthService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *AuthService {
	return &AuthService{
		db:          db,
		repomanager: m,
		secret:      []byte(cfg.SecretKey),
		validity:    cfg.TokenValidityDuration,
		owner:       cfg.Owner(),
		hashCost:    cfg.PasswordHashCost,
	}
}

// resolveByIdentifier looks an admin up by email when the value looks like
// one, by username otherwise.
func resolveByIdentifier(ctx context.Context, repo admins.Repository, value string) (*models.Admin, error) {
	if strings.Contains(value, "@") {
		return repo.FindByEmail(ctx, strings.ToLower(value))
	}
	return repo.FindByUsername(ctx, value)
}

// Login verifies credentials and issues a token. Unknown identities and wrong
// passwords both yield common.ErrBadCredentials.
func (s *AuthService) Login(ctx context.Context, identifier, password string) (*LoginResult, error) {
	repo := s.repomanager.Admins(s.db)

	admin, err := resolveByIdentifier(ctx, repo, strings.TrimSpace(identifier))
	if errors.Is(err, common.ErrorNotFound) {
		return nil, common.ErrBadCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("error searching admin: %w", err)
	}

	if err := auth.ComparePassword(admin.PasswordHash, password); err != nil {
		return nil, common.ErrBadCredentials
	}

	return s.issueFor(admin)
}

func (s *AuthService) issueFor(admin *models.Admin) (*LoginResult, error) {
	claims := auth.ClaimsFor(admin, s.owner)
	token, err := auth.Issue(claims, s.secret, s.validity)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: token, Role: claims.UserType}, nil
}

// Profile returns the admin behind the authenticated identity.
func (s *AuthService) Profile(ctx context.Context, id int64) (*models.Admin, error) {
	return s.repomanager.Admins(s.db).FindByID(ctx, id)
}

// UpdateProfile applies a self-service change. Any identity-relevant field
// requires the current password; a wrong one aborts before anything is
// written. A new token is minted only if the username or email changed.
func (s *AuthService) UpdateProfile(ctx context.Context, id int64, in ProfileUpdate) (*ProfileResult, error) {
	if in.empty() {
		admin, err := s.Profile(ctx, id)
		if err != nil {
			return nil, err
		}
		if in.CurrentPassword != "" {
			if err := auth.ComparePassword(admin.PasswordHash, in.CurrentPassword); err != nil {
				return nil, common.ErrCurrentPasswordIncorrect
			}
		}
		return &ProfileResult{Admin: admin}, nil
	}

	if in.CurrentPassword == "" {
		return nil, common.ErrCurrentPasswordRequired
	}

	var (
		updated *models.Admin
		token   string
	)

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Admins(tx)

		current, err := repo.FindByID(ctx, id)
		if err != nil {
			return err
		}

		if err := auth.ComparePassword(current.PasswordHash, in.CurrentPassword); err != nil {
			return common.ErrCurrentPasswordIncorrect
		}

		var changes models.AdminChanges

		if in.Username != nil && *in.Username != current.Username {
			taken, err := repo.ExistsWithUsername(ctx, *in.Username, id)
			if err != nil {
				return err
			}
			if taken {
				return fmt.Errorf("username %w", common.ErrConflict)
			}
			changes.Username = in.Username
		}

		if in.Email != nil {
			email := strings.ToLower(*in.Email)
			if email != current.Email {
				taken, err := repo.ExistsWithEmail(ctx, email, id)
				if err != nil {
					return err
				}
				if taken {
					return fmt.Errorf("email %w", common.ErrConflict)
				}
				changes.Email = &email
			}
		}

		if in.NewPassword != nil {
			hash, err := auth.HashPassword(*in.NewPassword, s.hashCost)
			if err != nil {
				return err
			}
			changes.PasswordHash = &hash
		}

		if changes.Empty() {
			updated = current
			return nil
		}

		updated, err = repo.Update(ctx, id, changes)
		if err != nil {
			return err
		}

		// Issued before commit so a signing failure rolls the update back.
		if changes.Username != nil || changes.Email != nil {
			issued, err := s.issueFor(updated)
			if err != nil {
				return err
			}
			token = issued.Token
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &ProfileResult{Admin: updated, Token: token}, nil
}
