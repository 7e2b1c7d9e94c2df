package admins

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/catalogadmin/internal/common"
	"github.com/dmitrijs2005/catalogadmin/internal/dbx"
	"github.com/dmitrijs2005/catalogadmin/internal/server/models"
)

// PostgresRepository implements Repository over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a new admin. A duplicate username or email yields
// common.ErrConflict.
func (r *PostgresRepository) Create(ctx context.Context, admin *models.Admin) (*models.Admin, error) {
	query :=
		`INSERT INTO admins (username, email, password_hash)
		 VALUES ($1, $2, $3)
		 RETURNING id
		 `

	err := r.db.QueryRowContext(ctx, query, admin.Username, admin.Email, admin.PasswordHash).Scan(&admin.ID)
	if err != nil {
		return nil, wrap(err)
	}

	return admin, nil
}

func (r *PostgresRepository) FindByID(ctx context.Context, id int64) (*models.Admin, error) {
	return r.findOne(ctx, `SELECT id, username, email, password_hash FROM admins WHERE id = $1`, id)
}

func (r *PostgresRepository) FindByEmail(ctx context.Context, email string) (*models.Admin, error) {
	return r.findOne(ctx, `SELECT id, username, email, password_hash FROM admins WHERE email = $1`, email)
}

func (r *PostgresRepository) FindByUsername(ctx context.Context, username string) (*models.Admin, error) {
	return r.findOne(ctx, `SELECT id, username, email, password_hash FROM admins WHERE username = $1`, username)
}

func (r *PostgresRepository) findOne(ctx context.Context, query string, arg any) (*models.Admin, error) {
	a := &models.Admin{}
	err := r.db.QueryRowContext(ctx, query, arg).Scan(&a.ID, &a.Username, &a.Email, &a.PasswordHash)
	if err != nil {
		return nil, wrap(err)
	}
	return a, nil
}

// ExistsWithEmail reports whether another admin (id != excludeID) uses email.
// Pass excludeID 0 to check against everyone.
func (r *PostgresRepository) ExistsWithEmail(ctx context.Context, email string, excludeID int64) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM admins WHERE email = $1 AND id <> $2)`, email, excludeID)
}

// ExistsWithUsername reports whether another admin (id != excludeID) uses username.
func (r *PostgresRepository) ExistsWithUsername(ctx context.Context, username string, excludeID int64) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM admins WHERE username = $1 AND id <> $2)`, username, excludeID)
}

func (r *PostgresRepository) exists(ctx context.Context, query string, value string, excludeID int64) (bool, error) {
	var found bool
	if err := r.db.QueryRowContext(ctx, query, value, excludeID).Scan(&found); err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return found, nil
}

// Update replaces the non-nil fields of changes in a single statement and
// returns the resulting row.
func (r *PostgresRepository) Update(ctx context.Context, id int64, changes models.AdminChanges) (*models.Admin, error) {
	query :=
		`UPDATE admins SET
		   username = COALESCE($1, username),
		   email = COALESCE($2, email),
		   password_hash = COALESCE($3, password_hash)
		 WHERE id = $4
		 RETURNING id, username, email, password_hash
		 `

	a := &models.Admin{}
	err := r.db.QueryRowContext(ctx, query, changes.Username, changes.Email, changes.PasswordHash, id).
		Scan(&a.ID, &a.Username, &a.Email, &a.PasswordHash)
	if err != nil {
		return nil, wrap(err)
	}
	return a, nil
}

// List returns every admin ordered by id.
func (r *PostgresRepository) List(ctx context.Context) ([]*models.Admin, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, username, email, password_hash FROM admins ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Admin, 0)
	for rows.Next() {
		a := &models.Admin{}
		if err := rows.Scan(&a.ID, &a.Username, &a.Email, &a.PasswordHash); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

// Delete removes the admin; common.ErrorNotFound when no row matched.
func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM admins WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func wrap(err error) error {
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return common.ErrorNotFound
	case dbx.IsUniqueViolation(err):
		return fmt.Errorf("%w: %v", common.ErrConflict, err)
	default:
		return fmt.Errorf("db error: %w", err)
	}
}
