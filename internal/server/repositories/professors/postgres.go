package professors

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/catalogadmin/internal/common"
	"github.com/dmitrijs2005/catalogadmin/internal/dbx"
	"github.com/dmitrijs2005/catalogadmin/internal/server/models"
)

const columns = `id, name, bio, instrument, photo_url`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) one(ctx context.Context, query string, args ...any) (*models.Professor, error) {
	p := &models.Professor{}
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&p.ID, &p.Name, &p.Bio, &p.Instrument, &p.PhotoURL)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return p, nil
}

func (r *PostgresRepository) Create(ctx context.Context, p *models.Professor) (*models.Professor, error) {
	return r.one(ctx,
		`INSERT INTO professors (name, bio, instrument, photo_url) VALUES ($1, $2, $3, $4) RETURNING `+columns,
		p.Name, p.Bio, p.Instrument, p.PhotoURL)
}

func (r *PostgresRepository) List(ctx context.Context) ([]*models.Professor, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+columns+` FROM professors ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Professor, 0)
	for rows.Next() {
		p := &models.Professor{}
		if err := rows.Scan(&p.ID, &p.Name, &p.Bio, &p.Instrument, &p.PhotoURL); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) FindByID(ctx context.Context, id int64) (*models.Professor, error) {
	return r.one(ctx, `SELECT `+columns+` FROM professors WHERE id = $1`, id)
}

func (r *PostgresRepository) Update(ctx context.Context, p *models.Professor) (*models.Professor, error) {
	return r.one(ctx,
		`UPDATE professors SET name = $1, bio = $2, instrument = $3, photo_url = $4 WHERE id = $5 RETURNING `+columns,
		p.Name, p.Bio, p.Instrument, p.PhotoURL, p.ID)
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) (*models.Professor, error) {
	return r.one(ctx, `DELETE FROM professors WHERE id = $1 RETURNING `+columns, id)
}
