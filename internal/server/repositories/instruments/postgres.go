package instruments

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/catalogadmin/internal/common"
	"github.com/dmitrijs2005/catalogadmin/internal/dbx"
	"github.com/dmitrijs2005/catalogadmin/internal/server/models"
)

const columns = `id, name, description, image_url`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) one(ctx context.Context, query string, args ...any) (*models.Instrument, error) {
	i := &models.Instrument{}
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&i.ID, &i.Name, &i.Description, &i.ImageURL)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return i, nil
}

func (r *PostgresRepository) Create(ctx context.Context, i *models.Instrument) (*models.Instrument, error) {
	return r.one(ctx,
		`INSERT INTO instruments (name, description, image_url) VALUES ($1, $2, $3) RETURNING `+columns,
		i.Name, i.Description, i.ImageURL)
}

func (r *PostgresRepository) List(ctx context.Context) ([]*models.Instrument, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+columns+` FROM instruments ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Instrument, 0)
	for rows.Next() {
		i := &models.Instrument{}
		if err := rows.Scan(&i.ID, &i.Name, &i.Description, &i.ImageURL); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, i)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) FindByID(ctx context.Context, id int64) (*models.Instrument, error) {
	return r.one(ctx, `SELECT `+columns+` FROM instruments WHERE id = $1`, id)
}

func (r *PostgresRepository) Update(ctx context.Context, i *models.Instrument) (*models.Instrument, error) {
	return r.one(ctx,
		`UPDATE instruments SET name = $1, description = $2, image_url = $3 WHERE id = $4 RETURNING `+columns,
		i.Name, i.Description, i.ImageURL, i.ID)
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) (*models.Instrument, error) {
	return r.one(ctx, `DELETE FROM instruments WHERE id = $1 RETURNING `+columns, id)
}
