package products

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/catalogadmin/internal/common"
	"github.com/dmitrijs2005/catalogadmin/internal/dbx"
	"github.com/dmitrijs2005/catalogadmin/internal/server/models"
)

const columns = `id, name, price, images, stock`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanProduct(s scanner) (*models.Product, error) {
	p := &models.Product{}
	var images []byte
	if err := s.Scan(&p.ID, &p.Name, &p.Price, &images, &p.Stock); err != nil {
		return nil, err
	}
	p.Images = []string{}
	if len(images) > 0 {
		if err := json.Unmarshal(images, &p.Images); err != nil {
			return nil, fmt.Errorf("decode images: %w", err)
		}
	}
	return p, nil
}

func encodeImages(images []string) ([]byte, error) {
	if images == nil {
		images = []string{}
	}
	return json.Marshal(images)
}

func (r *PostgresRepository) Create(ctx context.Context, p *models.Product) (*models.Product, error) {
	images, err := encodeImages(p.Images)
	if err != nil {
		return nil, err
	}

	query := `INSERT INTO products (name, price, images, stock) VALUES ($1, $2, $3, $4) RETURNING ` + columns

	res, err := scanProduct(r.db.QueryRowContext(ctx, query, p.Name, p.Price, images, p.Stock))
	if err != nil {
		return nil, wrap(err)
	}
	return res, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]*models.Product, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+columns+` FROM products ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) FindByID(ctx context.Context, id int64) (*models.Product, error) {
	p, err := scanProduct(r.db.QueryRowContext(ctx, `SELECT `+columns+` FROM products WHERE id = $1`, id))
	if err != nil {
		return nil, wrap(err)
	}
	return p, nil
}

// Update overwrites every column of the row identified by p.ID.
func (r *PostgresRepository) Update(ctx context.Context, p *models.Product) (*models.Product, error) {
	images, err := encodeImages(p.Images)
	if err != nil {
		return nil, err
	}

	query := `UPDATE products SET name = $1, price = $2, images = $3, stock = $4 WHERE id = $5 RETURNING ` + columns

	res, err := scanProduct(r.db.QueryRowContext(ctx, query, p.Name, p.Price, images, p.Stock, p.ID))
	if err != nil {
		return nil, wrap(err)
	}
	return res, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) (*models.Product, error) {
	p, err := scanProduct(r.db.QueryRowContext(ctx, `DELETE FROM products WHERE id = $1 RETURNING `+columns, id))
	if err != nil {
		return nil, wrap(err)
	}
	return p, nil
}

func wrap(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return common.ErrorNotFound
	}
	return fmt.Errorf("db error: %w", err)
}
