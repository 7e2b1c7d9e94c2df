package services

import (
	"context"
	"database/sql"
	"fmt"
	"slices"

	"github.com/dmitrijs2005/catalogadmin/internal/logging"
	"github.com/dmitrijs2005/catalogadmin/internal/server/models"
	"github.com/dmitrijs2005/catalogadmin/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/catalogadmin/internal/server/storage"
)

const (
	productsCollection    = "products"
	instrumentsCollection = "instruments"
	professorsCollection  = "professors"
)

// Upload is an image received from a client.
type Upload struct {
	Data        []byte
	ContentType string
}

type ProductInput struct {
	Name  string
	Price float64
	// Stock nil means 0 on create and unchanged on update.
	Stock          *int
	Uploads        []Upload
	ImagesToRemove []string
}

type InstrumentInput struct {
	Name        string
	Description string
	Image       *Upload
}

type ProfessorInput struct {
	Name       string
	Bio        string
	Instrument string
	Photo      *Upload
}

// CatalogService owns products, instruments and professors together with
// their images in blob storage. Failing to remove an image is logged and
// never fails the surrounding operation.
type CatalogService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	store       storage.BlobStore
	logger      logging.Logger
}

func NewCatalogService(db *sql.DB, m repomanager.RepositoryManager, store storage.BlobStore, logger logging.Logger) *CatalogService {
	return &CatalogService{db: db, repomanager: m, store: store, logger: logger}
}

func (s *CatalogService) upload(ctx context.Context, collection string, u Upload) (string, error) {
	ct := u.ContentType
	if ct == "" {
		ct = "image/jpeg"
	}
	url, err := s.store.Upload(ctx, storage.NewObjectKey(collection, ct), u.Data, ct)
	if err != nil {
		return "", fmt.Errorf("error uploading image: %w", err)
	}
	return url, nil
}

func (s *CatalogService) uploadAll(ctx context.Context, collection string, uploads []Upload) ([]string, error) {
	urls := make([]string, 0, len(uploads))
	for _, u := range uploads {
		url, err := s.upload(ctx, collection, u)
		if err != nil {
			s.removeAll(ctx, urls)
			return nil, err
		}
		urls = append(urls, url)
	}
	return urls, nil
}

func (s *CatalogService) removeAll(ctx context.Context, urls []string) {
	for _, url := range urls {
		if url == "" {
			continue
		}
		if err := s.store.Remove(ctx, url); err != nil {
			s.logger.Warn(ctx, "failed to remove image from storage", "url", url, "error", err)
		}
	}
}

// --- products ---

func (s *CatalogService) ListProducts(ctx context.Context) ([]*models.Product, error) {
	return s.repomanager.Products(s.db).List(ctx)
}

func (s *CatalogService) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	return s.repomanager.Products(s.db).FindByID(ctx, id)
}

func (s *CatalogService) CreateProduct(ctx context.Context, in ProductInput) (*models.Product, error) {
	images, err := s.uploadAll(ctx, productsCollection, in.Uploads)
	if err != nil {
		return nil, err
	}

	stock := 0
	if in.Stock != nil {
		stock = *in.Stock
	}

	p, err := s.repomanager.Products(s.db).Create(ctx, &models.Product{
		Name:   in.Name,
		Price:  in.Price,
		Images: images,
		Stock:  stock,
	})
	if err != nil {
		s.removeAll(ctx, images)
		return nil, err
	}
	return p, nil
}

// UpdateProduct replaces name and price, drops ImagesToRemove and appends
// the new uploads.
func (s *CatalogService) UpdateProduct(ctx context.Context, id int64, in ProductInput) (*models.Product, error) {
	repo := s.repomanager.Products(s.db)

	current, err := repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	added, err := s.uploadAll(ctx, productsCollection, in.Uploads)
	if err != nil {
		return nil, err
	}

	var removed []string
	images := make([]string, 0, len(current.Images)+len(added))
	for _, url := range current.Images {
		if slices.Contains(in.ImagesToRemove, url) {
			removed = append(removed, url)
			continue
		}
		images = append(images, url)
	}
	images = append(images, added...)

	stock := current.Stock
	if in.Stock != nil {
		stock = *in.Stock
	}

	p, err := repo.Update(ctx, &models.Product{
		ID:     id,
		Name:   in.Name,
		Price:  in.Price,
		Images: images,
		Stock:  stock,
	})
	if err != nil {
		s.removeAll(ctx, added)
		return nil, err
	}

	s.removeAll(ctx, removed)
	return p, nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id int64) error {
	p, err := s.repomanager.Products(s.db).Delete(ctx, id)
	if err != nil {
		return err
	}
	s.removeAll(ctx, p.Images)
	return nil
}

// --- instruments ---

func (s *CatalogService) ListInstruments(ctx context.Context) ([]*models.Instrument, error) {
	return s.repomanager.Instruments(s.db).List(ctx)
}

func (s *CatalogService) GetInstrument(ctx context.Context, id int64) (*models.Instrument, error) {
	return s.repomanager.Instruments(s.db).FindByID(ctx, id)
}

func (s *CatalogService) CreateInstrument(ctx context.Context, in InstrumentInput) (*models.Instrument, error) {
	var url string
	if in.Image != nil {
		var err error
		if url, err = s.upload(ctx, instrumentsCollection, *in.Image); err != nil {
			return nil, err
		}
	}

	i, err := s.repomanager.Instruments(s.db).Create(ctx, &models.Instrument{
		Name:        in.Name,
		Description: in.Description,
		ImageURL:    url,
	})
	if err != nil {
		s.removeAll(ctx, []string{url})
		return nil, err
	}
	return i, nil
}

// UpdateInstrument keeps the current image unless a new one is supplied.
func (s *CatalogService) UpdateInstrument(ctx context.Context, id int64, in InstrumentInput) (*models.Instrument, error) {
	repo := s.repomanager.Instruments(s.db)

	current, err := repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	url := current.ImageURL
	if in.Image != nil {
		if url, err = s.upload(ctx, instrumentsCollection, *in.Image); err != nil {
			return nil, err
		}
	}

	i, err := repo.Update(ctx, &models.Instrument{ID: id, Name: in.Name, Description: in.Description, ImageURL: url})
	if err != nil {
		if url != current.ImageURL {
			s.removeAll(ctx, []string{url})
		}
		return nil, err
	}

	if url != current.ImageURL {
		s.removeAll(ctx, []string{current.ImageURL})
	}
	return i, nil
}

func (s *CatalogService) DeleteInstrument(ctx context.Context, id int64) error {
	i, err := s.repomanager.Instruments(s.db).Delete(ctx, id)
	if err != nil {
		return err
	}
	s.removeAll(ctx, []string{i.ImageURL})
	return nil
}

// --- professors ---

func (s *CatalogService) ListProfessors(ctx context.Context) ([]*models.Professor, error) {
	return s.repomanager.Professors(s.db).List(ctx)
}

func (s *CatalogService) GetProfessor(ctx context.Context, id int64) (*models.Professor, error) {
	return s.repomanager.Professors(s.db).FindByID(ctx, id)
}

func (s *CatalogService) CreateProfessor(ctx context.Context, in ProfessorInput) (*models.Professor, error) {
	var url string
	if in.Photo != nil {
		var err error
		if url, err = s.upload(ctx, professorsCollection, *in.Photo); err != nil {
			return nil, err
		}
	}

	p, err := s.repomanager.Professors(s.db).Create(ctx, &models.Professor{
		Name:       in.Name,
		Bio:        in.Bio,
		Instrument: in.Instrument,
		PhotoURL:   url,
	})
	if err != nil {
		s.removeAll(ctx, []string{url})
		return nil, err
	}
	return p, nil
}

func (s *CatalogService) UpdateProfessor(ctx context.Context, id int64, in ProfessorInput) (*models.Professor, error) {
	repo := s.repomanager.Professors(s.db)

	current, err := repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	url := current.PhotoURL
	if in.Photo != nil {
		if url, err = s.upload(ctx, professorsCollection, *in.Photo); err != nil {
			return nil, err
		}
	}

	p, err := repo.Update(ctx, &models.Professor{
		ID:         id,
		Name:       in.Name,
		Bio:        in.Bio,
		Instrument: in.Instrument,
		PhotoURL:   url,
	})
	if err != nil {
		if url != current.PhotoURL {
			s.removeAll(ctx, []string{url})
		}
		return nil, err
	}

	if url != current.PhotoURL {
		s.removeAll(ctx, []string{current.PhotoURL})
	}
	return p, nil
}

func (s *CatalogService) DeleteProfessor(ctx context.Context, id int64) error {
	p, err := s.repomanager.Professors(s.db).Delete(ctx, id)
	if err != nil {
		return err
	}
	s.removeAll(ctx, []string{p.PhotoURL})
	return nil
}
