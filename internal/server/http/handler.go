// Package http exposes the REST API: public catalog reads, the admin area
// behind the Authentication Guard, and administrator management behind the
// Owner Guard.
package http

import (
	"context"

	"github.com/dmitrijs2005/catalogadmin/internal/logging"
	"github.com/dmitrijs2005/catalogadmin/internal/server/models"
	"github.com/dmitrijs2005/catalogadmin/internal/server/services"
)

type AuthService interface {
	Login(ctx context.Context, identifier, password string) (*services.LoginResult, error)
	Profile(ctx context.Context, id int64) (*models.Admin, error)
	UpdateProfile(ctx context.Context, id int64, in services.ProfileUpdate) (*services.ProfileResult, error)
}

type AdminService interface {
	Create(ctx context.Context, username, email, password string) (*models.Admin, error)
	List(ctx context.Context) ([]*models.Admin, error)
	Get(ctx context.Context, id int64) (*models.Admin, error)
	Update(ctx context.Context, id int64, username, email *string) (*models.Admin, error)
	Delete(ctx context.Context, id int64) error
}

type CatalogService interface {
	ListProducts(ctx context.Context) ([]*models.Product, error)
	GetProduct(ctx context.Context, id int64) (*models.Product, error)
	CreateProduct(ctx context.Context, in services.ProductInput) (*models.Product, error)
	UpdateProduct(ctx context.Context, id int64, in services.ProductInput) (*models.Product, error)
	DeleteProduct(ctx context.Context, id int64) error

	ListInstruments(ctx context.Context) ([]*models.Instrument, error)
	GetInstrument(ctx context.Context, id int64) (*models.Instrument, error)
	CreateInstrument(ctx context.Context, in services.InstrumentInput) (*models.Instrument, error)
	UpdateInstrument(ctx context.Context, id int64, in services.InstrumentInput) (*models.Instrument, error)
	DeleteInstrument(ctx context.Context, id int64) error

	ListProfessors(ctx context.Context) ([]*models.Professor, error)
	GetProfessor(ctx context.Context, id int64) (*models.Professor, error)
	CreateProfessor(ctx context.Context, in services.ProfessorInput) (*models.Professor, error)
	UpdateProfessor(ctx context.Context, id int64, in services.ProfessorInput) (*models.Professor, error)
	DeleteProfessor(ctx context.Context, id int64) error
}

// Handler holds the route handlers and their collaborators.
type Handler struct {
	auth      AuthService
	admins    AdminService
	catalog   CatalogService
	logger    logging.Logger
	maxUpload int64
}

func NewHandler(a AuthService, ad AdminService, c CatalogService, logger logging.Logger, maxUpload int64) *Handler {
	return &Handler{auth: a, admins: ad, catalog: c, logger: logger, maxUpload: maxUpload}
}
