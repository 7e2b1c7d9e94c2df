package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/catalogadmin/internal/dbx"
	"github.com/dmitrijs2005/catalogadmin/internal/server/repositories/admins"
	"github.com/dmitrijs2005/catalogadmin/internal/server/repositories/instruments"
	"github.com/dmitrijs2005/catalogadmin/internal/server/repositories/products"
	"github.com/dmitrijs2005/catalogadmin/internal/server/repositories/professors"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Admins(db dbx.DBTX) admins.Repository
	Products(db dbx.DBTX) products.Repository
	Instruments(db dbx.DBTX) instruments.Repository
	Professors(db dbx.DBTX) professors.Repository
}
