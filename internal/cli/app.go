// Package cli implements the operator tool that bootstraps administrator
// accounts, including the Owner, directly against the database.
//
// Usage:
//
//	cli create-admin -u <username> -e <email>
//	cli set-password -e <email>
package cli

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/dmitrijs2005/catalogadmin/internal/server/config"
	"github.com/dmitrijs2005/catalogadmin/internal/server/models"
	"github.com/dmitrijs2005/catalogadmin/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/catalogadmin/internal/server/services"
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

var errUsage = errors.New("usage: cli create-admin -u <username> -e <email> | cli set-password -e <email>")

// AdminStore is the part of services.AdminService the tool needs.
type AdminStore interface {
	Create(ctx context.Context, username, email, password string) (*models.Admin, error)
	SetPassword(ctx context.Context, email, password string) (*models.Admin, error)
}

type App struct {
	admins AdminStore
	out    io.Writer
	db     *sql.DB
}

// NewApp connects to the database, applies pending migrations and builds
// the admin service.
func NewApp(ctx context.Context, c *config.Config, out io.Writer) (*App, error) {
	db, err := repomanager.Open(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrations: %w", err)
	}

	return &App{admins: services.NewAdminService(db, rm, c), out: out, db: db}, nil
}

func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}

// Run dispatches args (without the program name) to a command.
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errUsage
	}

	switch args[0] {
	case "create-admin":
		return a.createAdmin(ctx, args[1:])
	case "set-password":
		return a.setPassword(ctx, args[1:])
	default:
		return errUsage
	}
}

func (a *App) flagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.out)
	return fs
}

func validatePassword(pw []byte) error {
	return validation.Validate(string(pw),
		validation.Required.Error("password is required"),
		validation.Length(6, 50).Error("password must be between 6 and 50 characters"),
	)
}

func (a *App) createAdmin(ctx context.Context, args []string) error {
	fs := a.flagSet("create-admin")
	username := fs.String("u", "", "username")
	email := fs.String("e", "", "email")
	if err := fs.Parse(args); err != nil {
		return err
	}

	err := validation.Errors{
		"username": validation.Validate(*username, validation.Required, validation.Length(3, 50)),
		"email":    validation.Validate(*email, validation.Required, is.Email),
	}.Filter()
	if err != nil {
		return err
	}

	pw, err := GetNewPassword(a.out)
	if err != nil {
		return err
	}
	if err := validatePassword(pw); err != nil {
		return err
	}

	admin, err := a.admins.Create(ctx, *username, *email, string(pw))
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "admin %s (id %d) created\n", admin.Username, admin.ID)
	return nil
}

func (a *App) setPassword(ctx context.Context, args []string) error {
	fs := a.flagSet("set-password")
	email := fs.String("e", "", "email")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := validation.Validate(*email, validation.Required, is.Email); err != nil {
		return fmt.Errorf("email: %w", err)
	}

	pw, err := GetNewPassword(a.out)
	if err != nil {
		return err
	}
	if err := validatePassword(pw); err != nil {
		return err
	}

	admin, err := a.admins.SetPassword(ctx, *email, string(pw))
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "password for %s updated\n", admin.Email)
	return nil
}
