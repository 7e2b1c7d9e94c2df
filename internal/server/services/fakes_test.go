package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/catalogadmin/internal/common"
	"github.com/dmitrijs2005/catalogadmin/internal/dbx"
	"github.com/dmitrijs2005/catalogadmin/internal/server/config"
	"github.com/dmitrijs2005/catalogadmin/internal/server/models"
	"github.com/dmitrijs2005/catalogadmin/internal/server/repositories/admins"
	"github.com/dmitrijs2005/catalogadmin/internal/server/repositories/instruments"
	"github.com/dmitrijs2005/catalogadmin/internal/server/repositories/products"
	"github.com/dmitrijs2005/catalogadmin/internal/server/repositories/professors"
	"github.com/dmitrijs2005/catalogadmin/internal/server/repositories/repomanager"
	"golang.org/x/crypto/bcrypt"
)

// --- helpers ---

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func testConfig() *config.Config {
	return &config.Config{
		SecretKey:             "k",
		TokenValidityDuration: time.Hour,
		OwnerID:               1,
		PasswordHashCost:      bcrypt.MinCost,
	}
}

// --- in-memory admins repo ---

type memAdmins struct {
	rows   map[int64]models.Admin
	nextID int64

	updates int
	findErr error
}

var _ admins.Repository = (*memAdmins)(nil)

func newMemAdmins(list ...models.Admin) *memAdmins {
	m := &memAdmins{rows: map[int64]models.Admin{}, nextID: 1}
	for _, a := range list {
		m.rows[a.ID] = a
		if a.ID >= m.nextID {
			m.nextID = a.ID + 1
		}
	}
	return m
}

func (m *memAdmins) get(id int64) models.Admin { return m.rows[id] }

func (m *memAdmins) Create(ctx context.Context, a *models.Admin) (*models.Admin, error) {
	for _, r := range m.rows {
		if r.Username == a.Username || r.Email == a.Email {
			return nil, fmt.Errorf("%w: duplicate", common.ErrConflict)
		}
	}
	a.ID = m.nextID
	m.nextID++
	m.rows[a.ID] = *a
	cp := *a
	return &cp, nil
}

func (m *memAdmins) find(match func(models.Admin) bool) (*models.Admin, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	for _, r := range m.rows {
		if match(r) {
			cp := r
			return &cp, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (m *memAdmins) FindByID(ctx context.Context, id int64) (*models.Admin, error) {
	return m.find(func(a models.Admin) bool { return a.ID == id })
}

func (m *memAdmins) FindByEmail(ctx context.Context, email string) (*models.Admin, error) {
	return m.find(func(a models.Admin) bool { return a.Email == email })
}

func (m *memAdmins) FindByUsername(ctx context.Context, username string) (*models.Admin, error) {
	return m.find(func(a models.Admin) bool { return a.Username == username })
}

func (m *memAdmins) ExistsWithEmail(ctx context.Context, email string, excludeID int64) (bool, error) {
	for _, r := range m.rows {
		if r.Email == email && r.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (m *memAdmins) ExistsWithUsername(ctx context.Context, username string, excludeID int64) (bool, error) {
	for _, r := range m.rows {
		if r.Username == username && r.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (m *memAdmins) Update(ctx context.Context, id int64, c models.AdminChanges) (*models.Admin, error) {
	r, ok := m.rows[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	m.updates++
	if c.Username != nil {
		r.Username = *c.Username
	}
	if c.Email != nil {
		r.Email = *c.Email
	}
	if c.PasswordHash != nil {
		r.PasswordHash = *c.PasswordHash
	}
	m.rows[id] = r
	cp := r
	return &cp, nil
}

func (m *memAdmins) List(ctx context.Context) ([]*models.Admin, error) {
	out := make([]*models.Admin, 0, len(m.rows))
	for _, r := range m.rows {
		cp := r
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memAdmins) Delete(ctx context.Context, id int64) error {
	if _, ok := m.rows[id]; !ok {
		return common.ErrorNotFound
	}
	delete(m.rows, id)
	return nil
}

// --- in-memory catalog repos ---

type memProducts struct {
	rows      map[int64]models.Product
	nextID    int64
	createErr error
	updateErr error
}

var _ products.Repository = (*memProducts)(nil)

func newMemProducts() *memProducts { return &memProducts{rows: map[int64]models.Product{}, nextID: 1} }

func (m *memProducts) Create(ctx context.Context, p *models.Product) (*models.Product, error) {
	if m.createErr != nil {
		return nil, m.createErr
	}
	p.ID = m.nextID
	m.nextID++
	m.rows[p.ID] = *p
	cp := *p
	return &cp, nil
}

func (m *memProducts) List(ctx context.Context) ([]*models.Product, error) {
	out := make([]*models.Product, 0, len(m.rows))
	for _, r := range m.rows {
		cp := r
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memProducts) FindByID(ctx context.Context, id int64) (*models.Product, error) {
	r, ok := m.rows[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &r, nil
}

func (m *memProducts) Update(ctx context.Context, p *models.Product) (*models.Product, error) {
	if m.updateErr != nil {
		return nil, m.updateErr
	}
	if _, ok := m.rows[p.ID]; !ok {
		return nil, common.ErrorNotFound
	}
	m.rows[p.ID] = *p
	cp := *p
	return &cp, nil
}

func (m *memProducts) Delete(ctx context.Context, id int64) (*models.Product, error) {
	r, ok := m.rows[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	delete(m.rows, id)
	return &r, nil
}

type memInstruments struct {
	rows   map[int64]models.Instrument
	nextID int64
}

var _ instruments.Repository = (*memInstruments)(nil)

func newMemInstruments() *memInstruments {
	return &memInstruments{rows: map[int64]models.Instrument{}, nextID: 1}
}

func (m *memInstruments) Create(ctx context.Context, i *models.Instrument) (*models.Instrument, error) {
	i.ID = m.nextID
	m.nextID++
	m.rows[i.ID] = *i
	cp := *i
	return &cp, nil
}

func (m *memInstruments) List(ctx context.Context) ([]*models.Instrument, error) {
	out := make([]*models.Instrument, 0, len(m.rows))
	for _, r := range m.rows {
		cp := r
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memInstruments) FindByID(ctx context.Context, id int64) (*models.Instrument, error) {
	r, ok := m.rows[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &r, nil
}

func (m *memInstruments) Update(ctx context.Context, i *models.Instrument) (*models.Instrument, error) {
	if _, ok := m.rows[i.ID]; !ok {
		return nil, common.ErrorNotFound
	}
	m.rows[i.ID] = *i
	cp := *i
	return &cp, nil
}

func (m *memInstruments) Delete(ctx context.Context, id int64) (*models.Instrument, error) {
	r, ok := m.rows[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	delete(m.rows, id)
	return &r, nil
}

type memProfessors struct {
	rows   map[int64]models.Professor
	nextID int64
}

var _ professors.Repository = (*memProfessors)(nil)

func newMemProfessors() *memProfessors {
	return &memProfessors{rows: map[int64]models.Professor{}, nextID: 1}
}

func (m *memProfessors) Create(ctx context.Context, p *models.Professor) (*models.Professor, error) {
	p.ID = m.nextID
	m.nextID++
	m.rows[p.ID] = *p
	cp := *p
	return &cp, nil
}

func (m *memProfessors) List(ctx context.Context) ([]*models.Professor, error) {
	out := make([]*models.Professor, 0, len(m.rows))
	for _, r := range m.rows {
		cp := r
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memProfessors) FindByID(ctx context.Context, id int64) (*models.Professor, error) {
	r, ok := m.rows[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &r, nil
}

func (m *memProfessors) Update(ctx context.Context, p *models.Professor) (*models.Professor, error) {
	if _, ok := m.rows[p.ID]; !ok {
		return nil, common.ErrorNotFound
	}
	m.rows[p.ID] = *p
	cp := *p
	return &cp, nil
}

func (m *memProfessors) Delete(ctx context.Context, id int64) (*models.Professor, error) {
	r, ok := m.rows[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	delete(m.rows, id)
	return &r, nil
}

// --- repo manager ---

type fakeRepoManager struct {
	admins      *memAdmins
	products    *memProducts
	instruments *memInstruments
	professors  *memProfessors
}

var _ repomanager.RepositoryManager = (*fakeRepoManager)(nil)

func newFakeRepoManager(list ...models.Admin) *fakeRepoManager {
	return &fakeRepoManager{
		admins:      newMemAdmins(list...),
		products:    newMemProducts(),
		instruments: newMemInstruments(),
		professors:  newMemProfessors(),
	}
}

func (f *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }

func (f *fakeRepoManager) Admins(dbx.DBTX) admins.Repository { return f.admins }

func (f *fakeRepoManager) Products(dbx.DBTX) products.Repository { return f.products }

func (f *fakeRepoManager) Instruments(dbx.DBTX) instruments.Repository { return f.instruments }

func (f *fakeRepoManager) Professors(dbx.DBTX) professors.Repository { return f.professors }

// --- blob store ---

type fakeStore struct {
	uploaded  map[string][]byte
	removed   []string
	uploadErr error
	removeErr error
}

func newFakeStore() *fakeStore { return &fakeStore{uploaded: map[string][]byte{}} }

func (f *fakeStore) Upload(ctx context.Context, key string, body []byte, contentType string) (string, error) {
	if f.uploadErr != nil {
		return "", f.uploadErr
	}
	url := "https://cdn.test/" + key
	f.uploaded[url] = body
	return url, nil
}

func (f *fakeStore) Remove(ctx context.Context, url string) error {
	f.removed = append(f.removed, url)
	if f.removeErr != nil {
		return f.removeErr
	}
	if !strings.HasPrefix(url, "https://cdn.test/") {
		return errors.New("foreign url")
	}
	return nil
}

func mustHash(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	return string(h)
}
