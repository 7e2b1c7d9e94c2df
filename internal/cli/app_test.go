package cli

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/dmitrijs2005/catalogadmin/internal/common"
	"github.com/dmitrijs2005/catalogadmin/internal/server/models"
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAdmins struct {
	created  []string
	setFor   string
	password string
	err      error
}

func (f *fakeAdmins) Create(ctx context.Context, username, email, password string) (*models.Admin, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.created = append(f.created, username+"/"+email)
	f.password = password
	return &models.Admin{ID: 1, Username: username, Email: email}, nil
}

func (f *fakeAdmins) SetPassword(ctx context.Context, email, password string) (*models.Admin, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.setFor = email
	f.password = password
	return &models.Admin{ID: 1, Email: email}, nil
}

// stubPasswords feeds answers to successive prompts.
func stubPasswords(t *testing.T, answers ...string) {
	t.Helper()
	orig := readPassword
	t.Cleanup(func() { readPassword = orig })

	i := 0
	readPassword = func(int) ([]byte, error) {
		if i >= len(answers) {
			return nil, errors.New("no more input")
		}
		a := answers[i]
		i++
		return []byte(a), nil
	}
}

func newTestApp() (*App, *fakeAdmins, *bytes.Buffer) {
	f := &fakeAdmins{}
	out := &bytes.Buffer{}
	return &App{admins: f, out: out}, f, out
}

func TestRun_Usage(t *testing.T) {
	app, _, _ := newTestApp()

	assert.ErrorIs(t, app.Run(context.Background(), nil), errUsage)
	assert.ErrorIs(t, app.Run(context.Background(), []string{"drop-db"}), errUsage)
}

func TestCreateAdmin(t *testing.T) {
	app, f, out := newTestApp()
	stubPasswords(t, "s3cret!", "s3cret!")

	err := app.Run(context.Background(), []string{"create-admin", "-u", "owner", "-e", "owner@example.com"})
	require.NoError(t, err)
	assert.Equal(t, []string{"owner/owner@example.com"}, f.created)
	assert.Equal(t, "s3cret!", f.password)
	assert.Contains(t, out.String(), "admin owner (id 1) created")
}

func TestCreateAdmin_InvalidFlags(t *testing.T) {
	app, f, _ := newTestApp()

	err := app.Run(context.Background(), []string{"create-admin", "-u", "ab", "-e", "nope"})
	var verrs validation.Errors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs, "username")
	assert.Contains(t, verrs, "email")
	assert.Empty(t, f.created)
}

func TestCreateAdmin_PasswordMismatch(t *testing.T) {
	app, f, _ := newTestApp()
	stubPasswords(t, "first1", "second2")

	err := app.Run(context.Background(), []string{"create-admin", "-u", "owner", "-e", "owner@example.com"})
	assert.ErrorIs(t, err, errPasswordMismatch)
	assert.Empty(t, f.created)
}

func TestCreateAdmin_ShortPassword(t *testing.T) {
	app, f, _ := newTestApp()
	stubPasswords(t, "abc", "abc")

	err := app.Run(context.Background(), []string{"create-admin", "-u", "owner", "-e", "owner@example.com"})
	assert.Error(t, err)
	assert.Empty(t, f.created)
}

func TestCreateAdmin_Conflict(t *testing.T) {
	app, f, _ := newTestApp()
	f.err = common.ErrConflict
	stubPasswords(t, "s3cret!", "s3cret!")

	err := app.Run(context.Background(), []string{"create-admin", "-u", "owner", "-e", "owner@example.com"})
	assert.ErrorIs(t, err, common.ErrConflict)
}

func TestSetPassword(t *testing.T) {
	app, f, out := newTestApp()
	stubPasswords(t, "n3wpass", "n3wpass")

	err := app.Run(context.Background(), []string{"set-password", "-e", "owner@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "owner@example.com", f.setFor)
	assert.Equal(t, "n3wpass", f.password)
	assert.Contains(t, out.String(), "password for owner@example.com updated")
}

func TestSetPassword_UnknownEmail(t *testing.T) {
	app, f, _ := newTestApp()
	f.err = common.ErrorNotFound
	stubPasswords(t, "n3wpass", "n3wpass")

	err := app.Run(context.Background(), []string{"set-password", "-e", "ghost@example.com"})
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestSetPassword_RequiresEmail(t *testing.T) {
	app, _, _ := newTestApp()

	err := app.Run(context.Background(), []string{"set-password"})
	assert.Error(t, err)
}

func TestGetPassword_PropagatesReadError(t *testing.T) {
	stubPasswords(t)

	_, err := GetPassword(&bytes.Buffer{}, "Enter password: ")
	assert.Error(t, err)
}

func TestClose_WithoutDB(t *testing.T) {
	app, _, _ := newTestApp()
	assert.NoError(t, app.Close())
}
