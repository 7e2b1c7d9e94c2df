package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dmitrijs2005/catalogadmin/internal/common"
	"github.com/dmitrijs2005/catalogadmin/internal/logging"
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/stretchr/testify/assert"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{common.ErrTokenMissing, http.StatusUnauthorized},
		{common.ErrTokenExpired, http.StatusUnauthorized},
		{common.ErrInvalidToken, http.StatusUnauthorized},
		{common.ErrAuthFailed, http.StatusUnauthorized},
		{common.ErrBadCredentials, http.StatusUnauthorized},
		{common.ErrCurrentPasswordIncorrect, http.StatusUnauthorized},
		{common.ErrForbidden, http.StatusForbidden},
		{common.ErrOwnerUndeletable, http.StatusForbidden},
		{fmt.Errorf("email %w", common.ErrConflict), http.StatusBadRequest},
		{common.ErrCurrentPasswordRequired, http.StatusBadRequest},
		{common.ErrNothingToUpdate, http.StatusBadRequest},
		{errInvalidID, http.StatusBadRequest},
		{common.ErrorNotFound, http.StatusNotFound},
		{errors.New("db error: boom"), http.StatusInternalServerError},
		{common.ErrSecretMissing, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, statusFor(tt.err), tt.err.Error())
	}
}

type recordingLogger struct {
	logging.Nop
	errors int
}

func (l *recordingLogger) Error(context.Context, string, ...any) { l.errors++ }

func TestWriteError_HidesInternals(t *testing.T) {
	rec := httptest.NewRecorder()
	logger := &recordingLogger{}

	writeError(context.Background(), rec, logger, errors.New("db error: password=hunter2"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"internal server error"}`, rec.Body.String())
	assert.Equal(t, 1, logger.errors)
}

func TestWriteError_ValidationErrors(t *testing.T) {
	rec := httptest.NewRecorder()

	writeError(context.Background(), rec, logging.Nop{}, validation.Errors{"name": errors.New("name is required")})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"errors":{"name":"name is required"}}`, rec.Body.String())
}

func TestWriteError_ConflictMessage(t *testing.T) {
	rec := httptest.NewRecorder()

	writeError(context.Background(), rec, logging.Nop{}, fmt.Errorf("email %w", common.ErrConflict))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"email already in use"}`, rec.Body.String())
}
