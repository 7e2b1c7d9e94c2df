package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/catalogadmin/internal/common"
	"github.com/dmitrijs2005/catalogadmin/internal/logging"
	validation "github.com/go-ozzo/ozzo-validation"
)

const internalErrorMessage = "internal server error"

type errorBody struct {
	Error string `json:"error"`
}

type messageBody struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// statusFor maps an error to the HTTP status the API reports for it.
// Conflicts are reported as 400, not 409.
func statusFor(err error) int {
	switch {
	case errors.Is(err, common.ErrTokenMissing),
		errors.Is(err, common.ErrTokenExpired),
		errors.Is(err, common.ErrInvalidToken),
		errors.Is(err, common.ErrAuthFailed),
		errors.Is(err, common.ErrBadCredentials),
		errors.Is(err, common.ErrCurrentPasswordIncorrect):
		return http.StatusUnauthorized
	case errors.Is(err, common.ErrForbidden),
		errors.Is(err, common.ErrOwnerUndeletable):
		return http.StatusForbidden
	case errors.Is(err, common.ErrConflict),
		errors.Is(err, common.ErrValidation),
		errors.Is(err, common.ErrCurrentPasswordRequired),
		errors.Is(err, common.ErrNothingToUpdate):
		return http.StatusBadRequest
	case errors.Is(err, common.ErrorNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// writeError renders err for the client. Field validation errors become
// {"errors": {...}}; anything unclassified is logged and hidden behind a
// generic message.
func writeError(ctx context.Context, w http.ResponseWriter, logger logging.Logger, err error) {
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		writeJSON(w, http.StatusBadRequest, map[string]any{"errors": verrs})
		return
	}

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		writeJSON(w, http.StatusRequestEntityTooLarge, errorBody{Error: "request body too large"})
		return
	}

	status := statusFor(err)
	if status == http.StatusInternalServerError {
		logger.Error(ctx, "request failed", "error", err)
		writeJSON(w, status, errorBody{Error: internalErrorMessage})
		return
	}
	writeJSON(w, status, errorBody{Error: err.Error()})
}
