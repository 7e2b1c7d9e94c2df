package http

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dmitrijs2005/catalogadmin/internal/logging"
	"github.com/dmitrijs2005/catalogadmin/internal/server/auth"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

var testOwner = auth.OwnerDescriptor{ID: 1, Email: "owner@example.com"}

func tokenFor(t *testing.T, c auth.Claims, validity time.Duration) string {
	t.Helper()
	tok, err := auth.Issue(c, []byte(testSecret), validity)
	require.NoError(t, err)
	return tok
}

func ownerToken(t *testing.T) string {
	return tokenFor(t, auth.Claims{ID: 1, Username: "owner", Email: "owner@example.com", UserType: auth.RoleOwner}, time.Hour)
}

func adminToken(t *testing.T) string {
	return tokenFor(t, auth.Claims{ID: 2, Username: "bob", Email: "bob@example.com", UserType: auth.RoleAdmin}, time.Hour)
}

func newTestRouter(h *Handler) http.Handler {
	return NewRouter(RouterOptions{
		Handler:     h,
		Guard:       NewGuard(testSecret, testOwner, LabelEmail, logging.Nop{}),
		Metrics:     NewMetrics(),
		Logger:      logging.Nop{},
		MaxBodySize: 10 << 20,
	})
}

func do(t *testing.T, h http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		rd = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		rd = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("x-access-token", token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &m), rec.Body.String())
	return m
}
