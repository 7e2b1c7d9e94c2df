package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/catalogadmin/internal/common"
	"github.com/dmitrijs2005/catalogadmin/internal/logging"
	"github.com/dmitrijs2005/catalogadmin/internal/server/auth"
)

// LabelField selects which claim is exposed as the identity's label.
type LabelField int

const (
	LabelEmail LabelField = iota
	LabelUsername
)

// Guard authenticates requests from their bearer token. Authenticate
// accepts any valid token; RequireOwner additionally demands the Owner.
type Guard struct {
	secret []byte
	owner  auth.OwnerDescriptor
	label  LabelField
	logger logging.Logger
}

func NewGuard(secret string, owner auth.OwnerDescriptor, label LabelField, logger logging.Logger) *Guard {
	return &Guard{secret: []byte(secret), owner: owner, label: label, logger: logger}
}

// extractToken prefers the dedicated header over Authorization.
func extractToken(r *http.Request) string {
	if t := strings.TrimSpace(r.Header.Get(common.AccessTokenHeaderName)); t != "" {
		return t
	}
	h := r.Header.Get(common.AuthorizationHeaderName)
	return strings.TrimSpace(strings.TrimPrefix(h, common.BearerPrefix))
}

func (g *Guard) decode(r *http.Request) (*auth.Claims, error) {
	token := extractToken(r)
	if token == "" {
		return nil, common.ErrTokenMissing
	}
	claims, err := auth.Decode(token, g.secret)
	if err != nil {
		g.logger.Debug(r.Context(), "token rejected", "error", err)
		if errors.Is(err, common.ErrAuthFailed) {
			return nil, common.ErrAuthFailed
		}
		return nil, err
	}
	return claims, nil
}

func (g *Guard) identity(c *auth.Claims, role auth.Role) auth.Identity {
	label := c.Email
	if g.label == LabelUsername {
		label = c.Username
	}
	return auth.Identity{ID: c.ID, Label: label, Email: c.Email, Role: role}
}

func (g *Guard) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := g.decode(r)
		if err != nil {
			writeError(r.Context(), w, g.logger, err)
			return
		}
		ctx := auth.WithIdentity(r.Context(), g.identity(claims, claims.UserType))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireOwner lets through only tokens matching the configured Owner and
// stamps the identity with RoleOwner regardless of the embedded role.
func (g *Guard) RequireOwner(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := g.decode(r)
		if err != nil {
			writeError(r.Context(), w, g.logger, err)
			return
		}
		if !g.owner.Matches(claims) {
			writeError(r.Context(), w, g.logger, common.ErrForbidden)
			return
		}
		ctx := auth.WithIdentity(r.Context(), g.identity(claims, auth.RoleOwner))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
