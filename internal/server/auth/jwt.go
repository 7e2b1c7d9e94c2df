// Package auth implements the stateless bearer token codec, role derivation
// and password hashing used by the guards and the login/profile flows.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/catalogadmin/internal/common"
	"github.com/dmitrijs2005/catalogadmin/internal/server/models"
	"github.com/golang-jwt/jwt/v5"
)

// DefaultTokenValidity is the lifetime of every issued token.
const DefaultTokenValidity = 24 * time.Hour

// now is a seam for tests.
var now = time.Now

// Claims is the signed payload: identity id, labels and role plus the
// registered iat/exp timestamps.
type Claims struct {
	jwt.RegisteredClaims
	ID       int64  `json:"id"`
	Username string `json:"username,omitempty"`
	Email    string `json:"email"`
	UserType Role   `json:"userType"`
}

// ClaimsFor builds the claim set for an admin, computing its role.
func ClaimsFor(a *models.Admin, owner OwnerDescriptor) Claims {
	return Claims{
		ID:       a.ID,
		Username: a.Username,
		Email:    a.Email,
		UserType: ComputeRole(a, owner),
	}
}

// Issue signs claims with HS256. iat and exp are overwritten.
func Issue(claims Claims, secretKey []byte, validity time.Duration) (string, error) {
	if len(secretKey) == 0 {
		return "", common.ErrSecretMissing
	}

	issuedAt := now()
	claims.RegisteredClaims = jwt.RegisteredClaims{
		IssuedAt:  jwt.NewNumericDate(issuedAt),
		ExpiresAt: jwt.NewNumericDate(issuedAt.Add(validity)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// Decode verifies signature and expiry. It returns common.ErrTokenExpired,
// common.ErrInvalidToken for bad structure or signature, and an error
// wrapping common.ErrAuthFailed for anything else.
func Decode(tokenString string, secretKey []byte) (*Claims, error) {
	if len(secretKey) == 0 {
		return nil, common.ErrSecretMissing
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (interface{}, error) { return secretKey, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(now),
	)
	if err != nil {
		return nil, classify(err)
	}

	if !token.Valid {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}

func classify(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return common.ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenMalformed),
		errors.Is(err, jwt.ErrTokenSignatureInvalid),
		errors.Is(err, jwt.ErrTokenUnverifiable):
		return common.ErrInvalidToken
	default:
		return fmt.Errorf("%w: %v", common.ErrAuthFailed, err)
	}
}
