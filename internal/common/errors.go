// Package common defines shared constants and sentinel errors used across
// the repository, service and transport layers. Callers should use errors.Is
// to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")
	ErrConflict   = errors.New("already in use")

	// Service-level errors.
	ErrForbidden  = errors.New("owner only")
	ErrValidation = errors.New("validation error")

	// Credential errors. ErrBadCredentials is returned both for unknown
	// identities and wrong passwords.
	ErrBadCredentials           = errors.New("bad credentials")
	ErrCurrentPasswordIncorrect = errors.New("current password incorrect")
	ErrCurrentPasswordRequired  = errors.New("current password is required to change username, email or password")
	ErrNothingToUpdate          = errors.New("at least username or email must be provided")
	ErrOwnerUndeletable         = errors.New("the owner account cannot be deleted")

	// Token errors.
	ErrTokenMissing  = errors.New("no token")
	ErrTokenExpired  = errors.New("expired")
	ErrInvalidToken  = errors.New("invalid")
	ErrAuthFailed    = errors.New("auth failed")
	ErrSecretMissing = errors.New("token secret is not configured")
)
