package auth

import "github.com/dmitrijs2005/catalogadmin/internal/server/models"

// Role is the privilege level embedded in a token as "userType".
type Role string

const (
	RoleOwner Role = "Owner"
	RoleAdmin Role = "admin"
)

// OwnerDescriptor identifies the single Owner account. Email is optional;
// when set, the Owner Guard also requires it to match.
type OwnerDescriptor struct {
	ID    int64
	Email string
}

// ComputeRole is the only place a role is derived from an identity. An
// identity is the Owner when its id matches, or when a configured Owner
// email matches its email.
func ComputeRole(a *models.Admin, owner OwnerDescriptor) Role {
	if a.ID == owner.ID || (owner.Email != "" && a.Email == owner.Email) {
		return RoleOwner
	}
	return RoleAdmin
}

// Matches reports whether decoded claims belong to the Owner. The id must
// match; the email must match too when one is configured.
func (o OwnerDescriptor) Matches(c *Claims) bool {
	if c.ID != o.ID {
		return false
	}
	return o.Email == "" || c.Email == o.Email
}
