// Package models defines the records persisted in the relational store.
package models

// Admin is an administrator identity. PasswordHash never leaves the server.
type Admin struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
}

// AdminChanges carries the fields a mutation replaces; nil means keep.
type AdminChanges struct {
	Username     *string
	Email        *string
	PasswordHash *string
}

// Empty reports whether no field would change.
func (c AdminChanges) Empty() bool {
	return c.Username == nil && c.Email == nil && c.PasswordHash == nil
}
