package auth

import (
	"testing"

	"github.com/dmitrijs2005/catalogadmin/internal/server/models"
	"github.com/stretchr/testify/assert"
)

func TestComputeRole(t *testing.T) {
	tests := []struct {
		name  string
		admin models.Admin
		owner OwnerDescriptor
		want  Role
	}{
		{"id match", models.Admin{ID: 1, Email: "a@x.io"}, OwnerDescriptor{ID: 1}, RoleOwner},
		{"email match", models.Admin{ID: 9, Email: "boss@x.io"}, OwnerDescriptor{ID: 1, Email: "boss@x.io"}, RoleOwner},
		{"no match", models.Admin{ID: 2, Email: "a@x.io"}, OwnerDescriptor{ID: 1, Email: "boss@x.io"}, RoleAdmin},
		{"empty owner email never matches", models.Admin{ID: 2, Email: ""}, OwnerDescriptor{ID: 1}, RoleAdmin},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComputeRole(&tt.admin, tt.owner))
		})
	}
}

func TestOwnerDescriptor_Matches(t *testing.T) {
	idOnly := OwnerDescriptor{ID: 1}
	strict := OwnerDescriptor{ID: 1, Email: "boss@x.io"}

	assert.True(t, idOnly.Matches(&Claims{ID: 1, Email: "anything@x.io"}))
	assert.False(t, idOnly.Matches(&Claims{ID: 2}))

	assert.True(t, strict.Matches(&Claims{ID: 1, Email: "boss@x.io"}))
	assert.False(t, strict.Matches(&Claims{ID: 1, Email: "other@x.io"}))
	assert.False(t, strict.Matches(&Claims{ID: 2, Email: "boss@x.io"}))
}

func TestClaimsFor(t *testing.T) {
	c := ClaimsFor(&models.Admin{ID: 1, Username: "owner", Email: "o@x.io"}, OwnerDescriptor{ID: 1})
	assert.Equal(t, int64(1), c.ID)
	assert.Equal(t, "owner", c.Username)
	assert.Equal(t, "o@x.io", c.Email)
	assert.Equal(t, RoleOwner, c.UserType)
}
