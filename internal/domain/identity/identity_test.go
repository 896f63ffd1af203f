package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGuest(t *testing.T) {
	g := Guest()
	assert.False(t, g.IsAuthenticated())
	assert.False(t, g.IsAdmin())
	assert.Empty(t, g.UserID())
	assert.Nil(t, g.OrgID())
}

func TestAuthenticated(t *testing.T) {
	orgID := "org-1"
	u := Authenticated("user-1", "u@example.com", "user", &orgID)
	assert.True(t, u.IsAuthenticated())
	assert.False(t, u.IsAdmin())
	assert.Equal(t, "user-1", u.UserID())
	assert.Equal(t, "u@example.com", u.Email())
	assert.Equal(t, "org-1", *u.OrgID())

	admin := Authenticated("admin-1", "a@example.com", RoleAdmin, nil)
	assert.True(t, admin.IsAdmin())
	assert.Nil(t, admin.OrgID())
}
