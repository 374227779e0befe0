package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "a@x.com", NormalizeEmail("  A@X.Com "))
	assert.Equal(t, "", NormalizeEmail("   "))
}

func TestNewUser_Defaults(t *testing.T) {
	now := time.Now()
	u := NewUser("id-1", " Ann@X.com", "$2a$10$hash", "  Ann ", now)

	assert.Equal(t, "id-1", u.ID)
	assert.Equal(t, "ann@x.com", u.Email)
	assert.Equal(t, "Ann", u.Name)
	assert.Equal(t, RoleStudent, u.Role)
	assert.Equal(t, PlanFree, u.Subscription.Plan)
	assert.False(t, u.Subscription.AutoRenew)
	assert.True(t, u.Settings.Notifications.Email)
	assert.True(t, u.Settings.Notifications.Push)
	assert.Equal(t, DefaultLanguage, u.Settings.Language)
	assert.NotNil(t, u.Profile.Subjects)
	assert.True(t, u.IsActive)
	assert.Nil(t, u.LastLogin)
	assert.Equal(t, now, u.CreatedAt)
}

func TestRole_Valid(t *testing.T) {
	assert.True(t, RoleStudent.Valid())
	assert.True(t, RoleAdmin.Valid())
	assert.False(t, Role("root").Valid())
}
