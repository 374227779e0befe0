package dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/AnthoniusHendriyanto/studypath-auth/internal/auth/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToPublicUser_OmitsPasswordHash(t *testing.T) {
	u := domain.NewUser("u-1", "a@x.com", "$2a$10$secrethash", "Ann", time.Now())

	pub := ToPublicUser(u)
	raw, err := json.Marshal(pub)
	require.NoError(t, err)

	assert.NotContains(t, string(raw), "password")
	assert.NotContains(t, string(raw), "$2a$10$secrethash")

	var fields map[string]any
	require.NoError(t, json.Unmarshal(raw, &fields))
	assert.Equal(t, "a@x.com", fields["email"])
	assert.Equal(t, "student", fields["role"])
	assert.Equal(t, true, fields["is_active"])
	assert.NotContains(t, fields, "last_login")
}
