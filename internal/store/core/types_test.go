package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitized_StripsSecrets(t *testing.T) {
	u := &User{
		ID:                  "usr_1",
		FullName:            "Ana García",
		Email:               "a@x.com",
		Username:            "ana",
		PasswordHash:        "$argon2id$...",
		CurrentRefreshToken: "rt-abc",
		AvatarURL:           "https://cdn.example.com/a.png",
		CreatedAt:           time.Now(),
	}

	s := u.Sanitized()
	require.NotNil(t, s)
	assert.Empty(t, s.PasswordHash)
	assert.Empty(t, s.CurrentRefreshToken)
	assert.Equal(t, "ana", s.Username)
	assert.Equal(t, "a@x.com", s.Email)

	// El original no se muta.
	assert.Equal(t, "$argon2id$...", u.PasswordHash)
	assert.Equal(t, "rt-abc", u.CurrentRefreshToken)
}

func TestSanitized_NilReceiver(t *testing.T) {
	var u *User
	assert.Nil(t, u.Sanitized())
}

func TestHasActiveSession(t *testing.T) {
	u := &User{ID: "usr_1"}
	assert.False(t, u.HasActiveSession())

	u.CurrentRefreshToken = "rt"
	assert.True(t, u.HasActiveSession())

	var nilUser *User
	assert.False(t, nilUser.HasActiveSession())
}
