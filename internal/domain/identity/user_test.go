package identity

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestUser(t *testing.T) *User {
	user, err := NewUser("jdoe", "hash", "salt", RoleStaff)
	require.NoError(t, err)
	return user
}

func TestRole_IsValid(t *testing.T) {
	tests := []struct {
		role    Role
		isValid bool
	}{
		{RoleAdmin, true},
		{RoleManager, true},
		{RoleStaff, true},
		{Role("SUPERUSER"), false},
		{Role(""), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			assert.Equal(t, tt.isValid, tt.role.IsValid())
		})
	}
}

func TestNewUser(t *testing.T) {
	t.Run("creates active user with lowercased username", func(t *testing.T) {
		user, err := NewUser("  JDoe  ", "hash", "salt", RoleAdmin)

		require.NoError(t, err)
		assert.Equal(t, "jdoe", user.Username)
		assert.Equal(t, RoleAdmin, user.Role)
		assert.True(t, user.IsActive())
		assert.True(t, user.IsAdmin())
		assert.Nil(t, user.LastLoginAt)
	})

	tests := []struct {
		name     string
		username string
		hash     string
		salt     string
		role     Role
	}{
		{"empty username", "", "hash", "salt", RoleStaff},
		{"short username", "ab", "hash", "salt", RoleStaff},
		{"long username", strings.Repeat("u", 101), "hash", "salt", RoleStaff},
		{"username with spaces inside", "j doe", "hash", "salt", RoleStaff},
		{"empty hash", "jdoe", "", "salt", RoleStaff},
		{"empty salt", "jdoe", "hash", "", RoleStaff},
		{"invalid role", "jdoe", "hash", "salt", Role("ROOT")},
	}

	for _, tt := range tests {
		t.Run("rejects "+tt.name, func(t *testing.T) {
			_, err := NewUser(tt.username, tt.hash, tt.salt, tt.role)
			assert.Error(t, err)
		})
	}
}

func TestUser_SetCredentials(t *testing.T) {
	user := createTestUser(t)

	require.NoError(t, user.SetCredentials("newhash", "newsalt"))
	assert.Equal(t, "newhash", user.PasswordHash)
	assert.Equal(t, "newsalt", user.Salt)

	// hash and salt are replaced together or not at all
	assert.Error(t, user.SetCredentials("onlyhash", ""))
	assert.Error(t, user.SetCredentials("", "onlysalt"))
	assert.Equal(t, "newhash", user.PasswordHash)
	assert.Equal(t, "newsalt", user.Salt)
}

func TestUser_SetRole(t *testing.T) {
	user := createTestUser(t)

	require.NoError(t, user.SetRole(RoleManager))
	assert.True(t, user.IsManager())

	assert.Error(t, user.SetRole(Role("ROOT")))
	assert.Equal(t, RoleManager, user.Role)
}

func TestUser_SetEmail(t *testing.T) {
	user := createTestUser(t)

	require.NoError(t, user.SetEmail("JDoe@Example.com"))
	assert.Equal(t, "jdoe@example.com", user.Email)

	assert.Error(t, user.SetEmail("bogus"))

	require.NoError(t, user.SetEmail(""))
	assert.Empty(t, user.Email)
}

func TestUser_RecordLogin(t *testing.T) {
	user := createTestUser(t)
	require.Nil(t, user.LastLoginAt)

	user.RecordLogin()
	require.NotNil(t, user.LastLoginAt)
	assert.False(t, user.LastLoginAt.IsZero())
}

func TestUser_ActivateDeactivate(t *testing.T) {
	user := createTestUser(t)

	assert.Error(t, user.Activate(), "already active")

	require.NoError(t, user.Deactivate())
	assert.False(t, user.IsActive())
	assert.Error(t, user.Deactivate(), "already inactive")

	require.NoError(t, user.Activate())
	assert.True(t, user.IsActive())
}
