package persistence

import (
	"context"
	"testing"

	"github.com/bizdesk/backend/internal/domain/identity"
	"github.com/bizdesk/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPersistedUser(t *testing.T, username string) *identity.User {
	user, err := identity.NewUser(username, "aGFzaA==", "c2FsdA==", identity.RoleStaff)
	require.NoError(t, err)
	return user
}

func TestGormUserRepository_FindByUsername(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormUserRepository(db)
	ctx := context.Background()

	user := newPersistedUser(t, "JDoe")
	require.NoError(t, repo.Create(ctx, user))

	t.Run("finds by the stored form", func(t *testing.T) {
		found, err := repo.FindByUsername(ctx, "jdoe")
		require.NoError(t, err)
		assert.Equal(t, user.ID, found.ID)
	})

	t.Run("folds a mixed case lookup", func(t *testing.T) {
		found, err := repo.FindByUsername(ctx, "JDoe")
		require.NoError(t, err)
		assert.Equal(t, user.ID, found.ID)
		assert.Equal(t, "jdoe", found.Username)
	})

	t.Run("trims surrounding whitespace", func(t *testing.T) {
		found, err := repo.FindByUsername(ctx, "  JDOE  ")
		require.NoError(t, err)
		assert.Equal(t, user.ID, found.ID)
	})

	t.Run("unknown username", func(t *testing.T) {
		_, err := repo.FindByUsername(ctx, "nobody")
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormUserRepository_ExistsByUsername(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormUserRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newPersistedUser(t, "admin")))

	exists, err := repo.ExistsByUsername(ctx, "Admin")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByUsername(ctx, "manager")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestGormUserRepository_Delete(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormUserRepository(db)
	ctx := context.Background()

	user := newPersistedUser(t, "temp-user")
	require.NoError(t, repo.Create(ctx, user))
	require.NoError(t, repo.Delete(ctx, user.ID))

	_, err := repo.FindByID(ctx, user.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	assert.ErrorIs(t, repo.Delete(ctx, user.ID), shared.ErrNotFound)
}
