package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/inkshelf/inkshelf-server/internal/errors"
)

func strPtr(s string) *string { return &s }

func TestUpdateProfile(t *testing.T) {
	env, cleanup := setupTestEnv(t)
	defer cleanup()

	ctx := context.Background()
	alice := env.registerUser(t, "alice", "alice@example.com")

	updated, err := env.user.UpdateProfile(ctx, alice.ID, ProfileUpdate{
		FullName: strPtr("Alice Liddell"),
		Bio:      strPtr("down the rabbit hole"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Alice Liddell", updated.FullName)
	assert.Equal(t, "down the rabbit hole", updated.Bio)
	// Untouched fields stay put.
	assert.Equal(t, "alice", updated.Handle)
}

func TestUpdateProfile_WithRename(t *testing.T) {
	env, cleanup := setupTestEnv(t)
	defer cleanup()

	ctx := context.Background()
	alice := env.registerUser(t, "alice", "alice@example.com")

	updated, err := env.user.UpdateProfile(ctx, alice.ID, ProfileUpdate{
		Handle: strPtr("Wonderland"),
		Bio:    strPtr("new name, new me"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Wonderland", updated.Handle)
	assert.Equal(t, "new name, new me", updated.Bio)

	resolved, err := env.user.GetByHandle(ctx, "wonderland")
	require.NoError(t, err)
	assert.Equal(t, alice.ID, resolved.ID)
}

func TestUpdateProfile_RenameConflictLeavesProfileUntouched(t *testing.T) {
	env, cleanup := setupTestEnv(t)
	defer cleanup()

	ctx := context.Background()
	env.registerUser(t, "alice", "alice@example.com")
	bob := env.registerUser(t, "bob", "bob@example.com")

	_, err := env.user.UpdateProfile(ctx, bob.ID, ProfileUpdate{
		Handle: strPtr("Alice"),
		Bio:    strPtr("should not apply"),
	})
	assert.ErrorIs(t, err, domainerrors.ErrConflict)

	bobDoc, err := env.user.Get(ctx, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, "bob", bobDoc.Handle)
	assert.Empty(t, bobDoc.Bio)
}
