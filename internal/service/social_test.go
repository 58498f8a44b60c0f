package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/inkshelf/inkshelf-server/internal/errors"
)

func TestFollowUnfollow(t *testing.T) {
	env, cleanup := setupTestEnv(t)
	defer cleanup()

	ctx := context.Background()
	alice := env.registerUser(t, "alice", "alice@example.com")
	bob := env.registerUser(t, "bob", "bob@example.com")

	require.NoError(t, env.social.Follow(ctx, alice.ID, bob.ID))
	// Following twice is a no-op.
	require.NoError(t, env.social.Follow(ctx, alice.ID, bob.ID))

	aliceDoc, err := env.user.Get(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{bob.ID}, aliceDoc.Following)

	bobDoc, err := env.user.Get(ctx, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{alice.ID}, bobDoc.Followers)

	require.NoError(t, env.social.Unfollow(ctx, alice.ID, bob.ID))
	// Unfollowing someone not followed is a no-op.
	require.NoError(t, env.social.Unfollow(ctx, alice.ID, bob.ID))

	aliceDoc, err = env.user.Get(ctx, alice.ID)
	require.NoError(t, err)
	assert.Empty(t, aliceDoc.Following)

	bobDoc, err = env.user.Get(ctx, bob.ID)
	require.NoError(t, err)
	assert.Empty(t, bobDoc.Followers)
}

func TestFollow_Self(t *testing.T) {
	env, cleanup := setupTestEnv(t)
	defer cleanup()

	alice := env.registerUser(t, "alice", "alice@example.com")

	err := env.social.Follow(context.Background(), alice.ID, alice.ID)
	assert.ErrorIs(t, err, domainerrors.ErrValidation)
}

func TestFollow_TargetMissing(t *testing.T) {
	env, cleanup := setupTestEnv(t)
	defer cleanup()

	alice := env.registerUser(t, "alice", "alice@example.com")

	err := env.social.Follow(context.Background(), alice.ID, "ghost")
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestFavorites(t *testing.T) {
	env, cleanup := setupTestEnv(t)
	defer cleanup()

	ctx := context.Background()
	alice := env.registerUser(t, "alice", "alice@example.com")

	favorites, err := env.social.AddFavorite(ctx, alice.ID, "OL1W")
	require.NoError(t, err)
	assert.Equal(t, []string{"OL1W"}, favorites)

	// Adding twice doesn't duplicate.
	favorites, err = env.social.AddFavorite(ctx, alice.ID, "OL1W")
	require.NoError(t, err)
	assert.Equal(t, []string{"OL1W"}, favorites)

	favorites, err = env.social.AddFavorite(ctx, alice.ID, "OL2W")
	require.NoError(t, err)
	assert.Len(t, favorites, 2)

	favorites, err = env.social.RemoveFavorite(ctx, alice.ID, "OL1W")
	require.NoError(t, err)
	assert.Equal(t, []string{"OL2W"}, favorites)

	listed, err := env.social.ListFavorites(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"OL2W"}, listed)
}
