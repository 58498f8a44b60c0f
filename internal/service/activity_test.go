package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkshelf/inkshelf-server/internal/domain"
)

func TestUserFeed(t *testing.T) {
	env, cleanup := setupTestEnv(t)
	defer cleanup()

	ctx := context.Background()
	alice := env.registerUser(t, "alice", "alice@example.com")
	bob := env.registerUser(t, "bob", "bob@example.com")

	_, err := env.shelf.SetStatus(ctx, alice.ID, "OL1W", domain.ShelfOngoing)
	require.NoError(t, err)
	_, err = env.shelf.SetStatus(ctx, bob.ID, "OL2W", domain.ShelfCompleted)
	require.NoError(t, err)
	_, err = env.journal.Create(ctx, alice.ID, "OL1W", "so far so good", 0, false)
	require.NoError(t, err)

	aliceFeed, err := env.activity.UserFeed(ctx, alice.ID, 10)
	require.NoError(t, err)
	require.Len(t, aliceFeed, 2)
	for _, activity := range aliceFeed {
		assert.Equal(t, alice.ID, activity.UserID)
	}

	global, err := env.activity.Feed(ctx, 10, nil)
	require.NoError(t, err)
	assert.Len(t, global, 3)
}

func TestFeed_LimitClamped(t *testing.T) {
	env, cleanup := setupTestEnv(t)
	defer cleanup()

	ctx := context.Background()
	alice := env.registerUser(t, "alice", "alice@example.com")

	_, err := env.shelf.SetStatus(ctx, alice.ID, "OL1W", domain.ShelfOngoing)
	require.NoError(t, err)

	// Nonsense limits fall back to the defaults rather than erroring.
	feed, err := env.activity.Feed(ctx, -5, nil)
	require.NoError(t, err)
	assert.Len(t, feed, 1)

	feed, err = env.activity.Feed(ctx, 100000, nil)
	require.NoError(t, err)
	assert.Len(t, feed, 1)
}

func TestRecordShelfChange_SupersedesAcrossBooksIndependently(t *testing.T) {
	env, cleanup := setupTestEnv(t)
	defer cleanup()

	ctx := context.Background()
	alice := env.registerUser(t, "alice", "alice@example.com")

	_, err := env.shelf.SetStatus(ctx, alice.ID, "OL1W", domain.ShelfOngoing)
	require.NoError(t, err)
	_, err = env.shelf.SetStatus(ctx, alice.ID, "OL2W", domain.ShelfOngoing)
	require.NoError(t, err)
	_, err = env.shelf.SetStatus(ctx, alice.ID, "OL1W", domain.ShelfCompleted)
	require.NoError(t, err)

	// One row per (user, book): the OL1W re-shelve replaced only its own row.
	feed, err := env.activity.Feed(ctx, 10, nil)
	require.NoError(t, err)
	require.Len(t, feed, 2)

	byBook := map[string]domain.ShelfStatus{}
	for _, activity := range feed {
		byBook[activity.BookKey] = activity.ShelfStatus
	}
	assert.Equal(t, domain.ShelfCompleted, byBook["OL1W"])
	assert.Equal(t, domain.ShelfOngoing, byBook["OL2W"])
}
