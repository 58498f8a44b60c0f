package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkshelf/inkshelf-server/internal/domain"
	domainerrors "github.com/inkshelf/inkshelf-server/internal/errors"
)

func TestCreateJournal_Service(t *testing.T) {
	env, cleanup := setupTestEnv(t)
	defer cleanup()

	ctx := context.Background()
	alice := env.registerUser(t, "alice", "alice@example.com")

	entry, err := env.journal.Create(ctx, alice.ID, "OL1W", "a quiet, devastating book", 5, false)
	require.NoError(t, err)
	assert.Equal(t, alice.ID, entry.OwnerID)
	assert.Equal(t, 5, entry.Rating)

	// Public entries appear in the feed.
	feed, err := env.activity.Feed(ctx, 10, nil)
	require.NoError(t, err)
	require.Len(t, feed, 1)
	assert.Equal(t, domain.ActionJournal, feed[0].Action)
	assert.Equal(t, entry.ID, feed[0].JournalID)
}

func TestCreateJournal_PrivateSkipsFeed(t *testing.T) {
	env, cleanup := setupTestEnv(t)
	defer cleanup()

	ctx := context.Background()
	alice := env.registerUser(t, "alice", "alice@example.com")

	_, err := env.journal.Create(ctx, alice.ID, "OL1W", "not for public eyes", 0, true)
	require.NoError(t, err)

	feed, err := env.activity.Feed(ctx, 10, nil)
	require.NoError(t, err)
	assert.Empty(t, feed)
}

func TestCreateJournal_Validation(t *testing.T) {
	env, cleanup := setupTestEnv(t)
	defer cleanup()

	ctx := context.Background()
	alice := env.registerUser(t, "alice", "alice@example.com")

	_, err := env.journal.Create(ctx, alice.ID, "OL1W", "   ", 0, false)
	assert.ErrorIs(t, err, domainerrors.ErrValidation)

	_, err = env.journal.Create(ctx, alice.ID, "", "content", 0, false)
	assert.ErrorIs(t, err, domainerrors.ErrValidation)

	_, err = env.journal.Create(ctx, alice.ID, "OL1W", "content", 6, false)
	assert.ErrorIs(t, err, domainerrors.ErrValidation)
	assert.ErrorContains(t, err, "0 for unrated")

	// Zero means unrated and is accepted.
	_, err = env.journal.Create(ctx, alice.ID, "OL1W", "no rating given", 0, false)
	assert.NoError(t, err)
}

func TestGetJournal_PrivacyBoundary(t *testing.T) {
	env, cleanup := setupTestEnv(t)
	defer cleanup()

	ctx := context.Background()
	alice := env.registerUser(t, "alice", "alice@example.com")
	bob := env.registerUser(t, "bob", "bob@example.com")

	entry, err := env.journal.Create(ctx, alice.ID, "OL1W", "private musings", 0, true)
	require.NoError(t, err)

	// The owner sees it; to anyone else it does not exist.
	got, err := env.journal.Get(ctx, alice.ID, entry.ID)
	require.NoError(t, err)
	assert.Equal(t, entry.ID, got.ID)

	_, err = env.journal.Get(ctx, bob.ID, entry.ID)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestUpdateJournal_OwnershipRequired(t *testing.T) {
	env, cleanup := setupTestEnv(t)
	defer cleanup()

	ctx := context.Background()
	alice := env.registerUser(t, "alice", "alice@example.com")
	bob := env.registerUser(t, "bob", "bob@example.com")

	entry, err := env.journal.Create(ctx, alice.ID, "OL1W", "first draft", 3, false)
	require.NoError(t, err)

	updated, err := env.journal.Update(ctx, alice.ID, entry.ID, "second draft", 4, false)
	require.NoError(t, err)
	assert.Equal(t, "second draft", updated.Content)
	assert.Equal(t, 4, updated.Rating)

	_, err = env.journal.Update(ctx, bob.ID, entry.ID, "vandalism", 1, false)
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)
}

func TestListJournals_Visibility(t *testing.T) {
	env, cleanup := setupTestEnv(t)
	defer cleanup()

	ctx := context.Background()
	alice := env.registerUser(t, "alice", "alice@example.com")
	bob := env.registerUser(t, "bob", "bob@example.com")

	_, err := env.journal.Create(ctx, alice.ID, "OL1W", "public take", 4, false)
	require.NoError(t, err)
	_, err = env.journal.Create(ctx, alice.ID, "OL1W", "private take", 0, true)
	require.NoError(t, err)

	// Owner sees both of their entries.
	mine, err := env.journal.ListByOwner(ctx, alice.ID, alice.ID)
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	// Others see only the public one.
	theirs, err := env.journal.ListByOwner(ctx, bob.ID, alice.ID)
	require.NoError(t, err)
	require.Len(t, theirs, 1)
	assert.False(t, theirs[0].IsPrivate)

	forBook, err := env.journal.ListForBook(ctx, bob.ID, "OL1W")
	require.NoError(t, err)
	assert.Len(t, forBook, 1)

	forBookOwner, err := env.journal.ListForBook(ctx, alice.ID, "OL1W")
	require.NoError(t, err)
	assert.Len(t, forBookOwner, 2)
}
