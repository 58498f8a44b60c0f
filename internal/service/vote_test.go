package service

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkshelf/inkshelf-server/internal/domain"
	domainerrors "github.com/inkshelf/inkshelf-server/internal/errors"
)

func TestVote_ToggleAndSwitch(t *testing.T) {
	env, cleanup := setupTestEnv(t)
	defer cleanup()

	ctx := context.Background()
	alice := env.registerUser(t, "alice", "alice@example.com")
	bob := env.registerUser(t, "bob", "bob@example.com")

	entry, err := env.journal.Create(ctx, alice.ID, "OL1W", "worth arguing about", 0, false)
	require.NoError(t, err)

	// First upvote applies.
	result, err := env.journal.Upvote(ctx, bob.ID, entry.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.VoteApplied, result.Outcome)
	assert.Equal(t, 1, result.Upvotes)
	assert.Equal(t, 1, result.Score)

	// Same direction again removes it.
	result, err = env.journal.Upvote(ctx, bob.ID, entry.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.VoteRemoved, result.Outcome)
	assert.Zero(t, result.Upvotes)
	assert.Zero(t, result.Score)

	// Up then down moves the vote; the voter is never counted twice.
	_, err = env.journal.Upvote(ctx, bob.ID, entry.ID)
	require.NoError(t, err)
	result, err = env.journal.Downvote(ctx, bob.ID, entry.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.VoteApplied, result.Outcome)
	assert.Zero(t, result.Upvotes)
	assert.Equal(t, 1, result.Downvotes)
	assert.Equal(t, -1, result.Score)
}

func TestVote_NotFound(t *testing.T) {
	env, cleanup := setupTestEnv(t)
	defer cleanup()

	alice := env.registerUser(t, "alice", "alice@example.com")

	_, err := env.journal.Upvote(context.Background(), alice.ID, "missing")
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestVote_PrivateEntryHiddenFromVoters(t *testing.T) {
	env, cleanup := setupTestEnv(t)
	defer cleanup()

	ctx := context.Background()
	alice := env.registerUser(t, "alice", "alice@example.com")
	bob := env.registerUser(t, "bob", "bob@example.com")

	entry, err := env.journal.Create(ctx, alice.ID, "OL1W", "private musings", 0, true)
	require.NoError(t, err)

	_, err = env.journal.Upvote(ctx, bob.ID, entry.ID)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestVote_ConcurrentVotersAllCounted(t *testing.T) {
	env, cleanup := setupTestEnv(t)
	defer cleanup()

	ctx := context.Background()
	alice := env.registerUser(t, "alice", "alice@example.com")

	entry, err := env.journal.Create(ctx, alice.ID, "OL1W", "everyone has an opinion", 0, false)
	require.NoError(t, err)

	voters := []string{"v1", "v2", "v3", "v4", "v5"}
	var wg sync.WaitGroup
	errs := make([]error, len(voters))
	for i, voter := range voters {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = env.journal.Upvote(ctx, voter, entry.ID)
		}()
	}
	wg.Wait()

	// Conflicting commits retry from fresh state, so with a handful of
	// voters every toggle lands. Exhausted retries surface as retryable
	// unavailability, never as a silently dropped vote.
	applied := 0
	for _, err := range errs {
		if err == nil {
			applied++
		} else {
			assert.ErrorIs(t, err, domainerrors.ErrUnavailable)
		}
	}

	got, err := env.journal.Get(ctx, alice.ID, entry.ID)
	require.NoError(t, err)
	assert.Len(t, got.Upvoters, applied)
}
