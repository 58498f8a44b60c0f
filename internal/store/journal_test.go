package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkshelf/inkshelf-server/internal/domain"
)

func newTestJournal(id, ownerID, bookKey string) *domain.JournalEntry {
	now := time.Now()
	return &domain.JournalEntry{
		ID:        id,
		OwnerID:   ownerID,
		BookKey:   bookKey,
		Content:   "thoughts on chapter three",
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestCreateJournal(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	entry := newTestJournal("journal-1", "user-1", "OL123W")

	require.NoError(t, s.CreateJournal(ctx, entry))

	retrieved, err := s.GetJournal(ctx, "journal-1")
	require.NoError(t, err)
	assert.Equal(t, "user-1", retrieved.OwnerID)
	assert.Equal(t, "OL123W", retrieved.BookKey)
	assert.Equal(t, "thoughts on chapter three", retrieved.Content)
}

func TestGetJournal_NotFound(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	_, err := s.GetJournal(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrJournalNotFound)
}

func TestListJournalsByOwner(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	require.NoError(t, s.CreateJournal(ctx, newTestJournal("journal-1", "user-1", "OL123W")))
	require.NoError(t, s.CreateJournal(ctx, newTestJournal("journal-2", "user-1", "OL456W")))
	require.NoError(t, s.CreateJournal(ctx, newTestJournal("journal-3", "user-2", "OL123W")))

	entries, err := s.ListJournalsByOwner(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	for _, entry := range entries {
		assert.Equal(t, "user-1", entry.OwnerID)
	}

	entries, err = s.ListJournalsByOwner(ctx, "user-3")
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestListJournalsForBook(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	require.NoError(t, s.CreateJournal(ctx, newTestJournal("journal-1", "user-1", "OL123W")))
	require.NoError(t, s.CreateJournal(ctx, newTestJournal("journal-2", "user-2", "OL123W")))
	require.NoError(t, s.CreateJournal(ctx, newTestJournal("journal-3", "user-1", "OL456W")))

	entries, err := s.ListJournalsForBook(ctx, "OL123W")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	for _, entry := range entries {
		assert.Equal(t, "OL123W", entry.BookKey)
	}
}

func TestUpdateJournalWith(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	require.NoError(t, s.CreateJournal(ctx, newTestJournal("journal-1", "user-1", "OL123W")))

	updated, err := s.UpdateJournalWith(ctx, "journal-1", func(j *domain.JournalEntry) error {
		j.ApplyVote("user-2", domain.VoteUp)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"user-2"}, updated.Upvoters)

	retrieved, err := s.GetJournal(ctx, "journal-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"user-2"}, retrieved.Upvoters)
}

func TestUpdateJournalWith_NotFound(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	_, err := s.UpdateJournalWith(context.Background(), "missing", func(j *domain.JournalEntry) error {
		return nil
	})
	assert.ErrorIs(t, err, ErrJournalNotFound)
}
