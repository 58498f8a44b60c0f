package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkshelf/inkshelf-server/internal/domain"
)

func newShelfActivity(id, userID, bookKey string, status domain.ShelfStatus, at time.Time) *domain.Activity {
	return &domain.Activity{
		ID:          id,
		UserID:      userID,
		Action:      domain.ActionShelve,
		BookKey:     bookKey,
		ShelfStatus: status,
		CreatedAt:   at,
	}
}

func TestCreateActivityAndFeedOrder(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	base := time.Now().Add(-time.Hour)

	require.NoError(t, s.CreateActivity(ctx, newShelfActivity("act-1", "user-1", "OL1W", domain.ShelfOngoing, base)))
	require.NoError(t, s.CreateActivity(ctx, newShelfActivity("act-2", "user-2", "OL2W", domain.ShelfCompleted, base.Add(time.Minute))))
	require.NoError(t, s.CreateActivity(ctx, newShelfActivity("act-3", "user-1", "OL3W", domain.ShelfWantToRead, base.Add(2*time.Minute))))

	feed, err := s.GetActivityFeed(ctx, 10, nil)
	require.NoError(t, err)
	require.Len(t, feed, 3)

	// Newest first.
	assert.Equal(t, "act-3", feed[0].ID)
	assert.Equal(t, "act-2", feed[1].ID)
	assert.Equal(t, "act-1", feed[2].ID)
}

func TestGetActivityFeed_Pagination(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	base := time.Now().Add(-time.Hour)

	require.NoError(t, s.CreateActivity(ctx, newShelfActivity("act-1", "user-1", "OL1W", domain.ShelfOngoing, base)))
	require.NoError(t, s.CreateActivity(ctx, newShelfActivity("act-2", "user-1", "OL2W", domain.ShelfOngoing, base.Add(time.Minute))))
	require.NoError(t, s.CreateActivity(ctx, newShelfActivity("act-3", "user-1", "OL3W", domain.ShelfOngoing, base.Add(2*time.Minute))))

	page, err := s.GetActivityFeed(ctx, 2, nil)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "act-3", page[0].ID)
	assert.Equal(t, "act-2", page[1].ID)

	cursor := page[1].CreatedAt
	page, err = s.GetActivityFeed(ctx, 2, &cursor)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "act-1", page[0].ID)
}

func TestGetUserActivities(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	base := time.Now().Add(-time.Hour)

	require.NoError(t, s.CreateActivity(ctx, newShelfActivity("act-1", "user-1", "OL1W", domain.ShelfOngoing, base)))
	require.NoError(t, s.CreateActivity(ctx, newShelfActivity("act-2", "user-2", "OL2W", domain.ShelfOngoing, base.Add(time.Minute))))
	require.NoError(t, s.CreateActivity(ctx, newShelfActivity("act-3", "user-1", "OL3W", domain.ShelfOngoing, base.Add(2*time.Minute))))

	activities, err := s.GetUserActivities(ctx, "user-1", 10)
	require.NoError(t, err)
	require.Len(t, activities, 2)
	assert.Equal(t, "act-3", activities[0].ID)
	assert.Equal(t, "act-1", activities[1].ID)
}

func TestDeleteShelfActivities(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	base := time.Now().Add(-time.Hour)

	require.NoError(t, s.CreateActivity(ctx, newShelfActivity("act-1", "user-1", "OL1W", domain.ShelfOngoing, base)))
	require.NoError(t, s.CreateActivity(ctx, newShelfActivity("act-2", "user-1", "OL2W", domain.ShelfOngoing, base.Add(time.Minute))))

	deleted, err := s.DeleteShelfActivities(ctx, "user-1", "OL1W")
	require.NoError(t, err)
	assert.Equal(t, 1, deleted)

	// Only the (user, book) pair's activity is gone; everything else stays.
	_, err = s.GetActivity(ctx, "act-1")
	assert.ErrorIs(t, err, ErrActivityNotFound)

	feed, err := s.GetActivityFeed(ctx, 10, nil)
	require.NoError(t, err)
	require.Len(t, feed, 1)
	assert.Equal(t, "act-2", feed[0].ID)
}

func TestDeleteShelfActivities_ToleratesDuplicates(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	base := time.Now().Add(-time.Hour)

	// The invariant allows at most one shelve activity per (user, book),
	// but the retraction scan cleans up any duplicates that crept in.
	require.NoError(t, s.CreateActivity(ctx, newShelfActivity("act-1", "user-1", "OL1W", domain.ShelfOngoing, base)))
	require.NoError(t, s.CreateActivity(ctx, newShelfActivity("act-2", "user-1", "OL1W", domain.ShelfCompleted, base.Add(time.Minute))))

	deleted, err := s.DeleteShelfActivities(ctx, "user-1", "OL1W")
	require.NoError(t, err)
	assert.Equal(t, 2, deleted)

	feed, err := s.GetActivityFeed(ctx, 10, nil)
	require.NoError(t, err)
	assert.Empty(t, feed)
}

func TestDeleteShelfActivities_NoMatches(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	deleted, err := s.DeleteShelfActivities(context.Background(), "user-1", "OL1W")
	require.NoError(t, err)
	assert.Zero(t, deleted)
}
