package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/inkshelf/inkshelf-server/internal/domain"
	"github.com/inkshelf/inkshelf-server/internal/id"
	"github.com/inkshelf/inkshelf-server/internal/metadata/openlibrary"
	"github.com/inkshelf/inkshelf-server/internal/store"
)

const (
	defaultFeedLimit = 50
	maxFeedLimit     = 100

	// Title lookups are best-effort; don't let a slow upstream stall a
	// projection write.
	titleLookupTimeout = 5 * time.Second
)

// ActivityService owns the derived activity feed. Activities are a projection
// of shelf and journal state: writers call the Record methods after their own
// write has committed, and feed rows are retracted and re-inserted rather
// than mutated. Projection failures are reported to the caller but must
// never be allowed to fail the primary write; callers log and move on.
type ActivityService struct {
	store   *store.Store
	library *openlibrary.Client
	logger  *slog.Logger
}

// NewActivityService creates a new activity service.
// The Open Library client may be nil, in which case feed rows carry no
// denormalized book title.
func NewActivityService(store *store.Store, library *openlibrary.Client, logger *slog.Logger) *ActivityService {
	return &ActivityService{
		store:   store,
		library: library,
		logger:  logger,
	}
}

// RecordShelfChange synchronizes the feed with a shelf placement. Any
// previous shelve activity for (user, book) is retracted first, so at most
// one survives; a removal placement only retracts.
func (s *ActivityService) RecordShelfChange(ctx context.Context, user *domain.User, bookKey string, status domain.ShelfStatus) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	deleted, err := s.store.DeleteShelfActivities(ctx, user.ID, bookKey)
	if err != nil {
		return fmt.Errorf("retract shelf activities: %w", err)
	}
	if deleted > 0 {
		s.logger.Debug("retracted superseded shelf activities",
			"user_id", user.ID,
			"book_key", bookKey,
			"count", deleted,
		)
	}

	if status == domain.ShelfRemove {
		return nil
	}

	activityID, err := id.Generate("activity")
	if err != nil {
		return fmt.Errorf("generate activity ID: %w", err)
	}

	activity := &domain.Activity{
		ID:          activityID,
		UserID:      user.ID,
		Action:      domain.ActionShelve,
		BookKey:     bookKey,
		ShelfStatus: status,
		CreatedAt:   time.Now(),
		UserHandle:  user.Handle,
		BookTitle:   s.lookupTitle(ctx, bookKey),
	}

	if err := s.store.CreateActivity(ctx, activity); err != nil {
		return fmt.Errorf("create shelf activity: %w", err)
	}

	return nil
}

// RecordJournalCreated appends a feed row for a new journal entry.
// Private entries never reach the feed.
func (s *ActivityService) RecordJournalCreated(ctx context.Context, user *domain.User, entry *domain.JournalEntry) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if entry.IsPrivate {
		return nil
	}

	activityID, err := id.Generate("activity")
	if err != nil {
		return fmt.Errorf("generate activity ID: %w", err)
	}

	activity := &domain.Activity{
		ID:         activityID,
		UserID:     user.ID,
		Action:     domain.ActionJournal,
		BookKey:    entry.BookKey,
		JournalID:  entry.ID,
		CreatedAt:  time.Now(),
		UserHandle: user.Handle,
		BookTitle:  s.lookupTitle(ctx, entry.BookKey),
	}

	if err := s.store.CreateActivity(ctx, activity); err != nil {
		return fmt.Errorf("create journal activity: %w", err)
	}

	return nil
}

// Feed returns the global activity feed, newest first.
// Pass the CreatedAt of the last item of the previous page as before.
func (s *ActivityService) Feed(ctx context.Context, limit int, before *time.Time) ([]*domain.Activity, error) {
	return s.store.GetActivityFeed(ctx, clampLimit(limit), before)
}

// UserFeed returns one user's activities, newest first.
func (s *ActivityService) UserFeed(ctx context.Context, userID string, limit int) ([]*domain.Activity, error) {
	return s.store.GetUserActivities(ctx, userID, clampLimit(limit))
}

// lookupTitle resolves the book title for feed denormalization.
// Failures degrade to an empty title rather than failing the projection.
func (s *ActivityService) lookupTitle(ctx context.Context, bookKey string) string {
	if s.library == nil {
		return ""
	}

	lookupCtx, cancel := context.WithTimeout(ctx, titleLookupTimeout)
	defer cancel()

	book, err := s.library.GetWork(lookupCtx, bookKey)
	if err != nil {
		s.logger.Debug("book title lookup failed",
			"book_key", bookKey,
			"error", err,
		)
		return ""
	}
	return book.Title
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return defaultFeedLimit
	}
	if limit > maxFeedLimit {
		return maxFeedLimit
	}
	return limit
}
