package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/inkshelf/inkshelf-server/internal/domain"
	domainerrors "github.com/inkshelf/inkshelf-server/internal/errors"
	"github.com/inkshelf/inkshelf-server/internal/id"
	"github.com/inkshelf/inkshelf-server/internal/store"
)

const (
	maxJournalLength = 20000
	maxRating        = 5
)

// JournalActivityRecorder synchronizes the activity feed with journal writes.
type JournalActivityRecorder interface {
	RecordJournalCreated(ctx context.Context, user *domain.User, entry *domain.JournalEntry) error
}

// JournalService manages journal entries and their vote ledgers.
type JournalService struct {
	store            *store.Store
	logger           *slog.Logger
	activityRecorder JournalActivityRecorder
}

// NewJournalService creates a new journal service.
func NewJournalService(store *store.Store, logger *slog.Logger) *JournalService {
	return &JournalService{
		store:  store,
		logger: logger,
	}
}

// SetActivityRecorder sets the activity recorder for feed synchronization.
// This is set after construction to avoid circular dependencies.
func (s *JournalService) SetActivityRecorder(recorder JournalActivityRecorder) {
	s.activityRecorder = recorder
}

// Create writes a new journal entry. Public entries are projected into the
// activity feed on a best-effort basis after the entry commits.
func (s *JournalService) Create(ctx context.Context, ownerID, bookKey, content string, rating int, isPrivate bool) (*domain.JournalEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	content = strings.TrimSpace(content)
	if content == "" {
		return nil, domainerrors.Validation("journal content cannot be empty")
	}
	if len(content) > maxJournalLength {
		return nil, domainerrors.Validationf("journal content exceeds %d characters", maxJournalLength)
	}
	if bookKey == "" {
		return nil, domainerrors.Validation("book key cannot be empty")
	}
	if rating < 0 || rating > maxRating {
		return nil, domainerrors.Validationf("rating must be between 1 and %d, or 0 for unrated", maxRating)
	}

	owner, err := s.store.GetUser(ctx, ownerID)
	if err != nil {
		return nil, mapStoreErr(err)
	}

	journalID, err := id.Generate("journal")
	if err != nil {
		return nil, fmt.Errorf("generate journal ID: %w", err)
	}

	now := time.Now()
	entry := &domain.JournalEntry{
		ID:        journalID,
		OwnerID:   ownerID,
		BookKey:   bookKey,
		Content:   content,
		Rating:    rating,
		IsPrivate: isPrivate,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.store.CreateJournal(ctx, entry); err != nil {
		return nil, mapStoreErr(err)
	}

	if s.activityRecorder != nil {
		if err := s.activityRecorder.RecordJournalCreated(ctx, owner, entry); err != nil {
			s.logger.Warn("failed to sync journal activity",
				"journal_id", journalID,
				"owner_id", ownerID,
				"error", err,
			)
		}
	}

	return entry, nil
}

// Get retrieves a journal entry. Private entries are visible only to their
// owner; to anyone else they do not exist.
func (s *JournalService) Get(ctx context.Context, requesterID, journalID string) (*domain.JournalEntry, error) {
	entry, err := s.store.GetJournal(ctx, journalID)
	if err != nil {
		return nil, mapStoreErr(err)
	}

	if entry.IsPrivate && entry.OwnerID != requesterID {
		return nil, domainerrors.NotFound("journal entry not found")
	}

	return entry, nil
}

// Update modifies a journal entry's content, rating, or privacy.
// Requires ownership. Making a public entry private does not retract its
// existing feed row; the feed is an eventually consistent projection.
func (s *JournalService) Update(ctx context.Context, requesterID, journalID, content string, rating int, isPrivate bool) (*domain.JournalEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	content = strings.TrimSpace(content)
	if content == "" {
		return nil, domainerrors.Validation("journal content cannot be empty")
	}
	if len(content) > maxJournalLength {
		return nil, domainerrors.Validationf("journal content exceeds %d characters", maxJournalLength)
	}
	if rating < 0 || rating > maxRating {
		return nil, domainerrors.Validationf("rating must be between 1 and %d, or 0 for unrated", maxRating)
	}

	entry, err := s.store.UpdateJournalWith(ctx, journalID, func(j *domain.JournalEntry) error {
		if j.OwnerID != requesterID {
			return domainerrors.Forbidden("you do not own this journal entry")
		}
		j.Content = content
		j.Rating = rating
		j.IsPrivate = isPrivate
		j.UpdatedAt = time.Now()
		return nil
	})
	if err != nil {
		return nil, mapStoreErr(err)
	}

	return entry, nil
}

// ListByOwner returns a user's journal entries. Private entries are included
// only when the requester is the owner.
func (s *JournalService) ListByOwner(ctx context.Context, requesterID, ownerID string) ([]*domain.JournalEntry, error) {
	entries, err := s.store.ListJournalsByOwner(ctx, ownerID)
	if err != nil {
		return nil, mapStoreErr(err)
	}

	if requesterID == ownerID {
		return entries, nil
	}

	visible := make([]*domain.JournalEntry, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsPrivate {
			visible = append(visible, entry)
		}
	}
	return visible, nil
}

// ListForBook returns journal entries about a book: all public entries plus
// the requester's own private ones.
func (s *JournalService) ListForBook(ctx context.Context, requesterID, bookKey string) ([]*domain.JournalEntry, error) {
	entries, err := s.store.ListJournalsForBook(ctx, bookKey)
	if err != nil {
		return nil, mapStoreErr(err)
	}

	visible := make([]*domain.JournalEntry, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsPrivate || entry.OwnerID == requesterID {
			visible = append(visible, entry)
		}
	}
	return visible, nil
}
