package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/inkshelf/inkshelf-server/internal/domain"
	domainerrors "github.com/inkshelf/inkshelf-server/internal/errors"
	"github.com/inkshelf/inkshelf-server/internal/store"
)

// ShelfActivityRecorder synchronizes the activity feed with shelf placements.
// This avoids a circular dependency between ShelfService and ActivityService.
type ShelfActivityRecorder interface {
	RecordShelfChange(ctx context.Context, user *domain.User, bookKey string, status domain.ShelfStatus) error
}

// ShelfService places books on a user's three reading-status shelves.
// A book lives on at most one shelf; placing it anywhere removes it from
// wherever it was, and the remove status clears it entirely.
type ShelfService struct {
	store            *store.Store
	logger           *slog.Logger
	activityRecorder ShelfActivityRecorder
}

// NewShelfService creates a new shelf service.
func NewShelfService(store *store.Store, logger *slog.Logger) *ShelfService {
	return &ShelfService{
		store:  store,
		logger: logger,
	}
}

// SetActivityRecorder sets the activity recorder for feed synchronization.
// This is set after construction to avoid circular dependencies.
func (s *ShelfService) SetActivityRecorder(recorder ShelfActivityRecorder) {
	s.activityRecorder = recorder
}

// SetStatus places a book on the shelf for status, removing it from any
// other shelf in the same atomic document update. Repeating the current
// placement and removing an unshelved book both succeed as no-ops.
//
// The feed projection is updated after the placement commits and only on a
// best-effort basis: a projection failure is logged, never surfaced, so the
// shelf write it reflects is already durable either way.
func (s *ShelfService) SetStatus(ctx context.Context, userID, bookKey string, status domain.ShelfStatus) (*domain.Shelves, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if bookKey == "" {
		return nil, domainerrors.Validation("book key cannot be empty")
	}
	if !status.Valid() {
		return nil, domainerrors.Validationf("invalid shelf status %q", status)
	}

	user, err := s.store.UpdateUserWith(ctx, userID, func(u *domain.User) error {
		u.Shelves.Place(bookKey, status, time.Now())
		return nil
	})
	if err != nil {
		return nil, mapStoreErr(err)
	}

	s.logger.Info("shelf status set",
		"user_id", userID,
		"book_key", bookKey,
		"status", status,
	)

	if s.activityRecorder != nil {
		if err := s.activityRecorder.RecordShelfChange(ctx, user, bookKey, status); err != nil {
			s.logger.Warn("failed to sync shelf activity",
				"user_id", userID,
				"book_key", bookKey,
				"error", err,
			)
		}
	}

	return &user.Shelves, nil
}

// GetShelves returns a user's shelves.
func (s *ShelfService) GetShelves(ctx context.Context, userID string) (*domain.Shelves, error) {
	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	return &user.Shelves, nil
}

// GetStatus returns the shelf currently holding bookKey for the user,
// or "" if the book is unshelved.
func (s *ShelfService) GetStatus(ctx context.Context, userID, bookKey string) (domain.ShelfStatus, error) {
	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return "", mapStoreErr(err)
	}
	return user.Shelves.StatusOf(bookKey), nil
}
