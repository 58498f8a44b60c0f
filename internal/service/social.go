package service

import (
	"context"
	"log/slog"
	"slices"

	"github.com/inkshelf/inkshelf-server/internal/domain"
	domainerrors "github.com/inkshelf/inkshelf-server/internal/errors"
	"github.com/inkshelf/inkshelf-server/internal/store"
)

// SocialService manages the follow graph and book favorites.
type SocialService struct {
	store  *store.Store
	logger *slog.Logger
}

// NewSocialService creates a new social service.
func NewSocialService(store *store.Store, logger *slog.Logger) *SocialService {
	return &SocialService{
		store:  store,
		logger: logger,
	}
}

// Follow adds targetID to the user's following list and the user to the
// target's followers. Following someone already followed is a no-op.
// The two documents are updated in separate transactions; each side is
// individually idempotent so a partial failure heals on retry.
func (s *SocialService) Follow(ctx context.Context, userID, targetID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if userID == targetID {
		return domainerrors.Validation("cannot follow yourself")
	}

	// Verify the target exists before touching either document.
	if _, err := s.store.GetUser(ctx, targetID); err != nil {
		return mapStoreErr(err)
	}

	_, err := s.store.UpdateUserWith(ctx, userID, func(u *domain.User) error {
		if !slices.Contains(u.Following, targetID) {
			u.Following = append(u.Following, targetID)
		}
		return nil
	})
	if err != nil {
		return mapStoreErr(err)
	}

	_, err = s.store.UpdateUserWith(ctx, targetID, func(u *domain.User) error {
		if !slices.Contains(u.Followers, userID) {
			u.Followers = append(u.Followers, userID)
		}
		return nil
	})
	if err != nil {
		return mapStoreErr(err)
	}

	s.logger.Info("user followed",
		"user_id", userID,
		"target_id", targetID,
	)
	return nil
}

// Unfollow removes the follow edge in both directions.
// Unfollowing someone not followed is a no-op.
func (s *SocialService) Unfollow(ctx context.Context, userID, targetID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if userID == targetID {
		return domainerrors.Validation("cannot unfollow yourself")
	}

	_, err := s.store.UpdateUserWith(ctx, userID, func(u *domain.User) error {
		u.Following = slices.DeleteFunc(u.Following, func(id string) bool { return id == targetID })
		return nil
	})
	if err != nil {
		return mapStoreErr(err)
	}

	_, err = s.store.UpdateUserWith(ctx, targetID, func(u *domain.User) error {
		u.Followers = slices.DeleteFunc(u.Followers, func(id string) bool { return id == userID })
		return nil
	})
	if err != nil {
		// The target may have been deleted; the forward edge is already gone.
		mapped := mapStoreErr(err)
		if domainerrors.Is(mapped, domainerrors.ErrNotFound) {
			return nil
		}
		return mapped
	}

	s.logger.Info("user unfollowed",
		"user_id", userID,
		"target_id", targetID,
	)
	return nil
}

// AddFavorite adds a book to the user's favorites. Idempotent.
func (s *SocialService) AddFavorite(ctx context.Context, userID, bookKey string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if bookKey == "" {
		return nil, domainerrors.Validation("book key cannot be empty")
	}

	user, err := s.store.UpdateUserWith(ctx, userID, func(u *domain.User) error {
		u.AddFavorite(bookKey)
		return nil
	})
	if err != nil {
		return nil, mapStoreErr(err)
	}
	return user.Favorites, nil
}

// RemoveFavorite removes a book from the user's favorites. Idempotent.
func (s *SocialService) RemoveFavorite(ctx context.Context, userID, bookKey string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	user, err := s.store.UpdateUserWith(ctx, userID, func(u *domain.User) error {
		u.RemoveFavorite(bookKey)
		return nil
	})
	if err != nil {
		return nil, mapStoreErr(err)
	}
	return user.Favorites, nil
}

// ListFavorites returns the user's favorite book keys.
func (s *SocialService) ListFavorites(ctx context.Context, userID string) ([]string, error) {
	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	return user.Favorites, nil
}
