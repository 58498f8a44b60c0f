package service

import (
	"context"
	"log/slog"

	"github.com/inkshelf/inkshelf-server/internal/domain"
	"github.com/inkshelf/inkshelf-server/internal/store"
)

// UserService exposes profile reads and updates.
type UserService struct {
	store    *store.Store
	registry *RegistryService
	logger   *slog.Logger
}

// NewUserService creates a new user service.
func NewUserService(store *store.Store, registry *RegistryService, logger *slog.Logger) *UserService {
	return &UserService{
		store:    store,
		registry: registry,
		logger:   logger,
	}
}

// Get retrieves a user by ID.
func (s *UserService) Get(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	return user, nil
}

// GetByHandle retrieves a user by handle, matching case-insensitively.
func (s *UserService) GetByHandle(ctx context.Context, handle string) (*domain.User, error) {
	return s.registry.Resolve(ctx, handle)
}

// ProfileUpdate carries the mutable profile fields. Nil pointers leave the
// corresponding field unchanged.
type ProfileUpdate struct {
	Handle     *string
	FullName   *string
	Bio        *string
	ProfilePic *string
}

// UpdateProfile applies a profile update. A handle change goes through the
// registry rename first, so its atomicity guarantees hold; the remaining
// fields are applied in a follow-up document update.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, update ProfileUpdate) (*domain.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if update.Handle != nil {
		if _, err := s.registry.Rename(ctx, userID, *update.Handle); err != nil {
			return nil, err
		}
	}

	user, err := s.store.UpdateUserWith(ctx, userID, func(u *domain.User) error {
		if update.FullName != nil {
			u.FullName = *update.FullName
		}
		if update.Bio != nil {
			u.Bio = *update.Bio
		}
		if update.ProfilePic != nil {
			u.ProfilePic = *update.ProfilePic
		}
		return nil
	})
	if err != nil {
		return nil, mapStoreErr(err)
	}

	s.logger.Info("profile updated",
		"user_id", userID,
	)
	return user, nil
}
