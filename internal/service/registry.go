package service

import (
	"context"
	"log/slog"

	"github.com/inkshelf/inkshelf-server/internal/domain"
	domainerrors "github.com/inkshelf/inkshelf-server/internal/errors"
	"github.com/inkshelf/inkshelf-server/internal/store"
)

// RegistryService owns the username registry: availability checks, renames,
// and handle resolution. Uniqueness is case-insensitive while the stored
// handle keeps the user's chosen casing.
type RegistryService struct {
	store  *store.Store
	logger *slog.Logger
}

// NewRegistryService creates a new registry service.
func NewRegistryService(store *store.Store, logger *slog.Logger) *RegistryService {
	return &RegistryService{
		store:  store,
		logger: logger,
	}
}

// CheckAvailability reports whether a handle can currently be claimed.
// Malformed handles are rejected rather than reported unavailable, so the
// client can distinguish "bad input" from "taken". The answer is advisory:
// only a rename or registration actually claims the handle.
func (s *RegistryService) CheckAvailability(ctx context.Context, handle string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	if !domain.ValidHandle(handle) {
		return false, domainerrors.Validation("username must be 3-30 characters of letters, digits, underscore, or hyphen")
	}

	available, err := s.store.HandleAvailable(ctx, handle)
	if err != nil {
		return false, mapStoreErr(err)
	}
	return available, nil
}

// Rename moves the user to a new handle. Claiming and releasing happen in
// one atomic step, so at no point do two users own the same normalized
// handle and at no point does the user own zero handles. Renaming to the
// current handle (any casing) succeeds as a no-op.
func (s *RegistryService) Rename(ctx context.Context, userID, newHandle string) (*domain.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if !domain.ValidHandle(newHandle) {
		return nil, domainerrors.Validation("username must be 3-30 characters of letters, digits, underscore, or hyphen")
	}

	user, err := s.store.RenameHandle(ctx, userID, newHandle)
	if err != nil {
		return nil, mapStoreErr(err)
	}

	s.logger.Info("username renamed",
		"user_id", userID,
		"handle", newHandle,
	)
	return user, nil
}

// Resolve returns the user owning a handle, matching case-insensitively.
func (s *RegistryService) Resolve(ctx context.Context, handle string) (*domain.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if !domain.ValidHandle(handle) {
		return nil, domainerrors.Validation("invalid username")
	}

	user, err := s.store.GetUserByHandle(ctx, handle)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	return user, nil
}
