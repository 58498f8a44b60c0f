package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/inkshelf/inkshelf-server/internal/domain"
)

// handlePrefix keys HandleReservation documents by normalized handle.
const handlePrefix = "handle:"

var (
	// ErrHandleNotFound is returned when no reservation exists for a handle.
	ErrHandleNotFound = errors.New("handle not found")
	// ErrHandleTaken is returned when a handle is reserved by another user.
	ErrHandleTaken = errors.New("handle already taken")
)

// GetHandleReservation retrieves the reservation for a handle (any casing).
func (s *Store) GetHandleReservation(_ context.Context, handle string) (*domain.HandleReservation, error) {
	key := []byte(handlePrefix + domain.NormalizeHandle(handle))

	var res domain.HandleReservation
	if err := s.get(key, &res); err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, ErrHandleNotFound
		}
		return nil, fmt.Errorf("get handle reservation: %w", err)
	}

	return &res, nil
}

// HandleAvailable reports whether no reservation exists for the handle.
func (s *Store) HandleAvailable(ctx context.Context, handle string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	taken, err := s.exists([]byte(handlePrefix + domain.NormalizeHandle(handle)))
	if err != nil {
		return false, fmt.Errorf("check handle: %w", err)
	}
	return !taken, nil
}

// RenameHandle atomically moves a user to a new handle: it claims the new
// reservation, releases the old one, and updates the user document, all in
// one optimistic transaction. "Is the handle free" and "claim it" are never
// observable as separate steps, so two concurrent renamers cannot both end
// up owning the same normalized handle.
//
// Renaming to a handle that normalizes to the current one is a no-op that
// succeeds without touching the registry. When the user re-claims a handle
// they already own, the reservation's original ClaimedAt is preserved.
//
// On a commit conflict the whole read-check-write cycle is re-run from
// fresh state, up to the store's retry bound.
func (s *Store) RenameHandle(ctx context.Context, userID, newHandle string) (*domain.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	newNorm := domain.NormalizeHandle(newHandle)
	newKey := []byte(handlePrefix + newNorm)
	userKey := []byte(userPrefix + userID)

	var user domain.User
	err := s.runUpdate(func(txn *badger.Txn) error {
		user = domain.User{}
		if err := getInTxn(txn, userKey, &user); err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return ErrUserNotFound
			}
			return fmt.Errorf("get user: %w", err)
		}

		oldNorm := domain.NormalizeHandle(user.Handle)
		if oldNorm == newNorm {
			// Idempotent rename to one's own handle, in any casing.
			return nil
		}

		// Check the target reservation. This read participates in conflict
		// detection, so a concurrent claim of the same handle aborts one of
		// the two transactions at commit.
		claimedAt := time.Now()
		var existing domain.HandleReservation
		err := getInTxn(txn, newKey, &existing)
		switch {
		case err == nil:
			if existing.OwnerID != userID {
				return ErrHandleTaken
			}
			// Re-claiming a handle this user already owns keeps the
			// original claim time.
			claimedAt = existing.ClaimedAt
		case errors.Is(err, badger.ErrKeyNotFound):
			// Free to claim.
		default:
			return fmt.Errorf("check handle reservation: %w", err)
		}

		res := domain.HandleReservation{
			Handle:        newNorm,
			DisplayHandle: newHandle,
			OwnerID:       userID,
			ClaimedAt:     claimedAt,
		}
		if err := setInTxn(txn, newKey, &res); err != nil {
			return fmt.Errorf("set handle reservation: %w", err)
		}

		// Release the old handle.
		oldKey := []byte(handlePrefix + oldNorm)
		if err := txn.Delete(oldKey); err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("delete old handle reservation: %w", err)
		}

		user.Handle = newHandle
		user.Touch()
		return setInTxn(txn, userKey, &user)
	})
	if err != nil {
		return nil, err
	}

	if s.logger != nil {
		s.logger.Info("handle renamed",
			"user_id", userID,
			"handle", newHandle,
		)
	}
	return &user, nil
}

// reserveHandleInTxn claims a handle for a new user inside an existing
// transaction. Fails with ErrHandleTaken if any reservation exists.
func reserveHandleInTxn(txn *badger.Txn, normalized, display, ownerID string) error {
	key := []byte(handlePrefix + normalized)

	_, err := txn.Get(key)
	if err == nil {
		return ErrHandleTaken
	}
	if !errors.Is(err, badger.ErrKeyNotFound) {
		return fmt.Errorf("check handle reservation: %w", err)
	}

	res := domain.HandleReservation{
		Handle:        normalized,
		DisplayHandle: display,
		OwnerID:       ownerID,
		ClaimedAt:     time.Now(),
	}
	return setInTxn(txn, key, &res)
}
