package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"github.com/inkshelf/inkshelf-server/internal/domain"
)

const (
	userPrefix        = "user:"
	userByEmailPrefix = "idx:users:email:" // For login lookups
)

var (
	// ErrUserNotFound is returned when a user cannot be found by ID, email, or handle.
	ErrUserNotFound = errors.New("user not found")
	// ErrUserExists is returned when attempting to create a user with an existing ID.
	ErrUserExists = errors.New("user already exists")
	// ErrEmailExists is returned when attempting to create a user with an email that's already in use.
	ErrEmailExists = errors.New("email already in use")
)

// CreateUser creates a new user account and claims its handle reservation in
// the same transaction, so the handle bijection holds from registration on.
func (s *Store) CreateUser(ctx context.Context, user *domain.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	key := []byte(userPrefix + user.ID)
	emailKey := []byte(userByEmailPrefix + normalizeEmail(user.Email))
	normalized := domain.NormalizeHandle(user.Handle)

	return s.runUpdate(func(txn *badger.Txn) error {
		// Check if user ID already exists
		if _, err := txn.Get(key); err == nil {
			return ErrUserExists
		} else if !errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("check user exists: %w", err)
		}

		// Check if email is already in use
		if _, err := txn.Get(emailKey); err == nil {
			return ErrEmailExists
		} else if !errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("check email exists: %w", err)
		}

		// Claim the handle reservation
		if err := reserveHandleInTxn(txn, normalized, user.Handle, user.ID); err != nil {
			return err
		}

		if err := setInTxn(txn, key, user); err != nil {
			return fmt.Errorf("set user: %w", err)
		}

		// Create email index
		if err := txn.Set(emailKey, []byte(user.ID)); err != nil {
			return fmt.Errorf("set email index: %w", err)
		}

		return nil
	})
}

// GetUser retrieves a user by ID.
func (s *Store) GetUser(_ context.Context, id string) (*domain.User, error) {
	key := []byte(userPrefix + id)

	var user domain.User
	if err := s.get(key, &user); err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	return &user, nil
}

// GetUserByEmail retrieves a user by email address.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	emailKey := []byte(userByEmailPrefix + normalizeEmail(email))

	var userID string
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(emailKey)
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			userID = string(val)
			return nil
		})
	})
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("lookup user by email: %w", err)
	}

	return s.GetUser(ctx, userID)
}

// GetUserByHandle resolves a handle (any casing) to its owning user via the
// handle registry.
func (s *Store) GetUserByHandle(ctx context.Context, handle string) (*domain.User, error) {
	res, err := s.GetHandleReservation(ctx, handle)
	if err != nil {
		if errors.Is(err, ErrHandleNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return s.GetUser(ctx, res.OwnerID)
}

// UpdateUser overwrites a user document. The handle field must not be
// changed through this path; renames go through RenameHandle so the registry
// stays consistent.
func (s *Store) UpdateUser(_ context.Context, user *domain.User) error {
	user.Touch()
	if err := s.set([]byte(userPrefix+user.ID), user); err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

// UpdateUserWith applies mutate to the user's document inside a single
// optimistic transaction with bounded conflict retries. This is the
// read-decide-write path for shelf placement, favorites, and follow edges:
// a retry re-reads the document, so concurrent sessions never lose updates.
func (s *Store) UpdateUserWith(ctx context.Context, id string, mutate func(*domain.User) error) (*domain.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	key := []byte(userPrefix + id)
	var user domain.User

	err := s.runUpdate(func(txn *badger.Txn) error {
		user = domain.User{}
		if err := getInTxn(txn, key, &user); err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return ErrUserNotFound
			}
			return fmt.Errorf("get user: %w", err)
		}

		if err := mutate(&user); err != nil {
			return err
		}

		user.Touch()
		return setInTxn(txn, key, &user)
	})
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// normalizeEmail normalizes an email address for consistent lookups.
// Lowercases and trims whitespace.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
