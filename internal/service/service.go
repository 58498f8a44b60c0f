// Package service implements the application's business logic on top of the
// store: identity and username registry, shelf placement, journals with
// votes, the social graph, and the activity feed projection.
package service

import (
	"errors"

	domainerrors "github.com/inkshelf/inkshelf-server/internal/errors"
	"github.com/inkshelf/inkshelf-server/internal/store"
)

// mapStoreErr translates store sentinel errors into coded domain errors so
// handlers can map them to HTTP statuses uniformly. Exhausted optimistic
// transaction retries surface as a retryable unavailability, not a hard
// failure: the caller's request was valid, the timing was not.
func mapStoreErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, store.ErrUserNotFound):
		return domainerrors.NotFound("user not found").WithCause(err)
	case errors.Is(err, store.ErrJournalNotFound):
		return domainerrors.NotFound("journal entry not found").WithCause(err)
	case errors.Is(err, store.ErrActivityNotFound):
		return domainerrors.NotFound("activity not found").WithCause(err)
	case errors.Is(err, store.ErrHandleNotFound):
		return domainerrors.NotFound("username not found").WithCause(err)
	case errors.Is(err, store.ErrHandleTaken):
		return domainerrors.Conflict("username already taken").WithCause(err)
	case errors.Is(err, store.ErrEmailExists):
		return domainerrors.Conflict("email already in use").WithCause(err)
	case errors.Is(err, store.ErrUserExists):
		return domainerrors.Conflict("user already exists").WithCause(err)
	case store.IsConflict(err):
		return domainerrors.Unavailable("write contention, please retry").WithCause(err)
	default:
		return err
	}
}
