package store

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/inkshelf/inkshelf-server/internal/domain"
)

// Activity storage key prefixes.
// The time and user indexes use inverted timestamps so forward iteration
// yields newest-first ordering. The shelve index exists solely for the
// projection's retract-then-insert scan: it addresses all shelve activities
// for one (owner, book) pair.
const (
	activityPrefix          = "activity:"
	activityIdxTimePrefix   = "activity:idx:time:"
	activityIdxUserPrefix   = "activity:idx:user:"
	activityIdxShelvePrefix = "activity:idx:shelve:"
)

// ErrActivityNotFound is returned when an activity cannot be found by ID.
var ErrActivityNotFound = errors.New("activity not found")

// invertedTimestamp returns a string that sorts in descending order.
// Uses MaxInt64 - UnixNano so newer timestamps come first during forward iteration.
func invertedTimestamp(t time.Time) string {
	inverted := math.MaxInt64 - t.UnixNano()
	return fmt.Sprintf("%019d", inverted)
}

// activityKeys returns every key an activity occupies: primary, time index,
// user index, and (for shelve actions) the per-(owner, book) shelve index.
func activityKeys(a *domain.Activity) [][]byte {
	invertedTS := invertedTimestamp(a.CreatedAt)
	keys := [][]byte{
		[]byte(activityPrefix + a.ID),
		[]byte(activityIdxTimePrefix + invertedTS + ":" + a.ID),
		[]byte(activityIdxUserPrefix + a.UserID + ":" + invertedTS + ":" + a.ID),
	}
	if a.Action == domain.ActionShelve {
		keys = append(keys, []byte(activityIdxShelvePrefix+a.UserID+":"+a.BookKey+":"+a.ID))
	}
	return keys
}

// CreateActivity stores a new activity with all indexes in a single transaction.
func (s *Store) CreateActivity(ctx context.Context, activity *domain.Activity) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	keys := activityKeys(activity)

	return s.runUpdate(func(txn *badger.Txn) error {
		// Primary key carries the document; index keys are key-only.
		if err := setInTxn(txn, keys[0], activity); err != nil {
			return fmt.Errorf("set activity: %w", err)
		}
		for _, key := range keys[1:] {
			if err := txn.Set(key, []byte{}); err != nil {
				return fmt.Errorf("set activity index: %w", err)
			}
		}
		return nil
	})
}

// DeleteShelfActivities removes every shelve activity for (userID, bookKey)
// and returns how many were deleted. The invariant allows at most one, but
// the scan tolerates and cleans up duplicates if any have crept in.
func (s *Store) DeleteShelfActivities(ctx context.Context, userID, bookKey string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	prefix := []byte(activityIdxShelvePrefix + userID + ":" + bookKey + ":")
	deleted := 0

	err := s.runUpdate(func(txn *badger.Txn) error {
		deleted = 0

		var ids []string
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = prefix

		it := txn.NewIterator(opts)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			key := string(it.Item().Key())
			if i := strings.LastIndexByte(key, ':'); i >= 0 && i < len(key)-1 {
				ids = append(ids, key[i+1:])
			}
		}
		it.Close()

		for _, id := range ids {
			var activity domain.Activity
			if err := getInTxn(txn, []byte(activityPrefix+id), &activity); err != nil {
				if errors.Is(err, badger.ErrKeyNotFound) {
					// Orphaned index entry; drop it and move on.
					if err := txn.Delete([]byte(activityIdxShelvePrefix + userID + ":" + bookKey + ":" + id)); err != nil {
						return fmt.Errorf("delete orphaned index: %w", err)
					}
					continue
				}
				return fmt.Errorf("get activity: %w", err)
			}

			for _, key := range activityKeys(&activity) {
				if err := txn.Delete(key); err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
					return fmt.Errorf("delete activity key: %w", err)
				}
			}
			deleted++
		}

		return nil
	})
	if err != nil {
		return 0, err
	}

	return deleted, nil
}

// GetActivity retrieves a single activity by ID.
func (s *Store) GetActivity(ctx context.Context, id string) (*domain.Activity, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var activity domain.Activity
	if err := s.get([]byte(activityPrefix+id), &activity); err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, ErrActivityNotFound
		}
		return nil, fmt.Errorf("get activity %s: %w", id, err)
	}

	return &activity, nil
}

// GetActivityFeed retrieves the global activity feed sorted by CreatedAt
// descending. Pass the CreatedAt of the last item from the previous page as
// 'before' for cursor-based pagination. Returns up to 'limit' activities.
func (s *Store) GetActivityFeed(ctx context.Context, limit int, before *time.Time) ([]*domain.Activity, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var activities []*domain.Activity
	prefix := []byte(activityIdxTimePrefix)

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = prefix

		it := txn.NewIterator(opts)
		defer it.Close()

		seekKey := prefix
		if before != nil {
			// Inverted timestamps: seeking at the cursor's inverted value
			// lands at or after the cursor item during forward iteration.
			seekKey = []byte(activityIdxTimePrefix + invertedTimestamp(*before))
		}

		for it.Seek(seekKey); it.ValidForPrefix(prefix); it.Next() {
			if len(activities) >= limit {
				break
			}

			key := string(it.Item().Key())
			i := strings.LastIndexByte(key, ':')
			if i < 0 || i >= len(key)-1 {
				continue
			}

			var activity domain.Activity
			if err := getInTxn(txn, []byte(activityPrefix+key[i+1:]), &activity); err != nil {
				continue
			}
			// Skip the cursor item itself when paginating.
			if before != nil && !activity.CreatedAt.Before(*before) {
				continue
			}
			activities = append(activities, &activity)
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("fetching activity feed: %w", err)
	}

	return activities, nil
}

// GetUserActivities retrieves activities for one user, newest first.
func (s *Store) GetUserActivities(ctx context.Context, userID string, limit int) ([]*domain.Activity, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var activities []*domain.Activity
	prefix := []byte(activityIdxUserPrefix + userID + ":")

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = prefix

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			if len(activities) >= limit {
				break
			}

			key := string(it.Item().Key())
			i := strings.LastIndexByte(key, ':')
			if i < 0 || i >= len(key)-1 {
				continue
			}

			var activity domain.Activity
			if err := getInTxn(txn, []byte(activityPrefix+key[i+1:]), &activity); err != nil {
				continue
			}
			activities = append(activities, &activity)
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("fetching user activities: %w", err)
	}

	return activities, nil
}
