package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"github.com/inkshelf/inkshelf-server/internal/domain"
)

// Journal storage key prefixes. The owner and book indexes are key-only.
const (
	journalPrefix         = "journal:"
	journalIdxOwnerPrefix = "idx:journals:owner:"
	journalIdxBookPrefix  = "idx:journals:book:"
)

// ErrJournalNotFound is returned when a journal entry cannot be found by ID.
var ErrJournalNotFound = errors.New("journal entry not found")

// CreateJournal stores a new journal entry with its indexes in one transaction.
func (s *Store) CreateJournal(ctx context.Context, entry *domain.JournalEntry) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	key := []byte(journalPrefix + entry.ID)

	err := s.runUpdate(func(txn *badger.Txn) error {
		if _, err := txn.Get(key); err == nil {
			return fmt.Errorf("journal %s already exists", entry.ID)
		} else if !errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("check journal exists: %w", err)
		}

		if err := setInTxn(txn, key, entry); err != nil {
			return fmt.Errorf("set journal: %w", err)
		}

		// Owner index: idx:journals:owner:{ownerID}:{journalID}
		ownerKey := []byte(journalIdxOwnerPrefix + entry.OwnerID + ":" + entry.ID)
		if err := txn.Set(ownerKey, []byte{}); err != nil {
			return fmt.Errorf("set owner index: %w", err)
		}

		// Book index: idx:journals:book:{bookKey}:{journalID}
		bookKey := []byte(journalIdxBookPrefix + entry.BookKey + ":" + entry.ID)
		if err := txn.Set(bookKey, []byte{}); err != nil {
			return fmt.Errorf("set book index: %w", err)
		}

		return nil
	})
	if err != nil {
		return err
	}

	if s.logger != nil {
		s.logger.Info("journal created",
			"id", entry.ID,
			"owner_id", entry.OwnerID,
			"book_key", entry.BookKey,
			"private", entry.IsPrivate,
		)
	}
	return nil
}

// GetJournal retrieves a journal entry by ID.
func (s *Store) GetJournal(_ context.Context, id string) (*domain.JournalEntry, error) {
	key := []byte(journalPrefix + id)

	var entry domain.JournalEntry
	if err := s.get(key, &entry); err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, ErrJournalNotFound
		}
		return nil, fmt.Errorf("get journal: %w", err)
	}

	return &entry, nil
}

// UpdateJournalWith applies mutate to the entry inside a single optimistic
// transaction with bounded conflict retries. Owner and book key are
// immutable, so no index maintenance is needed. This is the vote ledger's
// read-decide-write path: a retried toggle recomputes from fresh vote sets.
func (s *Store) UpdateJournalWith(ctx context.Context, id string, mutate func(*domain.JournalEntry) error) (*domain.JournalEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	key := []byte(journalPrefix + id)
	var entry domain.JournalEntry

	err := s.runUpdate(func(txn *badger.Txn) error {
		entry = domain.JournalEntry{}
		if err := getInTxn(txn, key, &entry); err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return ErrJournalNotFound
			}
			return fmt.Errorf("get journal: %w", err)
		}

		if err := mutate(&entry); err != nil {
			return err
		}

		return setInTxn(txn, key, &entry)
	})
	if err != nil {
		return nil, err
	}

	return &entry, nil
}

// ListJournalsByOwner returns all journal entries owned by a user.
func (s *Store) ListJournalsByOwner(ctx context.Context, ownerID string) ([]*domain.JournalEntry, error) {
	prefix := journalIdxOwnerPrefix + ownerID + ":"
	return s.listJournalsByIndex(ctx, prefix)
}

// ListJournalsForBook returns all journal entries about a book.
func (s *Store) ListJournalsForBook(ctx context.Context, bookKey string) ([]*domain.JournalEntry, error) {
	prefix := journalIdxBookPrefix + bookKey + ":"
	return s.listJournalsByIndex(ctx, prefix)
}

// listJournalsByIndex scans a key-only index and loads the referenced entries.
func (s *Store) listJournalsByIndex(ctx context.Context, indexPrefix string) ([]*domain.JournalEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var ids []string
	prefix := []byte(indexPrefix)

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false // Key-only index
		opts.Prefix = prefix

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			key := string(it.Item().Key())
			// Journal ID is everything after the last colon; IDs never contain one.
			if i := strings.LastIndexByte(key, ':'); i >= 0 && i < len(key)-1 {
				ids = append(ids, key[i+1:])
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan journal index: %w", err)
	}

	entries := make([]*domain.JournalEntry, 0, len(ids))
	for _, id := range ids {
		entry, err := s.GetJournal(ctx, id)
		if err != nil {
			if s.logger != nil {
				s.logger.Warn("failed to load journal from index", "journal_id", id, "error", err)
			}
			continue
		}
		entries = append(entries, entry)
	}

	return entries, nil
}
