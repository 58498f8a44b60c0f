package domain

import "time"

// ActivityAction is the kind of state change an activity row records.
type ActivityAction string

const (
	// ActionShelve records a shelf placement. At most one shelve activity
	// exists per (user, book); a new placement supersedes the previous one.
	ActionShelve ActivityAction = "shelve"

	// ActionJournal records the creation of a public journal entry.
	// Journal activities are append-only and not deduplicated per book.
	ActionJournal ActivityAction = "journal"
)

// Activity is a derived, denormalized feed row. Activities are created and
// retracted only by the projection synchronizer, never mutated in place.
// User and book info is denormalized for feed rendering without joins.
type Activity struct {
	ID        string         `json:"id"`
	UserID    string         `json:"user_id"`
	Action    ActivityAction `json:"action"`
	BookKey   string         `json:"book_key"`
	JournalID string         `json:"journal_id,omitempty"` // Correlates journal activities to their entry
	ShelfStatus ShelfStatus  `json:"shelf_status,omitempty"`
	CreatedAt time.Time      `json:"created_at"`

	// Denormalized display fields
	UserHandle string `json:"user_handle,omitempty"`
	BookTitle  string `json:"book_title,omitempty"`
}
