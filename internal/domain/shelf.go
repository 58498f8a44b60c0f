package domain

import (
	"slices"
	"time"
)

// ShelfStatus identifies one of the three reading-status shelves, or the
// remove pseudo-status that clears a book from all of them.
type ShelfStatus string

const (
	// ShelfWantToRead marks a book the user intends to read.
	ShelfWantToRead ShelfStatus = "wantToRead"
	// ShelfOngoing marks a book the user is currently reading.
	ShelfOngoing ShelfStatus = "ongoing"
	// ShelfCompleted marks a book the user has finished.
	ShelfCompleted ShelfStatus = "completed"
	// ShelfRemove clears the book from all shelves.
	ShelfRemove ShelfStatus = "remove"
)

// Valid reports whether the status is one of the four recognized tokens.
func (s ShelfStatus) Valid() bool {
	switch s {
	case ShelfWantToRead, ShelfOngoing, ShelfCompleted, ShelfRemove:
		return true
	default:
		return false
	}
}

// ShelfEntry is one book placement on a shelf.
type ShelfEntry struct {
	BookKey  string    `json:"book_key"`
	PlacedAt time.Time `json:"placed_at"`
}

// Shelves holds a user's three mutually exclusive reading-status lists.
// A book key appears in at most one list; the Place/Remove helpers are the
// only mutation paths and maintain that invariant.
type Shelves struct {
	WantToRead []ShelfEntry `json:"want_to_read,omitempty"`
	Ongoing    []ShelfEntry `json:"ongoing,omitempty"`
	Completed  []ShelfEntry `json:"completed,omitempty"`
}

// Remove deletes any entry for bookKey from all three lists.
// Returns true if at least one entry was removed.
func (s *Shelves) Remove(bookKey string) bool {
	removed := false
	for _, list := range []*[]ShelfEntry{&s.WantToRead, &s.Ongoing, &s.Completed} {
		before := len(*list)
		*list = slices.DeleteFunc(*list, func(e ShelfEntry) bool { return e.BookKey == bookKey })
		if len(*list) != before {
			removed = true
		}
	}
	return removed
}

// Place removes the book from all lists and appends it to the list for
// status. Calling with ShelfRemove only removes.
func (s *Shelves) Place(bookKey string, status ShelfStatus, placedAt time.Time) {
	s.Remove(bookKey)

	entry := ShelfEntry{BookKey: bookKey, PlacedAt: placedAt}
	switch status {
	case ShelfWantToRead:
		s.WantToRead = append(s.WantToRead, entry)
	case ShelfOngoing:
		s.Ongoing = append(s.Ongoing, entry)
	case ShelfCompleted:
		s.Completed = append(s.Completed, entry)
	case ShelfRemove:
		// Removal already done above.
	}
}

// StatusOf returns the shelf currently holding bookKey, or "" if unshelved.
func (s *Shelves) StatusOf(bookKey string) ShelfStatus {
	contains := func(list []ShelfEntry) bool {
		return slices.ContainsFunc(list, func(e ShelfEntry) bool { return e.BookKey == bookKey })
	}
	switch {
	case contains(s.WantToRead):
		return ShelfWantToRead
	case contains(s.Ongoing):
		return ShelfOngoing
	case contains(s.Completed):
		return ShelfCompleted
	default:
		return ""
	}
}

// Count returns the total number of shelved books.
func (s *Shelves) Count() int {
	return len(s.WantToRead) + len(s.Ongoing) + len(s.Completed)
}
