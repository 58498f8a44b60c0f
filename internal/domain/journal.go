package domain

import (
	"slices"
	"time"
)

// VoteDirection is the direction of a vote on a journal entry.
type VoteDirection string

const (
	// VoteUp is an upvote.
	VoteUp VoteDirection = "up"
	// VoteDown is a downvote.
	VoteDown VoteDirection = "down"
)

// Valid reports whether the direction is recognized.
func (d VoteDirection) Valid() bool {
	return d == VoteUp || d == VoteDown
}

// VoteState is a voter's current relationship to an entry. The wire format
// stores two membership lists, but mutations go through this explicit
// three-state view so mutual exclusion is checked in one place.
type VoteState string

const (
	// VoteStateNone means the voter has no active vote on the entry.
	VoteStateNone VoteState = "none"
	// VoteStateUp means the voter currently upvotes the entry.
	VoteStateUp VoteState = "up"
	// VoteStateDown means the voter currently downvotes the entry.
	VoteStateDown VoteState = "down"
)

// VoteOutcome is the result of applying a vote toggle.
type VoteOutcome string

const (
	// VoteApplied means the vote is now active in the requested direction.
	VoteApplied VoteOutcome = "applied"
	// VoteRemoved means the vote was toggled off.
	VoteRemoved VoteOutcome = "removed"
)

// JournalEntry is a user's written reflection on a book, with embedded vote
// sets. A voter ID appears in at most one of Upvoters/Downvoters.
type JournalEntry struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"owner_id"`
	BookKey   string    `json:"book_key"`
	Content   string    `json:"content"`
	Rating    int       `json:"rating,omitempty"` // 1-5, 0 means unrated
	IsPrivate bool      `json:"is_private"`
	Upvoters  []string  `json:"upvoters,omitempty"`
	Downvoters []string `json:"downvoters,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// VoteOf returns the voter's current state on the entry.
func (j *JournalEntry) VoteOf(voterID string) VoteState {
	switch {
	case slices.Contains(j.Upvoters, voterID):
		return VoteStateUp
	case slices.Contains(j.Downvoters, voterID):
		return VoteStateDown
	default:
		return VoteStateNone
	}
}

// ApplyVote toggles the voter's vote in the given direction and returns the
// outcome. Same direction twice removes the vote; switching direction clears
// the opposite set, so the voter is never in both.
func (j *JournalEntry) ApplyVote(voterID string, direction VoteDirection) VoteOutcome {
	same, opposite := &j.Upvoters, &j.Downvoters
	if direction == VoteDown {
		same, opposite = &j.Downvoters, &j.Upvoters
	}

	if slices.Contains(*same, voterID) {
		*same = slices.DeleteFunc(*same, func(id string) bool { return id == voterID })
		return VoteRemoved
	}

	*opposite = slices.DeleteFunc(*opposite, func(id string) bool { return id == voterID })
	*same = append(*same, voterID)
	return VoteApplied
}

// Score returns upvotes minus downvotes.
func (j *JournalEntry) Score() int {
	return len(j.Upvoters) - len(j.Downvoters)
}
