package service

import (
	"context"

	"github.com/inkshelf/inkshelf-server/internal/domain"
	domainerrors "github.com/inkshelf/inkshelf-server/internal/errors"
)

// VoteResult reports the outcome of a vote toggle along with the entry's
// resulting counts.
type VoteResult struct {
	Outcome   domain.VoteOutcome `json:"outcome"`
	Upvotes   int                `json:"upvotes"`
	Downvotes int                `json:"downvotes"`
	Score     int                `json:"score"`
}

// Upvote toggles the voter's upvote on a journal entry.
func (s *JournalService) Upvote(ctx context.Context, voterID, journalID string) (*VoteResult, error) {
	return s.vote(ctx, voterID, journalID, domain.VoteUp)
}

// Downvote toggles the voter's downvote on a journal entry.
func (s *JournalService) Downvote(ctx context.Context, voterID, journalID string) (*VoteResult, error) {
	return s.vote(ctx, voterID, journalID, domain.VoteDown)
}

// vote applies a vote toggle inside the store's retrying transaction, so the
// decision is always recomputed from the entry's fresh vote sets. Voting the
// current direction removes the vote; voting the opposite direction moves it.
// A voter is never in both sets. Private entries accept votes only from
// their owner, matching their read visibility.
func (s *JournalService) vote(ctx context.Context, voterID, journalID string, direction domain.VoteDirection) (*VoteResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if !direction.Valid() {
		return nil, domainerrors.Validationf("invalid vote direction %q", direction)
	}

	var outcome domain.VoteOutcome
	entry, err := s.store.UpdateJournalWith(ctx, journalID, func(j *domain.JournalEntry) error {
		if j.IsPrivate && j.OwnerID != voterID {
			return domainerrors.NotFound("journal entry not found")
		}
		outcome = j.ApplyVote(voterID, direction)
		return nil
	})
	if err != nil {
		return nil, mapStoreErr(err)
	}

	s.logger.Debug("vote applied",
		"journal_id", journalID,
		"voter_id", voterID,
		"direction", direction,
		"outcome", outcome,
	)

	return &VoteResult{
		Outcome:   outcome,
		Upvotes:   len(entry.Upvoters),
		Downvotes: len(entry.Downvoters),
		Score:     entry.Score(),
	}, nil
}
