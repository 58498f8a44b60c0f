package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/inkshelf/inkshelf-server/internal/domain"
	"github.com/inkshelf/inkshelf-server/internal/http/response"
)

// CreateJournalRequest is the request body for creating a journal entry.
type CreateJournalRequest struct {
	BookKey   string `json:"book_key" validate:"required,max=200"`
	Content   string `json:"content" validate:"required,max=20000"`
	Rating    int    `json:"rating,omitempty" validate:"omitempty,gte=1,lte=5"`
	IsPrivate bool   `json:"is_private"`
}

// UpdateJournalRequest is the request body for updating a journal entry.
type UpdateJournalRequest struct {
	Content   string `json:"content" validate:"required,max=20000"`
	Rating    int    `json:"rating,omitempty" validate:"omitempty,gte=1,lte=5"`
	IsPrivate bool   `json:"is_private"`
}

func (s *Server) handleCreateJournal(w http.ResponseWriter, r *http.Request) {
	var req CreateJournalRequest
	if err := s.decode(r, &req); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	userID := getUserID(r.Context())
	entry, err := s.journalService.Create(r.Context(), userID, req.BookKey, req.Content, req.Rating, req.IsPrivate)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Created(w, toJournalResponse(entry, userID), s.logger)
}

func (s *Server) handleGetJournal(w http.ResponseWriter, r *http.Request) {
	userID := getUserID(r.Context())
	entry, err := s.journalService.Get(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, toJournalResponse(entry, userID), s.logger)
}

func (s *Server) handleUpdateJournal(w http.ResponseWriter, r *http.Request) {
	var req UpdateJournalRequest
	if err := s.decode(r, &req); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	userID := getUserID(r.Context())
	entry, err := s.journalService.Update(r.Context(), userID, chi.URLParam(r, "id"), req.Content, req.Rating, req.IsPrivate)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, toJournalResponse(entry, userID), s.logger)
}

func (s *Server) handleListMyJournals(w http.ResponseWriter, r *http.Request) {
	userID := getUserID(r.Context())
	entries, err := s.journalService.ListByOwner(r.Context(), userID, userID)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, toJournalResponses(entries, userID), s.logger)
}

func (s *Server) handleListUserJournals(w http.ResponseWriter, r *http.Request) {
	userID := getUserID(r.Context())
	entries, err := s.journalService.ListByOwner(r.Context(), userID, chi.URLParam(r, "userID"))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, toJournalResponses(entries, userID), s.logger)
}

func (s *Server) handleListBookJournals(w http.ResponseWriter, r *http.Request) {
	userID := getUserID(r.Context())
	entries, err := s.journalService.ListForBook(r.Context(), userID, chi.URLParam(r, "bookKey"))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, toJournalResponses(entries, userID), s.logger)
}

func (s *Server) handleUpvote(w http.ResponseWriter, r *http.Request) {
	result, err := s.journalService.Upvote(r.Context(), getUserID(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	message := "Journal upvoted"
	if result.Outcome == domain.VoteRemoved {
		message = "Upvote removed"
	}
	response.SuccessWithMessage(w, result, message, s.logger)
}

func (s *Server) handleDownvote(w http.ResponseWriter, r *http.Request) {
	result, err := s.journalService.Downvote(r.Context(), getUserID(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	message := "Journal downvoted"
	if result.Outcome == domain.VoteRemoved {
		message = "Downvote removed"
	}
	response.SuccessWithMessage(w, result, message, s.logger)
}
