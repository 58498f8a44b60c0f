package api

import (
	"net/http"

	"github.com/inkshelf/inkshelf-server/internal/domain"
	"github.com/inkshelf/inkshelf-server/internal/http/response"
)

// SetShelfStatusRequest is the request body for shelf placement.
type SetShelfStatusRequest struct {
	BookKey string `json:"book_key" validate:"required,max=200"`
	Status  string `json:"status" validate:"required,oneof=wantToRead ongoing completed remove"`
}

func (s *Server) handleSetShelfStatus(w http.ResponseWriter, r *http.Request) {
	var req SetShelfStatusRequest
	if err := s.decode(r, &req); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	shelves, err := s.shelfService.SetStatus(r.Context(), getUserID(r.Context()), req.BookKey, domain.ShelfStatus(req.Status))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	message := "Book shelved"
	if domain.ShelfStatus(req.Status) == domain.ShelfRemove {
		message = "Book removed from shelves"
	}
	response.SuccessWithMessage(w, shelves, message, s.logger)
}

func (s *Server) handleGetShelves(w http.ResponseWriter, r *http.Request) {
	shelves, err := s.shelfService.GetShelves(r.Context(), getUserID(r.Context()))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, shelves, s.logger)
}
