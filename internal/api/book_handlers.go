package api

import (
	"net/http"
	"strings"

	domainerrors "github.com/inkshelf/inkshelf-server/internal/errors"
	"github.com/inkshelf/inkshelf-server/internal/http/response"
	"github.com/inkshelf/inkshelf-server/internal/metadata/openlibrary"
)

// BookSearchResponse is a page of catalog search results.
type BookSearchResponse struct {
	Query string             `json:"query"`
	Books []openlibrary.Book `json:"books"`
}

func (s *Server) handleSearchBooks(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		response.HandleError(w, domainerrors.Validation("search query cannot be empty"), s.logger)
		return
	}

	if s.library == nil {
		response.HandleError(w, domainerrors.Unavailable("book search is unavailable"), s.logger)
		return
	}

	books, err := s.library.Search(r.Context(), query)
	if err != nil {
		s.logger.Warn("book search failed",
			"query", query,
			"error", err,
		)
		response.HandleError(w, domainerrors.Unavailable("book search is unavailable").WithCause(err), s.logger)
		return
	}

	response.Success(w, BookSearchResponse{Query: query, Books: books}, s.logger)
}
