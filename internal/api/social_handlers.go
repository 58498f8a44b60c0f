package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/inkshelf/inkshelf-server/internal/http/response"
)

// FavoritesResponse is the user's favorite book keys after a mutation.
type FavoritesResponse struct {
	Favorites []string `json:"favorites"`
}

func (s *Server) handleFollow(w http.ResponseWriter, r *http.Request) {
	err := s.socialService.Follow(r.Context(), getUserID(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.NoContent(w)
}

func (s *Server) handleUnfollow(w http.ResponseWriter, r *http.Request) {
	err := s.socialService.Unfollow(r.Context(), getUserID(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.NoContent(w)
}

func (s *Server) handleListFavorites(w http.ResponseWriter, r *http.Request) {
	favorites, err := s.socialService.ListFavorites(r.Context(), getUserID(r.Context()))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	if favorites == nil {
		favorites = []string{}
	}
	response.Success(w, FavoritesResponse{Favorites: favorites}, s.logger)
}

func (s *Server) handleAddFavorite(w http.ResponseWriter, r *http.Request) {
	favorites, err := s.socialService.AddFavorite(r.Context(), getUserID(r.Context()), chi.URLParam(r, "bookKey"))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	if favorites == nil {
		favorites = []string{}
	}
	response.Success(w, FavoritesResponse{Favorites: favorites}, s.logger)
}

func (s *Server) handleRemoveFavorite(w http.ResponseWriter, r *http.Request) {
	favorites, err := s.socialService.RemoveFavorite(r.Context(), getUserID(r.Context()), chi.URLParam(r, "bookKey"))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	if favorites == nil {
		favorites = []string{}
	}
	response.Success(w, FavoritesResponse{Favorites: favorites}, s.logger)
}
