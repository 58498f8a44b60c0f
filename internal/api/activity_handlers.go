package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/inkshelf/inkshelf-server/internal/domain"
	"github.com/inkshelf/inkshelf-server/internal/http/response"
)

// ActivityFeedResponse is a page of the activity feed.
type ActivityFeedResponse struct {
	Activities []*domain.Activity `json:"activities"`
}

func (s *Server) handleGetActivityFeed(w http.ResponseWriter, r *http.Request) {
	before, err := queryTime(r, "before")
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	activities, err := s.activityService.Feed(r.Context(), queryInt(r, "limit", 0), before)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	if activities == nil {
		activities = []*domain.Activity{}
	}
	response.Success(w, ActivityFeedResponse{Activities: activities}, s.logger)
}

func (s *Server) handleGetUserActivity(w http.ResponseWriter, r *http.Request) {
	activities, err := s.activityService.UserFeed(r.Context(), chi.URLParam(r, "id"), queryInt(r, "limit", 0))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	if activities == nil {
		activities = []*domain.Activity{}
	}
	response.Success(w, ActivityFeedResponse{Activities: activities}, s.logger)
}
