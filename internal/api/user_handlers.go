package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/inkshelf/inkshelf-server/internal/http/response"
	"github.com/inkshelf/inkshelf-server/internal/service"
)

// UpdateProfileRequest is the request body for profile updates.
// Omitted fields are left unchanged.
type UpdateProfileRequest struct {
	Handle     *string `json:"handle,omitempty" validate:"omitempty,min=3,max=30"`
	FullName   *string `json:"full_name,omitempty" validate:"omitempty,max=100"`
	Bio        *string `json:"bio,omitempty" validate:"omitempty,max=500"`
	ProfilePic *string `json:"profile_pic,omitempty" validate:"omitempty,url,max=2048"`
}

// CheckHandleResponse reports handle availability.
type CheckHandleResponse struct {
	Handle    string `json:"handle"`
	Available bool   `json:"available"`
}

func (s *Server) handleCheckHandle(w http.ResponseWriter, r *http.Request) {
	handle := chi.URLParam(r, "handle")

	available, err := s.registryService.CheckAvailability(r.Context(), handle)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, CheckHandleResponse{
		Handle:    handle,
		Available: available,
	}, s.logger)
}

func (s *Server) handleGetCurrentUser(w http.ResponseWriter, r *http.Request) {
	user, err := s.userService.Get(r.Context(), getUserID(r.Context()))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, toUserResponse(user), s.logger)
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req UpdateProfileRequest
	if err := s.decode(r, &req); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	user, err := s.userService.UpdateProfile(r.Context(), getUserID(r.Context()), service.ProfileUpdate{
		Handle:     req.Handle,
		FullName:   req.FullName,
		Bio:        req.Bio,
		ProfilePic: req.ProfilePic,
	})
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, toUserResponse(user), s.logger)
}

func (s *Server) handleGetUserByHandle(w http.ResponseWriter, r *http.Request) {
	user, err := s.userService.GetByHandle(r.Context(), chi.URLParam(r, "handle"))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	// Callers see their own full profile even when looked up by handle.
	if user.ID == getUserID(r.Context()) {
		response.Success(w, toUserResponse(user), s.logger)
		return
	}
	response.Success(w, toPublicUserResponse(user), s.logger)
}
