package api

import (
	"net/http"

	"github.com/inkshelf/inkshelf-server/internal/http/response"
)

// RegisterRequest is the request body for user registration.
type RegisterRequest struct {
	Handle   string `json:"handle" validate:"required,min=3,max=30"`
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,min=8,max=1024"`
	FullName string `json:"full_name,omitempty" validate:"omitempty,max=100"`
}

// LoginRequest is the request body for user login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,max=1024"`
}

// AuthResponse contains the authenticated user and their access token.
type AuthResponse struct {
	User        UserResponse `json:"user"`
	AccessToken string       `json:"access_token"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := s.decode(r, &req); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	result, err := s.authService.Register(r.Context(), req.Handle, req.Email, req.Password, req.FullName)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Created(w, AuthResponse{
		User:        toUserResponse(result.User),
		AccessToken: result.AccessToken,
	}, s.logger)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := s.decode(r, &req); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	result, err := s.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, AuthResponse{
		User:        toUserResponse(result.User),
		AccessToken: result.AccessToken,
	}, s.logger)
}
