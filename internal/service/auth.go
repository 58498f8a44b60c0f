package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/inkshelf/inkshelf-server/internal/auth"
	"github.com/inkshelf/inkshelf-server/internal/domain"
	domainerrors "github.com/inkshelf/inkshelf-server/internal/errors"
	"github.com/inkshelf/inkshelf-server/internal/id"
	"github.com/inkshelf/inkshelf-server/internal/store"
)

// AuthService handles registration, login, and token verification.
type AuthService struct {
	store  *store.Store
	tokens *auth.TokenService
	logger *slog.Logger
}

// NewAuthService creates a new auth service.
func NewAuthService(store *store.Store, tokens *auth.TokenService, logger *slog.Logger) *AuthService {
	return &AuthService{
		store:  store,
		tokens: tokens,
		logger: logger,
	}
}

// AuthResult is the outcome of a successful registration or login.
type AuthResult struct {
	User        *domain.User `json:"user"`
	AccessToken string       `json:"access_token"`
}

// Register creates a new account and claims its handle. The account and its
// handle reservation are written in one transaction, so a user never exists
// without a handle and a handle never points at a missing user.
func (s *AuthService) Register(ctx context.Context, handle, email, password, fullName string) (*AuthResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if !domain.ValidHandle(handle) {
		return nil, domainerrors.Validation("username must be 3-30 characters of letters, digits, underscore, or hyphen")
	}

	passwordHash, err := auth.HashPassword(password)
	if err != nil {
		return nil, domainerrors.Validation("invalid password").WithCause(err)
	}

	userID, err := id.Generate("user")
	if err != nil {
		return nil, fmt.Errorf("generate user ID: %w", err)
	}

	now := time.Now()
	user := &domain.User{
		ID:           userID,
		Handle:       handle,
		Email:        email,
		PasswordHash: passwordHash,
		FullName:     fullName,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.store.CreateUser(ctx, user); err != nil {
		return nil, mapStoreErr(err)
	}

	token, err := s.tokens.GenerateAccessToken(user)
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}

	s.logger.Info("user registered",
		"user_id", userID,
		"handle", handle,
	)

	return &AuthResult{User: user, AccessToken: token}, nil
}

// Login authenticates by email and password.
// Invalid email and invalid password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	user, err := s.store.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, domainerrors.Unauthorized("invalid email or password")
	}

	valid, err := auth.VerifyPassword(user.PasswordHash, password)
	if err != nil || !valid {
		return nil, domainerrors.Unauthorized("invalid email or password")
	}

	user, err = s.store.UpdateUserWith(ctx, user.ID, func(u *domain.User) error {
		u.LastLoginAt = time.Now()
		return nil
	})
	if err != nil {
		return nil, mapStoreErr(err)
	}

	token, err := s.tokens.GenerateAccessToken(user)
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}

	s.logger.Info("user logged in",
		"user_id", user.ID,
	)

	return &AuthResult{User: user, AccessToken: token}, nil
}

// VerifyAccessToken validates a token and returns its claims.
func (s *AuthService) VerifyAccessToken(tokenString string) (*auth.AccessClaims, error) {
	claims, err := s.tokens.VerifyAccessToken(tokenString)
	if err != nil {
		return nil, domainerrors.Unauthorized("invalid or expired token").WithCause(err)
	}
	return claims, nil
}
