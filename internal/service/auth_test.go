package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/inkshelf/inkshelf-server/internal/errors"
)

func TestRegisterAndLogin(t *testing.T) {
	env, cleanup := setupTestEnv(t)
	defer cleanup()

	ctx := context.Background()

	result, err := env.auth.Register(ctx, "alice", "alice@example.com", "correct-horse-battery", "Alice Liddell")
	require.NoError(t, err)
	assert.NotEmpty(t, result.AccessToken)
	assert.Equal(t, "alice", result.User.Handle)

	claims, err := env.auth.VerifyAccessToken(result.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, result.User.ID, claims.UserID)
	assert.Equal(t, "alice", claims.Handle)

	login, err := env.auth.Login(ctx, "alice@example.com", "correct-horse-battery")
	require.NoError(t, err)
	assert.Equal(t, result.User.ID, login.User.ID)
	assert.False(t, login.User.LastLoginAt.IsZero())
}

func TestRegister_InvalidHandle(t *testing.T) {
	env, cleanup := setupTestEnv(t)
	defer cleanup()

	_, err := env.auth.Register(context.Background(), "a b", "alice@example.com", "correct-horse-battery", "")
	assert.ErrorIs(t, err, domainerrors.ErrValidation)
}

func TestRegister_HandleTaken(t *testing.T) {
	env, cleanup := setupTestEnv(t)
	defer cleanup()

	ctx := context.Background()
	env.registerUser(t, "alice", "alice@example.com")

	_, err := env.auth.Register(ctx, "ALICE", "other@example.com", "correct-horse-battery", "")
	assert.ErrorIs(t, err, domainerrors.ErrConflict)
}

func TestRegister_EmailTaken(t *testing.T) {
	env, cleanup := setupTestEnv(t)
	defer cleanup()

	ctx := context.Background()
	env.registerUser(t, "alice", "alice@example.com")

	_, err := env.auth.Register(ctx, "bob", "alice@example.com", "correct-horse-battery", "")
	assert.ErrorIs(t, err, domainerrors.ErrConflict)
}

func TestLogin_WrongPassword(t *testing.T) {
	env, cleanup := setupTestEnv(t)
	defer cleanup()

	ctx := context.Background()
	env.registerUser(t, "alice", "alice@example.com")

	_, err := env.auth.Login(ctx, "alice@example.com", "wrong")
	assert.ErrorIs(t, err, domainerrors.ErrUnauthorized)

	// Unknown email is indistinguishable from a wrong password.
	_, err = env.auth.Login(ctx, "nobody@example.com", "wrong")
	assert.ErrorIs(t, err, domainerrors.ErrUnauthorized)
}

func TestVerifyAccessToken_Garbage(t *testing.T) {
	env, cleanup := setupTestEnv(t)
	defer cleanup()

	_, err := env.auth.VerifyAccessToken("not-a-token")
	assert.ErrorIs(t, err, domainerrors.ErrUnauthorized)
}
