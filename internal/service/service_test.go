package service

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/inkshelf/inkshelf-server/internal/auth"
	"github.com/inkshelf/inkshelf-server/internal/domain"
	"github.com/inkshelf/inkshelf-server/internal/store"
)

// testEnv bundles a real store with every service under test.
type testEnv struct {
	store    *store.Store
	auth     *AuthService
	registry *RegistryService
	user     *UserService
	shelf    *ShelfService
	journal  *JournalService
	social   *SocialService
	activity *ActivityService
}

func setupTestEnv(t *testing.T) (*testEnv, func()) {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "inkshelf-service-test-*")
	require.NoError(t, err)

	s, err := store.New(filepath.Join(tmpDir, "test.db"), nil)
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	key := make([]byte, 32)
	copy(key, []byte("0123456789abcdef0123456789abcdef"))
	tokens, err := auth.NewTokenService(key, time.Hour)
	require.NoError(t, err)

	registry := NewRegistryService(s, logger)
	shelf := NewShelfService(s, logger)
	journal := NewJournalService(s, logger)
	// No Open Library client in tests: feed rows simply carry no title.
	activity := NewActivityService(s, nil, logger)
	shelf.SetActivityRecorder(activity)
	journal.SetActivityRecorder(activity)

	env := &testEnv{
		store:    s,
		auth:     NewAuthService(s, tokens, logger),
		registry: registry,
		user:     NewUserService(s, registry, logger),
		shelf:    shelf,
		journal:  journal,
		social:   NewSocialService(s, logger),
		activity: activity,
	}

	cleanup := func() {
		_ = s.Close()
		_ = os.RemoveAll(tmpDir)
	}
	return env, cleanup
}

// registerUser creates an account through the real registration path.
func (e *testEnv) registerUser(t *testing.T, handle, email string) *domain.User {
	t.Helper()
	result, err := e.auth.Register(context.Background(), handle, email, "correct-horse-battery", "")
	require.NoError(t, err)
	return result.User
}
