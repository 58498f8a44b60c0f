// Package api provides the HTTP API server and handlers for the Inkshelf application.
package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/inkshelf/inkshelf-server/internal/metadata/openlibrary"
	"github.com/inkshelf/inkshelf-server/internal/service"
	"github.com/inkshelf/inkshelf-server/internal/store"
	"github.com/inkshelf/inkshelf-server/internal/validation"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	store           *store.Store
	authService     *service.AuthService
	userService     *service.UserService
	registryService *service.RegistryService
	shelfService    *service.ShelfService
	journalService  *service.JournalService
	socialService   *service.SocialService
	activityService *service.ActivityService
	library         *openlibrary.Client
	validator       *validation.Validator
	router          *chi.Mux
	logger          *slog.Logger
}

// Services bundles the application services the server depends on.
type Services struct {
	Auth     *service.AuthService
	User     *service.UserService
	Registry *service.RegistryService
	Shelf    *service.ShelfService
	Journal  *service.JournalService
	Social   *service.SocialService
	Activity *service.ActivityService

	// Library may be nil; book search then answers 503.
	Library *openlibrary.Client
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(store *store.Store, services Services, logger *slog.Logger) *Server {
	s := &Server{
		store:           store,
		authService:     services.Auth,
		userService:     services.User,
		registryService: services.Registry,
		shelfService:    services.Shelf,
		journalService:  services.Journal,
		socialService:   services.Social,
		activityService: services.Activity,
		library:         services.Library,
		validator:       validation.New(),
		router:          chi.NewRouter(),
		logger:          logger,
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// setupMiddleware configures the middleware stack.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	// Health check.
	s.router.Get("/health", s.handleHealthCheck)

	// API v1.
	s.router.Route("/api/v1", func(r chi.Router) {
		// Auth endpoints (public).
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", s.handleRegister)
			r.Post("/login", s.handleLogin)
		})

		// User endpoints. Handle availability and per-user activity are
		// public; everything else needs a token.
		r.Route("/users", func(r chi.Router) {
			r.Get("/check-handle/{handle}", s.handleCheckHandle)
			r.Get("/{id}/activity", s.handleGetUserActivity)

			r.Group(func(r chi.Router) {
				r.Use(s.requireAuth)
				r.Get("/me", s.handleGetCurrentUser)
				r.Put("/update", s.handleUpdateProfile)
				r.Get("/handle/{handle}", s.handleGetUserByHandle)
				r.Post("/{id}/follow", s.handleFollow)
				r.Delete("/{id}/follow", s.handleUnfollow)
			})
		})

		// Shelves (require auth).
		r.Route("/shelves", func(r chi.Router) {
			r.Use(s.requireAuth)
			r.Get("/", s.handleGetShelves)
			r.Post("/set-status", s.handleSetShelfStatus)
		})

		// Favorites (require auth).
		r.Route("/favorites", func(r chi.Router) {
			r.Use(s.requireAuth)
			r.Get("/", s.handleListFavorites)
			r.Post("/{bookKey}", s.handleAddFavorite)
			r.Delete("/{bookKey}", s.handleRemoveFavorite)
		})

		// Journals (require auth).
		r.Route("/journals", func(r chi.Router) {
			r.Use(s.requireAuth)
			r.Get("/", s.handleListMyJournals)
			r.Post("/", s.handleCreateJournal)
			r.Get("/{id}", s.handleGetJournal)
			r.Put("/{id}", s.handleUpdateJournal)
			r.Get("/user/{userID}", s.handleListUserJournals)
			r.Get("/book/{bookKey}", s.handleListBookJournals)
			r.Post("/{id}/upvote", s.handleUpvote)
			r.Post("/{id}/downvote", s.handleDownvote)
		})

		// Catalog search (public).
		r.Get("/books/search", s.handleSearchBooks)

		// Global activity feed (public).
		r.Get("/activity", s.handleGetActivityFeed)
	})
}
