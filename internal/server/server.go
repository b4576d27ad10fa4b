// Package server wires the full application together: database,
// services, handlers, middleware, and the chi route table.
//
// This is the composition root. Every layer receives only what it
// needs — services get repository interfaces, handlers get services —
// so nothing below this package imports anything above itself.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"

	"github.com/tahmid/focusflow/internal/auth"
	"github.com/tahmid/focusflow/internal/config"
	"github.com/tahmid/focusflow/internal/handler"
	"github.com/tahmid/focusflow/internal/middleware"
	sqliteRepo "github.com/tahmid/focusflow/internal/repository/sqlite"
	"github.com/tahmid/focusflow/internal/service"
	"github.com/tahmid/focusflow/internal/video"
	"github.com/tahmid/focusflow/internal/video/youtube"
)

// Server owns the router and the resources that need an orderly
// shutdown — today that is just the database connection, which must be
// closed to flush the WAL and release the file lock.
type Server struct {
	router *chi.Mux
	config *config.Config
	logger *slog.Logger
	db     *sqliteRepo.DB
}

// New assembles the dependency chain:
//
//	sqlite stores → services → handlers → routes
//
// The YouTube client is only constructed when an API key is
// configured; with no key the boost service runs with a nil provider
// and reports provider_unavailable on its routes, while the rest of
// the API keeps working.
func New(cfg *config.Config, logger *slog.Logger) (*Server, error) {
	db, err := sqliteRepo.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
		db:     db,
	}

	if err := s.setupRoutes(); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting up routes: %w", err)
	}

	return s, nil
}

// setupRoutes configures all middleware and route handlers.
//
// ROUTE STRUCTURE:
//
//	GET    /                                     → API banner (JSON)
//	GET    /health                               → liveness probe
//	POST   /api/users/register                   → create account (rate limited)
//	POST   /api/users/login                      → issue JWT (rate limited)
//	       everything below requires a Bearer token:
//	GET    /api/users/me                         → current profile
//	PUT    /api/users/me                         → update profile
//	DELETE /api/users/me                         → delete account
//	CRUD   /api/goals, /api/todos, /api/activities
//	GET    /api/activities/stats/summary         → aggregate counters
//	GET    /api/boost/recommendations            → goal-driven videos
//	GET    /api/boost/search                     → direct video search
//	GET    /api/boost/goal/{goal_id}/videos      → videos for one goal
//	GET    /api/boost/trending                   → motivational trending
//	GET    /api/boost/video/{video_id}/details   → single video lookup
//	GET    /api/music/playlists[/{id}]           → focus music catalog
//	GET    /api/music/recommended                → time-of-day pick
//
// MIDDLEWARE ORDER MATTERS: RequestID first so the logger can include
// it, Recoverer last in the global chain so panics in other middleware
// are caught too.
func (s *Server) setupRoutes() error {
	tokens, err := auth.NewTokenService(s.config.JWTSecret)
	if err != nil {
		return fmt.Errorf("creating token service: %w", err)
	}
	passwords := auth.NewPasswordService(s.config.BcryptCost)

	// One YouTube client for the whole process. A nil provider is a
	// valid state: boost endpoints degrade, everything else serves.
	var provider video.Provider
	if s.config.YouTubeAPIKey != "" {
		provider = youtube.New(s.config.YouTubeAPIKey, s.logger)
	} else {
		s.logger.Warn("YOUTUBE_API_KEY not set, boost endpoints will report provider_unavailable")
	}

	users := sqliteRepo.NewUserStore(s.db)
	goals := sqliteRepo.NewGoalStore(s.db)
	todos := sqliteRepo.NewTodoStore(s.db)
	activities := sqliteRepo.NewActivityStore(s.db)

	userService := service.NewUserService(users, passwords, tokens, s.logger)
	goalService := service.NewGoalService(goals, s.logger)
	todoService := service.NewTodoService(todos, goals, s.logger)
	activityService := service.NewActivityService(activities, s.logger)
	boostService := service.NewBoostService(goals, activities, provider, s.logger)

	userHandler := handler.NewUserHandler(userService, s.logger)
	goalHandler := handler.NewGoalHandler(goalService, s.logger)
	todoHandler := handler.NewTodoHandler(todoService, s.logger)
	activityHandler := handler.NewActivityHandler(activityService, s.logger)
	boostHandler := handler.NewBoostHandler(boostService, s.logger)
	musicHandler := handler.NewMusicHandler(s.logger)

	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(middleware.Logger(s.logger))
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.config.Origins(),
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	s.router.Get("/", s.handleRoot)
	s.router.Get("/health", s.handleHealth)

	s.router.Route("/api", func(r chi.Router) {
		// Credential endpoints are the only unauthenticated API
		// surface, so they get a per-IP rate limit.
		r.Group(func(r chi.Router) {
			r.Use(httprate.LimitByIP(10, time.Minute))
			r.Post("/users/register", userHandler.HandleRegister)
			r.Post("/users/login", userHandler.HandleLogin)
		})

		r.Group(func(r chi.Router) {
			r.Use(auth.RequireAuth(tokens))

			r.Get("/users/me", userHandler.HandleMe)
			r.Put("/users/me", userHandler.HandleUpdateMe)
			r.Delete("/users/me", userHandler.HandleDeleteMe)

			r.Post("/goals", goalHandler.HandleCreate)
			r.Get("/goals", goalHandler.HandleList)
			r.Get("/goals/{id}", goalHandler.HandleGet)
			r.Put("/goals/{id}", goalHandler.HandleUpdate)
			r.Delete("/goals/{id}", goalHandler.HandleDelete)

			r.Post("/todos", todoHandler.HandleCreate)
			r.Get("/todos", todoHandler.HandleList)
			r.Get("/todos/{id}", todoHandler.HandleGet)
			r.Put("/todos/{id}", todoHandler.HandleUpdate)
			r.Delete("/todos/{id}", todoHandler.HandleDelete)

			r.Post("/activities", activityHandler.HandleCreate)
			r.Get("/activities", activityHandler.HandleList)
			// Registered before /activities/{id} so "stats" is never
			// captured as an id.
			r.Get("/activities/stats/summary", activityHandler.HandleStats)
			r.Get("/activities/{id}", activityHandler.HandleGet)
			r.Delete("/activities/{id}", activityHandler.HandleDelete)

			r.Get("/boost/recommendations", boostHandler.HandleRecommendations)
			r.Get("/boost/search", boostHandler.HandleSearch)
			r.Get("/boost/goal/{goal_id}/videos", boostHandler.HandleGoalVideos)
			r.Get("/boost/trending", boostHandler.HandleTrending)
			r.Get("/boost/video/{video_id}/details", boostHandler.HandleVideoDetails)

			r.Get("/music/playlists", musicHandler.HandlePlaylists)
			r.Get("/music/playlists/{id}", musicHandler.HandlePlaylist)
			r.Get("/music/recommended", musicHandler.HandleRecommended)
		})
	})

	return nil
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"message": "Welcome to FocusFlow API",
		"docs":    "/health",
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "healthy"})
}

// Router exposes the configured mux, mainly for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// Start runs the HTTP server until a shutdown signal arrives.
//
// GRACEFUL SHUTDOWN:
//  1. Stop accepting new connections
//  2. Wait up to 30s for in-flight requests to finish
//  3. Close the database (flushes WAL, releases the file lock)
func (s *Server) Start() error {
	defer s.db.Close()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.config.Port),
			slog.String("database", s.config.DBPath),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	s.logger.Info("server stopped")
	return nil
}
