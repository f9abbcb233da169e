// Package server sets up the HTTP server, router, and all route definitions.
//
// This package is the "wiring" layer — the composition root where the whole
// dependency chain is assembled in one place:
//
//	sqlite.DB → AuthService/DocumentService → AuthHandler/DocumentHandler → routes
//
// Each layer only receives what it needs: services get repository interfaces,
// handlers get services, and nothing below the handler knows about HTTP.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/sakif/docvault/internal/auth"
	"github.com/sakif/docvault/internal/handler"
	"github.com/sakif/docvault/internal/middleware"
	sqliteRepo "github.com/sakif/docvault/internal/repository/sqlite"
	"github.com/sakif/docvault/internal/service"
)

// Config holds server configuration.
type Config struct {
	Port      int
	DBPath    string
	JWTSecret string // signing secret, required — validated in New
}

// Server represents the HTTP server and all its dependencies.
//
// The Server owns the database connection; it is closed during graceful
// shutdown so pending WAL writes are flushed and the file lock released.
type Server struct {
	router *chi.Mux
	config Config
	logger *slog.Logger
	db     *sqliteRepo.DB
}

// New creates a Server, opening the database and wiring all routes.
//
// A missing or too-short JWT secret is a fatal configuration error — the
// server refuses to construct rather than running with unverifiable tokens.
func New(cfg Config, logger *slog.Logger) (*Server, error) {
	tokens, err := auth.NewTokenService(cfg.JWTSecret)
	if err != nil {
		return nil, fmt.Errorf("configuring token service: %w", err)
	}

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

	s.setupRoutes(tokens)

	return s, nil
}

// setupRoutes configures all middleware and route handlers.
//
// ROUTE STRUCTURE:
//
//	POST   /auth/register  → create account + session cookie
//	POST   /auth/login     → verify credentials + session cookie
//	GET    /auth/protected → session check             [guarded]
//	POST   /auth/logout    → clear session cookie
//	POST   /docs           → create document           [guarded]
//	GET    /docs           → list own documents        [guarded]
//	GET    /docs/{id}      → get own document          [guarded]
//	PUT    /docs/{id}      → update own document       [guarded]
//	DELETE /docs/{id}      → delete own document       [guarded]
//
// MIDDLEWARE ORDER MATTERS — global chain first (request ID, real IP,
// panic recovery, logging), then RequireAuth only where a route group
// needs it.
func (s *Server) setupRoutes(tokens *auth.TokenService) {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.Logger(s.logger))

	authService := service.NewAuthService(s.db, tokens, auth.NewPasswordService(), s.logger)
	authHandler := handler.NewAuthHandler(authService, s.logger)

	documentService := service.NewDocumentService(s.db, s.logger)
	documentHandler := handler.NewDocumentHandler(documentService, s.logger)

	requireAuth := auth.RequireAuth(tokens)

	s.router.Route("/auth", func(r chi.Router) {
		r.Post("/register", authHandler.HandleRegister)
		r.Post("/login", authHandler.HandleLogin)
		r.Post("/logout", authHandler.HandleLogout)
		r.With(requireAuth).Get("/protected", authHandler.HandleProtected)
	})

	s.router.Route("/docs", func(r chi.Router) {
		r.Use(requireAuth)
		r.Post("/", documentHandler.HandleCreate)
		r.Get("/", documentHandler.HandleList)
		r.Get("/{id}", documentHandler.HandleGet)
		r.Put("/{id}", documentHandler.HandleUpdate)
		r.Delete("/{id}", documentHandler.HandleDelete)
	})
}

// Start starts the HTTP server and blocks until shutdown.
//
// GRACEFUL SHUTDOWN:
// 1. Stop accepting new connections on SIGINT/SIGTERM
// 2. Wait up to 30s for in-flight requests to finish
// 3. Close the database connection (deferred, runs last)
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
		s.logger.Info("server stopped gracefully")
	}

	return nil
}
