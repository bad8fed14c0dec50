// Package api serves the analysis pipeline over HTTP.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/dsablic/codecheck/internal/aiestimate"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

const shutdownTimeout = 5 * time.Second

// Config wires the server's dependencies.
type Config struct {
	Estimator *aiestimate.Estimator
	// Origin is the base of share links; empty derives it from the request.
	Origin    string
	ReqPerSec float64
	Now       func() time.Time
}

type Server struct {
	router    *chi.Mux
	estimator *aiestimate.Estimator
	origin    string
	now       func() time.Time
}

// NewServer builds the router. ctx bounds the rate limiter's refill loop.
func NewServer(ctx context.Context, cfg Config) *Server {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"http://localhost:*", "https://*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		ExposedHeaders: []string{"Content-Disposition", "Retry-After"},
		MaxAge:         300,
	}))

	s := &Server{
		router:    r,
		estimator: cfg.Estimator,
		origin:    cfg.Origin,
		now:       cfg.Now,
	}
	if s.estimator == nil {
		s.estimator = aiestimate.New()
	}
	if s.now == nil {
		s.now = time.Now
	}
	s.setupRoutes(NewRateLimiter(ctx, cfg.ReqPerSec))

	return s
}

func (s *Server) setupRoutes(limiter *RateLimiter) {
	s.router.Get("/health", s.handleHealth)
	s.router.Get("/share", s.handleSharePreview)

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Use(limiter.Middleware)
		r.Post("/analyze", s.handleAnalyze)
		r.Post("/share", s.handleShare)
		r.Post("/report", s.handleReport)
	})
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Run listens on addr until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Starting codecheck server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Println("Shutting down codecheck server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	log.Println("codecheck server exited")
	return nil
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
