package server

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/claude/nightring/internal/ultrahuman"
	"github.com/go-chi/chi/v5"
)

// Fetcher abstracts the upstream metrics fetch for handler tests.
type Fetcher interface {
	FetchMetrics(ctx context.Context, email, date string) (*ultrahuman.Document, error)
}

// Compile-time check: *ultrahuman.Client satisfies Fetcher.
var _ Fetcher = (*ultrahuman.Client)(nil)

// Server holds dependencies for HTTP handlers.
type Server struct {
	fetcher      Fetcher
	defaultEmail string
	apiKey       string
	log          *slog.Logger
	router       chi.Router
}

// New creates a new Server with all routes configured. An empty apiKey
// leaves the API unauthenticated (tsnet handles access in tailnet mode).
func New(fetcher Fetcher, defaultEmail, apiKey string, log *slog.Logger) *Server {
	s := &Server{
		fetcher:      fetcher,
		defaultEmail: defaultEmail,
		apiKey:       apiKey,
		log:          log,
		router:       chi.NewRouter(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestID)
	s.router.Use(RequestLogging(s.log))

	s.router.Get("/healthz", s.handleHealthz)

	s.router.Route("/api/v1", func(r chi.Router) {
		if s.apiKey != "" {
			r.Use(APIKeyAuth(s.apiKey))
		}
		r.Get("/night", s.handleNight)
		r.Get("/night/report", s.handleNightReport)
	})
}
