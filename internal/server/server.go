package server

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/nomadflamingo/gymlog/internal/ingest/gymlog"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	gymlog       *gymlog.Provider
	log          *slog.Logger
	apiKey       string
	maxBodyBytes int64
	router       chi.Router
}

// New creates a new Server with all routes configured. An empty apiKey
// leaves the parse endpoint unauthenticated.
func New(provider *gymlog.Provider, apiKey string, maxBodyBytes int64, log *slog.Logger) *Server {
	s := &Server{
		gymlog:       provider,
		log:          log,
		apiKey:       apiKey,
		maxBodyBytes: maxBodyBytes,
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
	s.router.Use(CORS)

	s.router.Get("/api/v1/health", s.handleHealth)

	s.router.Group(func(r chi.Router) {
		if s.apiKey != "" {
			r.Use(APIKeyAuth(s.apiKey))
		}
		r.Post("/api/v1/parse", s.handleParse)
	})
}
