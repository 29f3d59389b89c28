package api

import (
	"net/http"
	"time"

	"datasight/app"
	"datasight/internal"
	"datasight/internal/usage"
	"datasight/ports"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// MaxUploadBytes bounds request bodies and multipart uploads
const MaxUploadBytes = 32 << 20

// Server exposes the pipeline over HTTP
type Server struct {
	router   *chi.Mux
	pipeline *app.Pipeline
	reader   ports.DatasetReader
	usage    *usage.Service
	logger   *internal.Logger
	started  time.Time
}

// Option configures a Server
type Option func(*Server)

// WithUsage exposes token usage at GET /api/usage
func WithUsage(u *usage.Service) Option {
	return func(s *Server) { s.usage = u }
}

// NewServer creates the HTTP surface and registers its routes
func NewServer(pipeline *app.Pipeline, reader ports.DatasetReader, logger *internal.Logger, opts ...Option) *Server {
	if logger == nil {
		logger = internal.NewNopLogger()
	}
	s := &Server{
		router:   chi.NewRouter(),
		pipeline: pipeline,
		reader:   reader,
		logger:   logger,
		started:  time.Now(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.setupRoutes()
	return s
}

// Handler returns the root http.Handler
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) setupRoutes() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))

	s.router.Get("/health", s.handleHealth)

	s.router.Route("/api", func(r chi.Router) {
		r.Post("/analyze", s.handleAnalyze)
		r.Post("/profile", s.handleProfile)
		r.Post("/recommend", s.handleRecommend)
		r.Post("/upload", s.handleUpload)
		if s.usage != nil {
			r.Get("/usage", s.handleUsage)
		}
	})
}
