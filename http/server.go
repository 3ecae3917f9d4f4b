// Package http serves the assistant and the stateless generate proxy over
// HTTP with chi.
package http

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/fwojciec/stratchat"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

// DefaultMaxBodyBytes bounds request bodies.
const DefaultMaxBodyBytes = 1 << 20

// Server routes HTTP requests to the generator and the assistant.
type Server struct {
	router chi.Router
	logger *slog.Logger

	// Generator backs the generate proxy. Nil when no API key is
	// configured; generation endpoints then answer 500.
	Generator stratchat.Generator

	// Responder answers routed chat turns. Nil behaves like Generator.
	Responder stratchat.Responder

	// Metrics is mounted at /metrics when set.
	Metrics http.Handler

	// ProxyInstruction is the system instruction for the generate proxy.
	ProxyInstruction string

	MaxBodyBytes int64
}

// NewServer creates a Server. Set the exported fields before the first
// request.
func NewServer(logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	s := &Server{
		router:       chi.NewRouter(),
		logger:       logger,
		MaxBodyBytes: DefaultMaxBodyBytes,
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(middleware.Recoverer)
	s.router.Use(s.requestLogger)

	s.router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	})
	s.router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "Not found")
	})

	s.router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	s.router.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		if s.Metrics == nil {
			writeError(w, http.StatusNotFound, "Not found")
			return
		}
		s.Metrics.ServeHTTP(w, r)
	})

	s.router.Post("/api/generate", s.handleGenerate)
	s.router.Post("/api/chat", s.handleChat)
}

// requestLogger tags each request with an ID and logs it when done.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-Id")
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-Id", id)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		defer func(begin time.Time) {
			s.logger.Info("request",
				"request_id", id,
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(begin),
			)
		}(time.Now())
		next.ServeHTTP(ww, r)
	})
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}
