package server

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/ziadkadry99/userboard/internal/db"
	"github.com/ziadkadry99/userboard/internal/httperr"
)

// Config holds server configuration.
type Config struct {
	Addr           string        // host:port to listen on
	AllowAll       bool          // allow all CORS origins
	RequestTimeout time.Duration // per-request deadline; zero means 60s
}

// Server is the userboard HTTP server.
type Server struct {
	cfg        Config
	db         *db.DB
	router     chi.Router
	httpServer *http.Server
}

// New creates a new server with its base routes.
func New(cfg Config, database *db.DB) *Server {
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 60 * time.Second
	}
	s := &Server{
		cfg: cfg,
		db:  database,
	}

	s.router = s.buildRouter()
	return s
}

// buildRouter creates and configures the chi router with the base routes.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(s.cfg.RequestTimeout))

	// CORS
	corsOpts := cors.Options{
		AllowedOrigins:   []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "HX-Request", "HX-Current-URL", "HX-Target", "HX-Trigger"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	if s.cfg.AllowAll {
		corsOpts.AllowedOrigins = []string{"*"}
		corsOpts.AllowedHeaders = []string{"*"}
		corsOpts.AllowCredentials = false
	}
	r.Use(cors.Handler(corsOpts))

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte("Hello world"))
	})

	// Health check
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if err := s.db.Check(r.Context()); err != nil {
			log.Printf("[%s] health check: %v", middleware.GetReqID(r.Context()), err)
			httperr.WriteJSON(w, r, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
		httperr.WriteJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Feature routes are registered by their packages via RegisterRoutes.

	return r
}

// Router returns the chi router for registering additional routes.
func (s *Server) Router() chi.Router { return s.router }

// Database returns the database connection.
func (s *Server) Database() *db.DB { return s.db }

// ServerConfig returns the server configuration.
func (s *Server) ServerConfig() Config { return s.cfg }

// Start begins listening on the configured address. It returns nil after a
// graceful Shutdown.
func (s *Server) Start() error {
	s.httpServer = &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      s.cfg.RequestTimeout + 10*time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("userboard server listening on %s", s.cfg.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}
