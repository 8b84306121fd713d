// Package web provides the HTTP server and handlers for exam authoring.
package web

import (
	"context"
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/JonMunkholm/exampro/internal/config"
	"github.com/JonMunkholm/exampro/internal/core"
	mw "github.com/JonMunkholm/exampro/internal/web/middleware"
)

// Server is the HTTP server for exam authoring.
type Server struct {
	cfg      *config.Config
	sessions *core.Sessions
	store    core.ExamStore
	imports  *core.ImportLimiter
	router   *chi.Mux
	server   *http.Server
}

// NewServer creates a new Server instance.
func NewServer(cfg *config.Config, sessions *core.Sessions, store core.ExamStore, imports *core.ImportLimiter) *Server {
	s := &Server{
		cfg:      cfg,
		sessions: sessions,
		store:    store,
		imports:  imports,
		router:   chi.NewRouter(),
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

// setupMiddleware configures middleware for all routes.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(mw.TrustedRealIP(s.cfg.Security.TrustedProxies))
	s.router.Use(mw.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Timeout(s.cfg.Server.RequestTimeout))
	s.router.Use(securityHeaders(s.cfg.Security.EnableCSP))

	if s.cfg.Rate.Enabled {
		s.router.Use(newRateLimiter(s.cfg.Rate.RequestsPerMinute, time.Minute).middleware)
	}
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	s.router.Get("/healthz", s.handleHealth)

	s.router.Route("/api", func(r chi.Router) {
		r.Use(mw.APIKeyAuth(&s.cfg.Security))

		r.Get("/template", s.handleDownloadTemplate)
		r.Get("/dashboard/{role}", s.handleDashboard)
		r.Get("/exams", s.handleListExams)

		r.Route("/csv-sessions", func(r chi.Router) {
			r.Post("/", s.handleCreateCSVSession)
			r.Route("/{sessionID}", func(r chi.Router) {
				r.Get("/", s.handleGetCSVSession)
				r.Delete("/", s.handleDeleteCSVSession)
				r.Put("/title", s.handleSetCSVTitle)
				r.Delete("/questions/{index}", s.handleRemoveCSVQuestion)
				r.Post("/save", s.handleSaveCSVSession)

				r.Group(func(r chi.Router) {
					if s.cfg.Rate.Enabled {
						r.Use(newRateLimiter(s.cfg.Rate.ImportLimit, time.Minute).middleware)
					}
					r.Post("/import", s.handleImportCSV)
				})
			})
		})

		r.Route("/manual-sessions", func(r chi.Router) {
			r.Post("/", s.handleCreateManualSession)
			r.Route("/{sessionID}", func(r chi.Router) {
				r.Get("/", s.handleGetManualSession)
				r.Delete("/", s.handleDeleteManualSession)
				r.Put("/info", s.handleSetManualInfo)
				r.Get("/draft", s.handleNewDraft)
				r.Post("/questions", s.handleAddQuestion)
				r.Delete("/questions/{questionID}", s.handleRemoveManualQuestion)
				r.Post("/save", s.handleSaveManualSession)
			})
		})
	})
}

// Start begins listening for HTTP requests.
func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:         s.cfg.Server.Addr(),
		Handler:      s.router,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
		IdleTimeout:  s.cfg.Server.IdleTimeout,
	}

	slog.Info("starting server", "addr", s.server.Addr)
	return s.server.ListenAndServe()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// Router returns the underlying chi router for testing.
func (s *Server) Router() *chi.Mux {
	return s.router
}

// securityHeaders adds security headers to all responses.
func securityHeaders(enableCSP bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			w.Header().Set("X-Frame-Options", "DENY")
			w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
			if enableCSP {
				w.Header().Set("Content-Security-Policy", "default-src 'self'; script-src 'self'; style-src 'self' 'unsafe-inline'; img-src 'self' data:")
			}
			next.ServeHTTP(w, r)
		})
	}
}

// rateLimiter implements a fixed-window request limit per client IP.
type rateLimiter struct {
	mu        sync.Mutex
	visitors  map[string]*visitor
	rate      int           // requests per window
	window    time.Duration // time window
	lastSweep time.Time
}

type visitor struct {
	tokens    int
	lastReset time.Time
}

// newRateLimiter creates a rate limiter with the specified rate per window.
func newRateLimiter(rate int, window time.Duration) *rateLimiter {
	return &rateLimiter{
		visitors:  make(map[string]*visitor),
		rate:      rate,
		window:    window,
		lastSweep: time.Now(),
	}
}

// allow checks if the request should be allowed and consumes a token if so.
func (rl *rateLimiter) allow(ip string, now time.Time) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	// Drop stale visitors so the map does not grow without bound.
	if now.Sub(rl.lastSweep) > rl.window*2 {
		for k, v := range rl.visitors {
			if now.Sub(v.lastReset) > rl.window*2 {
				delete(rl.visitors, k)
			}
		}
		rl.lastSweep = now
	}

	v, exists := rl.visitors[ip]
	if !exists || now.Sub(v.lastReset) > rl.window {
		rl.visitors[ip] = &visitor{tokens: rl.rate - 1, lastReset: now}
		return true
	}

	if v.tokens <= 0 {
		return false
	}
	v.tokens--
	return true
}

// middleware returns an HTTP middleware that rate limits by IP.
// RemoteAddr has already been rewritten by TrustedRealIP.
func (rl *rateLimiter) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := r.RemoteAddr
		if host, _, err := net.SplitHostPort(ip); err == nil {
			ip = host
		}

		if !rl.allow(ip, time.Now()) {
			w.Header().Set("Retry-After", "60")
			respondErrorJSON(w, core.MapError(errRateLimited), nil, http.StatusTooManyRequests)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// writeJSON encodes v as JSON with the given status.
// Logs encoding errors since headers are already sent.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("json encode error", "error", err)
	}
}
