// Package httpapi exposes the chat over HTTP.
package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// Options configures the router.
type Options struct {
	Chat               http.Handler
	StaticDir          string
	RateLimitPerMinute int
	Logger             zerolog.Logger
}

// NewRouter mounts the chat API, the health check and the widget files.
func NewRouter(opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(RequestLogger(opts.Logger))
	r.Use(Recover(opts.Logger))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", Health)
		r.With(RateLimit(opts.RateLimitPerMinute)).Post("/chat", opts.Chat.ServeHTTP)
	})

	if opts.StaticDir != "" {
		r.Handle("/*", http.FileServer(http.Dir(opts.StaticDir)))
	}

	return r
}

// Health serves GET /api/health.
func Health(w http.ResponseWriter, _ *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]string{
		"status":    "OK",
		"timestamp": time.Now().UTC().Format(time.RFC3339Nano),
	})
}
