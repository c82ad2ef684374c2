package http

import (
	"context"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"outlay/internal/middleware/ratelimit"
	"outlay/internal/middleware/security"
	"outlay/internal/middleware/trace"
	"outlay/internal/services"
	appweb "outlay/web"
)

// Options tune the server's ambient behavior.
type Options struct {
	RateLimitPerMinute int
}

type Server struct {
	http.Server
	templates *template.Template
	service   *services.ExpenseService

	headers *security.HeadersMiddleware
	tracer  *trace.Middleware
	limiter *ratelimit.Limiter

	stopMaintenance chan struct{}
	shutdownOnce    sync.Once
}

// NewServer configures routes and templates, returning a ready-to-run server.
func NewServer(addr string, service *services.ExpenseService, opts Options) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:    addr,
			Handler: mux,
		},
		service: service,
		headers: security.NewHeadersMiddleware(security.DefaultHeadersConfig()),
		tracer:  trace.NewMiddleware(extractClientIP),
		limiter: ratelimit.NewLimiter(ratelimit.Config{
			RequestsPerMinute: opts.RateLimitPerMinute,
		}),
		stopMaintenance: make(chan struct{}),
	}

	go s.startMaintenance()

	// Parse embedded templates at startup.
	t, err := template.ParseFS(appweb.TemplatesFS, "templates/*.html")
	if err != nil {
		slog.Warn("Failed parsing templates", "error", err)
	}
	s.templates = t

	// Static assets (served from embedded FS)
	if sub, err := fs.Sub(appweb.StaticFS, "static"); err == nil {
		static := http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
		mux.Handle("/static/", security.StaticAssetMiddleware(3600)(static))
	} else {
		slog.Warn("Failed to mount embedded static FS", "error", err)
	}

	mux.Handle("/", s.chain(http.HandlerFunc(s.handleIndex)))
	mux.HandleFunc("/healthz", handleHealth)
	mux.HandleFunc("/readyz", handleReady)
	mux.Handle("/ui/overview", s.chain(http.HandlerFunc(s.handleOverview)))
	mux.Handle("/expenses", s.chainMutating(http.HandlerFunc(s.handleCreateExpense)))
	mux.Handle("/expenses/update", s.chainMutating(http.HandlerFunc(s.handleUpdateExpense)))
	mux.Handle("/expenses/delete", s.chainMutating(http.HandlerFunc(s.handleDeleteExpense)))

	return s
}

// chain wraps a handler with security headers and request tracing.
func (s *Server) chain(h http.Handler) http.Handler {
	return s.headers.Middleware(s.tracer.Middleware(h))
}

// chainMutating additionally rate-limits per client IP.
func (s *Server) chainMutating(h http.Handler) http.Handler {
	return s.chain(s.limiter.Middleware(extractClientIP)(h))
}

// startMaintenance periodically drops expired overview cache entries.
func (s *Server) startMaintenance() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if cleaned := s.service.CleanExpiredCache(); cleaned > 0 {
				slog.Debug("Cache cleanup completed", "entries_removed", cleaned)
			}
		case <-s.stopMaintenance:
			return
		}
	}
}

// Shutdown gracefully shuts down the server and its background routines.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		close(s.stopMaintenance)
		if s.limiter != nil {
			s.limiter.Stop()
		}
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}
