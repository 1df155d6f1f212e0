// Package httpserver serves compiled style sheets over HTTP.
package httpserver

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.trai.ch/lesscache/internal/core/domain"
	"go.trai.ch/lesscache/internal/core/ports"
	"go.trai.ch/zerr"
)

const (
	cssExtension  = ".css"
	lessExtension = ".less"

	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 5 * time.Second
)

// Cache is the part of the cache manager the server uses.
type Cache interface {
	CompiledOutput(ctx context.Context, src ports.Source) (domain.CompiledOutput, error)
	LastModifiedTime(src ports.Source) (time.Time, error)
	Clear()
}

// Opener returns the source stored at a file path.
type Opener func(path string) (ports.Source, error)

// Options configure a Server.
type Options struct {
	// Root is the directory style sheets are served from.
	Root string
	// MetricsPath is where Metrics is mounted. Ignored when Metrics is nil.
	MetricsPath string
	// Metrics serves the metrics exposition.
	Metrics http.Handler
	// RequestLog receives one record per request. Nil disables request logging.
	RequestLog *slog.Logger
	// OnCompiled is called after a source was served successfully.
	OnCompiled func(ports.Source)
}

// Server routes HTTP requests to the compilation cache.
type Server struct {
	cache  Cache
	open   Opener
	logger ports.Logger
	opts   Options
	router chi.Router
}

// New creates a Server.
func New(cache Cache, open Opener, logger ports.Logger, opts Options) *Server {
	s := &Server{
		cache:  cache,
		open:   open,
		logger: logger,
		opts:   opts,
	}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	if opts.RequestLog != nil {
		r.Use(requestLogger(opts.RequestLog))
	}
	r.Use(chimw.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Get("/css/*", s.handleStyleSheet)
	r.Head("/css/*", s.handleStyleSheet)
	r.Post("/cache/clear", s.handleClear)
	if opts.Metrics != nil {
		metricsPath := opts.MetricsPath
		if metricsPath == "" {
			metricsPath = "/metrics"
		}
		r.Method(http.MethodGet, metricsPath, opts.Metrics)
	}

	s.router = r
	return s
}

// SetRoot changes the directory style sheets are served from. It must be
// called before serving.
func (s *Server) SetRoot(root string) error {
	abs, err := filepath.Abs(root)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to resolve root"), "root", root)
	}
	s.opts.Root = abs
	return nil
}

// Root returns the directory style sheets are served from.
func (s *Server) Root() string {
	return s.opts.Root
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Serve accepts connections on l until ctx is canceled, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, l net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: readHeaderTimeout,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(l)
	}()

	select {
	case err := <-errCh:
		return zerr.Wrap(err, domain.ErrServeFailed.Error())
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return zerr.Wrap(err, domain.ErrServeFailed.Error())
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return zerr.Wrap(err, domain.ErrServeFailed.Error())
	}
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleClear(w http.ResponseWriter, _ *http.Request) {
	s.cache.Clear()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleStyleSheet(w http.ResponseWriter, r *http.Request) {
	file, ok := s.sourcePath(chi.URLParam(r, "*"))
	if !ok {
		http.NotFound(w, r)
		return
	}

	src, err := s.open(file)
	if err != nil {
		s.fail(w, err)
		return
	}

	modified, err := s.cache.LastModifiedTime(src)
	if err != nil {
		s.fail(w, err)
		return
	}

	out, err := s.cache.CompiledOutput(r.Context(), src)
	if err != nil {
		s.fail(w, err)
		return
	}
	if s.opts.OnCompiled != nil {
		s.opts.OnCompiled(src)
	}
	// An edited import must defeat If-Modified-Since as well.
	if out.Modified.After(modified) {
		modified = out.Modified
	}

	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	w.Header().Set("ETag", out.ETag())
	w.Header().Set("Cache-Control", "no-cache")
	http.ServeContent(w, r, path.Base(file), modified, strings.NewReader(out.CSS))
}

// sourcePath maps a request path like "themes/dark.css" to the LESS file under the root.
func (s *Server) sourcePath(requested string) (string, bool) {
	if !strings.HasSuffix(requested, cssExtension) {
		return "", false
	}
	cleaned := path.Clean("/" + requested)
	if cleaned == "/"+cssExtension || strings.Contains(cleaned, "/.") {
		return "", false
	}
	rel := strings.TrimSuffix(strings.TrimPrefix(cleaned, "/"), cssExtension) + lessExtension
	return filepath.Join(s.opts.Root, filepath.FromSlash(rel)), true
}

// fail maps err to a status code: unreadable sources are 404, compile errors 422.
func (s *Server) fail(w http.ResponseWriter, err error) {
	var compileErr *domain.CompileError
	switch {
	case errors.Is(err, domain.ErrSourceUnreadable):
		http.Error(w, "style sheet not found", http.StatusNotFound)
	case errors.As(err, &compileErr):
		http.Error(w, compileErr.Error(), http.StatusUnprocessableEntity)
	case errors.Is(err, context.Canceled):
		// Client went away.
	default:
		s.logger.Error(err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}
