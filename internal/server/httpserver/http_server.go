// Package httpserver wires the preview server: the built site with client
// redirects, navigation JSON, health and Prometheus metrics.
package httpserver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"

	derrors "github.com/OpenStickCommunity/gp2040-ce-docs/internal/errors"
	"github.com/OpenStickCommunity/gp2040-ce-docs/internal/logfields"
	"github.com/OpenStickCommunity/gp2040-ce-docs/internal/metrics"
	handlers "github.com/OpenStickCommunity/gp2040-ce-docs/internal/server/handlers"
	smw "github.com/OpenStickCommunity/gp2040-ce-docs/internal/server/middleware"
)

// Options configures the server.
type Options struct {
	Addr      string // listen address, default ":3000"
	StaticDir string // built site served at the root
	Registry  *prom.Registry
	Recorder  metrics.Recorder
}

// Server serves one site through a SiteProvider.
type Server struct {
	httpServer   *http.Server
	listener     net.Listener
	provider     handlers.SiteProvider
	opts         Options
	errorAdapter *derrors.HTTPErrorAdapter

	monitoringHandlers *handlers.MonitoringHandlers
	navHandlers        *handlers.NavHandlers

	mchain func(http.Handler) http.Handler
}

// New constructs a new HTTP server wiring instance.
func New(provider handlers.SiteProvider, opts Options) *Server {
	if opts.Addr == "" {
		opts.Addr = ":3000"
	}
	if opts.Recorder == nil {
		opts.Recorder = metrics.NoopRecorder{}
	}
	return &Server{
		provider:           provider,
		opts:               opts,
		errorAdapter:       derrors.NewHTTPErrorAdapter(slog.Default()),
		monitoringHandlers: handlers.NewMonitoringHandlers(provider),
		navHandlers:        handlers.NewNavHandlers(provider),
		mchain:             smw.Chain(slog.Default(), derrors.NewHTTPErrorAdapter(slog.Default())),
	}
}

// Handler returns the full handler tree with middleware applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.monitoringHandlers.HandleHealthCheck)
	mux.HandleFunc("GET /_nav/{file}", s.navHandlers.HandleNav)
	mux.HandleFunc("GET /_redirects.json", s.navHandlers.HandleRedirects)
	mux.Handle("GET /metrics", metrics.HTTPHandler(s.opts.Registry))
	mux.Handle("/", s.staticHandler())
	return s.mchain(smw.Metrics(s.opts.Recorder, routeLabel)(mux))
}

// staticHandler serves StaticDir behind the current redirect table. Without
// a static directory only redirects are answered.
func (s *Server) staticHandler() http.Handler {
	var files http.Handler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.errorAdapter.WriteErrorResponse(w, r, derrors.NotFoundError("page not found").
			WithContext("path", r.URL.Path).
			Build())
	})
	if s.opts.StaticDir != "" {
		files = http.FileServer(http.Dir(s.opts.StaticDir))
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.provider.Redirects().Middleware(files).ServeHTTP(w, r)
	})
}

func routeLabel(r *http.Request) string {
	switch p := r.URL.Path; {
	case p == "/healthz":
		return "healthz"
	case p == "/metrics":
		return "metrics"
	case p == "/_redirects.json":
		return "redirects"
	case strings.HasPrefix(p, "/_nav/"):
		return "nav"
	default:
		return "static"
	}
}

// Start binds the listen address and serves in the background.
func (s *Server) Start(ctx context.Context) error {
	lc := net.ListenConfig{}
	ln, err := lc.Listen(ctx, "tcp", s.opts.Addr)
	if err != nil {
		return derrors.WrapError(err, derrors.CategoryRuntime, fmt.Sprintf("failed to listen on %s", s.opts.Addr)).
			WithContext("addr", s.opts.Addr).
			Build()
	}
	s.listener = ln
	s.httpServer = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("preview server error", logfields.Error(err))
		}
	}()
	slog.Info("Preview server started", slog.String("addr", ln.Addr().String()), logfields.Path(s.opts.StaticDir))
	return nil
}

// Addr is the bound address after Start.
func (s *Server) Addr() string {
	if s.listener == nil {
		return s.opts.Addr
	}
	return s.listener.Addr().String()
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("preview server shutdown: %w", err)
	}
	slog.Info("Preview server stopped")
	return nil
}
