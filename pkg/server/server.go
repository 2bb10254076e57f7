package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/matzehuels/tidytree/pkg/buildinfo"
	tterrors "github.com/matzehuels/tidytree/pkg/errors"
	"github.com/matzehuels/tidytree/pkg/graph"
	"github.com/matzehuels/tidytree/pkg/observability"
	"github.com/matzehuels/tidytree/pkg/pipeline"
)

const (
	// DefaultAddr is the listen address used when none is configured.
	DefaultAddr = ":8080"

	// DefaultTimeout bounds the handling time of a single request.
	DefaultTimeout = 30 * time.Second

	// DefaultMaxBodyBytes bounds request bodies.
	DefaultMaxBodyBytes = 8 << 20

	// LayoutIDHeader carries the ID of a computed layout.
	LayoutIDHeader = "X-Layout-ID"
)

// Config configures the HTTP server. Zero fields take the defaults.
type Config struct {
	Addr         string
	Timeout      time.Duration
	MaxBodyBytes int64
}

func (c *Config) setDefaults() {
	if c.Addr == "" {
		c.Addr = DefaultAddr
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.MaxBodyBytes <= 0 {
		c.MaxBodyBytes = DefaultMaxBodyBytes
	}
}

// Server serves the layout API.
type Server struct {
	cfg    Config
	runner *pipeline.Runner
	logger *log.Logger
	router chi.Router
}

// New creates a server backed by runner. A nil logger uses the runner's.
func New(runner *pipeline.Runner, logger *log.Logger, cfg Config) *Server {
	cfg.setDefaults()
	if logger == nil {
		logger = runner.Logger
	}
	s := &Server{
		cfg:    cfg,
		runner: runner,
		logger: logger,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(cfg.Timeout))
	r.Use(s.observe)

	r.Get("/healthz", s.health)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/layout", s.layout)
		r.Post("/render", s.render)
	})
	s.router = r
	return s
}

// Handler returns the server's HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe serves on the configured address until ctx is cancelled,
// then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.cfg.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", ln.Addr().String())
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.Timeout)
		defer cancel()
		s.logger.Info("shutting down")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	}
}

// =============================================================================
// Middleware
// =============================================================================

func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		hooks := observability.HTTP()
		hooks.OnRequest(r.Context(), r.Method, r.URL.Path)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		duration := time.Since(start)
		hooks.OnResponse(r.Context(), r.Method, r.URL.Path, status, duration)
		s.logger.Debug("request",
			"id", middleware.GetReqID(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
			"status", status,
			"duration", duration)
	})
}

// =============================================================================
// Handlers
// =============================================================================

type layoutRequest struct {
	Graph   *graph.Graph     `json:"graph"`
	Options pipeline.Options `json:"options"`
}

type renderRequest struct {
	Graph   *graph.Graph     `json:"graph,omitempty"`
	Layout  *graph.Layout    `json:"layout,omitempty"`
	Options pipeline.Options `json:"options"`
	Format  string           `json:"format,omitempty"`
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	s.responseJSON(w, r, http.StatusOK, map[string]any{
		"status": "ok",
		"build":  buildinfo.Get(),
	})
}

func (s *Server) layout(w http.ResponseWriter, r *http.Request) {
	var req layoutRequest
	if err := s.decode(w, r, &req); err != nil {
		s.responseError(w, r, err)
		return
	}
	if req.Graph == nil {
		s.responseError(w, r, tterrors.New(tterrors.ErrCodeInvalidInput, "graph is required"))
		return
	}

	l, err := s.computeLayout(r.Context(), *req.Graph, req.Options)
	if err != nil {
		s.responseError(w, r, err)
		return
	}
	w.Header().Set(LayoutIDHeader, l.ID)
	s.responseJSON(w, r, http.StatusOK, l)
}

func (s *Server) render(w http.ResponseWriter, r *http.Request) {
	var req renderRequest
	if err := s.decode(w, r, &req); err != nil {
		s.responseError(w, r, err)
		return
	}

	format := req.Format
	if format == "" {
		format = pipeline.FormatSVG
	}
	if err := pipeline.ValidateFormat(format); err != nil {
		s.responseError(w, r, err)
		return
	}

	var l graph.Layout
	switch {
	case req.Layout != nil:
		if len(req.Layout.Nodes) == 0 {
			s.responseError(w, r, tterrors.Wrap(tterrors.ErrCodeInvalidInput, graph.ErrEmptyLayout, "layout"))
			return
		}
		l = *req.Layout
		if l.ID == "" {
			l.ID = uuid.NewString()
		}
	case req.Graph != nil:
		var err error
		if l, err = s.computeLayout(r.Context(), *req.Graph, req.Options); err != nil {
			s.responseError(w, r, err)
			return
		}
	default:
		s.responseError(w, r, tterrors.New(tterrors.ErrCodeInvalidInput, "graph or layout is required"))
		return
	}

	opts := req.Options
	opts.Formats = []string{format}
	artifacts, err := s.runner.Render(r.Context(), l, opts)
	if err != nil {
		s.responseError(w, r, err)
		return
	}

	w.Header().Set(LayoutIDHeader, l.ID)
	w.Header().Set("Content-Type", contentTypes[format])
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(artifacts[format])
}

func (s *Server) computeLayout(ctx context.Context, gj graph.Graph, opts pipeline.Options) (graph.Layout, error) {
	g, err := graph.ToGraph(gj)
	if err != nil {
		return graph.Layout{}, tterrors.Wrap(tterrors.ErrCodeInvalidGraph, err, "invalid graph")
	}
	l, err := s.runner.GenerateLayout(ctx, g, opts)
	if err != nil {
		return graph.Layout{}, err
	}
	l.ID = uuid.NewString()
	return l, nil
}

// =============================================================================
// Encoding
// =============================================================================

var contentTypes = map[string]string{
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatPDF:  "application/pdf",
	pipeline.FormatJSON: "application/json; charset=utf-8",
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) error {
	body := http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return tterrors.Wrap(tterrors.ErrCodeInvalidInput, err, "decode request")
	}
	return nil
}

// statusFor maps an error to an HTTP status. Deadline errors without a code
// come from the request timeout.
func statusFor(err error) int {
	if tterrors.GetCode(err) == "" && errors.Is(err, context.DeadlineExceeded) {
		return http.StatusGatewayTimeout
	}
	return tterrors.GetCode(err).Status()
}

func (s *Server) responseError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	code := tterrors.GetCode(err)
	if code == "" {
		code = tterrors.ErrCodeInternal
	}
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "err", err)
	} else {
		s.logger.Debug("request rejected", "method", r.Method, "path", r.URL.Path, "err", err)
	}
	s.responseJSON(w, r, status, map[string]any{
		"error": tterrors.UserMessage(err),
		"code":  code,
	})
}

func (s *Server) responseJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	data, err := json.Marshal(v)
	if err != nil {
		s.logger.Error("encode response", "method", r.Method, "path", r.URL.Path, "err", err)
		status = http.StatusInternalServerError
		data = []byte(`{"error":"encode response","code":"INTERNAL_ERROR"}`)
	}
	w.WriteHeader(status)
	_, _ = w.Write(data)
}
