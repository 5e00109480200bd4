// Package server exposes comparisons of two configured databases over HTTP.
package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	schemadiff "github.com/perangel/schema-diff"
	"github.com/perangel/schema-diff/internal/render"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const (
	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 30 * time.Second
)

// Option is a Server option function
type Option func(*Server)

// Labels is an option for setting the default labels of the two databases.
func Labels(labelA, labelB string) Option {
	return func(s *Server) {
		s.labelA = labelA
		s.labelB = labelB
	}
}

// WithLogger is an option for setting the logger.
func WithLogger(logger *logrus.Logger) Option {
	return func(s *Server) {
		s.logger = logger.WithField("component", "server")
	}
}

// WithRegistry is an option for setting the registry metrics are
// registered with and served from.
func WithRegistry(reg *prometheus.Registry) Option {
	return func(s *Server) {
		s.registry = reg
	}
}

// Server answers comparison requests for a fixed pair of databases.
type Server struct {
	comparer *schemadiff.Comparer
	a, b     schemadiff.Source
	labelA   string
	labelB   string
	logger   *logrus.Entry
	registry *prometheus.Registry
	metrics  *metrics
	router   *httprouter.Router
}

// New returns a Server comparing a and b with comparer.
func New(comparer *schemadiff.Comparer, a, b schemadiff.Source, opts ...Option) *Server {
	s := &Server{
		comparer: comparer,
		a:        a,
		b:        b,
		labelA:   "A",
		labelB:   "B",
		logger:   logrus.WithField("component", "server"),
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.registry == nil {
		s.registry = prometheus.NewRegistry()
	}
	s.metrics = newMetrics(s.registry)

	s.router = httprouter.New()
	s.router.GET("/healthz", s.healthz)
	s.router.GET("/api/compare", s.compare)
	s.router.Handler(http.MethodGet, "/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))

	return s
}

// Handler returns the HTTP handler of the server.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves on addr until ctx is done, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.WithField("addr", addr).Info("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		s.logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func (s *Server) healthz(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) compare(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	q := r.URL.Query()

	format := q.Get("format")
	if format == "" {
		format = render.FormatJSON
	}
	renderer, err := render.ForFormat(format)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if t, ok := renderer.(*render.Terminal); ok {
		t.NoColor = true
	}

	labelA := valueOr(q.Get("labelA"), s.labelA)
	labelB := valueOr(q.Get("labelB"), s.labelB)

	start := time.Now()
	report, err := s.comparer.Compare(r.Context(), s.a, s.b, labelA, labelB)
	s.metrics.observe(report, err, time.Since(start))
	if err != nil {
		s.logger.WithError(err).Error("comparison failed")
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	var buf bytes.Buffer
	if err := renderer.Render(&buf, report); err != nil {
		s.logger.WithError(err).Error("unable to render report")
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	w.Header().Set("Content-Type", renderer.ContentType())
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func valueOr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
