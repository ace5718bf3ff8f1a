// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package web serves the interactive research form: one text input, a
// Search button, and a page showing the status, the answer, and the
// numbered source list.
package web

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/pdiddy/research-assistant/internal/research"
)

//go:embed templates/index.html
var templateFS embed.FS

var pageTmpl = template.Must(template.ParseFS(templateFS, "templates/index.html"))

// Messages shown on the form.
const (
	msgEmptyQuery = "Enter a research question."
	msgNoInfo     = "No information found. Try a different query."
)

// shutdownTimeout bounds how long in-flight queries may run after a
// shutdown signal.
const shutdownTimeout = 30 * time.Second

// Runner answers one query. *research.Pipeline implements it.
type Runner interface {
	Run(ctx context.Context, query string, progress research.Progress) (*research.Report, error)
}

// Server renders the form and runs queries through a Runner.
type Server struct {
	runner  Runner
	metrics prometheus.Gatherer
	log     *zap.Logger
}

// New returns a Server. metrics may be nil, in which case /metrics is not
// mounted.
func New(runner Runner, metrics prometheus.Gatherer, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{runner: runner, metrics: metrics, log: log}
}

// Handler returns the chi router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleIndex)
	r.Post("/ask", s.handleAsk)
	r.Get("/ask", s.handleAsk)
	r.Get("/api/ask", s.handleAPIAsk)
	r.Get("/healthz", s.handleHealth)
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.metrics, promhttp.HandlerOpts{}))
	}
	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully. It returns nil after a clean shutdown.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve is ListenAndServe on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	httpServer := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("form server starting", zap.String("addr", ln.Addr().String()))
		errCh <- httpServer.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.log.Info("shutdown signal received")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return nil
}

// page is the view model for index.html.
type page struct {
	Query   string
	Status  string
	Warning string
	Error   string
	Answer  string
	Sources []sourceLink
}

type sourceLink struct {
	Number   int
	Provider string
	Title    string
	URL      string
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	s.render(w, http.StatusOK, page{})
}

func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.FormValue("q"))
	if query == "" {
		s.render(w, http.StatusBadRequest, page{Error: msgEmptyQuery})
		return
	}

	report, err := s.runner.Run(r.Context(), query, nil)
	p := page{Query: query}
	status := http.StatusOK
	switch {
	case errors.Is(err, research.ErrNoInformation):
		p.Warning = msgNoInfo
	case err != nil:
		status = http.StatusBadGateway
		p.Error = fmt.Sprintf("Could not summarize the sources: %v", err)
		if report != nil {
			p.Status = fetchedStatus(len(report.Documents))
			p.Sources = sourceLinks(report)
		}
	default:
		p.Status = fetchedStatus(len(report.Documents))
		p.Answer = report.Answer
		p.Sources = sourceLinks(report)
	}
	s.render(w, status, p)
}

// errorResponse is the JSON error body of /api/ask.
type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleAPIAsk(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	report, err := s.runner.Run(r.Context(), query, nil)
	switch {
	case errors.Is(err, research.ErrEmptyQuery):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, research.ErrNoInformation):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	case err != nil:
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: err.Error()})
	default:
		writeJSON(w, http.StatusOK, report)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) render(w http.ResponseWriter, status int, p page) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := pageTmpl.Execute(w, p); err != nil {
		s.log.Error("rendering page", zap.Error(err))
	}
}

// requestLogger logs one line per request with the chi request id.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		defer func() {
			s.log.Info("request",
				zap.String("request_id", middleware.GetReqID(r.Context())),
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("elapsed", time.Since(start)))
		}()
		next.ServeHTTP(ww, r)
	})
}

func fetchedStatus(n int) string {
	return fmt.Sprintf("Fetched %d documents.", n)
}

func sourceLinks(r *research.Report) []sourceLink {
	links := make([]sourceLink, len(r.Documents))
	for i, d := range r.Documents {
		links[i] = sourceLink{Number: i + 1, Provider: d.Provider, Title: d.Title, URL: d.URL}
	}
	return links
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
