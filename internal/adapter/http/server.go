// Package http serves the dashboard page, the figure APIs and the
// health, readiness and metrics endpoints.
package http

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"time"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/couchcryptid/streetlight-dashboard/internal/adapter/echarts"
	"github.com/couchcryptid/streetlight-dashboard/internal/adapter/geojson"
	"github.com/couchcryptid/streetlight-dashboard/internal/adapter/plot"
	"github.com/couchcryptid/streetlight-dashboard/internal/domain"
	"github.com/couchcryptid/streetlight-dashboard/internal/observability"
	"github.com/couchcryptid/streetlight-dashboard/internal/pipeline"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SessionCookie names the cookie holding the browser's session id.
const SessionCookie = "dashboard_session"

// Server exposes the dashboard over HTTP.
type Server struct {
	httpServer *http.Server
	dashboard  *pipeline.Dashboard
	sessions   *pipeline.Sessions
	page       *echarts.Renderer
	logger     *slog.Logger
	metrics    *observability.Metrics
}

// NewServer creates an HTTP server with the page, API, health, readiness and
// metrics routes.
func NewServer(addr string, d *pipeline.Dashboard, sessions *pipeline.Sessions, page *echarts.Renderer, logger *slog.Logger, metrics *observability.Metrics) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		dashboard: d,
		sessions:  sessions,
		page:      page,
		logger:    logger,
		metrics:   metrics,
	}

	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /api/years", s.handleYears)
	mux.HandleFunc("GET /api/figures", s.handleFigures)
	mux.HandleFunc("GET /api/map.geojson", s.handleGeoJSON)
	mux.HandleFunc("GET /charts/bar.png", s.handleBarPNG)
	mux.HandleFunc("GET /healthz", sharedobs.LivenessHandler())
	mux.HandleFunc("GET /readyz", sharedobs.ReadinessHandler(d))
	mux.Handle("GET /metrics", promhttp.Handler())

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

// handleIndex renders the page for the caller's session. A "year" query is a
// selection change; without one the session keeps its displayed frame.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	id := s.sessionID(w, r)
	b, created := s.sessions.GetOrCreate(r.Context(), id)
	if created {
		s.logger.Debug("session started", "session", id)
	}

	frame := b.Current()
	if years, ok := r.URL.Query()["year"]; ok {
		frame = b.Select(r.Context(), domain.ParseSelection(years))
	}

	var buf bytes.Buffer
	err := s.page.Render(&buf, echarts.Page{
		Years:     s.dashboard.Years(),
		Selection: frame.Selection,
		Bar:       frame.Bar,
		Map:       frame.Map,
	})
	if err != nil {
		s.fail(w, "html", "render page failed", err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
	s.metrics.Exports.WithLabelValues("html", "success").Inc()
}

func (s *Server) handleYears(w http.ResponseWriter, _ *http.Request) {
	sharedobs.WriteJSON(w, http.StatusOK, map[string]any{
		"years":   s.dashboard.Years(),
		"default": s.dashboard.DefaultSelection(),
	})
}

func (s *Server) handleFigures(w http.ResponseWriter, r *http.Request) {
	frame := s.dashboard.Render(r.Context(), s.selection(r))
	s.metrics.Exports.WithLabelValues("json", "success").Inc()
	sharedobs.WriteJSON(w, http.StatusOK, frame)
}

func (s *Server) handleGeoJSON(w http.ResponseWriter, r *http.Request) {
	frame := s.dashboard.Render(r.Context(), s.selection(r))

	data, err := geojson.Encode(frame.Map)
	if err != nil {
		s.fail(w, "geojson", "encode geojson failed", err)
		return
	}

	s.metrics.Exports.WithLabelValues("geojson", "success").Inc()
	w.Header().Set("Content-Type", "application/geo+json")
	_, _ = w.Write(data)
}

func (s *Server) handleBarPNG(w http.ResponseWriter, r *http.Request) {
	frame := s.dashboard.Render(r.Context(), s.selection(r))

	var buf bytes.Buffer
	if err := plot.WriteBarPNG(&buf, frame.Bar, plot.DefaultWidth, plot.DefaultHeight); err != nil {
		s.fail(w, "png", "render png failed", err)
		return
	}

	s.metrics.Exports.WithLabelValues("png", "success").Inc()
	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(buf.Bytes())
}

// selection reads the "year" query. Without one it falls back to the
// caller's session selection, then to the dataset default.
func (s *Server) selection(r *http.Request) domain.Selection {
	if years, ok := r.URL.Query()["year"]; ok {
		return domain.ParseSelection(years)
	}
	if c, err := r.Cookie(SessionCookie); err == nil {
		if b, ok := s.sessions.Get(c.Value); ok {
			return b.Selection()
		}
	}
	return nil
}

// sessionID returns the caller's session id, issuing a new cookie when the
// request has none.
func (s *Server) sessionID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(SessionCookie); err == nil && c.Value != "" {
		return c.Value
	}
	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}

func (s *Server) fail(w http.ResponseWriter, format, msg string, err error) {
	s.logger.Error(msg, "error", err)
	s.metrics.Exports.WithLabelValues(format, "error").Inc()
	sharedobs.WriteJSON(w, http.StatusInternalServerError, map[string]string{"error": msg})
}
