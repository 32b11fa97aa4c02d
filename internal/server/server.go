// Package server exposes form definitions over HTTP: each definition is
// rendered blank or populated from the query, and re-rendered bound to
// posted values.
package server

import (
	"context"
	"fmt"
	"html"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/text/language"

	"github.com/goliatone/go-formbuilder/pkg/definition"
	"github.com/goliatone/go-formbuilder/pkg/render"
	"github.com/goliatone/go-formbuilder/pkg/values"
)

// RequestIDHeader carries the per-request id.
const RequestIDHeader = "X-Request-ID"

const maxMultipartMemory = 8 << 20

type ctxKey struct{}

// RequestID returns the id assigned to the request carrying ctx.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

type metrics struct {
	renders  *prometheus.CounterVec
	duration *prometheus.HistogramVec
	rejected *prometheus.CounterVec
}

func newMetrics(reg prometheus.Registerer) *metrics {
	factory := promauto.With(reg)
	return &metrics{
		renders: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "formbuilder",
			Subsystem: "http",
			Name:      "renders_total",
			Help:      "Total number of form renders by form, method and status",
		}, []string{"form", "method", "status"}),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "formbuilder",
			Subsystem: "http",
			Name:      "render_duration_seconds",
			Help:      "Duration of form renders in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"form"}),
		rejected: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "formbuilder",
			Subsystem: "http",
			Name:      "honeypot_rejections_total",
			Help:      "Total number of submissions rejected by the honeypot",
		}, []string{"form"}),
	}
}

// Server routes form requests. It is safe for concurrent use.
type Server struct {
	router   *mux.Router
	defs     map[string]*definition.Definition
	renderer *render.Renderer
	logger   *zap.Logger
	metrics  *metrics
	gatherer prometheus.Gatherer
}

// New wires the routes. A nil registry gets a private one so several servers
// can coexist in one process.
func New(defs map[string]*definition.Definition, renderer *render.Renderer, logger *zap.Logger, reg *prometheus.Registry) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	if renderer == nil {
		renderer = render.New(render.WithLogger(logger))
	}
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	if defs == nil {
		defs = map[string]*definition.Definition{}
	}

	s := &Server{
		router:   mux.NewRouter(),
		defs:     defs,
		renderer: renderer,
		logger:   logger,
		metrics:  newMetrics(reg),
		gatherer: reg,
	}

	s.router.Use(s.requestID, s.accessLog)
	s.router.HandleFunc("/healthz", s.healthz).Methods(http.MethodGet)
	s.router.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{})).Methods(http.MethodGet)
	s.router.HandleFunc("/forms", s.index).Methods(http.MethodGet)
	s.router.HandleFunc("/forms/{name}", s.renderForm).Methods(http.MethodGet, http.MethodPost)
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) healthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Server) index(w http.ResponseWriter, _ *http.Request) {
	names := make([]string, 0, len(s.defs))
	for name := range s.defs {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString("<ul>")
	for _, name := range names {
		fmt.Fprintf(&b, `<li><a href="/forms/%s">%s</a></li>`, html.EscapeString(name), html.EscapeString(name))
	}
	b.WriteString("</ul>")
	writePage(w, http.StatusOK, "Forms", b.String())
}

// unknownForm labels requests for names that are not loaded, keeping the
// form label bounded to the loaded definitions.
const unknownForm = "unknown"

func (s *Server) renderForm(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	logger := s.logger.With(zap.String("request_id", RequestID(r.Context())), zap.String("form", name))

	def, ok := s.defs[name]
	if !ok {
		s.metrics.renders.WithLabelValues(unknownForm, r.Method, "not_found").Inc()
		http.NotFound(w, r)
		return
	}

	src := values.FromRequest(r.URL.Query())
	if r.Method == http.MethodPost {
		if err := parseBody(r); err != nil {
			logger.Warn("malformed submission", zap.Error(err))
			s.metrics.renders.WithLabelValues(name, r.Method, "bad_request").Inc()
			http.Error(w, "malformed submission", http.StatusBadRequest)
			return
		}
		if r.PostForm.Get(render.HoneypotName) != "" {
			logger.Info("submission rejected by honeypot")
			s.metrics.rejected.WithLabelValues(name).Inc()
			s.metrics.renders.WithLabelValues(name, r.Method, "rejected").Inc()
			http.Error(w, "submission rejected", http.StatusUnprocessableEntity)
			return
		}
		src = values.FromRequest(r.PostForm)
	}

	start := time.Now()
	result, err := s.renderer.RenderForm(r.Context(), def.NewForm(), render.RenderOptions{
		Values: src,
		Locale: locale(r),
	})
	s.metrics.duration.WithLabelValues(name).Observe(time.Since(start).Seconds())
	if err != nil {
		logger.Error("render failed", zap.Error(err))
		s.metrics.renders.WithLabelValues(name, r.Method, "error").Inc()
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}

	s.metrics.renders.WithLabelValues(name, r.Method, "ok").Inc()
	writePage(w, http.StatusOK, name, result.HTML)
}

func parseBody(r *http.Request) error {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		return r.ParseMultipartForm(maxMultipartMemory)
	}
	return r.ParseForm()
}

// locale prefers an explicit ?locale= over Accept-Language.
func locale(r *http.Request) string {
	if l := r.URL.Query().Get("locale"); l != "" {
		return l
	}
	tags, _, err := language.ParseAcceptLanguage(r.Header.Get("Accept-Language"))
	if err != nil || len(tags) == 0 {
		return ""
	}
	base, _ := tags[0].Base()
	return base.String()
}

func writePage(w http.ResponseWriter, status int, title, body string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	fmt.Fprintf(w, "<!DOCTYPE html>\n<html><head><meta charset=\"utf-8\"><title>%s</title></head><body>\n%s\n</body></html>\n",
		html.EscapeString(title), body)
}
