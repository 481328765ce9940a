// Package server exposes a palette engine over HTTP.
package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"palette/internal/domain"
	"palette/internal/engine"
)

// Server serializes HTTP requests onto a single-threaded engine
type Server struct {
	mu     sync.Mutex
	engine *engine.Engine
	logger *zap.Logger
}

// New wraps e. The server owns e from now on; callers must not touch it directly.
func New(e *engine.Engine, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{engine: e, logger: logger}
}

// Options configures the router
type Options struct {
	// Middleware wraps every route, e.g. request metrics
	Middleware []func(http.Handler) http.Handler
	// Gatherer, when set, is served on /metrics
	Gatherer prometheus.Gatherer
}

// Routes builds the chi router
func (s *Server) Routes(opts Options) http.Handler {
	r := chi.NewRouter()
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.Recoverer)
	for _, mw := range opts.Middleware {
		r.Use(mw)
	}

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/snapshot", s.getSnapshot)
	r.Put("/query", s.putQuery)
	r.Post("/navigate/{kind}", s.navigate)
	r.Post("/select", s.selectValue)
	r.Post("/activate", s.activate)
	if opts.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{}))
	}
	return r
}

// apply runs fn against the engine and flushes, returning the published snapshot
func (s *Server) apply(fn func(e *engine.Engine)) domain.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.engine)
	s.engine.Flush()
	return s.engine.Snapshot()
}

func (s *Server) getSnapshot(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.apply(func(*engine.Engine) {}))
}

type queryRequest struct {
	Query string `json:"query"`
}

func (s *Server) putQuery(w http.ResponseWriter, r *http.Request) {
	var req queryRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, s.apply(func(e *engine.Engine) { e.SetQuery(req.Query) }))
}

func (s *Server) navigate(w http.ResponseWriter, r *http.Request) {
	kind, ok := domain.ParseNavigateKind(chi.URLParam(r, "kind"))
	if !ok {
		writeError(w, http.StatusBadRequest, "unknown navigation kind")
		return
	}
	writeJSON(w, http.StatusOK, s.apply(func(e *engine.Engine) { e.Navigate(kind) }))
}

type selectRequest struct {
	Value string `json:"value"`
}

func (s *Server) selectValue(w http.ResponseWriter, r *http.Request) {
	var req selectRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, s.apply(func(e *engine.Engine) { e.Select(req.Value, false) }))
}

type activateResponse struct {
	ItemID string `json:"itemId"`
	Value  string `json:"value"`
}

func (s *Server) activate(w http.ResponseWriter, _ *http.Request) {
	var (
		ev domain.ItemActivatedEvent
		ok bool
	)
	s.apply(func(e *engine.Engine) { ev, ok = e.Activate() })
	if !ok {
		writeError(w, http.StatusConflict, "nothing selected")
		return
	}
	s.logger.Info("Item activated", zap.String("item", ev.ItemID), zap.String("value", ev.Value))
	writeJSON(w, http.StatusOK, activateResponse{ItemID: ev.ItemID, Value: ev.Value})
}

func decode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errors.New("invalid request body")
	}
	return nil
}

type errorResponse struct {
	Message string `json:"message"`
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Message: message})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
