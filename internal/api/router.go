// internal/api/router.go
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"survey-insights-go/internal/logger"
	"survey-insights-go/internal/pipeline"
	"survey-insights-go/internal/questions"
	"survey-insights-go/internal/types"
)

// Inserter persists a new response. A nil Inserter makes the API read-only.
type Inserter interface {
	Insert(ctx context.Context, rec types.AnswerRecord) (int64, error)
}

type Server struct {
	pipeline *pipeline.Pipeline
	registry *questions.Registry
	source   pipeline.Source
	inserter Inserter
	log      *logger.Logger
}

func New(p *pipeline.Pipeline, registry *questions.Registry, source pipeline.Source, inserter Inserter, log *logger.Logger) *Server {
	return &Server{
		pipeline: p,
		registry: registry,
		source:   source,
		inserter: inserter,
		log:      log.Component("api"),
	}
}

// Router wires every endpoint behind the no-cache and request logging
// middleware.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(s.withRequestLog, noCache)

	r.HandleFunc("/healthz", s.health).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/dashboard", s.dashboard).Methods(http.MethodGet)
	api.HandleFunc("/dashboard/questions/{id}", s.question).Methods(http.MethodGet)
	api.HandleFunc("/dashboard/report.xlsx", s.workbook).Methods(http.MethodGet)
	api.HandleFunc("/responses", s.listResponses).Methods(http.MethodGet)
	api.HandleFunc("/responses", s.createResponse).Methods(http.MethodPost)

	return r
}

func noCache(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-store")
		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(code int) {
	rec.status = code
	rec.ResponseWriter.WriteHeader(code)
}

func (s *Server) withRequestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// pin the id so every log line and the response agree
		id := logger.RequestID(r)
		r.Header.Set(logger.RequestIDHeader, id)
		w.Header().Set(logger.RequestIDHeader, id)

		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		s.log.WithRequest(r).
			WithField("status", rec.status).
			WithField("duration_ms", time.Since(start).Milliseconds()).
			Info("request served")
	})
}
