package chi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/wordex/internal/domain"
	"github.com/kailas-cloud/wordex/internal/domain/option"
	healthuc "github.com/kailas-cloud/wordex/internal/usecase/health"
	lookupuc "github.com/kailas-cloud/wordex/internal/usecase/lookup"
)

// maxBodyBytes caps query request bodies.
const maxBodyBytes = 64 << 10

// Error codes returned in ErrorResponse.
const (
	CodeBadRequest   = "bad_request"
	CodeUnauthorized = "unauthorized"
	CodeInternal     = "internal_error"
)

var errInvalidRequest = errors.New("invalid request")

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// QueryRequest is the body of POST /v1/query.
type QueryRequest struct {
	Query    string         `json:"query"`
	Keyword  string         `json:"keyword,omitempty"`
	Settings *QuerySettings `json:"settings,omitempty"`
}

// QuerySettings is the settings bag accepted over HTTP. The word list
// location is server configuration and cannot be set by clients.
type QuerySettings struct {
	APIKey       string `json:"api_key,omitempty"`
	Results      string `json:"results,omitempty"`
	UseCanonical *bool  `json:"use_canonical,omitempty"`
	DebugMode    *bool  `json:"debug_mode,omitempty"`
}

// Overrides converts the bag for the lookup service.
func (q *QuerySettings) Overrides() domain.Overrides {
	if q == nil {
		return domain.Overrides{}
	}
	return domain.Overrides{
		APIKey:       q.APIKey,
		Results:      q.Results,
		UseCanonical: q.UseCanonical,
		DebugMode:    q.DebugMode,
	}
}

// QueryResponse wraps the rendered options.
type QueryResponse struct {
	Result []option.Wire `json:"result"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// errorHandler tries to handle an error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server serves lookups over HTTP.
type Server struct {
	lookup        *lookupuc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(lookup *lookupuc.Service, health *healthuc.Service, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		lookup: lookup,
		health: health,
		logger: logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(errInvalidRequest, http.StatusBadRequest, CodeBadRequest),
	}
	return s
}

// Routes registers the API on r.
func (s *Server) Routes(r chi.Router) {
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/query", s.Query)
		r.Get("/query", s.QueryString)
		r.Get("/query/stream", s.QueryStream)
	})
}

// Query handles POST /v1/query.
func (s *Server) Query(w http.ResponseWriter, r *http.Request) {
	var req QueryRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		s.handleError(w, r, fmt.Errorf("%w: %w", errInvalidRequest, err))
		return
	}

	inv := lookupuc.Invocation{
		Query:    req.Query,
		Keyword:  req.Keyword,
		Settings: req.Settings.Overrides(),
	}

	opts := s.lookup.Query(r.Context(), inv)
	writeJSON(w, http.StatusOK, QueryResponse{Result: option.ToWireList(opts)})
}

// QueryString handles GET /v1/query?q=word!modifier.
func (s *Server) QueryString(w http.ResponseWriter, r *http.Request) {
	inv, ok := s.invocationFromQuery(w, r)
	if !ok {
		return
	}
	opts := s.lookup.Query(r.Context(), inv)
	writeJSON(w, http.StatusOK, QueryResponse{Result: option.ToWireList(opts)})
}

// QueryStream handles GET /v1/query/stream. Options are written as
// newline-delimited JSON as soon as they are produced.
func (s *Server) QueryStream(w http.ResponseWriter, r *http.Request) {
	inv, ok := s.invocationFromQuery(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "application/x-ndjson")
	w.WriteHeader(http.StatusOK)
	flusher, _ := w.(http.Flusher)
	enc := json.NewEncoder(w)

	for opt := range s.lookup.Stream(r.Context(), inv) {
		if err := enc.Encode(opt.ToWire()); err != nil {
			s.logger.Debug("Stream client went away", zap.Error(err))
			return
		}
		if flusher != nil {
			flusher.Flush()
		}
	}
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status == healthuc.Unhealthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, HealthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func (s *Server) invocationFromQuery(w http.ResponseWriter, r *http.Request) (lookupuc.Invocation, bool) {
	values := r.URL.Query()
	if !values.Has("q") {
		s.handleError(w, r, fmt.Errorf("%w: missing q parameter", errInvalidRequest))
		return lookupuc.Invocation{}, false
	}
	return lookupuc.Invocation{
		Query:   values.Get("q"),
		Keyword: values.Get("keyword"),
	}, true
}

func (s *Server) handleError(w http.ResponseWriter, r *http.Request, err error) {
	for _, h := range s.errorHandlers {
		if h(w, err, err.Error()) {
			return
		}
	}
	s.logger.Error("Unhandled request error",
		zap.String("path", r.URL.Path),
		zap.Error(err),
	)
	writeError(w, http.StatusInternalServerError, CodeInternal, "internal error")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code string) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}
