package httpadapter

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/PabloGalante/nuance-coach/internal/domain"
	"github.com/PabloGalante/nuance-coach/internal/observability"
)

// Server exposes a domain.Analyzer over the backend's JSON contract.
type Server struct {
	analyzer domain.Analyzer
}

type Options struct {
	CORSOrigins []string
	RateLimit   float64 // requests per second per client, 0 disables
	RateBurst   int
	Registry    *prometheus.Registry // nil creates a private one
}

func NewServer(analyzer domain.Analyzer, opts Options) http.Handler {
	s := &Server{analyzer: analyzer}

	reg := opts.Registry
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	metrics := observability.NewMetrics(reg)

	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleRoot)
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc(pathInterpret, s.handleInterpret)
	mux.HandleFunc(pathReplies, s.handleReplies)
	mux.HandleFunc(pathStyle, s.handleStyle)
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	limiter := newLimiterPool(opts.RateLimit, opts.RateBurst)

	return chainMiddlewares(mux,
		withRateLimit(limiter, metrics),
		withCORS(opts.CORSOrigins),
		withMetrics(metrics),
		withLogging,
		withRequestID,
	)
}

const (
	pathInterpret = "/api/interpret"
	pathReplies   = "/api/replies"
	pathStyle     = "/api/style"
)

// ─────────────────────────────────────────────
// DTOs (request/response)
// ─────────────────────────────────────────────

type interpretRequest struct {
	Text string `json:"text"`
}

type repliesRequest struct {
	Text string `json:"text"`
	Goal string `json:"goal"`
}

type styleRequest struct {
	Preferences []string `json:"preferences"`
}

type statusResponse struct {
	Status string `json:"status"`
}

type errorResponse struct {
	Detail string `json:"detail"`
}

// ─────────────────────────────────────────────
// Concrete handlers
// ─────────────────────────────────────────────

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		notFound(w)
		return
	}
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	writeJSON(w, http.StatusOK, statusResponse{Status: "API is running"})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	writeJSON(w, http.StatusOK, statusResponse{Status: "ok"})
}

func (s *Server) handleInterpret(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	var req interpretRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	text, err := requiredText("text", req.Text, domain.MaxMessageLength)
	if err != nil {
		unprocessable(w, err.Error())
		return
	}

	res, err := s.analyzer.Interpret(r.Context(), text)
	if err != nil {
		internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleReplies(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	var req repliesRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	text, err := requiredText("text", req.Text, domain.MaxMessageLength)
	if err != nil {
		unprocessable(w, err.Error())
		return
	}
	goal, err := requiredText("goal", req.Goal, domain.MaxGoalLength)
	if err != nil {
		unprocessable(w, err.Error())
		return
	}

	res, err := s.analyzer.Replies(r.Context(), text, goal)
	if err != nil {
		internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleStyle(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	var req styleRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if len(req.Preferences) == 0 {
		unprocessable(w, "preferences must contain at least 1 item")
		return
	}
	if len(req.Preferences) > domain.MaxPreferences {
		unprocessable(w, fmt.Sprintf("preferences must contain at most %d items", domain.MaxPreferences))
		return
	}

	res, err := s.analyzer.Style(r.Context(), req.Preferences)
	if err != nil {
		internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// ─────────────────────────────────────────────
// Validation Helpers
// ─────────────────────────────────────────────

// requiredText trims v and checks it holds 1..limit characters.
func requiredText(field, v string, limit int) (string, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return "", fmt.Errorf("%s is required", field)
	}
	if utf8.RuneCountInString(v) > limit {
		return "", fmt.Errorf("%s must be at most %d characters", field, limit)
	}
	return v, nil
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		unprocessable(w, "invalid JSON body")
		return false
	}
	return true
}

// ─────────────────────────────────────────────
// HTTP Helpers
// ─────────────────────────────────────────────

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func unprocessable(w http.ResponseWriter, detail string) {
	writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Detail: detail})
}

func internalError(w http.ResponseWriter, r *http.Request, err error) {
	log := observability.LoggerFromContext(r.Context())
	if r.Context().Err() != nil {
		log.Info("client went away", "path", r.URL.Path)
		return
	}
	log.Error("analyzer failed", "path", r.URL.Path, "error", err)
	writeJSON(w, http.StatusInternalServerError, errorResponse{Detail: "internal server error"})
}

func methodNotAllowed(w http.ResponseWriter) {
	writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Detail: "Method Not Allowed"})
}

func notFound(w http.ResponseWriter) {
	writeJSON(w, http.StatusNotFound, errorResponse{Detail: "Not Found"})
}
