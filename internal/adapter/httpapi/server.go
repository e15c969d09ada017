// Package httpapi is the front door: it authenticates the shared secret,
// validates the target URL, and hands the session off to the resolution loop
// running in the background.
package httpapi

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httplog"
	"github.com/google/uuid"

	"quiz-solver/internal/application/port/input"
	"quiz-solver/internal/application/port/output"
	"quiz-solver/internal/application/service"
	"quiz-solver/internal/domain/entity"
	"quiz-solver/internal/usecase/submitter"
)

// watchdogGrace pads the background context past the session deadline so one
// in-flight call can overrun the advisory budget without being cut mid-hop.
const watchdogGrace = 15 * time.Second

type Server struct {
	solver   input.QuizSolver
	registry *service.SessionRegistry
	logger   output.LoggerPort
	secret   string
	budget   time.Duration
}

func NewServer(solver input.QuizSolver, registry *service.SessionRegistry, logger output.LoggerPort, secret string, budget time.Duration) *Server {
	return &Server{
		solver:   solver,
		registry: registry,
		logger:   logger,
		secret:   secret,
		budget:   budget,
	}
}

func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(httplog.RequestLogger(httplog.NewLogger("quiz-solver", httplog.Options{Concise: true})))

	r.Post("/solve", s.handleSolve)
	r.Get("/tasks/{id}", s.handleTaskStatus)
	r.Get("/health", s.handleHealth)
	return r
}

type solveRequestBody struct {
	Email  string `json:"email"`
	Secret string `json:"secret"`
	URL    string `json:"url"`
}

func (s *Server) handleSolve(w http.ResponseWriter, r *http.Request) {
	var body solveRequestBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid JSON body"})
		return
	}
	if body.Email == "" || body.Secret == "" || body.URL == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "missing required fields: email, secret, url"})
		return
	}

	if subtle.ConstantTimeCompare([]byte(body.Secret), []byte(s.secret)) != 1 {
		s.logger.Warn("Invalid secret provided", "email", body.Email)
		writeJSON(w, http.StatusForbidden, map[string]any{"error": "invalid secret"})
		return
	}

	if err := submitter.ValidateURL(body.URL); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "url must be http or https"})
		return
	}

	sessionID := uuid.NewString()
	deadline := time.Now().Add(s.budget)
	s.registry.Start(sessionID)

	go s.runSession(entity.SolveRequest{
		SessionID: sessionID,
		Email:     body.Email,
		Secret:    body.Secret,
		URL:       body.URL,
		Deadline:  deadline,
	})

	s.logger.Info("Session scheduled", "session", sessionID, "email", body.Email, "url", body.URL)
	writeJSON(w, http.StatusOK, map[string]any{"status": "accepted", "task_id": sessionID})
}

func (s *Server) runSession(req entity.SolveRequest) {
	ctx, cancel := context.WithDeadline(context.Background(), req.Deadline.Add(watchdogGrace))
	defer cancel()

	result := s.solver.Solve(ctx, req)
	s.registry.Complete(req.SessionID, result)
}

func (s *Server) handleTaskStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	result, known := s.registry.Lookup(id)
	switch {
	case !known:
		writeJSON(w, http.StatusNotFound, map[string]any{"task_id": id, "status": "unknown"})
	case result == nil:
		writeJSON(w, http.StatusOK, map[string]any{"task_id": id, "status": "running"})
	default:
		writeJSON(w, http.StatusOK, map[string]any{"task_id": id, "result": result})
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
