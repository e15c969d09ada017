package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quiz-solver/internal/application/service"
	"quiz-solver/internal/domain/entity"
	"quiz-solver/internal/infrastructure/logger"
)

type fakeSolver struct {
	mu      sync.Mutex
	result  *entity.SolveResult
	started chan entity.SolveRequest
	block   chan struct{}
}

func newFakeSolver(status entity.SessionStatus) *fakeSolver {
	return &fakeSolver{
		result:  &entity.SolveResult{Status: status, Hops: 1},
		started: make(chan entity.SolveRequest, 1),
	}
}

func (f *fakeSolver) Solve(_ context.Context, req entity.SolveRequest) *entity.SolveResult {
	f.started <- req
	if f.block != nil {
		<-f.block
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	result := *f.result
	result.SessionID = req.SessionID
	return &result
}

func newTestServer(solver *fakeSolver) *httptest.Server {
	s := NewServer(solver, service.NewSessionRegistry(), logger.NewNop(), "topsecret", time.Minute)
	return httptest.NewServer(s.Router())
}

func postSolve(t *testing.T, srv *httptest.Server, body string) (*http.Response, map[string]any) {
	t.Helper()
	resp, err := http.Post(srv.URL+"/solve", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	var decoded map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp, decoded
}

func TestSolve_RejectsInvalidJSON(t *testing.T) {
	srv := newTestServer(newFakeSolver(entity.StatusSuccess))
	defer srv.Close()

	resp, _ := postSolve(t, srv, `{not json`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSolve_RejectsMissingFields(t *testing.T) {
	srv := newTestServer(newFakeSolver(entity.StatusSuccess))
	defer srv.Close()

	resp, body := postSolve(t, srv, `{"email": "a@b.c", "secret": "topsecret"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body["error"], "missing required fields")
}

func TestSolve_RejectsWrongSecret(t *testing.T) {
	srv := newTestServer(newFakeSolver(entity.StatusSuccess))
	defer srv.Close()

	resp, _ := postSolve(t, srv, `{"email": "a@b.c", "secret": "nope", "url": "https://quiz.example.com/q/1"}`)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestSolve_RejectsNonHTTPURL(t *testing.T) {
	srv := newTestServer(newFakeSolver(entity.StatusSuccess))
	defer srv.Close()

	resp, _ := postSolve(t, srv, `{"email": "a@b.c", "secret": "topsecret", "url": "file:///etc/passwd"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSolve_AcceptsAndRunsSession(t *testing.T) {
	solver := newFakeSolver(entity.StatusSuccess)
	srv := newTestServer(solver)
	defer srv.Close()

	resp, body := postSolve(t, srv, `{"email": "a@b.c", "secret": "topsecret", "url": "https://quiz.example.com/q/1"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "accepted", body["status"])

	taskID, ok := body["task_id"].(string)
	require.True(t, ok)
	require.NotEmpty(t, taskID)

	req := <-solver.started
	assert.Equal(t, taskID, req.SessionID)
	assert.Equal(t, "a@b.c", req.Email)
	assert.Equal(t, "https://quiz.example.com/q/1", req.URL)
	assert.False(t, req.Deadline.IsZero())
}

func TestTaskStatus_Lifecycle(t *testing.T) {
	solver := newFakeSolver(entity.StatusSuccess)
	solver.block = make(chan struct{})
	srv := newTestServer(solver)
	defer srv.Close()

	_, body := postSolve(t, srv, `{"email": "a@b.c", "secret": "topsecret", "url": "https://quiz.example.com/q/1"}`)
	taskID := body["task_id"].(string)

	// The session is stuck inside the fake, so it polls as running.
	<-solver.started
	status := getJSON(t, srv, "/tasks/"+taskID)
	assert.Equal(t, "running", status["status"])

	close(solver.block)

	require.Eventually(t, func() bool {
		status := getJSON(t, srv, "/tasks/"+taskID)
		_, done := status["result"]
		return done
	}, 2*time.Second, 10*time.Millisecond)

	status = getJSON(t, srv, "/tasks/"+taskID)
	result := status["result"].(map[string]any)
	assert.Equal(t, string(entity.StatusSuccess), result["status"])
	assert.Equal(t, taskID, result["request_id"])
}

func TestTaskStatus_UnknownID(t *testing.T) {
	srv := newTestServer(newFakeSolver(entity.StatusSuccess))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/tasks/never-seen")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestHealth(t *testing.T) {
	srv := newTestServer(newFakeSolver(entity.StatusSuccess))
	defer srv.Close()

	body := getJSON(t, srv, "/health")
	assert.Equal(t, "ok", body["status"])
}

func getJSON(t *testing.T, srv *httptest.Server, path string) map[string]any {
	t.Helper()
	resp, err := http.Get(srv.URL + path)
	require.NoError(t, err)
	defer resp.Body.Close()

	var decoded map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return decoded
}
