package integration

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quiz-solver/internal/domain/entity"
	"quiz-solver/internal/infrastructure/decode"
	"quiz-solver/internal/infrastructure/fetch"
	"quiz-solver/internal/infrastructure/logger"
	"quiz-solver/internal/usecase/extractor"
	"quiz-solver/internal/usecase/resolver"
	"quiz-solver/internal/usecase/solver"
	"quiz-solver/internal/usecase/submitter"
)

// plainRenderer fetches pages over plain HTTP. It stands in for the headless
// browser so the whole pipeline runs against httptest fixtures; pages that
// need JavaScript are out of scope here.
type plainRenderer struct {
	client *http.Client
}

func (r *plainRenderer) Render(ctx context.Context, pageURL string) (*entity.RenderedPage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := r.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	return &entity.RenderedPage{URL: pageURL, HTML: string(body)}, nil
}

func (r *plainRenderer) Close() {}

// quizServer hosts a two-page chain: a CSV averaging question graded at
// /grade, then a terminal results page.
func quizServer(t *testing.T) (*httptest.Server, *int) {
	t.Helper()

	submissions := 0
	mux := http.NewServeMux()
	var srv *httptest.Server

	mux.HandleFunc("/q/1", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, `<!DOCTYPE html>
<html>
<head><title>Question 1</title></head>
<body>
	<p>What is the average of the numbers in data.csv?</p>
	<form action="/grade"><input name="answer"></form>
	<a href="/files/data.csv">data.csv</a>
</body>
</html>`)
	})

	mux.HandleFunc("/files/data.csv", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/csv")
		fmt.Fprint(w, "10\n20\n30\n")
	})

	mux.HandleFunc("/grade", func(w http.ResponseWriter, r *http.Request) {
		submissions++
		var payload map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))

		assert.Equal(t, "solver@example.com", payload["email"])
		assert.Equal(t, "s3cret", payload["secret"])
		assert.NotContains(t, payload, "url")

		w.Header().Set("Content-Type", "application/json")
		if payload["answer"] == float64(20) {
			fmt.Fprintf(w, `{"correct": true, "url": %q}`, srv.URL+"/done")
		} else {
			fmt.Fprint(w, `{"correct": false, "reason": "expected the average"}`)
		}
	})

	mux.HandleFunc("/done", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, `<!DOCTYPE html>
<html>
<head><title>Done</title></head>
<body><h1>Congratulations!</h1><p>You have completed the quiz.</p></body>
</html>`)
	})

	srv = httptest.NewServer(mux)
	return srv, &submissions
}

func newPipeline() *solver.UseCase {
	log := logger.NewNop()
	renderer := &plainRenderer{client: &http.Client{Timeout: 10 * time.Second}}
	engine := extractor.New(renderer, fetch.NewDownloader(log), log)
	answers := resolver.New(nil, decode.NewRegistry(log, false), log)
	return solver.New(engine, answers, submitter.New(log), log)
}

func TestSolveFlow_TwoPageChain(t *testing.T) {
	srv, submissions := quizServer(t)
	defer srv.Close()

	uc := newPipeline()
	result := uc.Solve(context.Background(), entity.SolveRequest{
		SessionID: "integration",
		Email:     "solver@example.com",
		Secret:    "s3cret",
		URL:       srv.URL + "/q/1",
		Deadline:  time.Now().Add(time.Minute),
	})

	require.Equal(t, entity.StatusSuccess, result.Status, "reason: %s", result.FailureReason)
	assert.Equal(t, 2, result.Hops)
	assert.Equal(t, 1, *submissions)
	assert.Greater(t, result.TimeRemaining, 0.0)
}

func TestSolveFlow_WrongAnswerRetriesThenStops(t *testing.T) {
	submissions := 0
	mux := http.NewServeMux()

	mux.HandleFunc("/q/1", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		// No attachment and no hidden element, so the fallback answer gets
		// submitted and rejected.
		fmt.Fprint(w, `<html><body>
			<p>Decode the ancient riddle of the sphinx.</p>
			<form action="/grade"></form>
		</body></html>`)
	})
	mux.HandleFunc("/grade", func(w http.ResponseWriter, r *http.Request) {
		submissions++
		io.Copy(io.Discard, r.Body)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"correct": false, "reason": "nope"}`)
	})

	srv := httptest.NewServer(mux)
	defer srv.Close()

	uc := newPipeline()
	result := uc.Solve(context.Background(), entity.SolveRequest{
		SessionID: "integration-retry",
		Email:     "solver@example.com",
		Secret:    "s3cret",
		URL:       srv.URL + "/q/1",
		Deadline:  time.Now().Add(time.Minute),
	})

	assert.Equal(t, entity.StatusFailed, result.Status)
	assert.Equal(t, "wrong answer and no next URL provided", result.FailureReason)
	assert.Equal(t, 2, submissions)
}
