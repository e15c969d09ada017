// Package submitter posts answers to discovered endpoints and interprets the
// verdict. It is the last line of defense against unsafe URLs and oversized
// payloads.
package submitter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"quiz-solver/internal/application/port/output"
	"quiz-solver/internal/domain/entity"
)

const (
	maxPayloadBytes   = 1 << 20 // 1 MiB ceiling on the encoded payload
	submitTimeout     = 15 * time.Second
	truncatedAnswerLen = 256
)

var ErrUnsafeURL = errors.New("submit url scheme not allowed")

var _ output.SubmitterPort = (*Client)(nil)

type Client struct {
	http   *http.Client
	logger output.LoggerPort
}

func New(logger output.LoggerPort) *Client {
	return &Client{
		http:   &http.Client{Timeout: submitTimeout},
		logger: logger,
	}
}

// Submit builds the schema-gated payload and POSTs it. Only pre-flight
// rejection surfaces as an error; transport and protocol failures return a
// non-authoritative incorrect verdict with Transport set, which callers treat
// exactly like a wrong answer.
func (c *Client) Submit(ctx context.Context, req entity.SubmitRequest) (*entity.SubmissionResult, error) {
	if err := ValidateURL(req.Task.SubmitURL); err != nil {
		return nil, err
	}

	payload := buildPayload(req)
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode payload: %w", err)
	}

	if len(body) > maxPayloadBytes {
		// Oversized answers get truncated to a short string representation
		// instead of aborting the hop.
		c.logger.Warn("Payload too large, truncating answer", "bytes", len(body))
		payload["answer"] = truncateAnswer(req.Answer)
		if body, err = json.Marshal(payload); err != nil {
			return nil, fmt.Errorf("encode truncated payload: %w", err)
		}
	}

	c.logger.Info("Submitting answer", "url", req.Task.SubmitURL, "bytes", len(body))

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, req.Task.SubmitURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		c.logger.Warn("Submission transport failure", "url", req.Task.SubmitURL, "error", err)
		return &entity.SubmissionResult{Transport: true, Reason: err.Error()}, nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("Submission endpoint returned non-200", "url", req.Task.SubmitURL, "status", resp.StatusCode)
		return &entity.SubmissionResult{Transport: true, Reason: fmt.Sprintf("status %d", resp.StatusCode)}, nil
	}

	var result entity.SubmissionResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		c.logger.Warn("Submission response was not JSON", "url", req.Task.SubmitURL, "error", err)
		return &entity.SubmissionResult{Transport: true, Reason: "malformed response"}, nil
	}

	c.logger.Info("Submission verdict", "correct", result.Correct, "next", result.NextURL, "reason", result.Reason)
	return &result, nil
}

// buildPayload gates each field on the discovered schema: canonical fields
// are always present when the schema is empty, url only when the schema
// explicitly names it.
func buildPayload(req entity.SubmitRequest) map[string]any {
	schema := req.Task.Schema
	wantsField := func(name string) bool {
		if len(schema) == 0 {
			return name != "url"
		}
		_, ok := schema[name]
		return ok
	}

	payload := make(map[string]any, 4)
	if wantsField("email") {
		payload["email"] = req.Email
	}
	if wantsField("secret") {
		payload["secret"] = req.Secret
	}
	if wantsField("url") {
		payload["url"] = req.Task.SourceURL
	}
	if wantsField("answer") {
		payload["answer"] = req.Answer
	}
	return payload
}

func truncateAnswer(answer any) string {
	s := fmt.Sprint(answer)
	if len(s) > truncatedAnswerLen {
		s = s[:truncatedAnswerLen] + "..."
	}
	return s
}

// ValidateURL rejects anything that is not an absolute http(s) URL before a
// request is even built. file://, javascript: and friends never leave the
// process.
func ValidateURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrUnsafeURL, raw)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: %q", ErrUnsafeURL, raw)
	}
	return nil
}
