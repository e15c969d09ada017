// Package solver drives the hop-by-hop resolution loop: extract the current
// page's task, compute and format an answer, submit it, and follow the next
// URL until success, failure, the hop ceiling, or the session deadline.
package solver

import (
	"context"
	"fmt"
	"math"
	"os"
	"time"

	"quiz-solver/internal/application/port/input"
	"quiz-solver/internal/application/port/output"
	"quiz-solver/internal/domain/entity"
	"quiz-solver/internal/usecase/format"
)

const (
	// DefaultBudget is the wall-clock budget for one session. The deadline is
	// advisory: a single in-flight call may overrun it by its own timeout, so
	// callers should run the session under a context slightly larger.
	DefaultBudget = 180 * time.Second

	maxHops        = 10
	retryThreshold = 30 * time.Second
)

// TaskExtractor and AnswerResolver are the loop's view of its collaborators,
// kept local so tests can fake them.
type TaskExtractor interface {
	Extract(ctx context.Context, url, destDir string) (*entity.PageTask, error)
}

type AnswerResolver interface {
	Resolve(ctx context.Context, task *entity.PageTask, retry bool) any
}

var _ input.QuizSolver = (*UseCase)(nil)

type UseCase struct {
	extract TaskExtractor
	resolve AnswerResolver
	submit  output.SubmitterPort
	logger  output.LoggerPort
}

func New(extract TaskExtractor, resolve AnswerResolver, submit output.SubmitterPort, logger output.LoggerPort) *UseCase {
	return &UseCase{
		extract: extract,
		resolve: resolve,
		submit:  submit,
		logger:  logger,
	}
}

// Solve runs one session to a terminal status. It never returns an error or
// lets a fault escape: every failure mode folds into the result.
func (uc *UseCase) Solve(ctx context.Context, req entity.SolveRequest) *entity.SolveResult {
	log := uc.logger.WithField("session", req.SessionID)

	result := &entity.SolveResult{SessionID: req.SessionID}

	tempDir, err := os.MkdirTemp("", "quiz_"+req.SessionID+"_")
	if err != nil {
		result.Status = entity.StatusFailed
		result.FailureReason = "create session storage: " + err.Error()
		result.TimeRemaining = remaining(req.Deadline)
		return result
	}
	defer os.RemoveAll(tempDir)

	current := req.URL
	status := entity.StatusRunning
	var reason string

	for status == entity.StatusRunning {
		if !time.Now().Before(req.Deadline) {
			log.Warn("Session deadline reached", "hops", result.Hops)
			status = entity.StatusTimeout
			break
		}
		if result.Hops >= maxHops {
			status, reason = entity.StatusFailed, "hop limit exceeded"
			break
		}

		result.Hops++
		log.Info("Solving page", "hop", result.Hops, "url", current)

		next, hopStatus, hopReason := uc.runHop(ctx, log, req, current, tempDir)
		if hopStatus == entity.StatusRunning {
			current = next
			continue
		}
		status, reason = hopStatus, hopReason
	}

	result.Status = status
	result.FailureReason = reason
	result.TimeRemaining = remaining(req.Deadline)
	log.Info("Session finished", "status", status, "hops", result.Hops, "reason", reason)
	return result
}

// runHop executes one full hop. StatusRunning with a next URL means advance;
// any other status terminates the session. This is the only place faults are
// blanket-caught: a panicking hop becomes a failed session, never a crash.
func (uc *UseCase) runHop(ctx context.Context, log output.LoggerPort, req entity.SolveRequest, current, tempDir string) (next string, status entity.SessionStatus, reason string) {
	defer func() {
		if r := recover(); r != nil {
			log.Error("Hop panicked", "url", current, "panic", r)
			next, status, reason = "", entity.StatusFailed, fmt.Sprint(r)
		}
	}()

	task, err := uc.extract.Extract(ctx, current, tempDir)
	if err != nil {
		return "", entity.StatusFailed, "failed to extract task: " + err.Error()
	}

	if task.SubmitURL == "" {
		if task.Terminal {
			log.Info("Quiz chain appears complete")
			return "", entity.StatusSuccess, ""
		}
		return "", entity.StatusFailed, "no submit URL found in page"
	}

	answer := format.Normalize(uc.resolve.Resolve(ctx, task, false))
	log.Info("Computed answer", "answer", answer)

	verdict, err := uc.submitOnce(ctx, log, req, task, answer)
	if err != nil {
		return "", entity.StatusFailed, err.Error()
	}

	if verdict.Correct {
		return uc.advance(log, verdict)
	}

	log.Warn("Answer incorrect", "reason", verdict.Reason)

	if remaining(req.Deadline) <= retryThreshold.Seconds() {
		return "", entity.StatusFailed, "insufficient time to retry"
	}

	retryAnswer := format.Normalize(uc.resolve.Resolve(ctx, task, true))
	log.Info("Re-submitting with recomputed answer", "answer", retryAnswer)

	verdict, err = uc.submitOnce(ctx, log, req, task, retryAnswer)
	if err != nil {
		return "", entity.StatusFailed, err.Error()
	}

	if verdict.Correct {
		return uc.advance(log, verdict)
	}
	if verdict.NextURL != "" {
		// The endpoint permits forward progress despite an incorrect answer.
		// Observed protocol quirk, not an error.
		log.Info("Advancing despite incorrect answer", "next", verdict.NextURL)
		return verdict.NextURL, entity.StatusRunning, ""
	}
	return "", entity.StatusFailed, "wrong answer and no next URL provided"
}

func (uc *UseCase) submitOnce(ctx context.Context, log output.LoggerPort, req entity.SolveRequest, task *entity.PageTask, answer any) (*entity.SubmissionResult, error) {
	verdict, err := uc.submit.Submit(ctx, entity.SubmitRequest{
		Task:   task,
		Email:  req.Email,
		Secret: req.Secret,
		Answer: answer,
	})
	if err != nil {
		return nil, fmt.Errorf("submission rejected: %w", err)
	}
	if verdict.Transport {
		// Indistinguishable from a wrong answer to the loop; the distinction
		// lives only in the logs.
		log.Warn("Treating transport failure as incorrect verdict", "reason", verdict.Reason)
	}
	return verdict, nil
}

func (uc *UseCase) advance(log output.LoggerPort, verdict *entity.SubmissionResult) (string, entity.SessionStatus, string) {
	if verdict.NextURL != "" {
		log.Info("Answer correct, following next URL", "next", verdict.NextURL)
		return verdict.NextURL, entity.StatusRunning, ""
	}
	log.Info("Answer correct, chain complete")
	return "", entity.StatusSuccess, ""
}

func remaining(deadline time.Time) float64 {
	return math.Max(0, time.Until(deadline).Seconds())
}
