// Package resolver computes a best-effort answer for an extracted page task.
// The primary tier delegates to the external answer-computation capability;
// when that is unconfigured or fails, a deterministic heuristic tier takes
// over. Resolve never fails: a well-formed task always yields some answer.
package resolver

import (
	"context"
	"strings"

	"quiz-solver/internal/application/port/output"
	"quiz-solver/internal/domain/entity"
)

const (
	fileContextLimit = 8000
	htmlExcerptLimit = 1500
)

// FallbackAnswer is returned when neither the compute capability nor any
// heuristic produced a value.
const FallbackAnswer = "42"

type Resolver struct {
	compute output.ComputePort
	decoder output.FileDecoder
	logger  output.LoggerPort
}

// New builds a resolver. compute may be nil, in which case only the heuristic
// tier runs.
func New(compute output.ComputePort, decoder output.FileDecoder, logger output.LoggerPort) *Resolver {
	return &Resolver{
		compute: compute,
		decoder: decoder,
		logger:  logger,
	}
}

// Resolve produces an answer for the task. retry signals that a previous
// answer was rejected and the computation should diversify its approach.
func (r *Resolver) Resolve(ctx context.Context, task *entity.PageTask, retry bool) any {
	contents := r.decodeFiles(task)

	if r.compute != nil {
		in := entity.ComputeInput{
			Instructions: task.Instructions,
			FileContents: contents,
			HTMLExcerpt:  excerpt(task.HTML),
			Retry:        retry,
		}
		answer, err := r.compute.Compute(ctx, in)
		if err == nil && strings.TrimSpace(answer) != "" {
			return strings.TrimSpace(answer)
		}
		r.logger.Warn("Answer capability failed, falling back to heuristics", "error", err)
	}

	return r.heuristic(task, contents)
}

func (r *Resolver) decodeFiles(task *entity.PageTask) map[string]string {
	contents := make(map[string]string, len(task.Files))
	for name, path := range task.Files {
		text, err := r.decoder.Decode(path)
		if err != nil {
			r.logger.Debug("File decode failed", "file", name, "error", err)
			continue
		}
		if len(text) > fileContextLimit {
			text = text[:fileContextLimit]
		}
		contents[name] = text
	}
	return contents
}

func excerpt(html string) string {
	if len(html) > htmlExcerptLimit {
		return html[:htmlExcerptLimit]
	}
	return html
}
