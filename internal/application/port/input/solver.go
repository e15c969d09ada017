package input

import (
	"context"

	"quiz-solver/internal/domain/entity"
)

// QuizSolver runs one full resolution session. It never returns an error:
// every failure mode is folded into the result's status and reason.
type QuizSolver interface {
	Solve(ctx context.Context, req entity.SolveRequest) *entity.SolveResult
}
