package output

import (
	"context"

	"quiz-solver/internal/domain/entity"
)

// ComputePort is the external answer-computation capability. A failed or
// unavailable capability returns an ordinary error; callers are expected to
// degrade rather than propagate it.
type ComputePort interface {
	Compute(ctx context.Context, in entity.ComputeInput) (string, error)
}
