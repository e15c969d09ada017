package output

import (
	"context"

	"quiz-solver/internal/domain/entity"
)

// SubmitterPort posts an answer to a discovered endpoint. An error return is
// reserved for pre-flight rejection (unsafe URL); network and protocol
// failures come back as a result with Transport set.
type SubmitterPort interface {
	Submit(ctx context.Context, req entity.SubmitRequest) (*entity.SubmissionResult, error)
}
