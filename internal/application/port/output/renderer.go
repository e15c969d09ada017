package output

import (
	"context"

	"quiz-solver/internal/domain/entity"
)

// RendererPort loads a URL in a real browser, lets scripts settle, and hands
// back a static snapshot of the result.
type RendererPort interface {
	Render(ctx context.Context, url string) (*entity.RenderedPage, error)
	Close()
}
