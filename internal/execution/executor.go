package execution

import (
	"context"
	"time"

	"vtcopy/internal/capture"
	"vtcopy/internal/domain"
)

// Executor extracts failures from many sources and returns one result per source
type Executor interface {
	Execute(ctx context.Context, sources []capture.Source) ([]domain.ExtractionResult, time.Duration, error)
}
