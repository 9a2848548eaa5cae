package execution

import (
	"context"
	"time"

	"vtcopy/internal/capture"
	"vtcopy/internal/domain"
	"vtcopy/internal/logging"
	"vtcopy/internal/parser"
)

// ParseFunc turns captured text into failures and reports the tier used
type ParseFunc func(text string) ([]domain.FailedTest, domain.Tier)

// Runner captures and parses a single source
type Runner struct {
	parse ParseFunc
}

// NewRunner creates a new Runner using the Vitest parser
func NewRunner() *Runner {
	return &Runner{parse: parser.ParseWithTier}
}

// NewRunnerWith creates a Runner with a custom parse function
func NewRunnerWith(parse ParseFunc) *Runner {
	return &Runner{parse: parse}
}

// Run reads src and extracts its failures. Capture errors are recorded on the result.
func (r *Runner) Run(ctx context.Context, src capture.Source) domain.ExtractionResult {
	start := time.Now()
	result := domain.ExtractionResult{Source: src.Name(), Tier: domain.TierNone, Failures: []domain.FailedTest{}}

	c, err := capture.Capture(ctx, src)
	if err != nil {
		logging.Warn("capture failed", "source", src.Name(), "error", err)
		result.Error = err
		result.CaptureError = err.Error()
		result.Duration = time.Since(start)
		return result
	}

	result.Failures, result.Tier = r.parse(c.Text)
	result.Duration = time.Since(start)
	return result
}
