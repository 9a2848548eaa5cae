package execution

import (
	"time"

	"vtcopy/internal/domain"
)

// Summarize builds the batch document from per-source results.
func Summarize(results []domain.ExtractionResult, duration time.Duration, workers int) domain.BatchOutput {
	meta := domain.BatchMeta{
		TotalSources:    len(results),
		Duration:        duration.String(),
		DurationSeconds: duration.Seconds(),
		Workers:         workers,
	}
	for _, r := range results {
		switch {
		case r.Error != nil:
			meta.UnreadSources++
		case len(r.Failures) > 0:
			meta.FailedSources++
			meta.FailedTestCases += len(r.Failures)
		}
	}

	details := results
	if details == nil {
		details = []domain.ExtractionResult{}
	}
	return domain.BatchOutput{Meta: meta, Details: details}
}

// AllFailures concatenates the failures of every result, in result order.
func AllFailures(results []domain.ExtractionResult) []domain.FailedTest {
	var all []domain.FailedTest
	for _, r := range results {
		all = append(all, r.Failures...)
	}
	return all
}
