package execution

import (
	"context"
	"sync"
	"time"

	"vtcopy/internal/capture"
	"vtcopy/internal/config"
	"vtcopy/internal/domain"
	"vtcopy/internal/ui"
)

// WorkerPool parses sources in parallel. Parsing is pure, so workers share nothing
// but the job queue and the progress counters.
type WorkerPool struct {
	config   *config.Config
	runner   *Runner
	progress *ui.ProgressBar
}

var _ Executor = (*WorkerPool)(nil)

// NewWorkerPool creates a new WorkerPool
func NewWorkerPool(cfg *config.Config, runner *Runner) *WorkerPool {
	return &WorkerPool{
		config: cfg,
		runner: runner,
	}
}

// SetProgress sets the progress bar for the worker pool
func (wp *WorkerPool) SetProgress(progress *ui.ProgressBar) {
	wp.progress = progress
}

// Execute parses every source. Results are in the order of sources.
func (wp *WorkerPool) Execute(ctx context.Context, sources []capture.Source) ([]domain.ExtractionResult, time.Duration, error) {
	return wp.ExecuteWithOptions(ctx, sources, false)
}

// ExecuteWithOptions parses sources, optionally stopping once a source with failures
// has been found. Sources never dispatched are absent from the results.
func (wp *WorkerPool) ExecuteWithOptions(parent context.Context, sources []capture.Source, failFast bool) ([]domain.ExtractionResult, time.Duration, error) {
	if len(sources) == 0 {
		return nil, 0, nil
	}

	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	type job struct {
		index  int
		source capture.Source
	}

	queue := make(chan job)
	go func() {
		defer close(queue)
		for i, src := range sources {
			select {
			case <-ctx.Done():
				return
			case queue <- job{index: i, source: src}:
			}
		}
	}()

	results := make([]domain.ExtractionResult, len(sources))
	done := make([]bool, len(sources))

	var mu sync.Mutex
	var completed, failingSources, failedTests int
	startTime := time.Now()
	workerCount := wp.config.Workers
	if workerCount <= 0 {
		workerCount = 1
	}

	var wg sync.WaitGroup
	for i := 1; i <= workerCount; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range queue {
				if ctx.Err() != nil {
					continue
				}
				result := wp.runner.Run(ctx, j.source)
				if result.Error != nil && ctx.Err() != nil && parent.Err() == nil {
					// Interrupted by fail-fast, not a real capture failure.
					continue
				}

				mu.Lock()
				results[j.index] = result
				done[j.index] = true
				completed++
				if len(result.Failures) > 0 {
					failingSources++
					failedTests += len(result.Failures)
					if failFast {
						cancel()
					}
				}
				if wp.progress != nil {
					wp.progress.Update(completed, failingSources, failedTests)
				}
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if wp.progress != nil {
		wp.progress.Finish()
	}

	var ordered []domain.ExtractionResult
	for i, ok := range done {
		if ok {
			ordered = append(ordered, results[i])
		}
	}
	return ordered, time.Since(startTime), parent.Err()
}
