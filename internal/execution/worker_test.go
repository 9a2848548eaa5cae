package execution

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vtcopy/internal/capture"
	"vtcopy/internal/config"
	"vtcopy/internal/domain"
	"vtcopy/internal/ui"
)

const failingLog = " FAIL  src/a.test.ts > adds\nError: expected 2 to be 3\n"

func writeLogs(t *testing.T, contents ...string) []capture.Source {
	t.Helper()
	dir := t.TempDir()
	var paths []string
	for i, c := range contents {
		p := filepath.Join(dir, string(rune('a'+i))+".log")
		require.NoError(t, os.WriteFile(p, []byte(c), 0644))
		paths = append(paths, p)
	}
	return capture.FileSources(paths)
}

func newPool(workers int) *WorkerPool {
	cfg := config.New()
	cfg.Workers = workers
	return NewWorkerPool(cfg, NewRunner())
}

func TestRunner_Run(t *testing.T) {
	src := writeLogs(t, failingLog)[0]

	result := NewRunner().Run(context.Background(), src)
	require.NoError(t, result.Error)
	assert.Equal(t, src.Name(), result.Source)
	assert.Equal(t, domain.TierStructured, result.Tier)
	require.Len(t, result.Failures, 1)
	assert.Equal(t, "adds", result.Failures[0].TestName)
}

func TestRunner_CaptureError(t *testing.T) {
	result := NewRunner().Run(context.Background(), capture.NewFileSource("/nonexistent/run.log"))
	assert.ErrorIs(t, result.Error, capture.ErrCaptureFailed)
	assert.NotEmpty(t, result.CaptureError)
	assert.Equal(t, domain.TierNone, result.Tier)
	assert.Empty(t, result.Failures)
}

func TestRunner_CustomParse(t *testing.T) {
	r := NewRunnerWith(func(text string) ([]domain.FailedTest, domain.Tier) {
		return []domain.FailedTest{{TestName: text}}, domain.TierLineScan
	})
	result := r.Run(context.Background(), writeLogs(t, "custom")[0])
	assert.Equal(t, domain.TierLineScan, result.Tier)
	assert.Equal(t, "custom", result.Failures[0].TestName)
}

func TestWorkerPool_ExecutePreservesOrder(t *testing.T) {
	sources := writeLogs(t,
		failingLog,
		"all tests passed\n",
		" FAIL  src/b.test.ts > subtracts\nError: nope\n",
		"",
	)

	pool := newPool(3)
	pool.SetProgress(ui.NewProgressBarTo(io.Discard, len(sources)))

	results, duration, err := pool.Execute(context.Background(), sources)
	require.NoError(t, err)
	assert.Greater(t, duration, time.Duration(0))
	require.Len(t, results, 4)

	for i, r := range results {
		assert.Equal(t, sources[i].Name(), r.Source)
	}
	assert.Len(t, results[0].Failures, 1)
	assert.Empty(t, results[1].Failures)
	assert.Equal(t, "subtracts", results[2].Failures[0].TestName)
	assert.ErrorIs(t, results[3].Error, capture.ErrCaptureFailed)
}

func TestWorkerPool_Empty(t *testing.T) {
	results, _, err := newPool(2).Execute(context.Background(), nil)
	assert.NoError(t, err)
	assert.Empty(t, results)
}

func TestWorkerPool_FailFast(t *testing.T) {
	sources := writeLogs(t, failingLog, failingLog, failingLog, failingLog)

	results, _, err := newPool(1).ExecuteWithOptions(context.Background(), sources, true)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, sources[0].Name(), results[0].Source)
}

func TestWorkerPool_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := newPool(2).Execute(ctx, writeLogs(t, failingLog))
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestSummarize(t *testing.T) {
	results := []domain.ExtractionResult{
		{Source: "a", Failures: []domain.FailedTest{{}, {}}},
		{Source: "b", Failures: []domain.FailedTest{}},
		{Source: "c", Error: capture.ErrCaptureFailed},
		{Source: "d", Failures: []domain.FailedTest{{}}},
	}

	out := Summarize(results, 1500*time.Millisecond, 4)
	assert.Equal(t, domain.BatchMeta{
		TotalSources:    4,
		FailedSources:   2,
		UnreadSources:   1,
		FailedTestCases: 3,
		Duration:        "1.5s",
		DurationSeconds: 1.5,
		Workers:         4,
	}, out.Meta)
	assert.Len(t, out.Details, 4)
	assert.Len(t, AllFailures(results), 3)

	assert.NotNil(t, Summarize(nil, 0, 1).Details)
}
