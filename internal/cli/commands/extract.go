package commands

import (
	"context"
	"fmt"

	"vtcopy/internal/capture"
	"vtcopy/internal/config"
	"vtcopy/internal/discovery"
	"vtcopy/internal/domain"
	"vtcopy/internal/execution"
	"vtcopy/internal/logging"
	"vtcopy/internal/report"
	"vtcopy/internal/selection"
)

// Extractor runs the capture, parse, resolve and select pipeline shared by the
// single-log commands.
type Extractor struct {
	config    *config.Config
	runner    *execution.Runner
	piped     func() bool
	stdin     func() capture.Source
	clipboard func() capture.Source
}

// NewExtractor creates a new Extractor
func NewExtractor(cfg *config.Config, runner *execution.Runner) *Extractor {
	return &Extractor{
		config:    cfg,
		runner:    runner,
		piped:     capture.IsPiped,
		stdin:     func() capture.Source { return capture.NewStdinSource() },
		clipboard: func() capture.Source { return capture.NewClipboardSource() },
	}
}

// Source picks where the console output comes from: --input, the test command
// with --run, piped stdin, and finally the clipboard.
func (e *Extractor) Source() capture.Source {
	flags := e.config.Flags
	switch {
	case flags.Input == "-":
		return e.stdin()
	case flags.Input != "":
		return capture.NewFileSource(flags.Input)
	case flags.Run:
		return capture.NewCommandSource(e.config.Command, e.config.ProjectPath)
	case e.piped():
		return e.stdin()
	default:
		return e.clipboard()
	}
}

// Extract captures and parses the output, then resolves and selects failures.
// A capture failure is returned as an error; an empty result is not.
func (e *Extractor) Extract(ctx context.Context) (domain.ExtractionResult, error) {
	src := e.Source()
	result := e.runner.Run(ctx, src)
	if result.Error != nil {
		return result, result.Error
	}

	failures, err := e.Refine(result.Failures)
	if err != nil {
		return result, err
	}
	result.Failures = failures
	return result, nil
}

// Failures is Extract for callers that only need the records. It returns
// ErrNoFailures when nothing was found.
func (e *Extractor) Failures(ctx context.Context) ([]domain.FailedTest, error) {
	result, err := e.Extract(ctx)
	if err != nil {
		return nil, err
	}
	if len(result.Failures) == 0 {
		return nil, ErrNoFailures
	}
	return result.Failures, nil
}

// Refine fills unknown files when resolving is enabled and applies the
// --file and --test choices, keeping encounter order.
func (e *Extractor) Refine(failures []domain.FailedTest) ([]domain.FailedTest, error) {
	if e.config.ResolveFiles {
		failures = resolveFiles(e.config, failures)
	}

	flags := e.config.Flags
	if flags.Filter == "" && flags.NameFilter == "" {
		return failures, nil
	}

	chosen, err := selection.Apply(report.GroupTestsByFile(failures), flags.Filter, flags.NameFilter)
	if err != nil {
		return nil, fmt.Errorf("failed to select failures: %w", err)
	}

	keep := make(map[string]bool, len(chosen))
	for _, ft := range chosen {
		keep[ft.Key()] = true
	}
	out := make([]domain.FailedTest, 0, len(chosen))
	for _, ft := range failures {
		if keep[ft.Key()] {
			out = append(out, ft)
		}
	}
	return out, nil
}

// resolveFiles fills unknown files from the test root. Failures are returned
// unchanged when the test root cannot be scanned.
func resolveFiles(cfg *config.Config, failures []domain.FailedTest) []domain.FailedTest {
	resolved, err := discovery.NewResolver(cfg.PathsToIgnore).Resolve(cfg.GetTestRoot(), failures)
	if err != nil {
		logging.Warn("could not resolve test files", "error", err)
		return failures
	}
	return resolved
}
