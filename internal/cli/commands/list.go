package commands

import (
	"errors"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"vtcopy/internal/config"
	"vtcopy/internal/discovery"
	"vtcopy/internal/logging"
	"vtcopy/internal/ui"
)

// ListCommand handles the list command
type ListCommand struct {
	config    *config.Config
	extractor *Extractor
	filter    *discovery.Filter
	formatter *ui.Formatter
}

// NewListCommand creates a new ListCommand
func NewListCommand(
	cfg *config.Config,
	extractor *Extractor,
	filter *discovery.Filter,
	formatter *ui.Formatter,
) *ListCommand {
	return &ListCommand{
		config:    cfg,
		extractor: extractor,
		filter:    filter,
		formatter: formatter,
	}
}

// Execute runs the command
func (lc *ListCommand) Execute(cmd *cobra.Command, args []string) error {
	lc.formatter.SetOutput(cmd.OutOrStdout())
	if lc.config.Flags.TestFiles {
		return lc.listTestFiles(cmd)
	}

	failures, err := lc.extractor.Failures(cmd.Context())
	if errors.Is(err, ErrNoFailures) {
		status(cmd, color.New(color.FgGreen), "✓ No test failures found")
		return nil
	}
	if err != nil {
		return err
	}

	lc.formatter.PrintFailureTree(failures)
	return nil
}

func (lc *ListCommand) listTestFiles(cmd *cobra.Command) error {
	scanner := discovery.NewScanner(lc.config.PathsToIgnore)
	tests, err := scanner.Scan(lc.config.GetTestRoot())
	if err != nil {
		return err
	}

	// Filter tests
	tests = lc.filter.FilterByName(tests, lc.config.Flags.Filter)

	if len(tests) == 0 {
		status(cmd, color.New(color.FgYellow), "No tests found")
		return nil
	}

	return lc.formatter.PrintTestList(tests, lc.config.Flags.TestCases, lc.failedPaths(cmd))
}

// failedPaths marks files with failures when output was given explicitly.
func (lc *ListCommand) failedPaths(cmd *cobra.Command) map[string]struct{} {
	flags := lc.config.Flags
	if flags.Input == "" && !flags.Run {
		return nil
	}
	result, err := lc.extractor.Extract(cmd.Context())
	if err != nil {
		logging.Warn("could not read failures for marking", "error", err)
		return nil
	}
	paths := make(map[string]struct{}, len(result.Failures))
	for _, ft := range result.Failures {
		paths[filepath.ToSlash(ft.FilePath)] = struct{}{}
	}
	return paths
}
