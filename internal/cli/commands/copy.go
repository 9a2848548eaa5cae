package commands

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"vtcopy/internal/config"
	"vtcopy/internal/domain"
	"vtcopy/internal/output"
	"vtcopy/internal/report"
)

// CopyCommand handles the copy command
type CopyCommand struct {
	config    *config.Config
	extractor *Extractor
}

// NewCopyCommand creates a new CopyCommand
func NewCopyCommand(cfg *config.Config, extractor *Extractor) *CopyCommand {
	return &CopyCommand{
		config:    cfg,
		extractor: extractor,
	}
}

// Execute runs the command
func (cc *CopyCommand) Execute(cmd *cobra.Command, args []string) error {
	failures, err := cc.extractor.Failures(cmd.Context())
	if errors.Is(err, ErrNoFailures) {
		status(cmd, color.New(color.FgGreen), "✓ No test failures found")
		return nil
	}
	if err != nil {
		return err
	}

	return writeReport(cmd, cc.config, failures)
}

// writeReport formats failures and hands them to the sink chosen by the flags.
func writeReport(cmd *cobra.Command, cfg *config.Config, failures []domain.FailedTest) error {
	sink := output.Select(cfg.Flags.Output, cfg.Flags.Stdout, cmd.OutOrStdout())
	text := report.Format(failures, cfg.GroupByFile)
	if err := sink.Write(text); err != nil {
		return fmt.Errorf("failed to write to %s: %w", sink.Name(), err)
	}

	files := len(report.GroupTestsByFile(failures))
	status(cmd, color.New(color.FgGreen), "✓ Copied %d failed test(s) from %d file(s) to %s", len(failures), files, sink.Name())
	return nil
}
