package commands

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"vtcopy/internal/config"
	"vtcopy/internal/output"
	"vtcopy/internal/report"
)

// ParseCommand handles the parse command
type ParseCommand struct {
	config    *config.Config
	extractor *Extractor
}

// NewParseCommand creates a new ParseCommand
func NewParseCommand(cfg *config.Config, extractor *Extractor) *ParseCommand {
	return &ParseCommand{
		config:    cfg,
		extractor: extractor,
	}
}

// Execute runs the command
func (pc *ParseCommand) Execute(cmd *cobra.Command, args []string) error {
	result, err := pc.extractor.Extract(cmd.Context())
	if err != nil {
		return err
	}

	sink := output.Select(pc.config.Flags.Output, true, cmd.OutOrStdout())
	if pc.config.Flags.JSON {
		return output.WriteJSON(sink, result)
	}

	if len(result.Failures) == 0 {
		status(cmd, color.New(color.FgGreen), "✓ No test failures found")
		return nil
	}
	if err := sink.Write(report.Format(result.Failures, pc.config.GroupByFile)); err != nil {
		return fmt.Errorf("failed to write to %s: %w", sink.Name(), err)
	}
	status(cmd, color.New(color.FgHiBlack), "%d failed test(s), %s tier", len(result.Failures), result.Tier)
	return nil
}
