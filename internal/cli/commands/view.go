package commands

import (
	"errors"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"vtcopy/internal/config"
	"vtcopy/internal/ui"
)

// ViewCommand handles the view command
type ViewCommand struct {
	config    *config.Config
	extractor *Extractor
	viewer    ui.Viewer
}

// NewViewCommand creates a new ViewCommand
func NewViewCommand(cfg *config.Config, extractor *Extractor, viewer ui.Viewer) *ViewCommand {
	return &ViewCommand{
		config:    cfg,
		extractor: extractor,
		viewer:    viewer,
	}
}

// Execute runs the command
func (vc *ViewCommand) Execute(cmd *cobra.Command, args []string) error {
	failures, err := vc.extractor.Failures(cmd.Context())
	if errors.Is(err, ErrNoFailures) {
		status(cmd, color.New(color.FgGreen), "✓ No test failures found")
		return nil
	}
	if err != nil {
		return err
	}

	chosen, err := vc.viewer.Pick(failures)
	if errors.Is(err, ui.ErrCanceled) || (err == nil && len(chosen) == 0) {
		status(cmd, color.New(color.FgYellow), "Nothing copied")
		return nil
	}
	if err != nil {
		return err
	}

	return writeReport(cmd, vc.config, chosen)
}
