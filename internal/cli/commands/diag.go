package commands

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"vtcopy/internal/capture"
	"vtcopy/internal/config"
	"vtcopy/internal/diagnostics"
	"vtcopy/internal/output"
)

// DiagCommand handles the diag command
type DiagCommand struct {
	config    *config.Config
	extractor *Extractor
}

// NewDiagCommand creates a new DiagCommand
func NewDiagCommand(cfg *config.Config, extractor *Extractor) *DiagCommand {
	return &DiagCommand{
		config:    cfg,
		extractor: extractor,
	}
}

// Execute runs the command
func (dc *DiagCommand) Execute(cmd *cobra.Command, args []string) error {
	captured, err := capture.Capture(cmd.Context(), dc.extractor.Source())
	if err != nil {
		return err
	}

	diags := diagnostics.Filter(diagnostics.Parse(captured.Text), dc.config.ErrorsOnly)
	if len(diags) == 0 {
		status(cmd, color.New(color.FgGreen), "✓ No diagnostics found")
		return nil
	}

	root := dc.config.GetProjectRoot()
	diags = diagnostics.LoadLineContent(diags, root)
	formatter := diagnostics.NewFormatter(diagnostics.Options{
		Root:            root,
		UseNewFormat:    dc.config.UseNewFormat,
		Template:        dc.config.Format,
		IncludeFileName: dc.config.IncludeFileName,
	})

	// Grouping merges contexts into the prompt layout, so a custom template
	// always renders one diagnostic at a time.
	var text string
	if dc.config.GroupByFile && dc.config.UseNewFormat {
		text = formatter.FormatGroups(diagnostics.Group(diags))
	} else {
		text = formatter.FormatAll(diags)
	}

	sink := output.Select(dc.config.Flags.Output, dc.config.Flags.Stdout, cmd.OutOrStdout())
	if err := sink.Write(text); err != nil {
		return fmt.Errorf("failed to write to %s: %w", sink.Name(), err)
	}
	status(cmd, color.New(color.FgGreen), "✓ Copied %d diagnostic(s) to %s", len(diags), sink.Name())
	return nil
}
