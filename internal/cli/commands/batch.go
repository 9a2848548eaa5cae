package commands

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"vtcopy/internal/capture"
	"vtcopy/internal/config"
	"vtcopy/internal/discovery"
	"vtcopy/internal/execution"
	"vtcopy/internal/output"
	"vtcopy/internal/parser"
	"vtcopy/internal/ui"
)

// BatchCommand handles the batch command
type BatchCommand struct {
	config    *config.Config
	executor  *execution.WorkerPool
	filter    *discovery.Filter
	formatter *ui.Formatter
}

// NewBatchCommand creates a new BatchCommand
func NewBatchCommand(
	cfg *config.Config,
	executor *execution.WorkerPool,
	filter *discovery.Filter,
	formatter *ui.Formatter,
) *BatchCommand {
	return &BatchCommand{
		config:    cfg,
		executor:  executor,
		filter:    filter,
		formatter: formatter,
	}
}

// Execute runs the command
func (bc *BatchCommand) Execute(cmd *cobra.Command, args []string) error {
	// Discover logs
	logs, err := bc.collectLogs(args)
	if err != nil {
		return err
	}

	// Filter logs
	logs = bc.filter.FilterByName(logs, bc.config.Flags.Filter)

	if len(logs) == 0 {
		status(cmd, color.New(color.FgYellow), "No logs to parse")
		return nil
	}

	// Create and set progress bar
	progressBar := ui.NewProgressBarTo(cmd.ErrOrStderr(), len(logs))
	bc.executor.SetProgress(progressBar)

	results, duration, err := bc.executor.ExecuteWithOptions(cmd.Context(), capture.FileSources(logs), bc.config.Flags.FailFast)
	if err != nil {
		return err
	}

	if bc.config.ResolveFiles {
		for i := range results {
			if len(results[i].Failures) > 0 {
				results[i].Failures = resolveFiles(bc.config, results[i].Failures)
			}
		}
	}

	summary := execution.Summarize(results, duration, bc.config.Workers)

	// Save results
	if bc.config.Flags.Output != "" {
		if err := output.WriteJSON(output.NewFileSink(bc.config.Flags.Output), summary); err != nil {
			return fmt.Errorf("failed to save batch results: %w", err)
		}
	}

	if bc.config.Flags.JSON {
		return output.WriteJSON(output.NewWriterSink("stdout", cmd.OutOrStdout()), summary)
	}

	// Print stats
	bc.formatter.SetOutput(cmd.OutOrStdout())
	bc.formatter.PrintMetaStats(summary)
	if distinct := parser.Dedupe(execution.AllFailures(results)); len(distinct) > 0 {
		status(cmd, color.New(color.FgHiBlack), "%d distinct failed test(s) across all logs", len(distinct))
	}
	return nil
}

// collectLogs expands directories into the log files they contain.
func (bc *BatchCommand) collectLogs(args []string) ([]string, error) {
	scanner := discovery.NewScanner(bc.config.PathsToIgnore)

	var logs []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("log path does not exist: %s", arg)
		}
		if !info.IsDir() {
			logs = append(logs, arg)
			continue
		}
		found, err := scanner.ScanLogs(arg)
		if err != nil {
			return nil, err
		}
		logs = append(logs, found...)
	}
	return logs, nil
}
