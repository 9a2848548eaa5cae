package commands

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"vtcopy/internal/cli"
	"vtcopy/internal/config"
	"vtcopy/internal/discovery"
	"vtcopy/internal/execution"
	"vtcopy/internal/logging"
	"vtcopy/internal/ui"
)

// ErrNoFailures is returned by the extraction pipeline when the captured output
// contains no recognizable failures.
var ErrNoFailures = errors.New("no test failures found")

// Commands holds all CLI commands
type Commands struct {
	Copy  *CopyCommand
	Parse *ParseCommand
	List  *ListCommand
	View  *ViewCommand
	Batch *BatchCommand
	Watch *WatchCommand
	Diag  *DiagCommand
}

// NewCommands creates all commands with dependencies
func NewCommands(cfg *config.Config) *Commands {
	runner := execution.NewRunner()
	extractor := NewExtractor(cfg, runner)
	executor := execution.NewWorkerPool(cfg, runner)
	testCaseParser := discovery.NewParser()
	formatter := ui.NewFormatter(cfg, testCaseParser)
	picker := ui.NewPicker()

	return &Commands{
		Copy:  NewCopyCommand(cfg, extractor),
		Parse: NewParseCommand(cfg, extractor),
		List:  NewListCommand(cfg, extractor, discovery.NewFilter(), formatter),
		View:  NewViewCommand(cfg, extractor, picker),
		Batch: NewBatchCommand(cfg, executor, discovery.NewFilter(), formatter),
		Watch: NewWatchCommand(cfg, runner),
		Diag:  NewDiagCommand(cfg, extractor),
	}
}

// Register registers all commands with cobra
func (c *Commands) Register(rootCmd *cobra.Command, flags *cli.Flags, cfg *config.Config) {
	rootCmd.PersistentFlags().StringVarP(&flags.ProjectPath, "project", "p", "", "Project root holding .vtcopy.yaml, .env and test files (default: current directory)")
	rootCmd.PersistentFlags().BoolVarP(&flags.Verbose, "verbose", "v", false, "Log debug output to stderr")

	// Update config with flags after parsing
	prepare := func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(flags.ToConfigFlags(cmd.Flags().Changed))
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		*cfg = *loaded

		if flags.Verbose {
			logging.SetOutput(cmd.ErrOrStderr(), slog.LevelDebug)
			return nil
		}
		return logging.Init(cfg.GetProjectRoot(), slog.LevelInfo)
	}

	// Copy command
	copyCmd := &cobra.Command{
		Use:   "copy",
		Short: "Copy failed tests to the clipboard",
		Long: "Extract failed tests from Vitest output and copy them as a formatted report.\n" +
			"Output is read from --input, the test command (--run), piped stdin or the clipboard, in that order.",
		Args:    cobra.NoArgs,
		RunE:    c.Copy.Execute,
		PreRunE: prepare,
	}
	addCaptureFlags(copyCmd, flags)
	addOutputFlags(copyCmd, flags)
	copyCmd.Flags().BoolVar(&flags.GroupByFile, "group-by-file", config.DefaultGroupByFile, "Group failures under a header per test file")
	rootCmd.AddCommand(copyCmd)

	// Parse command
	parseCmd := &cobra.Command{
		Use:     "parse",
		Short:   "Print extracted failures",
		Long:    "Extract failed tests from Vitest output and print the report, or the records as JSON",
		Args:    cobra.NoArgs,
		RunE:    c.Parse.Execute,
		PreRunE: prepare,
	}
	addCaptureFlags(parseCmd, flags)
	parseCmd.Flags().StringVarP(&flags.Output, "output", "o", "", "Write to this file instead of stdout")
	parseCmd.Flags().BoolVar(&flags.JSON, "json", false, "Print the extraction result as JSON")
	parseCmd.Flags().BoolVar(&flags.GroupByFile, "group-by-file", config.DefaultGroupByFile, "Group failures under a header per test file")
	rootCmd.AddCommand(parseCmd)

	// List command
	listCmd := &cobra.Command{
		Use:     "list",
		Short:   "List failed tests as a tree",
		Long:    "Show extracted failures as a tree of directories, files and tests, or list the project's test files with --test-files",
		Args:    cobra.NoArgs,
		RunE:    c.List.Execute,
		PreRunE: prepare,
	}
	addCaptureFlags(listCmd, flags)
	listCmd.Flags().BoolVar(&flags.TestFiles, "test-files", false, "List test files under the test root instead of failures")
	listCmd.Flags().BoolVarP(&flags.TestCases, "test-cases", "c", false, "With --test-files, also list the test cases of each file")
	listCmd.Flags().StringVar(&flags.TestRoot, "test-root", "", "Folder where test detection starts, relative to the project")
	rootCmd.AddCommand(listCmd)

	// View command
	viewCmd := &cobra.Command{
		Use:     "view",
		Short:   "Pick failures interactively and copy them",
		Long:    "Choose a test file, then one, several or all of its failed tests, and copy the selection",
		Args:    cobra.NoArgs,
		RunE:    c.View.Execute,
		PreRunE: prepare,
	}
	addCaptureFlags(viewCmd, flags)
	addOutputFlags(viewCmd, flags)
	viewCmd.Flags().BoolVar(&flags.GroupByFile, "group-by-file", config.DefaultGroupByFile, "Group failures under a header per test file")
	rootCmd.AddCommand(viewCmd)

	// Batch command
	batchCmd := &cobra.Command{
		Use:   "batch <log|dir>...",
		Short: "Extract failures from many logs in parallel",
		Long:  "Parse saved Vitest logs (*.log, *.txt, *.out; directories are scanned) using parallel workers",
		Args:  cobra.MinimumNArgs(1),
		RunE:  c.Batch.Execute,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if flags.Workers < 0 {
				return fmt.Errorf("workers must be positive, got %d", flags.Workers)
			}
			return prepare(cmd, args)
		},
	}
	batchCmd.Flags().IntVarP(&flags.Workers, "workers", "j", 0, "Number of parallel workers (default from config, 4)")
	batchCmd.Flags().StringVarP(&flags.Filter, "filter", "f", "", "Only parse logs whose name matches this pattern (supports wildcards, e.g. '*ci-*.log')")
	batchCmd.Flags().BoolVar(&flags.FailFast, "fail-fast", false, "Stop after the first log with failures")
	batchCmd.Flags().BoolVar(&flags.JSON, "json", false, "Print the batch result as JSON instead of statistics")
	batchCmd.Flags().StringVarP(&flags.Output, "output", "o", "", "Also write the batch result as JSON to this file")
	batchCmd.Flags().BoolVar(&flags.Resolve, "resolve", false, "Find the test file of failures reported without one")
	rootCmd.AddCommand(batchCmd)

	// Watch command
	watchCmd := &cobra.Command{
		Use:     "watch <log>",
		Short:   "Re-copy failures whenever a log file changes",
		Long:    "Watch a log file (e.g. written by 'vitest --watch > vitest.log') and copy its failures after every change",
		Args:    cobra.ExactArgs(1),
		RunE:    c.Watch.Execute,
		PreRunE: prepare,
	}
	addOutputFlags(watchCmd, flags)
	watchCmd.Flags().BoolVar(&flags.GroupByFile, "group-by-file", config.DefaultGroupByFile, "Group failures under a header per test file")
	watchCmd.Flags().BoolVar(&flags.Resolve, "resolve", false, "Find the test file of failures reported without one")
	rootCmd.AddCommand(watchCmd)

	// Diag command
	diagCmd := &cobra.Command{
		Use:   "diag",
		Short: "Copy compiler and linter diagnostics",
		Long: "Extract 'file:line:col: severity: message' and 'file(line,col): error TSxxxx: message' diagnostics\n" +
			"and copy them with the source line they point at",
		Args:    cobra.NoArgs,
		RunE:    c.Diag.Execute,
		PreRunE: prepare,
	}
	diagCmd.Flags().StringVarP(&flags.Input, "input", "i", "", "Read output from this file ('-' for stdin)")
	diagCmd.Flags().BoolVar(&flags.Run, "run", false, "Run --command and read its output")
	diagCmd.Flags().StringVar(&flags.Command, "command", "", "Command run by --run, e.g. 'npx tsc --noEmit --pretty false'")
	addOutputFlags(diagCmd, flags)
	diagCmd.Flags().BoolVar(&flags.ErrorsOnly, "errors-only", false, "Keep only diagnostics with error severity")
	diagCmd.Flags().StringVar(&flags.Template, "template", "", "Custom template using ${severity}, ${line}, ${column}, ${message}, ${lineContent}, ${file}, ${relativePath}")
	diagCmd.Flags().BoolVar(&flags.GroupByFile, "group-by-file", config.DefaultGroupByFile, "Group diagnostics by file and message")
	rootCmd.AddCommand(diagCmd)
}

func addCaptureFlags(cmd *cobra.Command, flags *cli.Flags) {
	cmd.Flags().StringVarP(&flags.Input, "input", "i", "", "Read Vitest output from this file ('-' for stdin)")
	cmd.Flags().BoolVar(&flags.Run, "run", false, "Run the test command and read its output")
	cmd.Flags().StringVar(&flags.Command, "command", "", "Test command run by --run (default from config, 'npx vitest run')")
	cmd.Flags().BoolVar(&flags.Resolve, "resolve", false, "Find the test file of failures reported without one")
	cmd.Flags().StringVarP(&flags.Filter, "file", "f", "", "Keep failures of these files: indexes ('1,3-4'), a name or a pattern ('*api*')")
	cmd.Flags().StringVarP(&flags.NameFilter, "test", "t", "", "Keep these tests: indexes, a name or a pattern")
}

func addOutputFlags(cmd *cobra.Command, flags *cli.Flags) {
	cmd.Flags().StringVarP(&flags.Output, "output", "o", "", "Write to this file instead of the clipboard")
	cmd.Flags().BoolVar(&flags.Stdout, "stdout", false, "Write to stdout instead of the clipboard")
}

// status writes a colored status line to stderr.
func status(cmd *cobra.Command, c *color.Color, format string, args ...any) {
	c.Fprintf(cmd.ErrOrStderr(), format+"\n", args...)
}
