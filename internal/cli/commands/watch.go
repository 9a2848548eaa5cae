package commands

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fatih/color"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"vtcopy/internal/capture"
	"vtcopy/internal/config"
	"vtcopy/internal/execution"
	"vtcopy/internal/logging"
)

// DefaultDebounce is how long a log must stay quiet before it is parsed again.
const DefaultDebounce = 300 * time.Millisecond

// WatchCommand handles the watch command
type WatchCommand struct {
	config   *config.Config
	runner   *execution.Runner
	debounce time.Duration
}

// NewWatchCommand creates a new WatchCommand
func NewWatchCommand(cfg *config.Config, runner *execution.Runner) *WatchCommand {
	return &WatchCommand{
		config:   cfg,
		runner:   runner,
		debounce: DefaultDebounce,
	}
}

// Execute runs the command
func (wc *WatchCommand) Execute(cmd *cobra.Command, args []string) error {
	path := args[0]
	status(cmd, color.New(color.FgCyan), "Watching %s (Ctrl+C to stop)", path)

	wc.copyOnce(cmd, path)
	return watchFile(cmd.Context(), path, wc.debounce, func() {
		wc.copyOnce(cmd, path)
	})
}

// copyOnce re-parses the log and copies its failures. Errors are reported and
// watching goes on.
func (wc *WatchCommand) copyOnce(cmd *cobra.Command, path string) {
	stamp := time.Now().Format("15:04:05")

	result := wc.runner.Run(cmd.Context(), capture.NewFileSource(path))
	if result.Error != nil {
		status(cmd, color.New(color.FgYellow), "[%s] %v", stamp, result.Error)
		return
	}
	if len(result.Failures) == 0 {
		status(cmd, color.New(color.FgGreen), "[%s] ✓ No test failures found", stamp)
		return
	}

	failures := result.Failures
	if wc.config.ResolveFiles {
		failures = resolveFiles(wc.config, failures)
	}
	if err := writeReport(cmd, wc.config, failures); err != nil {
		status(cmd, color.New(color.FgRed), "[%s] %v", stamp, err)
	}
}

// watchFile calls onChange after path is written or replaced and has then been
// quiet for debounce. It returns when ctx is done.
func watchFile(ctx context.Context, path string, debounce time.Duration, onChange func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory so editors and runners that replace the file are seen.
	target := filepath.Clean(path)
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", path, err)
	}

	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target || event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			logging.Debug("log changed", "path", event.Name, "op", event.Op.String())
			timer.Reset(debounce)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logging.Warn("watch error", "error", err)
		case <-timer.C:
			onChange()
		}
	}
}
