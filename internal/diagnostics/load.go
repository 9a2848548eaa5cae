package diagnostics

import (
	"os"
	"path/filepath"
	"strings"

	"vtcopy/internal/domain"
	"vtcopy/internal/logging"
)

// LoadLineContent fills LineContent from the referenced source files. Relative paths
// are resolved against root. Unreadable files leave LineContent empty.
func LoadLineContent(diags []domain.Diagnostic, root string) []domain.Diagnostic {
	cache := make(map[string][]string)
	out := make([]domain.Diagnostic, len(diags))

	for i, d := range diags {
		out[i] = d

		lines, ok := cache[d.File]
		if !ok {
			lines = readLines(resolve(root, d.File))
			cache[d.File] = lines
		}
		if d.Line >= 1 && d.Line <= len(lines) {
			out[i].LineContent = lines[d.Line-1]
		}
	}

	return out
}

func resolve(root, file string) string {
	if root == "" || filepath.IsAbs(file) {
		return file
	}
	return filepath.Join(root, file)
}

func readLines(path string) []string {
	data, err := os.ReadFile(path)
	if err != nil {
		logging.Debug("line content unavailable", "path", path, "error", err)
		return nil
	}
	return strings.Split(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n")
}
