package discovery

import (
	"path/filepath"
	"strings"
)

// Filter filters file paths and test names by pattern
type Filter struct{}

// NewFilter creates a new Filter
func NewFilter() *Filter {
	return &Filter{}
}

// FilterByName keeps the paths whose base name matches pattern.
// Supports patterns like "*client.test.ts" or "*api*"; a pattern without
// wildcards is a substring match.
func (f *Filter) FilterByName(paths []string, pattern string) []string {
	if pattern == "" {
		return paths
	}

	var filtered []string
	for _, p := range paths {
		if Match(pattern, filepath.Base(p)) {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

// Match reports whether name matches pattern using the same rules as FilterByName.
func Match(pattern, name string) bool {
	if pattern == "" {
		return true
	}

	if matched, err := filepath.Match(pattern, name); err == nil && matched {
		return true
	}

	if !strings.ContainsAny(pattern, "*?") {
		return strings.Contains(name, pattern)
	}

	// "*api*" style patterns: every literal part must appear, in order.
	if strings.Contains(pattern, "*") {
		rest := name
		found := false
		for _, part := range strings.Split(pattern, "*") {
			if part == "" {
				continue
			}
			idx := strings.Index(rest, part)
			if idx < 0 {
				return false
			}
			rest = rest[idx+len(part):]
			found = true
		}
		return found
	}

	return false
}
