// Package report groups and renders extracted test failures.
package report

import (
	"path"
	"path/filepath"
	"sort"

	"vtcopy/internal/domain"
)

// GroupTestsByFile partitions tests by FilePath. Groups are ordered by ascending file
// path; tests keep their relative order inside a group.
func GroupTestsByFile(tests []domain.FailedTest) []domain.TestFileGroup {
	byFile := make(map[string]*domain.TestFileGroup)
	var order []string

	for _, t := range tests {
		group, ok := byFile[t.FilePath]
		if !ok {
			group = &domain.TestFileGroup{
				FilePath:    t.FilePath,
				DisplayName: DisplayName(t.FilePath),
			}
			byFile[t.FilePath] = group
			order = append(order, t.FilePath)
		}
		group.FailedTests = append(group.FailedTests, t)
	}

	sort.Strings(order)

	groups := make([]domain.TestFileGroup, 0, len(order))
	for _, filePath := range order {
		groups = append(groups, *byFile[filePath])
	}
	return groups
}

// DisplayName returns the last path element of filePath, for pickers and headers.
func DisplayName(filePath string) string {
	if filePath == "" {
		return ""
	}
	return path.Base(filepath.ToSlash(filePath))
}

// Flatten concatenates the tests of groups in group order.
func Flatten(groups []domain.TestFileGroup) []domain.FailedTest {
	var tests []domain.FailedTest
	for _, g := range groups {
		tests = append(tests, g.FailedTests...)
	}
	return tests
}
