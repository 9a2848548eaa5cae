// Package selection chooses failures without a terminal UI: the file stage
// and the test stage of the picker expressed as flag values.
package selection

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"vtcopy/internal/discovery"
	"vtcopy/internal/domain"
)

// All selects every candidate at either stage.
const All = "all"

// ErrNoMatch is returned when a choice matches no candidate.
var ErrNoMatch = errors.New("no matching selection")

// SelectFiles picks groups by choice. An empty choice or "all" keeps every
// group, and a single group is always kept. Otherwise choice is a list of
// 1-based indexes and ranges ("1,3-4"), or a file name pattern matched against
// the display name and the full path.
func SelectFiles(groups []domain.TestFileGroup, choice string) ([]domain.TestFileGroup, error) {
	choice = strings.TrimSpace(choice)
	if len(groups) <= 1 || choice == "" || strings.EqualFold(choice, All) {
		return groups, nil
	}

	if indexes, ok := parseIndexes(choice, len(groups)); ok {
		out := make([]domain.TestFileGroup, 0, len(indexes))
		for _, i := range indexes {
			out = append(out, groups[i])
		}
		return out, nil
	}

	var out []domain.TestFileGroup
	for _, g := range groups {
		if discovery.Match(choice, g.DisplayName) || discovery.Match(choice, g.FilePath) {
			out = append(out, g)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: file %q", ErrNoMatch, choice)
	}
	return out, nil
}

// SelectTests picks tests by choice with the same rules as SelectFiles,
// matching patterns against the test name. The result keeps input order.
func SelectTests(tests []domain.FailedTest, choice string) ([]domain.FailedTest, error) {
	choice = strings.TrimSpace(choice)
	if len(tests) <= 1 || choice == "" || strings.EqualFold(choice, All) {
		return tests, nil
	}

	if indexes, ok := parseIndexes(choice, len(tests)); ok {
		out := make([]domain.FailedTest, 0, len(indexes))
		for _, i := range indexes {
			out = append(out, tests[i])
		}
		return out, nil
	}

	var out []domain.FailedTest
	for _, t := range tests {
		if discovery.Match(choice, t.TestName) {
			out = append(out, t)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: test %q", ErrNoMatch, choice)
	}
	return out, nil
}

// Apply runs both stages over the groups of failures and flattens the result.
func Apply(groups []domain.TestFileGroup, fileChoice, testChoice string) ([]domain.FailedTest, error) {
	files, err := SelectFiles(groups, fileChoice)
	if err != nil {
		return nil, err
	}

	var all []domain.FailedTest
	for _, g := range files {
		all = append(all, g.FailedTests...)
	}
	return SelectTests(all, testChoice)
}

// parseIndexes turns "2,4-5" into sorted, unique 0-based indexes below n.
// It reports false when choice is not an index list or is out of range.
func parseIndexes(choice string, n int) ([]int, bool) {
	seen := make([]bool, n)
	for _, part := range strings.Split(choice, ",") {
		part = strings.TrimSpace(part)
		lo, hi, isRange := strings.Cut(part, "-")

		start, err := strconv.Atoi(strings.TrimSpace(lo))
		if err != nil {
			return nil, false
		}
		end := start
		if isRange {
			if end, err = strconv.Atoi(strings.TrimSpace(hi)); err != nil {
				return nil, false
			}
		}
		if start < 1 || end > n || start > end {
			return nil, false
		}
		for i := start; i <= end; i++ {
			seen[i-1] = true
		}
	}

	var out []int
	for i, ok := range seen {
		if ok {
			out = append(out, i)
		}
	}
	return out, true
}
