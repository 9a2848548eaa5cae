// Package diagnostics copies compiler and linter diagnostics the same way failed
// tests are copied: parse, filter, group, format.
package diagnostics

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"vtcopy/internal/domain"
	"vtcopy/internal/parser"
)

var (
	// src/a.ts:3:5: error: Cannot find name 'x'
	unixRe = regexp.MustCompile(`^(.+?):(\d+):(\d+):[ \t]*(?i:(error|warning|warn|information|info|note|hint))\b[ \t]*:?[ \t]*(.+)$`)
	// src/a.ts(3,5): error TS2304: Cannot find name 'x'.
	tscRe = regexp.MustCompile(`^(.+?)\((\d+),(\d+)\):[ \t]*(?i:(error|warning|info|message))\b[ \t]+(.+)$`)
)

// Parse reads one diagnostic per matching line. Lines in neither shape are skipped.
func Parse(text string) []domain.Diagnostic {
	var diags []domain.Diagnostic

	for _, line := range strings.Split(parser.Clean(text), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		m := unixRe.FindStringSubmatch(line)
		if m == nil {
			m = tscRe.FindStringSubmatch(line)
		}
		if m == nil {
			continue
		}

		lineNum, _ := strconv.Atoi(m[2])
		colNum, _ := strconv.Atoi(m[3])
		diags = append(diags, domain.Diagnostic{
			File:     m[1],
			Line:     lineNum,
			Column:   colNum,
			Severity: ParseSeverity(m[4]),
			Message:  strings.TrimSpace(m[5]),
		})
	}

	return diags
}

// ParseSeverity maps a tool's severity word onto a Severity.
func ParseSeverity(s string) domain.Severity {
	switch strings.ToLower(s) {
	case "error":
		return domain.SeverityError
	case "warning", "warn":
		return domain.SeverityWarning
	case "info", "information", "note", "message":
		return domain.SeverityInfo
	case "hint":
		return domain.SeverityHint
	default:
		return domain.SeverityUnknown
	}
}

// Filter drops everything but errors when errorsOnly is set.
func Filter(diags []domain.Diagnostic, errorsOnly bool) []domain.Diagnostic {
	if !errorsOnly {
		return diags
	}
	var out []domain.Diagnostic
	for _, d := range diags {
		if d.Severity == domain.SeverityError {
			out = append(out, d)
		}
	}
	return out
}

// Group collects diagnostics sharing a file and message. Diagnostics inside a group
// are ordered by line and groups by file path.
func Group(diags []domain.Diagnostic) []domain.DiagnosticGroup {
	byKey := make(map[string]*domain.DiagnosticGroup)
	var order []string

	for _, d := range diags {
		key := d.File + ":" + d.Message
		group, ok := byKey[key]
		if !ok {
			group = &domain.DiagnosticGroup{
				ID:       key,
				FilePath: d.File,
				Message:  d.Message,
			}
			byKey[key] = group
			order = append(order, key)
		}
		group.Diagnostics = append(group.Diagnostics, d)
	}

	groups := make([]domain.DiagnosticGroup, 0, len(order))
	for _, key := range order {
		g := byKey[key]
		sort.SliceStable(g.Diagnostics, func(i, j int) bool {
			return g.Diagnostics[i].Line < g.Diagnostics[j].Line
		})
		groups = append(groups, *g)
	}

	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].FilePath < groups[j].FilePath
	})

	return groups
}
