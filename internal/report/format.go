package report

import (
	"fmt"
	"strings"

	"vtcopy/internal/domain"
)

// Separator sits between two rendered failures.
const Separator = "\n---\n\n"

// FormatFailedTests renders tests as labeled blocks for pasting into a prompt or issue.
// Optional sections are written only for non-empty fields.
func FormatFailedTests(tests []domain.FailedTest) string {
	blocks := make([]string, 0, len(tests))
	for _, t := range tests {
		blocks = append(blocks, formatBlock(t))
	}
	return strings.Join(blocks, Separator)
}

func formatBlock(t domain.FailedTest) string {
	var b strings.Builder

	b.WriteString("file: ")
	b.WriteString(t.FilePath)
	if t.LineNumber != "" {
		b.WriteString(":")
		b.WriteString(t.LineNumber)
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "test: %s\n", t.TestName)
	fmt.Fprintf(&b, "error: %s\n", t.ErrorMessage)

	writeSection(&b, "code snippet", t.CodeSnippet)
	writeSection(&b, "expected", t.Expected)
	writeSection(&b, "received", t.Received)

	return b.String()
}

func writeSection(b *strings.Builder, label, value string) {
	if value == "" {
		return
	}
	fmt.Fprintf(b, "\n%s:\n%s\n", label, value)
}

// FormatGroupedTests renders each group under a "# name (path)" header.
func FormatGroupedTests(groups []domain.TestFileGroup) string {
	parts := make([]string, 0, len(groups))
	for _, g := range groups {
		parts = append(parts, fmt.Sprintf("# %s (%s)\n\n%s", g.DisplayName, g.FilePath, FormatFailedTests(g.FailedTests)))
	}
	return strings.Join(parts, "\n\n")
}

// Format picks the grouped or flat rendering.
func Format(tests []domain.FailedTest, groupByFile bool) string {
	if groupByFile {
		return FormatGroupedTests(GroupTestsByFile(tests))
	}
	return FormatFailedTests(tests)
}
