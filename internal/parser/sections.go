package parser

import (
	"regexp"
	"strings"

	"vtcopy/internal/domain"
)

const (
	unknownFile  = domain.UnknownFile
	unknownTest  = domain.UnknownTest
	unknownError = domain.UnknownError
)

// nextBoundary returns the index of the nearest boundary match at or after from,
// or len(text) when none of the markers occur.
func nextBoundary(text string, from int, markers ...*regexp.Regexp) int {
	if from >= len(text) {
		return len(text)
	}
	end := len(text)
	rest := text[from:]
	for _, m := range markers {
		loc := m.FindStringIndex(rest)
		if loc != nil && from+loc[0] < end {
			end = from + loc[0]
		}
	}
	return end
}

// lineEnd returns the index just past the newline that ends the line containing pos.
func lineEnd(text string, pos int) int {
	i := strings.IndexByte(text[pos:], '\n')
	if i == -1 {
		return len(text)
	}
	return pos + i + 1
}

// splitSections splits text on marker and returns every chunk after the first,
// each prefixed with "FAIL " so header patterns that expect the marker still apply.
func splitSections(text string, marker *regexp.Regexp) []string {
	parts := marker.Split(text, -1)
	if len(parts) < 2 {
		return nil
	}
	sections := make([]string, 0, len(parts)-1)
	for _, p := range parts[1:] {
		sections = append(sections, "FAIL "+p)
	}
	return sections
}

// fillDetails populates the per-section fields of t from section.
func fillDetails(t *domain.FailedTest, section string) {
	t.ErrorMessage = ExtractErrorMessage(section)
	t.LineNumber = ExtractLineNumber(section)
	t.CodeSnippet = ExtractCodeSnippet(section)
	t.Expected = ExtractExpected(section)
	t.Received = ExtractReceived(section)
}

// fileAndTestFromHeader reads the combined "FAIL path > test" header.
func fileAndTestFromHeader(text string) (file, test string, ok bool) {
	for _, p := range Patterns[FieldFileAndTestHeader] {
		m := p.Expr.FindStringSubmatch(text)
		if m != nil {
			return m[1], strings.TrimSpace(m[2]), true
		}
	}
	return "", "", false
}
