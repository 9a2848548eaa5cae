package parser

import (
	"strings"

	"vtcopy/internal/domain"
)

// ExtractStructured is tier 1. It expects runner headers of the form
// "FAIL <file> > <suite> > <test>" and reads each test's details from the text
// between its header and the next FAIL line or divider run.
func ExtractStructured(text string) []domain.FailedTest {
	var failures []domain.FailedTest

	for _, p := range Patterns[FieldFileAndTestHeader] {
		for _, m := range p.Expr.FindAllStringSubmatchIndex(text, -1) {
			start := lineEnd(text, m[0])
			// Search from the header's newline so a FAIL on the very next line still counts.
			end := max(nextBoundary(text, max(start-1, 0), failBoundary, dividerBoundary), start)
			section := text[start:end]

			t := domain.NewFailedTest()
			t.FilePath = text[m[2]:m[3]]
			t.TestName = strings.TrimSpace(text[m[4]:m[5]])
			fillDetails(&t, section)
			failures = append(failures, t)
		}
		if len(failures) > 0 {
			return failures
		}
	}

	// No combined header: split on FAIL lines and find file and test separately.
	for _, section := range splitSections(text, Patterns[FieldFailLine][0].Expr) {
		file := firstMatch(FieldFilePath, section)
		if file == "" {
			continue
		}
		test := firstMatch(FieldTestName, section)
		if test == "" {
			continue
		}

		t := domain.NewFailedTest()
		t.FilePath = file
		t.TestName = test
		fillDetails(&t, section)
		failures = append(failures, t)
	}

	return failures
}
