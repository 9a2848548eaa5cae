package parser

import (
	"regexp"
	"strings"

	"vtcopy/internal/domain"
)

// Line scan context: keyword lines considered before and after an error line,
// and keyword lines skipped after a record is emitted.
const (
	scanLinesBefore = 3
	scanLinesAfter  = 3
	scanSkipLines   = 2
)

var failSectionSplit = regexp.MustCompile(`\n\s*FAIL\s+`)

// ExtractLineScan is tier 3, the last resort. It tries, in order: the sections of a
// "Failed Tests" banner, any FAIL section with a recognizable test file, and finally
// a scan of individual lines containing failure keywords.
func ExtractLineScan(text string) []domain.FailedTest {
	if failures := scanFailedTestsBanner(text); len(failures) > 0 {
		return failures
	}
	if failures := scanFailSections(text); len(failures) > 0 {
		return failures
	}
	return scanKeywordLines(text)
}

func scanFailedTestsBanner(text string) []domain.FailedTest {
	banner := Patterns[FieldFailedTestsHeader][0].Expr
	loc := banner.FindStringIndex(text)
	if loc == nil {
		return nil
	}
	detailed := text[loc[1]:]
	if next := banner.FindStringIndex(detailed); next != nil {
		detailed = detailed[:next[0]]
	}

	var failures []domain.FailedTest
	for _, section := range splitSections(detailed, failSectionSplit) {
		file, test, ok := fileAndTestFromHeader(section)
		if !ok {
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

func scanFailSections(text string) []domain.FailedTest {
	var failures []domain.FailedTest
	for _, section := range splitSections(text, failSectionSplit) {
		file := firstMatch(FieldFilePath, section)
		if file == "" {
			continue
		}
		t := domain.NewFailedTest()
		t.FilePath = file
		if _, test, ok := fileAndTestFromHeader(section); ok {
			t.TestName = test
		}
		fillDetails(&t, section)
		failures = append(failures, t)
	}
	return failures
}

func scanKeywordLines(text string) []domain.FailedTest {
	keyword := Patterns[FieldFailureKeyword][0].Expr
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if keyword.MatchString(line) {
			lines = append(lines, line)
		}
	}

	var failures []domain.FailedTest
	for i := 0; i < len(lines); i++ {
		msg, ok := tryPatterns(Patterns[FieldErrorLine], lines[i])
		if !ok {
			continue
		}

		before := lines[max(0, i-scanLinesBefore):i]
		after := lines[min(len(lines), i+1):min(len(lines), i+1+scanLinesAfter)]

		t := domain.NewFailedTest()
		if msg != "" {
			t.ErrorMessage = msg
		}
		for _, prev := range before {
			if name, ok := tryPatterns(Patterns[FieldTestDeclaration], prev); ok && name != "" {
				t.TestName = name
				break
			}
		}

		window := strings.Join(append(append(append([]string{}, before...), lines[i]), after...), "\n")
		t.FilePath = ExtractFilePath(window)
		t.LineNumber = firstMatch(FieldLineNumberInText, window)
		t.Expected = ExtractExpected(window)
		t.Received = ExtractReceived(window)
		t.CodeSnippet = ExtractCodeSnippet(window)
		failures = append(failures, t)

		i += scanSkipLines
	}
	return failures
}
