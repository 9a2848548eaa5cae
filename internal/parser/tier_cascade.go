package parser

import (
	"strings"
	"unicode/utf8"

	"vtcopy/internal/domain"
)

// Context window around a tier 2 match, in bytes.
const (
	contextBefore = 200
	contextAfter  = 800
)

// ExtractCascade is tier 2. Every failed-test-line pattern is applied to the whole
// text and every match yields a record; file path and assertion details are read
// from a bounded window around the match.
func ExtractCascade(text string) []domain.FailedTest {
	var failures []domain.FailedTest

	for _, p := range Patterns[FieldFailedTestLine] {
		for _, m := range p.Expr.FindAllStringSubmatchIndex(text, -1) {
			name := strings.TrimSpace(text[m[2]:m[3]])
			if name == "" {
				continue
			}

			t := domain.NewFailedTest()
			t.TestName = name
			if len(m) > 5 && m[4] >= 0 {
				if msg := strings.TrimSpace(text[m[4]:m[5]]); msg != "" {
					t.ErrorMessage = msg
				}
			}

			window := contextWindow(text, m[0], m[1])
			t.FilePath = ExtractFilePath(window)
			t.LineNumber = firstMatch(FieldLineNumberInText, window)
			t.Expected = ExtractExpected(window)
			t.Received = ExtractReceived(window)
			t.CodeSnippet = ExtractCodeSnippet(window)
			failures = append(failures, t)
		}
	}

	return failures
}

// contextWindow returns text[start-contextBefore : end+contextAfter], clamped and
// widened to UTF-8 boundaries.
func contextWindow(text string, start, end int) string {
	lo := max(0, start-contextBefore)
	hi := min(len(text), end+contextAfter)
	for lo > 0 && !utf8.RuneStart(text[lo]) {
		lo--
	}
	for hi < len(text) && !utf8.RuneStart(text[hi]) {
		hi++
	}
	return text[lo:hi]
}
