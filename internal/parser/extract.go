package parser

import (
	"strings"
)

// tryPatterns returns the trimmed selected group of the first pattern that matches text.
func tryPatterns(candidates []Pattern, text string) (string, bool) {
	for _, p := range candidates {
		m := p.Expr.FindStringSubmatch(text)
		if m == nil || p.Group >= len(m) {
			continue
		}
		return strings.TrimSpace(m[p.Group]), true
	}
	return "", false
}

// firstMatch is tryPatterns for a single library field, discarding the ok flag.
func firstMatch(field, text string) string {
	s, _ := tryPatterns(Patterns[field], text)
	return s
}

// ExtractExpected returns the expected value of an assertion found in text, or "".
func ExtractExpected(text string) string {
	return firstMatch(FieldExpected, text)
}

// ExtractReceived returns the received value of an assertion found in text, or "".
func ExtractReceived(text string) string {
	return firstMatch(FieldReceived, text)
}

// ExtractCodeSnippet returns a source excerpt around the failure, or "".
// A snippet anchored at the ❯ marker is preferred over earlier bracketed content.
func ExtractCodeSnippet(text string) string {
	if idx := strings.Index(text, SnippetMarker); idx != -1 {
		if s, ok := tryPatterns(Patterns[FieldCodeSnippet], text[idx:]); ok {
			return s
		}
	}
	return firstMatch(FieldCodeSnippet, text)
}

// ExtractErrorMessage returns the assertion/exception message in text, or UnknownError.
func ExtractErrorMessage(text string) string {
	if s := firstMatch(FieldErrorMessage, text); s != "" {
		return s
	}
	return unknownError
}

// ExtractLineNumber returns the "line:column" of the failure marked with ❯, or "".
func ExtractLineNumber(text string) string {
	return firstMatch(FieldLineNumber, text)
}

// ExtractFilePath tries the file path detectors in order, returning UnknownFile on failure.
func ExtractFilePath(text string) string {
	if s := firstMatch(FieldFilePathDetector, text); s != "" {
		return s
	}
	return unknownFile
}
