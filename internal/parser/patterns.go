package parser

import "regexp"

// Pattern is one candidate regular expression for a field.
// Group selects the submatch to return (0 = whole match).
type Pattern struct {
	Name  string
	Expr  *regexp.Regexp
	Group int
}

func pat(name string, group int, expr string) Pattern {
	return Pattern{Name: name, Expr: regexp.MustCompile(expr), Group: group}
}

// Field names of the pattern library.
const (
	FieldFailLine          = "failLine"
	FieldTestName          = "testName"
	FieldFilePath          = "filePath"
	FieldErrorMessage      = "errorMessage"
	FieldLineNumber        = "lineNumber"
	FieldLineNumberInText  = "lineNumberInText"
	FieldCodeSnippet       = "codeSnippet"
	FieldExpected          = "expected"
	FieldReceived          = "received"
	FieldFileAndTestHeader = "filePathWithTestName"
	FieldFailedTestLine    = "failedTestPatterns"
	FieldFilePathDetector  = "filePathPatterns"
	FieldFailedTestsHeader = "failedTestsHeader"
	FieldErrorLine         = "errorLine"
	FieldTestDeclaration   = "testDeclaration"
	FieldFailureKeyword    = "failureKeyword"
)

// SnippetMarker precedes the source location of a failing assertion.
const SnippetMarker = "❯ "

// Patterns is the pattern library. Lists are ordered: the first match wins.
// Patterns use RE2 syntax, so bodies that other engines bound with a lookahead are
// written as (body)(?:terminator) and return Group 1.
var Patterns = map[string][]Pattern{
	// FAIL src/example.test.ts
	FieldFailLine: {
		pat("fail-line", 0, `(?m)^[ \t]*FAIL[ \t]+`),
	},

	// NavigationHandler > handleBeforeUnload > sends a beacon 12ms
	FieldTestName: {
		pat("suite-path", 1, `(?m)>[ \t]+([^>\s][^\n]*?)(?:[ \t]+\d+ms)?[ \t]*$`),
	},

	// FAIL src/recorder/handlers/NavigationHandler.test.ts
	FieldFilePath: {
		pat("fail-or-arrow", 1, `(?i)(?:FAIL|❯)[ \t]+([a-zA-Z0-9_\-/.]+\.(?:spec|test)\.[jt]sx?)`),
	},

	// AssertionError: expected "spy" to be called with arguments: [ ... ]
	FieldErrorMessage: {
		pat("error-prefix", 1, `(?s)(?:AssertionError|TypeError|ReferenceError|Error):[ \t]+(.+?)(?:\n\s*❯|\n\s*\n|\n\s*$|$)`),
	},

	// ❯ src/recorder/handlers/NavigationHandler.test.ts:162:42
	FieldLineNumber: {
		pat("arrow-location", 1, `❯[ \t]+[\w/.\-]+:(\d+:\d+)`),
	},

	// at src/a.test.ts:5:17 (no arrow)
	FieldLineNumberInText: {
		pat("arrow-location", 1, `❯[ \t]+[\w/.\-]+:(\d+:\d+)`),
		pat("path-location", 1, `[\w/.\-]+\.[cm]?[jt]sx?:(\d+:\d+)`),
	},

	FieldCodeSnippet: {
		// ❯ line followed by a numbered code block with a caret line
		pat("arrow-caret-block", 0, `❯[ \t]+[\w/.\-]+:\d+:\d+\n[\s\S]*?\d+[ \t]*\|[^\n]*\n[ \t]*\|[^\n]*\^[^\n]*\n(?:[ \t]*\d+[ \t]*\|[^\n]*\n?)*`),
		// at least three numbered code lines
		pat("numbered-lines", 0, `\n[ \t]*\d+[ \t]*\|[^\n]+\n[ \t]*\d+[ \t]*\|[^\n]+\n[ \t]*\d+[ \t]*\|[^\n]+(?:\n[ \t]*\d+[ \t]*\|[^\n]+)*`),
		// a numbered line followed by a caret line
		pat("caret-line", 0, `\n[ \t]*\d+[ \t]*\|[^\n]*\n[ \t]*\|[^\n]*\^[^\n]*\n`),
		// stack trace frames
		pat("stack-frames", 0, `\n[ \t]*at[ \t]+[^\n]+(?:\n[ \t]*at[ \t]+[^\n]+)+`),
		// object literal with a quoted value
		pat("object-literal", 0, `\{\s*[\s\S]*?:\s*["'][\s\S]*?["'][\s\S]*?\}`),
	},

	FieldExpected: {
		pat("expected-label", 1, `(Expected:[\s\S]*?)(?:\n\s*Received:|\n\s*Number of calls:|\n\s*$|$)`),
		pat("expected-value-label", 1, `(Expected value:[\s\S]*?)(?:\n\s*Received:|\n\s*Actual:|\n\s*$|$)`),
		pat("diff-minus", 1, `(?m)^[ \t]*- Expected[ \t]*\n[ \t]*\+ Received[ \t]*\n\s*\n((?:[ \t]*-[^\n]*(?:\n|$))+)`),
		pat("expect-call", 1, `expect\([^)]+\)\.(?:not\.)?to[A-Za-z]+\(([^)]+)\)`),
		pat("expected-sentence", 1, `(Expected [\s\S]*?)(?:\n\s*[Bb]ut got:|\n\s*\n|\n\s*$|$)`),
	},

	FieldReceived: {
		pat("received-with-calls", 1, `(Received:[\s\S]*?Number of calls:[^\n]*)(?:\n\s*\n|\n\s*❯|\n\s*⎯{10,}|\n\s*$|$)`),
		pat("received-label", 1, `(Received:[\s\S]*?)(?:\n\s*\n|\n\s*❯|\n\s*⎯{10,}|\n\s*$|$)`),
		pat("diff-plus", 1, `(?m)^[ \t]*- Expected[ \t]*\n[ \t]*\+ Received[ \t]*\n\s*\n(?:[ \t]*-[^\n]*\n)*((?:[ \t]*\+[^\n]*(?:\n|$))+)`),
		pat("actual-label", 1, `(Actual:[\s\S]*?)(?:\n\s*\n|\n\s*$|$)`),
		pat("but-got", 1, `((?i:but got):[\s\S]*?)(?:\n\s*\n|\n\s*$|$)`),
		pat("instead-received", 1, `(Instead received:[\s\S]*?)(?:\n\s*\n|\n\s*$|$)`),
	},

	// FAIL src/recorder/ActionRecorder.test.ts > ActionRecorder > basics
	FieldFileAndTestHeader: {
		pat("fail-file-suite", 0, `(?m)FAIL[ \t]+([a-zA-Z0-9_\-/.]+\.(?:spec|test)\.[jt]sx?)[ \t]+>[ \t]+([^>\s][^\n]*?)(?:[ \t]+\d+ms)?[ \t]*$`),
	},

	// Tier 2 candidates. Group 1 is the test name, group 2 (optional) the message.
	FieldFailedTestLine: {
		pat("cross-arrow", 0, `(?:×|✗|✘)[ \t]+([^\n]+?)[ \t]+\d+ms[ \t]*\n[^\n]*?→[ \t]+([^\n]+)`),
		pat("keyword-colon", 0, `(?:FAILED|FAIL|ERROR)(?:[ \t]*-[ \t]*|[ \t]+)([^\n]+)\n[^\n]*?(?:Error|Failed|AssertionError):[ \t]*([^\n]+)`),
		pat("quoted-test", 0, `test[ \t]+['"]([^'"\n]+)['"][ \t]+(?:failed|did not pass)[^\n]*(?:\n[^\n]*?(?:Error|Failed):[ \t]*([^\n]+))?`),
		pat("fail-next-line", 0, `FAIL[ \t]+([^\n]+?)[ \t]*\n\s*((?:AssertionError|Error):[^\n]+)`),
	},

	FieldFilePathDetector: {
		pat("keyword-path", 1, `(?i)(?:FAIL|ERROR|FAILED)[ \t]+([^\s]+\.[jt]sx?)`),
		pat("bullet-path", 1, `(?i)● ([^\s]+\.[jt]sx?)`),
		pat("slash-path", 1, `(?i)([^/\s]+/[^\s:]+\.[jt]sx?)`),
		pat("test-file", 1, `(?i)([a-zA-Z0-9_\-/.]+\.(?:spec|test)\.[jt]sx?)`),
	},

	// ⎯⎯⎯⎯⎯⎯ Failed Tests 2 ⎯⎯⎯⎯⎯⎯
	FieldFailedTestsHeader: {
		pat("failed-tests-banner", 0, `⎯+[ \t]*Failed Tests?(?:[ \t]+\d+)?[ \t]*⎯+`),
	},

	// Explicit error lines for the line scan. Group 1 is the message.
	FieldErrorLine: {
		pat("error-colon", 1, `(?:\w*Error|FAILED|Failed|FAIL):[ \t]*(\S[^\n]*)`),
		pat("cross-arrow", 1, `(?:×|✗|✘)[^\n]*→[ \t]*(\S[^\n]*)`),
	},

	FieldTestDeclaration: {
		pat("call", 1, "(?:it|test|describe)(?:\\.\\w+)?[ \\t]*\\([ \\t]*['\"`]([^'\"`\\n]+)['\"`]"),
		pat("cross-mark", 1, `(?:×|✗|✘)[ \t]+([^\n]+?)(?:[ \t]+\d+ms)?[ \t]*$`),
		pat("suite-path", 1, `>[ \t]+([^>\s][^\n]*?)(?:[ \t]+\d+ms)?[ \t]*$`),
	},

	FieldFailureKeyword: {
		pat("keyword", 0, `(?i)(?:error|fail|failed|assertion|expect|×|✗|✘)`),
	},
}

// Boundary markers that end a failure section.
var (
	failBoundary    = regexp.MustCompile(`\n[ \t]*FAIL[ \t]`)
	dividerBoundary = regexp.MustCompile(`\n⎯{9,}`)
)
