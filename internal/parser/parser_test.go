package parser

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vtcopy/internal/domain"
)

func readFixture(t *testing.T, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)
	return string(data)
}

func TestParseVitestOutput_FullRun(t *testing.T) {
	failures, tier := ParseWithTier(readFixture(t, "vitest_failed.txt"))

	require.Len(t, failures, 1)
	assert.Equal(t, domain.TierStructured, tier)

	f := failures[0]
	assert.Equal(t, "src/math.test.ts", f.FilePath)
	assert.Equal(t, "math > adds numbers", f.TestName)
	assert.Equal(t, "expected 2 to be 3 // Object.is equality", f.ErrorMessage)
	assert.Equal(t, "5:17", f.LineNumber)
	assert.Equal(t, "- 3", f.Expected)
	assert.Equal(t, "+ 2", f.Received)
	assert.True(t, strings.HasPrefix(f.CodeSnippet, "❯ src/math.test.ts:5:17"))
	assert.Contains(t, f.CodeSnippet, "expect(1 + 1).toBe(3)")
	assert.Contains(t, f.CodeSnippet, "7| })")
}

func TestParseVitestOutput_SpyAndUnicodeNames(t *testing.T) {
	failures := ParseVitestOutput(readFixture(t, "vitest_spy.txt"))
	require.Len(t, failures, 2)

	spy := failures[0]
	assert.Equal(t, "src/recorder/handlers/NavigationHandler.test.ts", spy.FilePath)
	assert.Equal(t, "NavigationHandler > handleBeforeUnload > sends a beacon", spy.TestName)
	assert.Contains(t, spy.ErrorMessage, `expected "spy" to be called with arguments`)
	assert.Equal(t, "162:42", spy.LineNumber)
	assert.Equal(t, "{ type: 'HISTORY_NAVIGATE' }", spy.Expected)
	assert.True(t, strings.HasPrefix(spy.Received, "Received:"))
	assert.True(t, strings.HasSuffix(spy.Received, "Number of calls: 1"))
	assert.Contains(t, spy.CodeSnippet, "toHaveBeenCalledWith")

	typeErr := failures[1]
	assert.Equal(t, "src/recorder/ActionRecorder.test.ts", typeErr.FilePath)
	assert.Equal(t, "ActionRecorder > 基本機能 > 記録を開始できる", typeErr.TestName)
	assert.Equal(t, "Cannot read properties of undefined (reading 'start')", typeErr.ErrorMessage)
	assert.Equal(t, "31:18", typeErr.LineNumber)
	assert.Empty(t, typeErr.CodeSnippet)
	assert.Empty(t, typeErr.Expected)
	assert.Empty(t, typeErr.Received)
}

func TestParseVitestOutput_WellFormedBlock(t *testing.T) {
	input := " FAIL  a.test.ts > adds numbers\nError: expected 2 to be 3\n ❯ a.test.ts:3:15\n"

	failures := ParseVitestOutput(input)
	require.Len(t, failures, 1)
	assert.Equal(t, "a.test.ts", failures[0].FilePath)
	assert.Equal(t, "adds numbers", failures[0].TestName)
	assert.Contains(t, failures[0].ErrorMessage, "expected 2 to be 3")
	assert.Equal(t, "3:15", failures[0].LineNumber)
}

func TestParseVitestOutput_ANSIColored(t *testing.T) {
	input := "\x1b[31m\x1b[1m FAIL \x1b[22m\x1b[39m a.test.ts \x1b[2m>\x1b[22m adds numbers\r\n" +
		"\x1b[31mError: expected 2 to be 3\x1b[39m\r\n"

	failures := ParseVitestOutput(input)
	require.Len(t, failures, 1)
	assert.Equal(t, "a.test.ts", failures[0].FilePath)
	assert.Equal(t, "adds numbers", failures[0].TestName)
	assert.Equal(t, "expected 2 to be 3", failures[0].ErrorMessage)
}

func TestParseVitestOutput_NoFailureMarkers(t *testing.T) {
	inputs := []string{
		"",
		"\n\n",
		" ✓ src/math.test.ts  (3 tests) 4ms\n\n Test Files  1 passed (1)\n      Tests  3 passed (3)\n",
		"Just some prose about the weather.",
	}
	for _, in := range inputs {
		failures := ParseVitestOutput(in)
		assert.NotNil(t, failures)
		assert.Empty(t, failures, "input %q", in)
	}
}

func TestParseVitestOutput_FallsBackToCascade(t *testing.T) {
	input := " × parses numbers 4ms\n   → expected NaN to be 42\nat src/utils/parse.test.ts:12:5\n"

	failures, tier := ParseWithTier(input)
	require.Len(t, failures, 1)
	assert.Equal(t, domain.TierCascade, tier)
	assert.Equal(t, "parses numbers", failures[0].TestName)
	assert.Equal(t, "expected NaN to be 42", failures[0].ErrorMessage)
	assert.Equal(t, "src/utils/parse.test.ts", failures[0].FilePath)
	assert.Equal(t, "12:5", failures[0].LineNumber)
}

func TestParseVitestOutput_GarbledHeaderUsesCascade(t *testing.T) {
	input := "FAIL - adds numbers\nError: expected 2 to be 3\n    at a.test.ts:5:17\n"

	assert.Empty(t, ExtractStructured(Clean(input)))

	failures, tier := ParseWithTier(input)
	assert.Equal(t, domain.TierCascade, tier)
	require.NotEmpty(t, failures)
	assert.Equal(t, "adds numbers", failures[0].TestName)
	assert.Equal(t, "expected 2 to be 3", failures[0].ErrorMessage)
	assert.Equal(t, "a.test.ts", failures[0].FilePath)
}

func TestParseVitestOutput_FallsBackToLineScan(t *testing.T) {
	input := "stdout | suite\n" +
		" × rejects empty input 3ms\n" +
		"TypeError: Cannot read properties of undefined (reading 'trim')\n" +
		"Error thrown in src/validate.test.ts:10:3\n"

	failures, tier := ParseWithTier(input)
	assert.Equal(t, domain.TierLineScan, tier)
	require.Len(t, failures, 1)
	assert.Equal(t, "rejects empty input", failures[0].TestName)
	assert.Equal(t, "Cannot read properties of undefined (reading 'trim')", failures[0].ErrorMessage)
	assert.Equal(t, "src/validate.test.ts", failures[0].FilePath)
	assert.Equal(t, "10:3", failures[0].LineNumber)
}

func TestParseVitestOutput_ProseWithError(t *testing.T) {
	inputs := []string{
		"The error in this sentence is not a test failure.",
		"We expect nothing to fail here.\nAn assertion is just a statement.",
		"Error: something odd happened",
	}
	for _, in := range inputs {
		var failures []domain.FailedTest
		require.NotPanics(t, func() { failures = ParseVitestOutput(in) })
		for _, f := range failures {
			assert.NotEmpty(t, f.FilePath)
			assert.NotEmpty(t, f.TestName)
			assert.NotEmpty(t, f.ErrorMessage)
		}
	}

	failures := ParseVitestOutput("Error: something odd happened")
	require.Len(t, failures, 1)
	assert.Equal(t, domain.UnknownFile, failures[0].FilePath)
	assert.Equal(t, domain.UnknownTest, failures[0].TestName)
	assert.Equal(t, "something odd happened", failures[0].ErrorMessage)
}

func TestParseVitestOutput_UniquePairs(t *testing.T) {
	block := " × sums 2ms\n   → expected 1 to be 2\n  at src/sum.test.ts:3:3\n"
	failures := ParseVitestOutput(block + "\n" + block)

	require.Len(t, failures, 1)
	assert.Equal(t, "sums", failures[0].TestName)

	seen := map[string]bool{}
	for _, f := range ParseVitestOutput(readFixture(t, "vitest_spy.txt")) {
		assert.False(t, seen[f.Key()], "duplicate %s", f.Key())
		seen[f.Key()] = true
	}
}

func TestDedupe_KeepsFirstOccurrence(t *testing.T) {
	in := []domain.FailedTest{
		{FilePath: "a.test.ts", TestName: "x", ErrorMessage: "first"},
		{FilePath: "b.test.ts", TestName: "x", ErrorMessage: "other file"},
		{FilePath: "a.test.ts", TestName: "x", ErrorMessage: "second"},
		{FilePath: "a.test.ts", TestName: "y", ErrorMessage: "third"},
	}

	out := Dedupe(in)
	require.Len(t, out, 3)
	assert.Equal(t, "first", out[0].ErrorMessage)
	assert.Equal(t, "other file", out[1].ErrorMessage)
	assert.Equal(t, "third", out[2].ErrorMessage)
}

func TestVitestParser_ImplementsParser(t *testing.T) {
	var p Parser = NewVitestParser()
	failures := p.Parse(readFixture(t, "vitest_failed.txt"))
	require.Len(t, failures, 1)
	assert.Equal(t, "src/math.test.ts", failures[0].FilePath)
}

func TestClean(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"ansi colors", "\x1b[31m FAIL \x1b[39m src/a.test.ts", " FAIL  src/a.test.ts"},
		{"crlf", "a\r\nb\rc", "a\nb\nc"},
		{"nfd to nfc", "cafe\u0301 \u30c6\u3099", "caf\u00e9 \u30c7"},
		{"plain", "nothing to do", "nothing to do"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Clean(tt.input))
		})
	}
}
