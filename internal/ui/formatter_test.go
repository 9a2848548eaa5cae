package ui

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vtcopy/internal/config"
	"vtcopy/internal/discovery"
	"vtcopy/internal/domain"
)

func newTestFormatter(t *testing.T, cfg *config.Config) (*Formatter, *bytes.Buffer) {
	t.Helper()
	color.NoColor = true
	if cfg == nil {
		cfg = config.New()
	}
	var buf bytes.Buffer
	f := NewFormatter(cfg, discovery.NewParser())
	f.SetOutput(&buf)
	return f, &buf
}

func TestPrintFailureTree(t *testing.T) {
	f, buf := newTestFormatter(t, nil)

	f.PrintFailureTree([]domain.FailedTest{
		{FilePath: "src/math.test.ts", TestName: "adds"},
		{FilePath: domain.UnknownFile, TestName: "mystery"},
		{FilePath: "src/api/client.test.ts", TestName: "retries", LineNumber: "20:9"},
		{FilePath: "src/math.test.ts", TestName: "subs"},
	})

	want := strings.Join([]string{
		"├── src",
		"│   ├── api",
		"│   │   └── client.test.ts",
		"│   │       └── retries :20:9",
		"│   └── math.test.ts",
		"│       ├── adds",
		"│       └── subs",
		"└── unknown-file",
		"    └── mystery",
	}, "\n") + "\n"
	assert.Equal(t, want, buf.String())
}

func TestPrintFailureTree_Empty(t *testing.T) {
	f, buf := newTestFormatter(t, nil)
	f.PrintFailureTree(nil)
	assert.Empty(t, buf.String())
}

func TestBuildTree_AbsolutePaths(t *testing.T) {
	root := BuildTree([]domain.FailedTest{{FilePath: "/work/a.test.ts", TestName: "x"}})

	work := root.Children["work"]
	require.NotNil(t, work)
	assert.False(t, work.IsFile)
	file := work.Children["a.test.ts"]
	require.NotNil(t, file)
	assert.True(t, file.IsFile)
	assert.Len(t, file.Failures, 1)
}

func TestFormatter_TruncatesWideNames(t *testing.T) {
	f, _ := newTestFormatter(t, nil)
	f.SetNameWidth(5)

	for _, name := range []string{"abcdefghij", "記録を開始できる"} {
		out := f.truncate(name)
		assert.LessOrEqual(t, runewidth.StringWidth(out), 5, name)
		assert.True(t, strings.HasSuffix(out, "…"), out)
	}
	assert.Equal(t, "short", f.truncate("short"))

	f.SetNameWidth(0)
	assert.Equal(t, "記録を開始できる", f.truncate("記録を開始できる"))
}

func TestPrintMetaStats(t *testing.T) {
	f, buf := newTestFormatter(t, nil)

	f.PrintMetaStats(domain.BatchOutput{
		Meta: domain.BatchMeta{TotalSources: 3, FailedSources: 1, FailedTestCases: 2, DurationSeconds: 1.5, Workers: 4},
		Details: []domain.ExtractionResult{
			{Source: "run-1.log", Tier: domain.TierStructured, Failures: []domain.FailedTest{
				{FilePath: "a.test.ts", TestName: "one"},
				{FilePath: "a.test.ts", TestName: "two"},
			}},
			{Source: "run-2.log", Tier: domain.TierNone},
		},
	})

	out := buf.String()
	assert.Contains(t, out, "Total Logs")
	assert.Contains(t, out, "1.50s")
	assert.Contains(t, out, "✗ 1 log(s) contained 2 failed test case(s)")
	assert.Contains(t, out, "run-1.log (structured)")
	assert.NotContains(t, out, "run-2.log")
	assert.Contains(t, out, "    ├── one")
}

func TestPrintMetaStats_NoFailures(t *testing.T) {
	f, buf := newTestFormatter(t, nil)
	f.PrintMetaStats(domain.BatchOutput{Meta: domain.BatchMeta{TotalSources: 1, Workers: 1}})
	assert.Contains(t, buf.String(), "✓ No test failures found!")
}

func TestPrintTestList(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "src"), 0755))
	a := filepath.Join(root, "src", "a.test.ts")
	b := filepath.Join(root, "src", "b.test.ts")
	require.NoError(t, os.WriteFile(a, []byte("it('one', () => {})\nit('two', () => {})\n"), 0644))
	require.NoError(t, os.WriteFile(b, []byte("// nothing yet\n"), 0644))

	cfg := config.New()
	cfg.ProjectPath = root
	f, buf := newTestFormatter(t, cfg)

	require.NoError(t, f.PrintTestList([]string{a, b}, true, map[string]struct{}{"src/a.test.ts": {}}))

	want := "Found 2 test file(s) with test cases:\n\n" +
		"├── src/a.test.ts [F]\n" +
		"│   ├── one\n" +
		"│   └── two\n" +
		"└── src/b.test.ts\n" +
		"    └── (no test cases found)\n"
	assert.Equal(t, want, buf.String())

	count, err := f.CountTestCases([]string{a, b})
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}
