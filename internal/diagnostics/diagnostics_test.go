package diagnostics

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vtcopy/internal/domain"
)

const compilerOutput = `
src/b.ts:7:1: warning: Unused variable 'y'
src/a.ts(3,5): error TS2304: Cannot find name 'x'.
src/a.ts:9:2: error: Cannot find name 'x'.
not a diagnostic line
src/a.ts:1:1: error: Cannot find name 'x'.
lib/c.go:12:4: note: declared here
`

func TestParse(t *testing.T) {
	diags := Parse(compilerOutput)
	require.Len(t, diags, 5)

	assert.Equal(t, domain.Diagnostic{
		File: "src/b.ts", Line: 7, Column: 1,
		Severity: domain.SeverityWarning, Message: "Unused variable 'y'",
	}, diags[0])
	assert.Equal(t, domain.Diagnostic{
		File: "src/a.ts", Line: 3, Column: 5,
		Severity: domain.SeverityError, Message: "TS2304: Cannot find name 'x'.",
	}, diags[1])
	assert.Equal(t, domain.SeverityInfo, diags[4].Severity)
	assert.Equal(t, "lib/c.go", diags[4].File)
}

func TestParse_ColoredAndEmpty(t *testing.T) {
	diags := Parse("\x1b[36msrc/a.ts\x1b[0m:2:3: \x1b[31merror\x1b[0m: boom\r\n")
	require.Len(t, diags, 1)
	assert.Equal(t, "src/a.ts", diags[0].File)
	assert.Equal(t, "boom", diags[0].Message)

	assert.Empty(t, Parse(""))
	assert.Empty(t, Parse("src/a.ts:2:3: errorneous text"))
}

func TestParseSeverity(t *testing.T) {
	tests := []struct {
		input    string
		expected domain.Severity
	}{
		{"error", domain.SeverityError},
		{"ERROR", domain.SeverityError},
		{"warn", domain.SeverityWarning},
		{"warning", domain.SeverityWarning},
		{"note", domain.SeverityInfo},
		{"information", domain.SeverityInfo},
		{"hint", domain.SeverityHint},
		{"fatal", domain.SeverityUnknown},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, ParseSeverity(tt.input), tt.input)
	}
}

func TestFilter(t *testing.T) {
	diags := Parse(compilerOutput)

	assert.Len(t, Filter(diags, false), 5)

	errs := Filter(diags, true)
	require.Len(t, errs, 3)
	for _, d := range errs {
		assert.Equal(t, domain.SeverityError, d.Severity)
	}
}

func TestGroup(t *testing.T) {
	groups := Group(Parse(compilerOutput))
	require.Len(t, groups, 4)

	assert.Equal(t, "lib/c.go", groups[0].FilePath)
	assert.Equal(t, "src/a.ts", groups[1].FilePath)
	assert.Equal(t, "TS2304: Cannot find name 'x'.", groups[1].Message)
	assert.Equal(t, "src/a.ts", groups[2].FilePath)
	assert.Equal(t, "Cannot find name 'x'.", groups[2].Message)
	assert.Equal(t, "src/a.ts:Cannot find name 'x'.", groups[2].ID)
	assert.Equal(t, "src/b.ts", groups[3].FilePath)

	require.Len(t, groups[2].Diagnostics, 2)
	assert.Equal(t, 1, groups[2].Diagnostics[0].Line)
	assert.Equal(t, 9, groups[2].Diagnostics[1].Line)
}

func TestFormatter_FormatNew(t *testing.T) {
	f := NewFormatter(Options{Root: "/work", UseNewFormat: true})
	d := domain.Diagnostic{
		File: "/work/src/a.ts", Line: 3, Column: 5,
		Severity: domain.SeverityError, Message: "boom", LineContent: "const x = y",
	}

	assert.Equal(t, "file: src/a.ts\nLine 3:      const x = y\nboom", f.Format(d))
}

func TestFormatter_FormatCustom(t *testing.T) {
	d := domain.Diagnostic{
		File: "/work/src/a.ts", Line: 3, Column: 5,
		Severity: domain.SeverityWarning, Message: "careful", LineContent: "let z",
	}

	f := NewFormatter(Options{Root: "/work"})
	assert.Equal(t, "[Warning] Line 3, Column 5: careful", f.Format(d))

	tmpl := "${file} ${relativePath}:${line}:${column} ${severity} ${message} | ${lineContent}"
	assert.Equal(t, "a.ts src/a.ts:3:5 Warning careful | let z", f.FormatCustom(d, tmpl, true))
	assert.Equal(t, "${file} ${relativePath}:3:5 Warning careful | let z", f.FormatCustom(d, tmpl, false))
	assert.Equal(t, "[Warning] Line 3, Column 5: careful", f.FormatCustom(d, "", false))
}

func TestFormatter_RelativePath(t *testing.T) {
	f := NewFormatter(Options{Root: "/work"})
	assert.Equal(t, "src/a.ts", f.RelativePath("/work/src/a.ts"))
	assert.Equal(t, "/elsewhere/a.ts", f.RelativePath("/elsewhere/a.ts"))
	assert.Equal(t, "src/a.ts", f.RelativePath("src/a.ts"))

	assert.Equal(t, "/work/a.ts", NewFormatter(Options{}).RelativePath("/work/a.ts"))
}

func TestFormatter_FormatAllAndGroups(t *testing.T) {
	f := NewFormatter(Options{UseNewFormat: true})
	diags := []domain.Diagnostic{
		{File: "a.ts", Line: 2, Message: "m1", LineContent: "two"},
		{File: "a.ts", Line: 1, Message: "m1", LineContent: "one"},
		{File: "b.ts", Line: 5, Message: "m2", LineContent: "five"},
	}

	assert.Equal(t,
		"file: a.ts\nLine 2:      two\nm1\n\nfile: a.ts\nLine 1:      one\nm1\n\nfile: b.ts\nLine 5:      five\nm2",
		f.FormatAll(diags))

	assert.Equal(t,
		"file: a.ts\nLine 1: one\nLine 2: two\nm1\n\n---\n\nfile: b.ts\nLine 5: five\nm2",
		f.FormatGroups(Group(diags)))

	assert.Equal(t, "", f.FormatGroups([]domain.DiagnosticGroup{{FilePath: "x", Message: "y"}}))
}

func TestLoadLineContent(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "src"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "src", "a.ts"), []byte("first\r\nsecond\nthird\n"), 0644))

	diags := []domain.Diagnostic{
		{File: "src/a.ts", Line: 2},
		{File: filepath.Join(root, "src", "a.ts"), Line: 3},
		{File: "src/a.ts", Line: 99},
		{File: "missing.ts", Line: 1},
	}

	out := LoadLineContent(diags, root)
	require.Len(t, out, 4)
	assert.Equal(t, "second", out[0].LineContent)
	assert.Equal(t, "third", out[1].LineContent)
	assert.Empty(t, out[2].LineContent)
	assert.Empty(t, out[3].LineContent)
	assert.Empty(t, diags[0].LineContent)
}
