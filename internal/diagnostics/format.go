package diagnostics

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"vtcopy/internal/domain"
)

// DefaultTemplate is used by FormatCustom when no template is configured.
const DefaultTemplate = "[${severity}] Line ${line}, Column ${column}: ${message}"

// Options controls how diagnostics are rendered
type Options struct {
	Root            string // Paths are shown relative to Root when possible
	UseNewFormat    bool
	Template        string
	IncludeFileName bool
}

// Formatter renders diagnostics as text for the clipboard
type Formatter struct {
	opts Options
}

// NewFormatter creates a new Formatter
func NewFormatter(opts Options) *Formatter {
	if opts.Template == "" {
		opts.Template = DefaultTemplate
	}
	return &Formatter{opts: opts}
}

// Format renders one diagnostic in the configured style.
func (f *Formatter) Format(d domain.Diagnostic) string {
	if f.opts.UseNewFormat {
		return f.FormatNew(d)
	}
	return f.FormatCustom(d, f.opts.Template, f.opts.IncludeFileName)
}

// FormatNew renders the prompt-oriented style:
//
//	file: src/a.ts
//	Line 3:      const x: number = "a"
//	Type 'string' is not assignable to type 'number'.
func (f *Formatter) FormatNew(d domain.Diagnostic) string {
	return fmt.Sprintf("file: %s\nLine %d:      %s\n%s", f.RelativePath(d.File), d.Line, d.LineContent, d.Message)
}

// FormatCustom fills template's ${...} placeholders. ${file} and ${relativePath}
// are only substituted when includeFileName is set.
func (f *Formatter) FormatCustom(d domain.Diagnostic, template string, includeFileName bool) string {
	if template == "" {
		template = DefaultTemplate
	}

	pairs := []string{
		"${severity}", string(d.Severity),
		"${line}", strconv.Itoa(d.Line),
		"${column}", strconv.Itoa(d.Column),
		"${message}", d.Message,
		"${lineContent}", d.LineContent,
	}
	if includeFileName {
		pairs = append(pairs,
			"${file}", filepath.Base(d.File),
			"${relativePath}", f.RelativePath(d.File),
		)
	}

	return strings.NewReplacer(pairs...).Replace(template)
}

// FormatAll renders diagnostics separated by blank lines.
func (f *Formatter) FormatAll(diags []domain.Diagnostic) string {
	parts := make([]string, 0, len(diags))
	for _, d := range diags {
		parts = append(parts, f.Format(d))
	}
	return strings.Join(parts, "\n\n")
}

// FormatGroups renders each group as the file, one "Line N:" row per occurrence and
// the shared message.
func (f *Formatter) FormatGroups(groups []domain.DiagnosticGroup) string {
	parts := make([]string, 0, len(groups))
	for _, g := range groups {
		parts = append(parts, f.formatGroup(g))
	}
	return strings.Join(parts, "\n\n---\n\n")
}

func (f *Formatter) formatGroup(g domain.DiagnosticGroup) string {
	if len(g.Diagnostics) == 0 {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "file: %s\n", f.RelativePath(g.Diagnostics[0].File))
	for _, d := range g.Diagnostics {
		fmt.Fprintf(&b, "Line %d: %s\n", d.Line, d.LineContent)
	}
	b.WriteString(g.Message)
	return b.String()
}

// RelativePath returns file relative to the configured root, or file unchanged when
// it lies outside the root.
func (f *Formatter) RelativePath(file string) string {
	if f.opts.Root == "" || !filepath.IsAbs(file) {
		return file
	}
	rel, err := filepath.Rel(f.opts.Root, file)
	if err != nil || strings.HasPrefix(rel, "..") {
		return file
	}
	return rel
}
