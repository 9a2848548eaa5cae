package ui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"vtcopy/internal/config"
	"vtcopy/internal/discovery"
	"vtcopy/internal/domain"
)

// DefaultNameWidth is the display width test names are truncated to in the tree.
const DefaultNameWidth = 72

var (
	dirColor  = color.New(color.FgCyan)
	fileColor = color.New(color.FgYellow)
	testColor = color.New(color.FgRed)
	dimColor  = color.New(color.FgHiBlack)
)

// Formatter formats and displays output
type Formatter struct {
	config    *config.Config
	parser    *discovery.Parser
	out       io.Writer
	nameWidth int
}

// NewFormatter creates a new Formatter writing to stdout
func NewFormatter(cfg *config.Config, parser *discovery.Parser) *Formatter {
	return &Formatter{
		config:    cfg,
		parser:    parser,
		out:       os.Stdout,
		nameWidth: DefaultNameWidth,
	}
}

// SetOutput redirects everything the formatter prints to w.
func (f *Formatter) SetOutput(w io.Writer) {
	f.out = w
}

// SetNameWidth sets the display width test names are truncated to. Zero disables truncation.
func (f *Formatter) SetNameWidth(width int) {
	f.nameWidth = width
}

// PrintMetaStats displays the statistics of a batch run followed by the failure tree
func (f *Formatter) PrintMetaStats(output domain.BatchOutput) {
	meta := output.Meta
	row := func(label string, c *color.Color, value any) {
		fmt.Fprintf(f.out, "│ %-31s │ ", label)
		c.Fprintf(f.out, "%-27v", value)
		fmt.Fprintln(f.out, " │")
	}
	sep := "├─────────────────────────────────┼─────────────────────────────┤"
	white := color.New(color.FgWhite)

	fmt.Fprintln(f.out)
	dirColor.Fprintln(f.out, "╔═══════════════════════════════════════════════════════════════╗")
	dirColor.Fprintln(f.out, "║                    Log Extraction Statistics                  ║")
	dirColor.Fprintln(f.out, "╚═══════════════════════════════════════════════════════════════╝")

	fmt.Fprintln(f.out, "┌─────────────────────────────────┬─────────────────────────────┐")
	row("Total Logs", white, meta.TotalSources)
	fmt.Fprintln(f.out, sep)
	row("Logs With Failures", testColor, meta.FailedSources)
	fmt.Fprintln(f.out, sep)
	row("Unreadable Logs", fileColor, meta.UnreadSources)
	fmt.Fprintln(f.out, sep)
	row("Failed Test Cases", testColor, meta.FailedTestCases)
	fmt.Fprintln(f.out, sep)
	row("Duration", white, fmt.Sprintf("%.2fs", meta.DurationSeconds))
	fmt.Fprintln(f.out, sep)
	row("Workers", white, meta.Workers)
	fmt.Fprintln(f.out, "└─────────────────────────────────┴─────────────────────────────┘")

	fmt.Fprintln(f.out)
	if meta.FailedTestCases == 0 {
		color.New(color.FgGreen).Fprintln(f.out, "✓ No test failures found!")
		return
	}

	testColor.Fprintf(f.out, "✗ %d log(s) contained %d failed test case(s)\n", meta.FailedSources, meta.FailedTestCases)
	for _, result := range output.Details {
		if len(result.Failures) == 0 {
			continue
		}
		fmt.Fprintln(f.out)
		dimColor.Fprintf(f.out, "%s (%s)\n", result.Source, result.Tier)
		f.PrintFailureTree(result.Failures)
	}
}

// TreeNode represents a node in the file tree structure
type TreeNode struct {
	Name     string
	Children map[string]*TreeNode
	Failures []domain.FailedTest
	IsFile   bool
}

// BuildTree arranges failures into a directory tree keyed by path segment.
func BuildTree(failures []domain.FailedTest) *TreeNode {
	root := &TreeNode{Children: make(map[string]*TreeNode)}

	for _, failure := range failures {
		parts := strings.Split(strings.TrimPrefix(filepath.ToSlash(failure.FilePath), "./"), "/")
		current := root
		for i, part := range parts {
			if part == "" && i < len(parts)-1 {
				continue
			}
			child := current.Children[part]
			if child == nil {
				child = &TreeNode{
					Name:     part,
					Children: make(map[string]*TreeNode),
					IsFile:   i == len(parts)-1,
				}
				current.Children[part] = child
			}
			current = child
		}
		current.IsFile = true
		current.Failures = append(current.Failures, failure)
	}

	return root
}

// PrintFailureTree prints failed tests as a tree of directories, files and test names
func (f *Formatter) PrintFailureTree(failures []domain.FailedTest) {
	if len(failures) == 0 {
		return
	}
	f.printTreeNode(BuildTree(failures), "")
}

func (f *Formatter) printTreeNode(node *TreeNode, prefix string) {
	keys := make([]string, 0, len(node.Children))
	for key := range node.Children {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for i, key := range keys {
		child := node.Children[key]
		last := i == len(keys)-1

		connector, childPrefix := "├── ", prefix+"│   "
		if last {
			connector, childPrefix = "└── ", prefix+"    "
		}

		if child.IsFile {
			fileColor.Fprintf(f.out, "%s%s%s\n", prefix, connector, child.Name)
		} else {
			dirColor.Fprintf(f.out, "%s%s%s\n", prefix, connector, child.Name)
		}

		hasChildren := len(child.Children) > 0
		for j, failure := range child.Failures {
			caseConnector := "├── "
			if j == len(child.Failures)-1 && !hasChildren {
				caseConnector = "└── "
			}
			testColor.Fprintf(f.out, "%s%s%s", childPrefix, caseConnector, f.truncate(failure.TestName))
			if failure.LineNumber != "" {
				dimColor.Fprintf(f.out, " :%s", failure.LineNumber)
			}
			fmt.Fprintln(f.out)
		}

		f.printTreeNode(child, childPrefix)
	}
}

func (f *Formatter) truncate(name string) string {
	if f.nameWidth <= 0 || runewidth.StringWidth(name) <= f.nameWidth {
		return name
	}
	return runewidth.Truncate(name, f.nameWidth, "…")
}

// CountTestCases returns the total number of test cases across the given test files.
func (f *Formatter) CountTestCases(tests []string) (int, error) {
	var total int
	for _, test := range tests {
		cases, err := f.parser.FindTestCases(test)
		if err != nil {
			return 0, err
		}
		total += len(cases)
	}
	return total, nil
}

// PrintTestList prints a list of test files, optionally with test cases.
// Files whose relative path is in failedPaths are marked with [F].
func (f *Formatter) PrintTestList(tests []string, showTestCases bool, failedPaths map[string]struct{}) error {
	if showTestCases {
		color.New(color.FgGreen).Fprintf(f.out, "Found %d test file(s) with test cases:\n\n", len(tests))
	} else {
		color.New(color.FgGreen).Fprintf(f.out, "Found %d test file(s):\n\n", len(tests))
	}

	for i, test := range tests {
		relPath := f.relative(test)
		failMarker := ""
		if _, ok := failedPaths[relPath]; ok {
			failMarker = " " + color.RedString("[F]")
		}

		isLastFile := i == len(tests)-1
		branch, indent := "├── ", "│   "
		if isLastFile {
			branch, indent = "└── ", "    "
		}
		dirColor.Fprintf(f.out, "%s%s", branch, relPath)
		fmt.Fprintln(f.out, failMarker)

		if !showTestCases {
			continue
		}

		testCases, err := f.parser.FindTestCases(test)
		if err != nil {
			testColor.Fprintf(f.out, "%s└── error reading test file: %v\n", indent, err)
			continue
		}
		if len(testCases) == 0 {
			fmt.Fprintf(f.out, "%s└── %s\n", indent, color.RedString("(no test cases found)"))
			continue
		}
		for j, testCase := range testCases {
			caseBranch := "├── "
			if j == len(testCases)-1 {
				caseBranch = "└── "
			}
			fmt.Fprintf(f.out, "%s%s%s\n", indent, caseBranch, color.YellowString(f.truncate(testCase)))
		}
	}

	return nil
}

func (f *Formatter) relative(path string) string {
	root := f.config.GetTestRoot()
	if rel, err := filepath.Rel(root, path); err == nil && !strings.HasPrefix(rel, "..") {
		return filepath.ToSlash(rel)
	}
	return filepath.ToSlash(path)
}
