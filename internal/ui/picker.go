package ui

import (
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"vtcopy/internal/domain"
	"vtcopy/internal/report"
)

// ErrCanceled is returned when the picker is closed without choosing anything.
var ErrCanceled = errors.New("selection canceled")

// Picker is a two-stage TUI: pick a file, then one, several or all of its failed tests.
type Picker struct{}

// NewPicker creates a new Picker
func NewPicker() *Picker {
	return &Picker{}
}

// Pick shows the picker and returns the chosen failures in their original order.
func (p *Picker) Pick(failures []domain.FailedTest) ([]domain.FailedTest, error) {
	if len(failures) == 0 {
		return nil, nil
	}

	groups := report.GroupTestsByFile(failures)
	var (
		chosen   []domain.FailedTest
		current  int
		marked   = make(map[int]bool)
		canceled = true
	)

	app := tview.NewApplication()
	pages := tview.NewPages()

	fileList := tview.NewList().
		ShowSecondaryText(false).
		SetHighlightFullLine(true)
	testList := tview.NewList().
		ShowSecondaryText(false).
		SetHighlightFullLine(true)
	for _, list := range []*tview.List{fileList, testList} {
		list.SetMainTextColor(tview.Styles.PrimaryTextColor).
			SetSelectedTextColor(tcell.ColorWhite).
			SetSelectedBackgroundColor(tcell.ColorDarkCyan)
	}

	for i, g := range groups {
		fileList.AddItem(fmt.Sprintf("[yellow]%d.[white] %s [gray](%d)[white]",
			i+1, tview.Escape(g.DisplayName), len(g.FailedTests)), "", 0, nil)
	}

	statsView := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(false)
	detailsView := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(true).
		SetWordWrap(true)
	headerView := tview.NewTextView().
		SetTextAlign(tview.AlignCenter).
		SetDynamicColors(true)

	showFile := func(index int) {
		if index < 0 || index >= len(groups) {
			return
		}
		g := groups[index]
		statsView.SetText(fmt.Sprintf("[cyan]file:[white] [yellow]%s[white]\n[cyan]failed tests:[white] %d",
			tview.Escape(g.FilePath), len(g.FailedTests)))
		detailsView.SetText(formatGroupSummary(g))
		headerView.SetText(fmt.Sprintf(" %d file(s), %d failed test(s) | ↑↓ navigate, → or Enter to open, Ctrl+C to exit ",
			len(groups), len(failures)))
	}

	refreshTests := func() {
		g := groups[current]
		selectedIndex := testList.GetCurrentItem()
		testList.Clear()
		testList.AddItem("[::b]all tests[::-]", "", 0, nil)
		for i, ft := range g.FailedTests {
			testList.AddItem(testItemText(i, ft, marked[i]), "", 0, nil)
		}
		testList.SetCurrentItem(selectedIndex)
	}

	showTest := func(index int) {
		g := groups[current]
		if index <= 0 || index > len(g.FailedTests) {
			statsView.SetText(fmt.Sprintf("[cyan]file:[white] [yellow]%s[white]\n[cyan]all %d test(s)[white]",
				tview.Escape(g.FilePath), len(g.FailedTests)))
			detailsView.SetText(formatGroupSummary(g))
			return
		}
		ft := g.FailedTests[index-1]
		statsView.SetText(formatFailureStats(ft))
		detailsView.SetText(formatFailureDetails(ft))
	}

	openFile := func(index int) {
		if index < 0 || index >= len(groups) {
			return
		}
		current = index
		marked = make(map[int]bool)
		testList.SetCurrentItem(0)
		refreshTests()
		showTest(testList.GetCurrentItem())
		headerView.SetText(" Space to mark, Enter to copy marked (or current), ← to go back, Ctrl+C to exit ")
		pages.SwitchToPage("tests")
		app.SetFocus(testList)
	}

	fileList.SetChangedFunc(func(index int, _ string, _ string, _ rune) {
		showFile(index)
	})
	fileList.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyEnter, tcell.KeyRight:
			openFile(fileList.GetCurrentItem())
			return nil
		case tcell.KeyCtrlC, tcell.KeyEsc:
			app.Stop()
			return nil
		}
		return event
	})

	testList.SetChangedFunc(func(index int, _ string, _ string, _ rune) {
		showTest(index)
	})
	testList.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyEnter:
			chosen = collectSelection(groups[current].FailedTests, marked, testList.GetCurrentItem()-1)
			canceled = false
			app.Stop()
			return nil
		case tcell.KeyLeft, tcell.KeyEsc:
			if len(groups) > 1 {
				pages.SwitchToPage("files")
				app.SetFocus(fileList)
				showFile(fileList.GetCurrentItem())
			}
			return nil
		case tcell.KeyCtrlC:
			app.Stop()
			return nil
		case tcell.KeyRune:
			if event.Rune() == ' ' {
				if index := testList.GetCurrentItem() - 1; index >= 0 {
					marked[index] = !marked[index]
					refreshTests()
				}
				return nil
			}
		}
		return event
	})

	pages.AddPage("files", fileList, true, true).
		AddPage("tests", testList, true, false)

	detailsContainer := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(detailsView, 0, 1, false).
		AddItem(tview.NewBox(), 2, 0, false)
	rightSide := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(statsView, 3, 0, false).
		AddItem(detailsContainer, 0, 1, false)
	flex := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(pages, 0, 1, true).
		AddItem(rightSide, 0, 2, false)
	mainLayout := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(headerView, 1, 0, false).
		AddItem(tview.NewBox(), 1, 0, false).
		AddItem(flex, 0, 1, true)

	app.SetRoot(mainLayout, true).SetFocus(fileList)
	if len(groups) == 1 {
		openFile(0)
	} else {
		showFile(0)
	}

	if err := app.Run(); err != nil {
		return nil, fmt.Errorf("failed to run TUI: %w", err)
	}
	if canceled {
		return nil, ErrCanceled
	}
	return chosen, nil
}

// collectSelection returns the marked tests in order, or the test at current
// when nothing is marked. A negative current selects every test.
func collectSelection(tests []domain.FailedTest, marked map[int]bool, current int) []domain.FailedTest {
	if current < 0 {
		return append([]domain.FailedTest(nil), tests...)
	}

	var out []domain.FailedTest
	for i, ft := range tests {
		if marked[i] {
			out = append(out, ft)
		}
	}
	if len(out) > 0 {
		return out
	}
	if current < len(tests) {
		return []domain.FailedTest{tests[current]}
	}
	return nil
}

func testItemText(index int, ft domain.FailedTest, marked bool) string {
	name := tview.Escape(ft.TestName)
	if marked {
		return fmt.Sprintf("[green]✓ [yellow]%d.[white] %s", index+1, name)
	}
	return fmt.Sprintf("  [yellow]%d.[white] %s", index+1, name)
}

// formatFailureDetails formats a failure for display using tview color tags
func formatFailureDetails(ft domain.FailedTest) string {
	var builder strings.Builder
	w := tabwriter.NewWriter(&builder, 0, 0, 2, ' ', 0)

	fmt.Fprintf(w, "[red]✗ Test: %s[white]\n\n", tview.Escape(ft.TestName))
	fmt.Fprintf(w, "[cyan]File: %s[white]\n", tview.Escape(ft.FilePath))
	if ft.LineNumber != "" {
		fmt.Fprintf(w, "[yellow]Location: %s:%s[white]\n", tview.Escape(ft.FilePath), ft.LineNumber)
	}
	fmt.Fprintf(w, "\n[yellow]Error:[white]\n%s\n", tview.Escape(ft.ErrorMessage))

	sections := []struct{ label, value string }{
		{"Code Snippet", ft.CodeSnippet},
		{"Expected", ft.Expected},
		{"Received", ft.Received},
	}
	for _, s := range sections {
		if s.value == "" {
			continue
		}
		fmt.Fprintf(w, "\n[yellow]%s:[white]\n%s\n", s.label, tview.Escape(s.value))
	}

	w.Flush()
	return builder.String()
}

func formatFailureStats(ft domain.FailedTest) string {
	path := ft.FilePath
	if ft.LineNumber != "" {
		path += ":" + ft.LineNumber
	}
	return fmt.Sprintf("[cyan]path:[white] [yellow]%s[white]\n[cyan]test:[white] [yellow]%s[white]\n",
		tview.Escape(path), tview.Escape(ft.TestName))
}

func formatGroupSummary(g domain.TestFileGroup) string {
	var builder strings.Builder
	for i, ft := range g.FailedTests {
		fmt.Fprintf(&builder, "[yellow]%d.[white] %s\n   [gray]%s[white]\n",
			i+1, tview.Escape(ft.TestName), tview.Escape(firstLine(ft.ErrorMessage)))
	}
	return builder.String()
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
