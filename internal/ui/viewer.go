package ui

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"gtpp/internal/domain"
)

// Viewer displays a failing run's collected failures in an
// interactive TUI: failure list on the left, captured output on the
// right.
type Viewer struct{}

// NewViewer creates a Viewer.
func NewViewer() *Viewer {
	return &Viewer{}
}

// View opens the failure browser. Returns immediately when there is
// nothing to show.
func (v *Viewer) View(failures []domain.Test) error {
	if len(failures) == 0 {
		color.Green("✓ No test failures found!")
		return nil
	}

	app := tview.NewApplication()

	list := tview.NewList().
		ShowSecondaryText(false).
		SetHighlightFullLine(true)
	list.SetMainTextColor(tview.Styles.PrimaryTextColor).
		SetSelectedTextColor(tcell.ColorWhite).
		SetSelectedBackgroundColor(tcell.ColorDarkCyan)
	list.SetBorder(true).
		SetTitle(fmt.Sprintf(" Failures (%d) ", len(failures)))

	for i, f := range failures {
		list.AddItem(fmt.Sprintf("[yellow]%d.[white] %s", i+1, f.Name), "", 0, nil)
	}

	details := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(true).
		SetWordWrap(true)
	details.SetBorder(true).
		SetTitle(" Captured output ")

	updateDetails := func() {
		index := list.GetCurrentItem()
		if index < 0 || index >= len(failures) {
			return
		}
		details.SetText(formatFailure(failures[index]))
		details.ScrollToBeginning()
	}
	list.SetChangedFunc(func(index int, mainText, secondaryText string, shortcut rune) {
		updateDetails()
	})
	updateDetails()

	header := tview.NewTextView().
		SetTextAlign(tview.AlignCenter).
		SetDynamicColors(true).
		SetText(" ↑↓/jk navigate | →/Enter focus output | ← back | q quit ")

	body := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(list, 0, 1, true).
		AddItem(details, 0, 2, false)

	layout := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(header, 1, 0, false).
		AddItem(body, 0, 1, true)

	list.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyEnter, tcell.KeyRight:
			app.SetFocus(details)
			return nil
		case tcell.KeyRune:
			switch event.Rune() {
			case 'j':
				return tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone)
			case 'k':
				return tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone)
			case 'q':
				app.Stop()
				return nil
			}
		}
		return event
	})

	details.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyLeft, tcell.KeyEscape:
			app.SetFocus(list)
			return nil
		case tcell.KeyRune:
			if event.Rune() == 'q' {
				app.Stop()
				return nil
			}
		}
		return event
	})

	return app.SetRoot(layout, true).Run()
}

func formatFailure(t domain.Test) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[red]✗ %s[white]", tview.Escape(t.Name))
	if t.DurationMs != domain.DurationAbsent {
		fmt.Fprintf(&b, " [gray](%d ms)[white]", t.DurationMs)
	}
	if t.Interrupted {
		b.WriteString(" [yellow](interrupted)[white]")
	}
	b.WriteString("\n\n")
	if len(t.Output) == 0 {
		b.WriteString("[gray](no captured output)[white]")
		return b.String()
	}
	for _, line := range t.Output {
		b.WriteString(tview.Escape(line))
		b.WriteString("\n")
	}
	return b.String()
}
