package ui

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"gtpp/internal/domain"
)

// Collector accumulates every failed test in occurrence order. It is
// the single source of truth for what failed and why, independent of
// whatever the live renderer already showed.
type Collector struct {
	ascii    bool
	failures []domain.Test

	red    *color.Color
	yellow *color.Color
}

// NewCollector creates a failure collector.
func NewCollector(ascii bool) *Collector {
	return &Collector{
		ascii:  ascii,
		red:    color.New(color.FgRed),
		yellow: color.New(color.FgYellow),
	}
}

// Handle implements pipeline.Consumer.
func (c *Collector) Handle(ev domain.Event) {
	if ev.Kind == domain.EventTestFinished && ev.Test.Failed() {
		c.failures = append(c.failures, *ev.Test)
	}
}

// Failures returns the collected failures in occurrence order.
func (c *Collector) Failures() []domain.Test {
	return c.failures
}

// Report writes the final failure report: each failed test's name
// followed by its captured output, verbatim and in order. Writes
// nothing when there are no failures.
func (c *Collector) Report(w io.Writer) {
	if len(c.failures) == 0 {
		return
	}

	c.red.Fprintf(w, "Failures (%d):\n", len(c.failures))
	for _, t := range c.failures {
		mark := "✗"
		if c.ascii {
			mark = "FAIL"
		}
		c.red.Fprintf(w, "\n%s %s", mark, t.Name)
		if t.DurationMs != domain.DurationAbsent {
			fmt.Fprintf(w, " (%d ms)", t.DurationMs)
		}
		if t.Interrupted {
			c.yellow.Fprintf(w, " (interrupted)")
		}
		fmt.Fprintln(w)
		for _, line := range t.Output {
			fmt.Fprintln(w, line)
		}
	}
}
