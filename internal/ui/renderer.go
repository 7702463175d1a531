package ui

import (
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"

	"gtpp/internal/config"
	"gtpp/internal/domain"
)

// Renderer is the live output policy layer: for each event it either
// prints immediately, prints a compact line, or stays quiet and lets
// the failure summary speak at the end. All writes go to a single
// writer so piped output stays coherent.
type Renderer struct {
	cfg       *config.Config
	out       io.Writer
	collector *Collector

	green  *color.Color
	red    *color.Color
	cyan   *color.Color
	yellow *color.Color
}

// NewRenderer creates a renderer. The collector must be registered
// as a consumer before the renderer so its failures are complete
// when the renderer triggers the final report.
func NewRenderer(cfg *config.Config, out io.Writer, collector *Collector) *Renderer {
	return &Renderer{
		cfg:       cfg,
		out:       out,
		collector: collector,
		green:     color.New(color.FgGreen),
		red:       color.New(color.FgRed),
		cyan:      color.New(color.FgCyan),
		yellow:    color.New(color.FgYellow),
	}
}

// Handle implements pipeline.Consumer.
func (r *Renderer) Handle(ev domain.Event) {
	mode := r.cfg.EffectiveMode()

	switch ev.Kind {
	case domain.EventGroupOpened:
		if mode == config.ModeFailuresOnly {
			return
		}
		r.printGroupHeader(ev)

	case domain.EventTestFinished:
		r.printTest(ev.Test, mode)

	case domain.EventGroupClosed:
		if mode == config.ModeFailuresOnly && ev.Group.Failed == 0 {
			return
		}
		r.printGroupSummary(ev.Group)

	case domain.EventRawPassthrough:
		fmt.Fprintln(r.out, ev.Line)

	case domain.EventOutputCaptured:
		// Buffered with the open test; shown at resolution or in the
		// failure summary.

	case domain.EventRunFinished:
		r.printRunSummary(ev.Run)
	}
}

func (r *Renderer) printGroupHeader(ev domain.Event) {
	if ev.GroupTotal > 0 {
		r.cyan.Fprintf(r.out, "%s   %s\n", progress(ev.GroupIndex, ev.GroupTotal), ev.Group.Name)
		return
	}
	r.cyan.Fprintf(r.out, "%s\n", ev.Group.Name)
}

func (r *Renderer) printTest(t *domain.Test, mode config.Mode) {
	if !t.Failed() {
		if mode != config.ModeVerbose {
			return
		}
		r.green.Fprintf(r.out, "  %s %s", r.passMark(), t.Name)
		r.printTimeIfSlow(t.DurationMs)
		fmt.Fprintln(r.out)
		return
	}

	r.red.Fprintf(r.out, "  %s %s", r.failMark(), t.Name)
	r.printTimeIfSlow(t.DurationMs)
	if t.Interrupted {
		r.yellow.Fprintf(r.out, " (interrupted)")
	}
	fmt.Fprintln(r.out)

	// Normal mode defers the captured output to the final summary;
	// the other modes want it right here.
	if mode != config.ModeNormal {
		for _, line := range t.Output {
			fmt.Fprintln(r.out, line)
		}
	}
}

func (r *Renderer) printGroupSummary(g *domain.Group) {
	if g.Failed == 0 {
		r.green.Fprintf(r.out, "%s %s - %d passed", r.passMark(), g.Name, g.Passed)
	} else {
		r.red.Fprintf(r.out, "%s %s - %d passed, %d failed", r.failMark(), g.Name, g.Passed, g.Failed)
	}
	if missing := g.ExpectedTests - len(g.Tests); g.ExpectedTests != domain.CountAbsent && missing > 0 {
		r.yellow.Fprintf(r.out, " (%d not run)", missing)
	}
	r.printTimeIfSlow(g.DurationMs)
	if g.Interrupted {
		r.yellow.Fprintf(r.out, " (interrupted)")
	}
	fmt.Fprintln(r.out)
}

func (r *Renderer) printRunSummary(run *domain.RunSummary) {
	total := run.Passed + run.Failed
	fmt.Fprintln(r.out)
	if run.Failed == 0 {
		r.green.Fprintf(r.out, "%s %d tests passed", r.passMark(), total)
	} else {
		r.red.Fprintf(r.out, "%s %d of %d tests failed", r.failMark(), run.Failed, total)
	}
	if run.DurationMs != domain.DurationAbsent {
		fmt.Fprintf(r.out, " (%d ms total)", run.DurationMs)
	}
	fmt.Fprintln(r.out)
	if run.Interrupted {
		r.yellow.Fprintln(r.out, "output ended unexpectedly - results reconstructed from partial input")
	}

	if r.collector != nil && len(r.collector.Failures()) > 0 {
		fmt.Fprintln(r.out)
		r.collector.Report(r.out)
	}
}

func (r *Renderer) printTimeIfSlow(durationMs int) {
	if durationMs != domain.DurationAbsent && durationMs > r.cfg.ThresholdMs {
		r.yellow.Fprintf(r.out, " (%d ms)", durationMs)
	}
}

func (r *Renderer) passMark() string {
	if r.cfg.ASCII {
		return "PASS"
	}
	return "✓"
}

func (r *Renderer) failMark() string {
	if r.cfg.ASCII {
		return "FAIL"
	}
	return "✗"
}

// progress renders the "  3 / 12" prefix with the current index
// right-aligned to the total's width.
func progress(current, total int) string {
	width := len(strconv.Itoa(total))
	return fmt.Sprintf("%*d / %d", width, current, total)
}
