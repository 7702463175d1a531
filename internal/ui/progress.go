package ui

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"

	"gtpp/internal/domain"
)

// Progress renders a live progress bar on stderr while per-test
// output is suppressed. The bar is created lazily from the first
// event carrying the run's announced test count; without that hint
// it falls back to a spinner.
type Progress struct {
	bar    *progressbar.ProgressBar
	passed int
	failed int
}

// NewProgress creates a progress consumer.
func NewProgress() *Progress {
	return &Progress{}
}

// Handle implements pipeline.Consumer.
func (p *Progress) Handle(ev domain.Event) {
	switch ev.Kind {
	case domain.EventGroupOpened:
		p.ensure(ev.TestsTotal)
	case domain.EventTestFinished:
		p.ensure(ev.TestsTotal)
		if ev.Test.Failed() {
			p.failed++
		} else {
			p.passed++
		}
		p.bar.Set(p.passed + p.failed)
		p.bar.Describe(describe(p.passed, p.failed))
	case domain.EventRunFinished:
		if p.bar != nil {
			p.bar.Finish()
		}
	}
}

func (p *Progress) ensure(total int) {
	if p.bar != nil {
		return
	}
	if total <= 0 {
		total = -1 // spinner
	}
	p.bar = progressbar.NewOptions(total,
		progressbar.OptionSetDescription(describe(0, 0)),
		progressbar.OptionSetWidth(50),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        color.CyanString("█"),
			SaucerHead:    color.CyanString("█"),
			SaucerPadding: "░",
			BarStart:      "│",
			BarEnd:        "│",
		}),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprint(os.Stderr, "\n")
		}),
		progressbar.OptionSetRenderBlankState(true),
	)
}

func describe(passed, failed int) string {
	return color.CyanString("Running tests: ") +
		color.GreenString("[passed: %d", passed) +
		" | " +
		color.RedString("failed: %d]", failed)
}
