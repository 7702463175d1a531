package pipeline

import (
	"bufio"
	"fmt"
	"io"

	"gtpp/internal/domain"
	"gtpp/internal/parser"
)

// Consumer receives structured events in emission order. The live
// renderer, the failure collector and the progress bar are all
// consumers of the same single-threaded event stream: fan-out, not
// concurrency.
type Consumer interface {
	Handle(ev domain.Event)
}

// Pipeline ties the classifier, the state machine and the consumers
// together: one line in, classify, advance, fan out.
type Pipeline struct {
	classifier *parser.Classifier
	machine    *Machine
	consumers  []Consumer
}

// New creates a pipeline. Consumers are invoked in the given order
// for every event; a consumer that depends on another having seen an
// event first (the renderer triggering the collector's report) must
// be registered after it.
func New(classifier *parser.Classifier, consumers ...Consumer) *Pipeline {
	return &Pipeline{
		classifier: classifier,
		machine:    NewMachine(),
		consumers:  consumers,
	}
}

// ProcessLine feeds one input line through the pipeline.
func (p *Pipeline) ProcessLine(line string) {
	p.emit(p.machine.Advance(p.classifier.Classify(line)))
}

// Finish signals end of input, force-closing anything still open.
// Safe to call more than once.
func (p *Pipeline) Finish() {
	p.emit(p.machine.Close())
}

// Run consumes the reader line by line until end of input, then
// finishes the run. A read error still finalizes the run first: a
// truncated stream must produce a complete report.
func (p *Pipeline) Run(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		p.ProcessLine(scanner.Text())
	}
	err := scanner.Err()
	p.Finish()
	if err != nil {
		return fmt.Errorf("read test output: %w", err)
	}
	return nil
}

// Summary returns the final run summary, nil until the run finished.
func (p *Pipeline) Summary() *domain.RunSummary {
	return p.machine.Summary()
}

func (p *Pipeline) emit(evs []domain.Event) {
	for _, ev := range evs {
		for _, c := range p.consumers {
			c.Handle(ev)
		}
	}
}
