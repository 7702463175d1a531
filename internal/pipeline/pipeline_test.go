package pipeline

import (
	"strings"
	"testing"

	"gtpp/internal/domain"
	"gtpp/internal/parser"
)

type recordingConsumer struct {
	events []domain.Event
}

func (r *recordingConsumer) Handle(ev domain.Event) {
	r.events = append(r.events, ev)
}

func TestPipeline_Run(t *testing.T) {
	input := strings.Join([]string{
		"[==========] Running 2 tests from 1 test suite.",
		"[----------] 2 tests from FooTest",
		"[ RUN      ] FooTest.A",
		"[       OK ] FooTest.A (10 ms)",
		"[ RUN      ] FooTest.B",
		"assertion blew up",
		"[  FAILED  ] FooTest.B (2 ms)",
		"[----------] 2 tests from FooTest (12 ms total)",
		"[==========] 2 tests from 1 test suite ran. (12 ms total)",
	}, "\n") + "\n"

	first := &recordingConsumer{}
	second := &recordingConsumer{}
	p := New(parser.NewClassifier(), first, second)

	if err := p.Run(strings.NewReader(input)); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if p.Summary() == nil {
		t.Fatal("Summary is nil after Run")
	}
	if p.Summary().Passed != 1 || p.Summary().Failed != 1 {
		t.Errorf("summary = %+v", p.Summary())
	}

	// every consumer sees the identical event sequence
	if len(first.events) != len(second.events) {
		t.Fatalf("consumers saw %d vs %d events", len(first.events), len(second.events))
	}
	for i := range first.events {
		if first.events[i].Kind != second.events[i].Kind {
			t.Fatalf("event %d kinds differ: %v vs %v", i, first.events[i].Kind, second.events[i].Kind)
		}
	}

	var finished int
	for _, ev := range first.events {
		if ev.Kind == domain.EventRunFinished {
			finished++
		}
	}
	if finished != 1 {
		t.Errorf("RunFinished seen %d times", finished)
	}
}

func TestPipeline_FinishIdempotent(t *testing.T) {
	rec := &recordingConsumer{}
	p := New(parser.NewClassifier(), rec)

	p.ProcessLine("[----------] 1 test from FooTest")
	p.Finish()
	p.Finish()

	var finished int
	for _, ev := range rec.events {
		if ev.Kind == domain.EventRunFinished {
			finished++
		}
	}
	if finished != 1 {
		t.Errorf("RunFinished seen %d times, want 1", finished)
	}
}
