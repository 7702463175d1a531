package pipeline

import (
	"strings"

	"gtpp/internal/domain"
)

type phase int

const (
	phaseIdle phase = iota
	phaseRunActive
	phaseGroupOpen
	phaseTestOpen
	phaseRunDone
)

// Machine reconstructs the run/suite/test nesting from the token
// stream. One Advance call per input line; at most one suite and one
// test are open at any time. Malformed nesting is recovered by
// force-closing whatever is still open, never by failing: the report
// must always complete.
type Machine struct {
	phase phase

	totalTests  int // announced by the run banner, 0 if never seen
	totalGroups int
	groupIndex  int

	passed       int
	failed       int
	closedGroups int

	group *domain.Group
	test  *domain.Test

	summary *domain.RunSummary
}

// NewMachine returns a machine in the idle state.
func NewMachine() *Machine {
	return &Machine{}
}

// Advance consumes one token and returns the structured events it
// produced, in order.
func (m *Machine) Advance(tok domain.Token) []domain.Event {
	if m.phase == phaseRunDone {
		// The run is finalized. Structural tokens here are the test
		// binary's own trailing summary block; swallow them so the
		// report is not duplicated. Plain text still flows through.
		if tok.Kind == domain.TokenPassthrough {
			return m.passthrough(tok.Text)
		}
		return nil
	}

	switch tok.Kind {
	case domain.TokenPassthrough:
		return m.passthrough(tok.Text)

	case domain.TokenRunStart:
		if m.phase == phaseIdle {
			m.phase = phaseRunActive
		}
		if tok.TestCount != domain.CountAbsent {
			m.totalTests = tok.TestCount
		}
		if tok.GroupCount != domain.CountAbsent {
			m.totalGroups = tok.GroupCount
		}
		return nil

	case domain.TokenGroupStart:
		if m.group != nil && m.group.Name == tok.Name {
			// A suite footer printed without timing looks exactly
			// like its header; a repeated name while the suite is
			// open means it just ended.
			return m.closeGroup(tok.DurationMs, false)
		}
		evs := m.forceCloseGroup()
		return append(evs, m.openGroup(tok.Name, tok.TestCount)...)

	case domain.TokenTestStart:
		evs := m.forceCloseTest()
		evs = append(evs, m.ensureGroupFor(tok.Name)...)
		m.test = &domain.Test{
			Name:       tok.Name,
			Outcome:    domain.OutcomePending,
			DurationMs: domain.DurationAbsent,
		}
		m.phase = phaseTestOpen
		return evs

	case domain.TokenTestResult:
		var evs []domain.Event
		if m.test != nil && m.test.Name != tok.Name {
			evs = append(evs, m.forceCloseTest()...)
		}
		if m.test == nil {
			// Result line without a matching start: reconstruct the
			// test so it still counts.
			evs = append(evs, m.ensureGroupFor(tok.Name)...)
			m.test = &domain.Test{
				Name:       tok.Name,
				Outcome:    domain.OutcomePending,
				DurationMs: domain.DurationAbsent,
			}
			m.phase = phaseTestOpen
		}
		return append(evs, m.resolveTest(tok.Outcome, tok.DurationMs, false)...)

	case domain.TokenGroupEnd:
		if m.group == nil {
			return nil
		}
		return m.closeGroup(tok.DurationMs, false)

	case domain.TokenRunEnd:
		return m.finish(tok.DurationMs, false)
	}

	return nil
}

// Close finalizes the run at end of input. If no end-of-run banner
// was seen the summary is synthesized from the accumulated tallies
// and flagged as interrupted. Calling Close after the run is done is
// a no-op, so the run finishes exactly once.
func (m *Machine) Close() []domain.Event {
	if m.phase == phaseRunDone {
		return nil
	}
	return m.finish(domain.DurationAbsent, m.phase != phaseIdle)
}

// Summary returns the final run summary, or nil while the run is
// still in progress.
func (m *Machine) Summary() *domain.RunSummary {
	return m.summary
}

func (m *Machine) passthrough(text string) []domain.Event {
	if m.test != nil {
		m.test.Output = append(m.test.Output, text)
		return []domain.Event{{Kind: domain.EventOutputCaptured, Line: text}}
	}
	return []domain.Event{{Kind: domain.EventRawPassthrough, Line: text}}
}

func (m *Machine) openGroup(name string, expected int) []domain.Event {
	if m.phase == phaseIdle {
		// Run banner missing; start the run implicitly.
		m.phase = phaseRunActive
	}
	m.groupIndex++
	m.group = &domain.Group{
		Name:          name,
		ExpectedTests: expected,
		DurationMs:    domain.DurationAbsent,
	}
	m.phase = phaseGroupOpen
	snapshot := *m.group
	return []domain.Event{{
		Kind:       domain.EventGroupOpened,
		Group:      &snapshot,
		GroupIndex: m.groupIndex,
		GroupTotal: m.totalGroups,
		TestsTotal: m.totalTests,
	}}
}

// ensureGroupFor opens an implicit suite derived from a qualified
// test name when a test appears with no suite block around it.
func (m *Machine) ensureGroupFor(qualified string) []domain.Event {
	if m.group != nil {
		return nil
	}
	name := qualified
	if suite, _, ok := strings.Cut(qualified, "."); ok {
		name = suite
	}
	return m.openGroup(name, domain.CountAbsent)
}

func (m *Machine) resolveTest(outcome domain.Outcome, durationMs int, interrupted bool) []domain.Event {
	t := m.test
	t.Outcome = outcome
	t.DurationMs = durationMs
	t.Interrupted = interrupted
	m.test = nil
	m.phase = phaseGroupOpen

	if outcome == domain.OutcomeFailed {
		m.failed++
		m.group.Failed++
	} else {
		m.passed++
		m.group.Passed++
	}
	m.group.Tests = append(m.group.Tests, *t)

	snapshot := *t
	return []domain.Event{{
		Kind:       domain.EventTestFinished,
		Test:       &snapshot,
		TestsTotal: m.totalTests,
	}}
}

func (m *Machine) forceCloseTest() []domain.Event {
	if m.test == nil {
		return nil
	}
	return m.resolveTest(domain.OutcomeFailed, domain.DurationAbsent, true)
}

func (m *Machine) closeGroup(durationMs int, interrupted bool) []domain.Event {
	evs := m.forceCloseTest()
	g := m.group
	if durationMs != domain.DurationAbsent {
		g.DurationMs = durationMs
	}
	g.Interrupted = interrupted
	m.group = nil
	m.closedGroups++
	m.phase = phaseRunActive

	snapshot := *g
	return append(evs, domain.Event{
		Kind:       domain.EventGroupClosed,
		Group:      &snapshot,
		GroupIndex: m.groupIndex,
		GroupTotal: m.totalGroups,
	})
}

func (m *Machine) forceCloseGroup() []domain.Event {
	if m.group == nil {
		return nil
	}
	return m.closeGroup(domain.DurationAbsent, true)
}

func (m *Machine) finish(durationMs int, interrupted bool) []domain.Event {
	evs := m.forceCloseGroup()
	m.summary = &domain.RunSummary{
		Passed:      m.passed,
		Failed:      m.failed,
		Groups:      m.closedGroups,
		DurationMs:  durationMs,
		Interrupted: interrupted,
	}
	m.phase = phaseRunDone
	return append(evs, domain.Event{Kind: domain.EventRunFinished, Run: m.summary})
}
