package domain

// EventKind identifies a structured event emitted by the run state
// machine.
type EventKind int

const (
	// EventGroupOpened fires when a suite block starts.
	EventGroupOpened EventKind = iota
	// EventTestFinished fires when a test resolves (normally or by
	// force-close recovery).
	EventTestFinished
	// EventGroupClosed fires when a suite block ends, with final
	// aggregate counts.
	EventGroupClosed
	// EventOutputCaptured fires for a passthrough line attributed to
	// the open test (already appended to its buffer).
	EventOutputCaptured
	// EventRawPassthrough fires for a passthrough line with no open
	// test; it must be echoed verbatim.
	EventRawPassthrough
	// EventRunFinished fires exactly once per input, with the final
	// tallies.
	EventRunFinished
)

// Event is one structured occurrence in the run. Only the fields
// relevant to Kind are set; Group/Test payloads are snapshots the
// machine never mutates afterwards.
type Event struct {
	Kind EventKind

	Group *Group // GroupOpened (header data), GroupClosed (final)
	Test  *Test  // TestFinished
	Run   *RunSummary

	// Line is the raw text for OutputCaptured/RawPassthrough.
	Line string

	// GroupIndex/GroupTotal and TestsTotal are progress hints from
	// the run-start banner; zero when the banner was never seen.
	GroupIndex int
	GroupTotal int
	TestsTotal int
}

func (k EventKind) String() string {
	switch k {
	case EventGroupOpened:
		return "group-opened"
	case EventTestFinished:
		return "test-finished"
	case EventGroupClosed:
		return "group-closed"
	case EventOutputCaptured:
		return "output-captured"
	case EventRawPassthrough:
		return "raw-passthrough"
	case EventRunFinished:
		return "run-finished"
	}
	return "unknown"
}
