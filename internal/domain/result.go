package domain

// Outcome is a test's resolution state.
type Outcome int

const (
	OutcomePending Outcome = iota
	OutcomePassed
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomePassed:
		return "passed"
	case OutcomeFailed:
		return "failed"
	default:
		return "pending"
	}
}

// Test is one test case. Output holds every passthrough line captured
// between the test's start and its resolution, in arrival order.
// Interrupted is set when the test never got a proper result line and
// was force-resolved during recovery.
type Test struct {
	Name        string // qualified Suite.Test
	Outcome     Outcome
	DurationMs  int
	Output      []string
	Interrupted bool
}

// Failed reports whether the test resolved as a failure.
func (t *Test) Failed() bool { return t.Outcome == OutcomeFailed }

// Group is one test suite as reported by the stream.
type Group struct {
	Name          string
	Tests         []Test
	ExpectedTests int // announced count, CountAbsent if unknown
	Passed        int
	Failed        int
	DurationMs    int
	Interrupted   bool
}

// RunSummary is the finished run. Interrupted means the summary was
// synthesized at end of input rather than from a proper end-of-run
// banner, so the stream was truncated or the binary crashed.
type RunSummary struct {
	Passed      int
	Failed      int
	Groups      int
	DurationMs  int
	Interrupted bool
}
