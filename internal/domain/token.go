package domain

// TokenKind is the classified meaning of one input line.
type TokenKind int

const (
	// TokenPassthrough is any line not recognized as structural.
	TokenPassthrough TokenKind = iota
	// TokenRunStart is the "Running N tests from M test suites" banner.
	TokenRunStart
	// TokenGroupStart opens a test suite block.
	TokenGroupStart
	// TokenTestStart is a "[ RUN      ]" line.
	TokenTestStart
	// TokenTestResult is an "[       OK ]" or "[  FAILED  ]" line.
	TokenTestResult
	// TokenGroupEnd closes a test suite block (carries the suite time).
	TokenGroupEnd
	// TokenRunEnd is any of the end-of-run banner/tally lines.
	TokenRunEnd
)

// DurationAbsent marks a duration the stream did not report.
// Never assume zero: an unreported time must not count as "fast".
const DurationAbsent = -1

// CountAbsent marks a tally the line did not carry.
const CountAbsent = -1

// Token is one classified input line. Text always holds the original
// line so nothing is lost when a token is demoted to passthrough.
type Token struct {
	Kind TokenKind
	Text string

	// Name is the suite name (GroupStart/GroupEnd) or the qualified
	// Suite.Test name (TestStart/TestResult).
	Name string

	// TestCount is the suite's announced test count (GroupStart) or
	// the run's announced total (RunStart). CountAbsent if unknown.
	TestCount int
	// GroupCount is the run's announced suite count (RunStart only).
	GroupCount int

	// Outcome is set for TestResult tokens.
	Outcome Outcome

	// DurationMs is the reported time, DurationAbsent if the line
	// had no time suffix.
	DurationMs int

	// Passed/Failed are set on RunEnd tokens parsed from the final
	// "[  PASSED  ] N tests" style tallies, CountAbsent otherwise.
	Passed int
	Failed int
}

func (k TokenKind) String() string {
	switch k {
	case TokenRunStart:
		return "run-start"
	case TokenGroupStart:
		return "group-start"
	case TokenTestStart:
		return "test-start"
	case TokenTestResult:
		return "test-result"
	case TokenGroupEnd:
		return "group-end"
	case TokenRunEnd:
		return "run-end"
	default:
		return "passthrough"
	}
}
