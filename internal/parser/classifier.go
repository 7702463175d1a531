package parser

import (
	"strconv"
	"strings"

	"gtpp/internal/domain"
)

// Classifier maps raw output lines to semantic tokens. It is
// stateless and total: the same line always yields the same token,
// and a line that matches nothing becomes a passthrough token rather
// than an error, so garbled input degrades to extra output.
type Classifier struct {
	re *compiled
}

// NewClassifier returns a classifier for the default Google Test
// patterns.
func NewClassifier() *Classifier {
	c, err := DefaultPatterns().compile()
	if err != nil {
		// The defaults are covered by tests; a compile failure here
		// is a programming error.
		panic(err)
	}
	return &Classifier{re: c}
}

// NewClassifierWithPatterns returns a classifier for a custom
// pattern set (e.g. loaded from a --patterns file).
func NewClassifierWithPatterns(p Patterns) (*Classifier, error) {
	c, err := p.compile()
	if err != nil {
		return nil, err
	}
	return &Classifier{re: c}, nil
}

// Classify maps one line to a token.
func (c *Classifier) Classify(line string) domain.Token {
	tok := domain.Token{
		Kind:       domain.TokenPassthrough,
		Text:       line,
		TestCount:  domain.CountAbsent,
		GroupCount: domain.CountAbsent,
		DurationMs: domain.DurationAbsent,
		Passed:     domain.CountAbsent,
		Failed:     domain.CountAbsent,
	}

	if m := c.re.testStart.FindStringSubmatch(line); m != nil {
		tok.Kind = domain.TokenTestStart
		tok.Name = m[1]
		return tok
	}

	if m := c.re.testResult.FindStringSubmatch(line); m != nil {
		tok.Kind = domain.TokenTestResult
		if m[1] == "OK" {
			tok.Outcome = domain.OutcomePassed
		} else {
			tok.Outcome = domain.OutcomeFailed
		}
		tok.Name = m[2]
		tok.DurationMs = msOrAbsent(m[3])
		return tok
	}

	if m := c.re.group.FindStringSubmatch(line); m != nil {
		// The suite header and footer share one shape; the footer
		// carries the "(N ms total)" suffix. Footers printed with
		// timing disabled are indistinguishable from headers and are
		// resolved by the state machine's same-name toggle.
		tok.Name = strings.TrimSpace(m[2])
		if m[4] != "" {
			tok.Kind = domain.TokenGroupEnd
			tok.DurationMs = msOrAbsent(m[4])
		} else {
			tok.Kind = domain.TokenGroupStart
			tok.TestCount = countOrAbsent(m[1])
		}
		return tok
	}

	if m := c.re.runStart.FindStringSubmatch(line); m != nil {
		tok.Kind = domain.TokenRunStart
		tok.TestCount = countOrAbsent(m[1])
		tok.GroupCount = countOrAbsent(m[2])
		return tok
	}

	if m := c.re.runEnd.FindStringSubmatch(line); m != nil {
		tok.Kind = domain.TokenRunEnd
		tok.DurationMs = msOrAbsent(m[3])
		return tok
	}

	if m := c.re.runTally.FindStringSubmatch(line); m != nil {
		tok.Kind = domain.TokenRunEnd
		n := countOrAbsent(m[2])
		if m[1] == "PASSED" {
			tok.Passed = n
		} else {
			tok.Failed = n
		}
		return tok
	}

	return tok
}

func msOrAbsent(s string) int {
	if s == "" {
		return domain.DurationAbsent
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return domain.DurationAbsent
	}
	return n
}

func countOrAbsent(s string) int {
	if s == "" {
		return domain.CountAbsent
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return domain.CountAbsent
	}
	return n
}
