package parser

import (
	"bytes"
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

// timePattern is the optional "(N ms)" / "(N ms total)" suffix Google
// Test appends to result and suite lines.
const timePattern = `(?: \((\d+) ms(?: total)?\))?`

// Patterns holds the regular expressions used to classify input
// lines. The zero value means "use the built-in Google Test
// patterns"; any non-empty field overrides the corresponding default.
// The upstream printed format is not a stable interface, so the set
// is loadable from a YAML file.
type Patterns struct {
	RunStart   string `yaml:"run_start"`
	Group      string `yaml:"group"`
	TestStart  string `yaml:"test_start"`
	TestResult string `yaml:"test_result"`
	RunEnd     string `yaml:"run_end"`
	RunTally   string `yaml:"run_tally"`
}

// DefaultPatterns matches the Google Test textual output format.
func DefaultPatterns() Patterns {
	return Patterns{
		RunStart:   `Running (\d+) tests? from (\d+) test (?:cases?|suites?)`,
		Group:      `\[-+\] (\d+) tests? from ([^,(]+?)(?:, where (.*?))?` + timePattern + `$`,
		TestStart:  `\[ *RUN *\] (\S+)`,
		TestResult: `\[ *(OK|FAILED) *\] (\S+\.\S+?)(?:, where .*?)?` + timePattern + `$`,
		RunEnd:     `\[=+\] (\d+) tests? from (\d+) test (?:cases?|suites?) ran\.` + timePattern,
		RunTally:   `\[ *(PASSED|FAILED) *\] (\d+) tests?`,
	}
}

// LoadPatterns reads pattern overrides from a YAML file and merges
// them over the defaults. Unknown keys are rejected so a typo does
// not silently leave a default in place.
func LoadPatterns(path string) (Patterns, error) {
	p := DefaultPatterns()

	data, err := os.ReadFile(path)
	if err != nil {
		return p, fmt.Errorf("read patterns file: %w", err)
	}

	var override Patterns
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&override); err != nil {
		return p, fmt.Errorf("parse patterns file: %w", err)
	}

	merge := func(dst *string, src string) {
		if src != "" {
			*dst = src
		}
	}
	merge(&p.RunStart, override.RunStart)
	merge(&p.Group, override.Group)
	merge(&p.TestStart, override.TestStart)
	merge(&p.TestResult, override.TestResult)
	merge(&p.RunEnd, override.RunEnd)
	merge(&p.RunTally, override.RunTally)

	return p, nil
}

// compile builds the regexp set, reporting the first bad pattern by
// name.
func (p Patterns) compile() (*compiled, error) {
	c := &compiled{}
	for _, item := range []struct {
		name string
		src  string
		dst  **regexp.Regexp
	}{
		{"run_start", p.RunStart, &c.runStart},
		{"group", p.Group, &c.group},
		{"test_start", p.TestStart, &c.testStart},
		{"test_result", p.TestResult, &c.testResult},
		{"run_end", p.RunEnd, &c.runEnd},
		{"run_tally", p.RunTally, &c.runTally},
	} {
		re, err := regexp.Compile(item.src)
		if err != nil {
			return nil, fmt.Errorf("pattern %q: %w", item.name, err)
		}
		*item.dst = re
	}
	return c, nil
}

type compiled struct {
	runStart   *regexp.Regexp
	group      *regexp.Regexp
	testStart  *regexp.Regexp
	testResult *regexp.Regexp
	runEnd     *regexp.Regexp
	runTally   *regexp.Regexp
}
