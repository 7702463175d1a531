package parser

import (
	"os"
	"path/filepath"
	"testing"

	"gtpp/internal/domain"
)

func TestClassifier_Classify(t *testing.T) {
	c := NewClassifier()

	tests := []struct {
		name string
		line string
		kind domain.TokenKind
		want domain.Token // only fields relevant to the kind are checked
	}{
		{
			name: "run start banner",
			line: "[==========] Running 3 tests from 2 test suites.",
			kind: domain.TokenRunStart,
			want: domain.Token{TestCount: 3, GroupCount: 2},
		},
		{
			name: "run start banner legacy test cases wording",
			line: "[==========] Running 10 tests from 4 test cases.",
			kind: domain.TokenRunStart,
			want: domain.Token{TestCount: 10, GroupCount: 4},
		},
		{
			name: "suite header",
			line: "[----------] 2 tests from FooTest",
			kind: domain.TokenGroupStart,
			want: domain.Token{Name: "FooTest", TestCount: 2},
		},
		{
			name: "suite header single test",
			line: "[----------] 1 test from BarTest",
			kind: domain.TokenGroupStart,
			want: domain.Token{Name: "BarTest", TestCount: 1},
		},
		{
			name: "parameterized suite header with where clause",
			line: "[----------] 1 test from Seq/ParamTest, where GetParam() = 4",
			kind: domain.TokenGroupStart,
			want: domain.Token{Name: "Seq/ParamTest", TestCount: 1},
		},
		{
			name: "suite footer with total time",
			line: "[----------] 2 tests from FooTest (3 ms total)",
			kind: domain.TokenGroupEnd,
			want: domain.Token{Name: "FooTest", DurationMs: 3},
		},
		{
			name: "test start",
			line: "[ RUN      ] FooTest.A",
			kind: domain.TokenTestStart,
			want: domain.Token{Name: "FooTest.A"},
		},
		{
			name: "test passed with time",
			line: "[       OK ] FooTest.A (10 ms)",
			kind: domain.TokenTestResult,
			want: domain.Token{Name: "FooTest.A", Outcome: domain.OutcomePassed, DurationMs: 10},
		},
		{
			name: "parameterized test failed with where clause",
			line: "[  FAILED  ] Seq/ParamTest.Works/0, where GetParam() = 4 (3 ms)",
			kind: domain.TokenTestResult,
			want: domain.Token{Name: "Seq/ParamTest.Works/0", Outcome: domain.OutcomeFailed, DurationMs: 3},
		},
		{
			name: "parameterized test passed with where clause and no time",
			line: "[       OK ] Seq/ParamTest.Works/1, where GetParam() = 8",
			kind: domain.TokenTestResult,
			want: domain.Token{Name: "Seq/ParamTest.Works/1", Outcome: domain.OutcomePassed, DurationMs: domain.DurationAbsent},
		},
		{
			name: "test failed without time",
			line: "[  FAILED  ] FooTest.B",
			kind: domain.TokenTestResult,
			want: domain.Token{Name: "FooTest.B", Outcome: domain.OutcomeFailed, DurationMs: domain.DurationAbsent},
		},
		{
			name: "run end banner",
			line: "[==========] 3 tests from 2 test suites ran. (5 ms total)",
			kind: domain.TokenRunEnd,
			want: domain.Token{DurationMs: 5},
		},
		{
			name: "final passed tally",
			line: "[  PASSED  ] 2 tests.",
			kind: domain.TokenRunEnd,
			want: domain.Token{Passed: 2, Failed: domain.CountAbsent},
		},
		{
			name: "final failed tally",
			line: "[  FAILED  ] 1 test, listed below:",
			kind: domain.TokenRunEnd,
			want: domain.Token{Passed: domain.CountAbsent, Failed: 1},
		},
		{
			name: "assertion output",
			line: "  Expected equality of these values:",
			kind: domain.TokenPassthrough,
		},
		{
			name: "empty line",
			line: "",
			kind: domain.TokenPassthrough,
		},
		{
			name: "environment teardown notice",
			line: "[----------] Global test environment tear-down",
			kind: domain.TokenPassthrough,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tok := c.Classify(tt.line)
			if tok.Kind != tt.kind {
				t.Fatalf("kind = %v, want %v", tok.Kind, tt.kind)
			}
			if tok.Text != tt.line {
				t.Errorf("Text = %q, want the original line", tok.Text)
			}
			switch tt.kind {
			case domain.TokenRunStart:
				if tok.TestCount != tt.want.TestCount || tok.GroupCount != tt.want.GroupCount {
					t.Errorf("counts = (%d, %d), want (%d, %d)", tok.TestCount, tok.GroupCount, tt.want.TestCount, tt.want.GroupCount)
				}
			case domain.TokenGroupStart:
				if tok.Name != tt.want.Name || tok.TestCount != tt.want.TestCount {
					t.Errorf("got (%q, %d), want (%q, %d)", tok.Name, tok.TestCount, tt.want.Name, tt.want.TestCount)
				}
			case domain.TokenGroupEnd:
				if tok.Name != tt.want.Name || tok.DurationMs != tt.want.DurationMs {
					t.Errorf("got (%q, %d), want (%q, %d)", tok.Name, tok.DurationMs, tt.want.Name, tt.want.DurationMs)
				}
			case domain.TokenTestStart:
				if tok.Name != tt.want.Name {
					t.Errorf("Name = %q, want %q", tok.Name, tt.want.Name)
				}
			case domain.TokenTestResult:
				if tok.Name != tt.want.Name || tok.Outcome != tt.want.Outcome || tok.DurationMs != tt.want.DurationMs {
					t.Errorf("got (%q, %v, %d), want (%q, %v, %d)",
						tok.Name, tok.Outcome, tok.DurationMs, tt.want.Name, tt.want.Outcome, tt.want.DurationMs)
				}
			case domain.TokenRunEnd:
				if tt.want.Passed != 0 || tt.want.Failed != 0 {
					if tok.Passed != tt.want.Passed || tok.Failed != tt.want.Failed {
						t.Errorf("tallies = (%d, %d), want (%d, %d)", tok.Passed, tok.Failed, tt.want.Passed, tt.want.Failed)
					}
				}
				if tt.want.DurationMs != 0 && tok.DurationMs != tt.want.DurationMs {
					t.Errorf("DurationMs = %d, want %d", tok.DurationMs, tt.want.DurationMs)
				}
			}
		})
	}
}

func TestClassifier_NeverFails(t *testing.T) {
	c := NewClassifier()

	// Garbled and hostile lines must degrade to passthrough, never
	// anything else surprising and never a panic.
	lines := []string{
		"\x00\x01\x02 binary garbage",
		"[ RUN",
		"]]]][[[[",
		"Running tests from nowhere",
		"[----------] tests from MissingCount",
		"\xff\xfe invalid utf8",
	}
	for _, line := range lines {
		tok := c.Classify(line)
		if tok.Kind != domain.TokenPassthrough {
			t.Errorf("Classify(%q).Kind = %v, want passthrough", line, tok.Kind)
		}
		if tok.Text != line {
			t.Errorf("Classify(%q) lost text: %q", line, tok.Text)
		}
	}
}

func TestLoadPatterns(t *testing.T) {
	t.Run("overrides merge over defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "patterns.yaml")
		data := []byte("test_start: 'STARTING (\\S+)'\n")
		if err := os.WriteFile(path, data, 0644); err != nil {
			t.Fatal(err)
		}

		p, err := LoadPatterns(path)
		if err != nil {
			t.Fatalf("LoadPatterns: %v", err)
		}
		if p.TestStart != `STARTING (\S+)` {
			t.Errorf("TestStart = %q, not overridden", p.TestStart)
		}
		if p.RunStart != DefaultPatterns().RunStart {
			t.Errorf("RunStart should keep the default, got %q", p.RunStart)
		}

		c, err := NewClassifierWithPatterns(p)
		if err != nil {
			t.Fatalf("NewClassifierWithPatterns: %v", err)
		}
		tok := c.Classify("STARTING FooTest.A")
		if tok.Kind != domain.TokenTestStart || tok.Name != "FooTest.A" {
			t.Errorf("got (%v, %q), want test-start FooTest.A", tok.Kind, tok.Name)
		}
	})

	t.Run("unknown keys rejected", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "patterns.yaml")
		if err := os.WriteFile(path, []byte("test_strat: 'typo'\n"), 0644); err != nil {
			t.Fatal(err)
		}
		if _, err := LoadPatterns(path); err == nil {
			t.Error("expected error for unknown key")
		}
	})

	t.Run("missing file", func(t *testing.T) {
		if _, err := LoadPatterns(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
			t.Error("expected error for missing file")
		}
	})
}

func TestNewClassifierWithPatterns_BadRegex(t *testing.T) {
	p := DefaultPatterns()
	p.TestResult = "(unclosed"
	if _, err := NewClassifierWithPatterns(p); err == nil {
		t.Error("expected error for invalid pattern")
	}
}
