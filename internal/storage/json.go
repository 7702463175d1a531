package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gtpp/internal/domain"
)

// ReportMeta describes the run a report belongs to. DurationMs is
// omitted when the stream never reported a total.
type ReportMeta struct {
	Passed      int    `json:"passed"`
	Failed      int    `json:"failed"`
	Groups      int    `json:"groups"`
	DurationMs  *int   `json:"duration_ms,omitempty"`
	Interrupted bool   `json:"interrupted,omitempty"`
	Timestamp   string `json:"timestamp"`
}

// Failure is one failed test as serialized in the report. Durations
// the stream never reported are omitted rather than written as a
// sentinel value.
type Failure struct {
	Name        string   `json:"name"`
	DurationMs  *int     `json:"duration_ms,omitempty"`
	Output      []string `json:"output,omitempty"`
	Interrupted bool     `json:"interrupted,omitempty"`
}

// Report is the JSON document written for a run.
type Report struct {
	Meta     ReportMeta `json:"meta"`
	Failures []Failure  `json:"failures,omitempty"`
}

// JSONStorage writes the report to a fixed file path.
type JSONStorage struct {
	path string
}

// NewJSONStorage returns a Storage writing to path.
func NewJSONStorage(path string) *JSONStorage {
	return &JSONStorage{path: path}
}

// Save writes the run summary and failures as indented JSON.
func (s *JSONStorage) Save(summary *domain.RunSummary, failures []domain.Test) error {
	report := Report{
		Meta: ReportMeta{
			Passed:      summary.Passed,
			Failed:      summary.Failed,
			Groups:      summary.Groups,
			DurationMs:  knownMs(summary.DurationMs),
			Interrupted: summary.Interrupted,
			Timestamp:   time.Now().Format(time.RFC3339),
		},
	}
	for _, f := range failures {
		report.Failures = append(report.Failures, Failure{
			Name:        f.Name,
			DurationMs:  knownMs(f.DurationMs),
			Output:      f.Output,
			Interrupted: f.Interrupted,
		})
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create report dir: %w", err)
		}
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

func knownMs(ms int) *int {
	if ms == domain.DurationAbsent {
		return nil
	}
	return &ms
}
