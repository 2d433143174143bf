// Package report writes a machine-readable YAML record of a doccheck run.
package report

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/harrison/doccheck/internal/filelock"
	"github.com/harrison/doccheck/internal/models"
)

// Report is the YAML document written by --report
type Report struct {
	RunID         string     `yaml:"run_id"`
	StartedAt     time.Time  `yaml:"started_at"`
	Duration      string     `yaml:"duration"`
	Image         string     `yaml:"image"`
	FilesScanned  int        `yaml:"files_scanned"`
	BlocksChecked int        `yaml:"blocks_checked"`
	Failed        int        `yaml:"failed"`
	ExitCode      int        `yaml:"exit_code"`
	Failures      []Failure  `yaml:"failures,omitempty"`
	Unterminated  []Location `yaml:"unterminated,omitempty"`
}

// Failure is one script block that did not pass shellcheck
type Failure struct {
	Path        string `yaml:"path"`
	Line        int    `yaml:"line"`
	Dialect     string `yaml:"dialect"`
	Diagnostics string `yaml:"diagnostics"`
}

// Location points at a line in a documentation file
type Location struct {
	Path string `yaml:"path"`
	Line int    `yaml:"line"`
}

// New builds a report from a finished scan, tagging it with a fresh run id
func New(summary *models.Summary, image string) *Report {
	r := &Report{
		RunID:         uuid.NewString(),
		StartedAt:     summary.StartedAt.UTC(),
		Duration:      summary.Duration.Round(time.Millisecond).String(),
		Image:         image,
		FilesScanned:  summary.FilesScanned,
		BlocksChecked: summary.BlocksChecked,
		Failed:        summary.Failed(),
		ExitCode:      summary.ExitCode(),
	}

	for _, f := range summary.Failures {
		r.Failures = append(r.Failures, Failure{
			Path:        f.Block.Path,
			Line:        f.Block.Line,
			Dialect:     f.Block.Dialect,
			Diagnostics: f.Diagnostics,
		})
	}
	for _, u := range summary.Unterminated {
		r.Unterminated = append(r.Unterminated, Location{Path: u.Path, Line: u.Line})
	}
	return r
}

// Marshal encodes the report as YAML
func (r *Report) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("failed to encode report: %w", err)
	}
	return data, nil
}

// Write encodes the report and writes it to path under a file lock
func Write(ctx context.Context, path string, r *Report) error {
	data, err := r.Marshal()
	if err != nil {
		return err
	}
	if err := filelock.LockAndWrite(ctx, path, data); err != nil {
		return fmt.Errorf("failed to write report %s: %w", path, err)
	}
	return nil
}

// Load reads a report previously written by Write
func Load(data []byte) (*Report, error) {
	var r Report
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("failed to parse report: %w", err)
	}
	return &r, nil
}
