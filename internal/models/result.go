package models

import "time"

// CheckResult represents the outcome of linting a single script block
type CheckResult struct {
	Block       ScriptBlock // The block that was checked
	Passed      bool        // True when the linter exited zero
	Diagnostics string      // Captured standard error of the linter
}

// Summary represents the aggregate result of a documentation scan
type Summary struct {
	FilesScanned  int                 // Documentation files read
	BlocksChecked int                 // Script blocks handed to the checker
	Failures      []CheckResult       // Details of failed blocks, in scan order
	Unterminated  []UnterminatedBlock // Markers never closed before end of file
	StartedAt     time.Time           // When the scan began
	Duration      time.Duration       // Total scan time
}

// Failed returns the number of failed blocks
func (s *Summary) Failed() int {
	return len(s.Failures)
}

// Passed returns the number of blocks that passed
func (s *Summary) Passed() int {
	return s.BlocksChecked - len(s.Failures)
}

// ExitCode returns the process exit status for the scan: 1 if any block failed, else 0
func (s *Summary) ExitCode() int {
	if len(s.Failures) > 0 {
		return 1
	}
	return 0
}

// Record adds a check result to the summary
func (s *Summary) Record(result CheckResult) {
	s.BlocksChecked++
	if !result.Passed {
		s.Failures = append(s.Failures, result)
	}
}
