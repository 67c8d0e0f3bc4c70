package runner

import (
	"time"

	"squeeze/internal/library"
	"squeeze/internal/mediainfo"
	"squeeze/internal/profile"
)

// Outcome classifies what happened to a single candidate file.
type Outcome string

const (
	OutcomeEncoded        Outcome = "encoded"
	OutcomePlanned        Outcome = "planned"
	OutcomeSkippedExists  Outcome = "skipped-exists"
	OutcomeSkippedBitrate Outcome = "skipped-bitrate"
	OutcomeSkippedProbe   Outcome = "skipped-probe"
	OutcomeFailed         Outcome = "failed"
)

// FileResult records the decision made for one candidate.
type FileResult struct {
	Candidate  library.Candidate
	Outcome    Outcome
	Detail     string
	Info       mediainfo.VideoInfo
	Resolution profile.Resolution
	GOP        int
	EncodeTime time.Duration
}

// Summary aggregates the results of a run.
type Summary struct {
	RunID       string
	LibraryPath string
	DryRun      bool
	Titles      int
	Results     []FileResult
	Elapsed     time.Duration
}

// Count returns the number of results with the given outcome.
func (s *Summary) Count(outcome Outcome) int {
	count := 0
	for _, result := range s.Results {
		if result.Outcome == outcome {
			count++
		}
	}
	return count
}
