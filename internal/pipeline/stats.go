package pipeline

import (
	"time"

	"github.com/backmassage/vidcompress/internal/display"
)

// RunStats tracks aggregate counters and byte totals across a batch run.
// Byte totals only include successful, non-dry-run jobs.
type RunStats struct {
	Total            int
	Succeeded        int
	Failed           int
	TotalInputBytes  int64
	TotalOutputBytes int64
	Elapsed          time.Duration
}

// Summarize derives RunStats from results.
func Summarize(results []Result, elapsed time.Duration) RunStats {
	s := RunStats{Total: len(results), Elapsed: elapsed}
	for _, r := range results {
		if !r.OK() {
			s.Failed++
			continue
		}
		s.Succeeded++
		if !r.DryRun {
			s.TotalInputBytes += r.InputBytes
			s.TotalOutputBytes += r.OutputBytes
		}
	}
	return s
}

// SpaceSaved returns the aggregate byte difference between inputs and outputs.
// Positive means outputs are smaller; negative means they grew.
func (s *RunStats) SpaceSaved() int64 {
	return s.TotalInputBytes - s.TotalOutputBytes
}

// OverallReduction returns SpaceSaved as a percentage of the input bytes.
func (s *RunStats) OverallReduction() float64 {
	return display.Reduction(s.TotalInputBytes, s.TotalOutputBytes)
}
