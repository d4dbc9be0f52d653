package pipeline

import (
	"path/filepath"
	"time"

	"github.com/backmassage/vidcompress/internal/display"
)

// Status is the outcome of a job.
type Status string

const (
	StatusSuccess Status = "success"
	StatusFailure Status = "failure"
)

// FailureKind labels why a job failed. Encoder failures carry the
// ffmpeg.ErrorClass of their stderr.
type FailureKind string

const (
	KindInterrupted FailureKind = "interrupted"
	KindNoOutput    FailureKind = "no_output"
	KindIO          FailureKind = "io_error"
)

// Result is the immutable outcome of one Job. Success results carry sizes;
// failure results carry Kind and the captured diagnostic text in Message.
type Result struct {
	Input  string
	Output string
	Status Status

	InputBytes  int64
	OutputBytes int64
	DryRun      bool

	Kind    FailureKind
	Message string

	Elapsed time.Duration
}

// Name returns the input's base name.
func (r Result) Name() string { return filepath.Base(r.Input) }

// OK reports whether the job succeeded.
func (r Result) OK() bool { return r.Status == StatusSuccess }

// Reduction returns the size reduction in percent (negative if the output grew).
func (r Result) Reduction() float64 {
	return display.Reduction(r.InputBytes, r.OutputBytes)
}

func success(job Job, inBytes, outBytes int64, elapsed time.Duration) Result {
	return Result{
		Input:       job.Input,
		Output:      job.Output,
		Status:      StatusSuccess,
		InputBytes:  inBytes,
		OutputBytes: outBytes,
		Elapsed:     elapsed,
	}
}

func failure(job Job, kind FailureKind, msg string, elapsed time.Duration) Result {
	return Result{
		Input:   job.Input,
		Output:  job.Output,
		Status:  StatusFailure,
		Kind:    kind,
		Message: msg,
		Elapsed: elapsed,
	}
}
