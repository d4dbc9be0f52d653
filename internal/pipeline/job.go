package pipeline

import (
	"path/filepath"
	"strings"

	"github.com/backmassage/vidcompress/internal/ffmpeg"
)

// Job is one unit of work: compress Input into Output with Settings.
type Job struct {
	Index    int // 1-based position in the batch.
	Input    string
	Output   string
	Settings ffmpeg.Settings
}

// Name returns the input's base name.
func (j Job) Name() string { return filepath.Base(j.Input) }

// OutputPath returns the sibling path "<base>_compressed<ext>" for input,
// keeping the original extension (and its case).
func OutputPath(input string) string {
	dir := filepath.Dir(input)
	base := filepath.Base(input)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	return filepath.Join(dir, stem+CompressedSuffix+ext)
}

// NewJobs builds one Job per discovered file, in order.
func NewJobs(files []string) []Job {
	jobs := make([]Job, len(files))
	for i, f := range files {
		jobs[i] = Job{
			Index:    i + 1,
			Input:    f,
			Output:   OutputPath(f),
			Settings: ffmpeg.FastCompression,
		}
	}
	return jobs
}
