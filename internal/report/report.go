// Package report converts a finished batch into a stable, machine-readable
// run report and writes it as JSON or YAML.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/backmassage/vidcompress/internal/ffmpeg"
	"github.com/backmassage/vidcompress/internal/pipeline"
)

// RunReport is the stable external shape of one run.
type RunReport struct {
	RunID  string `json:"run_id" yaml:"run_id"`
	Dir    string `json:"dir" yaml:"dir"`
	DryRun bool   `json:"dry_run" yaml:"dry_run"`

	StartedAt  time.Time `json:"started_at" yaml:"started_at"`
	FinishedAt time.Time `json:"finished_at" yaml:"finished_at"`

	Settings Settings `json:"settings" yaml:"settings"`
	Summary  Summary  `json:"summary" yaml:"summary"`
	Items    []Item   `json:"items" yaml:"items"`
}

// Settings mirrors the fixed encoder parameters.
type Settings struct {
	VideoCodec   string `json:"video_codec" yaml:"video_codec"`
	Preset       string `json:"preset" yaml:"preset"`
	CRF          int    `json:"crf" yaml:"crf"`
	AudioCodec   string `json:"audio_codec" yaml:"audio_codec"`
	AudioBitrate string `json:"audio_bitrate" yaml:"audio_bitrate"`
}

type Summary struct {
	Discovered       int     `json:"discovered" yaml:"discovered"`
	Succeeded        int     `json:"succeeded" yaml:"succeeded"`
	Failed           int     `json:"failed" yaml:"failed"`
	InputBytes       int64   `json:"input_bytes" yaml:"input_bytes"`
	OutputBytes      int64   `json:"output_bytes" yaml:"output_bytes"`
	ReductionPercent float64 `json:"reduction_percent" yaml:"reduction_percent"`
	ElapsedSeconds   float64 `json:"elapsed_seconds" yaml:"elapsed_seconds"`
}

// Item is one file's outcome. Error fields are empty on success.
type Item struct {
	Input       string  `json:"input" yaml:"input"`
	Output      string  `json:"output" yaml:"output"`
	Status      string  `json:"status" yaml:"status"`
	InputBytes  int64   `json:"input_bytes" yaml:"input_bytes"`
	OutputBytes int64   `json:"output_bytes" yaml:"output_bytes"`
	Reduction   float64 `json:"reduction_percent" yaml:"reduction_percent"`
	ErrorKind   string  `json:"error_kind,omitempty" yaml:"error_kind,omitempty"`
	ErrorMsg    string  `json:"error_msg,omitempty" yaml:"error_msg,omitempty"`
	Seconds     float64 `json:"elapsed_seconds" yaml:"elapsed_seconds"`
}

// FromBatch builds a report from b. Times are normalized to UTC and items
// keep processing order.
func FromBatch(b *pipeline.Batch) *RunReport {
	s := ffmpeg.FastCompression
	r := &RunReport{
		RunID:      b.ID,
		Dir:        b.Dir,
		DryRun:     b.DryRun,
		StartedAt:  b.StartedAt.UTC(),
		FinishedAt: b.FinishedAt.UTC(),
		Settings: Settings{
			VideoCodec:   s.VideoCodec,
			Preset:       s.Preset,
			CRF:          s.CRF,
			AudioCodec:   s.AudioCodec,
			AudioBitrate: s.AudioBitrate,
		},
		Summary: Summary{
			Discovered:       b.Stats.Total,
			Succeeded:        b.Stats.Succeeded,
			Failed:           b.Stats.Failed,
			InputBytes:       b.Stats.TotalInputBytes,
			OutputBytes:      b.Stats.TotalOutputBytes,
			ReductionPercent: round1(b.Stats.OverallReduction()),
			ElapsedSeconds:   b.Stats.Elapsed.Seconds(),
		},
		Items: make([]Item, 0, len(b.Results)),
	}
	for _, res := range b.Results {
		it := Item{
			Input:       res.Input,
			Output:      res.Output,
			Status:      string(res.Status),
			InputBytes:  res.InputBytes,
			OutputBytes: res.OutputBytes,
			Seconds:     res.Elapsed.Seconds(),
		}
		if res.OK() {
			if !res.DryRun {
				it.Reduction = round1(res.Reduction())
			}
		} else {
			it.ErrorKind = string(res.Kind)
			it.ErrorMsg = res.Message
		}
		r.Items = append(r.Items, it)
	}
	return r
}

// Format is the on-disk encoding of a report.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFor picks the encoding from path's extension: .yaml/.yml select
// YAML, anything else JSON.
func FormatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Marshal encodes r in the given format.
func (r *RunReport) Marshal(f Format) ([]byte, error) {
	if f == FormatYAML {
		return yaml.Marshal(r)
	}
	b, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(b, '\n'), nil
}

// Write encodes r according to path's extension and writes it, creating the
// parent directory if needed.
func (r *RunReport) Write(path string) error {
	data, err := r.Marshal(FormatFor(path))
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create report directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

func round1(f float64) float64 {
	if f < 0 {
		return -float64(int64(-f*10+0.5)) / 10
	}
	return float64(int64(f*10+0.5)) / 10
}
