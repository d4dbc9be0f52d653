package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/backmassage/vidcompress/internal/check"
	"github.com/backmassage/vidcompress/internal/config"
	"github.com/backmassage/vidcompress/internal/display"
	"github.com/backmassage/vidcompress/internal/ffmpeg"
	"github.com/backmassage/vidcompress/internal/logging"
)

// stderrTailLines bounds how much encoder output is echoed per failure.
const stderrTailLines = 20

// Encoder compresses one input file into output, blocking until done.
// [ffmpeg.Executor] is the production implementation.
type Encoder interface {
	Encode(ctx context.Context, input, output string) ffmpeg.ExecResult
}

// Batch is the record of one run: the source directory, one Result per
// discovered file in processing order, and the derived stats.
type Batch struct {
	ID         string
	Dir        string
	DryRun     bool
	StartedAt  time.Time
	FinishedAt time.Time
	Results    []Result
	Stats      RunStats
}

// Run is the top-level batch entry point. It validates cfg.InputDir,
// discovers files once, compresses each sequentially through enc, logs the
// summary, and returns the batch.
//
// The only errors returned are directory-level: an invalid source
// directory (wrapping ErrInvalidDirectory) or an unreadable listing. Every
// per-file problem is recorded as a failure Result instead.
func Run(ctx context.Context, cfg *config.Config, log *logging.Logger, enc Encoder) (*Batch, error) {
	if err := ValidateDir(cfg.InputDir); err != nil {
		return nil, err
	}

	files, err := Discover(cfg.InputDir)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", cfg.InputDir, err)
	}

	b := &Batch{
		ID:        uuid.NewString(),
		Dir:       cfg.InputDir,
		DryRun:    cfg.DryRun,
		StartedAt: time.Now(),
		Results:   make([]Result, 0, len(files)),
	}
	log.Debug(cfg.Verbose, "Run ID: %s", b.ID)

	if len(files) == 0 {
		log.Warn("No supported video files found in '%s'", cfg.InputDir)
	} else {
		logBatchHeader(ctx, log, cfg, files)
	}

	for _, job := range NewJobs(files) {
		if ctx.Err() != nil {
			b.Results = append(b.Results, failure(job, KindInterrupted, "interrupted before start", 0))
			continue
		}
		b.Results = append(b.Results, processFile(ctx, cfg, log, enc, job, len(files)))
	}

	b.FinishedAt = time.Now()
	b.Stats = Summarize(b.Results, b.FinishedAt.Sub(b.StartedAt))
	logSummary(log, b)
	return b, nil
}

// processFile handles one video file: stat → encode → verify output. Any
// error is returned as a failure Result so the batch can continue.
func processFile(
	ctx context.Context,
	cfg *config.Config,
	log *logging.Logger,
	enc Encoder,
	job Job,
	total int,
) Result {
	log.Info("Processing (%d/%d): %s", job.Index, total, job.Name())

	// --- Validate input ---
	inInfo, err := os.Stat(job.Input)
	if err != nil {
		log.Error("Cannot read input: %v", err)
		return failure(job, KindIO, err.Error(), 0)
	}

	// --- Existing output is overwritten ---
	before, existed := statOutput(job.Output)
	if existed {
		log.Warn("Output exists and will be overwritten: %s", filepath.Base(job.Output))
	}
	log.Debug(cfg.Verbose, "  -> %s", job.Output)

	// --- Dry-run ---
	if cfg.DryRun {
		log.Success("[DRY] Would compress -> %s", filepath.Base(job.Output))
		r := success(job, inInfo.Size(), 0, 0)
		r.DryRun = true
		return r
	}

	// --- Encode ---
	start := time.Now()
	res := enc.Encode(ctx, job.Input, job.Output)
	elapsed := time.Since(start)

	if res.Err != nil {
		kind := FailureKind(ffmpeg.ClassifyRun(res.Stderr, res.Err))
		if ctx.Err() != nil {
			kind = KindInterrupted
		}
		msg := strings.TrimSpace(res.Stderr)
		if msg == "" {
			msg = res.Err.Error()
		}
		removePartial(log, job.Output, before, existed)
		log.Error("Failed to compress %s (%s)", job.Name(), kind)
		logStderr(log, msg)
		return failure(job, kind, msg, elapsed)
	}

	// --- Verify output ---
	outInfo, err := os.Stat(job.Output)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		log.Error("Encoder exited cleanly but wrote no output: %s", filepath.Base(job.Output))
		return failure(job, KindNoOutput, "encoder produced no output file", elapsed)
	case err != nil:
		log.Error("Cannot read output: %v", err)
		return failure(job, KindIO, err.Error(), elapsed)
	case outInfo.Size() == 0:
		removePartial(log, job.Output, before, existed)
		log.Error("Encoder produced an empty output: %s", filepath.Base(job.Output))
		return failure(job, KindNoOutput, "encoder produced an empty output file", elapsed)
	}

	r := success(job, inInfo.Size(), outInfo.Size(), elapsed)
	log.Success("Compressed successfully in %ds:", int(elapsed.Seconds()))
	log.Info("  Original size:   %s", display.FormatMB(r.InputBytes))
	log.Info("  Compressed size: %s", display.FormatMB(r.OutputBytes))
	log.Info("  Reduction:       %s", display.FormatPercent(r.Reduction()))
	return r
}

// statOutput reports whether path exists, with its info when it does.
func statOutput(path string) (os.FileInfo, bool) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, false
	}
	return fi, true
}

// removePartial deletes a failed job's output, unless the file predates the
// job and was left untouched (ffmpeg can fail before opening its output).
func removePartial(log *logging.Logger, path string, before os.FileInfo, existed bool) {
	after, ok := statOutput(path)
	if !ok {
		return
	}
	if existed && after.ModTime().Equal(before.ModTime()) && after.Size() == before.Size() {
		return
	}
	if err := os.Remove(path); err != nil {
		log.Warn("Cannot remove partial output %s: %v", filepath.Base(path), err)
	}
}

func logStderr(log *logging.Logger, stderr string) {
	lines := ffmpeg.LastLines(stderr, stderrTailLines)
	if len(lines) == 0 {
		return
	}
	log.Error("Last ffmpeg output:")
	for _, l := range lines {
		log.Error("  %s", l)
	}
}

// --- Logging helpers ---

func logBatchHeader(ctx context.Context, log *logging.Logger, cfg *config.Config, files []string) {
	log.Info("Found %d video files to compress", len(files))
	log.Info("Settings: %s", ffmpeg.FastCompression)
	if cfg.DryRun {
		log.Warn("DRY RUN: no files will be written")
	}

	var need int64
	for _, f := range files {
		if fi, err := os.Stat(f); err == nil {
			need += fi.Size()
		}
	}
	free, err := check.FreeSpace(ctx, cfg.InputDir)
	if err != nil {
		log.Debug(cfg.Verbose, "Free space unknown: %v", err)
	} else {
		log.Info("Free space: %s (sources total %s)", display.FormatBytes(int64(free)), display.FormatBytes(need))
		if !cfg.DryRun && free < uint64(need) {
			log.Warn("Free space is below the total source size; some encodes may fail")
		}
	}
	log.Info("Starting batch compression...")
	log.Info("==================================================")
}

func logSummary(log *logging.Logger, b *Batch) {
	s := b.Stats
	log.Info("==================================================")
	log.Info("Compression Summary:")
	log.Info("  Total videos discovered: %d", s.Total)
	log.Info("  Successful compressions: %d", s.Succeeded)
	log.Info("  Failed compressions:     %d", s.Failed)

	switch {
	case b.DryRun:
		log.Info("  Total space saved: n/a (dry run)")
	case s.Succeeded > 0:
		log.Info("  Total original size:   %s", display.FormatMB(s.TotalInputBytes))
		log.Info("  Total compressed size: %s", display.FormatMB(s.TotalOutputBytes))
		// Size delta is output minus input, so savings print with a minus sign.
		delta := display.FormatBytesWithSign(-s.SpaceSaved())
		if s.SpaceSaved() >= 0 {
			log.Success("  Overall reduction: %s (%s)", display.FormatPercent(s.OverallReduction()), delta)
		} else {
			log.Warn("  Overall reduction: %s (%s, output grew)", display.FormatPercent(s.OverallReduction()), delta)
		}
	}
	log.Info("  Total time: %s", display.FormatDuration(s.Elapsed))

	if s.Failed > 0 {
		log.Error("Failures:")
		for _, r := range b.Results {
			if r.OK() {
				continue
			}
			log.Error("  %s [%s]", r.Name(), r.Kind)
			for _, l := range ffmpeg.LastLines(r.Message, stderrTailLines) {
				log.Error("    %s", l)
			}
		}
	}
	log.Info("==================================================")
}
