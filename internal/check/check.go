// Package check provides system diagnostics (--check mode), the ffmpeg
// version probe run before a batch, and the free-space probe.
package check

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/shirou/gopsutil/v4/disk"

	"github.com/backmassage/vidcompress/internal/config"
	"github.com/backmassage/vidcompress/internal/ffmpeg"
)

// Sentinel errors returned by Version.
var (
	ErrFfmpegNotFound = errors.New("ffmpeg not found on PATH")
	ErrFfmpegUnusable = errors.New("ffmpeg found but -version failed")
)

// Logger is the minimal logging interface needed by RunCheck.
// Defined here (rather than importing the logging package) so that check
// remains dependency-light and testable with a mock logger.
type Logger interface {
	Info(string, ...interface{})
	Success(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
}

// RunCheck runs the interactive --check flow: prints the ffmpeg version and
// whether the encoders used by the fixed preset work. Returns false if any
// required piece is missing.
func RunCheck(cfg *config.Config, log Logger) bool {
	log.Info("=== System Check ===")

	version, err := Version(cfg.FFmpegBin)
	if err != nil {
		log.Error("%v", err)
		log.Info("Install ffmpeg: brew install ffmpeg | sudo apt install ffmpeg | https://ffmpeg.org/download.html")
		return false
	}
	log.Success("ffmpeg: %s", version)

	ok := true
	log.Info("Testing %s...", ffmpeg.FastCompression.VideoCodec)
	if runSilent(cfg.FFmpegBin, x264TestArgs()...) {
		log.Success("%s works", ffmpeg.FastCompression.VideoCodec)
	} else {
		log.Error("%s test encode failed", ffmpeg.FastCompression.VideoCodec)
		ok = false
	}

	log.Info("Testing %s encoder...", ffmpeg.FastCompression.AudioCodec)
	if runSilent(cfg.FFmpegBin, aacTestArgs()...) {
		log.Success("%s encoder works", ffmpeg.FastCompression.AudioCodec)
	} else {
		log.Error("%s encoder test failed", ffmpeg.FastCompression.AudioCodec)
		ok = false
	}
	return ok
}

// Version resolves bin on PATH and returns the first line of `bin -version`.
// It is the only probe made before a batch; encoder problems surface later as
// per-file failures.
func Version(bin string) (string, error) {
	if _, err := exec.LookPath(bin); err != nil {
		return "", ErrFfmpegNotFound
	}
	out, err := exec.Command(bin, "-version").Output()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrFfmpegUnusable, err)
	}
	firstLine := strings.TrimSpace(string(out))
	if idx := strings.Index(firstLine, "\n"); idx > 0 {
		firstLine = firstLine[:idx]
	}
	return firstLine, nil
}

// FreeSpace returns the bytes available to unprivileged users on the file
// system holding path.
func FreeSpace(ctx context.Context, path string) (uint64, error) {
	usage, err := disk.UsageWithContext(ctx, path)
	if err != nil {
		return 0, fmt.Errorf("disk usage for %s: %w", path, err)
	}
	return usage.Free, nil
}

// --- internal helpers ---

// x264TestArgs returns the ffmpeg arguments for a minimal libx264 encode
// using the same preset and CRF as real jobs.
func x264TestArgs() []string {
	s := ffmpeg.FastCompression
	return []string{
		"-hide_banner", "-nostdin", "-loglevel", "error",
		"-f", "lavfi", "-i", "color=black:s=256x256:d=0.1",
		"-c:v", s.VideoCodec, "-preset", s.Preset, "-crf", strconv.Itoa(s.CRF),
		"-f", "null", "-",
	}
}

// aacTestArgs returns the ffmpeg arguments for a minimal AAC encode.
func aacTestArgs() []string {
	s := ffmpeg.FastCompression
	return []string{
		"-hide_banner", "-nostdin", "-loglevel", "error",
		"-f", "lavfi", "-i", "sine=frequency=1000:duration=0.1",
		"-c:a", s.AudioCodec, "-b:a", s.AudioBitrate,
		"-f", "null", "-",
	}
}

// runSilent runs a command and returns true if it exits with status 0.
// Both stdout and stderr are discarded.
func runSilent(name string, args ...string) bool {
	cmd := exec.Command(name, args...)
	cmd.Stdout = nil
	cmd.Stderr = nil
	return cmd.Run() == nil
}
