// Package config holds runtime configuration: defaults, CLI flag parsing,
// the interactive directory prompt, and validation.
//
// Encode settings are deliberately absent: the codec parameters are fixed
// and live in the ffmpeg package.
package config

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when stdout is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// Config holds all runtime settings. It is populated by [DefaultConfig] and
// then mutated by [ParseFlags] (and [PromptInputDir] when no directory was
// given) before being passed by pointer to the packages that need it.
type Config struct {
	// Source folder (positional arg or interactive prompt).
	InputDir string

	// Encoder binary. Fixed to "ffmpeg" resolved on PATH; tests point it elsewhere.
	FFmpegBin string

	// Behavior flags.
	DryRun    bool
	CheckOnly bool // Run --check diagnostics and exit.

	// Display, logging and reporting.
	Verbose     bool
	ColorMode   ColorMode // Default: "auto".
	LogFile     string    // Optional structured log file path.
	ReportFile  string    // Optional run report path (.json, .yaml, .yml).
	ShowVersion bool
}

// DefaultConfig returns a Config with all defaults applied. Used as the base
// before [ParseFlags] applies CLI overrides.
func DefaultConfig() Config {
	return Config{
		FFmpegBin: "ffmpeg",
		ColorMode: ColorAuto,
	}
}

// NormalizeDirArg trims whitespace and surrounding quotes (as left behind by
// copy-pasting a path from a file manager) and strips trailing slashes.
// The filesystem root "/" is returned unchanged so we don't produce an empty string.
func NormalizeDirArg(path string) string {
	path = strings.TrimSpace(path)
	path = strings.Trim(path, `"'`)
	if path == "/" {
		return "/"
	}
	return strings.TrimRight(path, "/")
}

// PromptInputDir asks for the source folder on w and reads one line from r.
// The answer is normalized with [NormalizeDirArg].
func PromptInputDir(r io.Reader, w io.Writer) (string, error) {
	fmt.Fprint(w, "Enter the path to the folder containing videos: ")
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read folder path: %w", err)
	}
	dir := NormalizeDirArg(line)
	if dir == "" {
		return "", errors.New("no folder path given")
	}
	return dir, nil
}

// Validate checks that enum fields hold valid values. When not in CheckOnly
// mode, it also requires the input directory path to be non-empty. Whether
// the path exists is the pipeline's concern.
func (c *Config) Validate() error {
	switch c.ColorMode {
	case ColorAuto, ColorAlways, ColorNever:
		// valid
	default:
		return errors.New("invalid color mode (use 'auto', 'always' or 'never')")
	}
	if c.FFmpegBin == "" {
		return errors.New("ffmpeg binary must not be empty")
	}
	if c.CheckOnly || c.ShowVersion {
		return nil
	}
	if c.InputDir == "" {
		return errors.New("need input_dir")
	}
	return nil
}
