package ffmpeg

import (
	"errors"
	"io/fs"
	"os/exec"
	"regexp"
	"strings"
)

// ErrorClass is a short label for why an encode failed.
type ErrorClass string

const (
	ClassDiskFull       ErrorClass = "disk_full"
	ClassPermission     ErrorClass = "permission_denied"
	ClassInvalidInput   ErrorClass = "invalid_input"
	ClassMissingEncoder ErrorClass = "missing_encoder"
	ClassEncoderError   ErrorClass = "encoder_error"
)

// Pre-compiled regexes for classifying ffmpeg stderr output. Checked in
// order by [Classify]; the first match wins.
var (
	reDiskFull = regexp.MustCompile(
		`(?i)No space left on device|Disk quota exceeded`)

	rePermission = regexp.MustCompile(
		`(?i)Permission denied|Operation not permitted|Read-only file system`)

	reMissingEncoder = regexp.MustCompile(
		`(?i)Unknown encoder|Encoder not found|Encoder .* not found`)

	reInvalidInput = regexp.MustCompile(
		`(?i)Invalid data found when processing input|moov atom not found|` +
			`could not find codec parameters|No such file or directory|` +
			`Error opening input|does not contain any stream`)
)

// Classify maps ffmpeg stderr from a failed run to an ErrorClass.
// Unrecognized output is ClassEncoderError.
func Classify(stderr string) ErrorClass {
	switch {
	case reDiskFull.MatchString(stderr):
		return ClassDiskFull
	case rePermission.MatchString(stderr):
		return ClassPermission
	case reMissingEncoder.MatchString(stderr):
		return ClassMissingEncoder
	case reInvalidInput.MatchString(stderr):
		return ClassInvalidInput
	default:
		return ClassEncoderError
	}
}

// ClassifyRun is Classify for a finished run: an encoder binary that could
// not be started at all is ClassMissingEncoder.
func ClassifyRun(stderr string, err error) ErrorClass {
	if errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist) {
		return ClassMissingEncoder
	}
	return Classify(stderr)
}

// LastLines returns the final n non-blank lines of s, trimmed.
func LastLines(s string, n int) []string {
	var lines []string
	for _, l := range strings.Split(strings.TrimSpace(s), "\n") {
		if l = strings.TrimRight(l, "\r "); l != "" {
			lines = append(lines, l)
		}
	}
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return lines
}
