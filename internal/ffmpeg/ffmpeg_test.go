package ffmpeg

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Build tests ---

func TestBuild_FixedSettings(t *testing.T) {
	got := Build("ffmpeg", FastCompression, "/v/a.mp4", "/v/a_compressed.mp4", false)
	want := []string{
		"ffmpeg", "-hide_banner", "-nostdin", "-y", "-loglevel", "error",
		"-i", "/v/a.mp4",
		"-c:v", "libx264", "-preset", "veryfast", "-crf", "28",
		"-c:a", "aac", "-b:a", "128k",
		"/v/a_compressed.mp4",
	}
	assert.Equal(t, want, got)
}

func TestBuild_Verbose(t *testing.T) {
	got := Build("/opt/ffmpeg", FastCompression, "in.mkv", "out.mkv", true)
	assert.Equal(t, "/opt/ffmpeg", got[0])
	assert.Contains(t, strings.Join(got, " "), "-loglevel info -stats")
	assert.Equal(t, "out.mkv", got[len(got)-1], "output path must be last")
}

func TestSettings_String(t *testing.T) {
	assert.Equal(t, "libx264 veryfast CRF 28, aac 128k", FastCompression.String())
}

// --- Classify tests ---

func TestClassify(t *testing.T) {
	tests := []struct {
		name   string
		stderr string
		want   ErrorClass
	}{
		{"disk full", "av_interleaved_write_frame(): No space left on device", ClassDiskFull},
		{"permission", "/ro/a_compressed.mp4: Permission denied", ClassPermission},
		{"read-only fs", "Read-only file system", ClassPermission},
		{"unknown encoder", "Unknown encoder 'libx264'", ClassMissingEncoder},
		{"corrupt input", "c.mov: Invalid data found when processing input", ClassInvalidInput},
		{"moov atom", "[mov,mp4] moov atom not found", ClassInvalidInput},
		{"unrecognized", "Conversion failed!", ClassEncoderError},
		{"empty", "", ClassEncoderError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.stderr))
		})
	}
}

func TestLastLines(t *testing.T) {
	s := "one\n\ntwo\r\nthree\nfour\n"
	assert.Equal(t, []string{"three", "four"}, LastLines(s, 2))
	assert.Equal(t, []string{"one", "two", "three", "four"}, LastLines(s, 10))
	assert.Empty(t, LastLines("  \n", 5))
}

// --- Executor tests (helper process stands in for ffmpeg) ---

func fakeCommand(env ...string) CommandFunc {
	return func(ctx context.Context, name string, args ...string) *exec.Cmd {
		cs := append([]string{"-test.run=TestHelperProcess", "--", name}, args...)
		cmd := exec.CommandContext(ctx, os.Args[0], cs...)
		cmd.Env = append(append(os.Environ(), "GO_WANT_HELPER_PROCESS=1"), env...)
		return cmd
	}
}

// TestHelperProcess is not a real test. It is re-executed by fakeCommand and
// behaves like a tiny ffmpeg: it writes the output file, or fails with an
// error on stderr when the input base name matches FAKE_FFMPEG_FAIL.
func TestHelperProcess(t *testing.T) {
	if os.Getenv("GO_WANT_HELPER_PROCESS") != "1" {
		return
	}
	args := os.Args
	for len(args) > 0 && args[0] != "--" {
		args = args[1:]
	}
	args = args[1:]

	var input string
	for i, a := range args {
		if a == "-i" && i+1 < len(args) {
			input = args[i+1]
		}
	}
	output := args[len(args)-1]

	if filepath.Base(input) == os.Getenv("FAKE_FFMPEG_FAIL") {
		fmt.Fprintf(os.Stderr, "%s: Invalid data found when processing input\n", input)
		os.Exit(1)
	}
	if err := os.WriteFile(output, []byte("compressed:"+input), 0o644); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	os.Exit(0)
}

func TestExecutor_Success(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "a.mp4")
	out := filepath.Join(dir, "a_compressed.mp4")
	require.NoError(t, os.WriteFile(in, []byte("source"), 0o644))

	e := NewExecutor("ffmpeg", false)
	e.Command = fakeCommand()

	res := e.Encode(context.Background(), in, out)
	require.NoError(t, res.Err)
	assert.Empty(t, res.Stderr)
	assert.FileExists(t, out)
	assert.Equal(t, "ffmpeg", res.Args[0])
}

func TestExecutor_FailureCapturesStderr(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "c.mov")
	require.NoError(t, os.WriteFile(in, []byte("junk"), 0o644))

	e := NewExecutor("ffmpeg", false)
	e.Command = fakeCommand("FAKE_FFMPEG_FAIL=c.mov")

	res := e.Encode(context.Background(), in, filepath.Join(dir, "c_compressed.mov"))
	require.Error(t, res.Err)
	assert.Contains(t, res.Stderr, "Invalid data found when processing input")
	assert.Equal(t, ClassInvalidInput, Classify(res.Stderr))
}

func TestExecutor_VerboseTeesStderr(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "c.mov")

	var tee bytes.Buffer
	e := NewExecutor("ffmpeg", true)
	e.Command = fakeCommand("FAKE_FFMPEG_FAIL=c.mov")
	e.Tee = &tee

	res := e.Encode(context.Background(), in, filepath.Join(dir, "c_compressed.mov"))
	require.Error(t, res.Err)
	assert.Equal(t, res.Stderr, tee.String())
}

func TestExecutor_MissingBinary(t *testing.T) {
	e := NewExecutor(filepath.Join(t.TempDir(), "no-such-ffmpeg"), false)
	res := e.Encode(context.Background(), "a.mp4", "a_compressed.mp4")
	assert.Error(t, res.Err)
	assert.Equal(t, ClassMissingEncoder, ClassifyRun(res.Stderr, res.Err))
}

func TestClassifyRun(t *testing.T) {
	notOnPath := &exec.Error{Name: "ffmpeg", Err: exec.ErrNotFound}
	assert.Equal(t, ClassMissingEncoder, ClassifyRun("", notOnPath))
	assert.Equal(t, ClassDiskFull, ClassifyRun("No space left on device", errors.New("exit status 1")))
	assert.Equal(t, ClassEncoderError, ClassifyRun("", errors.New("exit status 1")))
}
