package ffmpeg

import (
	"bytes"
	"context"
	"io"
	"os"
	"os/exec"
)

// CommandFunc constructs the process for one invocation. It matches
// [exec.CommandContext] and exists so tests can substitute a fake encoder.
type CommandFunc func(ctx context.Context, name string, args ...string) *exec.Cmd

// ExecResult holds the outcome of a single ffmpeg invocation.
type ExecResult struct {
	Args   []string
	Stderr string
	Err    error
}

// Executor runs the encoder once per call, blocking until it exits.
type Executor struct {
	Bin      string
	Settings Settings
	Verbose  bool

	// Command defaults to exec.CommandContext.
	Command CommandFunc
	// Tee receives stderr in real time when Verbose is set. Defaults to os.Stderr.
	Tee io.Writer
}

// NewExecutor returns an Executor for bin using the fixed FastCompression settings.
func NewExecutor(bin string, verbose bool) *Executor {
	return &Executor{
		Bin:      bin,
		Settings: FastCompression,
		Verbose:  verbose,
		Command:  exec.CommandContext,
		Tee:      os.Stderr,
	}
}

// Encode compresses input into output. When verbose is enabled, stderr is
// tee'd to Tee while being captured; otherwise it is captured silently for
// the failure report. Cancelling ctx kills the process.
func (e *Executor) Encode(ctx context.Context, input, output string) ExecResult {
	args := Build(e.Bin, e.Settings, input, output, e.Verbose)

	command := e.Command
	if command == nil {
		command = exec.CommandContext
	}
	cmd := command(ctx, args[0], args[1:]...)

	var stderrBuf bytes.Buffer
	if e.Verbose && e.Tee != nil {
		cmd.Stderr = io.MultiWriter(&stderrBuf, e.Tee)
	} else {
		cmd.Stderr = &stderrBuf
	}

	err := cmd.Run()
	return ExecResult{
		Args:   args,
		Stderr: stderrBuf.String(),
		Err:    err,
	}
}
