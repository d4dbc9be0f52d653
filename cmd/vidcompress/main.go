// Command vidcompress batch-compresses the videos in one folder with ffmpeg
// using fixed fast settings (H.264 veryfast CRF 28, AAC 128k), writing
// <name>_compressed.<ext> next to each original.
//
// It parses flags, prompts for the folder when none is given, and either runs
// diagnostics (--check) or the batch.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/backmassage/vidcompress/internal/check"
	"github.com/backmassage/vidcompress/internal/config"
	"github.com/backmassage/vidcompress/internal/display"
	"github.com/backmassage/vidcompress/internal/ffmpeg"
	"github.com/backmassage/vidcompress/internal/logging"
	"github.com/backmassage/vidcompress/internal/pipeline"
	"github.com/backmassage/vidcompress/internal/report"
)

// version and commit are injected at build time via -ldflags.
var (
	version = "1.0.0"
	commit  = "unknown"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	// Phase 1: Bootstrap. The logger doesn't exist yet, so errors go
	// directly to stderr via fmt.
	config.Version = version
	cfg := config.DefaultConfig()
	if err := config.ParseFlags(&cfg, args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(stderr, "vidcompress: %v\n", err)
		return 1
	}
	if cfg.ShowVersion {
		fmt.Fprintf(stdout, "vidcompress v%s (%s)\n", version, commit)
		return 0
	}

	if cfg.InputDir == "" && !cfg.CheckOnly {
		dir, err := config.PromptInputDir(stdin, stdout)
		if err != nil {
			fmt.Fprintf(stderr, "vidcompress: %v\n", err)
			return 1
		}
		cfg.InputDir = dir
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "vidcompress: %v\n", err)
		return 1
	}

	log, err := logging.NewLogger(&cfg)
	if err != nil {
		fmt.Fprintf(stderr, "vidcompress: %v\n", err)
		return 1
	}
	defer log.Close()
	log.SetOutput(stdout, stderr)

	// Phase 2: Logger available; all output goes through log from here on.
	display.PrintBanner(stdout)

	if cfg.CheckOnly {
		if !check.RunCheck(&cfg, log) {
			return 1
		}
		return 0
	}

	log.Info("=== vidcompress v%s (%s) ===", version, commit)
	log.Info("In: %s", cfg.InputDir)

	if err := pipeline.ValidateDir(cfg.InputDir); err != nil {
		log.Error("%v", err)
		return 1
	}

	// A broken ffmpeg is not fatal here: each job then fails on its own and
	// lands in the summary.
	if v, err := check.Version(cfg.FFmpegBin); err != nil {
		log.Warn("%v; encodes will fail", err)
		log.Warn("Install ffmpeg: brew install ffmpeg | sudo apt install ffmpeg | https://ffmpeg.org/download.html")
	} else {
		log.Debug(cfg.Verbose, "Using %s", v)
	}

	// Phase 3: Signal handling. Cancelling the context kills the running
	// encoder; remaining files are recorded as interrupted.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			log.Warn("Received interrupt, aborting current file…")
			cancel()
		case <-ctx.Done():
		}
	}()

	// Phase 4: Run the batch (discover → encode each → summarize).
	enc := ffmpeg.NewExecutor(cfg.FFmpegBin, cfg.Verbose)
	batch, err := pipeline.Run(ctx, &cfg, log, enc)
	if err != nil {
		log.Error("%v", err)
		return 1
	}

	if cfg.ReportFile != "" {
		if err := report.FromBatch(batch).Write(cfg.ReportFile); err != nil {
			log.Error("%v", err)
			return 1
		}
		log.Info("Report written to %s", cfg.ReportFile)
	}

	if batch.Stats.Failed > 0 {
		return 1
	}
	return 0
}
