package config

// This file implements CLI flag parsing and help text.
// Negated flags (e.g. --no-color) are applied after Parse so Config defaults hold unless set.

import (
	"flag"
	"fmt"
	"io"
	"os"
)

// Version is shown in --version and help; main overrides it with the
// -ldflags value before calling ParseFlags.
var Version = "1.0.0-dev"

// ParseFlags parses args (without the program name) into cfg. When --help is
// given the usage text is printed and [flag.ErrHelp] is returned so the
// caller can exit cleanly. Unknown flags and surplus positional args are
// returned as errors.
func ParseFlags(cfg *Config, args []string) error {
	fs := flag.NewFlagSet("vidcompress", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() { printUsage(os.Stderr) }

	var negated negatedFlags

	defineBehaviorFlags(fs, cfg)
	defineDisplayFlags(fs, cfg, &negated)
	defineUtilityFlags(fs, cfg, &negated)

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			printUsage(os.Stderr)
		}
		return err
	}

	applyNegatedFlags(cfg, &negated)

	if negated.showHelp {
		printUsage(os.Stderr)
		return flag.ErrHelp
	}

	return parsePositionalArgs(fs, cfg)
}

// negatedFlags holds boolean flags that are applied after Parse.
type negatedFlags struct {
	forceColor bool
	noColor    bool
	showHelp   bool
}

// defineBehaviorFlags registers -d/--dry-run and -c/--check.
func defineBehaviorFlags(fs *flag.FlagSet, cfg *Config) {
	fs.BoolVar(&cfg.DryRun, "dry-run", false, "Preview only; do not start the encoder")
	fs.BoolVar(&cfg.DryRun, "d", false, "Same as --dry-run")
	fs.BoolVar(&cfg.CheckOnly, "check", false, "Run system diagnostics and exit")
	fs.BoolVar(&cfg.CheckOnly, "c", false, "Same as --check")
}

// defineDisplayFlags registers --color, --no-color, verbose, --log and --report.
func defineDisplayFlags(fs *flag.FlagSet, cfg *Config, n *negatedFlags) {
	fs.BoolVar(&n.forceColor, "color", false, "Force colored logs")
	fs.BoolVar(&n.noColor, "no-color", false, "Disable colored logs")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "Verbose output")
	fs.BoolVar(&cfg.Verbose, "v", false, "Same as --verbose")
	fs.StringVar(&cfg.LogFile, "log", "", "Append structured logs to file")
	fs.StringVar(&cfg.LogFile, "l", "", "Same as --log")
	fs.StringVar(&cfg.ReportFile, "report", "", "Write run report (.json, .yaml)")
	fs.StringVar(&cfg.ReportFile, "r", "", "Same as --report")
}

// defineUtilityFlags registers --version and --help.
func defineUtilityFlags(fs *flag.FlagSet, cfg *Config, n *negatedFlags) {
	fs.BoolVar(&cfg.ShowVersion, "version", false, "Print version and exit")
	fs.BoolVar(&cfg.ShowVersion, "V", false, "Same as --version")
	fs.BoolVar(&n.showHelp, "help", false, "Show this help and exit")
	fs.BoolVar(&n.showHelp, "h", false, "Same as --help")
}

// applyNegatedFlags copies negated and override flag values into cfg.
// --no-color wins over --color.
func applyNegatedFlags(cfg *Config, n *negatedFlags) {
	if n.noColor {
		cfg.ColorMode = ColorNever
	} else if n.forceColor {
		cfg.ColorMode = ColorAlways
	}
}

// parsePositionalArgs sets InputDir from the optional positional arg. An
// empty InputDir afterwards means the caller should prompt for it.
func parsePositionalArgs(fs *flag.FlagSet, cfg *Config) error {
	args := fs.Args()
	if len(args) > 1 {
		return fmt.Errorf("expected at most one input_dir, got %d args", len(args))
	}
	if len(args) == 1 {
		cfg.InputDir = NormalizeDirArg(args[0])
	}
	return nil
}

// printUsage writes the help text to w. Column-aligned for readability.
func printUsage(w io.Writer) {
	const col1 = 24 // width of "  -x, --long <arg>  "
	lines := []struct {
		flags string
		desc  string
	}{
		{"", "vidcompress v" + Version + " - fast batch H.264 video compressor"},
		{"", ""},
		{"  vidcompress [OPTIONS] [input_dir]", ""},
		{"", ""},
		{"Compresses every .mp4/.avi/.mov/.mkv in input_dir to <name>_compressed.<ext>", ""},
		{"(libx264 veryfast, CRF 28, AAC 128k). Prompts for input_dir when omitted.", ""},
		{"", ""},
		{"Behavior", ""},
		{"  -d, --dry-run", "Preview only; do not start the encoder"},
		{"", ""},
		{"Display", ""},
		{"  --color", "Force colored logs"},
		{"  --no-color", "Disable colored logs"},
		{"  -v, --verbose", "Verbose output (show ffmpeg output live)"},
		{"", ""},
		{"Utility", ""},
		{"  -l, --log <path>", "Append structured logs to file"},
		{"  -r, --report <path>", "Write run report (.json, .yaml)"},
		{"  -c, --check", "System diagnostics (ffmpeg, libx264, AAC)"},
		{"  -V, --version", "Print version and exit"},
		{"  -h, --help", "Show this help and exit"},
	}

	for _, l := range lines {
		if l.flags == "" && l.desc == "" {
			fmt.Fprintln(w)
			continue
		}
		if l.desc == "" {
			fmt.Fprintln(w, l.flags)
			continue
		}
		if l.flags == "" {
			fmt.Fprintln(w, l.desc)
			continue
		}
		padding := col1 - len(l.flags)
		if padding < 1 {
			padding = 1
		}
		fmt.Fprintf(w, "%s%*s%s\n", l.flags, padding, "", l.desc)
	}
}
