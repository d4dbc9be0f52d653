// Package term holds the ANSI palette shared by the logger and the banner,
// and decides whether it is switched on.
package term

import (
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/backmassage/vidcompress/internal/config"
)

// Palette entries. All of them are "" while colour is off, so callers can
// concatenate unconditionally.
var (
	Red     = ""
	Green   = ""
	Yellow  = ""
	Blue    = ""
	Cyan    = ""
	Magenta = ""
	NC      = ""
)

const (
	ansiRed     = "\033[1;91m"
	ansiGreen   = "\033[1;92m"
	ansiYellow  = "\033[1;93m"
	ansiBlue    = "\033[1;94m"
	ansiMagenta = "\033[1;95m"
	ansiCyan    = "\033[1;96m"
	ansiReset   = "\033[0m"
)

// Configure switches the palette on or off for mode. ColorAuto colours only
// an interactive stdout whose environment allows it.
func Configure(mode config.ColorMode) {
	on := mode == config.ColorAlways
	if mode == config.ColorAuto {
		on = IsTerminal(os.Stdout) && EnvAllowsColor(os.Getenv)
	}
	if !on {
		Red, Green, Yellow, Blue, Cyan, Magenta, NC = "", "", "", "", "", "", ""
		return
	}
	Red, Green, Yellow, Blue = ansiRed, ansiGreen, ansiYellow, ansiBlue
	Cyan, Magenta, NC = ansiCyan, ansiMagenta, ansiReset
}

// Enabled reports whether the palette is on.
func Enabled() bool { return NC != "" }

// EnvAllowsColor applies the NO_COLOR convention (https://no-color.org) and
// the TERM=dumb opt-out. getenv is os.Getenv outside tests.
func EnvAllowsColor(getenv func(string) string) bool {
	if getenv("NO_COLOR") != "" {
		return false
	}
	return !strings.EqualFold(getenv("TERM"), "dumb")
}

// IsTerminal reports whether f is a TTY, counting Cygwin/MSYS ptys.
func IsTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
