package display

import (
	"fmt"
	"io"

	"github.com/backmassage/vidcompress/internal/term"
)

// PrintBanner prints the ASCII art banner to w; uses Magenta if colors are enabled.
func PrintBanner(w io.Writer) {
	fmt.Fprint(w, term.Magenta)
	fmt.Fprint(w, `      _     _                                           
__   _(_) __| | ___ ___  _ __ ___  _ __  _ __ ___  ___ ___
\ \ / / |/ _`+"`"+` |/ __/ _ \| '_ `+"`"+` _ \| '_ \| '__/ _ \/ __/ __|
 \ V /| | (_| | (_| (_) | | | | | | |_) | | |  __/\__ \__ \
  \_/ |_|\__,_|\___\___/|_| |_| |_| .__/|_|  \___||___/___/
                                  |_|
`)
	if term.Enabled() {
		fmt.Fprintln(w, term.NC)
	}
}
