package cli

import (
	"os"

	"github.com/mattn/go-isatty"
	"golang.org/x/term"

	"github.com/yaklabco/saeval/internal/ui/pretty"
)

// stylesBundle pairs the styled renderers with the stream they target.
type stylesBundle struct {
	Styles *pretty.Styles
}

func newStylesBundle(colorMode string) *stylesBundle {
	enabled := pretty.IsColorEnabled(colorMode, os.Stdout)
	return &stylesBundle{Styles: pretty.NewStyles(enabled)}
}

// terminalWidth returns the column width of f when it is a terminal, or 0.
func terminalWidth(f *os.File) int {
	if !isatty.IsTerminal(f.Fd()) {
		return 0
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0
	}
	return width
}
