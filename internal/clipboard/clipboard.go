// Package clipboard copies text to the system clipboard, falling back to an
// OSC 52 escape sequence when no clipboard utility is available.
package clipboard

import (
	"errors"
	"io"
	"os"

	"github.com/atotto/clipboard"
	osc52 "github.com/aymanbagabas/go-osc52/v2"
)

// Copier copies text. The zero value is not usable; use New.
type Copier struct {
	// System writes to the platform clipboard.
	System func(string) error
	// Fallback receives the OSC 52 sequence; nil disables the fallback.
	Fallback io.Writer
}

// New returns a Copier that uses the platform clipboard and falls back to
// writing OSC 52 to stderr when stderr is a terminal.
func New(stderrIsTTY bool) *Copier {
	c := &Copier{System: systemCopy}
	if stderrIsTTY {
		c.Fallback = os.Stderr
	}
	return c
}

var errUnsupported = errors.New("clipboard unsupported on this platform")

func systemCopy(text string) error {
	if clipboard.Unsupported {
		return errUnsupported
	}
	return clipboard.WriteAll(text)
}

// Copy copies text and reports whether any mechanism succeeded.
func (c *Copier) Copy(text string) bool {
	if c.System != nil && c.System(text) == nil {
		return true
	}
	if c.Fallback == nil {
		return false
	}
	seq := osc52.New(text)
	if os.Getenv("TMUX") != "" {
		seq = seq.Tmux()
	}
	_, err := seq.WriteTo(c.Fallback)
	return err == nil
}
