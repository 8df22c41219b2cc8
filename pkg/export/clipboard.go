package export

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/aymanbagabas/go-osc52/v2"
	"golang.org/x/term"

	"github.com/willbeason/webtree/pkg/notify"
)

// DefaultClipboardLimit is the largest OSC 52 payload sent. Terminals
// silently drop longer sequences, so refusing is better than pretending.
const DefaultClipboardLimit = 1 << 20

var (
	// ErrClipboardUnavailable is returned when the output cannot reach a
	// clipboard at all.
	ErrClipboardUnavailable = errors.New("clipboard unavailable")

	// ErrClipboardTooLarge is returned when the image exceeds the limit.
	ErrClipboardTooLarge = errors.New("image too large for clipboard")
)

// Clipboard copies images to the system clipboard of the terminal attached
// to Out, using the OSC 52 escape sequence.
//
// OSC 52 carries text, so images are copied as a base64 data URL.
type Clipboard struct {
	Out io.Writer
	// Terminal reports whether Out is an interactive terminal.
	Terminal bool
	// Tmux wraps the sequence so tmux passes it through.
	Tmux bool
	// Limit caps the payload size; zero means DefaultClipboardLimit.
	Limit int
}

// NewClipboard targets the terminal on f.
func NewClipboard(f *os.File) *Clipboard {
	return &Clipboard{
		Out:      f,
		Terminal: term.IsTerminal(int(f.Fd())),
		Tmux:     os.Getenv("TMUX") != "",
	}
}

// CopyPNG places the encoded PNG on the clipboard.
func (c *Clipboard) CopyPNG(data []byte) error {
	if !c.Terminal {
		return fmt.Errorf("%w: output is not a terminal", ErrClipboardUnavailable)
	}

	uri := DataURL(data)

	limit := c.Limit
	if limit <= 0 {
		limit = DefaultClipboardLimit
	}
	if len(uri) > limit {
		return fmt.Errorf("%w: %d bytes exceeds %d", ErrClipboardTooLarge, len(uri), limit)
	}

	seq := osc52.New(uri)
	if c.Tmux {
		seq = seq.Tmux()
	}

	if _, err := seq.WriteTo(c.Out); err != nil {
		return fmt.Errorf("%w: %w", ErrClipboardUnavailable, err)
	}
	return nil
}

// DataURL encodes a PNG as a data URL.
func DataURL(png []byte) string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png)
}

// Clipboard notification messages.
const (
	MessageCopied      = "Tree copied to Clipboard!"
	MessageTooLarge    = "Unable to copy to Clipboard! The image is larger than the terminal accepts."
	MessageUnsupported = "Unable to copy to Clipboard! Does your terminal support OSC 52?"
	MessageEncode      = "Unable to copy to Clipboard! The image could not be encoded."
)

// ClipboardNotice is the notification to show for the outcome of a copy.
func ClipboardNotice(err error) (notify.Level, string) {
	switch {
	case err == nil:
		return notify.Info, MessageCopied
	case errors.Is(err, ErrClipboardTooLarge):
		return notify.Error, MessageTooLarge
	case errors.Is(err, ErrEncode):
		return notify.Error, MessageEncode
	default:
		return notify.Error, MessageUnsupported
	}
}
