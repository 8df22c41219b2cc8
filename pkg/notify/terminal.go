package notify

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// Terminal prints notifications as colored lines.
type Terminal struct {
	out *termenv.Output
}

var _ Sink = (*Terminal)(nil)

// NewTerminal writes to w, detecting its color profile unless opts override it.
func NewTerminal(w io.Writer, opts ...termenv.OutputOption) *Terminal {
	return &Terminal{out: termenv.NewOutput(w, opts...)}
}

func (t *Terminal) Notify(n Notification) {
	color := "#22c55e"
	if n.Level == Error {
		color = "#ef4444"
	}

	s := t.out.String(n.Message).Foreground(t.out.Color(color)).Bold()
	_, _ = fmt.Fprintln(t.out, s)
}
