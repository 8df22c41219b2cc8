// Package notify shows short-lived messages that dismiss themselves.
package notify

import (
	"sync"
	"time"
)

// DefaultTimeout is how long a notification stays visible.
const DefaultTimeout = 5 * time.Second

type Level string

const (
	Info  Level = "info"
	Error Level = "error"
)

// A Notification is one message shown to the user.
type Notification struct {
	Level   Level     `json:"level"`
	Message string    `json:"message"`
	Shown   time.Time `json:"shown"`
}

// A Sink displays notifications as they are shown, e.g. on a terminal.
type Sink interface {
	Notify(Notification)
}

// Notifier holds at most one visible notification. Showing a new one
// replaces the old one and restarts the timeout.
type Notifier struct {
	timeout time.Duration
	sinks   []Sink
	now     func() time.Time

	mu      sync.Mutex
	current *Notification
	// generation invalidates dismiss timers of replaced notifications.
	generation uint64
	timer      *time.Timer
}

// New returns a Notifier whose notifications dismiss after timeout.
// A non-positive timeout means DefaultTimeout.
func New(timeout time.Duration, sinks ...Sink) *Notifier {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &Notifier{
		timeout: timeout,
		sinks:   sinks,
		now:     time.Now,
	}
}

// Show displays a message. It never blocks on the dismissal.
func (n *Notifier) Show(level Level, message string) Notification {
	n.mu.Lock()
	note := Notification{Level: level, Message: message, Shown: n.now()}
	n.current = &note
	n.generation++
	gen := n.generation

	if n.timer != nil {
		n.timer.Stop()
	}
	n.timer = time.AfterFunc(n.timeout, func() { n.expire(gen) })
	n.mu.Unlock()

	for _, s := range n.sinks {
		s.Notify(note)
	}

	return note
}

// Current returns the visible notification, if any.
func (n *Notifier) Current() (Notification, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.current == nil {
		return Notification{}, false
	}
	return *n.current, true
}

// Dismiss hides the visible notification immediately.
func (n *Notifier) Dismiss() {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.generation++
	n.current = nil
	if n.timer != nil {
		n.timer.Stop()
		n.timer = nil
	}
}

func (n *Notifier) expire(gen uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if gen != n.generation {
		return
	}
	n.current = nil
	n.timer = nil
}
