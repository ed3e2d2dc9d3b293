package scroll

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// timer is an owned, cancellable deferred callback on the event loop.
// Arming bumps the generation, so a tick from an earlier arm is recognised
// as stale when it arrives. At most one generation is live.
type timer struct {
	seq   uint64
	armed bool
}

// arm cancels any pending generation and returns a command that delivers
// msg(seq) after d.
func (t *timer) arm(d time.Duration, msg func(seq uint64) tea.Msg) tea.Cmd {
	t.seq++
	t.armed = true
	seq := t.seq
	return tea.Tick(d, func(time.Time) tea.Msg {
		return msg(seq)
	})
}

// cancel invalidates the pending generation.
func (t *timer) cancel() {
	if t.armed {
		t.seq++
		t.armed = false
	}
}

// fire reports whether seq is the live generation and disarms it.
func (t *timer) fire(seq uint64) bool {
	if !t.armed || seq != t.seq {
		return false
	}
	t.armed = false
	return true
}

// pending reports whether a generation is armed.
func (t *timer) pending() bool {
	return t.armed
}
