package webkit

import (
	"time"

	"github.com/diamondburned/gotk4/pkg/glib/v2"

	"github.com/mattmireles/Hyperchat-sub000/internal/application/port"
)

// Dispatcher schedules work on the GTK main loop. Post runs on the next
// idle iteration; PostDelayed uses a one-shot GLib timeout. Both are safe
// to call from any goroutine.
type Dispatcher struct{}

var _ port.Dispatcher = Dispatcher{}

// NewDispatcher returns the main-loop dispatcher.
func NewDispatcher() Dispatcher {
	return Dispatcher{}
}

// Post schedules fn on the next main-loop idle iteration.
func (Dispatcher) Post(fn func()) {
	glib.IdleAdd(func() bool {
		fn()
		return false
	})
}

// PostDelayed schedules fn after roughly d. GLib timeouts have millisecond
// granularity; sub-millisecond delays are rounded up to 1ms.
func (Dispatcher) PostDelayed(d time.Duration, fn func()) {
	ms := uint(d / time.Millisecond)
	if ms == 0 && d > 0 {
		ms = 1
	}
	glib.TimeoutAdd(ms, func() bool {
		fn()
		return false
	})
}
