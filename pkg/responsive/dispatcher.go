// Package responsive tracks which breakpoints match the current viewport
// and notifies subscribed UI components when that set changes.
//
// A Dispatcher registers the breakpoint table with a media query watcher
// while it has at least one subscriber, and unregisters it when the last
// subscriber leaves. Subscribers always receive the current screens once,
// synchronously, when they subscribe.
package responsive

import (
	"io"
	"log/slog"
	"strconv"
	"sync"

	"github.com/withgalaxy/responsive/pkg/breakpoint"
	"github.com/withgalaxy/responsive/pkg/watcher"
)

// Listener receives the full screens snapshot on every dispatch. The map is
// the listener's own copy.
type Listener func(breakpoint.Screens)

// Token identifies a subscription. Tokens are issued in increasing order
// per Dispatcher, starting at 0.
type Token int64

func (t Token) String() string {
	return strconv.FormatInt(int64(t), 10)
}

type subscriber struct {
	token Token
	fn    Listener
}

type Dispatcher struct {
	watcher watcher.Watcher
	logger  *slog.Logger

	// transition serialises Idle/Active changes so registering or
	// unregistering the table and updating the subscriber list happen as
	// one step. It is never held while listeners run.
	transition sync.Mutex

	mu          sync.Mutex
	screens     breakpoint.Screens
	subscribers []subscriber
	lastToken   Token
	registered  bool
}

type Option func(*Dispatcher)

func WithLogger(l *slog.Logger) Option {
	return func(d *Dispatcher) {
		if l != nil {
			d.logger = l
		}
	}
}

// New creates an idle Dispatcher backed by w. A nil watcher is replaced
// with watcher.Nop.
func New(w watcher.Watcher, opts ...Option) *Dispatcher {
	if w == nil {
		w = watcher.Nop{}
	}
	d := &Dispatcher{
		watcher:   w,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		screens:   breakpoint.Screens{},
		lastToken: -1,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Subscribe adds fn and immediately calls it with the current screens.
// The first subscriber registers the breakpoint table with the watcher.
func (d *Dispatcher) Subscribe(fn Listener) Token {
	d.transition.Lock()
	d.mu.Lock()
	first := !d.registered
	d.registered = true
	d.mu.Unlock()

	// The watcher may fire Match handlers synchronously while registering,
	// so screens are settled before the new subscriber is added.
	if first {
		d.register()
	}

	d.mu.Lock()
	d.lastToken++
	tok := d.lastToken
	d.subscribers = append(d.subscribers, subscriber{token: tok, fn: fn})
	screens := d.screens.Clone()
	d.mu.Unlock()
	d.transition.Unlock()

	fn(screens)
	return tok
}

// Unsubscribe removes the subscription for tok. Unknown tokens are
// ignored. Removing the last subscriber unregisters the breakpoint table.
func (d *Dispatcher) Unsubscribe(tok Token) {
	d.transition.Lock()
	defer d.transition.Unlock()

	d.mu.Lock()
	kept := d.subscribers[:0]
	for _, s := range d.subscribers {
		if s.token != tok {
			kept = append(kept, s)
		}
	}
	for i := len(kept); i < len(d.subscribers); i++ {
		d.subscribers[i] = subscriber{}
	}
	d.subscribers = kept
	last := len(d.subscribers) == 0 && d.registered
	if last {
		d.registered = false
	}
	d.mu.Unlock()

	if last {
		d.unregister()
	}
}

// Dispatch stores screens as the current state and delivers it to every
// subscriber, most recently subscribed first. It reports whether there was
// anyone to deliver to.
func (d *Dispatcher) Dispatch(screens breakpoint.Screens) bool {
	d.mu.Lock()
	d.screens = screens.Clone()
	return d.fanOut()
}

func (d *Dispatcher) set(bp breakpoint.Breakpoint, matches bool) {
	d.mu.Lock()
	d.screens = d.screens.With(bp, matches)
	d.fanOut()
}

// fanOut must be called with d.mu held; it releases the lock before
// calling listeners.
func (d *Dispatcher) fanOut() bool {
	subs := make([]subscriber, len(d.subscribers))
	copy(subs, d.subscribers)
	screens := d.screens
	d.mu.Unlock()

	if len(subs) == 0 {
		return false
	}
	for i := len(subs) - 1; i >= 0; i-- {
		subs[i].fn(screens.Clone())
	}
	return true
}

func (d *Dispatcher) register() {
	d.logger.Debug("registering breakpoints", "count", len(breakpoint.Table))
	for _, e := range breakpoint.Table {
		bp := e.Breakpoint
		d.watcher.Register(e.Query, watcher.Handler{
			Match:   func() { d.set(bp, true) },
			Unmatch: func() { d.set(bp, false) },
			Destroy: func() {},
		})
	}
}

func (d *Dispatcher) unregister() {
	d.logger.Debug("unregistering breakpoints", "count", len(breakpoint.Table))
	for _, e := range breakpoint.Table {
		d.watcher.Unregister(e.Query)
	}
}

// Screens returns a copy of the last dispatched state.
func (d *Dispatcher) Screens() breakpoint.Screens {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.screens.Clone()
}

func (d *Dispatcher) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.subscribers)
}

// Active reports whether the breakpoint table is registered.
func (d *Dispatcher) Active() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.registered
}

// Close drops every subscriber and unregisters the breakpoint table. The
// Dispatcher can be subscribed to again afterwards.
func (d *Dispatcher) Close() {
	d.transition.Lock()
	defer d.transition.Unlock()

	d.mu.Lock()
	d.subscribers = nil
	wasActive := d.registered
	d.registered = false
	d.mu.Unlock()

	if wasActive {
		d.unregister()
	}
}
