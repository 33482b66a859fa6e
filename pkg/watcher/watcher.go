// Package watcher provides media query watchers: collaborators that
// evaluate queries continuously and call back on match and unmatch
// transitions.
//
// Handler semantics follow enquire.js. Registering a handler for a query
// that already matches fires Match straight away. Unregistering a query
// calls each handler's Destroy, or Unmatch when no Destroy is set and the
// query was matching.
package watcher

import (
	"io"
	"log/slog"
)

type Handler struct {
	Match   func()
	Unmatch func()
	// Destroy replaces the Unmatch call made when the query is unregistered.
	Destroy func()
}

type Watcher interface {
	Register(query string, h Handler)
	Unregister(query string)
}

func (h Handler) match() {
	if h.Match != nil {
		h.Match()
	}
}

func (h Handler) unmatch() {
	if h.Unmatch != nil {
		h.Unmatch()
	}
}

func (h Handler) destroy(matched bool) {
	if h.Destroy != nil {
		h.Destroy()
		return
	}
	if matched {
		h.unmatch()
	}
}

// Nop never matches and ignores registrations. It stands in for the
// browser watcher in headless and server-side code.
type Nop struct{}

func (Nop) Register(string, Handler) {}
func (Nop) Unregister(string)        {}

type Option func(*options)

type options struct {
	logger *slog.Logger
}

func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
