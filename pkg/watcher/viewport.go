package watcher

import (
	"log/slog"
	"sync"

	"github.com/withgalaxy/responsive/pkg/mediaquery"
)

// Viewport evaluates registered queries against a viewport size that the
// owner updates with Resize. It backs server-side rendering, terminal
// sessions and remote browser sessions.
type Viewport struct {
	mu      sync.Mutex
	size    mediaquery.Viewport
	entries map[string]*entry
	order   []string
	logger  *slog.Logger
}

type entry struct {
	query    mediaquery.Query
	matched  bool
	handlers []Handler
}

type transition struct {
	handlers []Handler
	matched  bool
}

func NewViewport(size mediaquery.Viewport, opts ...Option) *Viewport {
	o := buildOptions(opts)
	return &Viewport{
		size:    size,
		entries: make(map[string]*entry),
		logger:  o.logger,
	}
}

func (v *Viewport) Size() mediaquery.Viewport {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.size
}

// Register adds h to query. Invalid queries are kept but never match.
func (v *Viewport) Register(query string, h Handler) {
	v.mu.Lock()
	e, ok := v.entries[query]
	if !ok {
		q, err := mediaquery.Parse(query)
		if err != nil {
			v.logger.Warn("invalid media query never matches", "query", query, "error", err)
		}
		e = &entry{query: q, matched: q.Matches(v.size)}
		v.entries[query] = e
		v.order = append(v.order, query)
	}
	e.handlers = append(e.handlers, h)
	matched := e.matched
	v.mu.Unlock()

	if matched {
		h.match()
	}
}

func (v *Viewport) Unregister(query string) {
	v.mu.Lock()
	e, ok := v.entries[query]
	if !ok {
		v.mu.Unlock()
		return
	}
	delete(v.entries, query)
	for i, q := range v.order {
		if q == query {
			v.order = append(v.order[:i], v.order[i+1:]...)
			break
		}
	}
	v.mu.Unlock()

	for _, h := range e.handlers {
		h.destroy(e.matched)
	}
}

// Resize sets the viewport and fires Match or Unmatch for every query whose
// result changed, in registration order.
func (v *Viewport) Resize(size mediaquery.Viewport) {
	v.mu.Lock()
	v.size = size
	var changed []transition
	for _, query := range v.order {
		e := v.entries[query]
		matched := e.query.Matches(size)
		if matched == e.matched {
			continue
		}
		e.matched = matched
		handlers := make([]Handler, len(e.handlers))
		copy(handlers, e.handlers)
		changed = append(changed, transition{handlers: handlers, matched: matched})
	}
	v.mu.Unlock()

	for _, t := range changed {
		for _, h := range t.handlers {
			if t.matched {
				h.match()
			} else {
				h.unmatch()
			}
		}
	}
}

// Matches reports the last evaluated result for a registered query.
func (v *Viewport) Matches(query string) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	if e, ok := v.entries[query]; ok {
		return e.matched
	}
	return false
}

func (v *Viewport) Queries() []string {
	v.mu.Lock()
	defer v.mu.Unlock()
	out := make([]string, len(v.order))
	copy(out, v.order)
	return out
}
