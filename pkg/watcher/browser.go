//go:build js && wasm
// +build js,wasm

package watcher

import (
	"log/slog"
	"sync"
	"syscall/js"
)

// Browser watches queries with window.matchMedia.
type Browser struct {
	mu      sync.Mutex
	lists   map[string]*mediaList
	logger  *slog.Logger
	missing bool
}

type mediaList struct {
	mql      js.Value
	listener js.Func
	matched  bool
	handlers []Handler
}

var (
	noopOnce sync.Once
	noopFunc js.Func
)

func NewBrowser(opts ...Option) *Browser {
	o := buildOptions(opts)
	b := &Browser{
		lists:  make(map[string]*mediaList),
		logger: o.logger,
	}
	if js.Global().Get("matchMedia").Type() != js.TypeFunction {
		b.missing = true
		b.logger.Warn("matchMedia unavailable, queries will never match")
	}
	return b
}

func (b *Browser) Register(query string, h Handler) {
	b.mu.Lock()
	ml, ok := b.lists[query]
	if !ok {
		ml = &mediaList{mql: b.matchMedia(query)}
		ml.matched = ml.mql.Get("matches").Truthy()
		ml.listener = js.FuncOf(func(this js.Value, args []js.Value) interface{} {
			matches := ml.mql.Get("matches").Truthy()
			if len(args) > 0 && args[0].Get("matches").Type() == js.TypeBoolean {
				matches = args[0].Get("matches").Bool()
			}
			b.change(query, matches)
			return nil
		})
		ml.mql.Call("addListener", ml.listener)
		b.lists[query] = ml
	}
	ml.handlers = append(ml.handlers, h)
	matched := ml.matched
	b.mu.Unlock()

	if matched {
		h.match()
	}
}

func (b *Browser) Unregister(query string) {
	b.mu.Lock()
	ml, ok := b.lists[query]
	if !ok {
		b.mu.Unlock()
		return
	}
	delete(b.lists, query)
	b.mu.Unlock()

	ml.mql.Call("removeListener", ml.listener)
	ml.listener.Release()
	for _, h := range ml.handlers {
		h.destroy(ml.matched)
	}
}

func (b *Browser) change(query string, matches bool) {
	b.mu.Lock()
	ml, ok := b.lists[query]
	if !ok || ml.matched == matches {
		b.mu.Unlock()
		return
	}
	ml.matched = matches
	handlers := make([]Handler, len(ml.handlers))
	copy(handlers, ml.handlers)
	b.mu.Unlock()

	for _, h := range handlers {
		if matches {
			h.match()
		} else {
			h.unmatch()
		}
	}
}

func (b *Browser) matchMedia(query string) js.Value {
	if !b.missing {
		return js.Global().Call("matchMedia", query)
	}

	noopOnce.Do(func() {
		noopFunc = js.FuncOf(func(this js.Value, args []js.Value) interface{} {
			return nil
		})
	})
	mql := js.Global().Get("Object").New()
	mql.Set("media", query)
	mql.Set("matches", false)
	mql.Set("addListener", noopFunc)
	mql.Set("removeListener", noopFunc)
	return mql
}
