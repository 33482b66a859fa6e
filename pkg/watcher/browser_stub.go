//go:build !js || !wasm
// +build !js !wasm

package watcher

// Browser is inert outside js/wasm builds: queries never match.
type Browser struct{}

func NewBrowser(opts ...Option) *Browser            { return &Browser{} }
func (b *Browser) Register(query string, h Handler) {}
func (b *Browser) Unregister(query string)          {}
