// Package terminal reports the controlling terminal's size as a viewport,
// so breakpoints can drive terminal layouts the same way they drive
// browser layouts.
package terminal

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/term"

	"github.com/withgalaxy/responsive/pkg/config"
	"github.com/withgalaxy/responsive/pkg/mediaquery"
	"github.com/withgalaxy/responsive/pkg/watcher"
)

var ErrNotTerminal = errors.New("not a terminal")

// SizeFunc returns the terminal size in cells.
type SizeFunc func() (cols, rows int, err error)

type Source struct {
	size     SizeFunc
	settings config.TerminalConfig
}

// New reads sizes from the terminal on fd.
func New(fd int, settings config.TerminalConfig) (*Source, error) {
	if !term.IsTerminal(fd) {
		return nil, fmt.Errorf("fd %d: %w", fd, ErrNotTerminal)
	}
	return NewWithSizeFunc(func() (int, int, error) {
		return term.GetSize(fd)
	}, settings), nil
}

func NewWithSizeFunc(size SizeFunc, settings config.TerminalConfig) *Source {
	return &Source{size: size, settings: settings}
}

// Viewport returns the current terminal size scaled to CSS pixels.
func (s *Source) Viewport() (mediaquery.Viewport, error) {
	cols, rows, err := s.size()
	if err != nil {
		return mediaquery.Viewport{}, fmt.Errorf("get terminal size: %w", err)
	}
	return s.settings.Scale(cols, rows), nil
}

func (s *Source) Settings() config.TerminalConfig {
	return s.settings
}

// Run applies the current size immediately, then polls and applies
// settled size changes until ctx is done. Resizes are debounced.
func (s *Source) Run(ctx context.Context, apply func(mediaquery.Viewport)) error {
	last, err := s.Viewport()
	if err != nil {
		return err
	}
	apply(last)

	// Stop waits for a debounced apply that is already running, so none
	// outlives Run.
	debouncer := watcher.NewDebouncer(s.settings.DebounceFor())
	defer debouncer.Stop()

	ticker := time.NewTicker(s.settings.PollEvery())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			vp, err := s.Viewport()
			if err != nil {
				return err
			}
			if vp == last {
				continue
			}
			last = vp
			if s.settings.Debounce == 0 {
				apply(vp)
				continue
			}
			debouncer.Trigger(func() { apply(vp) })
		}
	}
}
