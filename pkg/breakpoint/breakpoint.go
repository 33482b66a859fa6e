// Package breakpoint defines the named screen-size buckets shared by Galaxy
// UI components and the media queries that select them.
package breakpoint

import (
	"errors"
	"fmt"

	"github.com/withgalaxy/responsive/pkg/mediaquery"
)

type Breakpoint string

const (
	XXL Breakpoint = "xxl"
	XL  Breakpoint = "xl"
	LG  Breakpoint = "lg"
	MD  Breakpoint = "md"
	SM  Breakpoint = "sm"
	XS  Breakpoint = "xs"
)

var ErrUnknown = errors.New("unknown breakpoint")

// All lists every breakpoint from largest to smallest. Responsive values
// are resolved in this order.
var All = []Breakpoint{XXL, XL, LG, MD, SM, XS}

// Entry pairs a breakpoint with its media query.
type Entry struct {
	Breakpoint Breakpoint `json:"breakpoint" yaml:"breakpoint" toml:"breakpoint"`
	Query      string     `json:"query" yaml:"query" toml:"query"`
}

// Table is the fixed breakpoint table in registration order. The query
// strings are part of the public contract and must not change.
var Table = []Entry{
	{XS, "(max-width: 575px)"},
	{SM, "(min-width: 576px)"},
	{MD, "(min-width: 768px)"},
	{LG, "(min-width: 992px)"},
	{XL, "(min-width: 1200px)"},
	{XXL, "(min-width: 1600px)"},
}

var compiled = func() map[Breakpoint]mediaquery.Query {
	m := make(map[Breakpoint]mediaquery.Query, len(Table))
	for _, e := range Table {
		m[e.Breakpoint] = mediaquery.MustParse(e.Query)
	}
	return m
}()

// Query returns the media query for bp, or "" if bp is not in the table.
func Query(bp Breakpoint) string {
	for _, e := range Table {
		if e.Breakpoint == bp {
			return e.Query
		}
	}
	return ""
}

func Parse(s string) (Breakpoint, error) {
	bp := Breakpoint(s)
	if !bp.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknown, s)
	}
	return bp, nil
}

func (b Breakpoint) Valid() bool {
	_, ok := compiled[b]
	return ok
}

func (b Breakpoint) String() string {
	return string(b)
}

func (b Breakpoint) MarshalText() ([]byte, error) {
	if !b.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknown, string(b))
	}
	return []byte(b), nil
}

func (b *Breakpoint) UnmarshalText(text []byte) error {
	bp, err := Parse(string(text))
	if err != nil {
		return err
	}
	*b = bp
	return nil
}

// Evaluate returns a complete Screens snapshot for a viewport of the given
// size in CSS pixels.
func Evaluate(width, height int) Screens {
	vp := mediaquery.Viewport{Width: width, Height: height}
	screens := make(Screens, len(Table))
	for _, e := range Table {
		screens[e.Breakpoint] = compiled[e.Breakpoint].Matches(vp)
	}
	return screens
}
