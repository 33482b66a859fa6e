// Package mediaquery parses and evaluates the subset of CSS media queries
// used by responsive UI code against a known viewport size.
package mediaquery

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// RootFontSize is the px size of one em/rem when evaluating queries.
const RootFontSize = 16

var ErrSyntax = errors.New("mediaquery: syntax error")

type SyntaxError struct {
	Query string
	Msg   string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("mediaquery: %s in %q", e.Msg, e.Query)
}

func (e *SyntaxError) Unwrap() error {
	return ErrSyntax
}

// Viewport is the size, in CSS pixels, queries are evaluated against.
type Viewport struct {
	Width  int `json:"width" yaml:"width" toml:"width"`
	Height int `json:"height" yaml:"height" toml:"height"`
}

func (v Viewport) Orientation() string {
	if v.Height >= v.Width {
		return "portrait"
	}
	return "landscape"
}

type Query struct {
	raw   string
	parts []conjunction
}

type conjunction struct {
	negate    bool
	mediaType string
	features  []feature
}

type feature struct {
	name    string
	value   float64
	keyword string
}

func Parse(s string) (Query, error) {
	q := Query{raw: s}
	src := strings.ToLower(strings.TrimSpace(s))
	if src == "" {
		return q, &SyntaxError{Query: s, Msg: "empty query"}
	}

	for _, part := range strings.Split(src, ",") {
		c, err := parseConjunction(strings.TrimSpace(part))
		if err != nil {
			return Query{raw: s}, &SyntaxError{Query: s, Msg: err.Error()}
		}
		q.parts = append(q.parts, c)
	}
	return q, nil
}

func MustParse(s string) Query {
	q, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return q
}

func (q Query) String() string {
	return q.raw
}

// Matches reports whether any comma-separated branch of the query holds
// for the viewport. The zero Query never matches.
func (q Query) Matches(v Viewport) bool {
	for _, c := range q.parts {
		if c.matches(v) {
			return true
		}
	}
	return false
}

func (c conjunction) matches(v Viewport) bool {
	ok := c.mediaType != "print"
	for _, f := range c.features {
		if !ok {
			break
		}
		ok = f.matches(v)
	}
	if c.negate {
		return !ok
	}
	return ok
}

func (f feature) matches(v Viewport) bool {
	w, h := float64(v.Width), float64(v.Height)
	switch f.name {
	case "width":
		return w == f.value
	case "min-width":
		return w >= f.value
	case "max-width":
		return w <= f.value
	case "height":
		return h == f.value
	case "min-height":
		return h >= f.value
	case "max-height":
		return h <= f.value
	case "orientation":
		return v.Orientation() == f.keyword
	}
	return false
}

func parseConjunction(src string) (conjunction, error) {
	var c conjunction
	tokens, err := tokenize(src)
	if err != nil {
		return c, err
	}
	if len(tokens) == 0 {
		return c, errors.New("empty media query list entry")
	}

	// "not (feature)" negates a single condition and takes no media type.
	if tokens[0] == "not" && len(tokens) > 1 && isGroup(tokens[1]) {
		if len(tokens) > 2 {
			return c, fmt.Errorf("unexpected %q after negated condition", tokens[2])
		}
		f, err := parseFeature(tokens[1][1 : len(tokens[1])-1])
		if err != nil {
			return c, err
		}
		c.negate = true
		c.features = append(c.features, f)
		return c, nil
	}

	i := 0
	if tokens[i] == "only" || tokens[i] == "not" {
		c.negate = tokens[i] == "not"
		i++
		if i >= len(tokens) || isGroup(tokens[i]) {
			return c, errors.New("expected media type")
		}
	}

	if i < len(tokens) && !isGroup(tokens[i]) {
		switch tokens[i] {
		case "all", "screen", "print":
			c.mediaType = tokens[i]
		default:
			return c, fmt.Errorf("unknown media type %q", tokens[i])
		}
		i++
		if i < len(tokens) {
			if tokens[i] != "and" {
				return c, fmt.Errorf("expected \"and\", got %q", tokens[i])
			}
			i++
			if i >= len(tokens) {
				return c, errors.New("dangling \"and\"")
			}
		}
	}

	for i < len(tokens) {
		if !isGroup(tokens[i]) {
			return c, fmt.Errorf("expected feature, got %q", tokens[i])
		}
		f, err := parseFeature(tokens[i][1 : len(tokens[i])-1])
		if err != nil {
			return c, err
		}
		c.features = append(c.features, f)
		i++

		if i < len(tokens) {
			if tokens[i] != "and" {
				return c, fmt.Errorf("expected \"and\", got %q", tokens[i])
			}
			i++
			if i >= len(tokens) {
				return c, errors.New("dangling \"and\"")
			}
		}
	}
	return c, nil
}

func isGroup(tok string) bool {
	return strings.HasPrefix(tok, "(")
}

func tokenize(src string) ([]string, error) {
	var tokens []string
	for i := 0; i < len(src); {
		switch ch := src[i]; {
		case ch == ' ' || ch == '\t' || ch == '\n':
			i++
		case ch == '(':
			end := strings.IndexByte(src[i:], ')')
			if end < 0 {
				return nil, errors.New("unclosed parenthesis")
			}
			tokens = append(tokens, src[i:i+end+1])
			i += end + 1
		case ch == ')':
			return nil, errors.New("unexpected \")\"")
		default:
			j := i
			for j < len(src) && src[j] != ' ' && src[j] != '(' && src[j] != ')' && src[j] != '\t' {
				j++
			}
			tokens = append(tokens, src[i:j])
			i = j
		}
	}
	return tokens, nil
}

func parseFeature(src string) (feature, error) {
	name, value, ok := strings.Cut(src, ":")
	if !ok {
		return feature{}, fmt.Errorf("feature %q has no value", strings.TrimSpace(src))
	}
	f := feature{name: strings.TrimSpace(name)}
	value = strings.TrimSpace(value)

	switch f.name {
	case "orientation":
		if value != "portrait" && value != "landscape" {
			return f, fmt.Errorf("invalid orientation %q", value)
		}
		f.keyword = value
		return f, nil
	case "width", "min-width", "max-width", "height", "min-height", "max-height":
		n, err := parseLength(value)
		if err != nil {
			return f, err
		}
		f.value = n
		return f, nil
	}
	return f, fmt.Errorf("unsupported feature %q", f.name)
}

func parseLength(s string) (float64, error) {
	scale := 1.0
	num := s
	switch {
	case strings.HasSuffix(s, "px"):
		num = strings.TrimSuffix(s, "px")
	case strings.HasSuffix(s, "rem"):
		num, scale = strings.TrimSuffix(s, "rem"), RootFontSize
	case strings.HasSuffix(s, "em"):
		num, scale = strings.TrimSuffix(s, "em"), RootFontSize
	}

	n, err := strconv.ParseFloat(strings.TrimSpace(num), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid length %q", s)
	}
	if num == s && n != 0 {
		return 0, fmt.Errorf("length %q needs a unit", s)
	}
	return n * scale, nil
}
