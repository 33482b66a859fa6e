package breakpoint

import (
	"encoding/json"
	"errors"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestTableIsFixed(t *testing.T) {
	want := map[Breakpoint]string{
		XS:  "(max-width: 575px)",
		SM:  "(min-width: 576px)",
		MD:  "(min-width: 768px)",
		LG:  "(min-width: 992px)",
		XL:  "(min-width: 1200px)",
		XXL: "(min-width: 1600px)",
	}

	if len(Table) != len(want) {
		t.Fatalf("expected %d entries, got %d", len(want), len(Table))
	}
	order := []Breakpoint{XS, SM, MD, LG, XL, XXL}
	for i, e := range Table {
		if e.Breakpoint != order[i] {
			t.Errorf("Table[%d] = %s, want %s", i, e.Breakpoint, order[i])
		}
		if e.Query != want[e.Breakpoint] {
			t.Errorf("query for %s = %q, want %q", e.Breakpoint, e.Query, want[e.Breakpoint])
		}
		if Query(e.Breakpoint) != e.Query {
			t.Errorf("Query(%s) = %q, want %q", e.Breakpoint, Query(e.Breakpoint), e.Query)
		}
	}

	if Query("huge") != "" {
		t.Error("Query for unknown breakpoint should be empty")
	}
}

func TestAllOrder(t *testing.T) {
	want := []Breakpoint{XXL, XL, LG, MD, SM, XS}
	for i, bp := range All {
		if bp != want[i] {
			t.Errorf("All[%d] = %s, want %s", i, bp, want[i])
		}
	}
}

func TestParse(t *testing.T) {
	bp, err := Parse("md")
	if err != nil || bp != MD {
		t.Errorf("Parse(md) = %v, %v", bp, err)
	}

	_, err = Parse("xxxl")
	if !errors.Is(err, ErrUnknown) {
		t.Errorf("expected ErrUnknown, got %v", err)
	}
}

func TestEvaluate(t *testing.T) {
	tests := []struct {
		width   int
		current Breakpoint
		match   []Breakpoint
	}{
		{320, XS, []Breakpoint{XS}},
		{575, XS, []Breakpoint{XS}},
		{576, SM, []Breakpoint{SM}},
		{800, MD, []Breakpoint{MD, SM}},
		{992, LG, []Breakpoint{LG, MD, SM}},
		{1280, XL, []Breakpoint{XL, LG, MD, SM}},
		{1920, XXL, []Breakpoint{XXL, XL, LG, MD, SM}},
	}

	for _, tt := range tests {
		screens := Evaluate(tt.width, 900)
		if len(screens) != len(Table) {
			t.Errorf("width %d: expected all %d breakpoints reported, got %d", tt.width, len(Table), len(screens))
		}
		cur, ok := screens.Current()
		if !ok || cur != tt.current {
			t.Errorf("width %d: Current() = %s, %v, want %s", tt.width, cur, ok, tt.current)
		}
		got := screens.Matching()
		if len(got) != len(tt.match) {
			t.Errorf("width %d: Matching() = %v, want %v", tt.width, got, tt.match)
			continue
		}
		for i := range got {
			if got[i] != tt.match[i] {
				t.Errorf("width %d: Matching() = %v, want %v", tt.width, got, tt.match)
				break
			}
		}
	}
}

func TestScreensWithDoesNotMutate(t *testing.T) {
	base := Screens{MD: true}
	next := base.With(MD, false).With(LG, true)

	if !base[MD] || len(base) != 1 {
		t.Errorf("With mutated the receiver: %v", base)
	}
	if next[MD] || !next[LG] {
		t.Errorf("unexpected result %v", next)
	}

	var empty Screens
	if got := empty.With(XS, true); !got[XS] {
		t.Error("With on nil Screens should work")
	}
}

func TestScreensEqual(t *testing.T) {
	if !(Screens{MD: true}).Equal(Screens{MD: true}) {
		t.Error("expected equal")
	}
	if (Screens{MD: true}).Equal(Screens{MD: false}) {
		t.Error("expected different values to differ")
	}
	if (Screens{MD: false}).Equal(Screens{}) {
		t.Error("explicit false differs from unreported")
	}
}

func TestResolve(t *testing.T) {
	gutter := map[Breakpoint]int{XS: 8, MD: 16, XL: 32}

	tests := []struct {
		screens Screens
		want    int
		ok      bool
	}{
		{Evaluate(400, 800), 8, true},
		{Evaluate(700, 800), 0, false},
		{Evaluate(900, 800), 16, true},
		{Evaluate(1100, 800), 16, true},
		{Evaluate(1700, 800), 32, true},
		{Screens{}, 0, false},
	}

	for _, tt := range tests {
		got, ok := Resolve(gutter, tt.screens)
		if got != tt.want || ok != tt.ok {
			t.Errorf("Resolve(%v) = %d, %v, want %d, %v", tt.screens, got, ok, tt.want, tt.ok)
		}
	}
}

func TestScreensEncoding(t *testing.T) {
	screens := Screens{MD: true, XS: false}

	data, err := json.Marshal(screens)
	if err != nil {
		t.Fatalf("json.Marshal: %v", err)
	}
	var decoded Screens
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("json.Unmarshal: %v", err)
	}
	if !decoded.Equal(screens) {
		t.Errorf("json round trip = %v, want %v", decoded, screens)
	}

	if err := json.Unmarshal([]byte(`{"huge":true}`), &decoded); err == nil {
		t.Error("expected error decoding unknown breakpoint key")
	}

	var fromYAML Screens
	if err := yaml.Unmarshal([]byte("md: true\nsm: true\n"), &fromYAML); err != nil {
		t.Fatalf("yaml.Unmarshal: %v", err)
	}
	if !fromYAML.Equal(Screens{MD: true, SM: true}) {
		t.Errorf("yaml decode = %v", fromYAML)
	}
}
