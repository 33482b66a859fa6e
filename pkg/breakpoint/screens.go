package breakpoint

// Screens records, per breakpoint, whether its query currently matches.
// A missing key means the breakpoint has not been reported yet.
type Screens map[Breakpoint]bool

// Clone returns an independent copy. Cloning nil yields an empty map.
func (s Screens) Clone() Screens {
	out := make(Screens, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// With returns a copy of s with bp set to matches.
func (s Screens) With(bp Breakpoint, matches bool) Screens {
	out := s.Clone()
	out[bp] = matches
	return out
}

// Matching returns the matching breakpoints, largest first.
func (s Screens) Matching() []Breakpoint {
	var out []Breakpoint
	for _, bp := range All {
		if s[bp] {
			out = append(out, bp)
		}
	}
	return out
}

// Current returns the largest matching breakpoint.
func (s Screens) Current() (Breakpoint, bool) {
	for _, bp := range All {
		if s[bp] {
			return bp, true
		}
	}
	return "", false
}

func (s Screens) Equal(other Screens) bool {
	if len(s) != len(other) {
		return false
	}
	for k, v := range s {
		if ov, ok := other[k]; !ok || ov != v {
			return false
		}
	}
	return true
}

// Resolve picks the value configured for the largest matching breakpoint,
// the way grid gutters and column spans are resolved from {xs: 8, md: 16}
// style settings. It reports false when no matching breakpoint has a value.
func Resolve[T any](values map[Breakpoint]T, screens Screens) (T, bool) {
	for _, bp := range All {
		if !screens[bp] {
			continue
		}
		if v, ok := values[bp]; ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}
