// Package scoring validates one day's self-report and turns it into a
// Daily Cognitive Score (DCS) with a per-dimension breakdown.
//
// Everything in this package is pure: the only inputs are the raw entry and
// an immutable Profile, and the only state is what the caller passes in.
package scoring

import "strings"

// Dimension names one self-reported input. The string value is also the
// JSON field name used on the wire.
type Dimension string

const (
	Mood   Dimension = "mood"
	Sleep  Dimension = "sleep_hours"
	Stress Dimension = "stress"
	Focus  Dimension = "focus"
)

// dimensions is the canonical evaluation order. Validation reports the first
// failing field in this order and the composite is summed in this order.
var dimensions = [...]Dimension{Mood, Sleep, Stress, Focus}

// Dimensions returns every known dimension in canonical order.
func Dimensions() []Dimension {
	out := make([]Dimension, len(dimensions))
	copy(out, dimensions[:])
	return out
}

// Inverse reports whether higher raw values are worse for this dimension.
func (d Dimension) Inverse() bool { return d == Stress }

func (d Dimension) String() string { return string(d) }

// ParseDimension resolves a dimension name. "sleep" is accepted as an alias
// of "sleep_hours" so hand-written profiles stay readable.
func ParseDimension(s string) (Dimension, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "mood":
		return Mood, true
	case "sleep", "sleep_hours":
		return Sleep, true
	case "stress":
		return Stress, true
	case "focus":
		return Focus, true
	}
	return "", false
}
