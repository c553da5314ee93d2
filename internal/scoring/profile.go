package scoring

import (
	"fmt"
	"math"
	"sort"
)

// WeightSumEpsilon is the tolerance allowed when checking that weights sum to 1.
const WeightSumEpsilon = 1e-6

// Bounds is the inclusive [Min, Max] range accepted for one dimension.
type Bounds struct {
	Min float64 `yaml:"min" json:"min"`
	Max float64 `yaml:"max" json:"max"`
}

// ProfileSpec is the serializable form of a scoring profile, as read from
// YAML or returned by the API. Omitted sections fall back to defaults;
// a dimension omitted from a non-empty Weights map gets weight 0.
type ProfileSpec struct {
	Bounds           map[string]Bounds  `yaml:"bounds" json:"bounds"`
	Weights          map[string]float64 `yaml:"weights" json:"weights"`
	Windows          []int              `yaml:"windows" json:"windows"`
	ClampOutOfRange  bool               `yaml:"clamp_out_of_range" json:"clamp_out_of_range"`
	TrendFlatEpsilon *float64           `yaml:"trend_flat_epsilon" json:"trend_flat_epsilon"`
}

// DefaultSpec returns the built-in profile: bounds {mood: [0,10],
// sleep_hours: [0,24], stress: [0,10], focus: [0,10]}, focus weighted twice
// as much as each other dimension, windows 7 and 30, rejection of
// out-of-range input, and a flat-trend threshold of 0.1 points per day.
func DefaultSpec() ProfileSpec {
	eps := 0.1
	return ProfileSpec{
		Bounds: map[string]Bounds{
			string(Mood):   {Min: 0, Max: 10},
			string(Sleep):  {Min: 0, Max: 24},
			string(Stress): {Min: 0, Max: 10},
			string(Focus):  {Min: 0, Max: 10},
		},
		Weights: map[string]float64{
			string(Mood):   0.2,
			string(Sleep):  0.2,
			string(Stress): 0.2,
			string(Focus):  0.4,
		},
		Windows:          []int{7, 30},
		ClampOutOfRange:  false,
		TrendFlatEpsilon: &eps,
	}
}

// Profile is a validated, immutable scoring configuration. Build one with
// NewProfile; accessors return copies.
type Profile struct {
	bounds      map[Dimension]Bounds
	weights     map[Dimension]float64
	windows     []int
	clamp       bool
	flatEpsilon float64
}

// NewProfile validates spec and freezes it into a Profile. Any malformed
// value yields a *ConfigurationError naming the offending field.
func NewProfile(spec ProfileSpec) (*Profile, error) {
	def := DefaultSpec()
	p := &Profile{
		bounds:  make(map[Dimension]Bounds, len(dimensions)),
		weights: make(map[Dimension]float64, len(dimensions)),
		clamp:   spec.ClampOutOfRange,
	}

	for _, d := range dimensions {
		p.bounds[d] = def.Bounds[string(d)]
	}
	for name, b := range spec.Bounds {
		d, ok := ParseDimension(name)
		if !ok {
			return nil, &ConfigurationError{Field: "bounds." + name, Reason: "unknown dimension"}
		}
		if !finite(b.Min) || !finite(b.Max) {
			return nil, &ConfigurationError{Field: "bounds." + name, Reason: "bounds must be finite"}
		}
		if b.Min >= b.Max {
			return nil, &ConfigurationError{Field: "bounds." + name, Reason: fmt.Sprintf("min %s must be below max %s", fmtNum(b.Min), fmtNum(b.Max))}
		}
		if d == Sleep && b.Min < 0 {
			return nil, &ConfigurationError{Field: "bounds." + name, Reason: "sleep hours cannot be negative"}
		}
		p.bounds[d] = b
	}

	weights := spec.Weights
	if len(weights) == 0 {
		weights = def.Weights
	}
	for _, d := range dimensions {
		p.weights[d] = 0
	}
	for name, w := range weights {
		d, ok := ParseDimension(name)
		if !ok {
			return nil, &ConfigurationError{Field: "weights." + name, Reason: "unknown dimension"}
		}
		if !finite(w) {
			return nil, &ConfigurationError{Field: "weights." + name, Reason: "weight must be finite"}
		}
		if w < 0 {
			return nil, &ConfigurationError{Field: "weights." + name, Reason: "weight must not be negative"}
		}
		p.weights[d] = w
	}
	var sum float64
	for _, d := range dimensions {
		sum += p.weights[d]
	}
	if math.Abs(sum-1) > WeightSumEpsilon {
		return nil, &ConfigurationError{Field: "weights", Reason: fmt.Sprintf("weights sum to %s, want 1", fmtNum(sum))}
	}

	windows := spec.Windows
	if len(windows) == 0 {
		windows = def.Windows
	}
	seen := make(map[int]struct{}, len(windows))
	for _, n := range windows {
		if n <= 0 {
			return nil, &ConfigurationError{Field: "windows", Reason: fmt.Sprintf("window length %d must be positive", n)}
		}
		if _, dup := seen[n]; dup {
			continue
		}
		seen[n] = struct{}{}
		p.windows = append(p.windows, n)
	}
	sort.Ints(p.windows)

	p.flatEpsilon = *def.TrendFlatEpsilon
	if spec.TrendFlatEpsilon != nil {
		e := *spec.TrendFlatEpsilon
		if !finite(e) || e < 0 {
			return nil, &ConfigurationError{Field: "trend_flat_epsilon", Reason: "must be a finite value >= 0"}
		}
		p.flatEpsilon = e
	}
	return p, nil
}

// MustProfile is NewProfile that panics on error. Intended for tests and
// package-level defaults.
func MustProfile(spec ProfileSpec) *Profile {
	p, err := NewProfile(spec)
	if err != nil {
		panic(err)
	}
	return p
}

// DefaultProfile returns a Profile built from DefaultSpec.
func DefaultProfile() *Profile { return MustProfile(DefaultSpec()) }

func (p *Profile) Bounds(d Dimension) Bounds { return p.bounds[d] }

func (p *Profile) Weight(d Dimension) float64 { return p.weights[d] }

// Weights returns a copy of the weight set.
func (p *Profile) Weights() map[Dimension]float64 {
	out := make(map[Dimension]float64, len(p.weights))
	for k, v := range p.weights {
		out[k] = v
	}
	return out
}

// Windows returns the offered window lengths in ascending order.
func (p *Profile) Windows() []int {
	out := make([]int, len(p.windows))
	copy(out, p.windows)
	return out
}

// SupportsWindow reports whether n is one of the offered window lengths.
func (p *Profile) SupportsWindow(n int) bool {
	for _, w := range p.windows {
		if w == n {
			return true
		}
	}
	return false
}

func (p *Profile) ClampOutOfRange() bool { return p.clamp }

// FlatEpsilon is the absolute slope (points per day) below which a trend is
// reported as flat.
func (p *Profile) FlatEpsilon() float64 { return p.flatEpsilon }

// Spec renders the profile back into its serializable form.
func (p *Profile) Spec() ProfileSpec {
	eps := p.flatEpsilon
	s := ProfileSpec{
		Bounds:           make(map[string]Bounds, len(p.bounds)),
		Weights:          make(map[string]float64, len(p.weights)),
		Windows:          p.Windows(),
		ClampOutOfRange:  p.clamp,
		TrendFlatEpsilon: &eps,
	}
	for d, b := range p.bounds {
		s.Bounds[string(d)] = b
	}
	for d, w := range p.weights {
		s.Weights[string(d)] = w
	}
	return s
}

func finite(f float64) bool { return !math.IsNaN(f) && !math.IsInf(f, 0) }
