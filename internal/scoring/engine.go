package scoring

import (
	"math"
	"time"
)

// Breakdown is the result of scoring one Entry: each dimension normalized
// to [0,1] (inverse dimensions already flipped), the weights applied, and
// the composite on the public 0..100 scale.
type Breakdown struct {
	Components map[Dimension]float64 `json:"components"`
	Weights    map[Dimension]float64 `json:"weights"`
	Composite  float64               `json:"composite"`
	ComputedAt time.Time             `json:"computed_at"`
}

// Score computes the breakdown for e under p. Components, weights and
// composite depend only on (e, p); at is recorded as the computation time.
func Score(e Entry, p *Profile, at time.Time) Breakdown {
	out := Breakdown{
		Components: make(map[Dimension]float64, len(dimensions)),
		Weights:    p.Weights(),
		ComputedAt: at,
	}
	var raw float64
	for _, d := range dimensions {
		n := Normalize(e.Value(d), p.Bounds(d), d.Inverse())
		out.Components[d] = n
		raw += p.Weight(d) * n
	}
	out.Composite = Composite(raw)
	return out
}

// Normalize maps v onto [0,1] using b. A value on a bound maps to exactly
// 0 or 1; inverse dimensions are flipped so that higher is always better.
func Normalize(v float64, b Bounds, inverse bool) float64 {
	var n float64
	switch {
	case v <= b.Min:
		n = 0
	case v >= b.Max:
		n = 1
	default:
		n = (v - b.Min) / (b.Max - b.Min)
	}
	if inverse {
		return 1 - n
	}
	return n
}

// Composite scales a weighted sum in [0,1] to [0,100], rounded to one
// decimal with round-half-to-even.
func Composite(raw float64) float64 {
	c := math.RoundToEven(raw*1000) / 10
	switch {
	case c < 0:
		return 0
	case c > 100:
		return 100
	}
	return c
}

// Engine binds a Profile and a clock. It is safe for concurrent use.
type Engine struct {
	profile *Profile
	now     func() time.Time
}

// NewEngine returns an Engine for p. A nil clock defaults to time.Now in UTC.
func NewEngine(p *Profile, now func() time.Time) *Engine {
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	return &Engine{profile: p, now: now}
}

func (g *Engine) Profile() *Profile { return g.profile }

// Validate checks raw against the engine's profile.
func (g *Engine) Validate(raw RawEntry) (Entry, error) { return Validate(raw, g.profile) }

// Score scores a validated entry.
func (g *Engine) Score(e Entry) Breakdown { return Score(e, g.profile, g.now()) }

// Evaluate validates raw and scores it in one step.
func (g *Engine) Evaluate(raw RawEntry) (Entry, Breakdown, error) {
	e, err := g.Validate(raw)
	if err != nil {
		return Entry{}, Breakdown{}, err
	}
	return e, g.Score(e), nil
}
