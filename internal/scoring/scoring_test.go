package scoring

import (
	"encoding/json"
	"errors"
	"math"
	"testing"
	"time"
)

var fixedAt = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func mustEntry(t *testing.T, raw RawEntry, p *Profile) Entry {
	t.Helper()
	e, err := Validate(raw, p)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	return e
}

// --- Profile ---

func TestNewProfile_Defaults(t *testing.T) {
	p := DefaultProfile()

	if got := p.Bounds(Sleep); got != (Bounds{Min: 0, Max: 24}) {
		t.Fatalf("sleep bounds = %+v", got)
	}
	if p.Weight(Focus) != 0.4 || p.Weight(Mood) != 0.2 {
		t.Fatalf("weights = %+v", p.Weights())
	}
	if w := p.Windows(); len(w) != 2 || w[0] != 7 || w[1] != 30 {
		t.Fatalf("windows = %v", w)
	}
	if p.ClampOutOfRange() {
		t.Fatalf("clamp should default to false")
	}
	if p.FlatEpsilon() != 0.1 {
		t.Fatalf("flat epsilon = %v", p.FlatEpsilon())
	}
	if !p.SupportsWindow(30) || p.SupportsWindow(14) {
		t.Fatalf("SupportsWindow mismatch")
	}
}

func TestNewProfile_ConfigurationErrors(t *testing.T) {
	neg := -0.5
	cases := []struct {
		name  string
		spec  ProfileSpec
		field string
	}{
		{"perturbed sum", ProfileSpec{Weights: map[string]float64{"mood": 0.25, "sleep": 0.25, "stress": 0.25, "focus": 0.24}}, "weights"},
		{"negative weight", ProfileSpec{Weights: map[string]float64{"mood": 1.5, "focus": -0.5}}, "weights.focus"},
		{"unknown weight", ProfileSpec{Weights: map[string]float64{"mood": 0.5, "energy": 0.5}}, "weights.energy"},
		{"NaN weight", ProfileSpec{Weights: map[string]float64{"mood": math.NaN()}}, "weights.mood"},
		{"inverted bounds", ProfileSpec{Bounds: map[string]Bounds{"mood": {Min: 10, Max: 0}}}, "bounds.mood"},
		{"equal bounds", ProfileSpec{Bounds: map[string]Bounds{"focus": {Min: 5, Max: 5}}}, "bounds.focus"},
		{"unknown bounds", ProfileSpec{Bounds: map[string]Bounds{"energy": {Min: 0, Max: 1}}}, "bounds.energy"},
		{"negative sleep", ProfileSpec{Bounds: map[string]Bounds{"sleep_hours": {Min: -1, Max: 12}}}, "bounds.sleep_hours"},
		{"zero window", ProfileSpec{Windows: []int{7, 0}}, "windows"},
		{"negative epsilon", ProfileSpec{TrendFlatEpsilon: &neg}, "trend_flat_epsilon"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewProfile(tc.spec)
			var ce *ConfigurationError
			if !errors.As(err, &ce) {
				t.Fatalf("want *ConfigurationError, got %v", err)
			}
			if ce.Field != tc.field {
				t.Fatalf("field = %q; want %q", ce.Field, tc.field)
			}
		})
	}
}

func TestNewProfile_ZeroWeightIsValid(t *testing.T) {
	p, err := NewProfile(ProfileSpec{Weights: map[string]float64{"focus": 1}})
	if err != nil {
		t.Fatalf("NewProfile: %v", err)
	}
	if p.Weight(Mood) != 0 {
		t.Fatalf("omitted dimension should weigh 0")
	}
	e := mustEntry(t, NewRawEntry("2025-01-01", 10, 24, 0, 5), p)
	if got := Score(e, p, fixedAt).Composite; got != 50 {
		t.Fatalf("composite = %v; want 50", got)
	}
}

func TestNewProfile_WindowsDedupedAndSorted(t *testing.T) {
	p := MustProfile(ProfileSpec{Windows: []int{30, 7, 14, 7}})
	w := p.Windows()
	if len(w) != 3 || w[0] != 7 || w[1] != 14 || w[2] != 30 {
		t.Fatalf("windows = %v", w)
	}
	w[0] = 99
	if p.Windows()[0] != 7 {
		t.Fatalf("Windows must return a copy")
	}
}

func TestProfile_SpecRoundTrip(t *testing.T) {
	p := DefaultProfile()
	q, err := NewProfile(p.Spec())
	if err != nil {
		t.Fatalf("NewProfile(Spec()): %v", err)
	}
	e := mustEntry(t, NewRawEntry("2025-01-01", 7, 8, 3, 6), p)
	if Score(e, p, fixedAt).Composite != Score(e, q, fixedAt).Composite {
		t.Fatalf("rebuilt profile scores differently")
	}
}

// --- Validator ---

func TestValidate_Errors(t *testing.T) {
	p := DefaultProfile()
	raw := func(mut func(r *RawEntry)) RawEntry {
		r := NewRawEntry("2025-01-02", 5, 7, 5, 5)
		mut(&r)
		return r
	}
	cases := []struct {
		name   string
		raw    RawEntry
		field  string
		reason string
	}{
		{"missing date", raw(func(r *RawEntry) { r.Date = " " }), "date", ReasonMissing},
		{"bad date", raw(func(r *RawEntry) { r.Date = "02/01/2025" }), "date", ReasonInvalidDate},
		{"missing mood", raw(func(r *RawEntry) { r.Mood = nil }), "mood", ReasonMissing},
		{"null sleep", raw(func(r *RawEntry) { r.SleepHours = json.RawMessage("null") }), "sleep_hours", ReasonMissing},
		{"text stress", raw(func(r *RawEntry) { r.Stress = json.RawMessage(`"high"`) }), "stress", ReasonNotANumber},
		{"bool focus", raw(func(r *RawEntry) { r.Focus = json.RawMessage("true") }), "focus", ReasonNotANumber},
		{"NaN string", raw(func(r *RawEntry) { r.Mood = json.RawMessage(`"NaN"`) }), "mood", ReasonNotANumber},
		{"mood above", raw(func(r *RawEntry) { r.Mood = json.RawMessage("10.5") }), "mood", ReasonOutOfRange},
		{"sleep negative", raw(func(r *RawEntry) { r.SleepHours = json.RawMessage("-1") }), "sleep_hours", ReasonOutOfRange},
		{"sleep above", raw(func(r *RawEntry) { r.SleepHours = json.RawMessage("25") }), "sleep_hours", ReasonOutOfRange},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Validate(tc.raw, p)
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("want *ValidationError, got %v", err)
			}
			if ve.Field != tc.field || ve.Reason != tc.reason {
				t.Fatalf("got field=%q reason=%q; want %q %q", ve.Field, ve.Reason, tc.field, tc.reason)
			}
			if ve.Error() == "" {
				t.Fatalf("empty error message")
			}
		})
	}
}

func TestValidate_OutOfRangeNamesBounds(t *testing.T) {
	r := NewRawEntry("2025-01-02", 11, 7, 5, 5)
	_, err := Validate(r, DefaultProfile())
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("want *ValidationError, got %v", err)
	}
	if ve.Min != 0 || ve.Max != 10 || ve.Value != "11" {
		t.Fatalf("unexpected error detail: %+v", ve)
	}
}

func TestValidate_FirstFailingFieldWins(t *testing.T) {
	r := NewRawEntry("2025-01-02", 11, 30, 5, 5)
	_, err := Validate(r, DefaultProfile())
	var ve *ValidationError
	if !errors.As(err, &ve) || ve.Field != "mood" {
		t.Fatalf("expected mood to be reported first, got %v", err)
	}
}

func TestValidate_NumericStringsAndDate(t *testing.T) {
	r := RawEntry{
		Date:       " 2025-02-28 ",
		Mood:       json.RawMessage(`"7.5"`),
		SleepHours: json.RawMessage(`8`),
		Stress:     json.RawMessage(` 2 `),
		Focus:      json.RawMessage(`"6"`),
	}
	e := mustEntry(t, r, DefaultProfile())
	if e.Mood != 7.5 || e.SleepHours != 8 || e.Stress != 2 || e.Focus != 6 {
		t.Fatalf("entry = %+v", e)
	}
	if e.Day() != "2025-02-28" || e.Date.Location() != time.UTC || e.Date.Hour() != 0 {
		t.Fatalf("date = %v", e.Date)
	}
}

func TestValidate_ClampWhenConfigured(t *testing.T) {
	p := MustProfile(ProfileSpec{ClampOutOfRange: true})
	e := mustEntry(t, NewRawEntry("2025-01-02", 12, -2, 5, 5), p)
	if e.Mood != 10 || e.SleepHours != 0 {
		t.Fatalf("expected clamped values, got %+v", e)
	}
	// non-numeric input is still rejected
	r := NewRawEntry("2025-01-02", 5, 5, 5, 5)
	r.Focus = json.RawMessage(`"x"`)
	if _, err := Validate(r, p); err == nil {
		t.Fatalf("clamping must not accept non-numeric input")
	}
}

// --- Engine ---

func TestScore_Bounds(t *testing.T) {
	p := DefaultProfile()

	worst := mustEntry(t, NewRawEntry("2025-01-01", 0, 0, 10, 0), p)
	if got := Score(worst, p, fixedAt).Composite; got != 0 {
		t.Fatalf("worst composite = %v; want 0", got)
	}
	best := mustEntry(t, NewRawEntry("2025-01-01", 10, 24, 0, 10), p)
	b := Score(best, p, fixedAt)
	if b.Composite != 100 {
		t.Fatalf("best composite = %v; want 100", b.Composite)
	}
	for d, v := range b.Components {
		if v != 1 {
			t.Fatalf("component %s = %v; want exactly 1", d, v)
		}
	}
	if Score(worst, p, fixedAt).Components[Stress] != 0 {
		t.Fatalf("stress at max must normalize to exactly 0 after inversion")
	}
}

func TestScore_KnownValue(t *testing.T) {
	p := DefaultProfile()
	e := mustEntry(t, NewRawEntry("2025-01-01", 7, 8, 3, 6), p)
	b := Score(e, p, fixedAt)
	// 0.2*0.7 + 0.2*(8/24) + 0.2*0.7 + 0.4*0.6 = 0.58666..
	if b.Composite != 58.7 {
		t.Fatalf("composite = %v; want 58.7", b.Composite)
	}
	if math.Abs(b.Components[Stress]-0.7) > 1e-12 {
		t.Fatalf("stress component = %v", b.Components[Stress])
	}
	if !b.ComputedAt.Equal(fixedAt) {
		t.Fatalf("computed_at = %v", b.ComputedAt)
	}
	if b.Weights[Focus] != 0.4 {
		t.Fatalf("weights not recorded: %+v", b.Weights)
	}
}

func TestScore_DeterministicAndInRange(t *testing.T) {
	p := DefaultProfile()
	for mood := 0.0; mood <= 10; mood += 2.5 {
		for sleep := 0.0; sleep <= 24; sleep += 3 {
			for stress := 0.0; stress <= 10; stress += 5 {
				e := mustEntry(t, NewRawEntry("2025-01-01", mood, sleep, stress, 10-mood), p)
				a := Score(e, p, fixedAt).Composite
				b := Score(e, p, fixedAt).Composite
				if a != b {
					t.Fatalf("non-deterministic: %v vs %v", a, b)
				}
				if a < 0 || a > 100 {
					t.Fatalf("composite out of range: %v", a)
				}
			}
		}
	}
}

func TestComposite_RoundHalfToEven(t *testing.T) {
	cases := []struct {
		raw  float64
		want float64
	}{
		{0.0625, 6.2},
		{0.1875, 18.8},
		{0, 0},
		{1, 100},
		{1.0000001, 100},
		{-0.0000001, 0},
	}
	for _, tc := range cases {
		if got := Composite(tc.raw); got != tc.want {
			t.Fatalf("Composite(%v) = %v; want %v", tc.raw, got, tc.want)
		}
	}
}

func TestEngine_EvaluateUsesClock(t *testing.T) {
	g := NewEngine(DefaultProfile(), func() time.Time { return fixedAt })
	_, b, err := g.Evaluate(NewRawEntry("2025-01-01", 5, 12, 5, 5))
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if !b.ComputedAt.Equal(fixedAt) || b.Composite != 50 {
		t.Fatalf("breakdown = %+v", b)
	}
	if _, _, err := g.Evaluate(NewRawEntry("2025-01-01", 50, 12, 5, 5)); err == nil {
		t.Fatalf("expected validation error")
	}
}

func TestParseDimension(t *testing.T) {
	if d, ok := ParseDimension(" Sleep "); !ok || d != Sleep {
		t.Fatalf("sleep alias not resolved")
	}
	if _, ok := ParseDimension("energy"); ok {
		t.Fatalf("unknown dimension accepted")
	}
	if len(Dimensions()) != 4 || !Stress.Inverse() || Mood.Inverse() {
		t.Fatalf("dimension metadata wrong")
	}
}
