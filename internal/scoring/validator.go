package scoring

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// DayLayout is the calendar-day format used for entry dates.
const DayLayout = "2006-01-02"

// RawEntry is one day's unvalidated input exactly as submitted. Numeric
// fields are kept raw so that missing, null and non-numeric values can be
// told apart. JSON numbers and numeric strings are both accepted.
type RawEntry struct {
	Date       string          `json:"date"`
	Mood       json.RawMessage `json:"mood" swaggertype:"number"`
	SleepHours json.RawMessage `json:"sleep_hours" swaggertype:"number"`
	Stress     json.RawMessage `json:"stress" swaggertype:"number"`
	Focus      json.RawMessage `json:"focus" swaggertype:"number"`
}

// NewRawEntry builds a RawEntry from already-typed values.
func NewRawEntry(date string, mood, sleepHours, stress, focus float64) RawEntry {
	num := func(f float64) json.RawMessage {
		return json.RawMessage(strconv.FormatFloat(f, 'f', -1, 64))
	}
	return RawEntry{
		Date:       date,
		Mood:       num(mood),
		SleepHours: num(sleepHours),
		Stress:     num(stress),
		Focus:      num(focus),
	}
}

func (r RawEntry) field(d Dimension) json.RawMessage {
	switch d {
	case Mood:
		return r.Mood
	case Sleep:
		return r.SleepHours
	case Stress:
		return r.Stress
	case Focus:
		return r.Focus
	}
	return nil
}

// Entry is one validated day. Date is midnight UTC.
type Entry struct {
	Date       time.Time
	Mood       float64
	SleepHours float64
	Stress     float64
	Focus      float64
}

// Day formats the entry date as YYYY-MM-DD.
func (e Entry) Day() string { return e.Date.Format(DayLayout) }

// Value returns the raw value recorded for d.
func (e Entry) Value(d Dimension) float64 {
	switch d {
	case Mood:
		return e.Mood
	case Sleep:
		return e.SleepHours
	case Stress:
		return e.Stress
	case Focus:
		return e.Focus
	}
	return 0
}

func (e *Entry) set(d Dimension, v float64) {
	switch d {
	case Mood:
		e.Mood = v
	case Sleep:
		e.SleepHours = v
	case Stress:
		e.Stress = v
	case Focus:
		e.Focus = v
	}
}

// ParseDay parses a YYYY-MM-DD string into midnight UTC.
func ParseDay(s string) (time.Time, error) {
	return time.ParseInLocation(DayLayout, strings.TrimSpace(s), time.UTC)
}

// Validate checks raw against the profile's bounds and returns a validated
// Entry. Fields are checked in the order date, mood, sleep_hours, stress,
// focus and the first failure is returned as a *ValidationError. When the
// profile clamps, out-of-range numbers are pulled onto the nearest bound
// instead of being rejected.
func Validate(raw RawEntry, p *Profile) (Entry, error) {
	var e Entry

	ds := strings.TrimSpace(raw.Date)
	if ds == "" {
		return Entry{}, &ValidationError{Field: "date", Reason: ReasonMissing}
	}
	day, err := ParseDay(ds)
	if err != nil {
		return Entry{}, &ValidationError{Field: "date", Value: ds, Reason: ReasonInvalidDate}
	}
	e.Date = day

	for _, d := range dimensions {
		v, text, reason := parseNumber(raw.field(d))
		if reason != "" {
			return Entry{}, &ValidationError{Field: string(d), Value: text, Reason: reason}
		}
		b := p.Bounds(d)
		if v < b.Min || v > b.Max {
			if !p.ClampOutOfRange() {
				return Entry{}, &ValidationError{Field: string(d), Value: text, Min: b.Min, Max: b.Max, Reason: ReasonOutOfRange}
			}
			if v < b.Min {
				v = b.Min
			} else {
				v = b.Max
			}
		}
		e.set(d, v)
	}
	return e, nil
}

// parseNumber decodes one raw numeric field. It returns the parsed value,
// the trimmed source text, and a failure reason ("" on success).
func parseNumber(raw json.RawMessage) (float64, string, string) {
	b := bytes.TrimSpace(raw)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return 0, "", ReasonMissing
	}
	text := string(b)
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return 0, text, ReasonNotANumber
		}
		text = strings.TrimSpace(s)
		if text == "" {
			return 0, "", ReasonMissing
		}
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil || !finite(v) {
		return 0, text, ReasonNotANumber
	}
	return v, text, ""
}
