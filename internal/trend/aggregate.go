// Package trend aggregates historical daily scores into windowed summaries.
//
// Aggregation is a pure function over an immutable snapshot of samples:
// missing days are reported as sparsity and never filled in, and every
// statistic that cannot be computed from the data present is left nil
// rather than zero.
package trend

import (
	"errors"
	"math"
	"sort"
	"time"

	"github.com/tbourn/quantifyme-backend/internal/scoring"
)

// Directions reported for a window.
const (
	DirectionUp        = "up"
	DirectionDown      = "down"
	DirectionFlat      = "flat"
	DirectionUndefined = "undefined"
)

// ErrInvalidLength is returned for a window length <= 0.
var ErrInvalidLength = errors.New("window length must be positive")

// Sample is one persisted, scored day.
type Sample struct {
	Date      time.Time
	Composite float64
	Values    map[scoring.Dimension]float64
}

// Window summarizes the days in [From, AsOf]. Pointer fields are nil when
// undefined for the data present.
type Window struct {
	Length         int                            `json:"length"`
	From           string                         `json:"from"`
	AsOf           string                         `json:"as_of"`
	ExpectedCount  int                            `json:"expected_count"`
	ActualCount    int                            `json:"actual_count"`
	Sparsity       float64                        `json:"sparsity"`
	Mean           *float64                       `json:"mean"`
	DimensionMeans map[scoring.Dimension]*float64 `json:"dimension_means"`
	Slope          *float64                       `json:"slope"`
	Direction      string                         `json:"direction"`
	Volatility     *float64                       `json:"volatility"`
}

// Aggregator carries the flat-trend threshold used to label slopes.
type Aggregator struct {
	FlatEpsilon float64
}

// NewAggregator returns an Aggregator using the profile's threshold.
func NewAggregator(p *scoring.Profile) Aggregator {
	return Aggregator{FlatEpsilon: p.FlatEpsilon()}
}

// Aggregate summarizes samples whose date falls within
// [asOf-length+1, asOf]. Samples may arrive in any order; a day appearing
// more than once keeps its last occurrence.
//
// Mean and per-dimension means are defined for n >= 1. Volatility is the
// population standard deviation of composites and slope is the ordinary
// least squares fit of composite against day offset; both need n >= 2.
func (a Aggregator) Aggregate(samples []Sample, length int, asOf time.Time) (Window, error) {
	if length <= 0 {
		return Window{}, ErrInvalidLength
	}
	end := truncateDay(asOf)
	start := end.AddDate(0, 0, -(length - 1))

	w := Window{
		Length:         length,
		From:           start.Format(scoring.DayLayout),
		AsOf:           end.Format(scoring.DayLayout),
		ExpectedCount:  length,
		DimensionMeans: make(map[scoring.Dimension]*float64, 4),
		Direction:      DirectionUndefined,
	}
	for _, d := range scoring.Dimensions() {
		w.DimensionMeans[d] = nil
	}

	byDay := make(map[int]Sample, length)
	for _, s := range samples {
		day := truncateDay(s.Date)
		if day.Before(start) || day.After(end) {
			continue
		}
		byDay[dayOffset(start, day)] = s
	}
	offsets := make([]int, 0, len(byDay))
	for off := range byDay {
		offsets = append(offsets, off)
	}
	sort.Ints(offsets)

	n := len(offsets)
	w.ActualCount = n
	w.Sparsity = float64(length-n) / float64(length)
	if n == 0 {
		return w, nil
	}

	xs := make([]float64, n)
	ys := make([]float64, n)
	for i, off := range offsets {
		xs[i] = float64(off)
		ys[i] = byDay[off].Composite
	}

	mean := meanOf(ys)
	w.Mean = &mean

	for _, d := range scoring.Dimensions() {
		var sum float64
		var cnt int
		for _, off := range offsets {
			if v, ok := byDay[off].Values[d]; ok {
				sum += v
				cnt++
			}
		}
		if cnt > 0 {
			m := sum / float64(cnt)
			w.DimensionMeans[d] = &m
		}
	}

	if n < 2 {
		return w, nil
	}

	var ss float64
	for _, y := range ys {
		ss += (y - mean) * (y - mean)
	}
	vol := math.Sqrt(ss / float64(n))
	w.Volatility = &vol

	xm := meanOf(xs)
	var sxy, sxx float64
	for i := range xs {
		dx := xs[i] - xm
		sxy += dx * (ys[i] - mean)
		sxx += dx * dx
	}
	slope := sxy / sxx
	w.Slope = &slope
	w.Direction = a.direction(slope)
	return w, nil
}

// Aggregate is Aggregator.Aggregate with a zero flat threshold.
func Aggregate(samples []Sample, length int, asOf time.Time) (Window, error) {
	return Aggregator{}.Aggregate(samples, length, asOf)
}

func (a Aggregator) direction(slope float64) string {
	switch {
	case math.Abs(slope) <= a.FlatEpsilon:
		return DirectionFlat
	case slope > 0:
		return DirectionUp
	default:
		return DirectionDown
	}
}

func meanOf(vs []float64) float64 {
	var s float64
	for _, v := range vs {
		s += v
	}
	return s / float64(len(vs))
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func dayOffset(start, day time.Time) int {
	return int(day.Sub(start).Hours() / 24)
}
