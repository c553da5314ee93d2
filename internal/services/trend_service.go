package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"

	"github.com/tbourn/quantifyme-backend/internal/cache"
	"github.com/tbourn/quantifyme-backend/internal/domain"
	"github.com/tbourn/quantifyme-backend/internal/observability"
	"github.com/tbourn/quantifyme-backend/internal/repo"
	"github.com/tbourn/quantifyme-backend/internal/scoring"
	"github.com/tbourn/quantifyme-backend/internal/trend"
)

// TrendService computes windowed summaries over a user's stored entries.
// Windows are cached per (user, as_of, length) and concurrent misses for
// the same key share one computation.
type TrendService struct {
	DB      *gorm.DB
	Profile *scoring.Profile
	Cache   cache.TrendCache
	Now     func() time.Time

	agg   trend.Aggregator
	group singleflight.Group
}

// NewTrendService returns a TrendService for profile p.
func NewTrendService(db *gorm.DB, p *scoring.Profile, c cache.TrendCache) *TrendService {
	if c == nil {
		c = cache.Noop{}
	}
	return &TrendService{
		DB:      db,
		Profile: p,
		Cache:   c,
		Now:     func() time.Time { return time.Now().UTC() },
		agg:     trend.NewAggregator(p),
	}
}

var trendTracer = otel.Tracer("services/TrendService")

// computeTimeout bounds one shared window computation.
const computeTimeout = 10 * time.Second

// Window summarizes the length days ending at asOf (YYYY-MM-DD, empty for
// today). length must be one of the profile's windows.
func (s *TrendService) Window(ctx context.Context, userID string, length int, asOf string) (trend.Window, error) {
	ctx, span := trendTracer.Start(ctx, "Window",
		trace.WithAttributes(
			attribute.String("user.id", userID),
			attribute.Int("window.length", length),
			attribute.String("window.as_of", asOf),
		),
	)
	defer span.End()

	if !s.Profile.SupportsWindow(length) {
		return trend.Window{}, ErrUnsupportedWindow
	}
	day, err := s.asOf(asOf)
	if err != nil {
		return trend.Window{}, err
	}

	key := cache.Key{UserID: userID, AsOf: day.Format(scoring.DayLayout), Length: length}
	w, hit, err := s.Cache.Get(ctx, key)
	switch {
	case err != nil:
		observability.TrendCacheLookup("error")
		log.Warn().Err(err).Str("user_id", userID).Msg("trend cache read failed")
	case hit:
		observability.TrendCacheLookup("hit")
		span.SetAttributes(attribute.Bool("cache.hit", true))
		return w, nil
	default:
		observability.TrendCacheLookup("miss")
	}

	// A write after gen was read changes the flight key, so later callers
	// never join a computation that started before their write.
	gen, err := s.Cache.Generation(ctx, userID)
	cacheable := err == nil
	if err != nil {
		log.Warn().Err(err).Str("user_id", userID).Msg("trend cache generation read failed")
	}
	flight := fmt.Sprintf("%s@%d", key, gen)

	ch := s.group.DoChan(flight, func() (any, error) {
		// Runs detached from any single caller's cancellation.
		cctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), computeTimeout)
		defer cancel()
		w, err := s.compute(cctx, userID, length, day)
		if err != nil {
			return nil, err
		}
		if cacheable {
			if err := s.Cache.Set(cctx, key, w, gen); err != nil {
				log.Warn().Err(err).Str("user_id", userID).Msg("trend cache write failed")
			}
		}
		return w, nil
	})
	select {
	case <-ctx.Done():
		return trend.Window{}, ctx.Err()
	case res := <-ch:
		span.SetAttributes(attribute.Bool("flight.shared", res.Shared))
		if res.Err != nil {
			return trend.Window{}, res.Err
		}
		return res.Val.(trend.Window), nil
	}
}

// Summary returns one window per configured length, ascending.
func (s *TrendService) Summary(ctx context.Context, userID, asOf string) ([]trend.Window, error) {
	lengths := s.Profile.Windows()
	out := make([]trend.Window, 0, len(lengths))
	for _, n := range lengths {
		w, err := s.Window(ctx, userID, n, asOf)
		if err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, nil
}

func (s *TrendService) asOf(v string) (time.Time, error) {
	if v == "" {
		n := s.Now().UTC()
		return time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	d, err := scoring.ParseDay(v)
	if err != nil {
		return time.Time{}, &scoring.ValidationError{Field: "as_of", Value: v, Reason: scoring.ReasonInvalidDate}
	}
	return d, nil
}

func (s *TrendService) compute(ctx context.Context, userID string, length int, asOf time.Time) (trend.Window, error) {
	from := asOf.AddDate(0, 0, -(length - 1))
	rows, err := repo.ListRange(ctx, s.DB, userID, from.Format(scoring.DayLayout), asOf.Format(scoring.DayLayout), false)
	if err != nil {
		return trend.Window{}, err
	}
	samples := make([]trend.Sample, 0, len(rows))
	for i := range rows {
		smp, ok := sampleOf(&rows[i])
		if !ok {
			continue
		}
		samples = append(samples, smp)
	}
	return s.agg.Aggregate(samples, length, asOf)
}

func sampleOf(e *domain.Entry) (trend.Sample, bool) {
	d, err := scoring.ParseDay(e.Day)
	if err != nil {
		return trend.Sample{}, false
	}
	return trend.Sample{
		Date:      d,
		Composite: e.Composite,
		Values: map[scoring.Dimension]float64{
			scoring.Mood:   e.Mood,
			scoring.Sleep:  e.SleepHours,
			scoring.Stress: e.Stress,
			scoring.Focus:  e.Focus,
		},
	}, true
}
