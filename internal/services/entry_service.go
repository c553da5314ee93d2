package services

import (
	"context"
	"errors"
	"math"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/tbourn/quantifyme-backend/internal/cache"
	"github.com/tbourn/quantifyme-backend/internal/domain"
	"github.com/tbourn/quantifyme-backend/internal/observability"
	"github.com/tbourn/quantifyme-backend/internal/repo"
	"github.com/tbourn/quantifyme-backend/internal/scoring"
)

// Scored pairs a stored entry version with its breakdown.
type Scored struct {
	Entry     *domain.Entry     `json:"entry"`
	Breakdown scoring.Breakdown `json:"breakdown"`
}

// KPIs summarize the composites of a listed range. Mean and Max are nil
// for an empty range.
type KPIs struct {
	Count int      `json:"count"`
	Mean  *float64 `json:"mean"`
	Max   *float64 `json:"max"`
}

// History is one listed range of current entry versions.
type History struct {
	Entries []domain.Entry `json:"entries"`
	KPIs    KPIs           `json:"kpis"`
}

// EntryService validates, scores and persists daily entries. Every write
// invalidates the user's cached trend windows.
type EntryService struct {
	DB     *gorm.DB
	Engine *scoring.Engine
	Cache  cache.TrendCache
}

// NewEntryService returns an EntryService; a nil cache disables caching.
func NewEntryService(db *gorm.DB, engine *scoring.Engine, c cache.TrendCache) *EntryService {
	if c == nil {
		c = cache.Noop{}
	}
	return &EntryService{DB: db, Engine: engine, Cache: c}
}

var entryTracer = otel.Tracer("services/EntryService")

// Submit records version 1 of a new day. It returns a
// *scoring.ValidationError for bad input and ErrDuplicateEntry when the
// day already exists.
func (s *EntryService) Submit(ctx context.Context, userID string, raw scoring.RawEntry) (*Scored, error) {
	ctx, span := entryTracer.Start(ctx, "Submit",
		trace.WithAttributes(attribute.String("user.id", userID), attribute.String("entry.day", raw.Date)),
	)
	defer span.End()

	e, b, err := s.evaluate(raw)
	if err != nil {
		return nil, err
	}
	row := toModel(userID, e, b)
	if err := repo.CreateEntry(ctx, s.DB, row); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, ErrDuplicateEntry
		}
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	s.written(ctx, userID, "create", row)
	return &Scored{Entry: row, Breakdown: b}, nil
}

// Correct appends a new version for an existing day. The path day wins
// over any date in raw.
func (s *EntryService) Correct(ctx context.Context, userID, day string, raw scoring.RawEntry) (*Scored, error) {
	ctx, span := entryTracer.Start(ctx, "Correct",
		trace.WithAttributes(attribute.String("user.id", userID), attribute.String("entry.day", day)),
	)
	defer span.End()

	raw.Date = day
	e, b, err := s.evaluate(raw)
	if err != nil {
		return nil, err
	}
	row := toModel(userID, e, b)
	if err := repo.AppendVersion(ctx, s.DB, row); err != nil {
		switch {
		case errors.Is(err, repo.ErrNotFound):
			return nil, ErrEntryNotFound
		case errors.Is(err, repo.ErrDuplicate):
			return nil, ErrDuplicateEntry
		}
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(attribute.Int("entry.version", row.Version))
	s.written(ctx, userID, "correct", row)
	return &Scored{Entry: row, Breakdown: b}, nil
}

// Get returns the current version of a day.
func (s *EntryService) Get(ctx context.Context, userID, day string) (*domain.Entry, error) {
	if err := checkDay(day); err != nil {
		return nil, err
	}
	e, err := repo.GetCurrentEntry(ctx, s.DB, userID, day)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrEntryNotFound
	}
	return e, err
}

// ByID returns a specific stored version, used to replay idempotent writes.
func (s *EntryService) ByID(ctx context.Context, userID, id string) (*Scored, error) {
	e, err := repo.GetEntryByID(ctx, s.DB, userID, id)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrEntryNotFound
	}
	if err != nil {
		return nil, err
	}
	return &Scored{Entry: e, Breakdown: BreakdownOf(e)}, nil
}

// Versions returns every version of a day, oldest first.
func (s *EntryService) Versions(ctx context.Context, userID, day string) ([]domain.Entry, error) {
	if err := checkDay(day); err != nil {
		return nil, err
	}
	out, err := repo.ListVersions(ctx, s.DB, userID, day)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrEntryNotFound
	}
	return out, err
}

// List returns the current version of each day in [from, to] with KPIs.
// Either bound may be empty.
func (s *EntryService) List(ctx context.Context, userID, from, to string, desc bool) (*History, error) {
	ctx, span := entryTracer.Start(ctx, "List",
		trace.WithAttributes(
			attribute.String("user.id", userID),
			attribute.String("range.from", from),
			attribute.String("range.to", to),
		),
	)
	defer span.End()

	for _, d := range []struct{ field, v string }{{"from", from}, {"to", to}} {
		if d.v == "" {
			continue
		}
		if _, err := scoring.ParseDay(d.v); err != nil {
			return nil, &scoring.ValidationError{Field: d.field, Value: d.v, Reason: scoring.ReasonInvalidDate}
		}
	}
	if from != "" && to != "" && from > to {
		return nil, ErrInvalidRange
	}

	rows, err := repo.ListRange(ctx, s.DB, userID, from, to, desc)
	if err != nil {
		return nil, err
	}
	return &History{Entries: rows, KPIs: kpisOf(rows)}, nil
}

// Latest returns the n most recent days, newest first.
func (s *EntryService) Latest(ctx context.Context, userID string, n int) ([]domain.Entry, error) {
	if n <= 0 {
		n = 7
	}
	return repo.ListLatest(ctx, s.DB, userID, n)
}

// Delete removes every version of a day along with its interpretations.
func (s *EntryService) Delete(ctx context.Context, userID, day string) error {
	ctx, span := entryTracer.Start(ctx, "Delete",
		trace.WithAttributes(attribute.String("user.id", userID), attribute.String("entry.day", day)),
	)
	defer span.End()

	if err := checkDay(day); err != nil {
		return err
	}
	if _, err := repo.DeleteDay(ctx, s.DB, userID, day); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrEntryNotFound
		}
		return err
	}
	s.invalidate(ctx, userID)
	return nil
}

// Preview validates and scores raw without persisting anything.
func (s *EntryService) Preview(raw scoring.RawEntry) (scoring.Entry, scoring.Breakdown, error) {
	return s.evaluate(raw)
}

// Stats returns the entry row count and newest write time, used for
// conditional GETs.
func (s *EntryService) Stats(ctx context.Context, userID string) (int64, string, error) {
	n, last, err := repo.EntriesStats(ctx, s.DB, userID)
	if err != nil || last == nil {
		return n, "", err
	}
	return n, last.UTC().Format("20060102T150405.000000000"), nil
}

func (s *EntryService) evaluate(raw scoring.RawEntry) (scoring.Entry, scoring.Breakdown, error) {
	e, b, err := s.Engine.Evaluate(raw)
	if err != nil {
		var ve *scoring.ValidationError
		if errors.As(err, &ve) {
			observability.ValidationFailed(ve.Field, ve.Reason)
		}
		return scoring.Entry{}, scoring.Breakdown{}, err
	}
	return e, b, nil
}

func (s *EntryService) written(ctx context.Context, userID, kind string, row *domain.Entry) {
	observability.EntryStored(kind, row.Composite)
	s.invalidate(ctx, userID)
}

func (s *EntryService) invalidate(ctx context.Context, userID string) {
	if err := s.Cache.InvalidateUser(ctx, userID); err != nil {
		log.Warn().Err(err).Str("user_id", userID).Msg("trend cache invalidation failed")
	}
}

func checkDay(day string) error {
	if _, err := scoring.ParseDay(day); err != nil {
		return &scoring.ValidationError{Field: "date", Value: day, Reason: scoring.ReasonInvalidDate}
	}
	return nil
}

func toModel(userID string, e scoring.Entry, b scoring.Breakdown) *domain.Entry {
	weights := make(map[string]float64, len(b.Weights))
	for d, w := range b.Weights {
		weights[string(d)] = w
	}
	return &domain.Entry{
		UserID:      userID,
		Day:         e.Day(),
		Mood:        e.Mood,
		SleepHours:  e.SleepHours,
		Stress:      e.Stress,
		Focus:       e.Focus,
		MoodScore:   b.Components[scoring.Mood],
		SleepScore:  b.Components[scoring.Sleep],
		StressScore: b.Components[scoring.Stress],
		FocusScore:  b.Components[scoring.Focus],
		Composite:   b.Composite,
		Weights:     datatypes.NewJSONType(weights),
		ScoredAt:    b.ComputedAt,
	}
}

// BreakdownOf rebuilds the breakdown stored with an entry version.
func BreakdownOf(e *domain.Entry) scoring.Breakdown {
	weights := make(map[scoring.Dimension]float64, 4)
	for k, w := range e.Weights.Data() {
		if d, ok := scoring.ParseDimension(k); ok {
			weights[d] = w
		}
	}
	return scoring.Breakdown{
		Components: map[scoring.Dimension]float64{
			scoring.Mood:   e.MoodScore,
			scoring.Sleep:  e.SleepScore,
			scoring.Stress: e.StressScore,
			scoring.Focus:  e.FocusScore,
		},
		Weights:    weights,
		Composite:  e.Composite,
		ComputedAt: e.ScoredAt,
	}
}

func kpisOf(rows []domain.Entry) KPIs {
	k := KPIs{Count: len(rows)}
	if len(rows) == 0 {
		return k
	}
	var sum float64
	top := rows[0].Composite
	for _, r := range rows {
		sum += r.Composite
		if r.Composite > top {
			top = r.Composite
		}
	}
	mean := math.RoundToEven(sum/float64(len(rows))*10) / 10
	k.Mean, k.Max = &mean, &top
	return k
}
