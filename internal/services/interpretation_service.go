package services

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/tbourn/quantifyme-backend/internal/domain"
	"github.com/tbourn/quantifyme-backend/internal/gateway"
	"github.com/tbourn/quantifyme-backend/internal/observability"
	"github.com/tbourn/quantifyme-backend/internal/repo"
	"github.com/tbourn/quantifyme-backend/internal/scoring"
)

// Interpretation outcomes.
const (
	StatusOK          = "ok"
	StatusCached      = "cached"
	StatusUnavailable = "unavailable"
)

// InterpretResult is returned for every interpretation request. When the
// provider fails, Status is "unavailable" and Text holds locally generated
// advice; the stored entry is never affected.
type InterpretResult struct {
	Status   string `json:"status"`
	Text     string `json:"text"`
	Provider string `json:"provider"`
	Locale   string `json:"locale"`
	Day      string `json:"day"`
	Version  int    `json:"version"`
}

// InterpretationService calls the interpretation gateway for stored
// entries. Each attempt is bounded by Timeout and retryable failures are
// retried up to MaxRetries more times. Budget, when set, caps the whole
// call including backoff waits, so a response is always written before
// the server's write deadline.
type InterpretationService struct {
	DB            *gorm.DB
	Live          gateway.Interpreter
	Timeout       time.Duration
	Budget        time.Duration
	MaxRetries    int
	DefaultLocale string
	PremiumOnly   bool

	// NewBackOff builds the delay policy for one call.
	NewBackOff func() backoff.BackOff
}

// NewInterpretationService returns a service calling live.
func NewInterpretationService(db *gorm.DB, live gateway.Interpreter, timeout time.Duration, maxRetries int) *InterpretationService {
	if live == nil {
		live = gateway.Stub{}
	}
	return &InterpretationService{
		DB:            db,
		Live:          live,
		Timeout:       timeout,
		MaxRetries:    maxRetries,
		DefaultLocale: gateway.LocaleEN,
		NewBackOff: func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			b.InitialInterval = 250 * time.Millisecond
			b.MaxInterval = 2 * time.Second
			return b
		},
	}
}

var interpTracer = otel.Tracer("services/InterpretationService")

// Interpret returns an interpretation of the current version of day.
// acceptLanguage selects en or fr, falling back to DefaultLocale. A stored
// interpretation of the same version and locale is reused unless refresh
// is set.
func (s *InterpretationService) Interpret(ctx context.Context, userID, day, acceptLanguage string, refresh bool) (*InterpretResult, error) {
	ctx, span := interpTracer.Start(ctx, "Interpret",
		trace.WithAttributes(attribute.String("user.id", userID), attribute.String("entry.day", day)),
	)
	defer span.End()

	if err := checkDay(day); err != nil {
		return nil, err
	}
	e, err := repo.GetCurrentEntry(ctx, s.DB, userID, day)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrEntryNotFound
		}
		return nil, err
	}
	locale := gateway.MatchLocale(acceptLanguage, s.DefaultLocale)

	if !refresh {
		prev, err := repo.LatestInterpretation(ctx, s.DB, e.ID, locale)
		if err == nil {
			span.SetAttributes(attribute.Bool("interpretation.cached", true))
			return &InterpretResult{Status: StatusCached, Text: prev.Text, Provider: prev.Provider, Locale: locale, Day: e.Day, Version: e.Version}, nil
		}
		if !errors.Is(err, repo.ErrNotFound) {
			return nil, err
		}
	}
	return s.interpretEntry(ctx, e, locale), nil
}

// InterpretEntry interprets a freshly stored entry version in the default
// locale (or acceptLanguage when given). It never fails: provider errors
// degrade to local advice.
func (s *InterpretationService) InterpretEntry(ctx context.Context, e *domain.Entry, acceptLanguage string) *InterpretResult {
	return s.interpretEntry(ctx, e, gateway.MatchLocale(acceptLanguage, s.DefaultLocale))
}

func (s *InterpretationService) interpretEntry(ctx context.Context, e *domain.Entry, locale string) *InterpretResult {
	req := requestOf(e, locale)
	in := s.interpreterFor(ctx, e.UserID)
	res := &InterpretResult{Status: StatusOK, Provider: in.Name(), Locale: locale, Day: e.Day, Version: e.Version}

	start := time.Now()
	text, err := s.call(ctx, in, req)
	if err != nil {
		observability.GatewayCall(in.Name(), "fallback", time.Since(start))
		log.Warn().Err(err).
			Str("provider", in.Name()).
			Str("user_id", e.UserID).
			Str("entry_id", e.ID).
			Msg("interpretation unavailable; serving local advice")
		res.Status = StatusUnavailable
		res.Text = gateway.LocalAdvice(req)
		return res
	}
	observability.GatewayCall(in.Name(), "ok", time.Since(start))
	res.Text = text

	// Persisting is best-effort; the caller still gets the text.
	if err := repo.CreateInterpretation(ctx, s.DB, &domain.Interpretation{
		EntryID:  e.ID,
		UserID:   e.UserID,
		Day:      e.Day,
		Provider: in.Name(),
		Locale:   locale,
		Text:     text,
	}); err != nil {
		log.Warn().Err(err).Str("entry_id", e.ID).Msg("store interpretation failed")
	}
	return res
}

// interpreterFor applies premium gating: with PremiumOnly set, users that
// are unknown or not premium are served by the stub.
func (s *InterpretationService) interpreterFor(ctx context.Context, userID string) gateway.Interpreter {
	if !s.PremiumOnly || s.Live.Name() == gateway.ProviderStub {
		return s.Live
	}
	u, err := repo.GetUser(ctx, s.DB, userID)
	if err != nil || !u.IsPremium {
		return gateway.Stub{}
	}
	return s.Live
}

func (s *InterpretationService) call(ctx context.Context, in gateway.Interpreter, req gateway.Request) (string, error) {
	opts := []backoff.RetryOption{}
	if s.Budget > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.Budget)
		defer cancel()
		opts = append(opts, backoff.WithMaxElapsedTime(s.Budget))
	}

	op := func() (string, error) {
		actx := ctx
		if s.Timeout > 0 {
			var cancel context.CancelFunc
			actx, cancel = context.WithTimeout(ctx, s.Timeout)
			defer cancel()
		}
		text, err := in.Interpret(actx, req)
		if err != nil && !gateway.IsRetryable(err) {
			return "", backoff.Permanent(err)
		}
		return text, err
	}

	var b backoff.BackOff = &backoff.ZeroBackOff{}
	if s.NewBackOff != nil {
		b = s.NewBackOff()
	}
	tries := s.MaxRetries + 1
	if tries < 1 {
		tries = 1
	}
	opts = append(opts, backoff.WithBackOff(b), backoff.WithMaxTries(uint(tries)))
	return backoff.Retry(ctx, op, opts...)
}

func requestOf(e *domain.Entry, locale string) gateway.Request {
	b := BreakdownOf(e)
	return gateway.Request{
		Day:        e.Day,
		Composite:  e.Composite,
		Components: b.Components,
		Inputs: map[scoring.Dimension]float64{
			scoring.Mood:   e.Mood,
			scoring.Sleep:  e.SleepHours,
			scoring.Stress: e.Stress,
			scoring.Focus:  e.Focus,
		},
		Locale: locale,
	}
}
