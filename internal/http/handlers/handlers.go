package handlers

import (
	"context"

	"github.com/tbourn/quantifyme-backend/internal/domain"
	"github.com/tbourn/quantifyme-backend/internal/scoring"
	"github.com/tbourn/quantifyme-backend/internal/services"
	"github.com/tbourn/quantifyme-backend/internal/trend"
)

//
// Service contracts (context-aware)
//

// EntryService records, corrects, lists and deletes scored daily entries.
type EntryService interface {
	Submit(ctx context.Context, userID string, raw scoring.RawEntry) (*services.Scored, error)
	Correct(ctx context.Context, userID, day string, raw scoring.RawEntry) (*services.Scored, error)
	Get(ctx context.Context, userID, day string) (*domain.Entry, error)
	ByID(ctx context.Context, userID, id string) (*services.Scored, error)
	Versions(ctx context.Context, userID, day string) ([]domain.Entry, error)
	List(ctx context.Context, userID, from, to string, desc bool) (*services.History, error)
	Latest(ctx context.Context, userID string, n int) ([]domain.Entry, error)
	Delete(ctx context.Context, userID, day string) error
	Preview(raw scoring.RawEntry) (scoring.Entry, scoring.Breakdown, error)
	Stats(ctx context.Context, userID string) (int64, string, error)
}

// TrendService computes trend windows over stored entries.
type TrendService interface {
	Window(ctx context.Context, userID string, length int, asOf string) (trend.Window, error)
	Summary(ctx context.Context, userID, asOf string) ([]trend.Window, error)
}

// InterpretationService produces natural-language interpretations. Provider
// failures never surface as errors; they degrade to local advice.
type InterpretationService interface {
	Interpret(ctx context.Context, userID, day, acceptLanguage string, refresh bool) (*services.InterpretResult, error)
	InterpretEntry(ctx context.Context, e *domain.Entry, acceptLanguage string) *services.InterpretResult
}

// UserService manages accounts.
type UserService interface {
	GetOrCreate(ctx context.Context, email string) (*domain.User, bool, error)
	Get(ctx context.Context, id string) (*domain.User, error)
	SetPremium(ctx context.Context, id string, premium bool) (*domain.User, error)
}

// IdempotencyStore remembers the resource produced for an Idempotency-Key.
type IdempotencyStore interface {
	Lookup(ctx context.Context, userID, scope, key string) (*domain.Idempotency, error)
	Remember(ctx context.Context, userID, scope, key, resourceID string, status int) error
}

//
// Handler wiring
//

// Handlers groups the HTTP endpoints. Idem may be nil, which disables
// idempotent replay.
type Handlers struct {
	entries EntryService
	trends  TrendService
	interp  InterpretationService
	users   UserService
	idem    IdempotencyStore
	profile *scoring.Profile
}

// Deps lists the services Handlers depends on.
type Deps struct {
	Entries        EntryService
	Trends         TrendService
	Interpretation InterpretationService
	Users          UserService
	Idempotency    IdempotencyStore
	Profile        *scoring.Profile
}

// New constructs Handlers bound to the given services.
func New(d Deps) *Handlers {
	return &Handlers{
		entries: d.Entries,
		trends:  d.Trends,
		interp:  d.Interpretation,
		users:   d.Users,
		idem:    d.Idempotency,
		profile: d.Profile,
	}
}
