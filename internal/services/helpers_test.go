package services

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite" // pure-Go SQLite (no CGO)
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tbourn/quantifyme-backend/internal/cache"
	"github.com/tbourn/quantifyme-backend/internal/domain"
	"github.com/tbourn/quantifyme-backend/internal/gateway"
	"github.com/tbourn/quantifyme-backend/internal/scoring"
	"github.com/tbourn/quantifyme-backend/internal/trend"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	if err := db.AutoMigrate(&domain.User{}, &domain.Entry{}, &domain.Interpretation{}, &domain.Idempotency{}); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

var fixedNow = time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)

func newEngine() *scoring.Engine {
	return scoring.NewEngine(scoring.DefaultProfile(), func() time.Time { return fixedNow })
}

func raw(day string, mood, sleep, stress, focus float64) scoring.RawEntry {
	return scoring.NewRawEntry(day, mood, sleep, stress, focus)
}

// spyCache wraps a real cache and counts invalidations.
type spyCache struct {
	cache.TrendCache
	mu          sync.Mutex
	invalidated []string
}

func (s *spyCache) InvalidateUser(ctx context.Context, userID string) error {
	s.mu.Lock()
	s.invalidated = append(s.invalidated, userID)
	s.mu.Unlock()
	return s.TrendCache.InvalidateUser(ctx, userID)
}

func (s *spyCache) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.invalidated)
}

// countingCache counts Set calls to observe recomputation.
type countingCache struct {
	cache.TrendCache
	mu   sync.Mutex
	sets int
}

func (c *countingCache) Set(ctx context.Context, k cache.Key, w trend.Window, gen uint64) error {
	c.mu.Lock()
	c.sets++
	c.mu.Unlock()
	return c.TrendCache.Set(ctx, k, w, gen)
}

func (c *countingCache) setCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sets
}

// hookCache runs beforeSet ahead of every Set and afterGen after every
// Generation read.
type hookCache struct {
	cache.TrendCache
	beforeSet func()
	afterGen  func()
}

func (h *hookCache) Generation(ctx context.Context, userID string) (uint64, error) {
	g, err := h.TrendCache.Generation(ctx, userID)
	if h.afterGen != nil {
		h.afterGen()
	}
	return g, err
}

func (h *hookCache) Set(ctx context.Context, k cache.Key, w trend.Window, gen uint64) error {
	if h.beforeSet != nil {
		h.beforeSet()
	}
	return h.TrendCache.Set(ctx, k, w, gen)
}

// fakeInterpreter replays scripted errors before succeeding.
type fakeInterpreter struct {
	name  string
	errs  []error
	text  string
	mu    sync.Mutex
	calls int
	last  gateway.Request
}

func (f *fakeInterpreter) Name() string { return f.name }

func (f *fakeInterpreter) Interpret(ctx context.Context, req gateway.Request) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.last = req
	if len(f.errs) > 0 {
		err := f.errs[0]
		f.errs = f.errs[1:]
		return "", err
	}
	return f.text, nil
}

// blockingInterpreter waits for cancellation.
type blockingInterpreter struct{}

func (blockingInterpreter) Name() string { return "blocking" }

func (blockingInterpreter) Interpret(ctx context.Context, _ gateway.Request) (string, error) {
	<-ctx.Done()
	return "", ctx.Err()
}

// hangingInterpreter blocks until cancellation and reports it as a
// retryable provider failure, like a timed-out upstream.
type hangingInterpreter struct{ calls atomic.Int32 }

func (*hangingInterpreter) Name() string { return "hanging" }

func (h *hangingInterpreter) Interpret(ctx context.Context, _ gateway.Request) (string, error) {
	h.calls.Add(1)
	<-ctx.Done()
	return "", &gateway.GatewayError{Provider: "hanging", Err: ctx.Err(), Retryable: true}
}
