// Package cache stores derived trend windows keyed by
// (user, as_of_date, window_length). Windows are never authoritative: any
// write to a user's entries invalidates every cached window for that user.
//
// Each invalidation also bumps a per-user generation. A reader captures the
// generation before computing a window and passes it to Set; the window is
// dropped if the user was invalidated in between, so a computation that
// raced a write never lands in the cache.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/tbourn/quantifyme-backend/internal/config"
	"github.com/tbourn/quantifyme-backend/internal/trend"
)

// Key identifies one cached window.
type Key struct {
	UserID string
	AsOf   string // YYYY-MM-DD
	Length int
}

func (k Key) String() string {
	return fmt.Sprintf("%s%s:%d", userPrefix(k.UserID), k.AsOf, k.Length)
}

func userPrefix(userID string) string { return "trend:" + userID + ":" }

func genKey(userID string) string { return "trendgen:" + userID }

// TrendCache is implemented by Noop, Memory and Redis.
type TrendCache interface {
	Get(ctx context.Context, k Key) (trend.Window, bool, error)
	// Generation returns the user's invalidation counter.
	Generation(ctx context.Context, userID string) (uint64, error)
	// Set stores w unless the user's generation is no longer gen. A
	// skipped write is not an error.
	Set(ctx context.Context, k Key, w trend.Window, gen uint64) error
	InvalidateUser(ctx context.Context, userID string) error
}

// New builds the cache selected by cfg.Backend. For "redis" the server is
// pinged once so a bad address fails at startup.
func New(ctx context.Context, cfg config.CacheConfig) (TrendCache, error) {
	switch cfg.Backend {
	case "memory":
		return NewMemory(cfg.Size, cfg.TTL), nil
	case "redis":
		r := NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.TTL)
		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		defer cancel()
		if err := r.Ping(pingCtx); err != nil {
			_ = r.Close()
			return nil, fmt.Errorf("redis %s: %w", cfg.RedisAddr, err)
		}
		return r, nil
	}
	return Noop{}, nil
}

// Noop never stores anything.
type Noop struct{}

func (Noop) Get(context.Context, Key) (trend.Window, bool, error) { return trend.Window{}, false, nil }
func (Noop) Generation(context.Context, string) (uint64, error)   { return 0, nil }
func (Noop) Set(context.Context, Key, trend.Window, uint64) error { return nil }
func (Noop) InvalidateUser(context.Context, string) error         { return nil }
