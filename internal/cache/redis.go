package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tbourn/quantifyme-backend/internal/trend"
)

// Redis stores windows as JSON strings with a TTL, shared across replicas.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedis connects lazily; call Ping to verify the server.
func NewRedis(addr, password string, db int, ttl time.Duration) *Redis {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &Redis{
		client: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
			DB:       db,
		}),
		ttl: ttl,
	}
}

func (r *Redis) Ping(ctx context.Context) error { return r.client.Ping(ctx).Err() }

func (r *Redis) Close() error { return r.client.Close() }

func (r *Redis) Get(ctx context.Context, k Key) (trend.Window, bool, error) {
	data, err := r.client.Get(ctx, k.String()).Bytes()
	if errors.Is(err, redis.Nil) {
		return trend.Window{}, false, nil
	}
	if err != nil {
		return trend.Window{}, false, fmt.Errorf("get trend cache: %w", err)
	}
	var w trend.Window
	if err := json.Unmarshal(data, &w); err != nil {
		return trend.Window{}, false, fmt.Errorf("decode trend cache: %w", err)
	}
	return w, true, nil
}

// setIfGen writes KEYS[2] only while KEYS[1] (the user's generation,
// absent meaning 0) still equals ARGV[1].
var setIfGen = redis.NewScript(`
local g = redis.call('GET', KEYS[1]) or '0'
if g ~= ARGV[1] then return 0 end
redis.call('SET', KEYS[2], ARGV[2], 'PX', ARGV[3])
return 1
`)

func (r *Redis) Generation(ctx context.Context, userID string) (uint64, error) {
	v, err := r.client.Get(ctx, genKey(userID)).Uint64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("get trend generation: %w", err)
	}
	return v, nil
}

func (r *Redis) Set(ctx context.Context, k Key, w trend.Window, gen uint64) error {
	data, err := json.Marshal(w)
	if err != nil {
		return fmt.Errorf("encode trend cache: %w", err)
	}
	keys := []string{genKey(k.UserID), k.String()}
	if err := setIfGen.Run(ctx, r.client, keys, strconv.FormatUint(gen, 10), data, r.ttl.Milliseconds()).Err(); err != nil {
		return fmt.Errorf("set trend cache: %w", err)
	}
	return nil
}

// InvalidateUser bumps the user's generation, then deletes every key under
// the user's prefix via SCAN.
func (r *Redis) InvalidateUser(ctx context.Context, userID string) error {
	if err := r.client.Incr(ctx, genKey(userID)).Err(); err != nil {
		return fmt.Errorf("bump trend generation: %w", err)
	}
	iter := r.client.Scan(ctx, 0, escapeGlob(userPrefix(userID))+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("scan trend cache: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}
	return r.client.Del(ctx, keys...).Err()
}

// escapeGlob quotes Redis MATCH metacharacters.
func escapeGlob(s string) string {
	var b strings.Builder
	for _, c := range s {
		switch c {
		case '*', '?', '[', ']', '\\':
			b.WriteByte('\\')
		}
		b.WriteRune(c)
	}
	return b.String()
}
