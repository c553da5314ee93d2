package cache

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/tbourn/quantifyme-backend/internal/trend"
)

// Memory is an in-process LRU with per-entry expiry. mu orders Set
// against InvalidateUser so a stale generation can never be stored.
type Memory struct {
	lru *expirable.LRU[string, trend.Window]

	mu   sync.Mutex
	gens map[string]uint64
}

// NewMemory returns a cache holding at most size windows for ttl each.
func NewMemory(size int, ttl time.Duration) *Memory {
	return &Memory{
		lru:  expirable.NewLRU[string, trend.Window](size, nil, ttl),
		gens: make(map[string]uint64),
	}
}

func (m *Memory) Get(_ context.Context, k Key) (trend.Window, bool, error) {
	w, ok := m.lru.Get(k.String())
	return w, ok, nil
}

func (m *Memory) Generation(_ context.Context, userID string) (uint64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.gens[userID], nil
}

func (m *Memory) Set(_ context.Context, k Key, w trend.Window, gen uint64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.gens[k.UserID] != gen {
		return nil
	}
	m.lru.Add(k.String(), w)
	return nil
}

// InvalidateUser bumps the user's generation and drops every cached window.
func (m *Memory) InvalidateUser(_ context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gens[userID]++
	prefix := userPrefix(userID)
	for _, k := range m.lru.Keys() {
		if strings.HasPrefix(k, prefix) {
			m.lru.Remove(k)
		}
	}
	return nil
}

// Len reports the number of live entries.
func (m *Memory) Len() int { return m.lru.Len() }
