package testutils

import (
	"context"
	"errors"
	"sync"
	"time"
)

var errWriteFailed = errors.New("kv write failed")

// MemKV is an in-memory stand-in for the redis rank store.
type MemKV struct {
	mu      sync.Mutex
	entries map[string]memEntry
	// Gets counts reads so tests can tell a cache hit from a rebuild.
	Gets int
	// Sets counts writes.
	Sets int
	// FailWrites makes every Set return an error, for exercising the
	// degraded not-persisted path.
	FailWrites bool
}

type memEntry struct {
	value   []byte
	expires time.Time
}

func NewMemKV() *MemKV {
	return &MemKV{entries: make(map[string]memEntry)}
}

func (m *MemKV) Get(ctx context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Gets++
	e, ok := m.entries[key]
	if !ok || time.Now().After(e.expires) {
		return nil, false, nil
	}
	return e.value, true, nil
}

func (m *MemKV) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Sets++
	if m.FailWrites {
		return errWriteFailed
	}
	m.entries[key] = memEntry{value: value, expires: time.Now().Add(ttl)}
	return nil
}
