package draft

import (
	"context"
	"errors"
	"sort"
	"sync"
)

// ErrNoDraft is returned by a backend when the slot is empty.
var ErrNoDraft = errors.New("draft: no draft stored")

// Backend is raw byte storage for draft slots. Put must replace the previous
// value atomically: on failure the old value stays readable.
type Backend interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, payload []byte) error
	// Delete removes the slot; deleting an empty slot is not an error.
	Delete(ctx context.Context, key string) error
	Keys(ctx context.Context) ([]string, error)
}

// MemoryBackend keeps drafts in process memory.
type MemoryBackend struct {
	mu     sync.RWMutex
	drafts map[string][]byte
}

// NewMemoryBackend creates an empty in-memory backend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{drafts: make(map[string][]byte)}
}

func (m *MemoryBackend) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.drafts[key]
	if !ok {
		return nil, ErrNoDraft
	}
	return append([]byte(nil), v...), nil
}

func (m *MemoryBackend) Put(ctx context.Context, key string, payload []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.drafts[key] = append([]byte(nil), payload...)
	return nil
}

func (m *MemoryBackend) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.drafts, key)
	return nil
}

func (m *MemoryBackend) Keys(ctx context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	keys := make([]string, 0, len(m.drafts))
	for k := range m.drafts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}
