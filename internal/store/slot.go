// Package store provides durable key-value slots and the bridge that
// mirrors a planner snapshot into one of them.
package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Slot is a durable key-value location. Put fully overwrites the value.
type Slot interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Put(ctx context.Context, key string, value []byte) error
	Close() error
}

// SlotInfo describes the last write to a key.
type SlotInfo struct {
	Key       string
	Revision  string
	UpdatedAt time.Time
	Size      int
}

// Memory is an in-process Slot used for tests and --ephemeral runs.
type Memory struct {
	mu    sync.Mutex
	items map[string]memoryItem
}

type memoryItem struct {
	value []byte
	info  SlotInfo
}

// NewMemory returns an empty in-memory slot.
func NewMemory() *Memory {
	return &Memory{items: make(map[string]memoryItem)}
}

// Get returns a copy of the value stored at key.
func (m *Memory) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	it, ok := m.items[key]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(it.value))
	copy(out, it.value)
	return out, true, nil
}

// Put replaces the value stored at key.
func (m *Memory) Put(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	v := make([]byte, len(value))
	copy(v, value)
	m.items[key] = memoryItem{
		value: v,
		info: SlotInfo{
			Key:       key,
			Revision:  uuid.NewString(),
			UpdatedAt: time.Now().UTC(),
			Size:      len(v),
		},
	}
	return nil
}

// Info reports the last write to key.
func (m *Memory) Info(_ context.Context, key string) (SlotInfo, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	it, ok := m.items[key]
	return it.info, ok, nil
}

// Close is a no-op.
func (m *Memory) Close() error { return nil }
