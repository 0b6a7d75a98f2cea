package cache

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/robfig/cron"
	"go.uber.org/zap"
)

type memoryEntry struct {
	Content    []byte
	Expiration time.Time
}

// MemoryStore is an in-process Store
type MemoryStore struct {
	mu    sync.RWMutex
	items map[string]memoryEntry
	now   func() time.Time
	cron  *cron.Cron
}

// NewMemoryStore creates an empty in-process store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		items: make(map[string]memoryEntry),
		now:   time.Now,
	}
}

// Get decodes the value stored under key into dest
func (m *MemoryStore) Get(ctx context.Context, key string, dest interface{}) error {
	m.mu.RLock()
	entry, found := m.items[key]
	m.mu.RUnlock()

	if !found || !entry.Expiration.After(m.now()) {
		return ErrMiss
	}
	return json.Unmarshal(entry.Content, dest)
}

// Set stores value under key for ttl
func (m *MemoryStore) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	content, err := json.Marshal(value)
	if err != nil {
		return err
	}

	m.mu.Lock()
	m.items[key] = memoryEntry{
		Content:    content,
		Expiration: m.now().Add(ttl),
	}
	m.mu.Unlock()
	return nil
}

// Delete removes keys
func (m *MemoryStore) Delete(ctx context.Context, keys ...string) error {
	m.mu.Lock()
	for _, key := range keys {
		delete(m.items, key)
	}
	m.mu.Unlock()
	return nil
}

// Len returns the number of entries, expired ones included
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}

// CleanExpired drops expired entries and returns how many were removed
func (m *MemoryStore) CleanExpired() int {
	now := m.now()

	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for key, entry := range m.items {
		if !entry.Expiration.After(now) {
			delete(m.items, key)
			removed++
		}
	}
	return removed
}

// StartSweeper schedules CleanExpired on a cron spec such as "@every 5m"
func (m *MemoryStore) StartSweeper(spec string, log *zap.Logger) error {
	c := cron.New()
	err := c.AddFunc(spec, func() {
		if removed := m.CleanExpired(); removed > 0 {
			log.Debug("directory cache swept", zap.Int("removed", removed))
		}
	})
	if err != nil {
		return err
	}

	c.Start()
	m.cron = c
	return nil
}

// StopSweeper stops the sweeper started by StartSweeper
func (m *MemoryStore) StopSweeper() {
	if m.cron != nil {
		m.cron.Stop()
	}
}
