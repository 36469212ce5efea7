// Package cooldown отслеживает время последнего принятого репорта
// для пары (репортер, зона).
package cooldown

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Tracker - хранилище отметок времени последних принятых репортов
type Tracker interface {
	LastAcceptedAt(ctx context.Context, reporterID string, zoneID uuid.UUID) (time.Time, bool, error)
	RecordAccepted(ctx context.Context, reporterID string, zoneID uuid.UUID, at time.Time) error
	IsAllowed(ctx context.Context, reporterID string, zoneID uuid.UUID, now time.Time, cooldown time.Duration) (bool, error)
	ForgetZone(ctx context.Context, zoneID uuid.UUID) error
}

// Acquirer - хранилище, умеющее проверить cooldown и записать отметку одной
// атомарной операцией. Engine предпочитает его паре IsAllowed/RecordAccepted.
type Acquirer interface {
	TryAcquire(ctx context.Context, reporterID string, zoneID uuid.UUID, now time.Time, cooldown time.Duration) (bool, error)
}

type key struct {
	reporterID string
	zoneID     uuid.UUID
}

// MemoryTracker - реализация Tracker в памяти процесса
type MemoryTracker struct {
	mu      sync.RWMutex
	entries map[key]time.Time
}

// NewMemoryTracker создает новый MemoryTracker
func NewMemoryTracker() *MemoryTracker {
	return &MemoryTracker{
		entries: make(map[key]time.Time),
	}
}

func (m *MemoryTracker) LastAcceptedAt(_ context.Context, reporterID string, zoneID uuid.UUID) (time.Time, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	at, ok := m.entries[key{reporterID, zoneID}]
	return at, ok, nil
}

func (m *MemoryTracker) RecordAccepted(_ context.Context, reporterID string, zoneID uuid.UUID, at time.Time) error {
	m.mu.Lock()
	m.entries[key{reporterID, zoneID}] = at
	m.mu.Unlock()
	return nil
}

func (m *MemoryTracker) IsAllowed(ctx context.Context, reporterID string, zoneID uuid.UUID, now time.Time, cooldown time.Duration) (bool, error) {
	last, ok, err := m.LastAcceptedAt(ctx, reporterID, zoneID)
	if err != nil {
		return false, err
	}
	return allowed(last, ok, now, cooldown), nil
}

func (m *MemoryTracker) ForgetZone(_ context.Context, zoneID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for k := range m.entries {
		if k.zoneID == zoneID {
			delete(m.entries, k)
		}
	}
	return nil
}

// Sweep удаляет записи старше окна cooldown и возвращает их количество
func (m *MemoryTracker) Sweep(now time.Time, window time.Duration) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	removed := 0
	for k, at := range m.entries {
		if now.Sub(at) >= window {
			delete(m.entries, k)
			removed++
		}
	}
	return removed
}

// Len возвращает количество записей
func (m *MemoryTracker) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

func allowed(last time.Time, ok bool, now time.Time, cooldown time.Duration) bool {
	if !ok {
		return true
	}
	return now.Sub(last) >= cooldown
}
