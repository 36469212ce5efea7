package events

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/shenikar/danger_zones/internal/models"
)

const subscriberBuffer = 32

// Hub - лента изменений внутри процесса. Медленный подписчик не тормозит
// остальных: событие, не поместившееся в его буфер, отбрасывается.
type Hub struct {
	mu      sync.RWMutex
	nextID  int
	subs    map[int]chan models.ZoneEvent
	dropped atomic.Int64
}

// NewHub создает новый Hub
func NewHub() *Hub {
	return &Hub{
		subs: make(map[int]chan models.ZoneEvent),
	}
}

// Subscribe возвращает канал событий и функцию отписки
func (h *Hub) Subscribe() (<-chan models.ZoneEvent, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	id := h.nextID
	h.nextID++
	ch := make(chan models.ZoneEvent, subscriberBuffer)
	h.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs, id)
			close(ch)
			h.mu.Unlock()
		})
	}
}

// Publish доставляет событие всем текущим подписчикам
func (h *Hub) Publish(_ context.Context, event models.ZoneEvent) error {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, ch := range h.subs {
		select {
		case ch <- event:
		default:
			h.dropped.Add(1)
		}
	}
	return nil
}

// Subscribers возвращает количество подписчиков
func (h *Hub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

// Dropped возвращает количество событий, не доставленных из-за переполнения буфера
func (h *Hub) Dropped() int64 {
	return h.dropped.Load()
}
