// Package registry хранит опасные зоны в памяти процесса.
//
// Порядок зон стабилен (порядок сида и добавления), изменения одной зоны
// выполняются под ее собственным мьютексом через Update.
package registry

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/shenikar/danger_zones/internal/models"
)

type entry struct {
	mu      sync.Mutex
	zone    models.Zone
	removed bool
}

// Registry - потокобезопасный реестр зон
type Registry struct {
	mu      sync.RWMutex
	order   []uuid.UUID
	entries map[uuid.UUID]*entry
	seeded  bool
}

// New создает пустой реестр
func New() *Registry {
	return &Registry{
		entries: make(map[uuid.UUID]*entry),
	}
}

// Seed выполняет однократное заполнение реестра при старте
func (r *Registry) Seed(zones []models.Zone) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.seeded {
		return models.ErrAlreadySeeded
	}

	seen := make(map[uuid.UUID]struct{}, len(zones))
	for _, z := range zones {
		if _, ok := r.entries[z.ID]; ok {
			return fmt.Errorf("seed zone %s: %w", z.ID, models.ErrDuplicateZone)
		}
		if _, ok := seen[z.ID]; ok {
			return fmt.Errorf("seed zone %s: %w", z.ID, models.ErrDuplicateZone)
		}
		seen[z.ID] = struct{}{}
	}

	for _, z := range zones {
		r.insertLocked(z)
	}
	r.seeded = true
	return nil
}

// Add добавляет новую зону в конец реестра
func (r *Registry) Add(zone models.Zone) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.entries[zone.ID]; ok {
		return fmt.Errorf("zone %s: %w", zone.ID, models.ErrDuplicateZone)
	}
	r.insertLocked(zone)
	return nil
}

func (r *Registry) insertLocked(zone models.Zone) {
	if zone.PendingReports < 0 {
		zone.PendingReports = 0
	}
	if zone.ConfirmedIncidents < 0 {
		zone.ConfirmedIncidents = 0
	}
	r.entries[zone.ID] = &entry{zone: zone}
	r.order = append(r.order, zone.ID)
}

// Remove удаляет зону из реестра
func (r *Registry) Remove(id uuid.UUID) (models.Zone, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[id]
	if !ok {
		return models.Zone{}, fmt.Errorf("zone %s: %w", id, models.ErrZoneNotFound)
	}
	delete(r.entries, id)
	for i, zid := range r.order {
		if zid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}

	// Дожидаемся завершения текущего Update по этой зоне
	e.mu.Lock()
	e.removed = true
	zone := e.zone
	e.mu.Unlock()
	return zone, nil
}

// List возвращает снимки всех зон в порядке реестра
func (r *Registry) List() []models.Zone {
	r.mu.RLock()
	defer r.mu.RUnlock()

	zones := make([]models.Zone, 0, len(r.order))
	for _, id := range r.order {
		e := r.entries[id]
		e.mu.Lock()
		zones = append(zones, e.zone)
		e.mu.Unlock()
	}
	return zones
}

// Find возвращает снимок зоны по ID
func (r *Registry) Find(id uuid.UUID) (models.Zone, error) {
	e, err := r.lookup(id)
	if err != nil {
		return models.Zone{}, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.removed {
		return models.Zone{}, fmt.Errorf("zone %s: %w", id, models.ErrZoneNotFound)
	}
	return e.zone, nil
}

// Len возвращает количество зон
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}

// Update выполняет fn над копией зоны, удерживая мьютекс этой зоны.
// Если fn вернула ошибку, состояние зоны не меняется.
func (r *Registry) Update(id uuid.UUID, fn func(z *models.Zone) error) (models.Zone, error) {
	e, err := r.lookup(id)
	if err != nil {
		return models.Zone{}, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.removed {
		return models.Zone{}, fmt.Errorf("zone %s: %w", id, models.ErrZoneNotFound)
	}

	next := e.zone
	if err := fn(&next); err != nil {
		return e.zone, err
	}
	// Идентичность и координаты зоны неизменны
	next.ID = e.zone.ID
	next.Name = e.zone.Name
	next.Location = e.zone.Location
	next.Version = e.zone.Version + 1
	e.zone = next
	return next, nil
}

// RestoreCounters накладывает сохраненные счетчики на зону при старте
func (r *Registry) RestoreCounters(id uuid.UUID, confirmed, pending int, version int64, threshold int) error {
	e, err := r.lookup(id)
	if err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	if confirmed < 0 {
		confirmed = 0
	}
	if pending < 0 || pending >= threshold {
		pending = 0
	}
	e.zone.ConfirmedIncidents = confirmed
	e.zone.PendingReports = pending
	if version > e.zone.Version {
		e.zone.Version = version
	}
	return nil
}

func (r *Registry) lookup(id uuid.UUID) (*entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[id]
	if !ok {
		return nil, fmt.Errorf("zone %s: %w", id, models.ErrZoneNotFound)
	}
	return e, nil
}
