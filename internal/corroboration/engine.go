// Package corroboration применяет репорты к зонам: проверяет cooldown,
// накапливает ожидающие репорты и по достижении порога переводит их
// в один подтвержденный инцидент.
package corroboration

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/danger_zones/internal/cooldown"
	"github.com/shenikar/danger_zones/internal/models"
)

const (
	DefaultThreshold = 3
	DefaultCooldown  = 300 * time.Second
)

// ZoneStore - реестр зон с атомарным обновлением одной зоны
type ZoneStore interface {
	Update(id uuid.UUID, fn func(z *models.Zone) error) (models.Zone, error)
}

// Engine - конечный автомат подтверждения репортов
type Engine struct {
	zones     ZoneStore
	tracker   cooldown.Tracker
	threshold int
	cooldown  time.Duration
}

// Option настраивает Engine
type Option func(*Engine)

// WithThreshold задает количество репортов для подтверждения инцидента
func WithThreshold(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.threshold = n
		}
	}
}

// WithCooldown задает минимальный интервал между репортами одного репортера в зону
func WithCooldown(d time.Duration) Option {
	return func(e *Engine) {
		if d >= 0 {
			e.cooldown = d
		}
	}
}

// NewEngine создает новый Engine
func NewEngine(zones ZoneStore, tracker cooldown.Tracker, opts ...Option) *Engine {
	e := &Engine{
		zones:     zones,
		tracker:   tracker,
		threshold: DefaultThreshold,
		cooldown:  DefaultCooldown,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Threshold возвращает порог подтверждения
func (e *Engine) Threshold() int { return e.threshold }

// Cooldown возвращает окно cooldown
func (e *Engine) Cooldown() time.Duration { return e.cooldown }

// Submit применяет репорт к зоне. Проверка cooldown, его запись и изменение
// счетчиков выполняются под мьютексом зоны одной операцией.
func (e *Engine) Submit(ctx context.Context, reporterID string, zoneID uuid.UUID, now time.Time) (models.ReportResult, error) {
	outcome := models.OutcomePending

	zone, err := e.zones.Update(zoneID, func(z *models.Zone) error {
		if err := e.acceptReport(ctx, reporterID, zoneID, now); err != nil {
			return err
		}

		z.PendingReports++
		if z.PendingReports >= e.threshold {
			z.ConfirmedIncidents++
			z.PendingReports = 0
			outcome = models.OutcomeConfirmed
		}
		z.UpdatedAt = now
		return nil
	})
	if err != nil {
		return models.ReportResult{}, err
	}

	return models.ReportResult{
		Outcome:    outcome,
		Zone:       zone,
		ReporterID: reporterID,
		AcceptedAt: now,
	}, nil
}

// acceptReport проверяет cooldown и записывает отметку принятого репорта
func (e *Engine) acceptReport(ctx context.Context, reporterID string, zoneID uuid.UUID, now time.Time) error {
	if acq, ok := e.tracker.(cooldown.Acquirer); ok {
		acquired, err := acq.TryAcquire(ctx, reporterID, zoneID, now, e.cooldown)
		if err != nil {
			return fmt.Errorf("cooldown acquire: %w", err)
		}
		if !acquired {
			return models.ErrRateLimited
		}
		return nil
	}

	ok, err := e.tracker.IsAllowed(ctx, reporterID, zoneID, now, e.cooldown)
	if err != nil {
		return fmt.Errorf("cooldown check: %w", err)
	}
	if !ok {
		return models.ErrRateLimited
	}

	if err := e.tracker.RecordAccepted(ctx, reporterID, zoneID, now); err != nil {
		return fmt.Errorf("cooldown record: %w", err)
	}
	return nil
}

// AddIncidents напрямую увеличивает число подтвержденных инцидентов,
// минуя cooldown и порог
func (e *Engine) AddIncidents(zoneID uuid.UUID, count int, now time.Time) (models.Zone, error) {
	if count < 1 {
		return models.Zone{}, models.ErrInvalidCount
	}
	return e.zones.Update(zoneID, func(z *models.Zone) error {
		z.ConfirmedIncidents += count
		z.UpdatedAt = now
		return nil
	})
}
