package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shenikar/danger_zones/internal/models"
	"github.com/shenikar/danger_zones/internal/service"
)

type ZoneCounterRepository struct {
	db *pgxpool.Pool
}

func NewZoneCounterRepository(db *pgxpool.Pool) service.CounterStore {
	return &ZoneCounterRepository{
		db: db,
	}
}

// LoadCounters возвращает сохраненные счетчики всех зон
func (r *ZoneCounterRepository) LoadCounters(ctx context.Context) ([]models.ZoneCounters, error) {
	query := `
		SELECT
			zone_id,
			confirmed_incidents,
			pending_reports,
			version,
			updated_at
		FROM zone_counters;
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to load zone counters: %w", err)
	}
	defer rows.Close()

	counters := make([]models.ZoneCounters, 0)
	for rows.Next() {
		var c models.ZoneCounters
		if err := rows.Scan(&c.ZoneID, &c.ConfirmedIncidents, &c.PendingReports, &c.Version, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan zone counters row: %w", err)
		}
		counters = append(counters, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error zone counters iteration: %w", err)
	}
	return counters, nil
}

// SaveCounters сохраняет счетчики зоны. Запись с версией не новее сохраненной игнорируется,
// поэтому конкурентные записи не откатывают состояние назад.
func (r *ZoneCounterRepository) SaveCounters(ctx context.Context, zone models.Zone) error {
	query := `
		INSERT INTO zone_counters (zone_id, name, confirmed_incidents, pending_reports, version, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (zone_id) DO UPDATE SET
			name = EXCLUDED.name,
			confirmed_incidents = EXCLUDED.confirmed_incidents,
			pending_reports = EXCLUDED.pending_reports,
			version = EXCLUDED.version,
			updated_at = EXCLUDED.updated_at
		WHERE zone_counters.version < EXCLUDED.version;
	`
	updatedAt := zone.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now()
	}
	_, err := r.db.Exec(ctx, query,
		zone.ID,
		zone.Name,
		zone.ConfirmedIncidents,
		zone.PendingReports,
		zone.Version,
		updatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save zone counters: %w", err)
	}
	return nil
}

// DeleteCounters удаляет счетчики удаленной зоны
func (r *ZoneCounterRepository) DeleteCounters(ctx context.Context, zoneID uuid.UUID) error {
	query := `DELETE FROM zone_counters WHERE zone_id = $1;`
	if _, err := r.db.Exec(ctx, query, zoneID); err != nil {
		return fmt.Errorf("failed to delete zone counters: %w", err)
	}
	return nil
}
