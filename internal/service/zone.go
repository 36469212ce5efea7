package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/danger_zones/internal/cooldown"
	"github.com/shenikar/danger_zones/internal/corroboration"
	"github.com/shenikar/danger_zones/internal/events"
	"github.com/shenikar/danger_zones/internal/metrics"
	"github.com/shenikar/danger_zones/internal/models"
	"github.com/shenikar/danger_zones/internal/registry"
	"github.com/shenikar/danger_zones/internal/resolver"
	"github.com/shenikar/danger_zones/pkg/geo"
	"github.com/sirupsen/logrus"
)

var ErrSnapshotsDisabled = errors.New("snapshot storage is not configured")

// CounterStore определяет контракт для хранения счетчиков зон между перезапусками
type CounterStore interface {
	LoadCounters(ctx context.Context) ([]models.ZoneCounters, error)
	SaveCounters(ctx context.Context, zone models.Zone) error
	DeleteCounters(ctx context.Context, zoneID uuid.UUID) error
}

// SnapshotArchiver определяет контракт архивации снимков состояния зон
type SnapshotArchiver interface {
	Archive(ctx context.Context, zones []models.Zone, takenAt time.Time) (string, error)
}

// ZoneService определяет контракт бизнес-логики зон и репортов
type ZoneService interface {
	ListZones(ctx context.Context) []models.Zone
	GetZone(ctx context.Context, id uuid.UUID) (models.Zone, error)
	NearestZone(ctx context.Context, point geo.Coordinate) (models.ZoneDistance, error)
	ZonesWithin(ctx context.Context, point geo.Coordinate, radiusKm float64) ([]models.ZoneDistance, error)
	SubmitReport(ctx context.Context, reporterID string, zoneID uuid.UUID) (models.ReportResult, error)
	AddIncidents(ctx context.Context, zoneID uuid.UUID, count int) (models.Zone, error)
	AddZone(ctx context.Context, name string, location geo.Coordinate) (models.Zone, error)
	RemoveZone(ctx context.Context, id uuid.UUID) error
	Stats(ctx context.Context) models.ZoneStats
	Subscribe() (<-chan models.ZoneEvent, func())
	ArchiveSnapshot(ctx context.Context) (string, error)
}

// Dependencies - зависимости zoneService. Store, Publisher и Archiver необязательны.
type Dependencies struct {
	Registry  *registry.Registry
	Engine    *corroboration.Engine
	Tracker   cooldown.Tracker
	Index     *resolver.Index
	Hub       *events.Hub
	Store     CounterStore
	Publisher events.Publisher
	Archiver  SnapshotArchiver
}

type zoneService struct {
	registry  *registry.Registry
	engine    *corroboration.Engine
	tracker   cooldown.Tracker
	index     *resolver.Index
	hub       *events.Hub
	store     CounterStore
	publisher events.Publisher
	archiver  SnapshotArchiver
	logger    *logrus.Logger
	now       func() time.Time

	// сериализует добавление/удаление зон вместе с перестройкой индекса
	adminMu sync.Mutex
	// удаление счетчиков зоны исключает одновременное сохранение ее счетчиков
	storeMu sync.RWMutex
}

func NewZoneService(deps Dependencies, logger *logrus.Logger) ZoneService {
	hub := deps.Hub
	if hub == nil {
		hub = events.NewHub()
	}
	index := deps.Index
	if index == nil {
		index = resolver.NewIndex(deps.Registry.List())
	}
	metrics.Zones.Set(float64(deps.Registry.Len()))

	return &zoneService{
		registry:  deps.Registry,
		engine:    deps.Engine,
		tracker:   deps.Tracker,
		index:     index,
		hub:       hub,
		store:     deps.Store,
		publisher: deps.Publisher,
		archiver:  deps.Archiver,
		logger:    logger,
		now:       time.Now,
	}
}

// RestoreCounters накладывает сохраненные счетчики на зоны реестра
func RestoreCounters(ctx context.Context, store CounterStore, reg *registry.Registry, threshold int, logger *logrus.Logger) error {
	log := logger.WithFields(logrus.Fields{
		"service": "zone",
		"method":  "RestoreCounters",
	})
	counters, err := store.LoadCounters(ctx)
	if err != nil {
		return fmt.Errorf("service: could not load zone counters: %w", err)
	}

	restored := 0
	for _, c := range counters {
		if err := reg.RestoreCounters(c.ZoneID, c.ConfirmedIncidents, c.PendingReports, c.Version, threshold); err != nil {
			if errors.Is(err, models.ErrZoneNotFound) {
				log.WithField("zone_id", c.ZoneID).Warn("Stored counters refer to a zone missing from the seed, skipping")
				continue
			}
			return fmt.Errorf("service: could not restore zone counters: %w", err)
		}
		restored++
	}
	log.WithField("restored", restored).Info("Zone counters restored")
	return nil
}

// ListZones возвращает все зоны в порядке реестра
func (s *zoneService) ListZones(_ context.Context) []models.Zone {
	return s.registry.List()
}

// GetZone получает зону по ID
func (s *zoneService) GetZone(_ context.Context, id uuid.UUID) (models.Zone, error) {
	zone, err := s.registry.Find(id)
	if err != nil {
		return models.Zone{}, fmt.Errorf("service: could not get zone: %w", err)
	}
	return zone, nil
}

// NearestZone находит ближайшую к точке зону
func (s *zoneService) NearestZone(_ context.Context, point geo.Coordinate) (models.ZoneDistance, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "zone",
		"method":  "NearestZone",
	})

	zone, dist, err := resolver.Nearest(point, s.registry.List())
	if err != nil {
		log.WithError(err).Debug("Nearest zone not resolved")
		return models.ZoneDistance{}, fmt.Errorf("service: could not resolve nearest zone: %w", err)
	}

	log.WithFields(logrus.Fields{"zone_id": zone.ID, "distance_km": dist}).Debug("Nearest zone resolved")
	return models.ZoneDistance{Zone: zone, DistanceKm: dist}, nil
}

// ZonesWithin возвращает зоны в радиусе от точки, ближайшие первыми
func (s *zoneService) ZonesWithin(_ context.Context, point geo.Coordinate, radiusKm float64) ([]models.ZoneDistance, error) {
	matches, err := s.index.Within(point, radiusKm)
	if err != nil {
		return nil, fmt.Errorf("service: could not search zones within radius: %w", err)
	}

	result := make([]models.ZoneDistance, 0, len(matches))
	for _, m := range matches {
		zone, err := s.registry.Find(m.ZoneID)
		if err != nil {
			// зона удалена между поиском и чтением
			continue
		}
		result = append(result, models.ZoneDistance{Zone: zone, DistanceKm: m.DistanceKm})
	}
	return result, nil
}

// SubmitReport применяет репорт пользователя к зоне
func (s *zoneService) SubmitReport(ctx context.Context, reporterID string, zoneID uuid.UUID) (models.ReportResult, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":     "zone",
		"method":      "SubmitReport",
		"zone_id":     zoneID,
		"reporter_id": reporterID,
	})
	log.Debug("Submitting report")

	started := time.Now()
	defer func() {
		metrics.SubmitDurationMs.Observe(float64(time.Since(started).Microseconds()) / 1000)
	}()

	result, err := s.engine.Submit(ctx, reporterID, zoneID, s.now())
	if err != nil {
		switch {
		case errors.Is(err, models.ErrRateLimited):
			metrics.ReportsTotal.WithLabelValues("rate_limited").Inc()
			log.Info("Report rejected by cooldown")
		case errors.Is(err, models.ErrZoneNotFound):
			metrics.ReportsTotal.WithLabelValues("error").Inc()
			log.Warn("Report submitted for unknown zone")
		default:
			metrics.ReportsTotal.WithLabelValues("error").Inc()
			log.WithError(err).Error("Failed to apply report")
		}
		return models.ReportResult{}, fmt.Errorf("service: could not submit report: %w", err)
	}

	eventType := models.EventReportPending
	metrics.ReportsTotal.WithLabelValues(string(result.Outcome)).Inc()
	if result.Outcome == models.OutcomeConfirmed {
		eventType = models.EventIncidentConfirmed
		metrics.IncidentsConfirmedTotal.Inc()
		log.WithField("confirmed_incidents", result.Zone.ConfirmedIncidents).Info("Incident confirmed")
	} else {
		log.WithField("pending_reports", result.Zone.PendingReports).Info("Report accepted as pending")
	}

	s.persist(ctx, result.Zone)
	s.publish(ctx, models.ZoneEvent{
		Type:       eventType,
		ZoneID:     result.Zone.ID,
		Zone:       result.Zone,
		ReporterID: reporterID,
		OccurredAt: result.AcceptedAt,
	})
	return result, nil
}

// AddIncidents административно добавляет подтвержденные инциденты
func (s *zoneService) AddIncidents(ctx context.Context, zoneID uuid.UUID, count int) (models.Zone, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "zone",
		"method":  "AddIncidents",
		"zone_id": zoneID,
		"count":   count,
	})
	log.Info("Attempting to add incidents")

	now := s.now()
	zone, err := s.engine.AddIncidents(zoneID, count, now)
	if err != nil {
		log.WithError(err).Warn("Failed to add incidents")
		return models.Zone{}, fmt.Errorf("service: could not add incidents: %w", err)
	}
	metrics.IncidentsAddedTotal.Add(float64(count))

	s.persist(ctx, zone)
	s.publish(ctx, models.ZoneEvent{
		Type:       models.EventIncidentsAdded,
		ZoneID:     zone.ID,
		Zone:       zone,
		OccurredAt: now,
	})
	log.WithField("confirmed_incidents", zone.ConfirmedIncidents).Info("Incidents added successfully")
	return zone, nil
}

// AddZone добавляет новую зону в реестр
func (s *zoneService) AddZone(ctx context.Context, name string, location geo.Coordinate) (models.Zone, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "zone",
		"method":  "AddZone",
		"name":    name,
	})
	log.Info("Attempting to add a new zone")

	if err := location.Validate(); err != nil {
		return models.Zone{}, fmt.Errorf("service: could not add zone: %w: %v", models.ErrInvalidCoordinate, err)
	}

	now := s.now()
	zone := models.Zone{
		ID:        uuid.New(),
		Name:      strings.TrimSpace(name),
		Location:  location,
		UpdatedAt: now,
	}

	s.adminMu.Lock()
	if err := s.registry.Add(zone); err != nil {
		s.adminMu.Unlock()
		log.WithError(err).Error("Failed to add zone to registry")
		return models.Zone{}, fmt.Errorf("service: could not add zone: %w", err)
	}
	s.index.Rebuild(s.registry.List())
	metrics.Zones.Set(float64(s.registry.Len()))
	s.adminMu.Unlock()

	s.persist(ctx, zone)
	s.publish(ctx, models.ZoneEvent{
		Type:       models.EventZoneAdded,
		ZoneID:     zone.ID,
		Zone:       zone,
		OccurredAt: now,
	})
	log.WithField("zone_id", zone.ID).Info("Zone added successfully")
	return zone, nil
}

// RemoveZone удаляет зону вместе с ее записями cooldown и сохраненными счетчиками
func (s *zoneService) RemoveZone(ctx context.Context, id uuid.UUID) error {
	log := s.logger.WithFields(logrus.Fields{
		"service": "zone",
		"method":  "RemoveZone",
		"zone_id": id,
	})
	log.Info("Attempting to remove zone")

	s.adminMu.Lock()
	zone, err := s.registry.Remove(id)
	if err != nil {
		s.adminMu.Unlock()
		log.WithError(err).Warn("Attempted to remove a non-existent zone")
		return fmt.Errorf("service: zone with id %s not found for remove: %w", id, err)
	}
	s.index.Rebuild(s.registry.List())
	metrics.Zones.Set(float64(s.registry.Len()))
	s.adminMu.Unlock()

	if err := s.tracker.ForgetZone(ctx, id); err != nil {
		log.WithError(err).Error("Failed to clean up cooldown entries")
	}
	if s.store != nil {
		s.storeMu.Lock()
		if err := s.store.DeleteCounters(ctx, id); err != nil {
			metrics.PersistFailuresTotal.Inc()
			log.WithError(err).Error("Failed to delete stored zone counters")
		}
		s.storeMu.Unlock()
	}

	s.publish(ctx, models.ZoneEvent{
		Type:       models.EventZoneRemoved,
		ZoneID:     id,
		Zone:       zone,
		OccurredAt: s.now(),
	})
	log.Info("Zone removed successfully")
	return nil
}

// Stats возвращает сводку по зонам с подтвержденными инцидентами
func (s *zoneService) Stats(_ context.Context) models.ZoneStats {
	zones := s.registry.List()
	stats := models.ZoneStats{
		TotalZones:  len(zones),
		ActiveZones: make([]models.Zone, 0),
		ByRiskLevel: make(map[models.RiskLevel]int, len(models.RiskLevels)),
	}
	for _, level := range models.RiskLevels {
		stats.ByRiskLevel[level] = 0
	}

	for _, z := range zones {
		stats.ConfirmedIncidents += z.ConfirmedIncidents
		stats.PendingReports += z.PendingReports
		stats.ByRiskLevel[z.Risk()]++
		if z.ConfirmedIncidents > 0 {
			stats.ActiveZones = append(stats.ActiveZones, z)
		}
	}
	return stats
}

// Subscribe подписывает на ленту изменений зон
func (s *zoneService) Subscribe() (<-chan models.ZoneEvent, func()) {
	return s.hub.Subscribe()
}

// ArchiveSnapshot сохраняет снимок всех зон в хранилище
func (s *zoneService) ArchiveSnapshot(ctx context.Context) (string, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "zone",
		"method":  "ArchiveSnapshot",
	})
	if s.archiver == nil {
		return "", ErrSnapshotsDisabled
	}

	name, err := s.archiver.Archive(ctx, s.registry.List(), s.now())
	if err != nil {
		log.WithError(err).Error("Failed to archive zones snapshot")
		return "", fmt.Errorf("service: could not archive snapshot: %w", err)
	}
	log.WithField("object", name).Info("Zones snapshot archived")
	return name, nil
}

// persist сохраняет счетчики, только пока зона есть в реестре: репорт,
// завершившийся перед RemoveZone, не должен вернуть удаленную строку
func (s *zoneService) persist(ctx context.Context, zone models.Zone) {
	if s.store == nil {
		return
	}
	s.storeMu.RLock()
	defer s.storeMu.RUnlock()
	if _, err := s.registry.Find(zone.ID); err != nil {
		s.logger.WithField("zone_id", zone.ID).Debug("Zone removed before its counters were persisted, skipping")
		return
	}
	if err := s.store.SaveCounters(ctx, zone); err != nil {
		metrics.PersistFailuresTotal.Inc()
		s.logger.WithError(err).WithField("zone_id", zone.ID).Error("Failed to persist zone counters")
	}
}

func (s *zoneService) publish(ctx context.Context, event models.ZoneEvent) {
	_ = s.hub.Publish(ctx, event)
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		metrics.EventPublishFailuresTotal.Inc()
		s.logger.WithError(err).WithFields(logrus.Fields{
			"zone_id":    event.ZoneID,
			"event_type": event.Type,
		}).Error("Failed to publish zone event")
	}
}
