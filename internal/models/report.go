package models

import (
	"time"

	"github.com/google/uuid"
)

// ReportOutcome - результат принятого репорта
type ReportOutcome string

const (
	OutcomePending   ReportOutcome = "pending"
	OutcomeConfirmed ReportOutcome = "confirmed"
)

// ReportResult - состояние зоны после принятого репорта
type ReportResult struct {
	Outcome    ReportOutcome `json:"outcome"`
	Zone       Zone          `json:"zone"`
	ReporterID string        `json:"reporter_id"`
	AcceptedAt time.Time     `json:"accepted_at"`
}

// EventType - тип события изменения зоны
type EventType string

const (
	EventReportPending     EventType = "report.pending"
	EventIncidentConfirmed EventType = "incident.confirmed"
	EventIncidentsAdded    EventType = "incidents.added"
	EventZoneAdded         EventType = "zone.added"
	EventZoneRemoved       EventType = "zone.removed"
)

// ZoneEvent - уведомление об изменении состояния зоны
type ZoneEvent struct {
	Type       EventType `json:"type"`
	ZoneID     uuid.UUID `json:"zone_id"`
	Zone       Zone      `json:"zone"`
	ReporterID string    `json:"reporter_id,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}
