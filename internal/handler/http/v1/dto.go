package v1

import (
	"time"

	"github.com/google/uuid"
)

// ReportRequest DTO для отправки репорта об инциденте в зоне
// @Description DTO для отправки репорта об инциденте в зоне
type ReportRequest struct {
	ReporterID string `json:"reporter_id" validate:"required,max=128"`
	// Время на устройстве пользователя, только для журнала
	ClientTime *time.Time `json:"client_time,omitempty"`
}

// ReportResponse DTO для ответа на принятый репорт
// @Description DTO для ответа на принятый репорт
type ReportResponse struct {
	ZoneID             uuid.UUID `json:"zone_id"`
	Outcome            string    `json:"outcome"`
	PendingReports     int       `json:"pending_reports"`
	ConfirmedIncidents int       `json:"confirmed_incidents"`
	RiskLevel          string    `json:"risk_level"`
	AcceptedAt         time.Time `json:"accepted_at"`
}

// CreateZoneRequest DTO для создания зоны
// @Description DTO для создания зоны
type CreateZoneRequest struct {
	Name      string   `json:"name" validate:"required,min=2,max=255"`
	Latitude  *float64 `json:"latitude" validate:"required,latitude"`
	Longitude *float64 `json:"longitude" validate:"required,longitude"`
}

// AddIncidentsRequest DTO для административного добавления инцидентов
// @Description DTO для административного добавления инцидентов
type AddIncidentsRequest struct {
	Count int `json:"count" validate:"required,gte=1,lte=1000"`
}

// ZoneResponse DTO для ответа с информацией о зоне
// @Description DTO для ответа с информацией о зоне
type ZoneResponse struct {
	ID                 uuid.UUID `json:"id"`
	Name               string    `json:"name"`
	Latitude           float64   `json:"latitude"`
	Longitude          float64   `json:"longitude"`
	ConfirmedIncidents int       `json:"confirmed_incidents"`
	PendingReports     int       `json:"pending_reports"`
	RiskLevel          string    `json:"risk_level"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// ZoneDistanceResponse DTO для зоны с расстоянием до точки запроса
// @Description DTO для зоны с расстоянием до точки запроса
type ZoneDistanceResponse struct {
	ZoneResponse
	DistanceKm float64 `json:"distance_km"`
}

// StatsResponse DTO для ответа со статистикой
// @Description DTO для ответа со статистикой
type StatsResponse struct {
	TotalZones         int            `json:"total_zones"`
	ConfirmedIncidents int            `json:"confirmed_incidents"`
	PendingReports     int            `json:"pending_reports"`
	ByRiskLevel        map[string]int `json:"by_risk_level"`
	ActiveZones        []ZoneResponse `json:"active_zones"`
}

// EventResponse DTO события ленты изменений
// @Description DTO события ленты изменений
type EventResponse struct {
	Type       string       `json:"type"`
	Zone       ZoneResponse `json:"zone"`
	ReporterID string       `json:"reporter_id,omitempty"`
	OccurredAt time.Time    `json:"occurred_at"`
}

// SnapshotResponse DTO для ответа с именем сохраненного снимка
// @Description DTO для ответа с именем сохраненного снимка
type SnapshotResponse struct {
	Object string `json:"object"`
}
