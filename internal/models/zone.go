package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/danger_zones/pkg/geo"
)

// Zone - опасная зона с подсчетом подтвержденных инцидентов и ожидающих репортов
type Zone struct {
	ID                 uuid.UUID      `json:"id"`
	Name               string         `json:"name"`
	Location           geo.Coordinate `json:"location"`
	ConfirmedIncidents int            `json:"confirmed_incidents"`
	PendingReports     int            `json:"pending_reports"`
	Version            int64          `json:"version"`
	UpdatedAt          time.Time      `json:"updated_at"`
}

// RiskLevel - уровень опасности зоны по числу подтвержденных инцидентов
type RiskLevel string

const (
	RiskNone     RiskLevel = "none"
	RiskLow      RiskLevel = "low"
	RiskMedium   RiskLevel = "medium"
	RiskHigh     RiskLevel = "high"
	RiskCritical RiskLevel = "critical"
)

// RiskLevels в порядке возрастания
var RiskLevels = []RiskLevel{RiskNone, RiskLow, RiskMedium, RiskHigh, RiskCritical}

// RiskLevelFor возвращает уровень опасности для количества инцидентов
func RiskLevelFor(confirmed int) RiskLevel {
	switch {
	case confirmed <= 0:
		return RiskNone
	case confirmed <= 5:
		return RiskLow
	case confirmed <= 10:
		return RiskMedium
	case confirmed <= 20:
		return RiskHigh
	default:
		return RiskCritical
	}
}

// Risk возвращает уровень опасности зоны
func (z Zone) Risk() RiskLevel {
	return RiskLevelFor(z.ConfirmedIncidents)
}

// ZoneStats - сводная статистика по зонам
type ZoneStats struct {
	TotalZones         int               `json:"total_zones"`
	ActiveZones        []Zone            `json:"active_zones"`
	ConfirmedIncidents int               `json:"confirmed_incidents"`
	PendingReports     int               `json:"pending_reports"`
	ByRiskLevel        map[RiskLevel]int `json:"by_risk_level"`
}

// ZoneDistance - зона и расстояние до нее от точки запроса
type ZoneDistance struct {
	Zone       Zone
	DistanceKm float64
}

// ZoneCounters - сохраненное состояние счетчиков зоны
type ZoneCounters struct {
	ZoneID             uuid.UUID
	ConfirmedIncidents int
	PendingReports     int
	Version            int64
	UpdatedAt          time.Time
}
