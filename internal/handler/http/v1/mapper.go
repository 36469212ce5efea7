package v1

import "github.com/shenikar/danger_zones/internal/models"

// ModelToZoneResponse преобразует доменную модель в DTO для ответа
func ModelToZoneResponse(zone models.Zone) ZoneResponse {
	return ZoneResponse{
		ID:                 zone.ID,
		Name:               zone.Name,
		Latitude:           zone.Location.Lat,
		Longitude:          zone.Location.Lon,
		ConfirmedIncidents: zone.ConfirmedIncidents,
		PendingReports:     zone.PendingReports,
		RiskLevel:          string(zone.Risk()),
		UpdatedAt:          zone.UpdatedAt,
	}
}

// ModelsToZoneResponses преобразует слайс моделей в слайс DTO
func ModelsToZoneResponses(zones []models.Zone) []ZoneResponse {
	responses := make([]ZoneResponse, len(zones))
	for i, zone := range zones {
		responses[i] = ModelToZoneResponse(zone)
	}
	return responses
}

func ZoneDistanceToResponse(zd models.ZoneDistance) ZoneDistanceResponse {
	return ZoneDistanceResponse{
		ZoneResponse: ModelToZoneResponse(zd.Zone),
		DistanceKm:   zd.DistanceKm,
	}
}

func ZoneDistancesToResponses(items []models.ZoneDistance) []ZoneDistanceResponse {
	responses := make([]ZoneDistanceResponse, len(items))
	for i, item := range items {
		responses[i] = ZoneDistanceToResponse(item)
	}
	return responses
}

// ResultToReportResponse преобразует результат репорта в DTO
func ResultToReportResponse(result models.ReportResult) ReportResponse {
	return ReportResponse{
		ZoneID:             result.Zone.ID,
		Outcome:            string(result.Outcome),
		PendingReports:     result.Zone.PendingReports,
		ConfirmedIncidents: result.Zone.ConfirmedIncidents,
		RiskLevel:          string(result.Zone.Risk()),
		AcceptedAt:         result.AcceptedAt,
	}
}

// StatsToResponse преобразует статистику в DTO
func StatsToResponse(stats models.ZoneStats) StatsResponse {
	byLevel := make(map[string]int, len(stats.ByRiskLevel))
	for level, count := range stats.ByRiskLevel {
		byLevel[string(level)] = count
	}
	return StatsResponse{
		TotalZones:         stats.TotalZones,
		ConfirmedIncidents: stats.ConfirmedIncidents,
		PendingReports:     stats.PendingReports,
		ByRiskLevel:        byLevel,
		ActiveZones:        ModelsToZoneResponses(stats.ActiveZones),
	}
}

func EventToResponse(event models.ZoneEvent) EventResponse {
	return EventResponse{
		Type:       string(event.Type),
		Zone:       ModelToZoneResponse(event.Zone),
		ReporterID: event.ReporterID,
		OccurredAt: event.OccurredAt,
	}
}
