package v1

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shenikar/danger_zones/internal/config"
	"github.com/shenikar/danger_zones/internal/models"
	"github.com/shenikar/danger_zones/internal/service"
	"github.com/shenikar/danger_zones/pkg/geo"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	zoneService service.ZoneService
	logger      *logrus.Logger
	validate    *validator.Validate
	cfg         *config.Config
}

func NewHandler(zoneService service.ZoneService, logger *logrus.Logger, cfg *config.Config) *Handler {
	return &Handler{
		zoneService: zoneService,
		logger:      logger,
		validate:    validator.New(),
		cfg:         cfg,
	}
}

// @Summary Get a list of zones
// @Description Get all danger zones in registry order with their counters and risk level
// @Tags Zones
// @Produce json
// @Success 200 {array} ZoneResponse
// @Router /zones [get]
func (h *Handler) listZones(c *gin.Context) {
	zones := h.zoneService.ListZones(c.Request.Context())
	c.JSON(http.StatusOK, ModelsToZoneResponses(zones))
}

// @Summary Get zone by ID
// @Description Get a single danger zone by its ID
// @Tags Zones
// @Produce json
// @Param id path string true "Zone ID"
// @Success 200 {object} ZoneResponse
// @Failure 400 {object} map[string]string "Invalid zone ID"
// @Failure 404 {object} map[string]string "Zone not found"
// @Router /zones/{id} [get]
func (h *Handler) getZone(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid zone ID"})
		return
	}
	log := h.logger.WithField("method", "getZone").WithField("id", id)

	zone, err := h.zoneService.GetZone(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelToZoneResponse(zone))
}

// @Summary Find the nearest zone
// @Description Resolve the danger zone closest to the given coordinate. Ties go to the zone listed first.
// @Tags Zones
// @Produce json
// @Param lat query number true "Latitude"
// @Param lon query number true "Longitude"
// @Success 200 {object} ZoneDistanceResponse
// @Success 204 "Registry is empty"
// @Failure 400 {object} map[string]string "Invalid coordinate"
// @Router /zones/nearest [get]
func (h *Handler) nearestZone(c *gin.Context) {
	log := h.logger.WithField("method", "nearestZone")

	point, err := parseCoordinate(c)
	if err != nil {
		log.WithError(err).Warn("Invalid coordinate query")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid coordinate"})
		return
	}

	nearest, err := h.zoneService.NearestZone(c.Request.Context(), point)
	if err != nil {
		h.writeError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ZoneDistanceToResponse(nearest))
}

// @Summary Find zones within radius
// @Description Get danger zones within radius_km of the coordinate, nearest first
// @Tags Zones
// @Produce json
// @Param lat query number true "Latitude"
// @Param lon query number true "Longitude"
// @Param radius_km query number true "Search radius in kilometers"
// @Success 200 {array} ZoneDistanceResponse
// @Failure 400 {object} map[string]string "Invalid coordinate or radius"
// @Router /zones/within [get]
func (h *Handler) zonesWithin(c *gin.Context) {
	log := h.logger.WithField("method", "zonesWithin")

	point, err := parseCoordinate(c)
	if err != nil {
		log.WithError(err).Warn("Invalid coordinate query")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid coordinate"})
		return
	}
	radius, err := strconv.ParseFloat(c.Query("radius_km"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid radius"})
		return
	}

	zones, err := h.zoneService.ZonesWithin(c.Request.Context(), point, radius)
	if err != nil {
		h.writeError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ZoneDistancesToResponses(zones))
}

// @Summary Submit a report
// @Description Report an incident in a zone. Three reports from distinct reporters confirm an incident. A reporter may report the same zone once per cooldown window.
// @Tags Reports
// @Accept json
// @Produce json
// @Param id path string true "Zone ID"
// @Param report body ReportRequest true "Report request"
// @Success 202 {object} ReportResponse
// @Failure 400 {object} map[string]string "Invalid zone ID or request body"
// @Failure 404 {object} map[string]string "Zone not found"
// @Failure 429 {object} map[string]string "Reporter is in cooldown for this zone"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /zones/{id}/reports [post]
func (h *Handler) submitReport(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid zone ID"})
		return
	}
	log := h.logger.WithField("method", "submitReport").WithField("zone_id", id)

	var input ReportRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.ClientTime != nil {
		log = log.WithField("client_time", *input.ClientTime)
	}

	result, err := h.zoneService.SubmitReport(c.Request.Context(), input.ReporterID, id)
	if err != nil {
		h.writeError(c, log, err)
		return
	}
	c.JSON(http.StatusAccepted, ResultToReportResponse(result))
}

// @Summary Get zone statistics
// @Description Get zones with confirmed incidents, totals and per risk level counts
// @Tags Zones
// @Produce json
// @Success 200 {object} StatsResponse
// @Router /zones/stats [get]
func (h *Handler) getStats(c *gin.Context) {
	stats := h.zoneService.Stats(c.Request.Context())
	c.JSON(http.StatusOK, StatsToResponse(stats))
}

// @Summary Stream zone changes
// @Description Server-Sent Events feed of zone changes. The event name is the change type.
// @Tags Zones
// @Produce text/event-stream
// @Success 200 {object} EventResponse
// @Router /zones/events [get]
func (h *Handler) streamEvents(c *gin.Context) {
	log := h.logger.WithField("method", "streamEvents")
	feed, cancel := h.zoneService.Subscribe()
	defer cancel()

	log.Debug("Event stream subscriber connected")
	ctx := c.Request.Context()
	c.Stream(func(_ io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case event, ok := <-feed:
			if !ok {
				return false
			}
			c.SSEvent(string(event.Type), EventToResponse(event))
			return true
		}
	})
	log.Debug("Event stream subscriber disconnected")
}

// @Summary Create a new zone
// @Description Add a danger zone to the registry. Requires API key.
// @Tags Admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param zone body CreateZoneRequest true "Zone creation request"
// @Success 201 {object} ZoneResponse
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 409 {object} map[string]string "Zone already exists"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /zones [post]
func (h *Handler) createZone(c *gin.Context) {
	var input CreateZoneRequest
	log := h.logger.WithField("method", "createZone")

	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	location := geo.Coordinate{Lat: *input.Latitude, Lon: *input.Longitude}
	zone, err := h.zoneService.AddZone(c.Request.Context(), input.Name, location)
	if err != nil {
		h.writeError(c, log, err)
		return
	}
	c.JSON(http.StatusCreated, ModelToZoneResponse(zone))
}

// @Summary Remove a zone
// @Description Remove a zone and forget its cooldown entries. Requires API key.
// @Tags Admin
// @Security ApiKeyAuth
// @Param id path string true "Zone ID"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Invalid zone ID"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Zone not found"
// @Router /zones/{id} [delete]
func (h *Handler) deleteZone(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid zone ID"})
		return
	}
	log := h.logger.WithField("method", "deleteZone").WithField("id", id)

	if err := h.zoneService.RemoveZone(c.Request.Context(), id); err != nil {
		h.writeError(c, log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Add confirmed incidents
// @Description Add confirmed incidents to a zone, bypassing corroboration. Requires API key.
// @Tags Admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Zone ID"
// @Param incidents body AddIncidentsRequest true "Incidents count"
// @Success 200 {object} ZoneResponse
// @Failure 400 {object} map[string]string "Invalid zone ID or count"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Zone not found"
// @Router /zones/{id}/incidents [post]
func (h *Handler) addIncidents(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid zone ID"})
		return
	}
	log := h.logger.WithField("method", "addIncidents").WithField("id", id)

	var input AddIncidentsRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	zone, err := h.zoneService.AddIncidents(c.Request.Context(), id, input.Count)
	if err != nil {
		h.writeError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelToZoneResponse(zone))
}

// @Summary Archive a zones snapshot
// @Description Store a JSON snapshot of all zones in object storage. Requires API key.
// @Tags Admin
// @Produce json
// @Security ApiKeyAuth
// @Success 201 {object} SnapshotResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 503 {object} map[string]string "Snapshot storage is not configured"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /admin/snapshots [post]
func (h *Handler) createSnapshot(c *gin.Context) {
	log := h.logger.WithField("method", "createSnapshot")

	object, err := h.zoneService.ArchiveSnapshot(c.Request.Context())
	if err != nil {
		h.writeError(c, log, err)
		return
	}
	c.JSON(http.StatusCreated, SnapshotResponse{Object: object})
}

// @Summary Get application health status
// @Description Get health status of the application
// @Tags System
// @Accept json
// @Produce json
// @Success 200 {object} map[string]string "Status OK"
// @Router /system/health [get]
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// writeError отображает ошибки сервиса в HTTP статусы
func (h *Handler) writeError(c *gin.Context, log *logrus.Entry, err error) {
	switch {
	case errors.Is(err, models.ErrRateLimited):
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "report rate limited for this zone"})
	case errors.Is(err, models.ErrZoneNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "zone not found"})
	case errors.Is(err, models.ErrEmptyRegistry):
		c.Status(http.StatusNoContent)
	case errors.Is(err, models.ErrInvalidCoordinate):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid coordinate"})
	case errors.Is(err, models.ErrInvalidRadius):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid radius"})
	case errors.Is(err, models.ErrInvalidCount):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid incidents count"})
	case errors.Is(err, models.ErrDuplicateZone):
		c.JSON(http.StatusConflict, gin.H{"error": "zone already exists"})
	case errors.Is(err, service.ErrSnapshotsDisabled):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "snapshot storage is not configured"})
	default:
		log.WithError(err).Error("Request failed in service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func parseCoordinate(c *gin.Context) (geo.Coordinate, error) {
	lat, err := strconv.ParseFloat(c.Query("lat"), 64)
	if err != nil {
		return geo.Coordinate{}, err
	}
	lon, err := strconv.ParseFloat(c.Query("lon"), 64)
	if err != nil {
		return geo.Coordinate{}, err
	}
	point := geo.Coordinate{Lat: lat, Lon: lon}
	if err := point.Validate(); err != nil {
		return geo.Coordinate{}, err
	}
	return point, nil
}
