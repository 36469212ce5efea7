package v1

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shenikar/danger_zones/internal/config"
	"github.com/shenikar/danger_zones/internal/models"
	"github.com/shenikar/danger_zones/internal/service"
	"github.com/shenikar/danger_zones/internal/service/mocks"
	"github.com/shenikar/danger_zones/pkg/geo"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// newTestHandler создает новый экземпляр Handler с мокированным сервисом
func newTestHandler(t *testing.T) (*Handler, *mocks.MockZoneService, *gin.Engine) {
	ctrl := gomock.NewController(t)
	mockService := mocks.NewMockZoneService(ctrl)

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах

	cfg := &config.Config{
		APIKeys: []string{"test-api-key"},
	}

	handler := NewHandler(mockService, logger, cfg)

	// Настройка Gin роутера для тестов
	gin.SetMode(gin.TestMode)
	router := gin.New()
	api := router.Group("/api/v1")
	handler.RegisterRoutes(api)

	return handler, mockService, router
}

// makeRequest - вспомогательная функция для выполнения HTTP-запросов
func makeRequest(router *gin.Engine, method, url string, body io.Reader, headers ...map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, url, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, h := range headers {
		for key, value := range h {
			req.Header.Set(key, value)
		}
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

var apiKeyHeader = map[string]string{"X-API-Key": "test-api-key"}

func sampleZone(confirmed, pending int) models.Zone {
	return models.Zone{
		ID:                 uuid.New(),
		Name:               "Centro Histórico",
		Location:           geo.Coordinate{Lat: 20.5888, Lon: -100.3899},
		ConfirmedIncidents: confirmed,
		PendingReports:     pending,
	}
}

func TestListZones(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	zones := []models.Zone{sampleZone(0, 0), sampleZone(12, 1)}

	mockService.EXPECT().ListZones(gomock.Any()).Return(zones).Times(1)

	w := makeRequest(router, "GET", "/api/v1/zones", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp []ZoneResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp, 2)
	assert.Equal(t, zones[0].ID, resp[0].ID)
	assert.Equal(t, "none", resp[0].RiskLevel)
	assert.Equal(t, "high", resp[1].RiskLevel)
	assert.Equal(t, 20.5888, resp[1].Latitude)
}

func TestGetZone_NotFound(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	id := uuid.New()

	mockService.EXPECT().
		GetZone(gomock.Any(), id).
		Return(models.Zone{}, fmt.Errorf("service: could not get zone: %w", models.ErrZoneNotFound)).
		Times(1)

	w := makeRequest(router, "GET", "/api/v1/zones/"+id.String(), nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetZone_InvalidID(t *testing.T) {
	_, mockService, router := newTestHandler(t)

	mockService.EXPECT().GetZone(gomock.Any(), gomock.Any()).Times(0)

	w := makeRequest(router, "GET", "/api/v1/zones/not-a-uuid", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid zone ID")
}

func TestSubmitReport_StatusMapping(t *testing.T) {
	zone := sampleZone(1, 0)
	tests := []struct {
		name       string
		result     models.ReportResult
		err        error
		wantStatus int
	}{
		{
			name: "pending",
			result: models.ReportResult{
				Outcome: models.OutcomePending,
				Zone:    models.Zone{ID: zone.ID, PendingReports: 1, ConfirmedIncidents: 1},
			},
			wantStatus: http.StatusAccepted,
		},
		{
			name: "confirmed",
			result: models.ReportResult{
				Outcome: models.OutcomeConfirmed,
				Zone:    models.Zone{ID: zone.ID, ConfirmedIncidents: 2},
			},
			wantStatus: http.StatusAccepted,
		},
		{
			name:       "rate limited",
			err:        fmt.Errorf("service: could not submit report: %w", models.ErrRateLimited),
			wantStatus: http.StatusTooManyRequests,
		},
		{
			name:       "unknown zone",
			err:        fmt.Errorf("service: could not submit report: %w", models.ErrZoneNotFound),
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "unexpected",
			err:        fmt.Errorf("service: could not submit report: boom"),
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, mockService, router := newTestHandler(t)

			mockService.EXPECT().
				SubmitReport(gomock.Any(), "u1", zone.ID).
				Return(tt.result, tt.err).
				Times(1)

			body := `{"reporter_id":"u1","client_time":"2024-11-06T10:30:00Z"}`
			w := makeRequest(router, "POST", "/api/v1/zones/"+zone.ID.String()+"/reports", strings.NewReader(body))

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.err == nil {
				var resp ReportResponse
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
				assert.Equal(t, string(tt.result.Outcome), resp.Outcome)
				assert.Equal(t, tt.result.Zone.PendingReports, resp.PendingReports)
				assert.Equal(t, tt.result.Zone.ConfirmedIncidents, resp.ConfirmedIncidents)
			}
		})
	}
}

func TestSubmitReport_ValidationError(t *testing.T) {
	_, mockService, router := newTestHandler(t)

	mockService.EXPECT().SubmitReport(gomock.Any(), gomock.Any(), gomock.Any()).Times(0) // Сервис не должен вызываться

	w := makeRequest(router, "POST", "/api/v1/zones/"+uuid.NewString()+"/reports", strings.NewReader(`{"client_time":"2024-11-06T10:30:00Z"}`))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = makeRequest(router, "POST", "/api/v1/zones/"+uuid.NewString()+"/reports", strings.NewReader(`{"reporter_id":`))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid request body")
}

func TestNearestZone(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	zone := sampleZone(3, 0)

	mockService.EXPECT().
		NearestZone(gomock.Any(), geo.Coordinate{Lat: 20.59, Lon: -100.39}).
		Return(models.ZoneDistance{Zone: zone, DistanceKm: 0.15}, nil).
		Times(1)

	w := makeRequest(router, "GET", "/api/v1/zones/nearest?lat=20.59&lon=-100.39", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp ZoneDistanceResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, zone.ID, resp.ID)
	assert.Equal(t, 0.15, resp.DistanceKm)
	assert.Equal(t, "low", resp.RiskLevel)
}

func TestNearestZone_EmptyRegistry(t *testing.T) {
	_, mockService, router := newTestHandler(t)

	mockService.EXPECT().
		NearestZone(gomock.Any(), gomock.Any()).
		Return(models.ZoneDistance{}, fmt.Errorf("service: could not resolve nearest zone: %w", models.ErrEmptyRegistry)).
		Times(1)

	w := makeRequest(router, "GET", "/api/v1/zones/nearest?lat=0&lon=0", nil)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestNearestZone_InvalidCoordinate(t *testing.T) {
	_, mockService, router := newTestHandler(t)

	mockService.EXPECT().NearestZone(gomock.Any(), gomock.Any()).Times(0)

	for _, query := range []string{"lat=91&lon=0", "lat=10&lon=-181", "lat=abc&lon=0", "lon=0", "lat=NaN&lon=0"} {
		w := makeRequest(router, "GET", "/api/v1/zones/nearest?"+query, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, query)
	}
}

func TestZonesWithin(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	near, far := sampleZone(0, 0), sampleZone(1, 0)

	mockService.EXPECT().
		ZonesWithin(gomock.Any(), geo.Coordinate{Lat: 20.59, Lon: -100.39}, 2.5).
		Return([]models.ZoneDistance{{Zone: near, DistanceKm: 0.2}, {Zone: far, DistanceKm: 1.9}}, nil).
		Times(1)

	w := makeRequest(router, "GET", "/api/v1/zones/within?lat=20.59&lon=-100.39&radius_km=2.5", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp []ZoneDistanceResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp, 2)
	assert.Equal(t, near.ID, resp[0].ID)
	assert.Equal(t, far.ID, resp[1].ID)
}

func TestZonesWithin_InvalidRadius(t *testing.T) {
	_, mockService, router := newTestHandler(t)

	mockService.EXPECT().
		ZonesWithin(gomock.Any(), gomock.Any(), -1.0).
		Return(nil, fmt.Errorf("service: could not search zones within radius: %w", models.ErrInvalidRadius)).
		Times(1)

	w := makeRequest(router, "GET", "/api/v1/zones/within?lat=20.59&lon=-100.39&radius_km=-1", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = makeRequest(router, "GET", "/api/v1/zones/within?lat=20.59&lon=-100.39", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetStats(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	active := sampleZone(3, 0)

	mockService.EXPECT().Stats(gomock.Any()).Return(models.ZoneStats{
		TotalZones:         31,
		ActiveZones:        []models.Zone{active},
		ConfirmedIncidents: 3,
		ByRiskLevel:        map[models.RiskLevel]int{models.RiskNone: 30, models.RiskLow: 1},
	}).Times(1)

	w := makeRequest(router, "GET", "/api/v1/zones/stats", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp StatsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 31, resp.TotalZones)
	assert.Equal(t, 30, resp.ByRiskLevel["none"])
	require.Len(t, resp.ActiveZones, 1)
	assert.Equal(t, active.ID, resp.ActiveZones[0].ID)
}

// closeNotifyRecorder добавляет CloseNotify, который требуется gin для c.Stream
type closeNotifyRecorder struct {
	*httptest.ResponseRecorder
	closed chan bool
}

func (r *closeNotifyRecorder) CloseNotify() <-chan bool {
	return r.closed
}

func TestStreamEvents(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	zone := sampleZone(1, 0)

	feed := make(chan models.ZoneEvent, 1)
	feed <- models.ZoneEvent{
		Type:       models.EventIncidentConfirmed,
		ZoneID:     zone.ID,
		Zone:       zone,
		OccurredAt: time.Date(2024, 11, 6, 10, 30, 0, 0, time.UTC),
	}
	close(feed)

	cancelled := false
	mockService.EXPECT().
		Subscribe().
		Return((<-chan models.ZoneEvent)(feed), func() { cancelled = true }).
		Times(1)

	req := httptest.NewRequest("GET", "/api/v1/zones/events", nil)
	w := &closeNotifyRecorder{ResponseRecorder: httptest.NewRecorder(), closed: make(chan bool)}
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/event-stream")
	assert.Contains(t, w.Body.String(), "event:incident.confirmed")
	assert.Contains(t, w.Body.String(), zone.ID.String())
	assert.True(t, cancelled)
}

func TestCreateZone(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	created := models.Zone{ID: uuid.New(), Name: "Nueva Zona", Location: geo.Coordinate{Lat: 0, Lon: -100.4}}

	mockService.EXPECT().
		AddZone(gomock.Any(), "Nueva Zona", geo.Coordinate{Lat: 0, Lon: -100.4}).
		Return(created, nil).
		Times(1)

	body := `{"name":"Nueva Zona","latitude":0,"longitude":-100.4}`
	w := makeRequest(router, "POST", "/api/v1/zones", strings.NewReader(body), apiKeyHeader)

	assert.Equal(t, http.StatusCreated, w.Code)
	var resp ZoneResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, created.ID, resp.ID)
}

func TestCreateZone_Unauthorized(t *testing.T) {
	_, mockService, router := newTestHandler(t)

	mockService.EXPECT().AddZone(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	body := `{"name":"Nueva Zona","latitude":20.6,"longitude":-100.4}`
	w := makeRequest(router, "POST", "/api/v1/zones", strings.NewReader(body))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = makeRequest(router, "POST", "/api/v1/zones", strings.NewReader(body), map[string]string{"X-API-Key": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCreateZone_ValidationError(t *testing.T) {
	_, mockService, router := newTestHandler(t)

	mockService.EXPECT().AddZone(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	for _, body := range []string{
		`{"latitude":20.6,"longitude":-100.4}`,
		`{"name":"Zona","longitude":-100.4}`,
		`{"name":"Zona","latitude":120,"longitude":-100.4}`,
	} {
		w := makeRequest(router, "POST", "/api/v1/zones", strings.NewReader(body), apiKeyHeader)
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
	}
}

func TestCreateZone_Duplicate(t *testing.T) {
	_, mockService, router := newTestHandler(t)

	mockService.EXPECT().
		AddZone(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(models.Zone{}, fmt.Errorf("service: could not add zone: %w", models.ErrDuplicateZone)).
		Times(1)

	body := `{"name":"Zona","latitude":20.6,"longitude":-100.4}`
	w := makeRequest(router, "POST", "/api/v1/zones", strings.NewReader(body), map[string]string{"Authorization": "Bearer test-api-key"})

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestDeleteZone(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	id := uuid.New()

	mockService.EXPECT().RemoveZone(gomock.Any(), id).Return(nil).Times(1)

	w := makeRequest(router, "DELETE", "/api/v1/zones/"+id.String(), nil, apiKeyHeader)

	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestAddIncidents(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	zone := sampleZone(8, 0)

	mockService.EXPECT().AddIncidents(gomock.Any(), zone.ID, 5).Return(zone, nil).Times(1)

	w := makeRequest(router, "POST", "/api/v1/zones/"+zone.ID.String()+"/incidents", strings.NewReader(`{"count":5}`), apiKeyHeader)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp ZoneResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "medium", resp.RiskLevel)
}

func TestAddIncidents_InvalidCount(t *testing.T) {
	_, mockService, router := newTestHandler(t)

	mockService.EXPECT().AddIncidents(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	w := makeRequest(router, "POST", "/api/v1/zones/"+uuid.NewString()+"/incidents", strings.NewReader(`{"count":0}`), apiKeyHeader)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateSnapshot(t *testing.T) {
	_, mockService, router := newTestHandler(t)

	mockService.EXPECT().ArchiveSnapshot(gomock.Any()).Return("zones/2024/11/06/20241106T103000.000Z.json", nil).Times(1)

	w := makeRequest(router, "POST", "/api/v1/admin/snapshots", nil, apiKeyHeader)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "20241106T103000.000Z.json")
}

func TestCreateSnapshot_Disabled(t *testing.T) {
	_, mockService, router := newTestHandler(t)

	mockService.EXPECT().ArchiveSnapshot(gomock.Any()).Return("", service.ErrSnapshotsDisabled).Times(1)

	w := makeRequest(router, "POST", "/api/v1/admin/snapshots", nil, apiKeyHeader)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestHealthCheck(t *testing.T) {
	_, _, router := newTestHandler(t)

	w := makeRequest(router, "GET", "/api/v1/system/health", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}
