package events

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/shenikar/danger_zones/internal/config"
	"github.com/shenikar/danger_zones/internal/events/mocks"
	"github.com/shenikar/danger_zones/internal/models"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func testEvent() models.ZoneEvent {
	id := uuid.New()
	return models.ZoneEvent{
		Type:       models.EventIncidentConfirmed,
		ZoneID:     id,
		Zone:       models.Zone{ID: id, Name: "La Pradera", ConfirmedIncidents: 2},
		ReporterID: "device-1",
		OccurredAt: time.Date(2024, 11, 6, 10, 0, 0, 0, time.UTC),
	}
}

func TestHub_SubscribeAndPublish(t *testing.T) {
	hub := NewHub()
	ch1, cancel1 := hub.Subscribe()
	ch2, cancel2 := hub.Subscribe()
	defer cancel2()
	assert.Equal(t, 2, hub.Subscribers())

	event := testEvent()
	require.NoError(t, hub.Publish(context.Background(), event))

	assert.Equal(t, event, <-ch1)
	assert.Equal(t, event, <-ch2)

	cancel1()
	cancel1() // повторная отписка безопасна
	assert.Equal(t, 1, hub.Subscribers())
	_, open := <-ch1
	assert.False(t, open)
}

func TestHub_SlowSubscriberDropsEvents(t *testing.T) {
	hub := NewHub()
	_, cancel := hub.Subscribe()
	defer cancel()

	for i := 0; i < subscriberBuffer+5; i++ {
		require.NoError(t, hub.Publish(context.Background(), testEvent()))
	}
	assert.Equal(t, int64(5), hub.Dropped())
}

func TestMultiPublisher(t *testing.T) {
	ctrl := gomock.NewController(t)
	first := mocks.NewMockPublisher(ctrl)
	second := mocks.NewMockPublisher(ctrl)
	ctx := context.Background()
	event := testEvent()
	failure := errors.New("broker down")

	// Ошибка одного публикатора не мешает остальным
	first.EXPECT().Publish(ctx, event).Return(failure).Times(1)
	second.EXPECT().Publish(ctx, event).Return(nil).Times(1)

	err := MultiPublisher{first, second}.Publish(ctx, event)
	assert.ErrorIs(t, err, failure)
}

type fakeWriter struct {
	messages []kafka.Message
	err      error
	closed   bool
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if f.err != nil {
		return f.err
	}
	f.messages = append(f.messages, msgs...)
	return nil
}

func (f *fakeWriter) Close() error {
	f.closed = true
	return nil
}

func TestKafkaPublisher_Publish(t *testing.T) {
	writer := &fakeWriter{}
	publisher := NewKafkaPublisher(writer)
	event := testEvent()

	require.NoError(t, publisher.Publish(context.Background(), event))
	require.Len(t, writer.messages, 1)

	msg := writer.messages[0]
	assert.Equal(t, event.ZoneID.String(), string(msg.Key))
	assert.Equal(t, "event_type", msg.Headers[0].Key)
	assert.Equal(t, string(models.EventIncidentConfirmed), string(msg.Headers[0].Value))

	var decoded models.ZoneEvent
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, event.ZoneID, decoded.ZoneID)
	assert.Equal(t, 2, decoded.Zone.ConfirmedIncidents)

	require.NoError(t, publisher.Close())
	assert.True(t, writer.closed)
}

func TestKafkaPublisher_WriteError(t *testing.T) {
	publisher := NewKafkaPublisher(&fakeWriter{err: errors.New("no leader")})
	err := publisher.Publish(context.Background(), testEvent())
	assert.ErrorContains(t, err, "failed to publish zone event to Kafka")
}

func newTestWorker(url, secret string, retries int) *WebhookWorker {
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})
	cfg := &config.Config{
		WebhookURL:        url,
		WebhookSecret:     secret,
		WebhookTimeout:    time.Second,
		WebhookMaxRetries: retries,
		WebhookBaseDelay:  time.Millisecond,
	}
	return NewWebhookWorker(nil, logger, cfg)
}

func TestWebhookWorker_DeliverSigned(t *testing.T) {
	payload, err := json.Marshal(testEvent())
	require.NoError(t, err)

	var gotSignature, gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		gotSignature = r.Header.Get("X-Webhook-Signature")
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	worker := newTestWorker(srv.URL, "s3cr3t", 3)
	require.NoError(t, worker.deliver(context.Background(), testEvent(), string(payload)))

	assert.Equal(t, string(payload), gotBody)
	assert.Equal(t, generateHMACSHA256(string(payload), "s3cr3t"), gotSignature)
}

func TestWebhookWorker_RetriesThenSucceeds(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	worker := newTestWorker(srv.URL, "", 5)
	require.NoError(t, worker.deliver(context.Background(), testEvent(), "{}"))
	assert.Equal(t, int32(3), calls.Load())
}

func TestWebhookWorker_GivesUp(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	worker := newTestWorker(srv.URL, "", 2)
	err := worker.deliver(context.Background(), testEvent(), "{}")
	assert.ErrorContains(t, err, "after 2 attempts")
	assert.Equal(t, int32(2), calls.Load())
}

func TestWebhookWorker_NoURL(t *testing.T) {
	worker := newTestWorker("", "", 3)
	assert.NoError(t, worker.deliver(context.Background(), testEvent(), "{}"))
}
