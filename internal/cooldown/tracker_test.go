package cooldown

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const window = 300 * time.Second

func TestMemoryTracker_IsAllowed(t *testing.T) {
	ctx := context.Background()
	tr := NewMemoryTracker()
	zoneID := uuid.New()
	t0 := time.Date(2024, 10, 14, 12, 0, 0, 0, time.UTC)

	ok, err := tr.IsAllowed(ctx, "u1", zoneID, t0, window)
	require.NoError(t, err)
	assert.True(t, ok, "нет записи - репорт разрешен")

	require.NoError(t, tr.RecordAccepted(ctx, "u1", zoneID, t0))

	ok, _ = tr.IsAllowed(ctx, "u1", zoneID, t0.Add(299*time.Second), window)
	assert.False(t, ok)

	ok, _ = tr.IsAllowed(ctx, "u1", zoneID, t0.Add(300*time.Second), window)
	assert.True(t, ok, "ровно окно cooldown - разрешено")

	// Другой репортер и другая зона независимы
	ok, _ = tr.IsAllowed(ctx, "u2", zoneID, t0, window)
	assert.True(t, ok)
	ok, _ = tr.IsAllowed(ctx, "u1", uuid.New(), t0, window)
	assert.True(t, ok)
}

func TestMemoryTracker_RecordOverwrites(t *testing.T) {
	ctx := context.Background()
	tr := NewMemoryTracker()
	zoneID := uuid.New()
	t0 := time.Unix(0, 0)

	require.NoError(t, tr.RecordAccepted(ctx, "u1", zoneID, t0))
	require.NoError(t, tr.RecordAccepted(ctx, "u1", zoneID, t0.Add(time.Hour)))

	last, ok, err := tr.LastAcceptedAt(ctx, "u1", zoneID)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, t0.Add(time.Hour), last)
	assert.Equal(t, 1, tr.Len())
}

func TestMemoryTracker_Sweep(t *testing.T) {
	ctx := context.Background()
	tr := NewMemoryTracker()
	zoneID := uuid.New()
	now := time.Unix(10_000, 0)

	require.NoError(t, tr.RecordAccepted(ctx, "old", zoneID, now.Add(-window)))
	require.NoError(t, tr.RecordAccepted(ctx, "fresh", zoneID, now.Add(-time.Second)))

	assert.Equal(t, 1, tr.Sweep(now, window))

	_, ok, _ := tr.LastAcceptedAt(ctx, "old", zoneID)
	assert.False(t, ok)
	_, ok, _ = tr.LastAcceptedAt(ctx, "fresh", zoneID)
	assert.True(t, ok)
}

func TestMemoryTracker_ForgetZone(t *testing.T) {
	ctx := context.Background()
	tr := NewMemoryTracker()
	a, b := uuid.New(), uuid.New()
	now := time.Now()

	require.NoError(t, tr.RecordAccepted(ctx, "u1", a, now))
	require.NoError(t, tr.RecordAccepted(ctx, "u2", a, now))
	require.NoError(t, tr.RecordAccepted(ctx, "u1", b, now))

	require.NoError(t, tr.ForgetZone(ctx, a))
	assert.Equal(t, 1, tr.Len())
	_, ok, _ := tr.LastAcceptedAt(ctx, "u1", b)
	assert.True(t, ok)
}

func TestJanitor_SweepsUntilCanceled(t *testing.T) {
	tr := NewMemoryTracker()
	require.NoError(t, tr.RecordAccepted(context.Background(), "u1", uuid.New(), time.Unix(0, 0)))

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	j := NewJanitor(tr, window, 5*time.Millisecond, logger)
	j.Start(ctx)

	assert.Eventually(t, func() bool { return tr.Len() == 0 }, time.Second, 5*time.Millisecond)
}

func TestRedisKey(t *testing.T) {
	zoneID := uuid.MustParse("6f1c2f7e-8f5a-4c43-9d59-1b2a7f0c9e11")
	assert.Equal(t, "cooldown:6f1c2f7e-8f5a-4c43-9d59-1b2a7f0c9e11:device-1", redisKey("device-1", zoneID))
}
