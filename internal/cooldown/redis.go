package cooldown

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix = "cooldown"
	// нулевой TTL в Redis означает "без срока", поэтому записи живут хотя бы minTTL
	minTTL = time.Second
)

// RedisTracker хранит отметки в Redis с TTL, равным окну cooldown,
// поэтому устаревшие записи удаляются самим Redis
type RedisTracker struct {
	redisClient *redis.Client
	ttl         time.Duration
}

// NewRedisTracker создает новый RedisTracker
func NewRedisTracker(client *redis.Client, ttl time.Duration) *RedisTracker {
	return &RedisTracker{
		redisClient: client,
		ttl:         ttl,
	}
}

func ttlFor(d time.Duration) time.Duration {
	if d < minTTL {
		return minTTL
	}
	return d
}

func redisKey(reporterID string, zoneID uuid.UUID) string {
	return fmt.Sprintf("%s:%s:%s", keyPrefix, zoneID.String(), reporterID)
}

func (r *RedisTracker) LastAcceptedAt(ctx context.Context, reporterID string, zoneID uuid.UUID) (time.Time, bool, error) {
	val, err := r.redisClient.Get(ctx, redisKey(reporterID, zoneID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return time.Time{}, false, nil
		}
		return time.Time{}, false, fmt.Errorf("failed to get cooldown entry: %w", err)
	}

	nanos, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("failed to parse cooldown entry %q: %w", val, err)
	}
	return time.Unix(0, nanos), true, nil
}

func (r *RedisTracker) RecordAccepted(ctx context.Context, reporterID string, zoneID uuid.UUID, at time.Time) error {
	val := strconv.FormatInt(at.UnixNano(), 10)
	if err := r.redisClient.Set(ctx, redisKey(reporterID, zoneID), val, ttlFor(r.ttl)).Err(); err != nil {
		return fmt.Errorf("failed to set cooldown entry: %w", err)
	}
	return nil
}

func (r *RedisTracker) IsAllowed(ctx context.Context, reporterID string, zoneID uuid.UUID, now time.Time, cooldown time.Duration) (bool, error) {
	last, ok, err := r.LastAcceptedAt(ctx, reporterID, zoneID)
	if err != nil {
		return false, err
	}
	return allowed(last, ok, now, cooldown), nil
}

// TryAcquire атомарно проверяет и записывает отметку через SET NX PX:
// ключ живет ровно окно cooldown, поэтому его наличие и есть запрет.
func (r *RedisTracker) TryAcquire(ctx context.Context, reporterID string, zoneID uuid.UUID, now time.Time, cooldown time.Duration) (bool, error) {
	val := strconv.FormatInt(now.UnixNano(), 10)
	k := redisKey(reporterID, zoneID)

	if cooldown <= 0 {
		if err := r.redisClient.Set(ctx, k, val, minTTL).Err(); err != nil {
			return false, fmt.Errorf("failed to set cooldown entry: %w", err)
		}
		return true, nil
	}

	acquired, err := r.redisClient.SetNX(ctx, k, val, cooldown).Result()
	if err != nil {
		return false, fmt.Errorf("failed to acquire cooldown entry: %w", err)
	}
	return acquired, nil
}

// ForgetZone удаляет все записи зоны через SCAN, не блокируя Redis
func (r *RedisTracker) ForgetZone(ctx context.Context, zoneID uuid.UUID) error {
	pattern := fmt.Sprintf("%s:%s:*", keyPrefix, zoneID.String())
	iter := r.redisClient.Scan(ctx, 0, pattern, 100).Iterator()

	keys := make([]string, 0)
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to scan cooldown entries: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}
	if err := r.redisClient.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to delete cooldown entries: %w", err)
	}
	return nil
}
