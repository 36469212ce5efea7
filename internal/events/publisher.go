package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/shenikar/danger_zones/internal/models"
)

const (
	webhookQueueKey = "zone_events"
)

// Publisher - интерфейс для публикации событий изменения зон
type Publisher interface {
	Publish(ctx context.Context, event models.ZoneEvent) error
}

// RedisPublisher - реализация Publisher, складывающая события в очередь Redis для вебхуков
type RedisPublisher struct {
	redisClient *redis.Client
}

// NewRedisPublisher создает новый RedisPublisher
func NewRedisPublisher(client *redis.Client) *RedisPublisher {
	return &RedisPublisher{
		redisClient: client,
	}
}

// Publish публикует событие в очередь Redis
func (p *RedisPublisher) Publish(ctx context.Context, event models.ZoneEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal zone event: %w", err)
	}

	// LPUSH в левую часть списка, воркер забирает справа
	if err := p.redisClient.LPush(ctx, webhookQueueKey, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish zone event to Redis: %w", err)
	}
	return nil
}

// MultiPublisher рассылает событие во все публикаторы и собирает их ошибки
type MultiPublisher []Publisher

func (m MultiPublisher) Publish(ctx context.Context, event models.ZoneEvent) error {
	var errs []error
	for _, p := range m {
		if err := p.Publish(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
