package cooldown

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

// Janitor периодически очищает устаревшие записи MemoryTracker
type Janitor struct {
	tracker  *MemoryTracker
	window   time.Duration
	interval time.Duration
	logger   *logrus.Logger
	now      func() time.Time
}

// NewJanitor создает новый Janitor
func NewJanitor(tracker *MemoryTracker, window, interval time.Duration, logger *logrus.Logger) *Janitor {
	return &Janitor{
		tracker:  tracker,
		window:   window,
		interval: interval,
		logger:   logger,
		now:      time.Now,
	}
}

// Start запускает горутину очистки до отмены контекста
func (j *Janitor) Start(ctx context.Context) {
	j.logger.WithField("interval", j.interval).Info("Starting cooldown janitor...")
	go func() {
		ticker := time.NewTicker(j.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				j.logger.Info("Stopping cooldown janitor.")
				return
			case <-ticker.C:
				if removed := j.tracker.Sweep(j.now(), j.window); removed > 0 {
					j.logger.WithField("removed", removed).Debug("Expired cooldown entries swept")
				}
			}
		}
	}()
}
