// Package scheduler runs periodic maintenance tasks in serve mode,
// currently just the expired-cache sweep.
package scheduler

import (
	"context"
	"time"

	"go.uber.org/zap"
)

type Task func(ctx context.Context) error

// Every runs task immediately and then on every tick until ctx is
// cancelled. Task errors are logged, never fatal.
func Every(ctx context.Context, log *zap.Logger, interval time.Duration, name string, task Task) {
	t := time.NewTicker(interval)
	defer t.Stop()

	run := func() {
		if err := task(ctx); err != nil {
			log.Warn("scheduled task failed", zap.String("task", name), zap.Error(err))
		}
	}

	run()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			run()
		}
	}
}
