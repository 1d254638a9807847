package cron

import (
	"fmt"
	"time"

	"termcompass/utils"

	robfig "github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Sweeper reclaims expired sessions.
type Sweeper interface {
	Sweep(now time.Time) int
}

// NewSessionSweeper schedules store.Sweep on spec. The caller starts and stops the scheduler.
func NewSessionSweeper(spec string, store Sweeper, logger *zap.Logger) (*robfig.Cron, error) {
	c := robfig.New()
	_, err := c.AddFunc(spec, func() {
		if n := store.Sweep(time.Now()); n > 0 {
			utils.RecordSweep(n)
			logger.Debug("[SessionSweeper] expired sessions removed", zap.Int("count", n))
		}
	})
	if err != nil {
		return nil, fmt.Errorf("invalid sweep schedule %q: %w", spec, err)
	}
	return c, nil
}
