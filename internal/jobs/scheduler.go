package jobs

import (
	"context"
	"time"

	"tapcoin_webapp/internal/logger"
	"tapcoin_webapp/internal/service"
	"tapcoin_webapp/internal/ws"

	"github.com/robfig/cron/v3"
)

// Scheduler runs the in-process background jobs. Today that is only the
// daily reset; the reset itself is idempotent per day, so overlapping
// triggers (cron + admin endpoint) are harmless.
type Scheduler struct {
	cron  *cron.Cron
	reset *service.ResetService
	hub   *ws.Hub
}

func NewScheduler(reset *service.ResetService, hub *ws.Hub) *Scheduler {
	return &Scheduler{
		cron:  cron.New(cron.WithLocation(time.UTC)),
		reset: reset,
		hub:   hub,
	}
}

// Start registers the reset job on the given spec and starts the cron loop.
func (s *Scheduler) Start(ctx context.Context, resetSpec string) error {
	_, err := s.cron.AddFunc(resetSpec, func() {
		runCtx, cancel := context.WithTimeout(ctx, time.Minute)
		defer cancel()

		result, err := s.reset.Run(runCtx, time.Now())
		if err != nil {
			logger.Error("daily reset failed", "err", err)
			return
		}
		if !result.AlreadyRun && s.hub != nil {
			// fire-and-forget notification; clients re-fetch /combo on it
			s.hub.Broadcast("daily_reset", result)
		}
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	logger.Info("scheduler started", "reset_spec", resetSpec)
	return nil
}

// Stop halts the cron loop and waits for a running job to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}
