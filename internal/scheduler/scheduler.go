package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/jtcarver/hoopsight/internal/service"
)

// Scheduler keeps the snapshot cache warm by recomputing the common splits
// on a cron schedule.
type Scheduler struct {
	s            gocron.Scheduler
	statsService *service.StatsService
	cronExpr     string
}

func NewScheduler(statsService *service.StatsService, cronExpr string) (*Scheduler, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	return &Scheduler{
		s:            s,
		statsService: statsService,
		cronExpr:     cronExpr,
	}, nil
}

func (s *Scheduler) Start() error {
	_, err := s.s.NewJob(
		gocron.CronJob(s.cronExpr, false),
		gocron.NewTask(s.refreshSnapshots),
	)
	if err != nil {
		return fmt.Errorf("failed to create refresh job: %w", err)
	}

	s.s.Start()
	return nil
}

func (s *Scheduler) Stop() error {
	return s.s.Shutdown()
}

func (s *Scheduler) refreshSnapshots() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	start := time.Now()
	if err := s.statsService.Refresh(ctx); err != nil {
		slog.Error("Failed to refresh snapshots", "error", err)
		return
	}
	slog.Info("Refreshed snapshots", "duration", time.Since(start))
}
