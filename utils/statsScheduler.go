package utils

import (
	"context"
	"fmt"
	"time"

	"healthtrack/services"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// StartStatsScheduler logs an enrollment snapshot on the given cron schedule.
// The returned cron is already running; Stop it on shutdown.
func StartStatsScheduler(schedule string, stats *services.StatsService, log *zap.Logger) (*cron.Cron, error) {
	log = log.Named("stats-scheduler")

	c := cron.New()
	_, err := c.AddFunc(schedule, func() {
		LogStatsSnapshot(context.Background(), stats, log)
	})
	if err != nil {
		return nil, fmt.Errorf("invalid STATS_CRON %q: %w", schedule, err)
	}

	c.Start()
	log.Info("stats scheduler started", zap.String("schedule", schedule))
	return c, nil
}

// LogStatsSnapshot takes one snapshot and logs it.
func LogStatsSnapshot(ctx context.Context, stats *services.StatsService, log *zap.Logger) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	totals, err := stats.Snapshot(ctx)
	if err != nil {
		log.Error("error taking stats snapshot", zap.Error(err))
		return
	}

	log.Info("stats snapshot",
		zap.Int64("clients", totals.Clients),
		zap.Int64("programs", totals.Programs),
		zap.Int64("enrollments", totals.Enrollments),
		zap.Int64("enrolled_today", totals.EnrolledToday),
		zap.Int64("enrolled_this_week", totals.EnrolledThisWeek),
	)
}
