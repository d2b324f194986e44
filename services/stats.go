package services

import (
	"context"
	"time"

	"healthtrack/database"

	"github.com/jinzhu/now"
)

type StatsStore interface {
	CountTotals(ctx context.Context, dayStart, weekStart time.Time) (database.Totals, error)
}

var weekFromMonday = &now.Config{WeekStartDay: time.Monday}

// StatsService reports the dashboard totals.
type StatsService struct {
	store StatsStore
	clock func() time.Time
}

func NewStatsService(store StatsStore) *StatsService {
	return &StatsService{store: store, clock: time.Now}
}

// Snapshot counts clients, programs and enrollments, plus enrollments made since
// the start of the current day and week (local time, weeks start on Monday).
func (s *StatsService) Snapshot(ctx context.Context) (database.Totals, error) {
	n := weekFromMonday.With(s.clock())

	totals, err := s.store.CountTotals(ctx, n.BeginningOfDay(), n.BeginningOfWeek())
	if err != nil {
		return totals, unexpected(err)
	}
	return totals, nil
}
