package database

import (
	"context"
	"time"

	"healthtrack/models"
)

// Totals is a point-in-time count of the main tables.
type Totals struct {
	Clients          int64 `json:"clients"`
	Programs         int64 `json:"programs"`
	Enrollments      int64 `json:"enrollments"`
	EnrolledToday    int64 `json:"enrolledToday"`
	EnrolledThisWeek int64 `json:"enrolledThisWeek"`
}

// CountTotals counts clients, programs and enrollments, and the enrollments made
// since dayStart and weekStart.
func (s *Store) CountTotals(ctx context.Context, dayStart, weekStart time.Time) (Totals, error) {
	var t Totals
	db := s.DB.WithContext(ctx)

	if err := db.Model(&models.Client{}).Count(&t.Clients).Error; err != nil {
		return t, Classify(err)
	}
	if err := db.Model(&models.Program{}).Count(&t.Programs).Error; err != nil {
		return t, Classify(err)
	}
	if err := db.Model(&models.Enrollment{}).Count(&t.Enrollments).Error; err != nil {
		return t, Classify(err)
	}
	if err := db.Model(&models.Enrollment{}).Where("enrolled_at >= ?", dayStart).Count(&t.EnrolledToday).Error; err != nil {
		return t, Classify(err)
	}
	if err := db.Model(&models.Enrollment{}).Where("enrolled_at >= ?", weekStart).Count(&t.EnrolledThisWeek).Error; err != nil {
		return t, Classify(err)
	}
	return t, nil
}
