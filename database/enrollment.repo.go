package database

import (
	"context"

	"healthtrack/models"

	"gorm.io/gorm"
)

func orderByEnrolledAt(db *gorm.DB) *gorm.DB {
	return db.Order("enrolled_at desc").Order("id desc")
}

// ListEnrollments returns every enrollment with client and program, newest first.
func (s *Store) ListEnrollments(ctx context.Context) ([]models.Enrollment, error) {
	enrollments := []models.Enrollment{}
	err := orderByEnrolledAt(s.DB.WithContext(ctx)).
		Preload("Client").
		Preload("Program").
		Find(&enrollments).Error
	if err != nil {
		return nil, Classify(err)
	}
	return enrollments, nil
}

// FindEnrollmentByPair looks up the enrollment of a client in a program.
func (s *Store) FindEnrollmentByPair(ctx context.Context, clientID, programID uint) (*models.Enrollment, error) {
	var enrollment models.Enrollment
	err := s.DB.WithContext(ctx).
		Where("client_id = ? AND program_id = ?", clientID, programID).
		First(&enrollment).Error
	if err != nil {
		return nil, Classify(err)
	}
	return &enrollment, nil
}

// EnrolledProgramIDs returns the ids of programs the client is enrolled in.
func (s *Store) EnrolledProgramIDs(ctx context.Context, clientID uint) ([]uint, error) {
	var ids []uint
	err := s.DB.WithContext(ctx).
		Model(&models.Enrollment{}).
		Where("client_id = ?", clientID).
		Pluck("program_id", &ids).Error
	return ids, Classify(err)
}

// CreateEnrollment inserts an enrollment and reloads it with the named
// associations ("Client", "Program"). A repeated pair yields ErrDuplicate and an
// unknown client or program yields ErrMissingReference.
func (s *Store) CreateEnrollment(ctx context.Context, clientID, programID uint, preload ...string) (*models.Enrollment, error) {
	enrollment := models.Enrollment{ClientID: clientID, ProgramID: programID}
	db := s.DB.WithContext(ctx)
	if err := db.Create(&enrollment).Error; err != nil {
		return nil, Classify(err)
	}

	q := db
	for _, assoc := range preload {
		q = q.Preload(assoc)
	}
	if err := q.First(&enrollment, enrollment.ID).Error; err != nil {
		return nil, Classify(err)
	}
	return &enrollment, nil
}

// DeleteEnrollment removes an enrollment by id.
func (s *Store) DeleteEnrollment(ctx context.Context, id uint) error {
	result := s.DB.WithContext(ctx).Delete(&models.Enrollment{}, id)
	if result.Error != nil {
		return Classify(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
