package database

import (
	"context"

	"healthtrack/models"
)

// ListPrograms returns every program ordered by name.
func (s *Store) ListPrograms(ctx context.Context) ([]models.Program, error) {
	programs := []models.Program{}
	if err := s.DB.WithContext(ctx).Order("name asc").Order("id asc").Find(&programs).Error; err != nil {
		return nil, Classify(err)
	}
	return programs, nil
}

// FindProgram loads one program. With withEnrollments set, its enrollments are
// loaded together with their clients.
func (s *Store) FindProgram(ctx context.Context, id uint, withEnrollments bool) (*models.Program, error) {
	q := s.DB.WithContext(ctx)
	if withEnrollments {
		q = q.Preload("Enrollments", orderByEnrolledAt).Preload("Enrollments.Client")
	}

	var program models.Program
	if err := q.First(&program, id).Error; err != nil {
		return nil, Classify(err)
	}
	if withEnrollments && program.Enrollments == nil {
		program.Enrollments = []models.Enrollment{}
	}
	return &program, nil
}

// FindProgramByName does an exact, case-sensitive name lookup.
func (s *Store) FindProgramByName(ctx context.Context, name string) (*models.Program, error) {
	var program models.Program
	if err := s.DB.WithContext(ctx).Where("name = ?", name).First(&program).Error; err != nil {
		return nil, Classify(err)
	}
	return &program, nil
}

func (s *Store) CreateProgram(ctx context.Context, program *models.Program) error {
	return Classify(s.DB.WithContext(ctx).Create(program).Error)
}

// UpdateProgram replaces the mutable fields of a program and returns the stored row.
func (s *Store) UpdateProgram(ctx context.Context, id uint, name string, description *string) (*models.Program, error) {
	err := s.DB.WithContext(ctx).Model(&models.Program{ID: id}).Updates(map[string]interface{}{
		"name":        name,
		"description": description,
	}).Error
	if err != nil {
		return nil, Classify(err)
	}
	return s.FindProgram(ctx, id, false)
}

// DeleteProgram removes a program row. It does not touch enrollments.
func (s *Store) DeleteProgram(ctx context.Context, id uint) error {
	result := s.DB.WithContext(ctx).Delete(&models.Program{}, id)
	if result.Error != nil {
		return Classify(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// CountProgramEnrollments counts enrollments referencing the program.
func (s *Store) CountProgramEnrollments(ctx context.Context, id uint) (int64, error) {
	var count int64
	err := s.DB.WithContext(ctx).Model(&models.Enrollment{}).Where("program_id = ?", id).Count(&count).Error
	return count, Classify(err)
}
