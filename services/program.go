package services

import (
	"context"
	"errors"

	"healthtrack/database"
	"healthtrack/models"
)

// ProgramStore is the persistence the program service needs.
type ProgramStore interface {
	ListPrograms(ctx context.Context) ([]models.Program, error)
	FindProgram(ctx context.Context, id uint, withEnrollments bool) (*models.Program, error)
	FindProgramByName(ctx context.Context, name string) (*models.Program, error)
	CreateProgram(ctx context.Context, program *models.Program) error
	UpdateProgram(ctx context.Context, id uint, name string, description *string) (*models.Program, error)
	DeleteProgram(ctx context.Context, id uint) error
	CountProgramEnrollments(ctx context.Context, id uint) (int64, error)
}

// ProgramInput is the writable part of a program.
type ProgramInput struct {
	Name        string  `json:"name" label:"Program name" validate:"required"`
	Description *string `json:"description"`
}

const (
	msgProgramNotFound    = "Program not found"
	msgProgramNameTaken   = "A program with this name already exists"
	msgProgramHasEnrolled = "Cannot delete program with active enrollments"
)

type ProgramService struct {
	store ProgramStore
}

func NewProgramService(store ProgramStore) *ProgramService {
	return &ProgramService{store: store}
}

// List returns all programs ordered by name.
func (s *ProgramService) List(ctx context.Context) ([]models.Program, error) {
	programs, err := s.store.ListPrograms(ctx)
	if err != nil {
		return nil, unexpected(err)
	}
	return programs, nil
}

// Get returns a program with its enrollments, each joined to its client.
func (s *ProgramService) Get(ctx context.Context, id uint) (*models.Program, error) {
	program, err := s.store.FindProgram(ctx, id, true)
	if errors.Is(err, database.ErrNotFound) {
		return nil, notFound(msgProgramNotFound)
	}
	if err != nil {
		return nil, unexpected(err)
	}
	return program, nil
}

func (s *ProgramService) Create(ctx context.Context, in ProgramInput) (*models.Program, error) {
	in.Name = trimmed(in.Name)
	if err := checkInput(&in); err != nil {
		return nil, err
	}
	if err := s.ensureNameFree(ctx, in.Name, 0); err != nil {
		return nil, err
	}

	program := &models.Program{Name: in.Name, Description: in.Description}
	if err := s.store.CreateProgram(ctx, program); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return nil, conflict(msgProgramNameTaken)
		}
		return nil, unexpected(err)
	}
	return program, nil
}

// Update replaces name and description of an existing program.
func (s *ProgramService) Update(ctx context.Context, id uint, in ProgramInput) (*models.Program, error) {
	in.Name = trimmed(in.Name)
	if err := checkInput(&in); err != nil {
		return nil, err
	}

	if _, err := s.store.FindProgram(ctx, id, false); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, notFound(msgProgramNotFound)
		}
		return nil, unexpected(err)
	}
	if err := s.ensureNameFree(ctx, in.Name, id); err != nil {
		return nil, err
	}

	program, err := s.store.UpdateProgram(ctx, id, in.Name, in.Description)
	switch {
	case errors.Is(err, database.ErrDuplicate):
		return nil, conflict(msgProgramNameTaken)
	case errors.Is(err, database.ErrNotFound):
		return nil, notFound(msgProgramNotFound)
	case err != nil:
		return nil, unexpected(err)
	}
	return program, nil
}

// Delete removes a program that no enrollment references.
func (s *ProgramService) Delete(ctx context.Context, id uint) error {
	count, err := s.store.CountProgramEnrollments(ctx, id)
	if err != nil {
		return unexpected(err)
	}
	if count > 0 {
		return blockedByDependents(msgProgramHasEnrolled, count)
	}

	err = s.store.DeleteProgram(ctx, id)
	switch {
	case errors.Is(err, database.ErrNotFound):
		return notFound(msgProgramNotFound)
	case errors.Is(err, database.ErrMissingReference):
		// an enrollment slipped in after the count
		count, cerr := s.store.CountProgramEnrollments(ctx, id)
		if cerr != nil {
			return unexpected(cerr)
		}
		return blockedByDependents(msgProgramHasEnrolled, count)
	case err != nil:
		return unexpected(err)
	}
	return nil
}

// ensureNameFree fails with a conflict when another program (not exceptID) uses name.
func (s *ProgramService) ensureNameFree(ctx context.Context, name string, exceptID uint) error {
	existing, err := s.store.FindProgramByName(ctx, name)
	switch {
	case errors.Is(err, database.ErrNotFound):
		return nil
	case err != nil:
		return unexpected(err)
	case existing.ID != exceptID:
		return conflict(msgProgramNameTaken)
	}
	return nil
}
