package services

import (
	"context"
	"errors"

	"healthtrack/database"
	"healthtrack/models"

	"golang.org/x/sync/errgroup"
)

// EnrollmentStore is the persistence the enrollment service needs.
type EnrollmentStore interface {
	ListEnrollments(ctx context.Context) ([]models.Enrollment, error)
	FindClient(ctx context.Context, id uint, withEnrollments bool) (*models.Client, error)
	FindProgram(ctx context.Context, id uint, withEnrollments bool) (*models.Program, error)
	FindEnrollmentByPair(ctx context.Context, clientID, programID uint) (*models.Enrollment, error)
	EnrolledProgramIDs(ctx context.Context, clientID uint) ([]uint, error)
	CreateEnrollment(ctx context.Context, clientID, programID uint, preload ...string) (*models.Enrollment, error)
	DeleteEnrollment(ctx context.Context, id uint) error
}

type EnrollmentInput struct {
	ClientID  uint `json:"clientId" label:"Client ID" validate:"required"`
	ProgramID uint `json:"programId" label:"Program ID" validate:"required"`
}

type BulkEnrollmentInput struct {
	ClientID   uint   `json:"clientId" label:"Client ID" validate:"required"`
	ProgramIDs []uint `json:"programIds" label:"Program IDs array" validate:"required,min=1" invalid:"Program IDs array is required"`
}

// Outcome is the result of one insert in a batch: Enrollment on success, Err otherwise.
type Outcome struct {
	ProgramID  uint
	Enrollment *models.Enrollment
	Err        error
}

const (
	msgEnrollmentNotFound = "Enrollment not found"
	msgAlreadyEnrolled    = "Client is already enrolled in this program"
	msgAllEnrolled        = "Client is already enrolled in all specified programs"
)

type EnrollmentService struct {
	store       EnrollmentStore
	concurrency int
}

// NewEnrollmentService builds the service; concurrency bounds the parallel inserts
// of a bulk enrollment.
func NewEnrollmentService(store EnrollmentStore, concurrency int) *EnrollmentService {
	if concurrency < 1 {
		concurrency = 1
	}
	return &EnrollmentService{store: store, concurrency: concurrency}
}

// List returns all enrollments with client and program, newest first.
func (s *EnrollmentService) List(ctx context.Context) ([]models.Enrollment, error) {
	enrollments, err := s.store.ListEnrollments(ctx)
	if err != nil {
		return nil, unexpected(err)
	}
	return enrollments, nil
}

// Create enrolls one client in one program. The client is checked before the program.
func (s *EnrollmentService) Create(ctx context.Context, in EnrollmentInput) (*models.Enrollment, error) {
	if err := checkInput(&in); err != nil {
		return nil, err
	}
	if err := s.ensureClient(ctx, in.ClientID); err != nil {
		return nil, err
	}
	if _, err := s.store.FindProgram(ctx, in.ProgramID, false); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, notFound(msgProgramNotFound)
		}
		return nil, unexpected(err)
	}

	_, err := s.store.FindEnrollmentByPair(ctx, in.ClientID, in.ProgramID)
	switch {
	case err == nil:
		return nil, conflict(msgAlreadyEnrolled)
	case !errors.Is(err, database.ErrNotFound):
		return nil, unexpected(err)
	}

	enrollment, err := s.store.CreateEnrollment(ctx, in.ClientID, in.ProgramID, "Client", "Program")
	switch {
	case errors.Is(err, database.ErrDuplicate):
		return nil, conflict(msgAlreadyEnrolled)
	case errors.Is(err, database.ErrMissingReference):
		// client or program deleted since the checks above
		return nil, notFound(msgProgramNotFound)
	case err != nil:
		return nil, unexpected(err)
	}
	return enrollment, nil
}

// CreateBulk enrolls a client in every listed program it is not enrolled in yet.
// Programs that cannot be enrolled (unknown id, concurrent duplicate) are left out
// of the result instead of failing the request.
func (s *EnrollmentService) CreateBulk(ctx context.Context, in BulkEnrollmentInput) ([]models.Enrollment, error) {
	if err := checkInput(&in); err != nil {
		return nil, err
	}
	if err := s.ensureClient(ctx, in.ClientID); err != nil {
		return nil, err
	}

	enrolled, err := s.store.EnrolledProgramIDs(ctx, in.ClientID)
	if err != nil {
		return nil, unexpected(err)
	}

	pending := newProgramIDs(in.ProgramIDs, enrolled)
	if len(pending) == 0 {
		return nil, validationError(msgAllEnrolled)
	}

	created := []models.Enrollment{}
	for _, outcome := range s.EnrollBatch(ctx, in.ClientID, pending) {
		if outcome.Err == nil {
			created = append(created, *outcome.Enrollment)
		}
	}
	return created, nil
}

// EnrollBatch inserts one enrollment per program id concurrently and reports an
// Outcome for each id, in input order. It never fails as a whole.
func (s *EnrollmentService) EnrollBatch(ctx context.Context, clientID uint, programIDs []uint) []Outcome {
	outcomes := make([]Outcome, len(programIDs))

	var g errgroup.Group
	g.SetLimit(s.concurrency)
	for i, programID := range programIDs {
		i, programID := i, programID
		g.Go(func() error {
			enrollment, err := s.store.CreateEnrollment(ctx, clientID, programID, "Program")
			outcomes[i] = Outcome{ProgramID: programID, Enrollment: enrollment, Err: err}
			return nil
		})
	}
	_ = g.Wait()

	return outcomes
}

// Delete removes an enrollment by id.
func (s *EnrollmentService) Delete(ctx context.Context, id uint) error {
	err := s.store.DeleteEnrollment(ctx, id)
	if errors.Is(err, database.ErrNotFound) {
		return notFound(msgEnrollmentNotFound)
	}
	if err != nil {
		return unexpected(err)
	}
	return nil
}

// DeleteByPair removes the enrollment of clientID in programID.
func (s *EnrollmentService) DeleteByPair(ctx context.Context, clientID, programID uint) error {
	enrollment, err := s.store.FindEnrollmentByPair(ctx, clientID, programID)
	if errors.Is(err, database.ErrNotFound) {
		return notFound(msgEnrollmentNotFound)
	}
	if err != nil {
		return unexpected(err)
	}
	return s.Delete(ctx, enrollment.ID)
}

func (s *EnrollmentService) ensureClient(ctx context.Context, id uint) error {
	if _, err := s.store.FindClient(ctx, id, false); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return notFound(msgClientNotFound)
		}
		return unexpected(err)
	}
	return nil
}

// newProgramIDs returns requested ids, de-duplicated and in order, minus those
// already enrolled.
func newProgramIDs(requested, enrolled []uint) []uint {
	skip := make(map[uint]struct{}, len(enrolled)+len(requested))
	for _, id := range enrolled {
		skip[id] = struct{}{}
	}

	var out []uint
	for _, id := range requested {
		if _, ok := skip[id]; ok {
			continue
		}
		skip[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
