package services_test

import (
	"context"
	"testing"

	"healthtrack/database"
	"healthtrack/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnrollmentCreate(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	cid := f.client(t, "Jane")
	pid := f.program(t, "TB Control")

	e, err := f.enrollments.Create(ctx, services.EnrollmentInput{ClientID: cid, ProgramID: pid})
	require.NoError(t, err)
	require.NotNil(t, e.Client)
	require.NotNil(t, e.Program)
	assert.Equal(t, "jane", e.Client.Name)
	assert.Equal(t, "TB Control", e.Program.Name)

	_, err = f.enrollments.Create(ctx, services.EnrollmentInput{ClientID: cid, ProgramID: pid})
	requireKind(t, err, services.KindConflict, "Client is already enrolled in this program")

	ids, err := f.store.EnrolledProgramIDs(ctx, cid)
	require.NoError(t, err)
	assert.Equal(t, []uint{pid}, ids)
}

func TestEnrollmentCreateErrors(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	cid := f.client(t, "Jane")
	pid := f.program(t, "TB Control")

	_, err := f.enrollments.Create(ctx, services.EnrollmentInput{ProgramID: pid})
	requireKind(t, err, services.KindValidation, "Client ID is required")

	_, err = f.enrollments.Create(ctx, services.EnrollmentInput{ClientID: cid})
	requireKind(t, err, services.KindValidation, "Program ID is required")

	// client is checked before program
	_, err = f.enrollments.Create(ctx, services.EnrollmentInput{ClientID: cid + 10, ProgramID: pid + 10})
	requireKind(t, err, services.KindNotFound, "Client not found")

	_, err = f.enrollments.Create(ctx, services.EnrollmentInput{ClientID: cid, ProgramID: pid + 10})
	requireKind(t, err, services.KindNotFound, "Program not found")
}

func TestEnrollmentCreateBulk(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	cid := f.client(t, "Jane")
	p1 := f.program(t, "TB Control")
	p2 := f.program(t, "Malaria")

	_, err := f.enrollments.Create(ctx, services.EnrollmentInput{ClientID: cid, ProgramID: p1})
	require.NoError(t, err)

	created, err := f.enrollments.CreateBulk(ctx, services.BulkEnrollmentInput{ClientID: cid, ProgramIDs: []uint{p1, p2}})
	require.NoError(t, err)
	require.Len(t, created, 1)
	assert.Equal(t, p2, created[0].ProgramID)
	require.NotNil(t, created[0].Program)
	assert.Equal(t, "Malaria", created[0].Program.Name)

	_, err = f.enrollments.CreateBulk(ctx, services.BulkEnrollmentInput{ClientID: cid, ProgramIDs: []uint{p1}})
	requireKind(t, err, services.KindValidation, "Client is already enrolled in all specified programs")
}

func TestEnrollmentCreateBulkSkipsUnknownPrograms(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	cid := f.client(t, "Jane")
	p1 := f.program(t, "TB Control")
	p2 := f.program(t, "Malaria")

	created, err := f.enrollments.CreateBulk(ctx, services.BulkEnrollmentInput{
		ClientID:   cid,
		ProgramIDs: []uint{p1, 9999, p2, p2, 0},
	})
	require.NoError(t, err)
	require.Len(t, created, 2)

	got := []uint{created[0].ProgramID, created[1].ProgramID}
	assert.ElementsMatch(t, []uint{p1, p2}, got)
}

func TestEnrollmentCreateBulkValidation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	cid := f.client(t, "Jane")
	pid := f.program(t, "TB Control")

	_, err := f.enrollments.CreateBulk(ctx, services.BulkEnrollmentInput{ProgramIDs: []uint{pid}})
	requireKind(t, err, services.KindValidation, "Client ID is required")

	_, err = f.enrollments.CreateBulk(ctx, services.BulkEnrollmentInput{ClientID: cid})
	requireKind(t, err, services.KindValidation, "Program IDs array is required")

	_, err = f.enrollments.CreateBulk(ctx, services.BulkEnrollmentInput{ClientID: cid, ProgramIDs: []uint{}})
	requireKind(t, err, services.KindValidation, "Program IDs array is required")

	_, err = f.enrollments.CreateBulk(ctx, services.BulkEnrollmentInput{ClientID: cid + 1, ProgramIDs: []uint{pid}})
	requireKind(t, err, services.KindNotFound, "Client not found")
}

func TestEnrollBatchReportsEveryOutcome(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	cid := f.client(t, "Jane")
	pid := f.program(t, "TB Control")

	outcomes := f.enrollments.EnrollBatch(ctx, cid, []uint{pid, pid})
	require.Len(t, outcomes, 2)
	assert.Equal(t, pid, outcomes[0].ProgramID)
	assert.Equal(t, pid, outcomes[1].ProgramID)

	var ok, failed int
	for _, o := range outcomes {
		if o.Err != nil {
			failed++
			assert.ErrorIs(t, o.Err, database.ErrDuplicate)
			assert.Nil(t, o.Enrollment)
		} else {
			ok++
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, 1, failed)
}

func TestEnrollmentDelete(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	cid := f.client(t, "Jane")
	pid := f.program(t, "TB Control")
	e, err := f.enrollments.Create(ctx, services.EnrollmentInput{ClientID: cid, ProgramID: pid})
	require.NoError(t, err)

	require.NoError(t, f.enrollments.Delete(ctx, e.ID))
	requireKind(t, f.enrollments.Delete(ctx, e.ID), services.KindNotFound, "Enrollment not found")
}

func TestEnrollmentDeleteByPair(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	cid := f.client(t, "Jane")
	pid := f.program(t, "TB Control")
	other := f.program(t, "Malaria")
	_, err := f.enrollments.CreateBulk(ctx, services.BulkEnrollmentInput{ClientID: cid, ProgramIDs: []uint{pid, other}})
	require.NoError(t, err)

	require.NoError(t, f.enrollments.DeleteByPair(ctx, cid, pid))
	requireKind(t, f.enrollments.DeleteByPair(ctx, cid, pid), services.KindNotFound, "Enrollment not found")

	ids, err := f.store.EnrolledProgramIDs(ctx, cid)
	require.NoError(t, err)
	assert.Equal(t, []uint{other}, ids)
}

func TestStatsSnapshot(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	cid := f.client(t, "Jane")
	pid := f.program(t, "TB Control")
	f.program(t, "Malaria")
	_, err := f.enrollments.Create(ctx, services.EnrollmentInput{ClientID: cid, ProgramID: pid})
	require.NoError(t, err)

	totals, err := f.stats.Snapshot(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, totals.Clients)
	assert.EqualValues(t, 2, totals.Programs)
	assert.EqualValues(t, 1, totals.Enrollments)
	assert.EqualValues(t, 1, totals.EnrolledToday)
	assert.EqualValues(t, 1, totals.EnrolledThisWeek)
}
