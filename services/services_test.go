package services_test

import (
	"context"
	"testing"

	"healthtrack/database"
	"healthtrack/database/dbtest"
	"healthtrack/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	store       *database.Store
	programs    *services.ProgramService
	clients     *services.ClientService
	enrollments *services.EnrollmentService
	stats       *services.StatsService
}

func newFixture(t *testing.T) *fixture {
	store := dbtest.NewStore(t)
	return &fixture{
		store:       store,
		programs:    services.NewProgramService(store),
		clients:     services.NewClientService(store),
		enrollments: services.NewEnrollmentService(store, 4),
		stats:       services.NewStatsService(store),
	}
}

func intPtr(n int) *int { return &n }

func strPtr(s string) *string { return &s }

func (f *fixture) client(t *testing.T, name string) uint {
	t.Helper()
	c, err := f.clients.Create(context.Background(), services.ClientInput{
		Name: name, Age: intPtr(30), Gender: "Female", Phone: "555", Address: "1 Main St",
	})
	require.NoError(t, err)
	return c.ID
}

func (f *fixture) program(t *testing.T, name string) uint {
	t.Helper()
	p, err := f.programs.Create(context.Background(), services.ProgramInput{Name: name})
	require.NoError(t, err)
	return p.ID
}

// requireKind asserts err is a service error of kind with message msg.
func requireKind(t *testing.T, err error, kind services.Kind, msg string) *services.Error {
	t.Helper()
	require.Error(t, err)
	var svcErr *services.Error
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, kind, svcErr.Kind, "kind")
	assert.Equal(t, msg, svcErr.Message)
	return svcErr
}
