package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/gestaoplus/admin-gateway/internal/entity"
)

func validProject() entity.Project {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 6, 0)

	return entity.Project{
		Title:         "Reforma da sede",
		StartDate:     start,
		EndDate:       &end,
		Status:        entity.ProjectStatusPlanning,
		Priority:      entity.PriorityMedium,
		CompanyID:     1,
		ResponsibleID: 2,
	}
}

func TestService_CreateProject(t *testing.T) {
	t.Parallel()

	backend := &fakeBackend{
		createProjectFn: func(_ context.Context, p entity.Project) (entity.Project, error) {
			p.ID = 5
			return p, nil
		},
	}

	s := New(backend, nil, nil, nil, nil, nil, nil)

	created, err := s.CreateProject(context.Background(), validProject())
	require.NoError(t, err)
	require.Equal(t, int64(5), created.ID)
	require.Equal(t, 1, backend.createProjectCalls)
}

func TestService_CreateProject_EndBeforeStart(t *testing.T) {
	t.Parallel()

	backend := &fakeBackend{
		createProjectFn: func(_ context.Context, p entity.Project) (entity.Project, error) {
			return p, nil
		},
	}

	s := New(backend, nil, nil, nil, nil, nil, nil)

	p := validProject()
	end := p.StartDate.AddDate(0, 0, -1)
	p.EndDate = &end

	_, err := s.CreateProject(context.Background(), p)

	var ve *entity.ValidationError
	require.ErrorAs(t, err, &ve)
	require.Contains(t, ve.Fields, "endDate")

	// A rejected form never reaches the backend.
	require.Zero(t, backend.createProjectCalls)
}

func TestService_CreateProject_MissingFields(t *testing.T) {
	t.Parallel()

	s := New(&fakeBackend{}, nil, nil, nil, nil, nil, nil)

	_, err := s.CreateProject(context.Background(), entity.Project{})

	var ve *entity.ValidationError
	require.ErrorAs(t, err, &ve)

	for _, field := range []string{"title", "startDate", "status", "priority", "companyId", "responsibleId"} {
		require.Contains(t, ve.Fields, field)
	}
}

func TestService_CreateProject_NegativeBudget(t *testing.T) {
	t.Parallel()

	s := New(&fakeBackend{}, nil, nil, nil, nil, nil, nil)

	p := validProject()
	p.Budget = decimal.NewFromInt(-100)

	_, err := s.CreateProject(context.Background(), p)

	var ve *entity.ValidationError
	require.ErrorAs(t, err, &ve)
	require.Contains(t, ve.Fields, "budget")
}
