package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gestaoplus/admin-gateway/internal/entity"
)

func ptr[T any](v T) *T {
	return &v
}

func TestBuildTree(t *testing.T) {
	t.Parallel()

	activities := []entity.Activity{
		{ID: 1, Title: "fundação", ResponsibleID: ptr(int64(10))},
		{ID: 2, Title: "escavação", ParentID: ptr(int64(1))},
		{ID: 3, Title: "concretagem", ParentID: ptr(int64(1)), ResponsibleID: ptr(int64(20))},
		{ID: 4, Title: "alvenaria"},
		{ID: 5, Title: "órfã", ParentID: ptr(int64(99))},
	}

	nodes := BuildTree(activities)

	require.Len(t, nodes, 2, "children must not be duplicated at the root")

	require.Equal(t, int64(1), nodes[0].ID)
	require.Len(t, nodes[0].SubActivities, 2)
	require.Equal(t, int64(2), nodes[0].SubActivities[0].ID)
	require.Equal(t, int64(3), nodes[0].SubActivities[1].ID)

	// A child without a responsible inherits the parent's; one with its own
	// keeps it.
	require.Equal(t, int64(10), *nodes[0].SubActivities[0].ResponsibleID)
	require.Equal(t, int64(20), *nodes[0].SubActivities[1].ResponsibleID)

	require.Equal(t, int64(4), nodes[1].ID)
	require.Empty(t, nodes[1].SubActivities)
}

func TestBuildTree_Empty(t *testing.T) {
	t.Parallel()

	require.Empty(t, BuildTree(nil))
}

func TestToggleNode(t *testing.T) {
	t.Parallel()

	nodes := []entity.ActivityNode{
		{
			Activity: entity.Activity{ID: 1, Status: entity.ActivityStatusPending},
			SubActivities: []entity.SubActivity{
				{Activity: entity.Activity{ID: 2, ParentID: ptr(int64(1)), Status: entity.ActivityStatusPending}},
				{Activity: entity.Activity{ID: 3, ParentID: ptr(int64(1)), Status: entity.ActivityStatusPending}},
			},
		},
		{Activity: entity.Activity{ID: 4, Status: entity.ActivityStatusCompleted}},
	}

	updated := entity.Activity{ID: 2, Status: entity.ActivityStatusCompleted}

	out := toggleNode(nodes, updated)

	require.Equal(t, entity.ActivityStatusCompleted, out[0].SubActivities[0].Status)
	require.NotNil(t, out[0].SubActivities[0].ParentID, "parent link survives the swap")

	// Siblings and other roots untouched.
	require.Equal(t, entity.ActivityStatusPending, out[0].Status)
	require.Equal(t, entity.ActivityStatusPending, out[0].SubActivities[1].Status)
	require.Equal(t, entity.ActivityStatusCompleted, out[1].Status)

	// The input slice is not mutated.
	require.Equal(t, entity.ActivityStatusPending, nodes[0].SubActivities[0].Status)
}

func TestToggleNode_TopLevel(t *testing.T) {
	t.Parallel()

	nodes := []entity.ActivityNode{
		{Activity: entity.Activity{ID: 1, Status: entity.ActivityStatusCompleted}},
	}

	out := toggleNode(nodes, entity.Activity{ID: 1, Status: entity.ActivityStatusPending})

	require.Equal(t, entity.ActivityStatusPending, out[0].Status)
}

func TestRemoveNode(t *testing.T) {
	t.Parallel()

	nodes := []entity.ActivityNode{
		{
			Activity: entity.Activity{ID: 1},
			SubActivities: []entity.SubActivity{
				{Activity: entity.Activity{ID: 2, ParentID: ptr(int64(1))}},
				{Activity: entity.Activity{ID: 3, ParentID: ptr(int64(1))}},
			},
		},
		{Activity: entity.Activity{ID: 4}},
	}

	t.Run("removing a child keeps the parent", func(t *testing.T) {
		t.Parallel()

		out := removeNode(nodes, 2)

		require.Len(t, out, 2)
		require.Len(t, out[0].SubActivities, 1)
		require.Equal(t, int64(3), out[0].SubActivities[0].ID)
	})

	t.Run("removing a root drops its subtree", func(t *testing.T) {
		t.Parallel()

		out := removeNode(nodes, 1)

		require.Len(t, out, 1)
		require.Equal(t, int64(4), out[0].ID)
	})

	t.Run("unknown id is a no-op", func(t *testing.T) {
		t.Parallel()

		out := removeNode(nodes, 99)

		require.Len(t, out, 2)
		require.Len(t, out[0].SubActivities, 2)
	})
}

func TestService_CreateActivity_RejectsGrandchildren(t *testing.T) {
	t.Parallel()

	backend := &fakeBackend{
		activityFn: func(_ context.Context, id int64) (entity.Activity, error) {
			// The requested parent is itself a sub-activity.
			return entity.Activity{ID: id, ParentID: ptr(int64(1))}, nil
		},
	}

	s := New(backend, nil, nil, nil, nil, nil, nil)

	_, err := s.CreateActivity(context.Background(), entity.Activity{
		Title:     "neta",
		Status:    entity.ActivityStatusPending,
		Priority:  entity.PriorityLow,
		ProjectID: 7,
		ParentID:  ptr(int64(2)),
	})

	require.ErrorIs(t, err, entity.ErrNestingTooDeep)
}

func TestService_CreateActivity_UnderTopLevelParent(t *testing.T) {
	t.Parallel()

	backend := &fakeBackend{
		activityFn: func(_ context.Context, id int64) (entity.Activity, error) {
			return entity.Activity{ID: id}, nil
		},
		createActivityFn: func(_ context.Context, a entity.Activity) (entity.Activity, error) {
			a.ID = 42
			return a, nil
		},
	}

	s := New(backend, nil, nil, nil, nil, nil, nil)

	created, err := s.CreateActivity(context.Background(), entity.Activity{
		Title:     "filha",
		Status:    entity.ActivityStatusPending,
		Priority:  entity.PriorityLow,
		ProjectID: 7,
		ParentID:  ptr(int64(2)),
	})

	require.NoError(t, err)
	require.Equal(t, int64(42), created.ID)
}

func TestService_ToggleActivity(t *testing.T) {
	t.Parallel()

	stored := entity.Activity{ID: 2, ProjectID: 7, ParentID: ptr(int64(1)), Status: entity.ActivityStatusPending}

	var pushed entity.Activity

	backend := &fakeBackend{
		activityFn: func(_ context.Context, _ int64) (entity.Activity, error) {
			return stored, nil
		},
		updateActivityFn: func(_ context.Context, a entity.Activity) (entity.Activity, error) {
			pushed = a
			return a, nil
		},
		completeFn: func(_ context.Context, _ int64) (entity.Project, []entity.Activity, error) {
			return entity.Project{ID: 7}, []entity.Activity{
				{ID: 1, ProjectID: 7},
				// The backend snapshot may lag behind the acknowledged
				// update; reconciliation applies it locally.
				{ID: 2, ProjectID: 7, ParentID: ptr(int64(1)), Status: entity.ActivityStatusPending},
			}, nil
		},
	}

	s := New(backend, nil, nil, nil, nil, nil, nil)

	tree, err := s.ToggleActivity(context.Background(), 2)
	require.NoError(t, err)

	require.Equal(t, entity.ActivityStatusCompleted, pushed.Status)
	require.Len(t, tree.Activities, 1)
	require.Equal(t, entity.ActivityStatusCompleted, tree.Activities[0].SubActivities[0].Status)
}

func TestService_ToggleActivity_BackendFailureLeavesNoChange(t *testing.T) {
	t.Parallel()

	backend := &fakeBackend{
		activityFn: func(_ context.Context, _ int64) (entity.Activity, error) {
			return entity.Activity{ID: 2, ProjectID: 7, Status: entity.ActivityStatusPending}, nil
		},
		updateActivityFn: func(_ context.Context, _ entity.Activity) (entity.Activity, error) {
			return entity.Activity{}, entity.ErrBackendUnavailable
		},
	}

	s := New(backend, nil, nil, nil, nil, nil, nil)

	_, err := s.ToggleActivity(context.Background(), 2)
	require.ErrorIs(t, err, entity.ErrBackendUnavailable)
}

func TestService_DeleteActivity(t *testing.T) {
	t.Parallel()

	backend := &fakeBackend{
		activityFn: func(_ context.Context, _ int64) (entity.Activity, error) {
			return entity.Activity{ID: 1, ProjectID: 7}, nil
		},
		deleteActivityFn: func(_ context.Context, _ int64) error {
			return nil
		},
		completeFn: func(_ context.Context, _ int64) (entity.Project, []entity.Activity, error) {
			return entity.Project{ID: 7}, []entity.Activity{
				{ID: 1, ProjectID: 7},
				{ID: 2, ProjectID: 7, ParentID: ptr(int64(1))},
				{ID: 4, ProjectID: 7},
			}, nil
		},
	}

	s := New(backend, nil, nil, nil, nil, nil, nil)

	tree, err := s.DeleteActivity(context.Background(), 1)
	require.NoError(t, err)

	require.Len(t, tree.Activities, 1)
	require.Equal(t, int64(4), tree.Activities[0].ID)
}

func TestService_DeleteActivity_NotFound(t *testing.T) {
	t.Parallel()

	backend := &fakeBackend{
		activityFn: func(_ context.Context, _ int64) (entity.Activity, error) {
			return entity.Activity{}, entity.ErrNotFound
		},
	}

	s := New(backend, nil, nil, nil, nil, nil, nil)

	_, err := s.DeleteActivity(context.Background(), 99)
	require.True(t, errors.Is(err, entity.ErrNotFound))
}
