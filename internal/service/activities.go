package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/gestaoplus/admin-gateway/internal/entity"
)

func validateActivity(a entity.Activity) error {
	ve := entity.NewValidationError()

	if strings.TrimSpace(a.Title) == "" {
		ve.Add("title", "obrigatório")
	}

	if !a.Status.Valid() {
		ve.Add("status", "status inválido")
	}

	if !a.Priority.Valid() {
		ve.Add("priority", "prioridade inválida")
	}

	if a.ProjectID == 0 {
		ve.Add("projectId", "obrigatório")
	}

	if a.StartDate != nil && a.TargetDate != nil && a.TargetDate.Before(*a.StartDate) {
		ve.Add("targetDate", "a data alvo não pode ser anterior à data de início")
	}

	if ve.Empty() {
		return nil
	}

	return ve
}

// CreateActivity rejects a parent that is itself a sub-activity, keeping
// the tree at most two levels deep.
func (s *Service) CreateActivity(ctx context.Context, activity entity.Activity) (entity.Activity, error) {
	if err := validateActivity(activity); err != nil {
		return entity.Activity{}, err
	}

	if activity.ParentID != nil {
		parent, err := s.backend.Activity(ctx, *activity.ParentID)
		if err != nil {
			return entity.Activity{}, fmt.Errorf("get parent activity: %w", err)
		}

		if parent.ParentID != nil {
			return entity.Activity{}, entity.ErrNestingTooDeep
		}
	}

	created, err := s.backend.CreateActivity(ctx, activity)
	if err != nil {
		return entity.Activity{}, fmt.Errorf("create activity: %w", err)
	}

	s.audit(ctx, "activity", "create", created.ID)

	return created, nil
}

func (s *Service) Activity(ctx context.Context, id int64) (entity.Activity, error) {
	return s.backend.Activity(ctx, id)
}

// ProjectActivities lists a project's activities flat, children included.
func (s *Service) ProjectActivities(ctx context.Context, projectID int64) ([]entity.Activity, error) {
	return s.backend.ProjectActivities(ctx, projectID)
}

func (s *Service) UpdateActivity(ctx context.Context, activity entity.Activity) (entity.Activity, error) {
	if err := validateActivity(activity); err != nil {
		return entity.Activity{}, err
	}

	updated, err := s.backend.UpdateActivity(ctx, activity)
	if err != nil {
		return entity.Activity{}, fmt.Errorf("update activity: %w", err)
	}

	s.audit(ctx, "activity", "update", updated.ID)

	return updated, nil
}

// ProjectTree fetches the complete project and rebuilds the two-level
// display tree.
func (s *Service) ProjectTree(ctx context.Context, projectID int64) (entity.ProjectTree, error) {
	project, activities, err := s.backend.CompleteProject(ctx, projectID)
	if err != nil {
		return entity.ProjectTree{}, fmt.Errorf("complete project: %w", err)
	}

	return entity.ProjectTree{
		Project:    project,
		Activities: BuildTree(activities),
	}, nil
}

// ToggleActivity flips the completion flag of one node. The backend is
// updated first and the fresh tree is reconciled locally only after the
// acknowledgment, so a failed request leaves no state to roll back.
func (s *Service) ToggleActivity(ctx context.Context, id int64) (entity.ProjectTree, error) {
	activity, err := s.backend.Activity(ctx, id)
	if err != nil {
		return entity.ProjectTree{}, fmt.Errorf("get activity: %w", err)
	}

	if activity.Completed() {
		activity.Status = entity.ActivityStatusPending
	} else {
		activity.Status = entity.ActivityStatusCompleted
	}

	updated, err := s.backend.UpdateActivity(ctx, activity)
	if err != nil {
		return entity.ProjectTree{}, fmt.Errorf("update activity: %w", err)
	}

	s.audit(ctx, "activity", "toggle", updated.ID)

	tree, err := s.ProjectTree(ctx, activity.ProjectID)
	if err != nil {
		return entity.ProjectTree{}, err
	}

	tree.Activities = toggleNode(tree.Activities, updated)

	return tree, nil
}

// DeleteActivity removes the node and, for a top-level activity, its
// children go with it (the backend cascades).
func (s *Service) DeleteActivity(ctx context.Context, id int64) (entity.ProjectTree, error) {
	activity, err := s.backend.Activity(ctx, id)
	if err != nil {
		return entity.ProjectTree{}, fmt.Errorf("get activity: %w", err)
	}

	err = s.backend.DeleteActivity(ctx, id)
	if err != nil {
		return entity.ProjectTree{}, fmt.Errorf("delete activity: %w", err)
	}

	s.audit(ctx, "activity", "delete", id)

	tree, err := s.ProjectTree(ctx, activity.ProjectID)
	if err != nil {
		return entity.ProjectTree{}, err
	}

	tree.Activities = removeNode(tree.Activities, id)

	return tree, nil
}

// BuildTree groups a flat activity list into display nodes: one node per
// top-level activity, children attached under their parent and never
// duplicated at the root. A child without a responsible user inherits the
// parent's.
func BuildTree(activities []entity.Activity) []entity.ActivityNode {
	nodes := make([]entity.ActivityNode, 0, len(activities))
	index := make(map[int64]int, len(activities))

	for _, a := range activities {
		if a.ParentID != nil {
			continue
		}

		index[a.ID] = len(nodes)
		nodes = append(nodes, entity.ActivityNode{Activity: a})
	}

	for _, a := range activities {
		if a.ParentID == nil {
			continue
		}

		i, ok := index[*a.ParentID]
		if !ok {
			// Orphaned child; the backend should not produce these,
			// drop it rather than invent a root for it.
			continue
		}

		if a.ResponsibleID == nil {
			a.ResponsibleID = nodes[i].ResponsibleID
		}

		nodes[i].SubActivities = append(nodes[i].SubActivities, entity.SubActivity{Activity: a})
	}

	return nodes
}

// toggleNode replaces the matching node in place, leaving siblings and
// parents untouched.
func toggleNode(nodes []entity.ActivityNode, updated entity.Activity) []entity.ActivityNode {
	out := make([]entity.ActivityNode, len(nodes))

	for i, n := range nodes {
		if n.ID == updated.ID {
			updated.ParentID = n.ParentID
			n.Activity = updated
		} else {
			for j, sub := range n.SubActivities {
				if sub.ID == updated.ID {
					updated.ParentID = sub.ParentID

					subs := make([]entity.SubActivity, len(n.SubActivities))
					copy(subs, n.SubActivities)
					subs[j] = entity.SubActivity{Activity: updated}
					n.SubActivities = subs

					break
				}
			}
		}

		out[i] = n
	}

	return out
}

// removeNode filters the node out of the tree. Removing a top-level node
// drops its subtree with it.
func removeNode(nodes []entity.ActivityNode, id int64) []entity.ActivityNode {
	out := make([]entity.ActivityNode, 0, len(nodes))

	for _, n := range nodes {
		if n.ID == id {
			continue
		}

		subs := make([]entity.SubActivity, 0, len(n.SubActivities))
		for _, sub := range n.SubActivities {
			if sub.ID == id {
				continue
			}

			subs = append(subs, sub)
		}

		n.SubActivities = subs
		out = append(out, n)
	}

	return out
}
