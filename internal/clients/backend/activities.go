package backend

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gestaoplus/admin-gateway/internal/entity"
)

type activityDTO struct {
	ID            int64         `json:"id,omitempty"`
	Title         string        `json:"title"`
	Description   string        `json:"description,omitempty"`
	StartDate     string        `json:"startDate,omitempty"`
	TargetDate    string        `json:"targetDate,omitempty"`
	Status        string        `json:"status"`
	Priority      string        `json:"priority"`
	ProjectID     int64         `json:"projectId"`
	ParentID      *int64        `json:"parentActivityId,omitempty"`
	ResponsibleID *int64        `json:"responsibleId,omitempty"`
	SubActivities []activityDTO `json:"subatividades,omitempty"`
	CreatedAt     string        `json:"createdAt,omitempty"`
	UpdatedAt     string        `json:"updatedAt,omitempty"`
}

type completeProjectDTO struct {
	projectDTO
	Activities []activityDTO `json:"atividades"`
}

func activityToDTO(a entity.Activity) activityDTO {
	return activityDTO{
		ID:            a.ID,
		Title:         a.Title,
		Description:   a.Description,
		StartDate:     formatDate(a.StartDate),
		TargetDate:    formatDate(a.TargetDate),
		Status:        string(a.Status),
		Priority:      string(a.Priority),
		ProjectID:     a.ProjectID,
		ParentID:      a.ParentID,
		ResponsibleID: a.ResponsibleID,
	}
}

func activityFromDTO(d activityDTO) entity.Activity {
	return entity.Activity{
		ID:            d.ID,
		Title:         d.Title,
		Description:   d.Description,
		StartDate:     parseDate(d.StartDate),
		TargetDate:    parseDate(d.TargetDate),
		Status:        entity.ActivityStatus(d.Status),
		Priority:      entity.Priority(d.Priority),
		ProjectID:     d.ProjectID,
		ParentID:      d.ParentID,
		ResponsibleID: d.ResponsibleID,
		CreatedAt:     parseTime(d.CreatedAt),
		UpdatedAt:     parseTime(d.UpdatedAt),
	}
}

func (c *Client) CreateActivity(ctx context.Context, activity entity.Activity) (entity.Activity, error) {
	var out activityDTO

	err := c.do(ctx, http.MethodPost, "/api/activities", activityToDTO(activity), &out)
	if err != nil {
		return entity.Activity{}, fmt.Errorf("create activity: %w", err)
	}

	return activityFromDTO(out), nil
}

func (c *Client) ProjectActivities(ctx context.Context, projectID int64) ([]entity.Activity, error) {
	var out []activityDTO

	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/projects/%d/activities", projectID), nil, &out)
	if err != nil {
		return nil, fmt.Errorf("list activities of project %d: %w", projectID, err)
	}

	activities := make([]entity.Activity, 0, len(out))
	for _, d := range out {
		activities = append(activities, activityFromDTO(d))
	}

	return activities, nil
}

func (c *Client) Activity(ctx context.Context, id int64) (entity.Activity, error) {
	var out activityDTO

	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/activities/%d", id), nil, &out)
	if err != nil {
		return entity.Activity{}, fmt.Errorf("get activity %d: %w", id, err)
	}

	return activityFromDTO(out), nil
}

func (c *Client) UpdateActivity(ctx context.Context, activity entity.Activity) (entity.Activity, error) {
	var out activityDTO

	err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/activities/%d", activity.ID), activityToDTO(activity), &out)
	if err != nil {
		return entity.Activity{}, fmt.Errorf("update activity %d: %w", activity.ID, err)
	}

	return activityFromDTO(out), nil
}

// DeleteActivity removes an activity. The backend cascade-deletes the
// sub-activities of a top-level activity.
func (c *Client) DeleteActivity(ctx context.Context, id int64) error {
	err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/activities/%d", id), nil, nil)
	if err != nil {
		return fmt.Errorf("delete activity %d: %w", id, err)
	}

	return nil
}

// CompleteProject fetches a project together with its activities, each
// top-level entry carrying its nested sub-activities.
func (c *Client) CompleteProject(ctx context.Context, projectID int64) (entity.Project, []entity.Activity, error) {
	var out completeProjectDTO

	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/projects/%d/complete", projectID), nil, &out)
	if err != nil {
		return entity.Project{}, nil, fmt.Errorf("get complete project %d: %w", projectID, err)
	}

	activities := make([]entity.Activity, 0, len(out.Activities))

	for _, d := range out.Activities {
		a := activityFromDTO(d)
		activities = append(activities, a)

		for _, sd := range d.SubActivities {
			sub := activityFromDTO(sd)
			if sub.ParentID == nil {
				parentID := a.ID
				sub.ParentID = &parentID
			}

			activities = append(activities, sub)
		}
	}

	return projectFromDTO(out.projectDTO), activities, nil
}
