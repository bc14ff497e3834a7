package backend

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/gestaoplus/admin-gateway/internal/entity"
)

type projectDTO struct {
	ID            int64            `json:"id,omitempty"`
	Title         string           `json:"title"`
	Description   string           `json:"description,omitempty"`
	StartDate     string           `json:"startDate"`
	EndDate       string           `json:"endDate,omitempty"`
	Budget        *decimal.Decimal `json:"budget,omitempty"`
	Status        string           `json:"status"`
	Priority      string           `json:"priority"`
	CompanyID     int64            `json:"companyId"`
	ResponsibleID int64            `json:"responsibleId"`
	CreatedAt     string           `json:"createdAt,omitempty"`
	UpdatedAt     string           `json:"updatedAt,omitempty"`
}

func projectToDTO(p entity.Project) projectDTO {
	d := projectDTO{
		ID:            p.ID,
		Title:         p.Title,
		Description:   p.Description,
		StartDate:     p.StartDate.Format(time.DateOnly),
		EndDate:       formatDate(p.EndDate),
		Status:        string(p.Status),
		Priority:      string(p.Priority),
		CompanyID:     p.CompanyID,
		ResponsibleID: p.ResponsibleID,
	}

	if !p.Budget.IsZero() {
		budget := p.Budget
		d.Budget = &budget
	}

	return d
}

func projectFromDTO(d projectDTO) entity.Project {
	p := entity.Project{
		ID:            d.ID,
		Title:         d.Title,
		Description:   d.Description,
		EndDate:       parseDate(d.EndDate),
		Status:        entity.ProjectStatus(d.Status),
		Priority:      entity.Priority(d.Priority),
		CompanyID:     d.CompanyID,
		ResponsibleID: d.ResponsibleID,
		CreatedAt:     parseTime(d.CreatedAt),
		UpdatedAt:     parseTime(d.UpdatedAt),
	}

	if start := parseDate(d.StartDate); start != nil {
		p.StartDate = *start
	}

	if d.Budget != nil {
		p.Budget = *d.Budget
	}

	return p
}

func (c *Client) CreateProject(ctx context.Context, project entity.Project) (entity.Project, error) {
	var out projectDTO

	err := c.do(ctx, http.MethodPost, "/api/projects", projectToDTO(project), &out)
	if err != nil {
		return entity.Project{}, fmt.Errorf("create project: %w", err)
	}

	return projectFromDTO(out), nil
}

func (c *Client) Projects(ctx context.Context) ([]entity.Project, error) {
	var out []projectDTO

	err := c.do(ctx, http.MethodGet, "/api/projects", nil, &out)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}

	projects := make([]entity.Project, 0, len(out))
	for _, d := range out {
		projects = append(projects, projectFromDTO(d))
	}

	return projects, nil
}

func (c *Client) Project(ctx context.Context, id int64) (entity.Project, error) {
	var out projectDTO

	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/projects/%d", id), nil, &out)
	if err != nil {
		return entity.Project{}, fmt.Errorf("get project %d: %w", id, err)
	}

	return projectFromDTO(out), nil
}

func (c *Client) UpdateProject(ctx context.Context, project entity.Project) (entity.Project, error) {
	var out projectDTO

	err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/projects/%d", project.ID), projectToDTO(project), &out)
	if err != nil {
		return entity.Project{}, fmt.Errorf("update project %d: %w", project.ID, err)
	}

	return projectFromDTO(out), nil
}

func (c *Client) DeleteProject(ctx context.Context, id int64) error {
	err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/projects/%d", id), nil, nil)
	if err != nil {
		return fmt.Errorf("delete project %d: %w", id, err)
	}

	return nil
}
