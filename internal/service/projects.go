package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/gestaoplus/admin-gateway/internal/entity"
)

func validateProject(p entity.Project) error {
	ve := entity.NewValidationError()

	if strings.TrimSpace(p.Title) == "" {
		ve.Add("title", "obrigatório")
	}

	if p.StartDate.IsZero() {
		ve.Add("startDate", "obrigatório")
	}

	if p.EndDate != nil && !p.StartDate.IsZero() && p.EndDate.Before(p.StartDate) {
		ve.Add("endDate", "a data de término não pode ser anterior à data de início")
	}

	if p.Budget.IsNegative() {
		ve.Add("budget", "não pode ser negativo")
	}

	if !p.Status.Valid() {
		ve.Add("status", "status inválido")
	}

	if !p.Priority.Valid() {
		ve.Add("priority", "prioridade inválida")
	}

	if p.CompanyID == 0 {
		ve.Add("companyId", "obrigatório")
	}

	if p.ResponsibleID == 0 {
		ve.Add("responsibleId", "obrigatório")
	}

	if ve.Empty() {
		return nil
	}

	return ve
}

// CreateProject validates before any round-trip: a rejected form never
// reaches the backend.
func (s *Service) CreateProject(ctx context.Context, project entity.Project) (entity.Project, error) {
	if err := validateProject(project); err != nil {
		return entity.Project{}, err
	}

	created, err := s.backend.CreateProject(ctx, project)
	if err != nil {
		return entity.Project{}, fmt.Errorf("create project: %w", err)
	}

	s.audit(ctx, "project", "create", created.ID)

	return created, nil
}

func (s *Service) Projects(ctx context.Context) ([]entity.Project, error) {
	return s.backend.Projects(ctx)
}

func (s *Service) Project(ctx context.Context, id int64) (entity.Project, error) {
	return s.backend.Project(ctx, id)
}

func (s *Service) UpdateProject(ctx context.Context, project entity.Project) (entity.Project, error) {
	if err := validateProject(project); err != nil {
		return entity.Project{}, err
	}

	updated, err := s.backend.UpdateProject(ctx, project)
	if err != nil {
		return entity.Project{}, fmt.Errorf("update project: %w", err)
	}

	s.audit(ctx, "project", "update", updated.ID)

	return updated, nil
}

func (s *Service) DeleteProject(ctx context.Context, id int64) error {
	err := s.backend.DeleteProject(ctx, id)
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}

	s.audit(ctx, "project", "delete", id)

	return nil
}
