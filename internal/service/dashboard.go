package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/gestaoplus/admin-gateway/internal/entity"
)

const recentProjectsLimit = 5

type Dashboard struct {
	Companies       int
	Users           int
	Projects        int
	ActiveProjects  int
	RecentProjects  []entity.Project
	ProjectsByState map[entity.ProjectStatus]int
}

// Dashboard aggregates the landing-page numbers from plain backend list
// calls; the backend has no dedicated summary endpoint.
func (s *Service) Dashboard(ctx context.Context) (Dashboard, error) {
	companies, err := s.backend.Companies(ctx)
	if err != nil {
		return Dashboard{}, fmt.Errorf("list companies: %w", err)
	}

	users, err := s.backend.Users(ctx)
	if err != nil {
		return Dashboard{}, fmt.Errorf("list users: %w", err)
	}

	projects, err := s.backend.Projects(ctx)
	if err != nil {
		return Dashboard{}, fmt.Errorf("list projects: %w", err)
	}

	d := Dashboard{
		Companies:       len(companies),
		Users:           len(users),
		Projects:        len(projects),
		ProjectsByState: make(map[entity.ProjectStatus]int),
	}

	for _, p := range projects {
		d.ProjectsByState[p.Status]++

		if p.Status == entity.ProjectStatusInProgress {
			d.ActiveProjects++
		}
	}

	sort.Slice(projects, func(i, j int) bool {
		return projects[i].CreatedAt.After(projects[j].CreatedAt)
	})

	if len(projects) > recentProjectsLimit {
		projects = projects[:recentProjectsLimit]
	}

	d.RecentProjects = projects

	return d, nil
}
