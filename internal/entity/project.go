package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

type Project struct {
	ID            int64
	Title         string
	Description   string
	StartDate     time.Time
	EndDate       *time.Time
	Budget        decimal.Decimal
	Status        ProjectStatus
	Priority      Priority
	CompanyID     int64
	ResponsibleID int64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type ProjectStatus string

const (
	ProjectStatusPlanning   ProjectStatus = "planning"
	ProjectStatusInProgress ProjectStatus = "in_progress"
	ProjectStatusPaused     ProjectStatus = "paused"
	ProjectStatusCompleted  ProjectStatus = "completed"
	ProjectStatusCancelled  ProjectStatus = "cancelled"
)

func (s ProjectStatus) Valid() bool {
	switch s {
	case ProjectStatusPlanning, ProjectStatusInProgress, ProjectStatusPaused,
		ProjectStatusCompleted, ProjectStatusCancelled:
		return true
	}

	return false
}

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}

	return false
}
