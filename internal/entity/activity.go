package entity

import (
	"time"
)

type Activity struct {
	ID            int64
	Title         string
	Description   string
	StartDate     *time.Time
	TargetDate    *time.Time
	Status        ActivityStatus
	Priority      Priority
	ProjectID     int64
	ParentID      *int64
	ResponsibleID *int64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (a Activity) Completed() bool {
	return a.Status == ActivityStatusCompleted
}

type ActivityStatus string

const (
	ActivityStatusPending    ActivityStatus = "pending"
	ActivityStatusInProgress ActivityStatus = "in_progress"
	ActivityStatusCompleted  ActivityStatus = "completed"
	ActivityStatusCancelled  ActivityStatus = "cancelled"
)

func (s ActivityStatus) Valid() bool {
	switch s {
	case ActivityStatusPending, ActivityStatusInProgress,
		ActivityStatusCompleted, ActivityStatusCancelled:
		return true
	}

	return false
}

// ActivityNode is a top-level activity in a project tree. Only nodes carry
// children; a SubActivity cannot nest further, which makes the one-level
// depth limit a property of the type instead of a convention.
type ActivityNode struct {
	Activity
	SubActivities []SubActivity
}

// SubActivity is a nested child of exactly one ActivityNode.
type SubActivity struct {
	Activity
}

// ProjectTree is a project together with its two-level activity tree.
type ProjectTree struct {
	Project    Project
	Activities []ActivityNode
}
