package entity

import (
	"time"
)

type User struct {
	ID        int64
	Name      string
	CPF       string
	BirthDate *time.Time
	Email     string
	Phone     string
	Role      UserRole
	CompanyID *int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

type UserRole string

const (
	RoleRegular    UserRole = "regular"
	RoleAdmin      UserRole = "admin"
	RoleSuperAdmin UserRole = "superadmin"
)

func (r UserRole) Valid() bool {
	switch r {
	case RoleRegular, RoleAdmin, RoleSuperAdmin:
		return true
	}

	return false
}

// AtLeast reports whether r grants at least the privileges of other.
// Ordering: regular < admin < superadmin.
func (r UserRole) AtLeast(other UserRole) bool {
	return r.level() >= other.level()
}

func (r UserRole) level() int {
	switch r {
	case RoleSuperAdmin:
		return 3
	case RoleAdmin:
		return 2
	case RoleRegular:
		return 1
	}

	return 0
}
