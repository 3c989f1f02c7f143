package models

import "fmt"

// Role is the closed set of account roles
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleInstructor Role = "instructor"
)

// ParseRole converts a stored or token role string into a Role
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin:
		return RoleAdmin, nil
	case RoleInstructor:
		return RoleInstructor, nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

// CanManageSchedule reports whether the role may mutate courses and lectures
func (r Role) CanManageSchedule() bool {
	switch r {
	case RoleAdmin:
		return true
	case RoleInstructor:
		return false
	default:
		return false
	}
}

// HasOwnSchedule reports whether lectures can be assigned to accounts of this role
func (r Role) HasOwnSchedule() bool {
	switch r {
	case RoleAdmin:
		return false
	case RoleInstructor:
		return true
	default:
		return false
	}
}
