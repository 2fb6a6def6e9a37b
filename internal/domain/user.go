package domain

import "time"

// Role determines default issue visibility and administrative capability.
type Role string

const (
	RoleVisitor Role = "visitor"
	RoleHelper  Role = "helper"
	RoleAdmin   Role = "admin"
)

// ValidRole reports whether the value is one of the three roles.
func ValidRole(r Role) bool {
	switch r {
	case RoleVisitor, RoleHelper, RoleAdmin:
		return true
	}
	return false
}

// IsStaff reports whether the role may see and work all issues.
func (r Role) IsStaff() bool {
	return r == RoleHelper || r == RoleAdmin
}

// UserStatus represents lifecycle states for an account.
type UserStatus string

const (
	UserStatusActive   UserStatus = "active"
	UserStatusInactive UserStatus = "inactive"
)

// ValidUserStatus reports whether the value is a known account status.
func ValidUserStatus(s UserStatus) bool {
	return s == UserStatusActive || s == UserStatusInactive
}

// User is the domain model for accounts. Accounts are never hard-deleted;
// deactivation flips Status to inactive, which blocks login.
type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	Location     string
	ProfileImage *string
	Role         Role
	Status       UserStatus
	CreatedAt    time.Time
}
