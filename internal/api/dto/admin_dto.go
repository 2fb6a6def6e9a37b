package dto

import "github.com/spec-kit/issue-tracker/internal/domain"

// UpdateUserRoleRequest payload.
type UpdateUserRoleRequest struct {
	Role domain.Role `json:"role" form:"role"`
}

// UpdateUserStatusRequest payload.
type UpdateUserStatusRequest struct {
	Status domain.UserStatus `json:"status" form:"status"`
}

// DashboardResponse carries the admin/helper home counts.
type DashboardResponse struct {
	Issues map[domain.IssueStatus]int `json:"issues"`
	Users  map[domain.Role]int        `json:"users,omitempty"`
}
