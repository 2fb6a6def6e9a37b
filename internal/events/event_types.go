package events

import (
	"time"

	"github.com/spec-kit/issue-tracker/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventIssueReported      EventType = "issue_reported"
	EventIssueCommented     EventType = "issue_commented"
	EventIssueStatusChanged EventType = "issue_status_changed"
	EventUserRoleChanged    EventType = "user_role_changed"
	EventUserStatusChanged  EventType = "user_status_changed"
)

// Actor encapsulates actor metadata for an event.
type Actor struct {
	UserID int64       `json:"user_id"`
	Role   domain.Role `json:"role"`
}

// Event represents a domain event emitted by services.
type Event struct {
	Type      EventType   `json:"type"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// IssueReportedPayload payload.
type IssueReportedPayload struct {
	IssueID int64  `json:"issue_id"`
	Summary string `json:"summary"`
}

// IssueCommentedPayload payload.
type IssueCommentedPayload struct {
	IssueID     int64 `json:"issue_id"`
	CommentID   int64 `json:"comment_id"`
	AutoOpened  bool  `json:"auto_opened"`
	AuthorStaff bool  `json:"author_staff"`
}

// IssueStatusChangedPayload payload.
type IssueStatusChangedPayload struct {
	IssueID   int64              `json:"issue_id"`
	OldStatus domain.IssueStatus `json:"old_status"`
	NewStatus domain.IssueStatus `json:"new_status"`
}

// UserRoleChangedPayload payload.
type UserRoleChangedPayload struct {
	TargetUserID int64       `json:"target_user_id"`
	OldRole      domain.Role `json:"old_role"`
	NewRole      domain.Role `json:"new_role"`
}

// UserStatusChangedPayload payload.
type UserStatusChangedPayload struct {
	TargetUserID int64             `json:"target_user_id"`
	OldStatus    domain.UserStatus `json:"old_status"`
	NewStatus    domain.UserStatus `json:"new_status"`
}
