package domain

import "time"

// IssueStatus enumerates lifecycle states for issues.
type IssueStatus string

const (
	IssueStatusNew      IssueStatus = "new"
	IssueStatusOpen     IssueStatus = "open"
	IssueStatusStalled  IssueStatus = "stalled"
	IssueStatusResolved IssueStatus = "resolved"
)

// ValidIssueStatus reports whether the value is a known issue status.
func ValidIssueStatus(s IssueStatus) bool {
	switch s {
	case IssueStatusNew, IssueStatusOpen, IssueStatusStalled, IssueStatusResolved:
		return true
	}
	return false
}

// Rank orders active statuses for the staff listing: new sorts before
// open, open before stalled. Resolved issues never appear in the active
// view and rank last.
func (s IssueStatus) Rank() int {
	switch s {
	case IssueStatusNew:
		return 1
	case IssueStatusOpen:
		return 2
	case IssueStatusStalled:
		return 3
	default:
		return 4
	}
}

// Issue is the aggregate for reported problems. Reporter ownership only
// affects visibility; helpers and admins may mutate any issue.
type Issue struct {
	ID          int64
	ReporterID  int64
	Summary     string
	Description string
	Status      IssueStatus
	CreatedAt   time.Time
}

// IssueWithReporter decorates an issue with reporter identity and the
// comment count shown on listings.
type IssueWithReporter struct {
	Issue
	ReporterUsername  string
	ReporterFirstName string
	ReporterLastName  string
	ReporterImage     *string
	CommentCount      int
}
