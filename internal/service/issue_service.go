package service

import (
	"context"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/issue-tracker/internal/domain"
	"github.com/spec-kit/issue-tracker/internal/events"
	"github.com/spec-kit/issue-tracker/internal/repository"
	apperrors "github.com/spec-kit/issue-tracker/pkg/util"
)

// Listing filter keywords accepted on /issues/list.
const (
	FilterMyIssues   = "my_issues"
	FilterMyActive   = "my_active"
	FilterMyResolved = "my_resolved"
	FilterResolved   = "resolved"
)

// IssueService coordinates issue workflows.
type IssueService struct {
	issues     repository.IssueRepository
	comments   repository.CommentRepository
	dispatcher events.Dispatcher
}

// IssueDependencies bundles repositories for the issue service.
type IssueDependencies struct {
	IssueRepo   repository.IssueRepository
	CommentRepo repository.CommentRepository
	Dispatcher  events.Dispatcher
}

// NewIssueService constructs the service.
func NewIssueService(deps IssueDependencies) *IssueService {
	return &IssueService{
		issues:     deps.IssueRepo,
		comments:   deps.CommentRepo,
		dispatcher: deps.Dispatcher,
	}
}

// ResolveListView maps a filter keyword and caller role to a query shape.
// Explicit my_* filters always win regardless of role; role-based
// defaults apply only when no my_* filter is given.
func ResolveListView(filter string, role domain.Role) repository.IssueListView {
	switch filter {
	case FilterMyIssues:
		return repository.ViewOwn
	case FilterMyActive:
		return repository.ViewOwnActive
	case FilterMyResolved:
		return repository.ViewOwnResolved
	}
	if role.IsStaff() {
		if filter == FilterResolved {
			return repository.ViewAllResolved
		}
		return repository.ViewAllActive
	}
	return repository.ViewOwn
}

// Report creates a new issue for the caller with status new.
func (s *IssueService) Report(ctx context.Context, actor *domain.User, summary, description string) (*domain.Issue, error) {
	summary = strings.TrimSpace(summary)
	description = strings.TrimSpace(description)

	fieldErrors := map[string]any{}
	if summary == "" {
		fieldErrors["summary"] = "Summary is required"
	}
	if description == "" {
		fieldErrors["description"] = "Description is required"
	}
	if len(fieldErrors) > 0 {
		return nil, apperrors.NewValidationError("issue validation failed", fieldErrors)
	}

	issue := &domain.Issue{
		ReporterID:  actor.ID,
		Summary:     summary,
		Description: description,
		Status:      domain.IssueStatusNew,
	}
	if err := s.issues.Create(ctx, issue); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.publish(ctx, events.Event{
		Type:  events.EventIssueReported,
		Actor: events.Actor{UserID: actor.ID, Role: actor.Role},
		Payload: events.IssueReportedPayload{
			IssueID: issue.ID,
			Summary: issue.Summary,
		},
	})
	return issue, nil
}

// List returns issues for the view resolved from the filter keyword and
// the caller's role.
func (s *IssueService) List(ctx context.Context, actor *domain.User, filter string) ([]domain.IssueWithReporter, error) {
	view := ResolveListView(filter, actor.Role)
	items, err := s.issues.List(ctx, view, actor.ID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return items, nil
}

// Get returns an issue with its comment thread, enforcing the visibility
// rule: only the reporter or a helper/admin may view it.
func (s *IssueService) Get(ctx context.Context, actor *domain.User, issueID int64) (*domain.IssueWithReporter, []domain.CommentWithAuthor, error) {
	issue, err := s.issues.GetWithReporter(ctx, issueID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil, apperrors.NewNotFound("issue", nil)
		}
		return nil, nil, apperrors.MapError(err)
	}
	if !actor.Role.IsStaff() && issue.ReporterID != actor.ID {
		return nil, nil, apperrors.NewForbidden("access denied")
	}
	comments, err := s.comments.ListByIssue(ctx, issueID)
	if err != nil {
		return nil, nil, apperrors.MapError(err)
	}
	return issue, comments, nil
}

// AddComment appends a comment, enforcing the same visibility rule as
// Get. A helper/admin comment on an issue that is not open forces the
// issue to open in the same unit of work; visitor comments never
// transition.
func (s *IssueService) AddComment(ctx context.Context, actor *domain.User, issueID int64, content string) (*domain.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperrors.NewValidationError("Comment cannot be empty",
			map[string]any{"content": "Comment cannot be empty"})
	}

	issue, err := s.issues.GetByID(ctx, issueID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("issue", nil)
		}
		return nil, apperrors.MapError(err)
	}
	if !actor.Role.IsStaff() && issue.ReporterID != actor.ID {
		return nil, apperrors.NewForbidden("access denied")
	}

	forceOpen := actor.Role.IsStaff() && issue.Status != domain.IssueStatusOpen
	comment := &domain.Comment{
		IssueID:  issue.ID,
		AuthorID: actor.ID,
		Content:  content,
	}
	if err := s.comments.Create(ctx, comment, forceOpen); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.publish(ctx, events.Event{
		Type:  events.EventIssueCommented,
		Actor: events.Actor{UserID: actor.ID, Role: actor.Role},
		Payload: events.IssueCommentedPayload{
			IssueID:     issue.ID,
			CommentID:   comment.ID,
			AutoOpened:  forceOpen,
			AuthorStaff: actor.Role.IsStaff(),
		},
	})
	return comment, nil
}

// UpdateStatus sets an issue to any of the four states. No transition
// graph is enforced beyond the allow-list.
func (s *IssueService) UpdateStatus(ctx context.Context, actor *domain.User, issueID int64, status domain.IssueStatus) error {
	if !domain.ValidIssueStatus(status) {
		return apperrors.NewValidationError("Invalid status",
			map[string]any{"status": "Invalid status"})
	}
	issue, err := s.issues.GetByID(ctx, issueID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewNotFound("issue", nil)
		}
		return apperrors.MapError(err)
	}
	if err := s.issues.UpdateStatus(ctx, issueID, status); err != nil {
		return apperrors.MapError(err)
	}
	s.publish(ctx, events.Event{
		Type:  events.EventIssueStatusChanged,
		Actor: events.Actor{UserID: actor.ID, Role: actor.Role},
		Payload: events.IssueStatusChangedPayload{
			IssueID:   issueID,
			OldStatus: issue.Status,
			NewStatus: status,
		},
	})
	return nil
}

// CountByStatus returns issue counts for dashboards.
func (s *IssueService) CountByStatus(ctx context.Context) (map[domain.IssueStatus]int, error) {
	counts, err := s.issues.CountByStatus(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return counts, nil
}

func (s *IssueService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	event.Timestamp = time.Now()
	_ = s.dispatcher.Publish(ctx, event)
}
