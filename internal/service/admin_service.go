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

// AdminService covers user management and the admin dashboard.
type AdminService struct {
	users      repository.UserRepository
	issues     repository.IssueRepository
	dispatcher events.Dispatcher
}

// AdminDependencies bundles repositories for the admin service.
type AdminDependencies struct {
	UserRepo   repository.UserRepository
	IssueRepo  repository.IssueRepository
	Dispatcher events.Dispatcher
}

// NewAdminService constructs the service.
func NewAdminService(deps AdminDependencies) *AdminService {
	return &AdminService{
		users:      deps.UserRepo,
		issues:     deps.IssueRepo,
		dispatcher: deps.Dispatcher,
	}
}

// DashboardStats aggregates the admin home counts.
type DashboardStats struct {
	Issues map[domain.IssueStatus]int
	Users  map[domain.Role]int
}

// Dashboard returns issue counts by status and active-user counts by role.
func (s *AdminService) Dashboard(ctx context.Context) (*DashboardStats, error) {
	issueCounts, err := s.issues.CountByStatus(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	userCounts, err := s.users.CountActiveByRole(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return &DashboardStats{Issues: issueCounts, Users: userCounts}, nil
}

// SearchUsers lists accounts matching the term; an empty term lists all.
func (s *AdminService) SearchUsers(ctx context.Context, term string) ([]domain.User, error) {
	users, err := s.users.Search(ctx, strings.TrimSpace(term))
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return users, nil
}

// GetUser loads another user's profile for the admin view.
func (s *AdminService) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("user", nil)
		}
		return nil, apperrors.MapError(err)
	}
	return user, nil
}

// UpdateRole changes a user's role. Admins cannot change their own role.
func (s *AdminService) UpdateRole(ctx context.Context, actor *domain.User, targetID int64, role domain.Role) error {
	if targetID == actor.ID {
		return apperrors.NewForbidden("Cannot change your own role")
	}
	if !domain.ValidRole(role) {
		return apperrors.NewValidationError("Invalid role",
			map[string]any{"role": "Invalid role"})
	}
	target, err := s.GetUser(ctx, targetID)
	if err != nil {
		return err
	}
	if err := s.users.UpdateRole(ctx, targetID, role); err != nil {
		return apperrors.MapError(err)
	}
	s.publish(ctx, events.Event{
		Type:  events.EventUserRoleChanged,
		Actor: events.Actor{UserID: actor.ID, Role: actor.Role},
		Payload: events.UserRoleChangedPayload{
			TargetUserID: targetID,
			OldRole:      target.Role,
			NewRole:      role,
		},
	})
	return nil
}

// UpdateStatus toggles a user's active flag. Admins cannot change their
// own status.
func (s *AdminService) UpdateStatus(ctx context.Context, actor *domain.User, targetID int64, status domain.UserStatus) error {
	if targetID == actor.ID {
		return apperrors.NewForbidden("Cannot change your own status")
	}
	if !domain.ValidUserStatus(status) {
		return apperrors.NewValidationError("Invalid status",
			map[string]any{"status": "Invalid status"})
	}
	target, err := s.GetUser(ctx, targetID)
	if err != nil {
		return err
	}
	if err := s.users.UpdateStatus(ctx, targetID, status); err != nil {
		return apperrors.MapError(err)
	}
	s.publish(ctx, events.Event{
		Type:  events.EventUserStatusChanged,
		Actor: events.Actor{UserID: actor.ID, Role: actor.Role},
		Payload: events.UserStatusChangedPayload{
			TargetUserID: targetID,
			OldStatus:    target.Status,
			NewStatus:    status,
		},
	})
	return nil
}

func (s *AdminService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	event.Timestamp = time.Now()
	_ = s.dispatcher.Publish(ctx, event)
}
