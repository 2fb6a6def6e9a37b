package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/spec-kit/issue-tracker/internal/domain"
	"github.com/spec-kit/issue-tracker/internal/repository"
	"github.com/spec-kit/issue-tracker/internal/service"
	apperrors "github.com/spec-kit/issue-tracker/pkg/util"
)

func TestResolveListView(t *testing.T) {
	cases := []struct {
		name   string
		filter string
		role   domain.Role
		want   repository.IssueListView
	}{
		{"my_issues wins for visitor", service.FilterMyIssues, domain.RoleVisitor, repository.ViewOwn},
		{"my_issues wins for helper", service.FilterMyIssues, domain.RoleHelper, repository.ViewOwn},
		{"my_issues wins for admin", service.FilterMyIssues, domain.RoleAdmin, repository.ViewOwn},
		{"my_active wins for admin", service.FilterMyActive, domain.RoleAdmin, repository.ViewOwnActive},
		{"my_resolved wins for helper", service.FilterMyResolved, domain.RoleHelper, repository.ViewOwnResolved},
		{"resolved for helper", service.FilterResolved, domain.RoleHelper, repository.ViewAllResolved},
		{"resolved for admin", service.FilterResolved, domain.RoleAdmin, repository.ViewAllResolved},
		{"resolved for visitor falls back to own", service.FilterResolved, domain.RoleVisitor, repository.ViewOwn},
		{"no filter helper default", "", domain.RoleHelper, repository.ViewAllActive},
		{"no filter admin default", "", domain.RoleAdmin, repository.ViewAllActive},
		{"no filter visitor default", "", domain.RoleVisitor, repository.ViewOwn},
		{"unknown filter helper default", "bogus", domain.RoleHelper, repository.ViewAllActive},
		{"unknown filter visitor default", "bogus", domain.RoleVisitor, repository.ViewOwn},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, service.ResolveListView(tc.filter, tc.role))
		})
	}
}

func newIssueFixture() (*service.IssueService, *fakeIssueRepo, *fakeCommentRepo) {
	issues := newFakeIssueRepo()
	comments := newFakeCommentRepo(issues)
	svc := service.NewIssueService(service.IssueDependencies{
		IssueRepo:   issues,
		CommentRepo: comments,
	})
	return svc, issues, comments
}

func visitor(id int64) *domain.User {
	return &domain.User{ID: id, Username: "visitor", Role: domain.RoleVisitor, Status: domain.UserStatusActive}
}

func helper(id int64) *domain.User {
	return &domain.User{ID: id, Username: "helper", Role: domain.RoleHelper, Status: domain.UserStatusActive}
}

func admin(id int64) *domain.User {
	return &domain.User{ID: id, Username: "admin", Role: domain.RoleAdmin, Status: domain.UserStatusActive}
}

func TestReportIssue(t *testing.T) {
	svc, _, _ := newIssueFixture()
	reporter := visitor(1)

	issue, err := svc.Report(context.Background(), reporter, "printer broken", "the office printer jams")
	require.NoError(t, err)
	require.Equal(t, domain.IssueStatusNew, issue.Status)
	require.Equal(t, reporter.ID, issue.ReporterID)

	_, err = svc.Report(context.Background(), reporter, "", "")
	require.Error(t, err)
	domainErr := apperrors.ToDomainError(err)
	require.Equal(t, "VALIDATION_FAILED", domainErr.Code)
	require.Contains(t, domainErr.Details, "summary")
	require.Contains(t, domainErr.Details, "description")
}

func TestGetIssueVisibility(t *testing.T) {
	svc, issues, _ := newIssueFixture()
	reporter := visitor(1)
	stranger := visitor(2)
	issue := issues.add(domain.Issue{ReporterID: reporter.ID, Summary: "s", Status: domain.IssueStatusNew}, reporter)

	_, _, err := svc.Get(context.Background(), reporter, issue.ID)
	require.NoError(t, err)

	_, _, err = svc.Get(context.Background(), stranger, issue.ID)
	require.Error(t, err)
	require.Equal(t, 403, apperrors.ToDomainError(err).HTTPStatus)

	_, _, err = svc.Get(context.Background(), helper(3), issue.ID)
	require.NoError(t, err)
	_, _, err = svc.Get(context.Background(), admin(4), issue.ID)
	require.NoError(t, err)

	_, _, err = svc.Get(context.Background(), reporter, 999)
	require.Equal(t, 404, apperrors.ToDomainError(err).HTTPStatus)
}

func TestAddCommentVisibility(t *testing.T) {
	svc, issues, _ := newIssueFixture()
	reporter := visitor(1)
	stranger := visitor(2)
	issue := issues.add(domain.Issue{ReporterID: reporter.ID, Summary: "s", Status: domain.IssueStatusNew}, reporter)

	_, err := svc.AddComment(context.Background(), stranger, issue.ID, "hello")
	require.Error(t, err)
	require.Equal(t, 403, apperrors.ToDomainError(err).HTTPStatus)

	_, err = svc.AddComment(context.Background(), reporter, issue.ID, "   ")
	require.Error(t, err)
	require.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)

	_, err = svc.AddComment(context.Background(), reporter, issue.ID, "any update?")
	require.NoError(t, err)
}

func TestStaffCommentForcesOpen(t *testing.T) {
	for _, status := range []domain.IssueStatus{
		domain.IssueStatusNew,
		domain.IssueStatusStalled,
		domain.IssueStatusResolved,
	} {
		t.Run(string(status), func(t *testing.T) {
			svc, issues, _ := newIssueFixture()
			reporter := visitor(1)
			issue := issues.add(domain.Issue{ReporterID: reporter.ID, Summary: "s", Status: status}, reporter)

			_, err := svc.AddComment(context.Background(), helper(2), issue.ID, "looking into it")
			require.NoError(t, err)

			updated, err := issues.GetByID(context.Background(), issue.ID)
			require.NoError(t, err)
			require.Equal(t, domain.IssueStatusOpen, updated.Status)
		})
	}
}

func TestVisitorCommentNeverTransitions(t *testing.T) {
	svc, issues, _ := newIssueFixture()
	reporter := visitor(1)
	issue := issues.add(domain.Issue{ReporterID: reporter.ID, Summary: "s", Status: domain.IssueStatusStalled}, reporter)

	_, err := svc.AddComment(context.Background(), reporter, issue.ID, "still broken")
	require.NoError(t, err)

	updated, err := issues.GetByID(context.Background(), issue.ID)
	require.NoError(t, err)
	require.Equal(t, domain.IssueStatusStalled, updated.Status)
}

func TestSequentialStaffCommentsOnNewIssue(t *testing.T) {
	svc, issues, _ := newIssueFixture()
	reporter := visitor(1)
	issue := issues.add(domain.Issue{ReporterID: reporter.ID, Summary: "s", Status: domain.IssueStatusNew}, reporter)

	_, err := svc.AddComment(context.Background(), helper(2), issue.ID, "first")
	require.NoError(t, err)
	updated, err := issues.GetByID(context.Background(), issue.ID)
	require.NoError(t, err)
	require.Equal(t, domain.IssueStatusOpen, updated.Status)

	_, err = svc.AddComment(context.Background(), admin(3), issue.ID, "second")
	require.NoError(t, err)
	updated, err = issues.GetByID(context.Background(), issue.ID)
	require.NoError(t, err)
	require.Equal(t, domain.IssueStatusOpen, updated.Status)
}

func TestUpdateStatus(t *testing.T) {
	svc, issues, _ := newIssueFixture()
	reporter := visitor(1)
	issue := issues.add(domain.Issue{ReporterID: reporter.ID, Summary: "s", Status: domain.IssueStatusResolved}, reporter)

	// no transition graph: any state is reachable from any state
	for _, status := range []domain.IssueStatus{
		domain.IssueStatusNew,
		domain.IssueStatusStalled,
		domain.IssueStatusOpen,
		domain.IssueStatusResolved,
	} {
		require.NoError(t, svc.UpdateStatus(context.Background(), helper(2), issue.ID, status))
		updated, err := issues.GetByID(context.Background(), issue.ID)
		require.NoError(t, err)
		require.Equal(t, status, updated.Status)
	}

	err := svc.UpdateStatus(context.Background(), helper(2), issue.ID, "bogus")
	require.Error(t, err)
	require.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)

	err = svc.UpdateStatus(context.Background(), helper(2), 999, domain.IssueStatusOpen)
	require.Equal(t, 404, apperrors.ToDomainError(err).HTTPStatus)
}

func TestActiveListingOrder(t *testing.T) {
	svc, issues, _ := newIssueFixture()
	reporter := visitor(1)
	base := time.Now()

	issues.add(domain.Issue{ID: 1, ReporterID: 1, Summary: "old stalled", Status: domain.IssueStatusStalled, CreatedAt: base.Add(-4 * time.Hour)}, reporter)
	issues.add(domain.Issue{ID: 2, ReporterID: 1, Summary: "old new", Status: domain.IssueStatusNew, CreatedAt: base.Add(-3 * time.Hour)}, reporter)
	issues.add(domain.Issue{ID: 3, ReporterID: 1, Summary: "resolved", Status: domain.IssueStatusResolved, CreatedAt: base.Add(-2 * time.Hour)}, reporter)
	issues.add(domain.Issue{ID: 4, ReporterID: 1, Summary: "open", Status: domain.IssueStatusOpen, CreatedAt: base.Add(-1 * time.Hour)}, reporter)
	issues.add(domain.Issue{ID: 5, ReporterID: 1, Summary: "fresh new", Status: domain.IssueStatusNew, CreatedAt: base}, reporter)

	listed, err := svc.List(context.Background(), helper(2), "")
	require.NoError(t, err)

	ids := make([]int64, 0, len(listed))
	for _, issue := range listed {
		ids = append(ids, issue.ID)
	}
	// status rank first (new < open < stalled), then newest created first
	require.Equal(t, []int64{5, 2, 4, 1}, ids)
}

func TestOwnListingForVisitor(t *testing.T) {
	svc, issues, _ := newIssueFixture()
	mine := visitor(1)
	other := visitor(2)
	issues.add(domain.Issue{ID: 1, ReporterID: 1, Summary: "mine", Status: domain.IssueStatusNew}, mine)
	issues.add(domain.Issue{ID: 2, ReporterID: 2, Summary: "theirs", Status: domain.IssueStatusNew}, other)

	listed, err := svc.List(context.Background(), mine, "")
	require.NoError(t, err)
	require.Len(t, listed, 1)
	require.Equal(t, int64(1), listed[0].ID)
}
