package service_test

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/issue-tracker/internal/domain"
	"github.com/spec-kit/issue-tracker/internal/repository"
)

type fakeUserRepo struct {
	users  map[int64]*domain.User
	nextID int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[int64]*domain.User{}, nextID: 1}
}

func (f *fakeUserRepo) add(user domain.User) *domain.User {
	if user.ID == 0 {
		user.ID = f.nextID
		f.nextID++
	} else if user.ID >= f.nextID {
		f.nextID = user.ID + 1
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	f.users[user.ID] = &user
	return f.users[user.ID]
}

func (f *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	user.ID = f.nextID
	f.nextID++
	user.CreatedAt = time.Now()
	copied := *user
	f.users[user.ID] = &copied
	return nil
}

func (f *fakeUserRepo) UpdateProfile(_ context.Context, user *domain.User) error {
	stored, ok := f.users[user.ID]
	if !ok {
		return pgx.ErrNoRows
	}
	stored.FirstName = user.FirstName
	stored.LastName = user.LastName
	stored.Email = user.Email
	stored.Location = user.Location
	return nil
}

func (f *fakeUserRepo) UpdatePassword(_ context.Context, id int64, hash string) error {
	stored, ok := f.users[id]
	if !ok {
		return pgx.ErrNoRows
	}
	stored.PasswordHash = hash
	return nil
}

func (f *fakeUserRepo) UpdateProfileImage(_ context.Context, id int64, filename *string) error {
	stored, ok := f.users[id]
	if !ok {
		return pgx.ErrNoRows
	}
	stored.ProfileImage = filename
	return nil
}

func (f *fakeUserRepo) UpdateRole(_ context.Context, id int64, role domain.Role) error {
	stored, ok := f.users[id]
	if !ok {
		return pgx.ErrNoRows
	}
	stored.Role = role
	return nil
}

func (f *fakeUserRepo) UpdateStatus(_ context.Context, id int64, status domain.UserStatus) error {
	stored, ok := f.users[id]
	if !ok {
		return pgx.ErrNoRows
	}
	stored.Status = status
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *user
	return &copied, nil
}

func (f *fakeUserRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, user := range f.users {
		if user.Username == username {
			copied := *user
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeUserRepo) Search(_ context.Context, term string) ([]domain.User, error) {
	term = strings.ToLower(term)
	result := make([]domain.User, 0, len(f.users))
	for _, user := range f.users {
		if term != "" &&
			!strings.Contains(strings.ToLower(user.Username), term) &&
			!strings.Contains(strings.ToLower(user.FirstName), term) &&
			!strings.Contains(strings.ToLower(user.LastName), term) {
			continue
		}
		result = append(result, *user)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Role != result[j].Role {
			return result[i].Role < result[j].Role
		}
		return result[i].Username < result[j].Username
	})
	return result, nil
}

func (f *fakeUserRepo) CountActiveByRole(_ context.Context) (map[domain.Role]int, error) {
	counts := map[domain.Role]int{
		domain.RoleVisitor: 0,
		domain.RoleHelper:  0,
		domain.RoleAdmin:   0,
	}
	for _, user := range f.users {
		if user.Status == domain.UserStatusActive {
			counts[user.Role]++
		}
	}
	return counts, nil
}

type fakeIssueRepo struct {
	issues   map[int64]*domain.Issue
	reporter map[int64]*domain.User
	nextID   int64
}

func newFakeIssueRepo() *fakeIssueRepo {
	return &fakeIssueRepo{
		issues:   map[int64]*domain.Issue{},
		reporter: map[int64]*domain.User{},
		nextID:   1,
	}
}

func (f *fakeIssueRepo) add(issue domain.Issue, reporter *domain.User) *domain.Issue {
	if issue.ID == 0 {
		issue.ID = f.nextID
		f.nextID++
	} else if issue.ID >= f.nextID {
		f.nextID = issue.ID + 1
	}
	if issue.CreatedAt.IsZero() {
		issue.CreatedAt = time.Now()
	}
	f.issues[issue.ID] = &issue
	f.reporter[issue.ID] = reporter
	return f.issues[issue.ID]
}

func (f *fakeIssueRepo) Create(_ context.Context, issue *domain.Issue) error {
	issue.ID = f.nextID
	f.nextID++
	issue.CreatedAt = time.Now()
	copied := *issue
	f.issues[issue.ID] = &copied
	return nil
}

func (f *fakeIssueRepo) GetByID(_ context.Context, id int64) (*domain.Issue, error) {
	issue, ok := f.issues[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *issue
	return &copied, nil
}

func (f *fakeIssueRepo) GetWithReporter(_ context.Context, id int64) (*domain.IssueWithReporter, error) {
	issue, ok := f.issues[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return f.decorate(issue), nil
}

func (f *fakeIssueRepo) decorate(issue *domain.Issue) *domain.IssueWithReporter {
	decorated := &domain.IssueWithReporter{Issue: *issue}
	if reporter, ok := f.reporter[issue.ID]; ok && reporter != nil {
		decorated.ReporterUsername = reporter.Username
		decorated.ReporterFirstName = reporter.FirstName
		decorated.ReporterLastName = reporter.LastName
		decorated.ReporterImage = reporter.ProfileImage
	}
	return decorated
}

// List mirrors the SQL query shapes, including the active view's status
// rank ordering with newest-first tie break.
func (f *fakeIssueRepo) List(_ context.Context, view repository.IssueListView, userID int64) ([]domain.IssueWithReporter, error) {
	var result []domain.IssueWithReporter
	for _, issue := range f.issues {
		include := false
		switch view {
		case repository.ViewOwnActive:
			include = issue.ReporterID == userID && issue.Status != domain.IssueStatusResolved
		case repository.ViewOwnResolved:
			include = issue.ReporterID == userID && issue.Status == domain.IssueStatusResolved
		case repository.ViewAllResolved:
			include = issue.Status == domain.IssueStatusResolved
		case repository.ViewAllActive:
			include = issue.Status != domain.IssueStatusResolved
		default:
			include = issue.ReporterID == userID
		}
		if include {
			result = append(result, *f.decorate(issue))
		}
	}

	sort.Slice(result, func(i, j int) bool {
		if view == repository.ViewAllActive {
			ri, rj := result[i].Status.Rank(), result[j].Status.Rank()
			if ri != rj {
				return ri < rj
			}
		}
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (f *fakeIssueRepo) UpdateStatus(_ context.Context, id int64, status domain.IssueStatus) error {
	issue, ok := f.issues[id]
	if !ok {
		return pgx.ErrNoRows
	}
	issue.Status = status
	return nil
}

func (f *fakeIssueRepo) CountByStatus(_ context.Context) (map[domain.IssueStatus]int, error) {
	counts := map[domain.IssueStatus]int{
		domain.IssueStatusNew:      0,
		domain.IssueStatusOpen:     0,
		domain.IssueStatusStalled:  0,
		domain.IssueStatusResolved: 0,
	}
	for _, issue := range f.issues {
		counts[issue.Status]++
	}
	return counts, nil
}

type fakeCommentRepo struct {
	issues   *fakeIssueRepo
	comments []domain.Comment
	nextID   int64
}

func newFakeCommentRepo(issues *fakeIssueRepo) *fakeCommentRepo {
	return &fakeCommentRepo{issues: issues, nextID: 1}
}

func (f *fakeCommentRepo) Create(_ context.Context, comment *domain.Comment, forceOpen bool) error {
	if _, ok := f.issues.issues[comment.IssueID]; !ok {
		return pgx.ErrNoRows
	}
	comment.ID = f.nextID
	f.nextID++
	comment.CreatedAt = time.Now()
	f.comments = append(f.comments, *comment)
	if forceOpen {
		issue := f.issues.issues[comment.IssueID]
		if issue.Status != domain.IssueStatusOpen {
			issue.Status = domain.IssueStatusOpen
		}
	}
	return nil
}

func (f *fakeCommentRepo) ListByIssue(_ context.Context, issueID int64) ([]domain.CommentWithAuthor, error) {
	var result []domain.CommentWithAuthor
	for _, comment := range f.comments {
		if comment.IssueID == issueID {
			result = append(result, domain.CommentWithAuthor{Comment: comment})
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.Before(result[j].CreatedAt) })
	return result, nil
}
