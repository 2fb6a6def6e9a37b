package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/issue-tracker/internal/domain"
)

// IssueListView identifies one of the query shapes a listing request can
// resolve to. Which view applies is decided by the service layer from
// the filter keyword and caller role.
type IssueListView int

const (
	// ViewOwn lists the caller's issues, newest first.
	ViewOwn IssueListView = iota
	// ViewOwnActive lists the caller's unresolved issues, newest first.
	ViewOwnActive
	// ViewOwnResolved lists the caller's resolved issues, newest first.
	ViewOwnResolved
	// ViewAllResolved lists every resolved issue, newest first.
	ViewAllResolved
	// ViewAllActive lists every unresolved issue ordered by status rank
	// (new, open, stalled) then newest first.
	ViewAllActive
)

// IssueRepository encapsulates issue persistence.
type IssueRepository interface {
	Create(ctx context.Context, issue *domain.Issue) error
	GetByID(ctx context.Context, id int64) (*domain.Issue, error)
	GetWithReporter(ctx context.Context, id int64) (*domain.IssueWithReporter, error)
	List(ctx context.Context, view IssueListView, userID int64) ([]domain.IssueWithReporter, error)
	UpdateStatus(ctx context.Context, id int64, status domain.IssueStatus) error
	CountByStatus(ctx context.Context) (map[domain.IssueStatus]int, error)
}

type issueRepository struct {
	pool *pgxpool.Pool
}

// NewIssueRepository instantiates repository.
func NewIssueRepository(pool *pgxpool.Pool) IssueRepository {
	return &issueRepository{pool: pool}
}

func (r *issueRepository) Create(ctx context.Context, issue *domain.Issue) error {
	const query = `
        INSERT INTO issues (user_id, summary, description, status)
        VALUES ($1, $2, $3, $4)
        RETURNING issue_id, created_at`
	return r.pool.QueryRow(ctx, query,
		issue.ReporterID,
		issue.Summary,
		issue.Description,
		issue.Status,
	).Scan(&issue.ID, &issue.CreatedAt)
}

func (r *issueRepository) GetByID(ctx context.Context, id int64) (*domain.Issue, error) {
	const query = `
        SELECT issue_id, user_id, summary, description, status, created_at
        FROM issues WHERE issue_id=$1`

	var issue domain.Issue
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&issue.ID,
		&issue.ReporterID,
		&issue.Summary,
		&issue.Description,
		&issue.Status,
		&issue.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &issue, nil
}

const issueListSelect = `
    SELECT i.issue_id, i.user_id, i.summary, i.description, i.status, i.created_at,
           u.username, u.first_name, u.last_name, u.profile_image,
           COUNT(c.comment_id) AS comment_count
    FROM issues i
    JOIN users u ON i.user_id = u.user_id
    LEFT JOIN comments c ON i.issue_id = c.issue_id`

const issueListGroup = ` GROUP BY i.issue_id, u.username, u.first_name, u.last_name, u.profile_image`

func (r *issueRepository) GetWithReporter(ctx context.Context, id int64) (*domain.IssueWithReporter, error) {
	query := issueListSelect + ` WHERE i.issue_id=$1` + issueListGroup

	var issue domain.IssueWithReporter
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&issue.ID,
		&issue.ReporterID,
		&issue.Summary,
		&issue.Description,
		&issue.Status,
		&issue.CreatedAt,
		&issue.ReporterUsername,
		&issue.ReporterFirstName,
		&issue.ReporterLastName,
		&issue.ReporterImage,
		&issue.CommentCount,
	); err != nil {
		return nil, err
	}
	return &issue, nil
}

func (r *issueRepository) List(ctx context.Context, view IssueListView, userID int64) ([]domain.IssueWithReporter, error) {
	var query string
	var args []any

	switch view {
	case ViewOwnActive:
		query = issueListSelect + ` WHERE i.user_id=$1 AND i.status <> 'resolved'` +
			issueListGroup + ` ORDER BY i.created_at DESC`
		args = []any{userID}
	case ViewOwnResolved:
		query = issueListSelect + ` WHERE i.user_id=$1 AND i.status = 'resolved'` +
			issueListGroup + ` ORDER BY i.created_at DESC`
		args = []any{userID}
	case ViewAllResolved:
		query = issueListSelect + ` WHERE i.status = 'resolved'` +
			issueListGroup + ` ORDER BY i.created_at DESC`
	case ViewAllActive:
		query = issueListSelect + ` WHERE i.status <> 'resolved'` + issueListGroup + `
            ORDER BY
                CASE i.status
                    WHEN 'new' THEN 1
                    WHEN 'open' THEN 2
                    WHEN 'stalled' THEN 3
                END,
                i.created_at DESC`
	default:
		query = issueListSelect + ` WHERE i.user_id=$1` +
			issueListGroup + ` ORDER BY i.created_at DESC`
		args = []any{userID}
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanIssueList(rows)
}

func scanIssueList(rows pgx.Rows) ([]domain.IssueWithReporter, error) {
	var result []domain.IssueWithReporter
	for rows.Next() {
		var issue domain.IssueWithReporter
		if err := rows.Scan(
			&issue.ID,
			&issue.ReporterID,
			&issue.Summary,
			&issue.Description,
			&issue.Status,
			&issue.CreatedAt,
			&issue.ReporterUsername,
			&issue.ReporterFirstName,
			&issue.ReporterLastName,
			&issue.ReporterImage,
			&issue.CommentCount,
		); err != nil {
			return nil, err
		}
		result = append(result, issue)
	}
	return result, rows.Err()
}

func (r *issueRepository) UpdateStatus(ctx context.Context, id int64, status domain.IssueStatus) error {
	cmd, err := r.pool.Exec(ctx, `UPDATE issues SET status=$1 WHERE issue_id=$2`, status, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *issueRepository) CountByStatus(ctx context.Context) (map[domain.IssueStatus]int, error) {
	const query = `SELECT status, COUNT(*) FROM issues GROUP BY status`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := map[domain.IssueStatus]int{
		domain.IssueStatusNew:      0,
		domain.IssueStatusOpen:     0,
		domain.IssueStatusStalled:  0,
		domain.IssueStatusResolved: 0,
	}
	for rows.Next() {
		var status domain.IssueStatus
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}
	return counts, rows.Err()
}
