package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/issue-tracker/internal/domain"
)

// CommentRepository encapsulates comment persistence.
type CommentRepository interface {
	// Create appends a comment. When forceOpen is set, the parent issue
	// is moved to open in the same transaction unless it already is.
	Create(ctx context.Context, comment *domain.Comment, forceOpen bool) error
	ListByIssue(ctx context.Context, issueID int64) ([]domain.CommentWithAuthor, error)
}

type commentRepository struct {
	pool *pgxpool.Pool
}

// NewCommentRepository instantiates repository.
func NewCommentRepository(pool *pgxpool.Pool) CommentRepository {
	return &commentRepository{pool: pool}
}

func (r *commentRepository) Create(ctx context.Context, comment *domain.Comment, forceOpen bool) error {
	const insert = `
        INSERT INTO comments (issue_id, user_id, content)
        VALUES ($1, $2, $3)
        RETURNING comment_id, created_at`

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	if err := tx.QueryRow(ctx, insert,
		comment.IssueID,
		comment.AuthorID,
		comment.Content,
	).Scan(&comment.ID, &comment.CreatedAt); err != nil {
		return err
	}

	if forceOpen {
		const transition = `UPDATE issues SET status='open' WHERE issue_id=$1 AND status <> 'open'`
		if _, err := tx.Exec(ctx, transition, comment.IssueID); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *commentRepository) ListByIssue(ctx context.Context, issueID int64) ([]domain.CommentWithAuthor, error) {
	const query = `
        SELECT c.comment_id, c.issue_id, c.user_id, c.content, c.created_at,
               u.username, u.first_name, u.last_name, u.profile_image, u.role
        FROM comments c
        JOIN users u ON c.user_id = u.user_id
        WHERE c.issue_id=$1
        ORDER BY c.created_at ASC`

	rows, err := r.pool.Query(ctx, query, issueID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.CommentWithAuthor
	for rows.Next() {
		var comment domain.CommentWithAuthor
		if err := rows.Scan(
			&comment.ID,
			&comment.IssueID,
			&comment.AuthorID,
			&comment.Content,
			&comment.CreatedAt,
			&comment.AuthorUsername,
			&comment.AuthorFirstName,
			&comment.AuthorLastName,
			&comment.AuthorImage,
			&comment.AuthorRole,
		); err != nil {
			return nil, err
		}
		result = append(result, comment)
	}
	return result, rows.Err()
}
