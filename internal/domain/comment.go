package domain

import "time"

// Comment is an append-only entry in an issue thread, displayed oldest
// first.
type Comment struct {
	ID        int64
	IssueID   int64
	AuthorID  int64
	Content   string
	CreatedAt time.Time
}

// CommentWithAuthor decorates a comment with author identity for the
// issue detail view.
type CommentWithAuthor struct {
	Comment
	AuthorUsername  string
	AuthorFirstName string
	AuthorLastName  string
	AuthorImage     *string
	AuthorRole      Role
}
