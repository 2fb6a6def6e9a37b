package dto

import (
	"time"

	"github.com/spec-kit/issue-tracker/internal/domain"
)

// ReportIssueRequest payload.
type ReportIssueRequest struct {
	Summary     string `json:"summary" form:"summary"`
	Description string `json:"description" form:"description"`
}

// AddCommentRequest payload.
type AddCommentRequest struct {
	Content string `json:"content" form:"content"`
}

// UpdateIssueStatusRequest payload.
type UpdateIssueStatusRequest struct {
	Status domain.IssueStatus `json:"status" form:"status"`
}

// IssueSummary is a listing row including reporter identity and comment
// count.
type IssueSummary struct {
	ID                int64              `json:"id"`
	Summary           string             `json:"summary"`
	Description       string             `json:"description"`
	Status            domain.IssueStatus `json:"status"`
	CreatedAt         time.Time          `json:"created_at"`
	ReporterID        int64              `json:"reporter_id"`
	ReporterUsername  string             `json:"reporter_username"`
	ReporterFirstName string             `json:"reporter_first_name"`
	ReporterLastName  string             `json:"reporter_last_name"`
	ReporterImage     *string            `json:"reporter_image"`
	CommentCount      int                `json:"comment_count"`
}

// NewIssueSummary maps a listing row.
func NewIssueSummary(issue *domain.IssueWithReporter) IssueSummary {
	return IssueSummary{
		ID:                issue.ID,
		Summary:           issue.Summary,
		Description:       issue.Description,
		Status:            issue.Status,
		CreatedAt:         issue.CreatedAt,
		ReporterID:        issue.ReporterID,
		ReporterUsername:  issue.ReporterUsername,
		ReporterFirstName: issue.ReporterFirstName,
		ReporterLastName:  issue.ReporterLastName,
		ReporterImage:     issue.ReporterImage,
		CommentCount:      issue.CommentCount,
	}
}

// CommentResponse is a thread entry with author identity.
type CommentResponse struct {
	ID              int64       `json:"id"`
	IssueID         int64       `json:"issue_id"`
	AuthorID        int64       `json:"author_id"`
	AuthorUsername  string      `json:"author_username"`
	AuthorFirstName string      `json:"author_first_name"`
	AuthorLastName  string      `json:"author_last_name"`
	AuthorImage     *string     `json:"author_image"`
	AuthorRole      domain.Role `json:"author_role"`
	Content         string      `json:"content"`
	CreatedAt       time.Time   `json:"created_at"`
}

// NewCommentResponse maps a comment row.
func NewCommentResponse(comment *domain.CommentWithAuthor) CommentResponse {
	return CommentResponse{
		ID:              comment.ID,
		IssueID:         comment.IssueID,
		AuthorID:        comment.AuthorID,
		AuthorUsername:  comment.AuthorUsername,
		AuthorFirstName: comment.AuthorFirstName,
		AuthorLastName:  comment.AuthorLastName,
		AuthorImage:     comment.AuthorImage,
		AuthorRole:      comment.AuthorRole,
		Content:         comment.Content,
		CreatedAt:       comment.CreatedAt,
	}
}

// IssueDetailResponse bundles an issue with its comment thread.
type IssueDetailResponse struct {
	Issue    IssueSummary      `json:"issue"`
	Comments []CommentResponse `json:"comments"`
}
