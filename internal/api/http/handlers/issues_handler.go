package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/issue-tracker/internal/api/dto"
	"github.com/spec-kit/issue-tracker/internal/auth"
	"github.com/spec-kit/issue-tracker/internal/service"
	apperrors "github.com/spec-kit/issue-tracker/pkg/util"
)

// IssuesHandler manages issue reporting, listing, detail, comments and
// status updates.
type IssuesHandler struct {
	service *service.IssueService
}

// NewIssuesHandler constructs handler.
func NewIssuesHandler(issueService *service.IssueService) *IssuesHandler {
	return &IssuesHandler{service: issueService}
}

func issueIDParam(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewValidationError("invalid issue id", nil)
	}
	return id, nil
}

// ReportPage handles GET /issues/report.
func (h *IssuesHandler) ReportPage(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"data": fiber.Map{"page": "report"}})
}

// Report handles POST /issues/report.
func (h *IssuesHandler) Report(c *fiber.Ctx) error {
	principal, _ := auth.PrincipalFromContext(c)

	var req dto.ReportIssueRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	issue, err := h.service.Report(c.Context(), principal.User, req.Summary, req.Description)
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": fiber.Map{
			"issue": fiber.Map{
				"id":      issue.ID,
				"summary": issue.Summary,
				"status":  issue.Status,
			},
		},
		"message": "Issue reported successfully!",
	})
}

// List handles GET /issues/list?filter=.
func (h *IssuesHandler) List(c *fiber.Ctx) error {
	principal, _ := auth.PrincipalFromContext(c)
	filter := c.Query("filter")

	issues, err := h.service.List(c.Context(), principal.User, filter)
	if err != nil {
		return err
	}

	items := make([]dto.IssueSummary, 0, len(issues))
	for i := range issues {
		items = append(items, dto.NewIssueSummary(&issues[i]))
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"issues": items, "filter": filter}})
}

// Detail handles GET /issues/:id.
func (h *IssuesHandler) Detail(c *fiber.Ctx) error {
	principal, _ := auth.PrincipalFromContext(c)
	issueID, err := issueIDParam(c)
	if err != nil {
		return err
	}

	issue, comments, err := h.service.Get(c.Context(), principal.User, issueID)
	if err != nil {
		return err
	}

	thread := make([]dto.CommentResponse, 0, len(comments))
	for i := range comments {
		thread = append(thread, dto.NewCommentResponse(&comments[i]))
	}
	return c.JSON(fiber.Map{"data": dto.IssueDetailResponse{
		Issue:    dto.NewIssueSummary(issue),
		Comments: thread,
	}})
}

// AddComment handles POST /issues/:id/comment.
func (h *IssuesHandler) AddComment(c *fiber.Ctx) error {
	principal, _ := auth.PrincipalFromContext(c)
	issueID, err := issueIDParam(c)
	if err != nil {
		return err
	}

	var req dto.AddCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	comment, err := h.service.AddComment(c.Context(), principal.User, issueID, req.Content)
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": fiber.Map{
			"comment": fiber.Map{
				"id":         comment.ID,
				"issue_id":   comment.IssueID,
				"content":    comment.Content,
				"created_at": comment.CreatedAt,
			},
		},
		"message": "Comment added successfully",
	})
}

// UpdateStatus handles POST /issues/:id/status.
func (h *IssuesHandler) UpdateStatus(c *fiber.Ctx) error {
	principal, _ := auth.PrincipalFromContext(c)
	issueID, err := issueIDParam(c)
	if err != nil {
		return err
	}

	var req dto.UpdateIssueStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	if err := h.service.UpdateStatus(c.Context(), principal.User, issueID, req.Status); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Issue status updated successfully"})
}
