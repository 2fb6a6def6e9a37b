package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/issue-tracker/internal/api/dto"
	"github.com/spec-kit/issue-tracker/internal/auth"
	"github.com/spec-kit/issue-tracker/internal/service"
)

// HomeHandler serves the helper and visitor dashboards.
type HomeHandler struct {
	issues *service.IssueService
}

// NewHomeHandler constructs handler.
func NewHomeHandler(issueService *service.IssueService) *HomeHandler {
	return &HomeHandler{issues: issueService}
}

// HelperHome handles GET /helper/home.
func (h *HomeHandler) HelperHome(c *fiber.Ctx) error {
	principal, _ := auth.PrincipalFromContext(c)

	counts, err := h.issues.CountByStatus(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{
		"user":  dto.NewUserResponse(principal.User),
		"stats": dto.DashboardResponse{Issues: counts},
	}})
}

// VisitorHome handles GET /visitor/home.
func (h *HomeHandler) VisitorHome(c *fiber.Ctx) error {
	principal, _ := auth.PrincipalFromContext(c)
	return c.JSON(fiber.Map{"data": fiber.Map{
		"user": dto.NewUserResponse(principal.User),
	}})
}
