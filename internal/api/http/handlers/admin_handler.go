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

// AdminHandler exposes the admin dashboard and user management endpoints.
type AdminHandler struct {
	service *service.AdminService
}

// NewAdminHandler constructs handler.
func NewAdminHandler(adminService *service.AdminService) *AdminHandler {
	return &AdminHandler{service: adminService}
}

func userIDParam(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewValidationError("invalid user id", nil)
	}
	return id, nil
}

// Home handles GET /admin/home.
func (h *AdminHandler) Home(c *fiber.Ctx) error {
	principal, _ := auth.PrincipalFromContext(c)

	stats, err := h.service.Dashboard(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{
		"user":  dto.NewUserResponse(principal.User),
		"stats": dto.DashboardResponse{Issues: stats.Issues, Users: stats.Users},
	}})
}

// Users handles GET /admin/users?search=.
func (h *AdminHandler) Users(c *fiber.Ctx) error {
	users, err := h.service.SearchUsers(c.Context(), c.Query("search"))
	if err != nil {
		return err
	}

	items := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		items = append(items, dto.NewUserResponse(&users[i]))
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"users": items}})
}

// UpdateRole handles POST /admin/users/:id/role.
func (h *AdminHandler) UpdateRole(c *fiber.Ctx) error {
	principal, _ := auth.PrincipalFromContext(c)
	targetID, err := userIDParam(c)
	if err != nil {
		return err
	}

	var req dto.UpdateUserRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	if err := h.service.UpdateRole(c.Context(), principal.User, targetID, req.Role); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "User role updated successfully"})
}

// UpdateStatus handles POST /admin/users/:id/status.
func (h *AdminHandler) UpdateStatus(c *fiber.Ctx) error {
	principal, _ := auth.PrincipalFromContext(c)
	targetID, err := userIDParam(c)
	if err != nil {
		return err
	}

	var req dto.UpdateUserStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	if err := h.service.UpdateStatus(c.Context(), principal.User, targetID, req.Status); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "User status updated successfully"})
}

// ViewUser handles GET /admin/users/:id. Viewing yourself redirects to
// the profile page.
func (h *AdminHandler) ViewUser(c *fiber.Ctx) error {
	principal, _ := auth.PrincipalFromContext(c)
	targetID, err := userIDParam(c)
	if err != nil {
		return err
	}
	if targetID == principal.User.ID {
		return c.Redirect("/profile", http.StatusSeeOther)
	}

	user, err := h.service.GetUser(c.Context(), targetID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"user": dto.NewUserResponse(user)}})
}
