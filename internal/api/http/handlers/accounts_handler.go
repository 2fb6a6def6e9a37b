package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/issue-tracker/internal/api/dto"
	"github.com/spec-kit/issue-tracker/internal/auth"
	"github.com/spec-kit/issue-tracker/internal/domain"
	"github.com/spec-kit/issue-tracker/internal/service"
	"github.com/spec-kit/issue-tracker/internal/session"
	apperrors "github.com/spec-kit/issue-tracker/pkg/util"
)

// AccountsHandler exposes login, signup, profile and password endpoints.
type AccountsHandler struct {
	accounts     *service.AccountService
	sessions     *session.Store
	tokens       *auth.TokenManager
	cookieName   string
	cookieSecure bool
}

// NewAccountsHandler constructs handler.
func NewAccountsHandler(accounts *service.AccountService, sessions *session.Store, tokens *auth.TokenManager, cookieName string, cookieSecure bool) *AccountsHandler {
	return &AccountsHandler{
		accounts:     accounts,
		sessions:     sessions,
		tokens:       tokens,
		cookieName:   cookieName,
		cookieSecure: cookieSecure,
	}
}

// homeURL returns the role-specific homepage.
func homeURL(role domain.Role) string {
	switch role {
	case domain.RoleAdmin:
		return "/admin/home"
	case domain.RoleHelper:
		return "/helper/home"
	default:
		return "/visitor/home"
	}
}

// Root handles GET /.
func (h *AccountsHandler) Root(c *fiber.Ctx) error {
	if principal, ok := auth.PrincipalFromContext(c); ok {
		return c.Redirect(homeURL(principal.User.Role), http.StatusSeeOther)
	}
	return c.Redirect("/login", http.StatusSeeOther)
}

// LoginPage handles GET /login.
func (h *AccountsHandler) LoginPage(c *fiber.Ctx) error {
	if principal, ok := auth.PrincipalFromContext(c); ok {
		return c.Redirect(homeURL(principal.User.Role), http.StatusSeeOther)
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"page": "login"}})
}

// Login handles POST /login.
func (h *AccountsHandler) Login(c *fiber.Ctx) error {
	if principal, ok := auth.PrincipalFromContext(c); ok {
		return c.Redirect(homeURL(principal.User.Role), http.StatusSeeOther)
	}

	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Username == "" || req.Password == "" {
		return apperrors.NewValidationError("username and password required", nil)
	}

	user, err := h.accounts.Login(c.Context(), req.Username, req.Password)
	if err != nil {
		return err
	}

	sess := session.Session{
		UserID:       user.ID,
		Username:     user.Username,
		Role:         user.Role,
		FirstName:    user.FirstName,
		ProfileImage: user.ProfileImage,
	}
	sessionID, err := h.sessions.Create(c.Context(), sess)
	if err != nil {
		return apperrors.MapError(err)
	}
	token, expiresAt, err := h.tokens.GenerateToken(sessionID)
	if err != nil {
		return apperrors.MapError(err)
	}

	c.Cookie(&fiber.Cookie{
		Name:     h.cookieName,
		Value:    token,
		Expires:  expiresAt,
		HTTPOnly: true,
		Secure:   h.cookieSecure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	return c.JSON(fiber.Map{"data": fiber.Map{
		"user": dto.NewUserResponse(user),
		"home": homeURL(user.Role),
	}})
}

// Logout handles GET /logout.
func (h *AccountsHandler) Logout(c *fiber.Ctx) error {
	if principal, ok := auth.PrincipalFromContext(c); ok {
		_ = h.sessions.Delete(c.Context(), principal.SessionID)
	}
	c.Cookie(&fiber.Cookie{
		Name:     h.cookieName,
		Value:    "",
		MaxAge:   -1,
		HTTPOnly: true,
		Secure:   h.cookieSecure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return c.Redirect("/login", http.StatusSeeOther)
}

// SignupPage handles GET /signup.
func (h *AccountsHandler) SignupPage(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"data": fiber.Map{"page": "signup"}})
}

// Signup handles POST /signup.
func (h *AccountsHandler) Signup(c *fiber.Ctx) error {
	var req dto.SignupRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	user, err := h.accounts.Signup(c.Context(), service.SignupInput{
		Username:        req.Username,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
		Email:           req.Email,
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Location:        req.Location,
	})
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data":    fiber.Map{"user": dto.NewUserResponse(user)},
		"message": "Account created successfully! Please log in with your credentials.",
	})
}

// Profile handles GET /profile.
func (h *AccountsHandler) Profile(c *fiber.Ctx) error {
	principal, _ := auth.PrincipalFromContext(c)
	return c.JSON(fiber.Map{"data": fiber.Map{"user": dto.NewUserResponse(principal.User)}})
}

// UpdateProfile handles POST /profile. The multipart form may carry
// profile fields, an optional inline password change, an image upload,
// or an image removal flag.
func (h *AccountsHandler) UpdateProfile(c *fiber.Ctx) error {
	principal, _ := auth.PrincipalFromContext(c)
	user := principal.User

	var req dto.ProfileUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	if err := h.accounts.UpdateProfile(c.Context(), user, service.ProfileUpdateInput{
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Email:           req.Email,
		Location:        req.Location,
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
		ConfirmPassword: req.ConfirmPassword,
	}); err != nil {
		return err
	}

	if fileHeader, err := c.FormFile("profile_image"); err == nil && fileHeader != nil && fileHeader.Filename != "" {
		file, err := fileHeader.Open()
		if err != nil {
			return apperrors.MapError(err)
		}
		defer file.Close()
		if _, err := h.accounts.SetProfileImage(c.Context(), user, fileHeader.Filename, file); err != nil {
			return err
		}
	}

	if req.RemoveProfileImage == "true" {
		if err := h.accounts.RemoveProfileImage(c.Context(), user); err != nil {
			return err
		}
	}

	// session payload mirrors first name and profile image for display
	if err := h.sessions.Update(c.Context(), principal.SessionID, session.Session{
		UserID:       user.ID,
		Username:     user.Username,
		Role:         user.Role,
		FirstName:    user.FirstName,
		ProfileImage: user.ProfileImage,
	}); err != nil {
		return apperrors.MapError(err)
	}

	return c.JSON(fiber.Map{
		"data":    fiber.Map{"user": dto.NewUserResponse(user)},
		"message": "Profile updated successfully",
	})
}

// ChangePassword handles POST /change_password. Responses mirror the
// form contract: validation problems come back as success=false with the
// error text rather than an HTTP error status.
func (h *AccountsHandler) ChangePassword(c *fiber.Ctx) error {
	principal, _ := auth.PrincipalFromContext(c)

	var req dto.ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	if err := h.accounts.ChangePassword(c.Context(), principal.User.ID, req.CurrentPassword, req.NewPassword); err != nil {
		domainErr := apperrors.ToDomainError(err)
		if domainErr.Code == "VALIDATION_FAILED" {
			return c.JSON(fiber.Map{"success": false, "error": domainErr.Message})
		}
		return err
	}
	return c.JSON(fiber.Map{"success": true})
}
