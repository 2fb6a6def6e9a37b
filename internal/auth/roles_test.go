package auth

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/issue-tracker/internal/domain"
	apperrors "github.com/spec-kit/issue-tracker/pkg/util"
)

func newGateApp(gate fiber.Handler, principal *Principal) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			domainErr := apperrors.ToDomainError(err)
			return c.Status(domainErr.HTTPStatus).JSON(fiber.Map{"error": domainErr.Message})
		},
	})
	app.Use(func(c *fiber.Ctx) error {
		if principal != nil {
			c.Locals(principalKey, principal)
		}
		return c.Next()
	})
	app.Get("/guarded", gate, func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	return app
}

func principalWithRole(role domain.Role) *Principal {
	return &Principal{
		SessionID: "sess-1",
		User:      &domain.User{ID: 1, Username: "someone", Role: role, Status: domain.UserStatusActive},
	}
}

func TestRequireLoginRedirectsAnonymous(t *testing.T) {
	app := newGateApp(RequireLogin(), nil)

	resp, err := app.Test(httptest.NewRequest("GET", "/guarded", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	require.Equal(t, "/login", resp.Header.Get("Location"))
}

func TestRequireLoginPassesAuthenticated(t *testing.T) {
	app := newGateApp(RequireLogin(), principalWithRole(domain.RoleVisitor))

	resp, err := app.Test(httptest.NewRequest("GET", "/guarded", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRequireRoleRedirectsAnonymous(t *testing.T) {
	app := newGateApp(RequireAdmin(), nil)

	resp, err := app.Test(httptest.NewRequest("GET", "/guarded", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	require.Equal(t, "/login", resp.Header.Get("Location"))
}

func TestRequireRoleForbidsWrongRole(t *testing.T) {
	cases := []struct {
		name string
		gate fiber.Handler
		role domain.Role
		want int
	}{
		{"admin gate blocks visitor", RequireAdmin(), domain.RoleVisitor, fiber.StatusForbidden},
		{"admin gate blocks helper", RequireAdmin(), domain.RoleHelper, fiber.StatusForbidden},
		{"admin gate passes admin", RequireAdmin(), domain.RoleAdmin, fiber.StatusOK},
		{"helper gate blocks admin", RequireHelper(), domain.RoleAdmin, fiber.StatusForbidden},
		{"helper gate passes helper", RequireHelper(), domain.RoleHelper, fiber.StatusOK},
		{"staff gate passes helper", RequireHelperOrAdmin(), domain.RoleHelper, fiber.StatusOK},
		{"staff gate passes admin", RequireHelperOrAdmin(), domain.RoleAdmin, fiber.StatusOK},
		{"staff gate blocks visitor", RequireHelperOrAdmin(), domain.RoleVisitor, fiber.StatusForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := newGateApp(tc.gate, principalWithRole(tc.role))
			resp, err := app.Test(httptest.NewRequest("GET", "/guarded", nil))
			require.NoError(t, err)
			require.Equal(t, tc.want, resp.StatusCode)
		})
	}
}
