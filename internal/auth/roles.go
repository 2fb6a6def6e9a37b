package auth

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/issue-tracker/internal/domain"
	apperrors "github.com/spec-kit/issue-tracker/pkg/util"
)

const loginPath = "/login"

// RequireLogin redirects unauthenticated requests to the login page.
func RequireLogin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := PrincipalFromContext(c); !ok {
			return c.Redirect(loginPath, http.StatusSeeOther)
		}
		return c.Next()
	}
}

// RequireRole redirects unauthenticated requests to the login page and
// responds with access denied when the caller's role is not allowed.
func RequireRole(allowed ...domain.Role) fiber.Handler {
	allowedSet := make(map[domain.Role]struct{}, len(allowed))
	for _, role := range allowed {
		allowedSet[role] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return c.Redirect(loginPath, http.StatusSeeOther)
		}
		if _, exists := allowedSet[principal.User.Role]; !exists {
			return apperrors.NewForbidden("access denied")
		}
		return c.Next()
	}
}

// RequireAdmin gates admin-only routes.
func RequireAdmin() fiber.Handler {
	return RequireRole(domain.RoleAdmin)
}

// RequireHelper gates routes reserved for helpers.
func RequireHelper() fiber.Handler {
	return RequireRole(domain.RoleHelper)
}

// RequireHelperOrAdmin gates routes shared by helpers and admins.
func RequireHelperOrAdmin() fiber.Handler {
	return RequireRole(domain.RoleHelper, domain.RoleAdmin)
}
