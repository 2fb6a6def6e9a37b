package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/issue-tracker/internal/api/http/handlers"
	"github.com/spec-kit/issue-tracker/internal/auth"
	"github.com/spec-kit/issue-tracker/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health            *handlers.HealthHandler
	Accounts          *handlers.AccountsHandler
	Issues            *handlers.IssuesHandler
	Admin             *handlers.AdminHandler
	Home              *handlers.HomeHandler
	SessionMiddleware *auth.SessionMiddleware
}

// RegisterRoutes wires HTTP routes. The session middleware resolves the
// principal on every route; the role gates decide access per group.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Use(cfg.SessionMiddleware.Handle)

	app.Get("/", cfg.Accounts.Root)
	app.Get("/login", cfg.Accounts.LoginPage)
	app.Post("/login", cfg.Accounts.Login)
	app.Get("/logout", cfg.Accounts.Logout)
	app.Get("/signup", cfg.Accounts.SignupPage)
	app.Post("/signup", cfg.Accounts.Signup)

	loggedIn := app.Group("", auth.RequireLogin())
	loggedIn.Get("/profile", cfg.Accounts.Profile)
	loggedIn.Post("/profile", cfg.Accounts.UpdateProfile)
	loggedIn.Post("/change_password", cfg.Accounts.ChangePassword)

	issues := loggedIn.Group("/issues")
	issues.Get("/report", cfg.Issues.ReportPage)
	issues.Post("/report", cfg.Issues.Report)
	issues.Get("/list", cfg.Issues.List)
	issues.Get("/:id", cfg.Issues.Detail)
	issues.Post("/:id/comment", cfg.Issues.AddComment)
	issues.Post("/:id/status", auth.RequireHelperOrAdmin(), cfg.Issues.UpdateStatus)

	admin := app.Group("/admin", auth.RequireAdmin())
	admin.Get("/home", cfg.Admin.Home)
	admin.Get("/users", cfg.Admin.Users)
	admin.Post("/users/:id/role", cfg.Admin.UpdateRole)
	admin.Post("/users/:id/status", cfg.Admin.UpdateStatus)
	admin.Get("/users/:id", cfg.Admin.ViewUser)

	app.Get("/helper/home", auth.RequireHelper(), cfg.Home.HelperHome)
	app.Get("/visitor/home", auth.RequireRole(domain.RoleVisitor), cfg.Home.VisitorHome)
}
