package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/workforce-directory/internal/api/http/handlers"
	"github.com/spec-kit/workforce-directory/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Admins         *handlers.AdminsHandler
	Departments    *handlers.DepartmentsHandler
	Employees      *handlers.EmployeesHandler
	CompanyProfile *handlers.CompanyProfileHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes. Everything past the auth endpoints sits
// behind the bearer-token middleware and the super-admin gate.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/verification-code", cfg.Auth.IssueVerificationCode)
	authGroup.Post("/verification-code/confirm", cfg.Auth.ConfirmVerificationCode)

	authenticated := app.Group("", cfg.AuthMiddleware.Handle)

	// Any signed-in account may rotate its own password; registered before
	// the parameterized admin routes so /change-password never matches :id.
	authenticated.Put("/admins/change-password", cfg.Admins.ChangePassword)

	protected := authenticated.Group("", auth.RequireSuperAdmin())

	admins := protected.Group("/admins")
	admins.Post("/", cfg.Admins.Create)
	admins.Get("/", cfg.Admins.List)
	admins.Get("/deleted", cfg.Admins.ListDeleted)
	admins.Get("/:id", cfg.Admins.Get)
	admins.Patch("/:id", cfg.Admins.Update)
	admins.Delete("/:id", cfg.Admins.Delete)
	admins.Post("/:id/restore", cfg.Admins.Restore)
	admins.Put("/:id/reset-password", cfg.Admins.ResetPassword)

	departments := protected.Group("/departments")
	departments.Post("/", cfg.Departments.Create)
	departments.Get("/", cfg.Departments.List)
	departments.Get("/:id", cfg.Departments.Get)
	departments.Patch("/:id", cfg.Departments.Update)
	departments.Delete("/:id", cfg.Departments.Delete)
	departments.Post("/:id/restore", cfg.Departments.Restore)

	employees := protected.Group("/employees")
	employees.Post("/", cfg.Employees.Create)
	employees.Get("/", cfg.Employees.List)
	employees.Get("/:id", cfg.Employees.Get)
	employees.Patch("/:id", cfg.Employees.Update)
	employees.Delete("/:id", cfg.Employees.Delete)
	employees.Post("/:id/restore", cfg.Employees.Restore)

	profile := protected.Group("/company-profile")
	profile.Post("/", cfg.CompanyProfile.Create)
	profile.Get("/", cfg.CompanyProfile.Get)
	profile.Patch("/", cfg.CompanyProfile.Update)
	profile.Delete("/", cfg.CompanyProfile.Delete)
}
