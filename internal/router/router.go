package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/arcana-edu/tarot-lms-api/internal/config"
	"github.com/arcana-edu/tarot-lms-api/internal/handler"
	"github.com/arcana-edu/tarot-lms-api/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	UserHandler             *handler.UserHandler
	CourseHandler           *handler.CourseHandler
	AssignmentHandler       *handler.AssignmentHandler
	SubmissionHandler       *handler.SubmissionHandler
	FeedbackHandler         *handler.FeedbackHandler
	NotificationHandler     *handler.NotificationHandler
	StudentDashboardHandler *handler.StudentDashboardHandler
	JWTMiddleware           fiber.Handler
	RateLimiter             fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))
	app.Get("/metrics", observability.MetricsHandler())

	jwtMiddleware := deps.JWTMiddleware
	if jwtMiddleware == nil {
		jwtMiddleware = func(c *fiber.Ctx) error { return c.Next() }
	}

	protected := api.Group("", jwtMiddleware)
	if deps.RateLimiter != nil {
		protected.Use(deps.RateLimiter)
	}

	if deps.UserHandler != nil {
		deps.UserHandler.Register(protected.Group("/users"))
	}
	if deps.CourseHandler != nil {
		deps.CourseHandler.Register(protected.Group("/courses"))
	}
	if deps.AssignmentHandler != nil {
		deps.AssignmentHandler.Register(protected.Group("/assignments"))
	}
	if deps.SubmissionHandler != nil {
		deps.SubmissionHandler.Register(protected.Group("/submissions"))
	}
	if deps.FeedbackHandler != nil {
		deps.FeedbackHandler.Register(protected.Group("/feedback"))
	}
	if deps.NotificationHandler != nil {
		deps.NotificationHandler.Register(protected.Group("/notifications"))
	}
	if deps.StudentDashboardHandler != nil {
		deps.StudentDashboardHandler.Register(protected.Group("/dashboard"))
	}
}
