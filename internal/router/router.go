package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/placement-cell/placetrack-api/internal/config"
	"github.com/placement-cell/placetrack-api/internal/handler"
	"github.com/placement-cell/placetrack-api/internal/middleware"
	"github.com/placement-cell/placetrack-api/internal/models"
	"github.com/placement-cell/placetrack-api/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	AuthHandler              *handler.AuthHandler
	StudentHandler           *handler.StudentHandler
	DriveHandler             *handler.DriveHandler
	AdminDriveHandler        *handler.AdminDriveHandler
	ApplicationHandler       *handler.ApplicationHandler
	AdminApplicationHandler  *handler.AdminApplicationHandler
	AnnouncementHandler      *handler.AnnouncementHandler
	AdminAnnouncementHandler *handler.AdminAnnouncementHandler
	NotificationHandler      *handler.NotificationHandler
	PrepHandler              *handler.PrepHandler
	AdminPrepHandler         *handler.AdminPrepHandler
	AlumniHandler            *handler.AlumniHandler
	AdminAnalyticsHandler    *handler.AdminAnalyticsHandler
	ScheduleHandler          *handler.ScheduleHandler
	AdvisorHandler           *handler.AdvisorHandler
	TickerHandler            *handler.TickerHandler
	SeedHandler              *handler.SeedHandler
	JWTMiddleware            fiber.Handler
	AdvisorRateLimit         fiber.Handler
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
	studentOnly := middleware.RequireRole(string(models.RoleStudent))
	adminOnly := middleware.RequireRole(string(models.RoleAdmin))
	anyRole := middleware.RequireRole(string(models.RoleStudent), string(models.RoleAdmin))

	if deps.AuthHandler != nil {
		auth := api.Group("/auth")
		deps.AuthHandler.Register(auth)
		deps.AuthHandler.RegisterProtected(auth.Group("", jwtMiddleware))
	}

	if deps.StudentHandler != nil {
		student := api.Group("/students/me", jwtMiddleware, studentOnly)
		deps.StudentHandler.Register(student)
	}

	if deps.DriveHandler != nil {
		drives := api.Group("/drives", jwtMiddleware, studentOnly)
		deps.DriveHandler.Register(drives)
	}

	if deps.ApplicationHandler != nil {
		applications := api.Group("/applications", jwtMiddleware, studentOnly)
		deps.ApplicationHandler.Register(applications)
	}

	if deps.AnnouncementHandler != nil {
		announcements := api.Group("/announcements", jwtMiddleware, anyRole)
		deps.AnnouncementHandler.Register(announcements)
	}

	if deps.NotificationHandler != nil {
		notifications := api.Group("/notifications", jwtMiddleware, anyRole)
		deps.NotificationHandler.Register(notifications)
	}

	if deps.PrepHandler != nil {
		prep := api.Group("/prep", jwtMiddleware, studentOnly)
		deps.PrepHandler.Register(prep)
	}

	if deps.AlumniHandler != nil {
		alumni := api.Group("/alumni", jwtMiddleware, anyRole)
		deps.AlumniHandler.Register(alumni)
	}

	if deps.ScheduleHandler != nil {
		schedule := api.Group("/schedule", jwtMiddleware, anyRole)
		deps.ScheduleHandler.Register(schedule)
	}

	if deps.AdvisorHandler != nil {
		advisor := api.Group("/advisor", jwtMiddleware, studentOnly)
		if deps.AdvisorRateLimit != nil {
			advisor.Use(deps.AdvisorRateLimit)
		}
		deps.AdvisorHandler.Register(advisor)
	}

	if deps.TickerHandler != nil {
		ticker := api.Group("/ticker")
		deps.TickerHandler.Register(ticker)
	}

	admin := api.Group("/admin", jwtMiddleware, adminOnly)

	if deps.AdminDriveHandler != nil {
		deps.AdminDriveHandler.Register(admin.Group("/drives"))
	}
	if deps.AdminApplicationHandler != nil {
		deps.AdminApplicationHandler.Register(admin.Group("/applications"))
	}
	if deps.AdminAnnouncementHandler != nil {
		deps.AdminAnnouncementHandler.Register(admin.Group("/announcements"))
	}
	if deps.AdminPrepHandler != nil {
		deps.AdminPrepHandler.Register(admin.Group("/resources"))
	}
	if deps.AlumniHandler != nil {
		deps.AlumniHandler.RegisterAdmin(admin.Group("/alumni"))
	}
	if deps.AdminAnalyticsHandler != nil {
		deps.AdminAnalyticsHandler.Register(admin.Group("/analytics"))
	}
	if deps.TickerHandler != nil {
		deps.TickerHandler.RegisterAdmin(admin.Group("/ticker"))
	}
	if deps.SeedHandler != nil {
		deps.SeedHandler.Register(admin.Group("/seed"))
	}
}
