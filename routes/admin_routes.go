package routes

import (
	"github.com/automatch/portal/handlers"
	"github.com/automatch/portal/middleware"
	"github.com/gofiber/fiber/v2"
)

func AdminRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	admin := api.Group("/admin", middleware.Protected(), middleware.AdminRequired())
	admin.Get("/analytics", handlers.GetDashboardAnalytics)
	admin.Get("/users", handlers.GetAllUsers)
	admin.Patch("/users/:userId/status", handlers.ToggleUserStatus)
	admin.Delete("/users/:userId", handlers.AdminDeleteUser)
}
