package routes

import (
	"github.com/automatch/portal/handlers"
	"github.com/automatch/portal/middleware"
	"github.com/gofiber/fiber/v2"
)

func AvailabilityRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	api.Get("/availability/day/:day", handlers.ListAvailabilityByDay)

	windows := api.Group("/availability", middleware.Protected(), middleware.InstructorRequired())
	windows.Post("", handlers.CreateAvailabilityWindow)
	windows.Post("/batch", handlers.CreateAvailabilityWindowBatch)
	windows.Get("/overlap", handlers.CheckWindowOverlap)
	windows.Delete("", handlers.DeleteMyAvailability)
	windows.Get("/:windowId", handlers.GetAvailabilityWindow)
	windows.Put("/:windowId", handlers.UpdateAvailabilityWindow)
	windows.Delete("/:windowId", handlers.DeleteAvailabilityWindow)
	windows.Post("/:windowId/restore", handlers.RestoreAvailabilityWindow)
}
