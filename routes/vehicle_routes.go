package routes

import (
	"github.com/automatch/portal/handlers"
	"github.com/automatch/portal/middleware"
	"github.com/gofiber/fiber/v2"
)

func VehicleRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	api.Get("/vehicles/:vehicleId", handlers.GetVehicle)

	vehicles := api.Group("/vehicles", middleware.Protected(), middleware.InstructorRequired())
	vehicles.Post("", handlers.RegisterVehicle)
	vehicles.Put("/:vehicleId", handlers.UpdateVehicle)
	vehicles.Delete("/:vehicleId", handlers.DeleteVehicle)
	vehicles.Get("/:vehicleId/lessons", handlers.ListVehicleLessons)
	vehicles.Post("/:vehicleId/availability", handlers.SetVehicleAvailability)
	vehicles.Post("/:vehicleId/maintenance", handlers.RecordVehicleMaintenance)

	admin := api.Group("/admin/vehicles", middleware.Protected(), middleware.AdminRequired())
	admin.Post("/:vehicleId/approve", handlers.ApproveVehicle)
}
