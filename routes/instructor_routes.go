package routes

import (
	"github.com/automatch/portal/handlers"
	"github.com/automatch/portal/middleware"
	"github.com/gofiber/fiber/v2"
)

func InstructorRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	public := api.Group("/instructors")
	public.Get("", handlers.ListInstructors)
	public.Get("/search", handlers.SearchAvailableInstructors)
	public.Get("/:instructorId", handlers.GetInstructorProfile)
	public.Get("/:instructorId/availability", handlers.ListInstructorAvailability)
	public.Get("/:instructorId/availability/check", handlers.CheckInstructorAvailability)
	public.Get("/:instructorId/availability/next", handlers.GetNextAvailableSlot)
	public.Get("/:instructorId/availability/summary", handlers.GetAvailabilitySummary)
	public.Get("/:instructorId/reviews", handlers.ListInstructorReviews)
	public.Get("/:instructorId/reviews/stats", handlers.GetInstructorReviewStats)
	public.Get("/:instructorId/vehicles", handlers.ListInstructorVehicles)

	protected := api.Group("/instructors", middleware.Protected())
	protected.Post("/apply", handlers.ApplyAsInstructor)
	protected.Put("/me", middleware.InstructorRequired(), handlers.UpdateMyInstructorProfile)
	protected.Get("/:instructorId/lessons", handlers.ListInstructorLessons)
	protected.Get("/:instructorId/lessons/stats", handlers.GetInstructorLessonStats)
	protected.Get("/:instructorId/lessons/conflict", handlers.CheckLessonConflict)

	admin := api.Group("/admin/instructors", middleware.Protected(), middleware.AdminRequired())
	admin.Post("/:instructorId/verify", handlers.VerifyInstructor)
	admin.Post("/:instructorId/rate", handlers.RateInstructor)
	admin.Delete("/:instructorId", handlers.DeleteInstructor)
	admin.Post("/:instructorId/restore", handlers.RestoreInstructor)
}
