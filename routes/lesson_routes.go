package routes

import (
	"github.com/automatch/portal/handlers"
	"github.com/automatch/portal/middleware"
	"github.com/gofiber/fiber/v2"
)

func LessonRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	lessons := api.Group("/lessons", middleware.Protected())
	lessons.Post("", handlers.CreateLesson)
	lessons.Get("/me", handlers.GetMyLessons)
	lessons.Get("/me/stats", handlers.GetMyLessonStats)
	lessons.Get("/upcoming", handlers.ListUpcomingLessons)
	lessons.Get("/status/:status", handlers.ListLessonsByStatus)
	lessons.Get("/:lessonId", handlers.GetLesson)
	lessons.Put("/:lessonId", handlers.UpdateLesson)
	lessons.Post("/:lessonId/cancel", handlers.CancelLesson)
	lessons.Post("/:lessonId/reschedule", handlers.RescheduleLesson)
	lessons.Get("/:lessonId/review", handlers.GetLessonReview)

	instructorLessons := api.Group("/lessons", middleware.Protected(), middleware.InstructorRequired())
	instructorLessons.Post("/:lessonId/complete", handlers.CompleteLesson)

	admin := api.Group("/admin/lessons", middleware.Protected(), middleware.AdminRequired())
	admin.Get("/payment-status/:status", handlers.ListLessonsByPaymentStatus)
	admin.Post("/:lessonId/payment-status", handlers.UpdateLessonPaymentStatus)
	admin.Delete("/:lessonId", handlers.DeleteLesson)
	admin.Post("/:lessonId/restore", handlers.RestoreLesson)
}
