package routes

import (
	"github.com/automatch/portal/handlers"
	"github.com/automatch/portal/middleware"
	"github.com/gofiber/fiber/v2"
)

func ReviewRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	public := api.Group("/reviews")
	public.Get("", handlers.ListReviewsByRating)
	public.Get("/recent", handlers.ListRecentReviews)
	public.Get("/search", handlers.SearchReviews)

	reviews := api.Group("/reviews", middleware.Protected())
	reviews.Post("", handlers.CreateReview)
	reviews.Get("/me", handlers.GetMyReviews)
	reviews.Get("/:reviewId", handlers.GetReview)
	reviews.Put("/:reviewId", handlers.UpdateReview)
	reviews.Delete("/:reviewId", handlers.DeleteReview)

	admin := api.Group("/admin/reviews", middleware.Protected(), middleware.AdminRequired())
	admin.Post("/:reviewId/restore", handlers.RestoreReview)
}
