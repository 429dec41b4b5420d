package routes

import (
	"github.com/automatch/portal/handlers"
	"github.com/automatch/portal/middleware"
	"github.com/gofiber/fiber/v2"
)

func ClassifierRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	api.Get("/classifiers/:type", handlers.ListClassifiersByType)

	admin := api.Group("/admin/classifiers", middleware.Protected(), middleware.AdminRequired())
	admin.Post("", handlers.CreateClassifier)
	admin.Put("/:classifierId", handlers.UpdateClassifier)
	admin.Delete("/:classifierId", handlers.DeleteClassifier)
}
