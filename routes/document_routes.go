package routes

import (
	"github.com/automatch/portal/handlers"
	"github.com/automatch/portal/middleware"
	"github.com/gofiber/fiber/v2"
)

func DocumentRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	documents := api.Group("/documents", middleware.Protected())
	documents.Post("", handlers.SubmitDocument)
	documents.Get("/me", handlers.GetMyDocuments)
	documents.Delete("/:documentId", handlers.DeleteDocument)

	admin := api.Group("/admin/documents", middleware.Protected(), middleware.AdminRequired())
	admin.Get("/pending", handlers.ListPendingDocuments)
	admin.Post("/:documentId/verify", handlers.VerifyDocument)
}
