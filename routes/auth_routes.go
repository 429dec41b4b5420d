package routes

import (
	"github.com/automatch/portal/handlers"
	"github.com/automatch/portal/middleware"
	"github.com/gofiber/fiber/v2"
)

func AuthRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	auth := api.Group("/auth")
	auth.Post("/register", handlers.RegisterUser)
	auth.Post("/login", handlers.LoginUser)

	me := api.Group("/me", middleware.Protected())
	me.Get("", handlers.GetMe)
	me.Patch("", handlers.UpdateMe)
	me.Post("/change-password", handlers.ChangePassword)
	me.Get("/address", handlers.GetMyAddress)
	me.Put("/address", handlers.SetMyAddress)
}
