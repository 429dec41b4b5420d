package routes

import (
	"github.com/automatch/portal/handlers"
	"github.com/automatch/portal/middleware"
	"github.com/gofiber/fiber/v2"
)

func FavoriteRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	favorites := api.Group("/favorites", middleware.Protected())
	favorites.Post("", handlers.AddFavorite)
	favorites.Get("", handlers.GetMyFavorites)
	favorites.Delete("/:instructorId", handlers.RemoveFavorite)
}
