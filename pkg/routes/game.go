package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/bluemarble/bluemarble-backend/app/controllers"
)

func GameRoutes(a *fiber.App, rc *controllers.RoomController) {
	route := a.Group("/game")
	route.Get("/all", rc.GetAllRooms)
	route.Get("/verify", rc.VerifyRoom)
}
