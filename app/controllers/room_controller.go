package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/bluemarble/bluemarble-backend/platform/game"
)

// RoomController serves the lobby's read side over HTTP. Room mutation
// happens over the socket layer.
type RoomController struct {
	Registry *game.Registry
}

func (rc *RoomController) GetAllRooms(c *fiber.Ctx) error {
	return c.JSON(rc.Registry.List())
}

func (rc *RoomController) VerifyRoom(c *fiber.Ctx) error {
	roomId := c.Query("code")
	room := rc.Registry.Get(roomId)
	if room == nil {
		return c.JSON(fiber.Map{"status": false})
	}
	return c.JSON(fiber.Map{"status": true})
}
