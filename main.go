package main

import (
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	jwtware "github.com/gofiber/jwt/v2"
	log "github.com/sirupsen/logrus"

	"github.com/bluemarble/bluemarble-backend/app/controllers"
	"github.com/bluemarble/bluemarble-backend/pkg/routes"
	"github.com/bluemarble/bluemarble-backend/platform/cache"
	"github.com/bluemarble/bluemarble-backend/platform/database"
	"github.com/bluemarble/bluemarble-backend/platform/game"
	"github.com/bluemarble/bluemarble-backend/platform/logging"
	socket "github.com/bluemarble/bluemarble-backend/platform/sockets"
)

func main() {
	logging.Init()

	db := database.PostgreSQLConnection()
	defer db.Close()
	if err := database.EnsureSchema(db); err != nil {
		log.WithError(err).Warn("schema setup failed, save/load degraded")
	}

	pool := cache.CreateRedisPool()
	defer pool.Close()

	registry := game.NewRegistry(database.NewGameSaveStore(db), game.NewScheduler())

	app := fiber.New()
	app.Use(cors.New())
	routes.AuthRoutes(app)
	routes.GameRoutes(app, &controllers.RoomController{Registry: registry})

	app.Use(jwtware.New(jwtware.Config{
		SigningKey: controllers.JWTSecret(),
	}))
	app.Get("/user/cur", controllers.Cur)

	go socket.CreateSocketIOServer(registry, pool, game.NewScheduler())

	port := os.Getenv("PORT")
	if port == "" {
		port = "4101"
	}
	app.Listen(":" + port)
}
