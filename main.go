package main

import (
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"

	"stamprally-backend/controllers"
	"stamprally-backend/database"
	"stamprally-backend/notify"
	"stamprally-backend/ranking"
	"stamprally-backend/routes"
	"stamprally-backend/scheduler"
	"stamprally-backend/stamps"
	"stamprally-backend/token"
	"stamprally-backend/users"
)

func main() {
	// Load env vars from .env file
	if os.Getenv("RENDER") == "" {
		err := godotenv.Load()
		if err != nil {
			log.Println("No .env file found, continuing with system environment variables")
		}
	}

	database.ConnectDB()

	port := os.Getenv("PORT")
	if port == "" {
		log.Fatal("PORT environment variable not set")
	}
	secret := os.Getenv("TOKEN_SECRET_KEY")
	if secret == "" {
		log.Fatal("TOKEN_SECRET_KEY environment variable not set")
	}

	issuer := token.NewIssuer(secret)
	lineClient := notify.NewLineClient(os.Getenv("LINE_CHANNEL_ACCESS_TOKEN"), os.Getenv("LIFF_BASE_URL"))

	userRepo := users.NewPostgresRepository(database.DB)
	stampSvc := stamps.NewService(
		stamps.NewPostgresRepository(database.DB),
		lineClient,
		os.Getenv("STRICT_TYPE_MATCH") == "true",
	)
	rankingSvc := ranking.NewService(ranking.NewPostgresRepository(database.DB), userRepo)

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// Setup routes
	routes.AuthRoutes(app, controllers.NewAuthController(userRepo, issuer))
	routes.StampRoutes(app, controllers.NewStampController(stampSvc), issuer)
	routes.FriendRoutes(app, controllers.NewFriendsController(userRepo), issuer)
	routes.RankingRoutes(app, controllers.NewRankingController(rankingSvc), issuer)

	if os.Getenv("RANKING_CRON_ENABLED") == "true" {
		sched := scheduler.New(rankingSvc)
		if err := sched.Start(); err != nil {
			log.Fatal("Failed to start ranking scheduler:", err)
		}
		defer sched.Stop()
	}

	// Start server
	log.Println("Server running on port " + port)
	log.Fatal(app.Listen(":" + port))
}
