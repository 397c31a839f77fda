package routes

import (
	"github.com/gofiber/fiber/v2"

	"stamprally-backend/controllers"
	"stamprally-backend/middleware"
	"stamprally-backend/token"
)

func AuthRoutes(app *fiber.App, ac *controllers.AuthController) {
	app.Post("/auth/verify", ac.VerifyLogin)
}

func StampRoutes(app *fiber.App, sc *controllers.StampController, issuer *token.Issuer) {
	api := app.Group("/api", middleware.RequireSession(issuer))

	api.Post("/stamps/award", sc.Award)
	api.Get("/stamps", sc.List)
	api.Post("/gps/verify", sc.VerifyGPS)
}

func FriendRoutes(app *fiber.App, fc *controllers.FriendsController, issuer *token.Issuer) {
	api := app.Group("/api", middleware.RequireSession(issuer))

	api.Post("/friends/add", fc.Add)
	api.Get("/friends/list", fc.List)
}

func RankingRoutes(app *fiber.App, rc *controllers.RankingController, issuer *token.Issuer) {
	api := app.Group("/api", middleware.RequireSession(issuer))

	api.Get("/ranking/weekly", rc.Weekly)
	api.Get("/ranking/monthly", rc.Monthly)
	api.Get("/ranking/friends/weekly", rc.FriendsWeekly)
	api.Get("/ranking/friends/monthly", rc.FriendsMonthly)
	api.Get("/ranking/compare", rc.Compare)

	admin := app.Group("/admin", middleware.RequireAdminKey)
	admin.Post("/ranking/calculate", rc.Calculate)
}
