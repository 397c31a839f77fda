package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"stamprally-backend/models"
	"stamprally-backend/token"
	"stamprally-backend/users"
)

type AuthController struct {
	users  users.Repository
	issuer *token.Issuer
}

func NewAuthController(repo users.Repository, issuer *token.Issuer) *AuthController {
	return &AuthController{users: repo, issuer: issuer}
}

// VerifyLogin exchanges a LINE id token for a session token, creating or
// updating the user record along the way.
func (ac *AuthController) VerifyLogin(c *fiber.Ctx) error {
	var input models.VerifyInput
	if err := c.BodyParser(&input); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid JSON format", "INVALID_JSON")
	}
	if input.IDToken == "" {
		return errorJSON(c, fiber.StatusBadRequest, "id_token is required", "VALIDATION_ERROR")
	}

	// TODO: verify the token signature against LINE's JWKS endpoint and
	// check issuer/audience before trusting the claims.
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(input.IDToken, claims); err != nil {
		return errorJSON(c, fiber.StatusUnauthorized, "Invalid id token", "INVALID_TOKEN")
	}

	userID, _ := claims["sub"].(string)
	if userID == "" {
		return errorJSON(c, fiber.StatusUnauthorized, "id token has no subject", "INVALID_TOKEN")
	}
	displayName, _ := claims["name"].(string)
	if displayName == "" {
		displayName = "Unknown"
	}

	user, err := ac.users.UpsertLogin(c.Context(), userID, displayName, userID)
	if err != nil {
		return errorJSON(c, fiber.StatusInternalServerError, "Failed to save user", "DATABASE_ERROR")
	}

	sessionToken, err := ac.issuer.Issue(user.UserID, user.DisplayName)
	if err != nil {
		return errorJSON(c, fiber.StatusInternalServerError, "Failed to create session token", "TOKEN_ERROR")
	}

	return c.JSON(fiber.Map{
		"ok":           true,
		"user_id":      user.UserID,
		"display_name": user.DisplayName,
		"access_token": sessionToken,
	})
}
