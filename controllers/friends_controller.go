package controllers

import (
	"github.com/gofiber/fiber/v2"

	"stamprally-backend/models"
	"stamprally-backend/users"
)

type FriendsController struct {
	users users.Repository
}

func NewFriendsController(repo users.Repository) *FriendsController {
	return &FriendsController{users: repo}
}

// Add handles POST /api/friends/add and establishes the friendship in both
// directions.
func (fc *FriendsController) Add(c *fiber.Ctx) error {
	var input models.AddFriendInput
	if err := c.BodyParser(&input); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid JSON format", "INVALID_JSON")
	}

	if input.UserID == "" || input.FriendID == "" {
		return errorJSON(c, fiber.StatusBadRequest, "user_id and friend_id are required", "VALIDATION_ERROR")
	}
	if input.UserID == input.FriendID {
		return errorJSON(c, fiber.StatusBadRequest, "Cannot add yourself as a friend", "VALIDATION_ERROR")
	}

	if err := fc.users.AddFriend(c.Context(), input.UserID, input.FriendID); err != nil {
		return errorJSON(c, fiber.StatusInternalServerError, "Failed to add friend", "DATABASE_ERROR")
	}

	return c.JSON(fiber.Map{
		"ok":        true,
		"message":   "Friend relationship added successfully",
		"user_id":   input.UserID,
		"friend_id": input.FriendID,
	})
}

// List handles GET /api/friends/list?user_id=...
func (fc *FriendsController) List(c *fiber.Ctx) error {
	userID := c.Query("user_id")
	if userID == "" {
		return errorJSON(c, fiber.StatusBadRequest, "user_id is required", "VALIDATION_ERROR")
	}

	friends, err := fc.users.ListActiveFriends(c.Context(), userID)
	if err != nil {
		return errorJSON(c, fiber.StatusInternalServerError, "Failed to get friends", "DATABASE_ERROR")
	}

	return c.JSON(fiber.Map{
		"ok":      true,
		"user_id": userID,
		"friends": friends,
		"count":   len(friends),
	})
}
