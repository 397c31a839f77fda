package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"stamprally-backend/ranking"
)

type RankingController struct {
	svc *ranking.Service
}

func NewRankingController(svc *ranking.Service) *RankingController {
	return &RankingController{svc: svc}
}

func rankingError(c *fiber.Ctx, err error) error {
	if errors.Is(err, ranking.ErrUnknownPeriodType) {
		return errorJSON(c, fiber.StatusBadRequest, err.Error(), "VALIDATION_ERROR")
	}
	return errorJSON(c, fiber.StatusInternalServerError, "Failed to process rankings", "DATABASE_ERROR")
}

// Calculate handles POST /admin/ranking/calculate?type=weekly|monthly.
func (rc *RankingController) Calculate(c *fiber.Ctx) error {
	periodType := ranking.PeriodType(c.Query("type", "weekly"))

	res, err := rc.svc.Calculate(c.Context(), periodType)
	if err != nil {
		return rankingError(c, err)
	}

	return c.JSON(fiber.Map{
		"ok":             true,
		"period":         res.Period,
		"period_type":    res.PeriodType,
		"rankings_count": res.RankingCount,
	})
}

// Weekly handles GET /api/ranking/weekly?period=2025-W45 (current week when
// the period is omitted).
func (rc *RankingController) Weekly(c *fiber.Ctx) error {
	return rc.rankings(c, ranking.Weekly)
}

// Monthly handles GET /api/ranking/monthly?period=2025-11.
func (rc *RankingController) Monthly(c *fiber.Ctx) error {
	return rc.rankings(c, ranking.Monthly)
}

func (rc *RankingController) rankings(c *fiber.Ctx, pt ranking.PeriodType) error {
	label, entries, err := rc.svc.Rankings(c.Context(), pt, c.Query("period"))
	if err != nil {
		return rankingError(c, err)
	}

	return c.JSON(fiber.Map{
		"ok":          true,
		"period":      label,
		"period_type": pt,
		"rankings":    entries,
	})
}

// FriendsWeekly handles GET /api/ranking/friends/weekly?user_id=...&period=...
func (rc *RankingController) FriendsWeekly(c *fiber.Ctx) error {
	return rc.friendRankings(c, ranking.Weekly)
}

// FriendsMonthly handles GET /api/ranking/friends/monthly?user_id=...&period=...
func (rc *RankingController) FriendsMonthly(c *fiber.Ctx) error {
	return rc.friendRankings(c, ranking.Monthly)
}

func (rc *RankingController) friendRankings(c *fiber.Ctx, pt ranking.PeriodType) error {
	userID := c.Query("user_id")
	if userID == "" {
		return errorJSON(c, fiber.StatusBadRequest, "user_id is required", "VALIDATION_ERROR")
	}

	label, entries, err := rc.svc.FriendRankings(c.Context(), userID, pt, c.Query("period"))
	if err != nil {
		return rankingError(c, err)
	}

	return c.JSON(fiber.Map{
		"ok":          true,
		"period":      label,
		"period_type": pt,
		"rankings":    entries,
	})
}

// Compare handles GET /api/ranking/compare?user_id=...&friend_id=...
func (rc *RankingController) Compare(c *fiber.Ctx) error {
	userID := c.Query("user_id")
	friendID := c.Query("friend_id")
	if userID == "" || friendID == "" {
		return errorJSON(c, fiber.StatusBadRequest, "user_id and friend_id are required", "VALIDATION_ERROR")
	}

	cmp, err := rc.svc.Compare(c.Context(), userID, friendID)
	if err != nil {
		return rankingError(c, err)
	}

	return c.JSON(fiber.Map{
		"ok":             true,
		"user":           cmp.User,
		"friend":         cmp.Friend,
		"rank_diff":      cmp.RankDiff,
		"user_is_higher": cmp.UserIsHigher,
	})
}
