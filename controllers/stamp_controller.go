package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"stamprally-backend/models"
	"stamprally-backend/stamps"
)

type StampController struct {
	svc *stamps.Service
}

func NewStampController(svc *stamps.Service) *StampController {
	return &StampController{svc: svc}
}

func stampError(c *fiber.Ctx, err error) error {
	var se *stamps.ServiceError
	if errors.As(err, &se) {
		return errorJSON(c, se.Status, se.Message, se.Code)
	}
	return errorJSON(c, fiber.StatusInternalServerError, "Internal Server Error", "INTERNAL_ERROR")
}

// Award handles POST /api/stamps/award.
func (sc *StampController) Award(c *fiber.Ctx) error {
	var input models.AwardInput
	if err := c.BodyParser(&input); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid JSON format", "INVALID_JSON")
	}

	collection, err := sc.svc.Award(c.Context(), input.UserID, input.StampID, input.Method)
	if err != nil {
		return stampError(c, err)
	}

	return c.JSON(fiber.Map{
		"ok":           true,
		"user_id":      collection.UserID,
		"stamp_id":     collection.StampID,
		"method":       collection.Method,
		"collected_at": collection.CollectedAt,
		"message":      "Stamp awarded successfully",
	})
}

// VerifyGPS handles POST /api/gps/verify.
func (sc *StampController) VerifyGPS(c *fiber.Ctx) error {
	var input models.GPSVerifyInput
	if err := c.BodyParser(&input); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid JSON format", "INVALID_JSON")
	}

	if input.UserID == "" {
		return errorJSON(c, fiber.StatusBadRequest, "user_id is required", "VALIDATION_ERROR")
	}
	if input.SpotID == "" {
		return errorJSON(c, fiber.StatusBadRequest, "spot_id is required", "VALIDATION_ERROR")
	}
	if input.Lat == nil {
		return errorJSON(c, fiber.StatusBadRequest, "lat is required", "VALIDATION_ERROR")
	}
	if input.Lon == nil {
		return errorJSON(c, fiber.StatusBadRequest, "lon is required", "VALIDATION_ERROR")
	}

	res, err := sc.svc.VerifyGPS(c.Context(), input.SpotID, *input.Lat, *input.Lon, input.Accuracy)
	if err != nil {
		return stampError(c, err)
	}

	return c.JSON(fiber.Map{
		"ok":                 true,
		"spot_id":            res.SpotID,
		"name":               res.Name,
		"lat":                res.Lat,
		"lon":                res.Lon,
		"distance_m":         res.DistanceM,
		"within":             res.Within,
		"radius_m":           res.RadiusM,
		"effective_radius_m": res.EffectiveRadius,
		"accuracy":           res.Accuracy,
	})
}

// List handles GET /api/stamps?user_id=...
func (sc *StampController) List(c *fiber.Ctx) error {
	userID := c.Query("user_id")

	list, err := sc.svc.ListUserStamps(c.Context(), userID)
	if err != nil {
		return stampError(c, err)
	}

	return c.JSON(fiber.Map{
		"ok":      true,
		"user_id": userID,
		"stamps":  list,
		"total":   len(list),
	})
}
