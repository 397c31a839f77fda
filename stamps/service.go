package stamps

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"stamprally-backend/geofence"
	"stamprally-backend/models"
)

// Notifier dispatches a stamp-awarded notification. Implementations must
// never block the award path; delivery failure is their problem to log.
type Notifier interface {
	StampAwarded(userID string, stamp *models.StampMaster)
}

type Service struct {
	repo            Repository
	notifier        Notifier
	strictTypeMatch bool
	now             func() time.Time
}

func NewService(repo Repository, notifier Notifier, strictTypeMatch bool) *Service {
	return &Service{
		repo:            repo,
		notifier:        notifier,
		strictTypeMatch: strictTypeMatch,
		now:             time.Now,
	}
}

// Award runs the full stamp-award transaction: validation, catalog lookup,
// validity-window check, type check, atomic conditional insert, notification.
func (s *Service) Award(ctx context.Context, userID, stampID, method string) (*models.UserStamp, error) {
	if userID == "" {
		return nil, validationErr("user_id is required")
	}
	if stampID == "" {
		return nil, validationErr("stamp_id is required")
	}
	if method == "" {
		return nil, validationErr("method is required")
	}
	if method != "GPS" && method != "IMAGE" {
		return nil, validationErr("method must be either GPS or IMAGE")
	}

	master, err := s.repo.GetStampMaster(ctx, stampID)
	if err != nil {
		return nil, databaseErr(fmt.Sprintf("failed to check stamp master: %v", err))
	}
	if master == nil {
		return nil, &ServiceError{Status: http.StatusNotFound, Code: "STAMP_NOT_FOUND",
			Message: "Stamp not found: " + stampID}
	}

	// Validity window bounds are inclusive: awarding at the exact boundary
	// second succeeds.
	now := s.now().Unix()
	if master.ValidFrom != 0 && now < master.ValidFrom {
		return nil, &ServiceError{Status: http.StatusBadRequest, Code: "STAMP_NOT_VALID_YET",
			Message: fmt.Sprintf("Stamp is not yet valid. Valid from: %d", master.ValidFrom)}
	}
	if master.ValidTo != 0 && now > master.ValidTo {
		return nil, &ServiceError{Status: http.StatusBadRequest, Code: "STAMP_EXPIRED",
			Message: fmt.Sprintf("Stamp has expired. Valid until: %d", master.ValidTo)}
	}

	stampType := strings.ToUpper(master.Type)
	if stampType != "" && stampType != "GPS" && stampType != "IMAGE" {
		return nil, &ServiceError{Status: http.StatusBadRequest, Code: "INVALID_STAMP_TYPE",
			Message: "Invalid stamp type: " + stampType}
	}

	// A stamp typed GPS may still be awarded through an IMAGE call and vice
	// versa unless strict matching is configured.
	if stampType != "" && stampType != method {
		if s.strictTypeMatch {
			return nil, &ServiceError{Status: http.StatusConflict, Code: "STAMP_TYPE_MISMATCH",
				Message: fmt.Sprintf("Stamp type mismatch. Expected: %s, Got: %s", stampType, method)}
		}
		log.Printf("Warning: stamp type mismatch for %s. Expected: %s, Got: %s. Proceeding anyway.",
			stampID, stampType, method)
	}

	inserted, err := s.repo.InsertCollection(ctx, userID, stampID, method, now)
	if err != nil {
		return nil, databaseErr(fmt.Sprintf("failed to add stamp: %v", err))
	}
	if !inserted {
		return nil, &ServiceError{Status: http.StatusConflict, Code: "STAMP_ALREADY_EXISTS",
			Message: "User already has this stamp: " + stampID}
	}

	if s.notifier != nil {
		s.notifier.StampAwarded(userID, master)
	}

	return &models.UserStamp{
		UserID:      userID,
		StampID:     stampID,
		CollectedAt: now,
		Method:      method,
	}, nil
}

// GPSResult is the geofence decision for a verification request.
type GPSResult struct {
	SpotID          string  `json:"spot_id"`
	Name            string  `json:"name"`
	Lat             float64 `json:"lat"`
	Lon             float64 `json:"lon"`
	DistanceM       float64 `json:"distance_m"`
	Within          bool    `json:"within"`
	RadiusM         float64 `json:"radius_m"`
	EffectiveRadius float64 `json:"effective_radius_m"`
	Accuracy        float64 `json:"accuracy"`
}

// VerifyGPS checks a participant coordinate against a GPS stamp's geofence.
func (s *Service) VerifyGPS(ctx context.Context, spotID string, lat, lon, accuracy float64) (*GPSResult, error) {
	if !geofence.ValidCoordinate(lat, lon) {
		return nil, validationErr("lat must be between -90 and 90 and lon between -180 and 180")
	}
	if accuracy < 0 {
		accuracy = 0
	}

	master, err := s.repo.GetStampMaster(ctx, spotID)
	if err != nil {
		return nil, databaseErr(fmt.Sprintf("failed to get stamp master: %v", err))
	}
	if master == nil {
		return nil, &ServiceError{Status: http.StatusNotFound, Code: "STAMP_NOT_FOUND",
			Message: "Stamp not found: " + spotID}
	}

	stampType := strings.ToUpper(master.Type)
	if stampType != "" && stampType != "GPS" {
		return nil, &ServiceError{Status: http.StatusBadRequest, Code: "STAMP_TYPE_MISMATCH",
			Message: "This stamp is not a GPS type stamp. Type: " + stampType}
	}
	if master.Location == nil {
		return nil, &ServiceError{Status: http.StatusBadRequest, Code: "LOCATION_NOT_FOUND",
			Message: "Location information not found in stamp master"}
	}

	radius := master.Location.RadiusM
	if radius <= 0 {
		radius = geofence.DefaultRadiusM
	}

	res := geofence.Verify(lat, lon, accuracy, master.Location.Lat, master.Location.Lon, radius)

	return &GPSResult{
		SpotID:          spotID,
		Name:            master.Name,
		Lat:             lat,
		Lon:             lon,
		DistanceM:       geofence.Round2(res.DistanceM),
		Within:          res.Within,
		RadiusM:         radius,
		EffectiveRadius: res.EffectiveRadius,
		Accuracy:        accuracy,
	}, nil
}

// ListUserStamps returns every stamp the user has collected, newest first.
func (s *Service) ListUserStamps(ctx context.Context, userID string) ([]CollectedStamp, error) {
	if userID == "" {
		return nil, validationErr("user_id is required")
	}

	list, err := s.repo.ListUserStamps(ctx, userID)
	if err != nil {
		return nil, databaseErr(fmt.Sprintf("failed to list stamps: %v", err))
	}
	return list, nil
}
