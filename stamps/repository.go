package stamps

import (
	"context"

	"stamprally-backend/models"
)

type Repository interface {
	// GetStampMaster returns nil without an error when the stamp does not exist.
	GetStampMaster(ctx context.Context, stampID string) (*models.StampMaster, error)
	// InsertCollection writes the collection record only if none exists for
	// (userID, stampID). Returns false when the record was already present.
	InsertCollection(ctx context.Context, userID, stampID, method string, collectedAt int64) (bool, error)
	ListUserStamps(ctx context.Context, userID string) ([]CollectedStamp, error)
}

// CollectedStamp is a collection record joined with catalog metadata.
type CollectedStamp struct {
	StampID     string `json:"stamp_id"`
	Name        string `json:"name"`
	ImageURL    string `json:"image_url,omitempty"`
	CollectedAt int64  `json:"collected_at"`
	Method      string `json:"method"`
}
