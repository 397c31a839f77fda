package ranking

import (
	"context"

	"stamprally-backend/models"
)

// ParticipantCount is one participant's qualifying stamp count, with the
// display name snapshotted at aggregation time.
type ParticipantCount struct {
	UserID      string
	StampCount  int
	DisplayName string
}

type Repository interface {
	// CountCollectionsSince groups collection records with a collection
	// timestamp >= since by participant. Order is not part of the contract.
	CountCollectionsSince(ctx context.Context, since int64) ([]ParticipantCount, error)
	// ReplaceLeaderboard replaces every entry for periodKey with the given
	// set in a single transaction.
	ReplaceLeaderboard(ctx context.Context, periodKey string, entries []models.RankingEntry, updatedAt int64) error
	GetLeaderboard(ctx context.Context, periodKey string) ([]models.RankingEntry, error)
	CountUserStamps(ctx context.Context, userID string) (int, error)
	GetDisplayName(ctx context.Context, userID string) (string, error)
}

// FriendSource yields the ids of a participant's active friends.
type FriendSource interface {
	GetActiveFriendIDs(ctx context.Context, userID string) ([]string, error)
}
