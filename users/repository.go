package users

import (
	"context"

	"stamprally-backend/models"
)

type Repository interface {
	// UpsertLogin creates the user on first login and refreshes display
	// name and last-login timestamp afterwards. CreatedAt is set once and
	// never overwritten.
	UpsertLogin(ctx context.Context, userID, displayName, lineID string) (*models.User, error)
	GetUser(ctx context.Context, userID string) (*models.User, error)
	// AddFriend establishes the friendship in both directions.
	AddFriend(ctx context.Context, userID, friendID string) error
	ListActiveFriends(ctx context.Context, userID string) ([]models.Friend, error)
	GetActiveFriendIDs(ctx context.Context, userID string) ([]string, error)
}
