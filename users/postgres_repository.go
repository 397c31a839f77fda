package users

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"stamprally-backend/models"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) UpsertLogin(ctx context.Context, userID, displayName, lineID string) (*models.User, error) {
	now := time.Now().Unix()

	var u models.User
	// created_at is deliberately absent from the update set so it survives
	// every login after the first.
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO users (user_id, display_name, line_id, created_at, last_login_at)
		VALUES ($1, $2, $3, $4, $4)
		ON CONFLICT (user_id) DO UPDATE
		SET display_name = EXCLUDED.display_name,
		    line_id = EXCLUDED.line_id,
		    last_login_at = EXCLUDED.last_login_at
		RETURNING user_id, display_name, created_at, last_login_at
	`, userID, displayName, lineID, now).Scan(&u.UserID, &u.DisplayName, &u.CreatedAt, &u.LastLoginAt)
	if err != nil {
		return nil, fmt.Errorf("upsert user %s: %w", userID, err)
	}

	return &u, nil
}

func (r *PostgresRepository) GetUser(ctx context.Context, userID string) (*models.User, error) {
	var u models.User
	err := r.db.QueryRowContext(ctx, `
		SELECT user_id, display_name, created_at, last_login_at
		FROM users
		WHERE user_id = $1
	`, userID).Scan(&u.UserID, &u.DisplayName, &u.CreatedAt, &u.LastLoginAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get user %s: %w", userID, err)
	}
	return &u, nil
}

// AddFriend writes both directed edges inside one transaction. Re-adding an
// existing friendship reactivates it.
func (r *PostgresRepository) AddFriend(ctx context.Context, userID, friendID string) error {
	now := time.Now().Unix()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin add friend: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO friends (user_id, friend_id, status, created_at)
		VALUES ($1, $2, 'active', $3)
		ON CONFLICT (user_id, friend_id) DO UPDATE SET status = 'active'
	`)
	if err != nil {
		return fmt.Errorf("prepare friend insert: %w", err)
	}
	defer stmt.Close()

	if _, err := stmt.ExecContext(ctx, userID, friendID, now); err != nil {
		return fmt.Errorf("insert friend edge %s->%s: %w", userID, friendID, err)
	}
	if _, err := stmt.ExecContext(ctx, friendID, userID, now); err != nil {
		return fmt.Errorf("insert friend edge %s->%s: %w", friendID, userID, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit add friend: %w", err)
	}
	return nil
}

func (r *PostgresRepository) ListActiveFriends(ctx context.Context, userID string) ([]models.Friend, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT friend_id, created_at
		FROM friends
		WHERE user_id = $1 AND status = 'active'
		ORDER BY created_at ASC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("list friends of %s: %w", userID, err)
	}
	defer rows.Close()

	out := make([]models.Friend, 0)
	for rows.Next() {
		var f models.Friend
		if err := rows.Scan(&f.FriendID, &f.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan friend: %w", err)
		}
		out = append(out, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate friends: %w", err)
	}

	return out, nil
}

func (r *PostgresRepository) GetActiveFriendIDs(ctx context.Context, userID string) ([]string, error) {
	friends, err := r.ListActiveFriends(ctx, userID)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(friends))
	for _, f := range friends {
		ids = append(ids, f.FriendID)
	}
	return ids, nil
}

var _ Repository = (*PostgresRepository)(nil)
