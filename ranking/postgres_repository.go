package ranking

import (
	"context"
	"database/sql"
	"fmt"

	"stamprally-backend/models"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) CountCollectionsSince(ctx context.Context, since int64) ([]ParticipantCount, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT us.user_id, COUNT(*), COALESCE(u.display_name, 'Unknown')
		FROM user_stamps us
		LEFT JOIN users u ON u.user_id = us.user_id
		WHERE us.collected_at >= $1
		GROUP BY us.user_id, u.display_name
	`, since)
	if err != nil {
		return nil, fmt.Errorf("count collections since %d: %w", since, err)
	}
	defer rows.Close()

	out := make([]ParticipantCount, 0)
	for rows.Next() {
		var c ParticipantCount
		if err := rows.Scan(&c.UserID, &c.StampCount, &c.DisplayName); err != nil {
			return nil, fmt.Errorf("scan participant count: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate participant counts: %w", err)
	}

	return out, nil
}

// ReplaceLeaderboard deletes and rewrites the period's entries inside one
// transaction, so readers never observe a half-replaced leaderboard.
func (r *PostgresRepository) ReplaceLeaderboard(ctx context.Context, periodKey string, entries []models.RankingEntry, updatedAt int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin leaderboard replace: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		DELETE FROM rankings WHERE period_key = $1
	`, periodKey); err != nil {
		return fmt.Errorf("delete leaderboard %s: %w", periodKey, err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO rankings (period_key, rank, user_id, stamp_count, display_name, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`)
	if err != nil {
		return fmt.Errorf("prepare leaderboard insert: %w", err)
	}
	defer stmt.Close()

	for _, e := range entries {
		if _, err := stmt.ExecContext(ctx, periodKey, e.Rank, e.UserID, e.StampCount, e.DisplayName, updatedAt); err != nil {
			return fmt.Errorf("insert leaderboard entry rank=%d user=%s: %w", e.Rank, e.UserID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit leaderboard replace: %w", err)
	}

	return nil
}

func (r *PostgresRepository) GetLeaderboard(ctx context.Context, periodKey string) ([]models.RankingEntry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT rank, user_id, stamp_count, display_name
		FROM rankings
		WHERE period_key = $1
		ORDER BY rank ASC
	`, periodKey)
	if err != nil {
		return nil, fmt.Errorf("get leaderboard %s: %w", periodKey, err)
	}
	defer rows.Close()

	out := make([]models.RankingEntry, 0)
	for rows.Next() {
		var e models.RankingEntry
		if err := rows.Scan(&e.Rank, &e.UserID, &e.StampCount, &e.DisplayName); err != nil {
			return nil, fmt.Errorf("scan leaderboard entry: %w", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate leaderboard entries: %w", err)
	}

	return out, nil
}

func (r *PostgresRepository) CountUserStamps(ctx context.Context, userID string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM user_stamps WHERE user_id = $1
	`, userID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count stamps for %s: %w", userID, err)
	}
	return n, nil
}

func (r *PostgresRepository) GetDisplayName(ctx context.Context, userID string) (string, error) {
	var name string
	err := r.db.QueryRowContext(ctx, `
		SELECT display_name FROM users WHERE user_id = $1
	`, userID).Scan(&name)
	if err == sql.ErrNoRows {
		return "Unknown", nil
	}
	if err != nil {
		return "", fmt.Errorf("get display name for %s: %w", userID, err)
	}
	return name, nil
}

var _ Repository = (*PostgresRepository)(nil)
