package stamps

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

func (r *PostgresRepository) GetStampMaster(ctx context.Context, stampID string) (*models.StampMaster, error) {
	var (
		m         models.StampMaster
		stampType sql.NullString
		validFrom sql.NullInt64
		validTo   sql.NullInt64
		imageURL  sql.NullString
		lat       sql.NullFloat64
		lon       sql.NullFloat64
		radius    sql.NullFloat64
	)

	err := r.db.QueryRowContext(ctx, `
		SELECT stamp_id, name, type, valid_from, valid_to, image_url, lat, lon, radius_m
		FROM stamp_masters
		WHERE stamp_id = $1
	`, stampID).Scan(&m.StampID, &m.Name, &stampType, &validFrom, &validTo, &imageURL, &lat, &lon, &radius)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get stamp master %s: %w", stampID, err)
	}

	m.Type = stampType.String
	m.ValidFrom = validFrom.Int64
	m.ValidTo = validTo.Int64
	m.ImageURL = imageURL.String

	if lat.Valid && lon.Valid {
		m.Location = &models.Location{
			Lat:     lat.Float64,
			Lon:     lon.Float64,
			RadiusM: radius.Float64,
		}
	}

	return &m, nil
}

func (r *PostgresRepository) InsertCollection(ctx context.Context, userID, stampID, method string, collectedAt int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO user_stamps (user_id, stamp_id, collected_at, method)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, stamp_id) DO NOTHING
	`, userID, stampID, collectedAt, method)
	if err != nil {
		return false, fmt.Errorf("insert collection user=%s stamp=%s: %w", userID, stampID, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("insert collection rows affected: %w", err)
	}
	return n > 0, nil
}

func (r *PostgresRepository) ListUserStamps(ctx context.Context, userID string) ([]CollectedStamp, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT us.stamp_id, COALESCE(m.name, ''), COALESCE(m.image_url, ''), us.collected_at, us.method
		FROM user_stamps us
		LEFT JOIN stamp_masters m ON m.stamp_id = us.stamp_id
		WHERE us.user_id = $1
		ORDER BY us.collected_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("list user stamps %s: %w", userID, err)
	}
	defer rows.Close()

	out := make([]CollectedStamp, 0)
	for rows.Next() {
		var s CollectedStamp
		if err := rows.Scan(&s.StampID, &s.Name, &s.ImageURL, &s.CollectedAt, &s.Method); err != nil {
			return nil, fmt.Errorf("scan user stamp: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate user stamps: %w", err)
	}

	return out, nil
}

var _ Repository = (*PostgresRepository)(nil)
