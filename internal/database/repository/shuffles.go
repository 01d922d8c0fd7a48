package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/jask/cardwall/internal/database"
)

// ShuffleRepo records completed reorders.
type ShuffleRepo struct {
	db *sql.DB
}

func NewShuffleRepo(db *sql.DB) *ShuffleRepo {
	return &ShuffleRepo{db: db}
}

// Insert stores one completed shuffle, generating its ID when empty and
// stamping the request time when the caller left it zero.
func (r *ShuffleRepo) Insert(ctx context.Context, s Shuffle) (string, error) {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	if s.RequestedAt.IsZero() {
		s.RequestedAt = database.Now()
	}
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO shuffles(id, transform_key, card_count, duration_ms, requested_at)
	VALUES (?, ?, ?, ?, ?)`,
		s.ID, s.TransformKey, s.CardCount, s.DurationMS,
		s.RequestedAt.UTC().Format("2006-01-02 15:04:05"))
	return s.ID, err
}

// ListRecent returns the newest shuffles first, at most limit rows.
func (r *ShuffleRepo) ListRecent(ctx context.Context, limit int) ([]Shuffle, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.db.QueryContext(ctx, `
	SELECT id, transform_key, card_count, duration_ms, requested_at
	FROM shuffles ORDER BY requested_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Shuffle
	for rows.Next() {
		var s Shuffle
		if err := rows.Scan(&s.ID, &s.TransformKey, &s.CardCount, &s.DurationMS, &s.RequestedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
