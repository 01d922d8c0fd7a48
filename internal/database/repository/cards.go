package repository

import (
	"context"
	"database/sql"

	"github.com/jask/cardwall/internal/database"
)

// CardRepo handles the persisted deck.
type CardRepo struct {
	db *sql.DB
}

func NewCardRepo(db *sql.DB) *CardRepo {
	return &CardRepo{db: db}
}

// List returns the deck in position order.
func (r *CardRepo) List(ctx context.Context) ([]Card, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, label, position, sticky, created_at FROM cards ORDER BY position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Card
	for rows.Next() {
		var c Card
		var sticky int
		if err := rows.Scan(&c.ID, &c.Label, &c.Position, &sticky, &c.CreatedAt); err != nil {
			return nil, err
		}
		c.Sticky = sticky != 0
		out = append(out, c)
	}
	return out, rows.Err()
}

// ReplaceAll persists the whole deck in one transaction, rewriting positions
// from slice order. The deck is small; a full rewrite beats diffing.
func (r *CardRepo) ReplaceAll(ctx context.Context, cards []Card) error {
	return database.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM cards`); err != nil {
			return err
		}
		for i, c := range cards {
			sticky := 0
			if c.Sticky {
				sticky = 1
			}
			created := ""
			if !c.CreatedAt.IsZero() {
				created = c.CreatedAt.UTC().Format("2006-01-02 15:04:05")
			}
			if _, err := tx.ExecContext(ctx, `
	INSERT INTO cards(id, label, position, sticky, created_at)
	VALUES (?, ?, ?, ?, COALESCE(NULLIF(?, ''), datetime('now')))`,
				c.ID, c.Label, i, sticky, created); err != nil {
				return err
			}
		}
		return nil
	})
}
