package repos

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

// CartRepo mirrors in-memory carts to sqlite. Callers treat it as
// fire-and-forget: a failed save or load must never interrupt a cart
// mutation, so errors are returned for logging only.
type CartRepo struct{ db *sqlx.DB }

func NewCartRepo(db *sqlx.DB) *CartRepo { return &CartRepo{db: db} }

func (r *CartRepo) Save(sessionID, payload string) error {
	_, err := r.db.Exec(`
		INSERT INTO cart_snapshots(session_id, payload, updated_at)
		VALUES(?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(session_id) DO UPDATE
		SET payload = excluded.payload, updated_at = CURRENT_TIMESTAMP
	`, sessionID, payload)
	return err
}

// Load returns the stored payload for the session; ok is false when no
// snapshot exists.
func (r *CartRepo) Load(sessionID string) (string, bool, error) {
	var payload string
	err := r.db.Get(&payload, `SELECT payload FROM cart_snapshots WHERE session_id = ?`, sessionID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return payload, true, nil
}

func (r *CartRepo) Delete(sessionID string) error {
	_, err := r.db.Exec(`DELETE FROM cart_snapshots WHERE session_id = ?`, sessionID)
	return err
}
