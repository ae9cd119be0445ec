package repositories

import (
	"database/sql"
	"errors"

	intconfig "rideapp/internal/config"
)

// SessionRepository persists whole-record JSON snapshots of the
// booking session, one row per shift manager.
type SessionRepository struct {
	DB *sql.DB
}

func (r SessionRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// Get returns the raw snapshot blob; found is false when no row exists.
func (r SessionRepository) Get(userID int64) ([]byte, bool, error) {
	var blob []byte
	err := r.db().QueryRow(`
		SELECT snapshot FROM booking_sessions WHERE user_id = ?
	`, userID).Scan(&blob)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return blob, true, nil
}

// Save writes the full snapshot, replacing any previous one.
func (r SessionRepository) Save(userID int64, blob []byte) error {
	_, err := r.db().Exec(`
		INSERT INTO booking_sessions (user_id, snapshot, updated_at)
		VALUES (?, ?, NOW())
		ON DUPLICATE KEY UPDATE snapshot = VALUES(snapshot), updated_at = NOW()
	`, userID, blob)
	return err
}

// Delete removes the persisted snapshot; missing rows are not an error.
func (r SessionRepository) Delete(userID int64) error {
	_, err := r.db().Exec(`DELETE FROM booking_sessions WHERE user_id = ?`, userID)
	return err
}
