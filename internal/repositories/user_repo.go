package repositories

import (
	"database/sql"
	"errors"

	intconfig "rideapp/internal/config"
	"rideapp/internal/domain"
	"rideapp/internal/domain/models"

	"github.com/go-sql-driver/mysql"
)

type UserRepository struct {
	DB *sql.DB
}

func (r UserRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// GetByEmail returns the account and its stored password hash.
func (r UserRepository) GetByEmail(email string) (models.User, string, error) {
	var (
		u    models.User
		hash string
	)
	err := r.db().QueryRow(`
		SELECT id, COALESCE(name,''), email, COALESCE(phone,''), COALESCE(event_id,0), password_hash
		FROM users
		WHERE email = ?
	`, email).Scan(&u.ID, &u.Name, &u.Email, &u.Phone, &u.EventID, &hash)
	if errors.Is(err, sql.ErrNoRows) {
		return u, "", domain.NotFoundError{Resource: "user", Err: err}
	}
	if err != nil {
		return u, "", err
	}
	return u, hash, nil
}

// Create inserts a shift-manager account and returns its id.
func (r UserRepository) Create(u models.User, passwordHash string) (int64, error) {
	res, err := r.db().Exec(`
		INSERT INTO users (name, email, phone, event_id, password_hash, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, NOW(), NOW())
	`, u.Name, u.Email, u.Phone, nullIfZero(u.EventID), passwordHash)
	if err != nil {
		var me *mysql.MySQLError
		if errors.As(err, &me) && me.Number == 1062 {
			return 0, domain.ConflictError{Resource: "user", Msg: "email already registered", Err: err}
		}
		return 0, err
	}
	return res.LastInsertId()
}

func nullIfZero(v int64) any {
	if v == 0 {
		return nil
	}
	return v
}
