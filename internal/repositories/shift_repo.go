package repositories

import (
	"database/sql"
	"errors"

	intconfig "rideapp/internal/config"
	"rideapp/internal/domain"
	"rideapp/internal/domain/models"
)

type ShiftRepository struct {
	DB *sql.DB
}

func (r ShiftRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// ListByEventAndDate returns the shifts of one calendar day, ordered by
// start time.
func (r ShiftRepository) ListByEventAndDate(eventID int64, date string) ([]models.Shift, error) {
	rows, err := r.db().Query(`
		SELECT id, event_id,
			COALESCE(DATE_FORMAT(shift_date,'%Y-%m-%d'),''),
			COALESCE(start_time,''), COALESCE(end_time,''), COALESCE(label,'')
		FROM shifts
		WHERE event_id = ? AND shift_date = ?
		ORDER BY start_time ASC, id ASC
	`, eventID, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []models.Shift{}
	for rows.Next() {
		var s models.Shift
		if err := rows.Scan(&s.ID, &s.EventID, &s.Date, &s.StartTime, &s.EndTime, &s.Label); err != nil {
			return nil, err
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

func (r ShiftRepository) GetByID(id int64) (models.Shift, error) {
	var s models.Shift
	err := r.db().QueryRow(`
		SELECT id, event_id,
			COALESCE(DATE_FORMAT(shift_date,'%Y-%m-%d'),''),
			COALESCE(start_time,''), COALESCE(end_time,''), COALESCE(label,'')
		FROM shifts
		WHERE id = ?
	`, id).Scan(&s.ID, &s.EventID, &s.Date, &s.StartTime, &s.EndTime, &s.Label)
	if errors.Is(err, sql.ErrNoRows) {
		return s, domain.NotFoundError{Resource: "shift", Err: err}
	}
	return s, err
}

// ListShiftVehicleIDs returns the distinct vehicles bound to the
// shift's driver pool.
func (r ShiftRepository) ListShiftVehicleIDs(shiftID int64) ([]int64, error) {
	rows, err := r.db().Query(`
		SELECT DISTINCT vehicle_id
		FROM drivers
		WHERE shift_id = ? AND vehicle_id IS NOT NULL AND vehicle_id <> 0
		ORDER BY vehicle_id ASC
	`, shiftID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
