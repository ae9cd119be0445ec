package repositories

import (
	"database/sql"
	"errors"

	intconfig "rideapp/internal/config"
	"rideapp/internal/domain"
	"rideapp/internal/domain/models"
)

type RideRepository struct {
	DB *sql.DB
}

func (r RideRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// Create inserts the ride row mapped from a full session snapshot and
// returns the generated id. No idempotency key is attached; a retry
// after a failed response may insert a second row (see DESIGN.md).
func (r RideRepository) Create(ride models.Ride) (int64, error) {
	res, err := r.db().Exec(`
		INSERT INTO rides (
			event_id, shift_id, user_id, status,
			guest_name, guest_category, phone_number, phone_country_code, passenger_count,
			service_type, car_type, pickup_date, pickup_time,
			pickup_hub_id, pickup_location, dropoff_location, first_stop_location,
			pickup_note, dropoff_note,
			pickup_lat, pickup_lng, dropoff_lat, dropoff_lng,
			created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, NOW())
	`,
		ride.EventID, ride.ShiftID, ride.UserID, ride.Status,
		ride.GuestName, ride.GuestCategory, ride.PhoneNumber, ride.PhoneCountryCode, ride.PassengerCount,
		ride.ServiceType, ride.CarType, ride.PickupDate, ride.PickupTime,
		nullIfZero(ride.PickupHubID), nullIfEmpty(ride.PickupLocation), ride.DropoffLocation, nullIfEmpty(ride.FirstStopLocation),
		nullIfEmpty(ride.PickupNote), nullIfEmpty(ride.DropoffNote),
		ride.PickupLat, ride.PickupLng, ride.DropoffLat, ride.DropoffLng,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r RideRepository) GetByID(id int64) (models.Ride, error) {
	var ride models.Ride
	err := r.db().QueryRow(`
		SELECT id, event_id, shift_id, user_id, COALESCE(status,''),
			COALESCE(DATE_FORMAT(created_at,'%Y-%m-%d %H:%i:%s'),''),
			COALESCE(guest_name,''), COALESCE(guest_category,''),
			COALESCE(phone_number,''), COALESCE(phone_country_code,''),
			COALESCE(passenger_count,1),
			COALESCE(service_type,''), COALESCE(car_type,''),
			COALESCE(pickup_date,''), COALESCE(pickup_time,''),
			COALESCE(pickup_hub_id,0), COALESCE(pickup_location,''),
			COALESCE(dropoff_location,''), COALESCE(first_stop_location,''),
			COALESCE(pickup_note,''), COALESCE(dropoff_note,''),
			COALESCE(driver_id,0), COALESCE(vehicle_id,0)
		FROM rides
		WHERE id = ?
	`, id).Scan(
		&ride.ID, &ride.EventID, &ride.ShiftID, &ride.UserID, &ride.Status,
		&ride.CreatedAt,
		&ride.GuestName, &ride.GuestCategory,
		&ride.PhoneNumber, &ride.PhoneCountryCode,
		&ride.PassengerCount,
		&ride.ServiceType, &ride.CarType,
		&ride.PickupDate, &ride.PickupTime,
		&ride.PickupHubID, &ride.PickupLocation,
		&ride.DropoffLocation, &ride.FirstStopLocation,
		&ride.PickupNote, &ride.DropoffNote,
		&ride.DriverID, &ride.VehicleID,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return ride, domain.NotFoundError{Resource: "ride", Err: err}
	}
	return ride, err
}

// GetTracking returns the polling projection, joining the assigned
// driver and vehicle when present.
func (r RideRepository) GetTracking(id int64) (models.RideTracking, error) {
	var t models.RideTracking
	err := r.db().QueryRow(`
		SELECT r.id, COALESCE(r.status,''),
			COALESCE(d.name,''), COALESCE(d.phone,''),
			COALESCE(v.plate_number,''), COALESCE(v.car_type,'')
		FROM rides r
		LEFT JOIN drivers d ON d.id = r.driver_id
		LEFT JOIN vehicles v ON v.id = r.vehicle_id
		WHERE r.id = ?
	`, id).Scan(&t.ID, &t.Status, &t.DriverName, &t.DriverPhone, &t.PlateNumber, &t.CarType)
	if errors.Is(err, sql.ErrNoRows) {
		return t, domain.NotFoundError{Resource: "ride", Err: err}
	}
	return t, err
}

// ListByEvent returns the event's ride requests, newest first.
func (r RideRepository) ListByEvent(eventID int64) ([]models.Ride, error) {
	rows, err := r.db().Query(`
		SELECT id, event_id, shift_id, user_id, COALESCE(status,''),
			COALESCE(DATE_FORMAT(created_at,'%Y-%m-%d %H:%i:%s'),''),
			COALESCE(guest_name,''), COALESCE(guest_category,''),
			COALESCE(phone_number,''), COALESCE(phone_country_code,''),
			COALESCE(passenger_count,1),
			COALESCE(service_type,''), COALESCE(car_type,''),
			COALESCE(pickup_date,''), COALESCE(pickup_time,''),
			COALESCE(pickup_hub_id,0), COALESCE(pickup_location,''),
			COALESCE(dropoff_location,''), COALESCE(first_stop_location,''),
			COALESCE(pickup_note,''), COALESCE(dropoff_note,''),
			COALESCE(driver_id,0), COALESCE(vehicle_id,0)
		FROM rides
		WHERE event_id = ?
		ORDER BY id DESC
	`, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []models.Ride{}
	for rows.Next() {
		var ride models.Ride
		if err := rows.Scan(
			&ride.ID, &ride.EventID, &ride.ShiftID, &ride.UserID, &ride.Status,
			&ride.CreatedAt,
			&ride.GuestName, &ride.GuestCategory,
			&ride.PhoneNumber, &ride.PhoneCountryCode,
			&ride.PassengerCount,
			&ride.ServiceType, &ride.CarType,
			&ride.PickupDate, &ride.PickupTime,
			&ride.PickupHubID, &ride.PickupLocation,
			&ride.DropoffLocation, &ride.FirstStopLocation,
			&ride.PickupNote, &ride.DropoffNote,
			&ride.DriverID, &ride.VehicleID,
		); err != nil {
			return nil, err
		}
		list = append(list, ride)
	}
	return list, rows.Err()
}

// VehicleStatusByShift maps vehicle_id to the status of its bound ride
// for the shift. Input to the availability rule.
func (r RideRepository) VehicleStatusByShift(shiftID int64) (map[int64]string, error) {
	rows, err := r.db().Query(`
		SELECT COALESCE(vehicle_id,0), COALESCE(status,'')
		FROM rides
		WHERE shift_id = ? AND vehicle_id IS NOT NULL AND vehicle_id <> 0
	`, shiftID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[int64]string{}
	for rows.Next() {
		var (
			vid    int64
			status string
		)
		if err := rows.Scan(&vid, &status); err != nil {
			return nil, err
		}
		// a non-terminal ride wins over an ended one for the same vehicle
		if prev, ok := out[vid]; ok && prev != models.RideStatusEnd {
			continue
		}
		out[vid] = status
	}
	return out, rows.Err()
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
