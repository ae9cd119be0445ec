package repositories

import (
	"database/sql"
	"errors"

	intconfig "rideapp/internal/config"
	"rideapp/internal/domain"
	"rideapp/internal/domain/models"
)

// CatalogRepository serves the read-only projections the wizard and the
// review screen consume: events, hubs, vehicles, drivers.
type CatalogRepository struct {
	DB *sql.DB
}

func (r CatalogRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r CatalogRepository) ListEvents() ([]models.Event, error) {
	rows, err := r.db().Query(`
		SELECT id, COALESCE(name,''), COALESCE(venue,''),
			COALESCE(DATE_FORMAT(start_date,'%Y-%m-%d'),''),
			COALESCE(DATE_FORMAT(end_date,'%Y-%m-%d'),'')
		FROM events
		ORDER BY start_date ASC, id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []models.Event{}
	for rows.Next() {
		var e models.Event
		if err := rows.Scan(&e.ID, &e.Name, &e.Venue, &e.StartDate, &e.EndDate); err != nil {
			return nil, err
		}
		list = append(list, e)
	}
	return list, rows.Err()
}

func (r CatalogRepository) GetEventByID(id int64) (models.Event, error) {
	var e models.Event
	err := r.db().QueryRow(`
		SELECT id, COALESCE(name,''), COALESCE(venue,''),
			COALESCE(DATE_FORMAT(start_date,'%Y-%m-%d'),''),
			COALESCE(DATE_FORMAT(end_date,'%Y-%m-%d'),'')
		FROM events
		WHERE id = ?
	`, id).Scan(&e.ID, &e.Name, &e.Venue, &e.StartDate, &e.EndDate)
	if errors.Is(err, sql.ErrNoRows) {
		return e, domain.NotFoundError{Resource: "event", Err: err}
	}
	return e, err
}

func (r CatalogRepository) ListHubs(eventID int64) ([]models.Hub, error) {
	rows, err := r.db().Query(`
		SELECT id, COALESCE(name,''), COALESCE(address,''),
			COALESCE(lat,0), COALESCE(lng,0)
		FROM hubs
		WHERE event_id = ?
		ORDER BY name ASC
	`, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []models.Hub{}
	for rows.Next() {
		var h models.Hub
		if err := rows.Scan(&h.ID, &h.Name, &h.Address, &h.Lat, &h.Lng); err != nil {
			return nil, err
		}
		list = append(list, h)
	}
	return list, rows.Err()
}

func (r CatalogRepository) GetHubByID(id int64) (models.Hub, error) {
	var h models.Hub
	err := r.db().QueryRow(`
		SELECT id, COALESCE(name,''), COALESCE(address,''),
			COALESCE(lat,0), COALESCE(lng,0)
		FROM hubs
		WHERE id = ?
	`, id).Scan(&h.ID, &h.Name, &h.Address, &h.Lat, &h.Lng)
	if errors.Is(err, sql.ErrNoRows) {
		return h, domain.NotFoundError{Resource: "hub", Err: err}
	}
	return h, err
}

func (r CatalogRepository) ListVehicles() ([]models.Vehicle, error) {
	rows, err := r.db().Query(`
		SELECT id, COALESCE(plate_number,''), COALESCE(car_type,''),
			COALESCE(color,''), COALESCE(model,'')
		FROM vehicles
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []models.Vehicle{}
	for rows.Next() {
		var v models.Vehicle
		if err := rows.Scan(&v.ID, &v.PlateNumber, &v.CarType, &v.Color, &v.Model); err != nil {
			return nil, err
		}
		list = append(list, v)
	}
	return list, rows.Err()
}

func (r CatalogRepository) ListDrivers(shiftID int64) ([]models.Driver, error) {
	rows, err := r.db().Query(`
		SELECT id, COALESCE(name,''), COALESCE(phone,''),
			COALESCE(vehicle_id,0), COALESCE(photo,'')
		FROM drivers
		WHERE shift_id = ?
		ORDER BY name ASC
	`, shiftID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []models.Driver{}
	for rows.Next() {
		var d models.Driver
		if err := rows.Scan(&d.ID, &d.Name, &d.Phone, &d.VehicleID, &d.Photo); err != nil {
			return nil, err
		}
		list = append(list, d)
	}
	return list, rows.Err()
}
