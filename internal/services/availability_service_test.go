package services

import (
	"testing"

	"rideapp/internal/domain/models"
	"rideapp/internal/repositories"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestCountAvailableVehicles(t *testing.T) {
	vehicles := []int64{10, 11}

	// one vehicle bound to an active ride
	got := CountAvailableVehicles(vehicles, map[int64]string{10: "ASSIGNED"})
	if got != 1 {
		t.Fatalf("active ride must exclude its vehicle, got %d", got)
	}

	// the same ride ended frees the vehicle again
	got = CountAvailableVehicles(vehicles, map[int64]string{10: models.RideStatusEnd})
	if got != 2 {
		t.Fatalf("ended ride must not exclude its vehicle, got %d", got)
	}

	// no rides at all
	got = CountAvailableVehicles(vehicles, map[int64]string{})
	if got != 2 {
		t.Fatalf("unbound vehicles must all count, got %d", got)
	}

	// every status short of End excludes
	for _, status := range []string{models.RideStatusPending, models.RideStatusAssigned, models.RideStatusStarted, models.RideStatusWaiting} {
		if got := CountAvailableVehicles(vehicles, map[int64]string{10: status, 11: status}); got != 0 {
			t.Fatalf("status %q should exclude, got %d available", status, got)
		}
	}
}

func TestListDaySlots(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM shifts").WithArgs(int64(3), "2026-09-01").
		WillReturnRows(sqlmock.NewRows([]string{"id", "event_id", "date", "start", "end", "label"}).
			AddRow(9, 3, "2026-09-01", "08:00", "14:00", "Morning"))
	mock.ExpectQuery("FROM drivers").WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows([]string{"vehicle_id"}).AddRow(10).AddRow(11))
	mock.ExpectQuery("FROM rides").WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows([]string{"vehicle_id", "status"}).AddRow(10, "ASSIGNED"))

	svc := AvailabilityService{
		Shifts: repositories.ShiftRepository{DB: db},
		Rides:  repositories.RideRepository{DB: db},
	}
	slots, err := svc.ListDaySlots(3, "2026-09-01")
	if err != nil {
		t.Fatalf("ListDaySlots error: %v", err)
	}
	if len(slots) != 1 {
		t.Fatalf("expected one slot, got %d", len(slots))
	}
	if slots[0].AvailableVehicles != 1 {
		t.Fatalf("expected 1 available vehicle, got %d", slots[0].AvailableVehicles)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
