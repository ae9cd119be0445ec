package services

import (
	"fmt"

	"rideapp/internal/domain/models"
	"rideapp/internal/repositories"
	"rideapp/internal/utils"
)

// AvailabilityService computes per-shift free-vehicle counts. It is a
// pure read-time projection over drivers, vehicles and rides,
// recomputed on every day selection; nothing is cached.
type AvailabilityService struct {
	Shifts    repositories.ShiftRepository
	Rides     repositories.RideRepository
	RequestID string
}

// ListDaySlots returns the event's shifts for one calendar day with
// their derived availability.
func (s AvailabilityService) ListDaySlots(eventID int64, date string) ([]models.ShiftSlot, error) {
	utils.LogEvent(s.RequestID, "availability", "list_day", fmt.Sprintf("event_id=%d date=%s", eventID, date))

	shifts, err := s.Shifts.ListByEventAndDate(eventID, date)
	if err != nil {
		return nil, err
	}

	slots := make([]models.ShiftSlot, 0, len(shifts))
	for _, sh := range shifts {
		vehicleIDs, err := s.Shifts.ListShiftVehicleIDs(sh.ID)
		if err != nil {
			return nil, err
		}
		statuses, err := s.Rides.VehicleStatusByShift(sh.ID)
		if err != nil {
			return nil, err
		}
		slots = append(slots, models.ShiftSlot{
			Shift:             sh,
			AvailableVehicles: CountAvailableVehicles(vehicleIDs, statuses),
		})
	}
	return slots, nil
}

// CountAvailableVehicles applies the exclusion rule: a vehicle counts
// unless it carries a ride for the shift whose status is anything but
// the terminal End value.
func CountAvailableVehicles(vehicleIDs []int64, rideStatus map[int64]string) int {
	count := 0
	for _, id := range vehicleIDs {
		status, bound := rideStatus[id]
		if !bound || status == models.RideStatusEnd {
			count++
		}
	}
	return count
}
