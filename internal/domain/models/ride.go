package models

// Ride statuses. End is the terminal value; a vehicle bound to a ride
// in any other status counts as taken for that shift.
const (
	RideStatusPending  = "Pending"
	RideStatusAssigned = "Assigned"
	RideStatusStarted  = "Started"
	RideStatusWaiting  = "Waiting"
	RideStatusEnd      = "End"
)

// Ride is a submitted booking row awaiting (or under) assignment.
type Ride struct {
	ID        int64  `json:"id"`
	EventID   int64  `json:"eventId"`
	ShiftID   int64  `json:"shiftId"`
	UserID    int64  `json:"userId"`
	Status    string `json:"status"`
	CreatedAt string `json:"createdAt"`

	GuestName        string `json:"guestName"`
	GuestCategory    string `json:"guestCategory"`
	PhoneNumber      string `json:"phoneNumber"`
	PhoneCountryCode string `json:"phoneCountryCode"`
	PassengerCount   int    `json:"passengerCount"`

	ServiceType       string `json:"serviceType"`
	CarType           string `json:"carType"`
	PickupDate        string `json:"pickupDate"`
	PickupTime        string `json:"pickupTime"`
	PickupHubID       int64  `json:"pickupHubId,omitempty"`
	PickupLocation    string `json:"pickupLocation,omitempty"`
	DropoffLocation   string `json:"dropoffLocation"`
	FirstStopLocation string `json:"firstStopLocation,omitempty"`
	PickupNote        string `json:"pickupNote,omitempty"`
	DropoffNote       string `json:"dropoffNote,omitempty"`

	PickupLat  *float64 `json:"pickupLat,omitempty"`
	PickupLng  *float64 `json:"pickupLng,omitempty"`
	DropoffLat *float64 `json:"dropoffLat,omitempty"`
	DropoffLng *float64 `json:"dropoffLng,omitempty"`

	DriverID  int64 `json:"driverId,omitempty"`
	VehicleID int64 `json:"vehicleId,omitempty"`
}

// RideTracking is the tracking screen's polling projection.
type RideTracking struct {
	ID          int64  `json:"id"`
	Status      string `json:"status"`
	DriverName  string `json:"driverName,omitempty"`
	DriverPhone string `json:"driverPhone,omitempty"`
	PlateNumber string `json:"plateNumber,omitempty"`
	CarType     string `json:"carType,omitempty"`
}
