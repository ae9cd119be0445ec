package models

// Event is the operational context a shift manager signs in under.
type Event struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Venue     string `json:"venue"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

// Shift is a scheduled operating window for an event with a pool of
// drivers and vehicles assigned.
type Shift struct {
	ID        int64  `json:"id"`
	EventID   int64  `json:"eventId"`
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Label     string `json:"label,omitempty"`
}

// ShiftSlot is a shift plus its derived availability, recomputed on
// every day selection.
type ShiftSlot struct {
	Shift
	AvailableVehicles int `json:"availableVehicles"`
}

// Hub is a named, pre-geocoded pickup location offered as an
// alternative to free-text address entry.
type Hub struct {
	ID      int64   `json:"id"`
	Name    string  `json:"name"`
	Address string  `json:"address"`
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
}

// Driver belongs to a shift's pool and may be bound to a vehicle.
type Driver struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	VehicleID int64  `json:"vehicleId,omitempty"`
	Photo     string `json:"photo,omitempty"`
}

// Vehicle is a car in the premium fleet.
type Vehicle struct {
	ID          int64  `json:"id"`
	PlateNumber string `json:"plateNumber"`
	CarType     string `json:"carType"`
	Color       string `json:"color,omitempty"`
	Model       string `json:"model,omitempty"`
}

// Vehicle classes the client may pick from.
const (
	CarTypeSedan     = "Sedan"
	CarTypeSUV       = "SUV"
	CarTypeLimousine = "Limousine"
	CarTypeVan       = "Van"
)

// CarTypes is the selectable class list, in display order.
var CarTypes = []string{CarTypeSedan, CarTypeSUV, CarTypeLimousine, CarTypeVan}

func ValidCarType(t string) bool {
	for _, c := range CarTypes {
		if c == t {
			return true
		}
	}
	return false
}
