package models

// Service types decide which optional fields become mandatory.
const (
	ServiceSingleTrip   = "Single Trip"
	ServiceMultipleTrip = "Multiple Trip"
	ServiceTrip0        = "Trip0"
)

// Guest categories offered by the passenger-info screen.
const (
	GuestMinister   = "minister"
	GuestAmbassador = "ambassador"
	GuestVIP        = "vip"
	GuestOther      = "other"
)

// DefaultDialCode is the country code pre-filled on a fresh session.
const DefaultDialCode = "+1"

const (
	MinPassengers = 1
	MaxPassengers = 10
)

// SessionSchemaVersion tags persisted snapshots so older ones can be
// migrated instead of silently corrupting a restored session.
const SessionSchemaVersion = 2

// BookingSession is the single source of truth for an in-progress
// booking. One record per signed-in shift manager; every mutation is
// written through to the booking_sessions snapshot before returning.
type BookingSession struct {
	SchemaVersion int `json:"schemaVersion"`

	PickupLocation  string   `json:"pickupLocation"`
	PickupLat       *float64 `json:"pickupLat,omitempty"`
	PickupLng       *float64 `json:"pickupLng,omitempty"`
	DropoffLocation string   `json:"dropoffLocation"`
	DropoffLat      *float64 `json:"dropoffLat,omitempty"`
	DropoffLng      *float64 `json:"dropoffLng,omitempty"`

	FirstStopLocation  string `json:"firstStopLocation"`
	SecondFromLocation string `json:"secondFromLocation"`

	PickupNote  string `json:"pickupNote"`
	DropoffNote string `json:"dropoffNote"`

	GuestName        string `json:"guestName"`
	PhoneNumber      string `json:"phoneNumber"`
	PhoneCountryCode string `json:"phoneCountryCode"`
	GuestCategory    string `json:"guestCategory"`

	CarType     string `json:"carType"`
	ServiceType string `json:"serviceType"`

	PickupDate     string `json:"pickupDate"`
	PickupTime     string `json:"pickupTime"`
	PassengerCount int    `json:"passengerCount"`

	// PickupHubID is authoritative when non-zero; free-text pickup and
	// a selected hub are mutually exclusive.
	PickupHubID int64 `json:"pickupHubId"`

	ShiftID int64 `json:"shiftId"`
	EventID int64 `json:"eventId"`

	// RideID is set once the ride row is created at submission.
	RideID int64 `json:"rideId"`

	Step           string   `json:"step"`
	CompletedSteps []string `json:"completedSteps"`
}

// DefaultSession returns the documented default shape.
func DefaultSession() BookingSession {
	return BookingSession{
		SchemaVersion:    SessionSchemaVersion,
		PhoneCountryCode: DefaultDialCode,
		GuestCategory:    GuestOther,
		ServiceType:      ServiceSingleTrip,
		PassengerCount:   MinPassengers,
		Step:             StepLocation,
		CompletedSteps:   []string{},
	}
}

// SessionPatch supports PATCH-style updates via key presence: a nil
// field was absent from the payload and must not touch the record.
type SessionPatch struct {
	PickupLocation  *string  `json:"pickupLocation"`
	PickupLat       *float64 `json:"pickupLat"`
	PickupLng       *float64 `json:"pickupLng"`
	DropoffLocation *string  `json:"dropoffLocation"`
	DropoffLat      *float64 `json:"dropoffLat"`
	DropoffLng      *float64 `json:"dropoffLng"`

	FirstStopLocation  *string `json:"firstStopLocation"`
	SecondFromLocation *string `json:"secondFromLocation"`

	PickupNote  *string `json:"pickupNote"`
	DropoffNote *string `json:"dropoffNote"`

	GuestName        *string `json:"guestName"`
	PhoneNumber      *string `json:"phoneNumber"`
	PhoneCountryCode *string `json:"phoneCountryCode"`
	GuestCategory    *string `json:"guestCategory"`

	CarType     *string `json:"carType"`
	ServiceType *string `json:"serviceType"`

	PickupDate     *string `json:"pickupDate"`
	PickupTime     *string `json:"pickupTime"`
	PassengerCount *int    `json:"passengerCount"`

	PickupHubID *int64 `json:"pickupHubId"`

	ShiftID *int64 `json:"shiftId"`
	EventID *int64 `json:"eventId"`
}

// Apply merges the patch into s, last write wins per field. Fields the
// payload never mentioned stay untouched. The hub/free-text exclusivity
// rule lives here so no caller can produce a record with both set.
func (s *BookingSession) Apply(p SessionPatch) {
	if p.PickupLocation != nil {
		s.PickupLocation = *p.PickupLocation
		if s.PickupLocation != "" {
			// typing an address overrides a previously selected hub
			s.PickupHubID = 0
		}
	}
	if p.PickupLat != nil {
		s.PickupLat = p.PickupLat
	}
	if p.PickupLng != nil {
		s.PickupLng = p.PickupLng
	}
	if p.DropoffLocation != nil {
		s.DropoffLocation = *p.DropoffLocation
	}
	if p.DropoffLat != nil {
		s.DropoffLat = p.DropoffLat
	}
	if p.DropoffLng != nil {
		s.DropoffLng = p.DropoffLng
	}
	if p.FirstStopLocation != nil {
		s.FirstStopLocation = *p.FirstStopLocation
	}
	if p.SecondFromLocation != nil {
		s.SecondFromLocation = *p.SecondFromLocation
	}
	if p.PickupNote != nil {
		s.PickupNote = *p.PickupNote
	}
	if p.DropoffNote != nil {
		s.DropoffNote = *p.DropoffNote
	}
	if p.GuestName != nil {
		s.GuestName = *p.GuestName
	}
	if p.PhoneNumber != nil {
		s.PhoneNumber = *p.PhoneNumber
	}
	if p.PhoneCountryCode != nil {
		s.PhoneCountryCode = *p.PhoneCountryCode
	}
	if p.GuestCategory != nil {
		s.GuestCategory = *p.GuestCategory
	}
	if p.CarType != nil {
		s.CarType = *p.CarType
	}
	if p.ServiceType != nil {
		s.ServiceType = *p.ServiceType
	}
	if p.PickupDate != nil {
		s.PickupDate = *p.PickupDate
	}
	if p.PickupTime != nil {
		s.PickupTime = *p.PickupTime
	}
	if p.PassengerCount != nil {
		s.PassengerCount = clampPassengers(*p.PassengerCount)
	}
	if p.PickupHubID != nil {
		s.PickupHubID = *p.PickupHubID
		if s.PickupHubID != 0 {
			// selecting a hub discards the free-text pickup
			s.PickupLocation = ""
			s.PickupLat = nil
			s.PickupLng = nil
		}
	}
	if p.ShiftID != nil {
		s.ShiftID = *p.ShiftID
	}
	if p.EventID != nil {
		s.EventID = *p.EventID
	}
}

func clampPassengers(n int) int {
	if n < MinPassengers {
		return MinPassengers
	}
	if n > MaxPassengers {
		return MaxPassengers
	}
	return n
}

// PickupSource is the tagged view of the two pickup alternatives.
type PickupSource struct {
	Kind    string   `json:"kind"` // "hub" or "address"
	HubID   int64    `json:"hubId,omitempty"`
	Address string   `json:"address,omitempty"`
	Lat     *float64 `json:"lat,omitempty"`
	Lng     *float64 `json:"lng,omitempty"`
}

const (
	PickupKindHub     = "hub"
	PickupKindAddress = "address"
)

// PickupSource reports which pickup alternative is authoritative.
func (s BookingSession) PickupSource() PickupSource {
	if s.PickupHubID != 0 {
		return PickupSource{Kind: PickupKindHub, HubID: s.PickupHubID}
	}
	return PickupSource{
		Kind:    PickupKindAddress,
		Address: s.PickupLocation,
		Lat:     s.PickupLat,
		Lng:     s.PickupLng,
	}
}

var guestCategories = map[string]bool{
	GuestMinister:   true,
	GuestAmbassador: true,
	GuestVIP:        true,
	GuestOther:      true,
}

func ValidGuestCategory(c string) bool { return guestCategories[c] }

var serviceTypes = map[string]bool{
	ServiceSingleTrip:   true,
	ServiceMultipleTrip: true,
	ServiceTrip0:        true,
}

func ValidServiceType(t string) bool { return serviceTypes[t] }
