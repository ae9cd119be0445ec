package services

import (
	"fmt"
	"strings"

	"rideapp/internal/domain"
	"rideapp/internal/domain/models"
	"rideapp/internal/repositories"
	"rideapp/internal/utils"
)

// RideCreator is the one external write the sequencer performs.
// repositories.RideRepository is the production implementation.
type RideCreator interface {
	Create(ride models.Ride) (int64, error)
}

var _ RideCreator = repositories.RideRepository{}

// SequencerService gates forward navigation through the wizard. A step
// advances only when its predicate over the session holds; a failed
// predicate blocks the transition and names the missing fields without
// mutating anything.
type SequencerService struct {
	Sessions *SessionService
	Rides    RideCreator
}

// Advance validates the session's current step and moves to the next
// one. Reaching Submitted creates the ride row; a failed create leaves
// the session on Review intact for a user-initiated retry.
func (s SequencerService) Advance(requestID string, userID int64) (models.BookingSession, error) {
	current := s.Sessions.Get(userID)

	if current.Step == models.StepSubmitted {
		return current, domain.ConflictError{Resource: "booking", Msg: "already submitted"}
	}
	if err := validateThrough(current.Step, current); err != nil {
		return current, err
	}

	next := models.NextStep(current.Step)
	if next == "" {
		return current, domain.ConflictError{Resource: "booking", Msg: "no further step"}
	}

	if next == models.StepSubmitted {
		return s.submit(requestID, userID, current)
	}

	utils.LogEvent(requestID, "sequencer", "advance", fmt.Sprintf("user_id=%d step=%s", userID, next))
	return s.Sessions.mutate(userID, func(sess *models.BookingSession) error {
		// re-check under the lock; two rapid advances must be idempotent
		if err := validateThrough(sess.Step, *sess); err != nil {
			return err
		}
		sess.MarkCompleted(sess.Step)
		if n := models.NextStep(sess.Step); n != "" && n != models.StepSubmitted {
			sess.Step = n
		}
		return nil
	})
}

// Back moves one step backwards without validating; the user may always
// revisit earlier screens. Submitted is terminal and cannot go back.
func (s SequencerService) Back(requestID string, userID int64) (models.BookingSession, error) {
	utils.LogEvent(requestID, "sequencer", "back", fmt.Sprintf("user_id=%d", userID))
	return s.Sessions.mutate(userID, func(sess *models.BookingSession) error {
		if sess.Step == models.StepSubmitted {
			return domain.ConflictError{Resource: "booking", Msg: "already submitted"}
		}
		if prev := models.PrevStep(sess.Step); prev != "" {
			sess.Step = prev
		}
		return nil
	})
}

func (s SequencerService) submit(requestID string, userID int64, snap models.BookingSession) (models.BookingSession, error) {
	// full-record validation before the one irreversible write
	if err := ValidateSubmission(snap); err != nil {
		return snap, err
	}

	rideID, err := s.Rides.Create(rideFromSession(userID, snap))
	if err != nil {
		utils.LogEvent(requestID, "sequencer", "submit_failed", fmt.Sprintf("user_id=%d err=%v", userID, err))
		return snap, err
	}
	utils.LogEvent(requestID, "sequencer", "submitted", fmt.Sprintf("user_id=%d ride_id=%d", userID, rideID))

	return s.Sessions.mutate(userID, func(sess *models.BookingSession) error {
		sess.MarkCompleted(models.StepReview)
		sess.Step = models.StepSubmitted
		sess.RideID = rideID
		return nil
	})
}

// rideFromSession maps the full session snapshot onto the rides row.
func rideFromSession(userID int64, s models.BookingSession) models.Ride {
	return models.Ride{
		EventID:           s.EventID,
		ShiftID:           s.ShiftID,
		UserID:            userID,
		Status:            models.RideStatusPending,
		GuestName:         s.GuestName,
		GuestCategory:     s.GuestCategory,
		PhoneNumber:       s.PhoneNumber,
		PhoneCountryCode:  s.PhoneCountryCode,
		PassengerCount:    s.PassengerCount,
		ServiceType:       s.ServiceType,
		CarType:           s.CarType,
		PickupDate:        s.PickupDate,
		PickupTime:        s.PickupTime,
		PickupHubID:       s.PickupHubID,
		PickupLocation:    s.PickupLocation,
		DropoffLocation:   s.DropoffLocation,
		FirstStopLocation: s.FirstStopLocation,
		PickupNote:        s.PickupNote,
		DropoffNote:       s.DropoffNote,
		PickupLat:         s.PickupLat,
		PickupLng:         s.PickupLng,
		DropoffLat:        s.DropoffLat,
		DropoffLng:        s.DropoffLng,
	}
}

// validateThrough re-checks every step from Location up to and
// including the current one: a later screen is only reachable while the
// earlier contracts still hold (changing the service type on a later
// screen re-opens the location requirements).
func validateThrough(step string, s models.BookingSession) error {
	limit := models.StepIndex(step)
	if limit < 0 {
		return domain.ValidationError{Msg: fmt.Sprintf("unknown step %q", step)}
	}
	for i := 0; i <= limit; i++ {
		if err := ValidateStep(models.StepOrder[i], s); err != nil {
			return err
		}
	}
	return nil
}

// ValidateStep is the forward-gate predicate for a single step.
func ValidateStep(step string, s models.BookingSession) error {
	var fields []string

	switch step {
	case models.StepLocation:
		if s.PickupHubID == 0 && strings.TrimSpace(s.PickupLocation) == "" {
			fields = append(fields, "pickupLocation")
		}
		if strings.TrimSpace(s.DropoffLocation) == "" {
			fields = append(fields, "dropoffLocation")
		}
		if s.ServiceType == models.ServiceMultipleTrip && strings.TrimSpace(s.FirstStopLocation) == "" {
			fields = append(fields, "firstStopLocation")
		}
	case models.StepVehicleSelect:
		if strings.TrimSpace(s.CarType) == "" || !models.ValidCarType(s.CarType) {
			fields = append(fields, "carType")
		}
	case models.StepPassengerInfo:
		if strings.TrimSpace(s.GuestName) == "" {
			fields = append(fields, "guestName")
		}
		if strings.TrimSpace(s.PhoneNumber) == "" {
			fields = append(fields, "phoneNumber")
		}
		if !models.ValidGuestCategory(s.GuestCategory) {
			fields = append(fields, "guestCategory")
		}
	case models.StepReview:
		// handled by ValidateSubmission
		return nil
	default:
		return domain.ValidationError{Msg: fmt.Sprintf("unknown step %q", step)}
	}

	if len(fields) > 0 {
		return domain.ValidationError{Fields: fields, Msg: missingNotice(fields)}
	}
	return nil
}

// ValidateSubmission checks the whole record before the ride write.
func ValidateSubmission(s models.BookingSession) error {
	var fields []string

	for _, step := range []string{models.StepLocation, models.StepVehicleSelect, models.StepPassengerInfo} {
		if err := ValidateStep(step, s); err != nil {
			fields = append(fields, domain.ValidationFields(err)...)
		}
	}
	if s.EventID == 0 {
		fields = append(fields, "event")
	}
	if s.ShiftID == 0 {
		fields = append(fields, "shift")
	}
	if strings.TrimSpace(s.PickupDate) == "" {
		fields = append(fields, "pickupDate")
	}
	if strings.TrimSpace(s.PickupTime) == "" {
		fields = append(fields, "pickupTime")
	}

	if len(fields) > 0 {
		return domain.ValidationError{Fields: fields, Msg: missingNotice(fields)}
	}
	return nil
}

var fieldNotices = map[string]string{
	"pickupLocation":    "missing pickup location",
	"dropoffLocation":   "missing drop-off location",
	"firstStopLocation": "missing first stop",
	"carType":           "select a vehicle class",
	"guestName":         "missing guest name",
	"phoneNumber":       "missing phone number",
	"guestCategory":     "invalid guest category",
	"event":             "no event selected",
	"shift":             "no shift selected",
	"pickupDate":        "missing pickup date",
	"pickupTime":        "missing pickup time",
}

func missingNotice(fields []string) string {
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		if msg, ok := fieldNotices[f]; ok {
			parts = append(parts, msg)
		} else {
			parts = append(parts, "missing "+f)
		}
	}
	return strings.Join(parts, "; ")
}
