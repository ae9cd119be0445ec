package services

import (
	"errors"
	"strings"
	"testing"

	"rideapp/internal/domain"
	"rideapp/internal/domain/models"
)

type fakeRides struct {
	created []models.Ride
	nextID  int64
	err     error
}

func (f *fakeRides) Create(r models.Ride) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.created = append(f.created, r)
	f.nextID++
	return f.nextID, nil
}

func newSequencer(rides *fakeRides) (SequencerService, *SessionService) {
	sessions := NewSessionService(newMemStore())
	return SequencerService{Sessions: sessions, Rides: rides}, sessions
}

func TestAdvanceSingleTripLocation(t *testing.T) {
	seq, sessions := newSequencer(&fakeRides{})

	// empty session cannot leave the location step
	_, err := seq.Advance("t", 1)
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error on empty session, got %v", err)
	}

	if _, err := sessions.Update("t", 1, models.SessionPatch{
		PickupLocation:  strPtr("A"),
		DropoffLocation: strPtr("B"),
	}); err != nil {
		t.Fatalf("update error: %v", err)
	}

	sess, err := seq.Advance("t", 1)
	if err != nil {
		t.Fatalf("advance error: %v", err)
	}
	if sess.Step != models.StepVehicleSelect {
		t.Fatalf("expected vehicle step, got %q", sess.Step)
	}
	if !sess.HasCompleted(models.StepLocation) {
		t.Fatalf("location step not marked completed")
	}
}

func TestAdvanceMultipleTripRequiresFirstStop(t *testing.T) {
	seq, sessions := newSequencer(&fakeRides{})

	if _, err := sessions.Update("t", 1, models.SessionPatch{
		PickupLocation:  strPtr("A"),
		DropoffLocation: strPtr("B"),
	}); err != nil {
		t.Fatalf("update error: %v", err)
	}
	if _, err := seq.Advance("t", 1); err != nil {
		t.Fatalf("advance error: %v", err)
	}

	// switching to Multiple Trip re-opens the location contract
	if _, err := sessions.Update("t", 1, models.SessionPatch{
		ServiceType: strPtr(models.ServiceMultipleTrip),
	}); err != nil {
		t.Fatalf("update error: %v", err)
	}

	_, err := seq.Advance("t", 1)
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if !strings.Contains(err.Error(), "missing first stop") {
		t.Fatalf("notice should name the first stop, got %q", err.Error())
	}

	if _, err := sessions.Update("t", 1, models.SessionPatch{
		FirstStopLocation: strPtr("Conference Centre"),
		CarType:           strPtr(models.CarTypeSedan),
	}); err != nil {
		t.Fatalf("update error: %v", err)
	}
	sess, err := seq.Advance("t", 1)
	if err != nil {
		t.Fatalf("advance after fixing first stop: %v", err)
	}
	if sess.Step != models.StepPassengerInfo {
		t.Fatalf("expected passenger step, got %q", sess.Step)
	}
}

func TestAdvanceBlocksWithoutVehicle(t *testing.T) {
	seq, sessions := newSequencer(&fakeRides{})

	if _, err := sessions.Update("t", 1, models.SessionPatch{
		PickupLocation:  strPtr("A"),
		DropoffLocation: strPtr("B"),
	}); err != nil {
		t.Fatalf("update error: %v", err)
	}
	if _, err := seq.Advance("t", 1); err != nil {
		t.Fatalf("advance error: %v", err)
	}

	_, err := seq.Advance("t", 1)
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error without car type, got %v", err)
	}
	fields := domain.ValidationFields(err)
	if len(fields) != 1 || fields[0] != "carType" {
		t.Fatalf("expected carType named, got %v", fields)
	}
	if got := seq.Sessions.Get(1).Step; got != models.StepVehicleSelect {
		t.Fatalf("failed gate must not mutate state, step is %q", got)
	}
}

func fillValidSession(t *testing.T, sessions *SessionService, userID int64) {
	t.Helper()
	if _, err := sessions.Update("t", userID, models.SessionPatch{
		PickupLocation:  strPtr("Terminal 1"),
		DropoffLocation: strPtr("Grand Hotel"),
		CarType:         strPtr(models.CarTypeLimousine),
		GuestName:       strPtr("Ambassador Okoye"),
		GuestCategory:   strPtr(models.GuestAmbassador),
		PhoneNumber:     strPtr("5550100"),
		PickupDate:      strPtr("2026-09-01"),
		PickupTime:      strPtr("14:30"),
		EventID:         i64Ptr(3),
		ShiftID:         i64Ptr(9),
	}); err != nil {
		t.Fatalf("seed update error: %v", err)
	}
}

func advanceTo(t *testing.T, seq SequencerService, userID int64, step string) {
	t.Helper()
	for seq.Sessions.Get(userID).Step != step {
		if _, err := seq.Advance("t", userID); err != nil {
			t.Fatalf("advance towards %s failed at %s: %v", step, seq.Sessions.Get(userID).Step, err)
		}
	}
}

func TestSubmitCreatesRideAndIsTerminal(t *testing.T) {
	rides := &fakeRides{}
	seq, sessions := newSequencer(rides)

	fillValidSession(t, sessions, 1)
	advanceTo(t, seq, 1, models.StepReview)

	sess, err := seq.Advance("t", 1)
	if err != nil {
		t.Fatalf("submit error: %v", err)
	}
	if sess.Step != models.StepSubmitted {
		t.Fatalf("expected submitted, got %q", sess.Step)
	}
	if sess.RideID != 1 {
		t.Fatalf("ride id not retained, got %d", sess.RideID)
	}
	if len(rides.created) != 1 {
		t.Fatalf("expected exactly one ride row, got %d", len(rides.created))
	}
	ride := rides.created[0]
	if ride.Status != models.RideStatusPending || ride.EventID != 3 || ride.ShiftID != 9 || ride.UserID != 1 {
		t.Fatalf("ride mapped incorrectly: %+v", ride)
	}

	if _, err := seq.Advance("t", 1); !domain.IsConflict(err) {
		t.Fatalf("advancing past submitted should conflict, got %v", err)
	}
	if _, err := seq.Back("t", 1); !domain.IsConflict(err) {
		t.Fatalf("back from submitted should conflict, got %v", err)
	}
}

func TestFailedSubmitKeepsSessionOnReview(t *testing.T) {
	rides := &fakeRides{err: errors.New("backend unavailable")}
	seq, sessions := newSequencer(rides)

	fillValidSession(t, sessions, 1)
	advanceTo(t, seq, 1, models.StepReview)

	before := sessions.Get(1)
	_, err := seq.Advance("t", 1)
	if err == nil || !strings.Contains(err.Error(), "backend unavailable") {
		t.Fatalf("expected remote error surfaced verbatim, got %v", err)
	}

	after := sessions.Get(1)
	if after.Step != models.StepReview {
		t.Fatalf("failed submit must stay on review, got %q", after.Step)
	}
	if after.GuestName != before.GuestName || after.PickupLocation != before.PickupLocation {
		t.Fatalf("failed submit mutated session: %+v", after)
	}

	// user-initiated retry succeeds once the backend recovers
	rides.err = nil
	sess, err := seq.Advance("t", 1)
	if err != nil {
		t.Fatalf("retry error: %v", err)
	}
	if sess.Step != models.StepSubmitted || sess.RideID == 0 {
		t.Fatalf("retry did not submit: %+v", sess)
	}
}

func TestBackNavigatesWithoutValidating(t *testing.T) {
	seq, sessions := newSequencer(&fakeRides{})

	fillValidSession(t, sessions, 1)
	advanceTo(t, seq, 1, models.StepPassengerInfo)

	// blank out a field the passenger step requires; back must still work
	if _, err := sessions.Update("t", 1, models.SessionPatch{GuestName: strPtr("")}); err != nil {
		t.Fatalf("update error: %v", err)
	}
	sess, err := seq.Back("t", 1)
	if err != nil {
		t.Fatalf("back error: %v", err)
	}
	if sess.Step != models.StepVehicleSelect {
		t.Fatalf("expected vehicle step after back, got %q", sess.Step)
	}
}

func TestSubmissionRequiresShiftAndEvent(t *testing.T) {
	seq, sessions := newSequencer(&fakeRides{})

	fillValidSession(t, sessions, 1)
	if _, err := sessions.Update("t", 1, models.SessionPatch{ShiftID: i64Ptr(0), EventID: i64Ptr(0)}); err != nil {
		t.Fatalf("update error: %v", err)
	}
	advanceTo(t, seq, 1, models.StepReview)

	_, err := seq.Advance("t", 1)
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	fields := domain.ValidationFields(err)
	joined := strings.Join(fields, ",")
	if !strings.Contains(joined, "event") || !strings.Contains(joined, "shift") {
		t.Fatalf("expected event and shift named, got %v", fields)
	}
}
