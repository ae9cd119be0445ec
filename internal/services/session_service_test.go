package services

import (
	"encoding/json"
	"testing"

	"rideapp/internal/domain/models"
)

// memStore is an in-memory SnapshotStore for tests.
type memStore struct {
	blobs map[int64][]byte
	saves int
}

func newMemStore() *memStore {
	return &memStore{blobs: map[int64][]byte{}}
}

func (m *memStore) Get(userID int64) ([]byte, bool, error) {
	b, ok := m.blobs[userID]
	return b, ok, nil
}

func (m *memStore) Save(userID int64, blob []byte) error {
	m.saves++
	m.blobs[userID] = append([]byte(nil), blob...)
	return nil
}

func (m *memStore) Delete(userID int64) error {
	delete(m.blobs, userID)
	return nil
}

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }
func i64Ptr(n int64) *int64   { return &n }

func TestUpdateShallowMerge(t *testing.T) {
	store := newMemStore()
	svc := NewSessionService(store)

	if _, err := svc.Update("t", 1, models.SessionPatch{
		PickupLocation:  strPtr("Terminal 1"),
		DropoffLocation: strPtr("Grand Hotel"),
	}); err != nil {
		t.Fatalf("first update error: %v", err)
	}
	sess, err := svc.Update("t", 1, models.SessionPatch{GuestName: strPtr("Dr. Amina")})
	if err != nil {
		t.Fatalf("second update error: %v", err)
	}

	if sess.PickupLocation != "Terminal 1" || sess.DropoffLocation != "Grand Hotel" {
		t.Fatalf("earlier fields lost after partial update: %+v", sess)
	}
	if sess.GuestName != "Dr. Amina" {
		t.Fatalf("guest name not merged, got %q", sess.GuestName)
	}
	if sess.ServiceType != models.ServiceSingleTrip || sess.PassengerCount != 1 {
		t.Fatalf("defaults disturbed by partial update: %+v", sess)
	}
	if store.saves != 2 {
		t.Fatalf("expected write-through per update, got %d saves", store.saves)
	}
}

func TestPassengerCountClamped(t *testing.T) {
	svc := NewSessionService(newMemStore())

	for i := 0; i < 25; i++ {
		if _, err := svc.StepPassengers("t", 1, +1); err != nil {
			t.Fatalf("increment error: %v", err)
		}
	}
	if got := svc.Get(1).PassengerCount; got != models.MaxPassengers {
		t.Fatalf("count not clamped high, got %d", got)
	}

	for i := 0; i < 25; i++ {
		if _, err := svc.StepPassengers("t", 1, -1); err != nil {
			t.Fatalf("decrement error: %v", err)
		}
	}
	if got := svc.Get(1).PassengerCount; got != models.MinPassengers {
		t.Fatalf("count not clamped low, got %d", got)
	}

	sess, err := svc.Update("t", 1, models.SessionPatch{PassengerCount: intPtr(99)})
	if err != nil {
		t.Fatalf("update error: %v", err)
	}
	if sess.PassengerCount != models.MaxPassengers {
		t.Fatalf("direct update not clamped, got %d", sess.PassengerCount)
	}
}

func TestHubAndFreeTextExclusive(t *testing.T) {
	svc := NewSessionService(newMemStore())

	sess, err := svc.Update("t", 1, models.SessionPatch{PickupLocation: strPtr("Airport Road 5")})
	if err != nil {
		t.Fatalf("update error: %v", err)
	}
	if sess.PickupLocation == "" {
		t.Fatalf("free text not stored")
	}

	sess, err = svc.Update("t", 1, models.SessionPatch{PickupHubID: i64Ptr(7)})
	if err != nil {
		t.Fatalf("hub select error: %v", err)
	}
	if sess.PickupLocation != "" || sess.PickupLat != nil {
		t.Fatalf("selecting a hub must clear free-text pickup: %+v", sess)
	}
	if src := sess.PickupSource(); src.Kind != models.PickupKindHub || src.HubID != 7 {
		t.Fatalf("pickup source should be hub, got %+v", src)
	}

	sess, err = svc.Update("t", 1, models.SessionPatch{PickupLocation: strPtr("Main Gate")})
	if err != nil {
		t.Fatalf("free text error: %v", err)
	}
	if sess.PickupHubID != 0 {
		t.Fatalf("typing an address must clear the hub, got hub %d", sess.PickupHubID)
	}
	if src := sess.PickupSource(); src.Kind != models.PickupKindAddress || src.Address != "Main Gate" {
		t.Fatalf("pickup source should be address, got %+v", src)
	}
}

func TestClearResetsAndRemovesSnapshot(t *testing.T) {
	store := newMemStore()
	svc := NewSessionService(store)

	if _, err := svc.Update("t", 1, models.SessionPatch{
		PickupLocation: strPtr("A"),
		GuestName:      strPtr("Guest"),
		PassengerCount: intPtr(4),
	}); err != nil {
		t.Fatalf("update error: %v", err)
	}

	sess, err := svc.Clear("t", 1)
	if err != nil {
		t.Fatalf("clear error: %v", err)
	}
	want := models.DefaultSession()
	if sess.PickupLocation != "" || sess.GuestName != "" ||
		sess.PassengerCount != want.PassengerCount ||
		sess.ServiceType != want.ServiceType ||
		sess.PhoneCountryCode != want.PhoneCountryCode {
		t.Fatalf("clear did not reset to defaults: %+v", sess)
	}
	if _, ok := store.blobs[1]; ok {
		t.Fatalf("durable snapshot not removed on clear")
	}

	// a fresh service (fresh process) observes defaults, not pre-clear state
	fresh := NewSessionService(store).Get(1)
	if fresh.PickupLocation != "" || fresh.PassengerCount != want.PassengerCount {
		t.Fatalf("fresh load after clear saw stale state: %+v", fresh)
	}
}

func TestCorruptSnapshotFallsBackToDefaults(t *testing.T) {
	store := newMemStore()
	store.blobs[1] = []byte("{not json")

	sess := NewSessionService(store).Get(1)
	want := models.DefaultSession()
	if sess.ServiceType != want.ServiceType || sess.PassengerCount != want.PassengerCount {
		t.Fatalf("corrupt snapshot did not fall back to defaults: %+v", sess)
	}
}

func TestSnapshotMigrationFromV1(t *testing.T) {
	store := newMemStore()
	v1 := map[string]any{
		"schemaVersion":   1,
		"pickupLocation":  "Old Palace",
		"dropoffLocation": "Summit Hall",
		"passengerCount":  3,
	}
	blob, _ := json.Marshal(v1)
	store.blobs[1] = blob

	sess := NewSessionService(store).Get(1)
	if sess.PickupLocation != "Old Palace" || sess.PassengerCount != 3 {
		t.Fatalf("v1 fields lost in migration: %+v", sess)
	}
	if sess.PhoneCountryCode != models.DefaultDialCode {
		t.Fatalf("migration did not backfill dial code, got %q", sess.PhoneCountryCode)
	}
	if sess.Step != models.StepLocation {
		t.Fatalf("migration did not backfill step, got %q", sess.Step)
	}
	if sess.SchemaVersion != models.SessionSchemaVersion {
		t.Fatalf("schema version not bumped, got %d", sess.SchemaVersion)
	}
}

func TestSubscribersNotifiedSynchronously(t *testing.T) {
	svc := NewSessionService(newMemStore())

	var seen []models.BookingSession
	svc.Subscribe(func(userID int64, snap models.BookingSession) {
		if userID == 1 {
			seen = append(seen, snap)
		}
	})

	if _, err := svc.Update("t", 1, models.SessionPatch{PickupLocation: strPtr("A")}); err != nil {
		t.Fatalf("update error: %v", err)
	}
	if len(seen) != 1 || seen[0].PickupLocation != "A" {
		t.Fatalf("subscriber did not observe the committed snapshot: %+v", seen)
	}
}
