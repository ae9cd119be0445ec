package services

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"

	"rideapp/internal/domain/models"
	"rideapp/internal/repositories"
	"rideapp/internal/utils"
)

// Subscriber observes every committed session snapshot. Notification is
// synchronous, in commit order, under the store lock.
type Subscriber func(userID int64, snap models.BookingSession)

// SnapshotStore is the durable key->blob persistence behind the store.
// repositories.SessionRepository is the production implementation.
type SnapshotStore interface {
	Get(userID int64) ([]byte, bool, error)
	Save(userID int64, blob []byte) error
	Delete(userID int64) error
}

var _ SnapshotStore = repositories.SessionRepository{}

// SessionService is the single source of truth for in-progress
// bookings. It is created once by the composition root and shared;
// every mutation writes through to the snapshot row before returning.
type SessionService struct {
	Repo SnapshotStore

	mu       sync.Mutex
	sessions map[int64]models.BookingSession
	subs     []Subscriber
}

func NewSessionService(repo SnapshotStore) *SessionService {
	return &SessionService{
		Repo:     repo,
		sessions: map[int64]models.BookingSession{},
	}
}

// Subscribe registers an observer for committed updates.
func (s *SessionService) Subscribe(fn Subscriber) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}

// Get returns the user's current session, hydrating from the persisted
// snapshot on first access. A snapshot that fails to parse falls back
// to defaults silently (log only).
func (s *SessionService) Get(userID int64) models.BookingSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(userID)
}

// Update shallow-merges the patch and persists the full record. On a
// persistence failure the in-memory state is left untouched so the
// user can retry.
func (s *SessionService) Update(requestID string, userID int64, patch models.SessionPatch) (models.BookingSession, error) {
	utils.LogEvent(requestID, "session", "update", fmt.Sprintf("user_id=%d", userID))
	return s.mutate(userID, func(sess *models.BookingSession) error {
		sess.Apply(patch)
		return nil
	})
}

// StepPassengers adjusts passengerCount by delta, clamped to the
// documented range. Steps past the bounds are absorbed, not errors.
func (s *SessionService) StepPassengers(requestID string, userID int64, delta int) (models.BookingSession, error) {
	utils.LogEvent(requestID, "session", "step_passengers", fmt.Sprintf("user_id=%d delta=%d", userID, delta))
	return s.mutate(userID, func(sess *models.BookingSession) error {
		n := sess.PassengerCount + delta
		if n < models.MinPassengers {
			n = models.MinPassengers
		}
		if n > models.MaxPassengers {
			n = models.MaxPassengers
		}
		sess.PassengerCount = n
		return nil
	})
}

// Clear resets the session to defaults and removes the durable
// snapshot. Only an explicit "start over" calls this.
func (s *SessionService) Clear(requestID string, userID int64) (models.BookingSession, error) {
	utils.LogEvent(requestID, "session", "clear", fmt.Sprintf("user_id=%d", userID))

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.Repo.Delete(userID); err != nil {
		return s.load(userID), err
	}
	fresh := models.DefaultSession()
	s.sessions[userID] = fresh
	s.notify(userID, fresh)
	return fresh, nil
}

// Forget drops the in-memory copy only, e.g. on sign-out. The durable
// snapshot stays so the next sign-in resumes the booking.
func (s *SessionService) Forget(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, userID)
}

// mutate runs fn against the current record and commits the result:
// write-through first, then in-memory state, then subscribers.
func (s *SessionService) mutate(userID int64, fn func(*models.BookingSession) error) (models.BookingSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current := s.load(userID)
	next := current
	if err := fn(&next); err != nil {
		return current, err
	}

	blob, err := json.Marshal(next)
	if err != nil {
		return current, err
	}
	if err := s.Repo.Save(userID, blob); err != nil {
		return current, err
	}

	s.sessions[userID] = next
	s.notify(userID, next)
	return next, nil
}

func (s *SessionService) load(userID int64) models.BookingSession {
	if sess, ok := s.sessions[userID]; ok {
		return sess
	}

	sess := models.DefaultSession()
	blob, found, err := s.Repo.Get(userID)
	if err != nil {
		log.Printf("[SESSION] snapshot read failed for user %d: %v", userID, err)
	} else if found {
		if restored, ok := decodeSnapshot(blob); ok {
			sess = restored
		} else {
			log.Printf("[SESSION] snapshot for user %d unreadable, using defaults", userID)
		}
	}
	s.sessions[userID] = sess
	return sess
}

func (s *SessionService) notify(userID int64, snap models.BookingSession) {
	for _, fn := range s.subs {
		fn(userID, snap)
	}
}

// decodeSnapshot parses a persisted blob and migrates older schema
// versions forward. ok is false when the blob is unusable.
func decodeSnapshot(blob []byte) (models.BookingSession, bool) {
	var sess models.BookingSession
	if err := json.Unmarshal(blob, &sess); err != nil {
		return models.BookingSession{}, false
	}
	if sess.SchemaVersion > models.SessionSchemaVersion {
		return models.BookingSession{}, false
	}
	migrateSnapshot(&sess)
	return sess, true
}

// migrateSnapshot upgrades a snapshot in place to the current schema.
// Version 1 predates phoneCountryCode and the step bookkeeping.
func migrateSnapshot(sess *models.BookingSession) {
	if sess.SchemaVersion < 2 {
		if sess.PhoneCountryCode == "" {
			sess.PhoneCountryCode = models.DefaultDialCode
		}
		if sess.Step == "" {
			sess.Step = models.StepLocation
		}
	}
	if sess.GuestCategory == "" {
		sess.GuestCategory = models.GuestOther
	}
	if sess.ServiceType == "" {
		sess.ServiceType = models.ServiceSingleTrip
	}
	if sess.PassengerCount < models.MinPassengers {
		sess.PassengerCount = models.MinPassengers
	}
	if sess.CompletedSteps == nil {
		sess.CompletedSteps = []string{}
	}
	sess.SchemaVersion = models.SessionSchemaVersion
}
