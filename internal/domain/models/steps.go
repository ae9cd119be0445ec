package models

// Wizard steps, in order. Multiple Trip adds a first-stop requirement
// to the location step but does not add a step of its own.
const (
	StepLocation      = "location"
	StepVehicleSelect = "vehicle"
	StepPassengerInfo = "passenger"
	StepReview        = "review"
	StepSubmitted     = "submitted"
)

// StepOrder is the linear sequence the gate walks.
var StepOrder = []string{
	StepLocation,
	StepVehicleSelect,
	StepPassengerInfo,
	StepReview,
	StepSubmitted,
}

// StepIndex returns the position of a step, or -1 for unknown names.
func StepIndex(step string) int {
	for i, s := range StepOrder {
		if s == step {
			return i
		}
	}
	return -1
}

// NextStep returns the step after the given one, or "" at the end.
func NextStep(step string) string {
	i := StepIndex(step)
	if i < 0 || i+1 >= len(StepOrder) {
		return ""
	}
	return StepOrder[i+1]
}

// PrevStep returns the step before the given one, or "" at the start.
func PrevStep(step string) string {
	i := StepIndex(step)
	if i <= 0 {
		return ""
	}
	return StepOrder[i-1]
}

// HasCompleted reports whether the session already satisfied a step.
func (s BookingSession) HasCompleted(step string) bool {
	for _, c := range s.CompletedSteps {
		if c == step {
			return true
		}
	}
	return false
}

// MarkCompleted records the step once; re-advancing is idempotent.
func (s *BookingSession) MarkCompleted(step string) {
	if !s.HasCompleted(step) {
		s.CompletedSteps = append(s.CompletedSteps, step)
	}
}
