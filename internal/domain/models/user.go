package models

// User is a shift-manager account; the linked event is merged into the
// login response so the client lands on the right context.
type User struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	EventID int64  `json:"eventId"`
	Event   *Event `json:"event,omitempty"`
}
