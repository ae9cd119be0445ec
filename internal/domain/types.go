package domain

// ID is used across domain entities.
type ID int64

// Status represents a lightweight state value.
type Status string

// RequestContext carries authenticated shift-manager info when available.
type RequestContext struct {
	UserID  ID     `json:"userId"`
	EventID ID     `json:"eventId"`
	Email   string `json:"email"`
}
