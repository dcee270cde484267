// internal/models/notification.go
package models

import "time"

// Notification modes
const (
	ModeLive      = "live"
	ModeSimulated = "simulated"
)

// Message is a rendered notification ready for a transport.
type Message struct {
	ID      string `json:"id"`
	From    string `json:"from,omitempty"`
	To      string `json:"to"`
	Name    string `json:"name"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// NotificationOutcome is the result of one dispatch to one supplier.
type NotificationOutcome struct {
	NotificationID string    `json:"notificationId"`
	Supplier       Supplier  `json:"supplier"`
	Delivered      bool      `json:"delivered"`
	Error          string    `json:"error,omitempty"`
	Mode           string    `json:"mode"`
	SentAt         time.Time `json:"sentAt"`
}
