// internal/domain/entity/payload.go
package entity

import (
	"time"
)

// PayloadType defines the type of an outbound notification payload.
type PayloadType string

const (
	WatchNotification PayloadType = "watch_notification"
	ReminderDigest    PayloadType = "reminder_digest"
)

// Payload is one outbound text message handed to the notifier. Delivery
// is fire-and-forget from the core's point of view.
type Payload struct {
	Type      PayloadType `json:"type"`
	Phone     string      `json:"phone"`
	Text      string      `json:"text"`
	CreatedAt time.Time   `json:"createdAt"`
}

// NewPayload creates a payload stamped with the current time.
func NewPayload(payloadType PayloadType, phone, text string) *Payload {
	return &Payload{
		Type:      payloadType,
		Phone:     phone,
		Text:      text,
		CreatedAt: time.Now().UTC(),
	}
}
