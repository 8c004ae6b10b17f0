package models

import (
	"time"

	"github.com/google/uuid"
)

const MessageStatusSent = "sent"

// Message is a reminder that was recorded for a charge. Rows are written once
// and never updated; there is no retry state.
type Message struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	UserID      uuid.UUID  `json:"user_id" db:"user_id"`
	ChargeID    uuid.UUID  `json:"charge_id" db:"charge_id"`
	PhoneNumber string     `json:"phone_number" db:"phone_number"`
	Content     string     `json:"content" db:"content"`
	Status      string     `json:"status" db:"status"`
	SentAt      time.Time  `json:"sent_at" db:"sent_at"`
	DeliveredAt *time.Time `json:"delivered_at" db:"delivered_at"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
}
