package models

import (
	"time"

	"github.com/google/uuid"
)

// WhatsAppConnection tracks the pairing state of a user's WhatsApp account.
// One row per user.
type WhatsAppConnection struct {
	ID              uuid.UUID  `json:"id" db:"id"`
	UserID          uuid.UUID  `json:"user_id" db:"user_id"`
	PhoneNumber     string     `json:"phone_number" db:"phone_number"`
	IsConnected     bool       `json:"is_connected" db:"is_connected"`
	LastConnectedAt *time.Time `json:"last_connected_at" db:"last_connected_at"`
	CreatedAt       time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at" db:"updated_at"`
}
