package models

import (
	"time"

	"github.com/google/uuid"
)

// MessageTemplate is a user-defined reminder text. Content may embed the
// placeholders {{client}}, {{product}}, {{amount}} and {{due_date}}.
type MessageTemplate struct {
	ID        uuid.UUID `json:"id" db:"id"`
	UserID    uuid.UUID `json:"user_id" db:"user_id"`
	Name      string    `json:"name" db:"name"`
	Content   string    `json:"content" db:"content"`
	IsDefault bool      `json:"is_default" db:"is_default"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
