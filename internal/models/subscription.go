package models

import (
	"time"

	"github.com/google/uuid"
)

// Subscription statuses are opaque strings compared by equality; there is no
// server-side transition table. Absence of a row means "NONE".
const (
	SubscriptionStatusPending  = "PENDING"
	SubscriptionStatusActive   = "ACTIVE"
	SubscriptionStatusRejected = "REJECTED"
	SubscriptionStatusCanceled = "CANCELED"
)

type Subscription struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	UserID      uuid.UUID  `json:"user_id" db:"user_id"`
	PlanID      string     `json:"plan_id" db:"plan_id"`
	Status      string     `json:"status" db:"status"`
	Amount      float64    `json:"amount" db:"amount"`
	ActivatedAt *time.Time `json:"activated_at" db:"activated_at"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
}
