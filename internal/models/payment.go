package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	PaymentStatusSubmitted = "submitted"
	PaymentStatusApproved  = "approved"
	PaymentStatusRejected  = "rejected"
)

// Payment is a proof-of-payment submission for a subscription, reviewed
// manually by an admin.
type Payment struct {
	ID             uuid.UUID  `json:"id" db:"id"`
	UserID         uuid.UUID  `json:"user_id" db:"user_id"`
	SubscriptionID uuid.UUID  `json:"subscription_id" db:"subscription_id"`
	Amount         float64    `json:"amount" db:"amount"`
	ProofObject    *string    `json:"proof_object" db:"proof_object"`
	Status         string     `json:"status" db:"status"`
	ReviewedBy     *uuid.UUID `json:"reviewed_by" db:"reviewed_by"`
	ReviewedAt     *time.Time `json:"reviewed_at" db:"reviewed_at"`
	CreatedAt      time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at" db:"updated_at"`
}
