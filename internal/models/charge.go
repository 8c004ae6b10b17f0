package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	ChargeStatusPending  = "pending"
	ChargeStatusPaid     = "paid"
	ChargeStatusCanceled = "canceled"
)

type Charge struct {
	ID        uuid.UUID  `json:"id" db:"id"`
	UserID    uuid.UUID  `json:"user_id" db:"user_id"`
	ClientID  uuid.UUID  `json:"client_id" db:"client_id"`
	ProductID uuid.UUID  `json:"product_id" db:"product_id"`
	Amount    float64    `json:"amount" db:"amount"`
	DueDate   time.Time  `json:"due_date" db:"due_date"`
	Status    string     `json:"status" db:"status"`
	PaidAt    *time.Time `json:"paid_at" db:"paid_at"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" db:"updated_at"`
}

// UpcomingCharge is a pending charge joined with the client and product
// details the reminder dispatcher needs.
type UpcomingCharge struct {
	ChargeID    uuid.UUID `json:"charge_id"`
	UserID      uuid.UUID `json:"user_id"`
	ClientName  string    `json:"client_name"`
	ClientPhone string    `json:"client_phone"`
	ProductName string    `json:"product_name"`
	Amount      float64   `json:"amount"`
	DueDate     time.Time `json:"due_date"`
}
