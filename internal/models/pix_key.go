package models

import (
	"time"

	"github.com/google/uuid"
)

// Valid PIX key types per the Central Bank registry.
const (
	PixKeyTypeCPF    = "cpf"
	PixKeyTypeCNPJ   = "cnpj"
	PixKeyTypeEmail  = "email"
	PixKeyTypePhone  = "phone"
	PixKeyTypeRandom = "random"
)

type PixKey struct {
	ID        uuid.UUID `json:"id" db:"id"`
	UserID    uuid.UUID `json:"user_id" db:"user_id"`
	KeyType   string    `json:"key_type" db:"key_type"`
	KeyValue  string    `json:"key_value" db:"key_value"`
	IsDefault bool      `json:"is_default" db:"is_default"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
