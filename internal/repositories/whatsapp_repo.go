package repositories

import (
	"context"

	"cobrafacil/internal/models"

	"github.com/google/uuid"
)

type WhatsAppRepository interface {
	Upsert(ctx context.Context, conn *models.WhatsAppConnection) error
	GetByUserID(ctx context.Context, userID uuid.UUID) (*models.WhatsAppConnection, error)
	SetConnected(ctx context.Context, userID uuid.UUID, connected bool) error
}

type whatsappRepo struct {
	db Database
}

func NewWhatsAppRepo(db Database) WhatsAppRepository {
	return &whatsappRepo{db: db}
}

// Upsert creates or replaces the user's connection row. Pairing always resets
// is_connected to false until the handshake completes.
func (r *whatsappRepo) Upsert(ctx context.Context, conn *models.WhatsAppConnection) error {
	query := `
		INSERT INTO whatsapp_connections (id, user_id, phone_number, is_connected, last_connected_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		ON CONFLICT (user_id)
		DO UPDATE SET phone_number = EXCLUDED.phone_number, is_connected = EXCLUDED.is_connected, updated_at = NOW()
	`
	_, err := r.db.Exec(ctx, query, conn.ID, conn.UserID, conn.PhoneNumber, conn.IsConnected, conn.LastConnectedAt)
	return err
}

func (r *whatsappRepo) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.WhatsAppConnection, error) {
	conn := &models.WhatsAppConnection{}
	query := `
		SELECT id, user_id, phone_number, is_connected, last_connected_at, created_at, updated_at
		FROM whatsapp_connections
		WHERE user_id = $1
	`
	err := r.db.QueryRow(ctx, query, userID).Scan(&conn.ID, &conn.UserID, &conn.PhoneNumber, &conn.IsConnected, &conn.LastConnectedAt, &conn.CreatedAt, &conn.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return conn, nil
}

func (r *whatsappRepo) SetConnected(ctx context.Context, userID uuid.UUID, connected bool) error {
	var query string
	if connected {
		query = `
			UPDATE whatsapp_connections
			SET is_connected = TRUE, last_connected_at = NOW(), updated_at = NOW()
			WHERE user_id = $1
		`
	} else {
		query = `
			UPDATE whatsapp_connections
			SET is_connected = FALSE, updated_at = NOW()
			WHERE user_id = $1
		`
	}
	_, err := r.db.Exec(ctx, query, userID)
	return err
}
