package repositories

import (
	"context"
	"time"

	"cobrafacil/internal/models"

	"github.com/google/uuid"
)

type MessageRepository interface {
	Create(ctx context.Context, message *models.Message) error
	GetByID(ctx context.Context, userID, id uuid.UUID) (*models.Message, error)
	List(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*models.Message, error)
	ListByCharge(ctx context.Context, userID, chargeID uuid.UUID) ([]*models.Message, error)
	ExistsForChargeSince(ctx context.Context, chargeID uuid.UUID, since time.Time) (bool, error)
}

type messageRepo struct {
	db Database
}

func NewMessageRepo(db Database) MessageRepository {
	return &messageRepo{db: db}
}

func (r *messageRepo) Create(ctx context.Context, message *models.Message) error {
	query := `
		INSERT INTO messages (id, user_id, charge_id, phone_number, content, status, sent_at, delivered_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
	`
	_, err := r.db.Exec(ctx, query, message.ID, message.UserID, message.ChargeID, message.PhoneNumber, message.Content, message.Status, message.SentAt, message.DeliveredAt)
	return err
}

func (r *messageRepo) GetByID(ctx context.Context, userID, id uuid.UUID) (*models.Message, error) {
	message := &models.Message{}
	query := `
		SELECT id, user_id, charge_id, phone_number, content, status, sent_at, delivered_at, created_at
		FROM messages
		WHERE user_id = $1 AND id = $2
	`
	err := r.db.QueryRow(ctx, query, userID, id).Scan(&message.ID, &message.UserID, &message.ChargeID, &message.PhoneNumber, &message.Content, &message.Status, &message.SentAt, &message.DeliveredAt, &message.CreatedAt)
	if err != nil {
		return nil, err
	}
	return message, nil
}

func (r *messageRepo) List(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*models.Message, error) {
	query := `
		SELECT id, user_id, charge_id, phone_number, content, status, sent_at, delivered_at, created_at
		FROM messages
		WHERE user_id = $1
		ORDER BY sent_at DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []*models.Message
	for rows.Next() {
		message := &models.Message{}
		if err := rows.Scan(&message.ID, &message.UserID, &message.ChargeID, &message.PhoneNumber, &message.Content, &message.Status, &message.SentAt, &message.DeliveredAt, &message.CreatedAt); err != nil {
			return nil, err
		}
		messages = append(messages, message)
	}
	return messages, nil
}

func (r *messageRepo) ListByCharge(ctx context.Context, userID, chargeID uuid.UUID) ([]*models.Message, error) {
	query := `
		SELECT id, user_id, charge_id, phone_number, content, status, sent_at, delivered_at, created_at
		FROM messages
		WHERE user_id = $1 AND charge_id = $2
		ORDER BY sent_at DESC
	`
	rows, err := r.db.Query(ctx, query, userID, chargeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []*models.Message
	for rows.Next() {
		message := &models.Message{}
		if err := rows.Scan(&message.ID, &message.UserID, &message.ChargeID, &message.PhoneNumber, &message.Content, &message.Status, &message.SentAt, &message.DeliveredAt, &message.CreatedAt); err != nil {
			return nil, err
		}
		messages = append(messages, message)
	}
	return messages, nil
}

// ExistsForChargeSince reports whether a reminder was already recorded for the
// charge at or after the given instant. This is the best-effort same-day
// dedupe check; there is no unique constraint backing it.
func (r *messageRepo) ExistsForChargeSince(ctx context.Context, chargeID uuid.UUID, since time.Time) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM messages WHERE charge_id = $1 AND sent_at >= $2)`
	var exists bool
	err := r.db.QueryRow(ctx, query, chargeID, since).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}
