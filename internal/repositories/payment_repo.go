package repositories

import (
	"context"

	"cobrafacil/internal/models"

	"github.com/google/uuid"
)

type PaymentRepository interface {
	Create(ctx context.Context, payment *models.Payment) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Payment, error)
	GetLatestByUser(ctx context.Context, userID uuid.UUID) (*models.Payment, error)
	ListByStatus(ctx context.Context, status string, limit, offset int) ([]*models.Payment, error)
	AttachProof(ctx context.Context, id uuid.UUID, proofObject string) error
	Review(ctx context.Context, id, reviewedBy uuid.UUID, status string) error
}

type paymentRepo struct {
	db Database
}

func NewPaymentRepo(db Database) PaymentRepository {
	return &paymentRepo{db: db}
}

func (r *paymentRepo) Create(ctx context.Context, payment *models.Payment) error {
	query := `
		INSERT INTO payments (id, user_id, subscription_id, amount, proof_object, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, payment.ID, payment.UserID, payment.SubscriptionID, payment.Amount, payment.ProofObject, payment.Status)
	return err
}

func (r *paymentRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Payment, error) {
	payment := &models.Payment{}
	query := `
		SELECT id, user_id, subscription_id, amount, proof_object, status, reviewed_by, reviewed_at, created_at, updated_at
		FROM payments
		WHERE id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(&payment.ID, &payment.UserID, &payment.SubscriptionID, &payment.Amount, &payment.ProofObject, &payment.Status, &payment.ReviewedBy, &payment.ReviewedAt, &payment.CreatedAt, &payment.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return payment, nil
}

func (r *paymentRepo) GetLatestByUser(ctx context.Context, userID uuid.UUID) (*models.Payment, error) {
	payment := &models.Payment{}
	query := `
		SELECT id, user_id, subscription_id, amount, proof_object, status, reviewed_by, reviewed_at, created_at, updated_at
		FROM payments
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT 1
	`
	err := r.db.QueryRow(ctx, query, userID).Scan(&payment.ID, &payment.UserID, &payment.SubscriptionID, &payment.Amount, &payment.ProofObject, &payment.Status, &payment.ReviewedBy, &payment.ReviewedAt, &payment.CreatedAt, &payment.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return payment, nil
}

func (r *paymentRepo) ListByStatus(ctx context.Context, status string, limit, offset int) ([]*models.Payment, error) {
	query := `
		SELECT id, user_id, subscription_id, amount, proof_object, status, reviewed_by, reviewed_at, created_at, updated_at
		FROM payments
		WHERE status = $1
		ORDER BY created_at ASC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, status, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []*models.Payment
	for rows.Next() {
		payment := &models.Payment{}
		if err := rows.Scan(&payment.ID, &payment.UserID, &payment.SubscriptionID, &payment.Amount, &payment.ProofObject, &payment.Status, &payment.ReviewedBy, &payment.ReviewedAt, &payment.CreatedAt, &payment.UpdatedAt); err != nil {
			return nil, err
		}
		payments = append(payments, payment)
	}
	return payments, nil
}

func (r *paymentRepo) AttachProof(ctx context.Context, id uuid.UUID, proofObject string) error {
	query := `
		UPDATE payments
		SET proof_object = $1, updated_at = NOW()
		WHERE id = $2
	`
	_, err := r.db.Exec(ctx, query, proofObject, id)
	return err
}

func (r *paymentRepo) Review(ctx context.Context, id, reviewedBy uuid.UUID, status string) error {
	query := `
		UPDATE payments
		SET status = $1, reviewed_by = $2, reviewed_at = NOW(), updated_at = NOW()
		WHERE id = $3
	`
	_, err := r.db.Exec(ctx, query, status, reviewedBy, id)
	return err
}
