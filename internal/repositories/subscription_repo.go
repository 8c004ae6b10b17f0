package repositories

import (
	"context"
	"time"

	"cobrafacil/internal/models"

	"github.com/google/uuid"
)

type SubscriptionRepository interface {
	Create(ctx context.Context, subscription *models.Subscription) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Subscription, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Subscription, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string, activatedAt *time.Time) error
	List(ctx context.Context, limit, offset int) ([]*models.Subscription, error)
}

type subscriptionRepo struct {
	db Database
}

func NewSubscriptionRepo(db Database) SubscriptionRepository {
	return &subscriptionRepo{db: db}
}

func (r *subscriptionRepo) Create(ctx context.Context, subscription *models.Subscription) error {
	query := `
		INSERT INTO subscriptions (id, user_id, plan_id, status, amount, activated_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, subscription.ID, subscription.UserID, subscription.PlanID, subscription.Status, subscription.Amount, subscription.ActivatedAt)
	return err
}

func (r *subscriptionRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Subscription, error) {
	subscription := &models.Subscription{}
	query := `
		SELECT id, user_id, plan_id, status, amount, activated_at, created_at, updated_at
		FROM subscriptions
		WHERE id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(&subscription.ID, &subscription.UserID, &subscription.PlanID, &subscription.Status, &subscription.Amount, &subscription.ActivatedAt, &subscription.CreatedAt, &subscription.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return subscription, nil
}

// GetByUserID returns the user's most recent subscription. pgx.ErrNoRows means
// the user never selected a plan.
func (r *subscriptionRepo) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Subscription, error) {
	subscription := &models.Subscription{}
	query := `
		SELECT id, user_id, plan_id, status, amount, activated_at, created_at, updated_at
		FROM subscriptions
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT 1
	`
	err := r.db.QueryRow(ctx, query, userID).Scan(&subscription.ID, &subscription.UserID, &subscription.PlanID, &subscription.Status, &subscription.Amount, &subscription.ActivatedAt, &subscription.CreatedAt, &subscription.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return subscription, nil
}

func (r *subscriptionRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status string, activatedAt *time.Time) error {
	query := `
		UPDATE subscriptions
		SET status = $1, activated_at = COALESCE($2, activated_at), updated_at = NOW()
		WHERE id = $3
	`
	_, err := r.db.Exec(ctx, query, status, activatedAt, id)
	return err
}

func (r *subscriptionRepo) List(ctx context.Context, limit, offset int) ([]*models.Subscription, error) {
	query := `
		SELECT id, user_id, plan_id, status, amount, activated_at, created_at, updated_at
		FROM subscriptions
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subscriptions []*models.Subscription
	for rows.Next() {
		subscription := &models.Subscription{}
		if err := rows.Scan(&subscription.ID, &subscription.UserID, &subscription.PlanID, &subscription.Status, &subscription.Amount, &subscription.ActivatedAt, &subscription.CreatedAt, &subscription.UpdatedAt); err != nil {
			return nil, err
		}
		subscriptions = append(subscriptions, subscription)
	}
	return subscriptions, nil
}
