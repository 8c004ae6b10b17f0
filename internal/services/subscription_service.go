package services

import (
	"context"
	"fmt"
	"time"

	"cobrafacil/internal/caching"
	"cobrafacil/internal/models"
	"cobrafacil/internal/repositories"

	"github.com/google/uuid"
)

// SubscriptionService handles the plan selection and manual payment approval flow.
type SubscriptionService interface {
	SelectPlan(ctx context.Context, userID uuid.UUID, planID string) (*models.Subscription, error)
	GetForUser(ctx context.Context, userID uuid.UUID) (*models.Subscription, error)
	GetStatus(ctx context.Context, userID uuid.UUID) (string, error)
	SubmitProof(ctx context.Context, userID uuid.UUID, proofObject string) (*models.Payment, error)
	ApprovePayment(ctx context.Context, paymentID, reviewedBy uuid.UUID) error
	RejectPayment(ctx context.Context, paymentID, reviewedBy uuid.UUID) error
	GetPayment(ctx context.Context, paymentID uuid.UUID) (*models.Payment, error)
	ListPendingPayments(ctx context.Context, limit, offset int) ([]*models.Payment, error)
	GetAvailablePlans() map[string]PlanConfig
}

// PlanConfig represents a subscription plan configuration
type PlanConfig struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Amount      float64  `json:"amount"`
	Currency    string   `json:"currency"`
	Interval    string   `json:"interval"`
	Features    []string `json:"features"`
}

// Predefined plans
var availablePlans = map[string]PlanConfig{
	"starter": {
		ID:          "starter",
		Name:        "Plano Starter",
		Description: "Para quem está começando a cobrar",
		Amount:      29.90,
		Currency:    "BRL",
		Interval:    "monthly",
		Features: []string{
			"Até 30 clientes",
			"Cobranças ilimitadas",
			"Lembretes via WhatsApp",
		},
	},
	"pro": {
		ID:          "pro",
		Name:        "Plano Pro",
		Description: "Para negócios em crescimento",
		Amount:      59.90,
		Currency:    "BRL",
		Interval:    "monthly",
		Features: []string{
			"Clientes ilimitados",
			"Cobranças ilimitadas",
			"Lembretes via WhatsApp",
			"Modelos de mensagem personalizados",
			"Suporte prioritário",
		},
	},
}

// subscriptionStatusTTL bounds how stale the route guard's view can get.
const subscriptionStatusTTL = 60 * time.Second

type subscriptionService struct {
	subscriptionRepo repositories.SubscriptionRepository
	paymentRepo      repositories.PaymentRepository
	cacheSvc         caching.CacheService
}

func NewSubscriptionService(
	subscriptionRepo repositories.SubscriptionRepository,
	paymentRepo repositories.PaymentRepository,
	cacheSvc caching.CacheService,
) SubscriptionService {
	return &subscriptionService{
		subscriptionRepo: subscriptionRepo,
		paymentRepo:      paymentRepo,
		cacheSvc:         cacheSvc,
	}
}

// SelectPlan creates a PENDING subscription and its payment record awaiting
// proof upload and admin review.
func (s *subscriptionService) SelectPlan(ctx context.Context, userID uuid.UUID, planID string) (*models.Subscription, error) {
	plan, exists := availablePlans[planID]
	if !exists {
		return nil, fmt.Errorf("invalid plan: %s", planID)
	}

	if existing, err := s.subscriptionRepo.GetByUserID(ctx, userID); err == nil && existing != nil {
		if existing.Status == models.SubscriptionStatusActive {
			return nil, fmt.Errorf("subscription already active")
		}
		if existing.Status == models.SubscriptionStatusPending {
			return nil, fmt.Errorf("subscription already pending approval")
		}
	}

	subscription := &models.Subscription{
		ID:     uuid.New(),
		UserID: userID,
		PlanID: plan.ID,
		Status: models.SubscriptionStatusPending,
		Amount: plan.Amount,
	}
	if err := s.subscriptionRepo.Create(ctx, subscription); err != nil {
		return nil, fmt.Errorf("failed to create subscription: %w", err)
	}

	payment := &models.Payment{
		ID:             uuid.New(),
		UserID:         userID,
		SubscriptionID: subscription.ID,
		Amount:         plan.Amount,
		Status:         models.PaymentStatusSubmitted,
	}
	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return nil, fmt.Errorf("failed to create payment record: %w", err)
	}

	s.invalidateStatus(ctx, userID)
	return subscription, nil
}

func (s *subscriptionService) GetForUser(ctx context.Context, userID uuid.UUID) (*models.Subscription, error) {
	return s.subscriptionRepo.GetByUserID(ctx, userID)
}

// GetStatus returns the user's subscription status, serving from the cache
// when possible. Absence of a subscription is reported as an empty string.
func (s *subscriptionService) GetStatus(ctx context.Context, userID uuid.UUID) (string, error) {
	if status, hit, err := s.cacheSvc.GetSubscriptionStatus(ctx, userID); err == nil && hit {
		return status, nil
	}

	subscription, err := s.subscriptionRepo.GetByUserID(ctx, userID)
	if err != nil || subscription == nil {
		// No subscription row: cache the absence too.
		_ = s.cacheSvc.SetSubscriptionStatus(ctx, userID, "", subscriptionStatusTTL)
		return "", nil
	}

	_ = s.cacheSvc.SetSubscriptionStatus(ctx, userID, subscription.Status, subscriptionStatusTTL)
	return subscription.Status, nil
}

// SubmitProof attaches an uploaded proof object to the user's latest payment.
func (s *subscriptionService) SubmitProof(ctx context.Context, userID uuid.UUID, proofObject string) (*models.Payment, error) {
	payment, err := s.paymentRepo.GetLatestByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("no payment awaiting proof")
	}
	if payment.Status != models.PaymentStatusSubmitted {
		return nil, fmt.Errorf("payment already reviewed: %s", payment.Status)
	}

	if err := s.paymentRepo.AttachProof(ctx, payment.ID, proofObject); err != nil {
		return nil, fmt.Errorf("failed to attach proof: %w", err)
	}
	payment.ProofObject = &proofObject
	return payment, nil
}

// ApprovePayment marks the payment approved and activates the subscription.
func (s *subscriptionService) ApprovePayment(ctx context.Context, paymentID, reviewedBy uuid.UUID) error {
	payment, err := s.paymentRepo.GetByID(ctx, paymentID)
	if err != nil {
		return fmt.Errorf("payment not found")
	}
	if payment.Status != models.PaymentStatusSubmitted {
		return fmt.Errorf("payment already reviewed: %s", payment.Status)
	}

	if err := s.paymentRepo.Review(ctx, paymentID, reviewedBy, models.PaymentStatusApproved); err != nil {
		return fmt.Errorf("failed to update payment: %w", err)
	}

	now := time.Now()
	if err := s.subscriptionRepo.UpdateStatus(ctx, payment.SubscriptionID, models.SubscriptionStatusActive, &now); err != nil {
		return fmt.Errorf("failed to activate subscription: %w", err)
	}

	s.invalidateStatus(ctx, payment.UserID)
	return nil
}

// RejectPayment marks the payment rejected and the subscription with it.
func (s *subscriptionService) RejectPayment(ctx context.Context, paymentID, reviewedBy uuid.UUID) error {
	payment, err := s.paymentRepo.GetByID(ctx, paymentID)
	if err != nil {
		return fmt.Errorf("payment not found")
	}
	if payment.Status != models.PaymentStatusSubmitted {
		return fmt.Errorf("payment already reviewed: %s", payment.Status)
	}

	if err := s.paymentRepo.Review(ctx, paymentID, reviewedBy, models.PaymentStatusRejected); err != nil {
		return fmt.Errorf("failed to update payment: %w", err)
	}

	if err := s.subscriptionRepo.UpdateStatus(ctx, payment.SubscriptionID, models.SubscriptionStatusRejected, nil); err != nil {
		return fmt.Errorf("failed to update subscription: %w", err)
	}

	s.invalidateStatus(ctx, payment.UserID)
	return nil
}

func (s *subscriptionService) GetPayment(ctx context.Context, paymentID uuid.UUID) (*models.Payment, error) {
	return s.paymentRepo.GetByID(ctx, paymentID)
}

func (s *subscriptionService) ListPendingPayments(ctx context.Context, limit, offset int) ([]*models.Payment, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.paymentRepo.ListByStatus(ctx, models.PaymentStatusSubmitted, limit, offset)
}

// GetAvailablePlans returns all available subscription plans
func (s *subscriptionService) GetAvailablePlans() map[string]PlanConfig {
	result := make(map[string]PlanConfig)
	for k, v := range availablePlans {
		result[k] = v
	}
	return result
}

func (s *subscriptionService) invalidateStatus(ctx context.Context, userID uuid.UUID) {
	if err := s.cacheSvc.DeleteSubscriptionStatus(ctx, userID); err != nil {
		// Stale entries expire with the TTL anyway.
		return
	}
}
