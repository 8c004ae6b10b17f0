package services

import (
	"context"
	"fmt"
	"time"

	"cobrafacil/internal/models"
	"cobrafacil/internal/repositories"

	"github.com/google/uuid"
)

// ChargeService creates and transitions charges, validating that the client
// and product belong to the charging user.
type ChargeService interface {
	Create(ctx context.Context, userID, clientID, productID uuid.UUID, amount float64, dueDate time.Time) (*models.Charge, error)
	GetByID(ctx context.Context, userID, id uuid.UUID) (*models.Charge, error)
	List(ctx context.Context, userID uuid.UUID, status string, limit, offset int) ([]*models.Charge, error)
	MarkPaid(ctx context.Context, userID, id uuid.UUID) (*models.Charge, error)
	Cancel(ctx context.Context, userID, id uuid.UUID) (*models.Charge, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

type chargeService struct {
	chargeRepo  repositories.ChargeRepository
	clientRepo  repositories.ClientRepository
	productRepo repositories.ProductRepository
}

func NewChargeService(
	chargeRepo repositories.ChargeRepository,
	clientRepo repositories.ClientRepository,
	productRepo repositories.ProductRepository,
) ChargeService {
	return &chargeService{
		chargeRepo:  chargeRepo,
		clientRepo:  clientRepo,
		productRepo: productRepo,
	}
}

// Create invoices a client for a product. A zero amount falls back to the
// product's configured price.
func (s *chargeService) Create(ctx context.Context, userID, clientID, productID uuid.UUID, amount float64, dueDate time.Time) (*models.Charge, error) {
	if _, err := s.clientRepo.GetByID(ctx, userID, clientID); err != nil {
		return nil, fmt.Errorf("client not found")
	}
	product, err := s.productRepo.GetByID(ctx, userID, productID)
	if err != nil {
		return nil, fmt.Errorf("product not found")
	}

	if amount <= 0 {
		amount = product.Amount
	}
	if amount <= 0 {
		return nil, fmt.Errorf("charge amount must be positive")
	}

	charge := &models.Charge{
		ID:        uuid.New(),
		UserID:    userID,
		ClientID:  clientID,
		ProductID: productID,
		Amount:    amount,
		DueDate:   dueDate,
		Status:    models.ChargeStatusPending,
	}
	if err := s.chargeRepo.Create(ctx, charge); err != nil {
		return nil, fmt.Errorf("failed to create charge: %w", err)
	}
	return charge, nil
}

func (s *chargeService) GetByID(ctx context.Context, userID, id uuid.UUID) (*models.Charge, error) {
	return s.chargeRepo.GetByID(ctx, userID, id)
}

func (s *chargeService) List(ctx context.Context, userID uuid.UUID, status string, limit, offset int) ([]*models.Charge, error) {
	if status != "" {
		return s.chargeRepo.ListByStatus(ctx, userID, status, limit, offset)
	}
	return s.chargeRepo.List(ctx, userID, limit, offset)
}

// MarkPaid confirms payment for a pending charge.
func (s *chargeService) MarkPaid(ctx context.Context, userID, id uuid.UUID) (*models.Charge, error) {
	charge, err := s.chargeRepo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, fmt.Errorf("charge not found")
	}
	if charge.Status != models.ChargeStatusPending {
		return nil, fmt.Errorf("charge is not pending: %s", charge.Status)
	}

	now := time.Now()
	if err := s.chargeRepo.UpdateStatus(ctx, userID, id, models.ChargeStatusPaid, &now); err != nil {
		return nil, fmt.Errorf("failed to mark charge paid: %w", err)
	}
	charge.Status = models.ChargeStatusPaid
	charge.PaidAt = &now
	return charge, nil
}

func (s *chargeService) Cancel(ctx context.Context, userID, id uuid.UUID) (*models.Charge, error) {
	charge, err := s.chargeRepo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, fmt.Errorf("charge not found")
	}
	if charge.Status != models.ChargeStatusPending {
		return nil, fmt.Errorf("charge is not pending: %s", charge.Status)
	}

	if err := s.chargeRepo.UpdateStatus(ctx, userID, id, models.ChargeStatusCanceled, nil); err != nil {
		return nil, fmt.Errorf("failed to cancel charge: %w", err)
	}
	charge.Status = models.ChargeStatusCanceled
	return charge, nil
}

func (s *chargeService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return s.chargeRepo.Delete(ctx, userID, id)
}
