package repositories

import (
	"context"
	"time"

	"cobrafacil/internal/models"

	"github.com/google/uuid"
)

type ChargeRepository interface {
	Create(ctx context.Context, charge *models.Charge) error
	GetByID(ctx context.Context, userID, id uuid.UUID) (*models.Charge, error)
	Update(ctx context.Context, charge *models.Charge) error
	Delete(ctx context.Context, userID, id uuid.UUID) error
	List(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*models.Charge, error)
	ListByStatus(ctx context.Context, userID uuid.UUID, status string, limit, offset int) ([]*models.Charge, error)
	UpdateStatus(ctx context.Context, userID, id uuid.UUID, status string, paidAt *time.Time) error
	ListUpcoming(ctx context.Context, start, end time.Time) ([]*models.UpcomingCharge, error)
}

type chargeRepo struct {
	db Database
}

func NewChargeRepo(db Database) ChargeRepository {
	return &chargeRepo{db: db}
}

func (r *chargeRepo) Create(ctx context.Context, charge *models.Charge) error {
	query := `
		INSERT INTO charges (id, user_id, client_id, product_id, amount, due_date, status, paid_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, charge.ID, charge.UserID, charge.ClientID, charge.ProductID, charge.Amount, charge.DueDate, charge.Status, charge.PaidAt)
	return err
}

func (r *chargeRepo) GetByID(ctx context.Context, userID, id uuid.UUID) (*models.Charge, error) {
	charge := &models.Charge{}
	query := `
		SELECT id, user_id, client_id, product_id, amount, due_date, status, paid_at, created_at, updated_at
		FROM charges
		WHERE user_id = $1 AND id = $2
	`
	err := r.db.QueryRow(ctx, query, userID, id).Scan(&charge.ID, &charge.UserID, &charge.ClientID, &charge.ProductID, &charge.Amount, &charge.DueDate, &charge.Status, &charge.PaidAt, &charge.CreatedAt, &charge.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return charge, nil
}

func (r *chargeRepo) Update(ctx context.Context, charge *models.Charge) error {
	query := `
		UPDATE charges
		SET client_id = $1, product_id = $2, amount = $3, due_date = $4, status = $5, paid_at = $6, updated_at = NOW()
		WHERE user_id = $7 AND id = $8
	`
	_, err := r.db.Exec(ctx, query, charge.ClientID, charge.ProductID, charge.Amount, charge.DueDate, charge.Status, charge.PaidAt, charge.UserID, charge.ID)
	return err
}

func (r *chargeRepo) Delete(ctx context.Context, userID, id uuid.UUID) error {
	query := `DELETE FROM charges WHERE user_id = $1 AND id = $2`
	_, err := r.db.Exec(ctx, query, userID, id)
	return err
}

func (r *chargeRepo) List(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*models.Charge, error) {
	query := `
		SELECT id, user_id, client_id, product_id, amount, due_date, status, paid_at, created_at, updated_at
		FROM charges
		WHERE user_id = $1
		ORDER BY due_date DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var charges []*models.Charge
	for rows.Next() {
		charge := &models.Charge{}
		if err := rows.Scan(&charge.ID, &charge.UserID, &charge.ClientID, &charge.ProductID, &charge.Amount, &charge.DueDate, &charge.Status, &charge.PaidAt, &charge.CreatedAt, &charge.UpdatedAt); err != nil {
			return nil, err
		}
		charges = append(charges, charge)
	}
	return charges, nil
}

func (r *chargeRepo) ListByStatus(ctx context.Context, userID uuid.UUID, status string, limit, offset int) ([]*models.Charge, error) {
	query := `
		SELECT id, user_id, client_id, product_id, amount, due_date, status, paid_at, created_at, updated_at
		FROM charges
		WHERE user_id = $1 AND status = $2
		ORDER BY due_date DESC
		LIMIT $3 OFFSET $4
	`
	rows, err := r.db.Query(ctx, query, userID, status, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var charges []*models.Charge
	for rows.Next() {
		charge := &models.Charge{}
		if err := rows.Scan(&charge.ID, &charge.UserID, &charge.ClientID, &charge.ProductID, &charge.Amount, &charge.DueDate, &charge.Status, &charge.PaidAt, &charge.CreatedAt, &charge.UpdatedAt); err != nil {
			return nil, err
		}
		charges = append(charges, charge)
	}
	return charges, nil
}

func (r *chargeRepo) UpdateStatus(ctx context.Context, userID, id uuid.UUID, status string, paidAt *time.Time) error {
	query := `
		UPDATE charges
		SET status = $1, paid_at = $2, updated_at = NOW()
		WHERE user_id = $3 AND id = $4
	`
	_, err := r.db.Exec(ctx, query, status, paidAt, userID, id)
	return err
}

// ListUpcoming selects pending charges with a due date inside the inclusive
// [start, end] window across all users, joined with the client and product
// details the dispatcher needs.
func (r *chargeRepo) ListUpcoming(ctx context.Context, start, end time.Time) ([]*models.UpcomingCharge, error) {
	query := `
		SELECT c.id, c.user_id, cl.name, cl.phone, p.name, c.amount, c.due_date
		FROM charges c
		JOIN clients cl ON cl.id = c.client_id
		JOIN products p ON p.id = c.product_id
		WHERE c.status = 'pending' AND c.due_date BETWEEN $1 AND $2
		ORDER BY c.due_date ASC
	`
	rows, err := r.db.Query(ctx, query, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var upcoming []*models.UpcomingCharge
	for rows.Next() {
		uc := &models.UpcomingCharge{}
		if err := rows.Scan(&uc.ChargeID, &uc.UserID, &uc.ClientName, &uc.ClientPhone, &uc.ProductName, &uc.Amount, &uc.DueDate); err != nil {
			return nil, err
		}
		upcoming = append(upcoming, uc)
	}
	return upcoming, nil
}
