package repositories

import (
	"context"

	"cobrafacil/internal/models"

	"github.com/google/uuid"
)

type ProductRepository interface {
	Create(ctx context.Context, product *models.Product) error
	GetByID(ctx context.Context, userID, id uuid.UUID) (*models.Product, error)
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, userID, id uuid.UUID) error
	List(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*models.Product, error)
}

type productRepo struct {
	db Database
}

func NewProductRepo(db Database) ProductRepository {
	return &productRepo{db: db}
}

func (r *productRepo) Create(ctx context.Context, product *models.Product) error {
	query := `
		INSERT INTO products (id, user_id, name, description, amount, recurring, billing_day, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, product.ID, product.UserID, product.Name, product.Description, product.Amount, product.Recurring, product.BillingDay)
	return err
}

func (r *productRepo) GetByID(ctx context.Context, userID, id uuid.UUID) (*models.Product, error) {
	product := &models.Product{}
	query := `
		SELECT id, user_id, name, description, amount, recurring, billing_day, created_at, updated_at
		FROM products
		WHERE user_id = $1 AND id = $2
	`
	err := r.db.QueryRow(ctx, query, userID, id).Scan(&product.ID, &product.UserID, &product.Name, &product.Description, &product.Amount, &product.Recurring, &product.BillingDay, &product.CreatedAt, &product.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return product, nil
}

func (r *productRepo) Update(ctx context.Context, product *models.Product) error {
	query := `
		UPDATE products
		SET name = $1, description = $2, amount = $3, recurring = $4, billing_day = $5, updated_at = NOW()
		WHERE user_id = $6 AND id = $7
	`
	_, err := r.db.Exec(ctx, query, product.Name, product.Description, product.Amount, product.Recurring, product.BillingDay, product.UserID, product.ID)
	return err
}

func (r *productRepo) Delete(ctx context.Context, userID, id uuid.UUID) error {
	query := `DELETE FROM products WHERE user_id = $1 AND id = $2`
	_, err := r.db.Exec(ctx, query, userID, id)
	return err
}

func (r *productRepo) List(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*models.Product, error) {
	query := `
		SELECT id, user_id, name, description, amount, recurring, billing_day, created_at, updated_at
		FROM products
		WHERE user_id = $1
		ORDER BY name ASC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []*models.Product
	for rows.Next() {
		product := &models.Product{}
		if err := rows.Scan(&product.ID, &product.UserID, &product.Name, &product.Description, &product.Amount, &product.Recurring, &product.BillingDay, &product.CreatedAt, &product.UpdatedAt); err != nil {
			return nil, err
		}
		products = append(products, product)
	}
	return products, nil
}
