package repositories

import (
	"context"

	"cobrafacil/internal/models"

	"github.com/google/uuid"
)

type PixKeyRepository interface {
	Create(ctx context.Context, key *models.PixKey) error
	GetByID(ctx context.Context, userID, id uuid.UUID) (*models.PixKey, error)
	GetDefault(ctx context.Context, userID uuid.UUID) (*models.PixKey, error)
	Update(ctx context.Context, key *models.PixKey) error
	Delete(ctx context.Context, userID, id uuid.UUID) error
	List(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*models.PixKey, error)
	SetDefault(ctx context.Context, userID, id uuid.UUID) error
}

type pixKeyRepo struct {
	db Database
}

func NewPixKeyRepo(db Database) PixKeyRepository {
	return &pixKeyRepo{db: db}
}

func (r *pixKeyRepo) Create(ctx context.Context, key *models.PixKey) error {
	query := `
		INSERT INTO pix_keys (id, user_id, key_type, key_value, is_default, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, key.ID, key.UserID, key.KeyType, key.KeyValue, key.IsDefault)
	return err
}

func (r *pixKeyRepo) GetByID(ctx context.Context, userID, id uuid.UUID) (*models.PixKey, error) {
	key := &models.PixKey{}
	query := `
		SELECT id, user_id, key_type, key_value, is_default, created_at, updated_at
		FROM pix_keys
		WHERE user_id = $1 AND id = $2
	`
	err := r.db.QueryRow(ctx, query, userID, id).Scan(&key.ID, &key.UserID, &key.KeyType, &key.KeyValue, &key.IsDefault, &key.CreatedAt, &key.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return key, nil
}

func (r *pixKeyRepo) GetDefault(ctx context.Context, userID uuid.UUID) (*models.PixKey, error) {
	key := &models.PixKey{}
	query := `
		SELECT id, user_id, key_type, key_value, is_default, created_at, updated_at
		FROM pix_keys
		WHERE user_id = $1 AND is_default = TRUE
	`
	err := r.db.QueryRow(ctx, query, userID).Scan(&key.ID, &key.UserID, &key.KeyType, &key.KeyValue, &key.IsDefault, &key.CreatedAt, &key.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return key, nil
}

func (r *pixKeyRepo) Update(ctx context.Context, key *models.PixKey) error {
	query := `
		UPDATE pix_keys
		SET key_type = $1, key_value = $2, updated_at = NOW()
		WHERE user_id = $3 AND id = $4
	`
	_, err := r.db.Exec(ctx, query, key.KeyType, key.KeyValue, key.UserID, key.ID)
	return err
}

func (r *pixKeyRepo) Delete(ctx context.Context, userID, id uuid.UUID) error {
	query := `DELETE FROM pix_keys WHERE user_id = $1 AND id = $2`
	_, err := r.db.Exec(ctx, query, userID, id)
	return err
}

func (r *pixKeyRepo) List(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*models.PixKey, error) {
	query := `
		SELECT id, user_id, key_type, key_value, is_default, created_at, updated_at
		FROM pix_keys
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var keys []*models.PixKey
	for rows.Next() {
		key := &models.PixKey{}
		if err := rows.Scan(&key.ID, &key.UserID, &key.KeyType, &key.KeyValue, &key.IsDefault, &key.CreatedAt, &key.UpdatedAt); err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}
	return keys, nil
}

// SetDefault marks one key as the default and clears the flag on the rest.
func (r *pixKeyRepo) SetDefault(ctx context.Context, userID, id uuid.UUID) error {
	clear := `UPDATE pix_keys SET is_default = FALSE, updated_at = NOW() WHERE user_id = $1 AND is_default = TRUE`
	if _, err := r.db.Exec(ctx, clear, userID); err != nil {
		return err
	}
	set := `UPDATE pix_keys SET is_default = TRUE, updated_at = NOW() WHERE user_id = $1 AND id = $2`
	_, err := r.db.Exec(ctx, set, userID, id)
	return err
}
