package repositories

import (
	"context"

	"cobrafacil/internal/models"

	"github.com/google/uuid"
)

type TemplateRepository interface {
	Create(ctx context.Context, template *models.MessageTemplate) error
	GetByID(ctx context.Context, userID, id uuid.UUID) (*models.MessageTemplate, error)
	GetDefault(ctx context.Context, userID uuid.UUID) (*models.MessageTemplate, error)
	Update(ctx context.Context, template *models.MessageTemplate) error
	Delete(ctx context.Context, userID, id uuid.UUID) error
	List(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*models.MessageTemplate, error)
	SetDefault(ctx context.Context, userID, id uuid.UUID) error
}

type templateRepo struct {
	db Database
}

func NewTemplateRepo(db Database) TemplateRepository {
	return &templateRepo{db: db}
}

func (r *templateRepo) Create(ctx context.Context, template *models.MessageTemplate) error {
	query := `
		INSERT INTO message_templates (id, user_id, name, content, is_default, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, template.ID, template.UserID, template.Name, template.Content, template.IsDefault)
	return err
}

func (r *templateRepo) GetByID(ctx context.Context, userID, id uuid.UUID) (*models.MessageTemplate, error) {
	template := &models.MessageTemplate{}
	query := `
		SELECT id, user_id, name, content, is_default, created_at, updated_at
		FROM message_templates
		WHERE user_id = $1 AND id = $2
	`
	err := r.db.QueryRow(ctx, query, userID, id).Scan(&template.ID, &template.UserID, &template.Name, &template.Content, &template.IsDefault, &template.CreatedAt, &template.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return template, nil
}

func (r *templateRepo) GetDefault(ctx context.Context, userID uuid.UUID) (*models.MessageTemplate, error) {
	template := &models.MessageTemplate{}
	query := `
		SELECT id, user_id, name, content, is_default, created_at, updated_at
		FROM message_templates
		WHERE user_id = $1 AND is_default = TRUE
	`
	err := r.db.QueryRow(ctx, query, userID).Scan(&template.ID, &template.UserID, &template.Name, &template.Content, &template.IsDefault, &template.CreatedAt, &template.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return template, nil
}

func (r *templateRepo) Update(ctx context.Context, template *models.MessageTemplate) error {
	query := `
		UPDATE message_templates
		SET name = $1, content = $2, updated_at = NOW()
		WHERE user_id = $3 AND id = $4
	`
	_, err := r.db.Exec(ctx, query, template.Name, template.Content, template.UserID, template.ID)
	return err
}

func (r *templateRepo) Delete(ctx context.Context, userID, id uuid.UUID) error {
	query := `DELETE FROM message_templates WHERE user_id = $1 AND id = $2`
	_, err := r.db.Exec(ctx, query, userID, id)
	return err
}

func (r *templateRepo) List(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*models.MessageTemplate, error) {
	query := `
		SELECT id, user_id, name, content, is_default, created_at, updated_at
		FROM message_templates
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var templates []*models.MessageTemplate
	for rows.Next() {
		template := &models.MessageTemplate{}
		if err := rows.Scan(&template.ID, &template.UserID, &template.Name, &template.Content, &template.IsDefault, &template.CreatedAt, &template.UpdatedAt); err != nil {
			return nil, err
		}
		templates = append(templates, template)
	}
	return templates, nil
}

// SetDefault marks one template as the default and clears the flag on the rest.
func (r *templateRepo) SetDefault(ctx context.Context, userID, id uuid.UUID) error {
	clear := `UPDATE message_templates SET is_default = FALSE, updated_at = NOW() WHERE user_id = $1 AND is_default = TRUE`
	if _, err := r.db.Exec(ctx, clear, userID); err != nil {
		return err
	}
	set := `UPDATE message_templates SET is_default = TRUE, updated_at = NOW() WHERE user_id = $1 AND id = $2`
	_, err := r.db.Exec(ctx, set, userID, id)
	return err
}
