package handlers

import (
	"net/http"
	"time"

	"cobrafacil/internal/common"
	"cobrafacil/internal/models"
	"cobrafacil/internal/repositories"
	"cobrafacil/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// TemplateHandlers handles message template HTTP requests
type TemplateHandlers struct {
	templateRepo repositories.TemplateRepository
}

// NewTemplateHandlers creates a new template handlers instance
func NewTemplateHandlers(templateRepo repositories.TemplateRepository) *TemplateHandlers {
	return &TemplateHandlers{templateRepo: templateRepo}
}

// ListTemplates handles GET /templates
func (h *TemplateHandlers) ListTemplates(c echo.Context) error {
	ctx := c.Request().Context()

	var req struct {
		Limit  int `query:"limit"`
		Offset int `query:"offset"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid query parameters")
	}
	limit, offset := common.ValidatePaginationParams(req.Limit, req.Offset)

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not found")
	}

	templates, err := h.templateRepo.List(ctx, userID, limit, offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to list templates")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"templates": templates,
		"limit":     limit,
		"offset":    offset,
	})
}

// CreateTemplateRequest represents the template creation payload
type CreateTemplateRequest struct {
	Name      string `json:"name" validate:"required"`
	Content   string `json:"content" validate:"required"`
	IsDefault bool   `json:"is_default"`
}

// CreateTemplate handles POST /templates
func (h *TemplateHandlers) CreateTemplate(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not found")
	}

	var req CreateTemplateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := common.ValidateRequiredString(req.Name, "name"); err != nil {
		return common.SendValidationError(c, "name", err.Error())
	}
	if err := common.ValidateRequiredString(req.Content, "content"); err != nil {
		return common.SendValidationError(c, "content", err.Error())
	}

	template := &models.MessageTemplate{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      req.Name,
		Content:   req.Content,
		IsDefault: req.IsDefault,
	}
	if err := h.templateRepo.Create(ctx, template); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create template")
	}

	if req.IsDefault {
		if err := h.templateRepo.SetDefault(ctx, userID, template.ID); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to set default template")
		}
	}

	return c.JSON(http.StatusCreated, template)
}

// GetTemplate handles GET /templates/:id
func (h *TemplateHandlers) GetTemplate(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not found")
	}

	template, err := h.templateRepo.GetByID(ctx, userID, id)
	if err != nil {
		return common.SendNotFoundError(c, "Template")
	}

	return c.JSON(http.StatusOK, template)
}

// UpdateTemplateRequest represents the template update payload
type UpdateTemplateRequest struct {
	Name    *string `json:"name"`
	Content *string `json:"content"`
}

// UpdateTemplate handles PATCH /templates/:id
func (h *TemplateHandlers) UpdateTemplate(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not found")
	}

	template, err := h.templateRepo.GetByID(ctx, userID, id)
	if err != nil {
		return common.SendNotFoundError(c, "Template")
	}

	var req UpdateTemplateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if req.Name != nil {
		if err := common.ValidateRequiredString(*req.Name, "name"); err != nil {
			return common.SendValidationError(c, "name", err.Error())
		}
		template.Name = *req.Name
	}
	if req.Content != nil {
		if err := common.ValidateRequiredString(*req.Content, "content"); err != nil {
			return common.SendValidationError(c, "content", err.Error())
		}
		template.Content = *req.Content
	}

	if err := h.templateRepo.Update(ctx, template); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to update template")
	}

	return c.JSON(http.StatusOK, template)
}

// SetDefaultTemplate handles POST /templates/:id/default
func (h *TemplateHandlers) SetDefaultTemplate(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not found")
	}

	if _, err := h.templateRepo.GetByID(ctx, userID, id); err != nil {
		return common.SendNotFoundError(c, "Template")
	}

	if err := h.templateRepo.SetDefault(ctx, userID, id); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to set default template")
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "Default template updated",
	})
}

// DeleteTemplate handles DELETE /templates/:id
func (h *TemplateHandlers) DeleteTemplate(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not found")
	}

	if err := h.templateRepo.Delete(ctx, userID, id); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to delete template")
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "Template deleted successfully",
	})
}

// PreviewTemplateRequest carries sample values for a rendering preview
type PreviewTemplateRequest struct {
	Content    string  `json:"content" validate:"required"`
	ClientName string  `json:"client_name"`
	Product    string  `json:"product"`
	Amount     float64 `json:"amount"`
}

// PreviewTemplate handles POST /templates/preview
func (h *TemplateHandlers) PreviewTemplate(c echo.Context) error {
	var req PreviewTemplateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := common.ValidateRequiredString(req.Content, "content"); err != nil {
		return common.SendValidationError(c, "content", err.Error())
	}

	if req.ClientName == "" {
		req.ClientName = "Maria"
	}
	if req.Product == "" {
		req.Product = "Mensalidade"
	}
	if req.Amount == 0 {
		req.Amount = 99.90
	}

	rendered := services.RenderTemplate(req.Content, req.ClientName, req.Product, req.Amount, time.Now().AddDate(0, 0, 3))

	return c.JSON(http.StatusOK, map[string]string{
		"preview": rendered,
	})
}
