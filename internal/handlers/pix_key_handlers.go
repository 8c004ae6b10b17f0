package handlers

import (
	"net/http"

	"cobrafacil/internal/common"
	"cobrafacil/internal/models"
	"cobrafacil/internal/repositories"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// PixKeyHandlers handles PIX key HTTP requests
type PixKeyHandlers struct {
	pixKeyRepo repositories.PixKeyRepository
}

// NewPixKeyHandlers creates a new PIX key handlers instance
func NewPixKeyHandlers(pixKeyRepo repositories.PixKeyRepository) *PixKeyHandlers {
	return &PixKeyHandlers{pixKeyRepo: pixKeyRepo}
}

// ListPixKeys handles GET /pix-keys
func (h *PixKeyHandlers) ListPixKeys(c echo.Context) error {
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

	keys, err := h.pixKeyRepo.List(ctx, userID, limit, offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to list PIX keys")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"pix_keys": keys,
		"limit":    limit,
		"offset":   offset,
	})
}

// CreatePixKeyRequest represents the PIX key creation payload
type CreatePixKeyRequest struct {
	KeyType   string `json:"key_type" validate:"required"`
	KeyValue  string `json:"key_value" validate:"required"`
	IsDefault bool   `json:"is_default"`
}

// CreatePixKey handles POST /pix-keys
func (h *PixKeyHandlers) CreatePixKey(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not found")
	}

	var req CreatePixKeyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := common.ValidatePixKeyType(req.KeyType); err != nil {
		return common.SendValidationError(c, "key_type", err.Error())
	}
	if err := common.ValidateRequiredString(req.KeyValue, "key_value"); err != nil {
		return common.SendValidationError(c, "key_value", err.Error())
	}

	pixKey := &models.PixKey{
		ID:        uuid.New(),
		UserID:    userID,
		KeyType:   req.KeyType,
		KeyValue:  req.KeyValue,
		IsDefault: req.IsDefault,
	}
	if err := h.pixKeyRepo.Create(ctx, pixKey); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create PIX key")
	}

	// first key or explicit default claims the default slot
	if req.IsDefault {
		if err := h.pixKeyRepo.SetDefault(ctx, userID, pixKey.ID); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to set default PIX key")
		}
	}

	return c.JSON(http.StatusCreated, pixKey)
}

// GetPixKey handles GET /pix-keys/:id
func (h *PixKeyHandlers) GetPixKey(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not found")
	}

	pixKey, err := h.pixKeyRepo.GetByID(ctx, userID, id)
	if err != nil {
		return common.SendNotFoundError(c, "PIX key")
	}

	return c.JSON(http.StatusOK, pixKey)
}

// SetDefaultPixKey handles POST /pix-keys/:id/default
func (h *PixKeyHandlers) SetDefaultPixKey(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not found")
	}

	if _, err := h.pixKeyRepo.GetByID(ctx, userID, id); err != nil {
		return common.SendNotFoundError(c, "PIX key")
	}

	if err := h.pixKeyRepo.SetDefault(ctx, userID, id); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to set default PIX key")
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "Default PIX key updated",
	})
}

// DeletePixKey handles DELETE /pix-keys/:id
func (h *PixKeyHandlers) DeletePixKey(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not found")
	}

	if err := h.pixKeyRepo.Delete(ctx, userID, id); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to delete PIX key")
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "PIX key deleted successfully",
	})
}
