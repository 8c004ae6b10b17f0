package handlers

import (
	"net/http"
	"strings"
	"time"

	"cobrafacil/internal/common"
	"cobrafacil/internal/services"

	"github.com/labstack/echo/v4"
)

// ChargeHandlers handles charge HTTP requests
type ChargeHandlers struct {
	chargeService services.ChargeService
}

// NewChargeHandlers creates a new charge handlers instance
func NewChargeHandlers(chargeService services.ChargeService) *ChargeHandlers {
	return &ChargeHandlers{chargeService: chargeService}
}

// ListChargesRequest represents the charge listing query parameters
type ListChargesRequest struct {
	Status string `query:"status"`
	Limit  int    `query:"limit"`
	Offset int    `query:"offset"`
}

// ListCharges handles GET /charges
func (h *ChargeHandlers) ListCharges(c echo.Context) error {
	ctx := c.Request().Context()

	var req ListChargesRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid query parameters")
	}
	if req.Status != "" {
		if err := common.ValidateChargeStatus(req.Status); err != nil {
			return common.SendValidationError(c, "status", err.Error())
		}
	}
	limit, offset := common.ValidatePaginationParams(req.Limit, req.Offset)

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not found")
	}

	charges, err := h.chargeService.List(ctx, userID, req.Status, limit, offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to list charges")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"charges": charges,
		"limit":   limit,
		"offset":  offset,
	})
}

// CreateChargeRequest represents the charge creation payload
type CreateChargeRequest struct {
	ClientID  string  `json:"client_id" validate:"required"`
	ProductID string  `json:"product_id" validate:"required"`
	Amount    float64 `json:"amount"`
	DueDate   string  `json:"due_date" validate:"required"`
}

// CreateCharge handles POST /charges
func (h *ChargeHandlers) CreateCharge(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not found")
	}

	var req CreateChargeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	clientID, err := common.ValidateUUID(req.ClientID, "client_id")
	if err != nil {
		return common.SendValidationError(c, "client_id", err.Error())
	}
	productID, err := common.ValidateUUID(req.ProductID, "product_id")
	if err != nil {
		return common.SendValidationError(c, "product_id", err.Error())
	}
	dueDate, err := time.Parse("2006-01-02", req.DueDate)
	if err != nil {
		return common.SendValidationError(c, "due_date", "due_date must be in YYYY-MM-DD format")
	}

	charge, err := h.chargeService.Create(ctx, userID, clientID, productID, req.Amount, dueDate)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			return common.SendValidationError(c, "charge", err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create charge")
	}

	return c.JSON(http.StatusCreated, charge)
}

// GetCharge handles GET /charges/:id
func (h *ChargeHandlers) GetCharge(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not found")
	}

	charge, err := h.chargeService.GetByID(ctx, userID, id)
	if err != nil {
		return common.SendNotFoundError(c, "Charge")
	}

	return c.JSON(http.StatusOK, charge)
}

// PayCharge handles POST /charges/:id/pay
func (h *ChargeHandlers) PayCharge(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not found")
	}

	charge, err := h.chargeService.MarkPaid(ctx, userID, id)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			return common.SendNotFoundError(c, "Charge")
		}
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	}

	return c.JSON(http.StatusOK, charge)
}

// CancelCharge handles POST /charges/:id/cancel
func (h *ChargeHandlers) CancelCharge(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not found")
	}

	charge, err := h.chargeService.Cancel(ctx, userID, id)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			return common.SendNotFoundError(c, "Charge")
		}
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	}

	return c.JSON(http.StatusOK, charge)
}

// DeleteCharge handles DELETE /charges/:id
func (h *ChargeHandlers) DeleteCharge(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not found")
	}

	if err := h.chargeService.Delete(ctx, userID, id); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to delete charge")
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "Charge deleted successfully",
	})
}
