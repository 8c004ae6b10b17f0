package handlers

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"cobrafacil/internal/common"
	"cobrafacil/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const proofURLExpiry = 15 * time.Minute

// SubscriptionHandlers handles subscription and payment HTTP requests
type SubscriptionHandlers struct {
	subscriptionService services.SubscriptionService
	storageService      services.StorageService
	proofBucket         string
}

// NewSubscriptionHandlers creates a new subscription handlers instance
func NewSubscriptionHandlers(
	subscriptionService services.SubscriptionService,
	storageService services.StorageService,
	proofBucket string,
) *SubscriptionHandlers {
	return &SubscriptionHandlers{
		subscriptionService: subscriptionService,
		storageService:      storageService,
		proofBucket:         proofBucket,
	}
}

// ListPlans handles GET /plans (public)
func (h *SubscriptionHandlers) ListPlans(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"plans": h.subscriptionService.GetAvailablePlans(),
	})
}

// GetSubscription handles GET /subscription
func (h *SubscriptionHandlers) GetSubscription(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not found")
	}

	subscription, err := h.subscriptionService.GetForUser(ctx, userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch subscription")
	}
	if subscription == nil {
		return c.JSON(http.StatusOK, map[string]interface{}{
			"subscription": nil,
			"status":       "NONE",
		})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"subscription": subscription,
		"status":       subscription.Status,
	})
}

// SelectPlanRequest represents the plan selection payload
type SelectPlanRequest struct {
	PlanID string `json:"plan_id" validate:"required"`
}

// SelectPlan handles POST /subscription/select-plan
func (h *SubscriptionHandlers) SelectPlan(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not found")
	}

	var req SelectPlanRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := common.ValidateRequiredString(req.PlanID, "plan_id"); err != nil {
		return common.SendValidationError(c, "plan_id", err.Error())
	}

	subscription, err := h.subscriptionService.SelectPlan(ctx, userID, req.PlanID)
	if err != nil {
		if strings.Contains(err.Error(), "invalid plan") {
			return common.SendValidationError(c, "plan_id", err.Error())
		}
		if strings.Contains(err.Error(), "already") {
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to select plan")
	}

	return c.JSON(http.StatusCreated, subscription)
}

// UploadProof handles POST /subscription/proof (multipart)
func (h *SubscriptionHandlers) UploadProof(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not found")
	}

	file, err := c.FormFile("proof")
	if err != nil {
		return common.SendValidationError(c, "proof", "proof file is required")
	}
	src, err := file.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to read uploaded file")
	}
	defer src.Close()

	if err := h.storageService.EnsureBucketExists(ctx, h.proofBucket); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to store payment proof")
	}

	objectName := fmt.Sprintf("proofs/%s/%s%s", userID, uuid.New(), filepath.Ext(file.Filename))
	contentType := file.Header.Get("Content-Type")
	if err := h.storageService.UploadProof(ctx, h.proofBucket, objectName, contentType, src, file.Size); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to store payment proof")
	}

	payment, err := h.subscriptionService.SubmitProof(ctx, userID, objectName)
	if err != nil {
		if strings.Contains(err.Error(), "no payment") || strings.Contains(err.Error(), "not found") {
			return common.SendNotFoundError(c, "Pending payment")
		}
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	}

	return c.JSON(http.StatusOK, payment)
}

// ListPendingPayments handles GET /admin/payments (admin only)
func (h *SubscriptionHandlers) ListPendingPayments(c echo.Context) error {
	ctx := c.Request().Context()

	var req struct {
		Limit  int `query:"limit"`
		Offset int `query:"offset"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid query parameters")
	}
	limit, offset := common.ValidatePaginationParams(req.Limit, req.Offset)

	payments, err := h.subscriptionService.ListPendingPayments(ctx, limit, offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to list payments")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"payments": payments,
		"limit":    limit,
		"offset":   offset,
	})
}

// GetProofURL handles GET /admin/payments/:id/proof (admin only)
func (h *SubscriptionHandlers) GetProofURL(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	payment, err := h.subscriptionService.GetPayment(c.Request().Context(), id)
	if err != nil {
		return common.SendNotFoundError(c, "Payment")
	}
	if payment.ProofObject == nil {
		return common.SendNotFoundError(c, "Payment proof")
	}

	url, err := h.storageService.GetPresignedURL(h.proofBucket, *payment.ProofObject, proofURLExpiry)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to generate proof URL")
	}

	return c.JSON(http.StatusOK, map[string]string{
		"url": url,
	})
}

// ApprovePayment handles POST /admin/payments/:id/approve (admin only)
func (h *SubscriptionHandlers) ApprovePayment(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	reviewerID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not found")
	}

	if err := h.subscriptionService.ApprovePayment(ctx, id, reviewerID); err != nil {
		if strings.Contains(err.Error(), "not found") {
			return common.SendNotFoundError(c, "Payment")
		}
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "Payment approved",
	})
}

// RejectPayment handles POST /admin/payments/:id/reject (admin only)
func (h *SubscriptionHandlers) RejectPayment(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	reviewerID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not found")
	}

	if err := h.subscriptionService.RejectPayment(ctx, id, reviewerID); err != nil {
		if strings.Contains(err.Error(), "not found") {
			return common.SendNotFoundError(c, "Payment")
		}
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "Payment rejected",
	})
}
