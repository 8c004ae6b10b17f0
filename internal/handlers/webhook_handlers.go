package handlers

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"

	"cobrafacil/internal/common"
	"cobrafacil/internal/services"

	"github.com/labstack/echo/v4"
)

// WebhookHandlers handles HTTP requests for payment provider webhooks
type WebhookHandlers struct {
	chargeService services.ChargeService
	webhookSecret string
}

// NewWebhookHandlers creates a new webhook handlers instance
func NewWebhookHandlers(chargeService services.ChargeService, webhookSecret string) *WebhookHandlers {
	return &WebhookHandlers{
		chargeService: chargeService,
		webhookSecret: webhookSecret,
	}
}

// PaymentWebhookEvent is the payload sent by the PIX payment provider
type PaymentWebhookEvent struct {
	Event string `json:"event"`
	Data  struct {
		ChargeID string `json:"charge_id"`
		UserID   string `json:"user_id"`
	} `json:"data"`
}

// verifyWebhookSignature verifies the webhook signature
func (h *WebhookHandlers) verifyWebhookSignature(signature string, body []byte) bool {
	hash := hmac.New(sha256.New, []byte(h.webhookSecret))
	hash.Write(body)
	expectedSignature := hex.EncodeToString(hash.Sum(nil))

	// Use constant time comparison to prevent timing attacks
	return hmac.Equal([]byte(signature), []byte(expectedSignature))
}

// PaymentWebhook handles POST /webhooks/payments
func (h *WebhookHandlers) PaymentWebhook(c echo.Context) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Failed to read request body")
	}

	signature := c.Request().Header.Get("X-Webhook-Signature")
	if signature == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Missing webhook signature")
	}
	if !h.verifyWebhookSignature(signature, body) {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid webhook signature")
	}

	var event PaymentWebhookEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid webhook payload")
	}

	if err := h.processPaymentEvent(c, &event); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, map[string]string{
		"status": "success",
		"event":  event.Event,
	})
}

// processPaymentEvent processes supported provider events
func (h *WebhookHandlers) processPaymentEvent(c echo.Context, event *PaymentWebhookEvent) error {
	switch event.Event {
	case "charge.paid":
		return h.handleChargePaid(c, event)
	default:
		// Unknown events are acknowledged without action
		return nil
	}
}

// handleChargePaid marks the referenced charge as paid
func (h *WebhookHandlers) handleChargePaid(c echo.Context, event *PaymentWebhookEvent) error {
	chargeID, err := common.ValidateUUID(event.Data.ChargeID, "charge_id")
	if err != nil {
		return err
	}
	userID, err := common.ValidateUUID(event.Data.UserID, "user_id")
	if err != nil {
		return err
	}

	_, err = h.chargeService.MarkPaid(c.Request().Context(), userID, chargeID)
	return err
}
