package handlers

import (
	"net/http"

	"cobrafacil/internal/common"
	"cobrafacil/internal/repositories"

	"github.com/labstack/echo/v4"
)

// WhatsAppHandlers handles WhatsApp connection HTTP requests. The pairing
// itself happens over the websocket channel; these endpoints expose the
// persisted connection state.
type WhatsAppHandlers struct {
	whatsappRepo repositories.WhatsAppRepository
}

// NewWhatsAppHandlers creates a new WhatsApp handlers instance
func NewWhatsAppHandlers(whatsappRepo repositories.WhatsAppRepository) *WhatsAppHandlers {
	return &WhatsAppHandlers{whatsappRepo: whatsappRepo}
}

// GetStatus handles GET /whatsapp/status
func (h *WhatsAppHandlers) GetStatus(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not found")
	}

	conn, err := h.whatsappRepo.GetByUserID(ctx, userID)
	if err != nil {
		return c.JSON(http.StatusOK, map[string]interface{}{
			"connected": false,
		})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"connected":         conn.IsConnected,
		"phone_number":      conn.PhoneNumber,
		"last_connected_at": conn.LastConnectedAt,
	})
}

// Disconnect handles POST /whatsapp/disconnect
func (h *WhatsAppHandlers) Disconnect(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not found")
	}

	if _, err := h.whatsappRepo.GetByUserID(ctx, userID); err != nil {
		return common.SendNotFoundError(c, "WhatsApp connection")
	}

	if err := h.whatsappRepo.SetConnected(ctx, userID, false); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to disconnect")
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "WhatsApp disconnected",
	})
}
