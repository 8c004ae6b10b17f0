package handlers

import (
	"net/http"

	"cobrafacil/internal/common"
	"cobrafacil/internal/repositories"

	"github.com/labstack/echo/v4"
)

// MessageHandlers handles sent-message HTTP requests
type MessageHandlers struct {
	messageRepo repositories.MessageRepository
}

// NewMessageHandlers creates a new message handlers instance
func NewMessageHandlers(messageRepo repositories.MessageRepository) *MessageHandlers {
	return &MessageHandlers{messageRepo: messageRepo}
}

// ListMessagesRequest represents the message listing query parameters
type ListMessagesRequest struct {
	ChargeID string `query:"charge_id"`
	Limit    int    `query:"limit"`
	Offset   int    `query:"offset"`
}

// ListMessages handles GET /messages
func (h *MessageHandlers) ListMessages(c echo.Context) error {
	ctx := c.Request().Context()

	var req ListMessagesRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid query parameters")
	}
	limit, offset := common.ValidatePaginationParams(req.Limit, req.Offset)

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not found")
	}

	if req.ChargeID != "" {
		chargeID, err := common.ValidateUUID(req.ChargeID, "charge_id")
		if err != nil {
			return common.SendValidationError(c, "charge_id", err.Error())
		}
		messages, err := h.messageRepo.ListByCharge(ctx, userID, chargeID)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to list messages")
		}
		return c.JSON(http.StatusOK, map[string]interface{}{
			"messages": messages,
		})
	}

	messages, err := h.messageRepo.List(ctx, userID, limit, offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to list messages")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"messages": messages,
		"limit":    limit,
		"offset":   offset,
	})
}

// GetMessage handles GET /messages/:id
func (h *MessageHandlers) GetMessage(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not found")
	}

	message, err := h.messageRepo.GetByID(ctx, userID, id)
	if err != nil {
		return common.SendNotFoundError(c, "Message")
	}

	return c.JSON(http.StatusOK, message)
}
