package handlers

import (
	"net/http"

	"cobrafacil/internal/common"
	"cobrafacil/internal/models"
	"cobrafacil/internal/repositories"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// ClientHandlers handles client-related HTTP requests
type ClientHandlers struct {
	clientRepo repositories.ClientRepository
}

// NewClientHandlers creates a new client handlers instance
func NewClientHandlers(clientRepo repositories.ClientRepository) *ClientHandlers {
	return &ClientHandlers{clientRepo: clientRepo}
}

// ListClientsRequest represents query parameters for listing clients
type ListClientsRequest struct {
	Limit  int `query:"limit"`
	Offset int `query:"offset"`
}

// ListClients handles GET /clients
func (h *ClientHandlers) ListClients(c echo.Context) error {
	ctx := c.Request().Context()

	var req ListClientsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid query parameters")
	}
	limit, offset := common.ValidatePaginationParams(req.Limit, req.Offset)

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not found")
	}

	clients, err := h.clientRepo.List(ctx, userID, limit, offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to list clients")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"clients": clients,
		"limit":   limit,
		"offset":  offset,
	})
}

// CreateClientRequest represents the client creation payload
type CreateClientRequest struct {
	Name     string  `json:"name" validate:"required"`
	Email    *string `json:"email"`
	Phone    string  `json:"phone" validate:"required"`
	Document *string `json:"document"`
	Notes    *string `json:"notes"`
}

// CreateClient handles POST /clients
func (h *ClientHandlers) CreateClient(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not found")
	}

	var req CreateClientRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := common.ValidateRequiredString(req.Name, "name"); err != nil {
		return common.SendValidationError(c, "name", err.Error())
	}
	if err := common.ValidatePhoneNumber(req.Phone, "phone"); err != nil {
		return common.SendValidationError(c, "phone", err.Error())
	}

	client := &models.Client{
		ID:       uuid.New(),
		UserID:   userID,
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Document: req.Document,
		Notes:    req.Notes,
	}
	if err := h.clientRepo.Create(ctx, client); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create client")
	}

	return c.JSON(http.StatusCreated, client)
}

// GetClient handles GET /clients/:id
func (h *ClientHandlers) GetClient(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not found")
	}

	client, err := h.clientRepo.GetByID(ctx, userID, id)
	if err != nil {
		return common.SendNotFoundError(c, "Client")
	}

	return c.JSON(http.StatusOK, client)
}

// UpdateClientRequest represents the client update payload
type UpdateClientRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Phone    *string `json:"phone"`
	Document *string `json:"document"`
	Notes    *string `json:"notes"`
}

// UpdateClient handles PATCH /clients/:id
func (h *ClientHandlers) UpdateClient(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not found")
	}

	client, err := h.clientRepo.GetByID(ctx, userID, id)
	if err != nil {
		return common.SendNotFoundError(c, "Client")
	}

	var req UpdateClientRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if req.Name != nil {
		client.Name = *req.Name
	}
	if req.Email != nil {
		client.Email = req.Email
	}
	if req.Phone != nil {
		if err := common.ValidatePhoneNumber(*req.Phone, "phone"); err != nil {
			return common.SendValidationError(c, "phone", err.Error())
		}
		client.Phone = *req.Phone
	}
	if req.Document != nil {
		client.Document = req.Document
	}
	if req.Notes != nil {
		client.Notes = req.Notes
	}

	if err := h.clientRepo.Update(ctx, client); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to update client")
	}

	return c.JSON(http.StatusOK, client)
}

// DeleteClient handles DELETE /clients/:id
func (h *ClientHandlers) DeleteClient(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not found")
	}

	if err := h.clientRepo.Delete(ctx, userID, id); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to delete client")
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "Client deleted successfully",
	})
}
