package common

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type contextKey string

const (
	UserIDKey  contextKey = "user_id"
	IsAdminKey contextKey = "is_admin"
)

// ErrorResponse represents a standardized error response
type ErrorResponse struct {
	Error struct {
		Code     string            `json:"code"`
		Message  string            `json:"message"`
		Redirect string            `json:"redirect,omitempty"`
		Details  map[string]string `json:"details,omitempty"`
	} `json:"error"`
}

// CreateErrorResponse creates a standardized error response
func CreateErrorResponse(code string, message string, details map[string]string) *ErrorResponse {
	var resp ErrorResponse
	resp.Error.Code = code
	resp.Error.Message = message
	resp.Error.Details = details
	return &resp
}

// SendValidationError sends a validation error response
func SendValidationError(c echo.Context, field, message string) error {
	details := map[string]string{
		field: message,
	}
	return c.JSON(http.StatusBadRequest, CreateErrorResponse("VALIDATION_ERROR", "Validation failed", details))
}

// SendServerError sends a server error response
func SendServerError(c echo.Context, message string) error {
	return c.JSON(http.StatusInternalServerError, CreateErrorResponse("SERVER_ERROR", message, nil))
}

// SendNotFoundError sends a not found error response
func SendNotFoundError(c echo.Context, resource string) error {
	return c.JSON(http.StatusNotFound, CreateErrorResponse("NOT_FOUND", fmt.Sprintf("%s not found", resource), nil))
}

// ValidateUUID validates UUID format
func ValidateUUID(idStr string, fieldName string) (uuid.UUID, error) {
	idStr = strings.TrimSpace(idStr)
	if idStr == "" {
		return uuid.Nil, fmt.Errorf("%s is required", fieldName)
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s is not a valid UUID: %v", fieldName, err)
	}

	return id, nil
}

// ValidateRequiredString validates required string fields
func ValidateRequiredString(value, fieldName string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s is required", fieldName)
	}
	return nil
}

// ValidatePhoneNumber validates E.164-style phone numbers used as WhatsApp
// recipients, e.g. +5511999999999.
func ValidatePhoneNumber(phone, fieldName string) error {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return fmt.Errorf("%s is required", fieldName)
	}
	if !strings.HasPrefix(phone, "+") {
		return fmt.Errorf("%s must start with a country code, e.g. +55", fieldName)
	}
	digits := phone[1:]
	if len(digits) < 8 || len(digits) > 15 {
		return fmt.Errorf("%s must have 8 to 15 digits", fieldName)
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return fmt.Errorf("%s may contain only digits after the +", fieldName)
		}
	}
	return nil
}

// ValidateChargeStatus validates charge status values
func ValidateChargeStatus(status string) error {
	validStatuses := map[string]bool{
		"pending": true, "paid": true, "canceled": true,
	}
	if !validStatuses[status] {
		return fmt.Errorf("charge status must be one of: pending, paid, canceled")
	}
	return nil
}

// ValidatePixKeyType validates PIX key types
func ValidatePixKeyType(keyType string) error {
	validTypes := map[string]bool{
		"cpf": true, "cnpj": true, "email": true, "phone": true, "random": true,
	}
	if !validTypes[keyType] {
		return fmt.Errorf("pix key type must be one of: cpf, cnpj, email, phone, random")
	}
	return nil
}

// ValidatePaginationParams validates pagination parameters
func ValidatePaginationParams(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// SafeString safely handles string pointer operations
func SafeString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// FormatBRL renders an amount the way reminders show it, e.g. "R$ 1234.00".
func FormatBRL(amount float64) string {
	return fmt.Sprintf("R$ %.2f", amount)
}

// FormatDueDate renders a due date in the Brazilian day/month/year style.
func FormatDueDate(t time.Time) string {
	return t.Format("02/01/2006")
}

// StartOfDay truncates t to local midnight.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// EndOfDay returns the last instant of t's calendar day.
func EndOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}

// GetUserIDFromContext extracts the user ID from the request context
func GetUserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	userID, ok := ctx.Value(UserIDKey).(uuid.UUID)
	return userID, ok
}

// IsAdminFromContext reports whether the authenticated user is an admin.
func IsAdminFromContext(ctx context.Context) bool {
	isAdmin, ok := ctx.Value(IsAdminKey).(bool)
	return ok && isAdmin
}
