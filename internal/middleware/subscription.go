package middleware

import (
	"net/http"

	"cobrafacil/internal/common"
	"cobrafacil/internal/models"
	"cobrafacil/internal/services"

	"github.com/labstack/echo/v4"
)

// SubscriptionGuard gates billing features behind an active subscription.
// The policy is a branch table over the status string: no subscription sends
// the caller to plan selection, a non-active one to the pending screen, and
// ACTIVE passes through. Admins bypass the guard entirely.
func SubscriptionGuard(subscriptionSvc services.SubscriptionService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()

			if common.IsAdminFromContext(ctx) {
				return next(c)
			}

			userID, ok := common.GetUserIDFromContext(ctx)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "User not found")
			}

			status, err := subscriptionSvc.GetStatus(ctx, userID)
			if err != nil {
				return common.SendServerError(c, "Failed to check subscription")
			}

			switch status {
			case models.SubscriptionStatusActive:
				return next(c)
			case "":
				resp := common.CreateErrorResponse("SUBSCRIPTION_REQUIRED", "Select a plan to continue", nil)
				resp.Error.Redirect = "/plans"
				return c.JSON(http.StatusPaymentRequired, resp)
			default:
				resp := common.CreateErrorResponse("SUBSCRIPTION_PENDING", "Subscription is not active yet", nil)
				resp.Error.Redirect = "/subscription/pending"
				return c.JSON(http.StatusPaymentRequired, resp)
			}
		}
	}
}
