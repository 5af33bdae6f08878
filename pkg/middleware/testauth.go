package middleware

import (
	"github.com/labstack/echo/v4"

	appctx "github.com/Ramsey-B/clover/pkg/context"
)

// TestAuth extracts the user identity from headers when auth is disabled.
// This allows exercising the API without a real JWT auth system.
// Headers:
//   - X-User-ID: The user ID
//   - X-User-Name: The display name used in greetings
//
// WARNING: Only use this when AUTH_ENABLED=false. Do not enable in production.
func TestAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()

			userID := c.Request().Header.Get(HeaderUserID)
			if userID != "" {
				ctx = appctx.SetUserID(ctx, userID)
			}

			userName := c.Request().Header.Get(HeaderUserName)
			if userName != "" {
				ctx = appctx.SetUserName(ctx, userName)
			}

			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	}
}
