package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/pathagar/bookshop-api/internal/api/metrics"
	"github.com/pathagar/bookshop-api/internal/core/ports"
)

// Auth is the "must be authenticated" guard. A missing or non-Bearer
// Authorization header is 401; a malformed or expired token is 403. On
// success the resolved principal email is injected into the context. This
// step never touches the role store, so routes that only need "is logged in"
// skip the extra lookup.
func Auth(tokens ports.TokenCodec) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				metrics.AuthDenialsTotal.WithLabelValues("missing_credentials").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				metrics.AuthDenialsTotal.WithLabelValues("missing_credentials").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			subject, err := tokens.Verify(parts[1])
			if err != nil {
				metrics.AuthDenialsTotal.WithLabelValues("invalid_credentials").Inc()
				return echo.NewHTTPError(http.StatusForbidden, "invalid token")
			}

			c.Set("email", subject)
			return next(c)
		}
	}
}
