package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pathagar/bookshop-api/internal/api/metrics"
)

// Owner is the "must own this resource" guard: the authenticated principal's
// email must equal the named path parameter. It composes after Auth; guards
// short-circuit left to right, so a failed Auth means this never runs.
func Owner(param string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			email, _ := c.Get("email").(string)
			if email == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
			}

			if c.Param(param) != email {
				metrics.AuthDenialsTotal.WithLabelValues("not_owner").Inc()
				return echo.NewHTTPError(http.StatusForbidden, "access forbidden")
			}

			return next(c)
		}
	}
}
