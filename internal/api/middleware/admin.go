package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pathagar/bookshop-api/internal/api/metrics"
	"github.com/pathagar/bookshop-api/internal/core/domain"
	"github.com/pathagar/bookshop-api/internal/core/ports"
)

// Admin is the "must hold the admin role" guard. It composes after Auth and
// resolves the principal's role from the store. An unknown principal (token
// outlives the profile) and a non-admin role are both terminal 403 outcomes,
// never a fault; only a genuine store failure propagates.
func Admin(roles ports.RoleStore) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			email, _ := c.Get("email").(string)
			if email == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
			}

			role, err := roles.RoleOf(c.Request().Context(), email)
			if err != nil {
				if errors.Is(err, domain.ErrUnknownPrincipal) {
					metrics.AuthDenialsTotal.WithLabelValues("unknown_principal").Inc()
					return echo.NewHTTPError(http.StatusForbidden, "access forbidden")
				}
				return err
			}
			if role != domain.RoleAdmin {
				metrics.AuthDenialsTotal.WithLabelValues("not_admin").Inc()
				return echo.NewHTTPError(http.StatusForbidden, "access forbidden")
			}

			c.Set("role", role)
			return next(c)
		}
	}
}
