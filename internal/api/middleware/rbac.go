package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/medicore/hospital-system/internal/api/metrics"
	"github.com/medicore/hospital-system/internal/core/auth"
	"github.com/medicore/hospital-system/internal/core/domain"
)

// RBAC enforces role-based access control. It delegates the decision to
// auth.Authorize so every guard in the system shares one decision function:
// absent claims → 401, wrong role → 403.
func RBAC(allowedRoles ...domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, _ := c.Get(ClaimsKey).(*auth.Claims)

			decision := auth.Authorize(claims, allowedRoles...)
			if decision.Allowed {
				metrics.AuthzDecisionsTotal.WithLabelValues("allowed").Inc()
				return next(c)
			}

			if decision.RedirectTo == auth.SignInPath {
				metrics.AuthzDecisionsTotal.WithLabelValues("unauthenticated").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
			}
			metrics.AuthzDecisionsTotal.WithLabelValues("forbidden").Inc()
			return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
		}
	}
}
