package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/medicore/hospital-system/internal/api/middleware"
	"github.com/medicore/hospital-system/internal/core/auth"
	"github.com/medicore/hospital-system/internal/core/ports"
)

// ctxActor extracts the authenticated actor injected by the Auth middleware.
// A missing subject or role means the middleware did not run, so the request
// is rejected with 401 before any service call.
func ctxActor(c echo.Context) (ports.Actor, error) {
	claims, _ := c.Get(middleware.ClaimsKey).(*auth.Claims)
	if claims == nil || claims.UserID() == "" || claims.Role == "" {
		return ports.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return ports.Actor{UserID: claims.UserID(), Role: claims.Role}, nil
}
