package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/medicore/hospital-system/internal/api/metrics"
	"github.com/medicore/hospital-system/internal/api/middleware"
	"github.com/medicore/hospital-system/internal/core/auth"
	"github.com/medicore/hospital-system/internal/core/domain"
	"github.com/medicore/hospital-system/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register creates a new account plus its role-matched profile.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      201   {object}  authResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  validationResponse
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return validationFailure(c, err)
	}

	input := ports.RegisterInput{
		Email:          req.Email,
		Password:       req.Password,
		Role:           domain.Role(req.Role),
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Specialization: req.Specialization,
		LicenseNumber:  req.LicenseNumber,
		Gender:         domain.Gender(req.Gender),
		Phone:          req.Phone,
		Address:        req.Address,
	}
	if req.DateOfBirth != "" {
		dob, _ := time.Parse("2006-01-02", req.DateOfBirth) // format already validated
		input.DateOfBirth = dob
	}
	if req.EmergencyContact != nil {
		input.EmergencyContact = domain.EmergencyContact{
			Name:         req.EmergencyContact.Name,
			Relationship: req.EmergencyContact.Relationship,
			Phone:        req.EmergencyContact.Phone,
		}
	}

	user, err := h.authService.Register(c.Request().Context(), input)
	if err != nil {
		return err
	}

	metrics.RegistrationsTotal.WithLabelValues(string(user.Role)).Inc()
	resp := toUserResponse(user)
	return c.JSON(http.StatusCreated, authResponse{User: &resp})
}

// Login authenticates a user and returns a token pair.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  authResponse
// @Failure      401   {object}  errorResponse
// @Failure      422   {object}  validationResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return validationFailure(c, err)
	}

	result, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	resp := toUserResponse(result.User)
	return c.JSON(http.StatusOK, authResponse{
		Token:        result.AccessToken,
		RefreshToken: result.RefreshToken,
		User:         &resp,
	})
}

// Me returns the account behind the presented token.
//
// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  userResponse
// @Failure      401  {object}  errorResponse
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	user, err := h.authService.Me(c.Request().Context(), actor.UserID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}

// Logout revokes the presented access token and drops refresh sessions.
//
// @Summary      Logout
// @Tags         auth
// @Security     BearerAuth
// @Success      204
// @Failure      401  {object}  errorResponse
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var tokenID string
	var expiry time.Time
	if claims, ok := c.Get(middleware.ClaimsKey).(*auth.Claims); ok && claims != nil {
		tokenID = claims.ID
		if claims.ExpiresAt != nil {
			expiry = claims.ExpiresAt.Time
		}
	}

	if err := h.authService.Logout(c.Request().Context(), actor.UserID, tokenID, expiry); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Refresh exchanges a refresh token for a new access token. Returns 501 when
// the refresh flow is not configured.
//
// @Summary      Refresh access token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      refreshRequest  true  "Refresh token"
// @Success      200   {object}  authResponse
// @Failure      401   {object}  errorResponse
// @Failure      501   {object}  errorResponse
// @Router       /auth/refresh [post]
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req refreshRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return validationFailure(c, err)
	}

	token, err := h.authService.Refresh(c.Request().Context(), req.RefreshToken)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, authResponse{Token: token})
}

// validationFailure renders a *ValidationError as a 422 with per-field
// violations; anything else is passed through to the central error handler.
func validationFailure(c echo.Context, err error) error {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return c.JSON(http.StatusUnprocessableEntity, validationResponse{
			Error:      "validation failed",
			Violations: ve.Violations,
		})
	}
	return err
}
