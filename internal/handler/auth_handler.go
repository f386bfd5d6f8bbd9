package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"tasktrack/internal/errors"
	"tasktrack/internal/service"
)

// AuthHandler handles registration and token endpoints.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// RegisterRequest represents a user registration request.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name" validate:"required"`
	Password string `json:"password" validate:"required,min=6"`
}

// LoginRequest represents the form-encoded login payload.
type LoginRequest struct {
	Username string `form:"username" validate:"required"`
	Password string `form:"password" validate:"required"`
}

// RefreshRequest represents a token refresh request body. The token may
// also arrive as a query parameter.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" form:"refresh_token" query:"refresh_token"`
}

// TokenResponse represents an issued token pair.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	TokenType    string `json:"token_type"`
}

// Register godoc
// @Summary Register a new user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration data"
// @Success 200 {object} model.User
// @Failure 400 {object} errors.ErrorResponse
// @Router /register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.authService.Register(c.Request().Context(), req.Email, req.Name, req.Password)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, user)
}

// Login godoc
// @Summary Login with name and password
// @Tags auth
// @Accept x-www-form-urlencoded
// @Produce json
// @Param username formData string true "User name"
// @Param password formData string true "Password"
// @Success 200 {object} TokenResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	accessToken, refreshToken, err := h.authService.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		c.Response().Header().Set(echo.HeaderWWWAuthenticate, "Bearer")
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "bearer",
	})
}

// Refresh godoc
// @Summary Exchange a refresh token for a new access token
// @Tags auth
// @Accept json
// @Produce json
// @Param refresh_token query string false "Refresh token"
// @Param request body RefreshRequest false "Refresh token"
// @Success 200 {object} TokenResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /refresh [post]
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req RefreshRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.RefreshToken == "" {
		req.RefreshToken = c.QueryParam("refresh_token")
	}
	if req.RefreshToken == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "refresh_token is required")
	}

	accessToken, err := h.authService.Refresh(c.Request().Context(), req.RefreshToken)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, TokenResponse{
		AccessToken: accessToken,
		TokenType:   "bearer",
	})
}

// respondError translates a domain error through the central mapping table.
func respondError(c echo.Context, err error) error {
	he := errors.MapErrorToHTTP(err)
	return c.JSON(he.StatusCode, he.ToErrorResponse())
}
