package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/nexaa/auth-service/internal/core/domain"
	"github.com/nexaa/auth-service/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// SignUp registers a new user account.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signUpRequest  true  "Registration details"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Failure      503   {object}  errorResponse
// @Router       /auth/signup [post]
func (h *AuthHandler) SignUp(c echo.Context) error {
	var req signUpRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	if _, err := h.authService.SignUp(c.Request().Context(), req.Username, req.Email, req.Password); err != nil {
		switch {
		case errors.Is(err, domain.ErrEmailTaken):
			return c.JSON(http.StatusBadRequest, errorResponse{Error: "Error: Email is already in use!"})
		case errors.Is(err, domain.ErrUsernameTaken):
			return c.JSON(http.StatusBadRequest, errorResponse{Error: "Error: Username is already taken!"})
		case errors.Is(err, domain.ErrInvalidInput):
			return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		}
		return err
	}

	return c.JSON(http.StatusOK, messageResponse{Message: "User registered successfully!"})
}

// SignIn authenticates a user and returns a bearer token.
//
// @Summary      Sign in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signInRequest  true  "Credentials"
// @Success      200   {object}  signInResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      429   {object}  errorResponse
// @Router       /auth/signin [post]
func (h *AuthHandler) SignIn(c echo.Context) error {
	var req signInRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	result, err := h.authService.SignIn(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidCredentials):
			// Identical shape for unknown email and wrong password.
			return c.JSON(http.StatusUnauthorized, errorResponse{Error: "Error: Invalid credentials!"})
		case errors.Is(err, domain.ErrTooManyAttempts):
			return c.JSON(http.StatusTooManyRequests, errorResponse{Error: "Too many sign-in attempts, try again later"})
		}
		return err
	}

	return c.JSON(http.StatusOK, signInResponse{
		Token:     result.Token,
		Type:      "Bearer",
		ID:        result.User.ID,
		Username:  result.User.Username,
		Email:     result.User.Email,
		Roles:     result.User.Roles,
		ExpiresAt: result.ExpiresAt,
	})
}

// Validate checks a bearer token without touching the credential store.
// The token is read from the "token" query parameter, or from the
// Authorization header when the parameter is absent.
//
// @Summary      Validate a token
// @Tags         auth
// @Produce      json
// @Param        token  query     string  false  "Token to validate"
// @Success      200    {object}  validateResponse
// @Router       /auth/validate [post]
func (h *AuthHandler) Validate(c echo.Context) error {
	token := c.QueryParam("token")
	if token == "" {
		token = bearerToken(c.Request().Header.Get("Authorization"))
	}

	claims, err := h.authService.Validate(token)
	if err != nil {
		// Invalid is a predictable outcome, not an error response.
		return c.JSON(http.StatusOK, validateResponse{Valid: false})
	}

	return c.JSON(http.StatusOK, validateResponse{
		Valid: true,
		Claims: &claimsResponse{
			Subject:   claims.Subject,
			Username:  claims.Username,
			Roles:     claims.Roles,
			IssuedAt:  claims.IssuedAt,
			ExpiresAt: claims.ExpiresAt,
		},
	})
}

// Health reports that the auth service is up.
//
// @Summary      Auth service health
// @Tags         auth
// @Produce      json
// @Success      200  {object}  messageResponse
// @Router       /auth/health [get]
func (h *AuthHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, messageResponse{Message: "Auth service is running!"})
}

// bearerToken extracts the credential from an "Authorization: Bearer x" value.
func bearerToken(header string) string {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}
