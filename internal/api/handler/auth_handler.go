package handler

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/99minutos/auth-api/internal/api/metrics"
	"github.com/99minutos/auth-api/internal/core/domain"
	"github.com/99minutos/auth-api/internal/core/ports"
)

const internalErrorMessage = "Server internal error"

// maxPasswordBytes is the longest input bcrypt hashes in full.
const maxPasswordBytes = 72

type AuthHandler struct {
	authService   ports.AuthService
	genericErrors bool
	log           zerolog.Logger
}

// NewAuthHandler builds the login handler. With genericErrors set, unknown
// logins and wrong passwords produce the same message.
func NewAuthHandler(authService ports.AuthService, genericErrors bool, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, genericErrors: genericErrors, log: log}
}

type loginRequest struct {
	Login    string `json:"login"    validate:"required,max=128"`
	Password string `json:"password" validate:"required"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// Login verifies credentials and issues a bearer token.
//
// @Summary      Issue a bearer token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  tokenResponse
// @Failure      400   {object}  messageResponse
// @Failure      500   {object}  messageResponse
// @Router       /auth [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		metrics.LoginAttemptsTotal.WithLabelValues(string(domain.OutcomeInvalidInput)).Inc()
		return c.JSON(http.StatusBadRequest, messageResponse{Message: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		metrics.LoginAttemptsTotal.WithLabelValues(string(domain.OutcomeInvalidInput)).Inc()
		return c.JSON(http.StatusBadRequest, messageResponse{Message: err.Error()})
	}
	if len(req.Password) > maxPasswordBytes {
		metrics.LoginAttemptsTotal.WithLabelValues(string(domain.OutcomeInvalidInput)).Inc()
		return c.JSON(http.StatusBadRequest, messageResponse{
			Message: fmt.Sprintf("password must be at most %d bytes", maxPasswordBytes),
		})
	}

	start := time.Now()
	token, _, err := h.authService.Authenticate(c.Request().Context(), ports.LoginInput{
		Login:    req.Login,
		Password: req.Password,
		RemoteIP: c.RealIP(),
	})
	metrics.LoginDuration.Observe(time.Since(start).Seconds())
	metrics.LoginAttemptsTotal.WithLabelValues(string(domain.OutcomeOf(err))).Inc()

	if err != nil {
		status, msg := h.loginError(err)
		if status == http.StatusInternalServerError {
			h.log.Error().Err(err).Str("login", req.Login).Msg("login failed")
		}
		return c.JSON(status, messageResponse{Message: msg})
	}

	return c.JSON(http.StatusOK, tokenResponse{Token: token})
}

func (h *AuthHandler) loginError(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrUserNotFound), errors.Is(err, domain.ErrInvalidPassword):
		if h.genericErrors {
			return http.StatusBadRequest, domain.ErrInvalidCredentials.Error()
		}
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusBadRequest, err.Error()
	default:
		return http.StatusInternalServerError, internalErrorMessage
	}
}
