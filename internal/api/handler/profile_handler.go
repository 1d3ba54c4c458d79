package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ProfileHandler serves the identity behind the presented token.
type ProfileHandler struct{}

func NewProfileHandler() *ProfileHandler {
	return &ProfileHandler{}
}

// Me returns the public fields of the authenticated user.
//
// @Summary      Current user
// @Tags         private
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.Profile
// @Failure      401  {object}  messageResponse
// @Router       /private/me [get]
func (h *ProfileHandler) Me(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user.Profile())
}
