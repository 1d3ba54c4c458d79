package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/auth-api/internal/core/ports"
)

type NewsHandler struct {
	catalog ports.ArticleCatalog
}

func NewNewsHandler(catalog ports.ArticleCatalog) *NewsHandler {
	return &NewsHandler{catalog: catalog}
}

// List returns every article. There is no per-user filtering.
//
// @Summary      News feed
// @Tags         private
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Article
// @Failure      401  {object}  messageResponse
// @Router       /private/news [get]
func (h *NewsHandler) List(c echo.Context) error {
	if _, err := currentUser(c); err != nil {
		return err
	}

	articles, err := h.catalog.List(c.Request().Context())
	if err != nil {
		return fmt.Errorf("list articles: %w", err)
	}
	return c.JSON(http.StatusOK, articles)
}
