package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// StatusHandler serves the unauthenticated endpoints front-end clients use
// to exercise loading and error states.
type StatusHandler struct {
	loadingDelay time.Duration
}

func NewStatusHandler(loadingDelay time.Duration) *StatusHandler {
	return &StatusHandler{loadingDelay: loadingDelay}
}

type statusResponse struct {
	Status string `json:"status"`
}

// Root handles GET /.
//
// @Summary      Root probe
// @Tags         status
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       / [get]
func (h *StatusHandler) Root(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"GET": "ok"})
}

// Loading handles GET /loading: responds after the configured delay, or
// gives up early if the client goes away.
//
// @Summary      Delayed response
// @Tags         status
// @Produce      json
// @Success      200  {object}  statusResponse
// @Router       /loading [get]
func (h *StatusHandler) Loading(c echo.Context) error {
	timer := time.NewTimer(h.loadingDelay)
	defer timer.Stop()

	select {
	case <-timer.C:
		return c.JSON(http.StatusOK, statusResponse{Status: "ok"})
	case <-c.Request().Context().Done():
		return c.Request().Context().Err()
	}
}

// Data handles GET /data.
//
// @Summary      Static data probe
// @Tags         status
// @Produce      json
// @Success      200  {object}  statusResponse
// @Router       /data [get]
func (h *StatusHandler) Data(c echo.Context) error {
	return c.JSON(http.StatusOK, statusResponse{Status: "ok"})
}

// Error handles GET /error: always 500.
//
// @Summary      Simulated failure
// @Tags         status
// @Produce      json
// @Failure      500  {object}  statusResponse
// @Router       /error [get]
func (h *StatusHandler) Error(c echo.Context) error {
	return c.JSON(http.StatusInternalServerError, statusResponse{Status: "Internal Error"})
}
