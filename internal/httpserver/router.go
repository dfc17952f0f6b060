package httpserver

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/freshmall/shopsim/internal/sim"
)

type Deps struct {
	Sim *sim.Simulator
	Log *slog.Logger
}

// New mounts the simulator under /api/*. Every matched call answers
// HTTP 200 with the envelope carrying the business code; the UI depends
// on the envelope alone.
func New(d *Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(RequestLogger(d.Log))

	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	h := &apiHandler{sim: d.Sim}
	e.Any("/api/*", h.dispatch)

	return e
}

type apiHandler struct {
	sim *sim.Simulator
}

func (h *apiHandler) dispatch(c echo.Context) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "unreadable body")
	}

	req, err := sim.NewRequest(c.Request().Method, c.Request().URL.String(), body)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "bad request url")
	}

	env, err := h.sim.Do(c.Request().Context(), req)
	if err != nil {
		if errors.Is(err, sim.ErrNoRoute) {
			return echo.NewHTTPError(http.StatusNotFound, "no such route")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	return c.JSON(http.StatusOK, env)
}
