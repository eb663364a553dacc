package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/vigiliot/vigil-server/internal/discovery"
)

type DiscoveryHandler struct {
	runner *discovery.Runner
}

func RegisterDiscovery(e *echo.Echo, runner *discovery.Runner) {
	handler := &DiscoveryHandler{runner: runner}

	e.POST("/run-discovery", handler.runDiscovery)
	e.GET("/discovery.json", handler.snapshot)
}

func (h *DiscoveryHandler) runDiscovery(c echo.Context) error {
	result, err := h.runner.Run(c.Request().Context())
	if err != nil {
		c.Logger().Errorf("run-discovery: %v", err)
		return c.JSON(http.StatusInternalServerError, failure("Discovery run failed."))
	}
	return c.JSON(http.StatusOK, result)
}

func (h *DiscoveryHandler) snapshot(c echo.Context) error {
	snapshot, err := h.runner.Snapshot(c.Request().Context())
	if err != nil {
		c.Logger().Errorf("discovery snapshot: %v", err)
		return c.JSON(http.StatusInternalServerError, failure("Failed to read discovery results."))
	}
	return c.JSON(http.StatusOK, snapshot)
}
