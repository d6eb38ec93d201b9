package api

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	domrepo "PropSight/internal/domain/repository"
	"PropSight/internal/usecase"
)

// HealthHandler reports liveness of the feed and backing stores.
type HealthHandler struct {
	collector *usecase.ListingCollector
	snapshots domrepo.SnapshotStore
	backend   string
}

func NewHealthHandler(collector *usecase.ListingCollector, snapshots domrepo.SnapshotStore, backend string) *HealthHandler {
	return &HealthHandler{collector: collector, snapshots: snapshots, backend: backend}
}

func (h *HealthHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", h.Health)
	e.GET("/readyz", h.Ready)
}

func (h *HealthHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":  "ok",
		"backend": h.backend,
	})
}

func (h *HealthHandler) Ready(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()

	status := http.StatusOK
	checks := map[string]string{}

	if h.collector != nil {
		if h.collector.IsConnected() {
			checks["feed"] = "connected"
		} else {
			checks["feed"] = "disconnected"
			status = http.StatusServiceUnavailable
		}
	}
	if h.snapshots != nil {
		if err := h.snapshots.Health(ctx); err != nil {
			checks["snapshots"] = err.Error()
			status = http.StatusServiceUnavailable
		} else {
			checks["snapshots"] = "ok"
		}
	}

	return c.JSON(status, map[string]interface{}{
		"status": http.StatusText(status),
		"checks": checks,
	})
}
