package api

import (
	"github.com/labstack/echo/v4"

	xhttp "PropSight/pkg/http"
)

// Router bundles all API handlers into a single route registrar.
type Router struct {
	reports  *ReportsHandler
	listings *ListingsHandler
	health   *HealthHandler
}

func NewRouter(reports *ReportsHandler, listings *ListingsHandler, health *HealthHandler) *Router {
	return &Router{reports: reports, listings: listings, health: health}
}

func (r *Router) RegisterRoutes(e *echo.Echo) {
	r.reports.RegisterRoutes(e)
	r.listings.RegisterRoutes(e)
	r.health.RegisterRoutes(e)
}

var _ xhttp.Handler = (*Router)(nil)
