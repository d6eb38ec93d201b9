package api

import (
	"time"

	"github.com/labstack/echo/v4"

	models "PropSight/internal/domain/models"
	"PropSight/internal/service/metrics"
	"PropSight/internal/usecase"
	xhttp "PropSight/pkg/http"
	xlogger "PropSight/pkg/logger"
)

// ReportsHandler serves property intake and cost segregation report
// endpoints.
type ReportsHandler struct {
	logger *xlogger.Logger
	gen    *usecase.ReportGenerator
}

func NewReportsHandler(logger *xlogger.Logger, gen *usecase.ReportGenerator) *ReportsHandler {
	metrics.Register()
	return &ReportsHandler{logger: logger, gen: gen}
}

func (h *ReportsHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.POST("/properties", h.CreateProperty)
	g.GET("/properties", h.ListProperties)
	g.GET("/properties/:id", h.GetProperty)
	g.GET("/properties/:id/reports", h.ListReports)
	g.POST("/reports", h.CreateReport)
	g.GET("/reports", h.ListRecentReports)
	g.GET("/reports/:id", h.GetReport)
}

func (h *ReportsHandler) CreateProperty(c echo.Context) error {
	req := &models.CreatePropertyRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	rec, err := h.gen.CreateProperty(c.Request().Context(), *req)
	if err != nil {
		metrics.APIErrors.WithLabelValues("create_property").Inc()
		h.logger.Error("create property error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.CreatedResponse(c, rec)
}

func (h *ReportsHandler) GetProperty(c echo.Context) error {
	id := c.Param("id")
	rec, err := h.gen.GetProperty(c.Request().Context(), id)
	if err != nil {
		metrics.APIErrors.WithLabelValues("get_property").Inc()
		h.logger.Error("get property error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	if rec == nil {
		return xhttp.AppErrorResponse(c, xhttp.NotFoundErrorf("property %s not found", id))
	}
	return xhttp.SuccessResponse(c, rec)
}

func (h *ReportsHandler) ListProperties(c echo.Context) error {
	limit := xhttp.ParseIntDefault(c.QueryParam("limit"), 50)
	offset := xhttp.ParseIntDefault(c.QueryParam("offset"), 0)

	rows, err := h.gen.ListProperties(c.Request().Context(), limit, offset)
	if err != nil {
		metrics.APIErrors.WithLabelValues("list_properties").Inc()
		h.logger.Error("list properties error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.ListResponse(c, rows, int64(len(rows)))
}

func (h *ReportsHandler) CreateReport(c echo.Context) error {
	start := time.Now()
	req := &models.CreateReportRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	report, err := h.gen.Generate(c.Request().Context(), *req)
	if err != nil {
		metrics.APIErrors.WithLabelValues("create_report").Inc()
		h.logger.Error("generate report error",
			xlogger.String("property_id", req.PropertyID),
			xlogger.Error(err),
		)
		return xhttp.AppErrorResponse(c, err)
	}

	metrics.APILatency.WithLabelValues("create_report").Observe(time.Since(start).Seconds())
	h.logger.Info("report generated",
		xlogger.String("report_id", report.ID),
		xlogger.String("property_id", report.PropertyID),
		xlogger.Float64("accelerated_pct", report.Classification.Summary.AcceleratedPercent),
	)
	return xhttp.CreatedResponse(c, report)
}

func (h *ReportsHandler) GetReport(c echo.Context) error {
	id := c.Param("id")
	report, err := h.gen.GetReport(c.Request().Context(), id)
	if err != nil {
		metrics.APIErrors.WithLabelValues("get_report").Inc()
		h.logger.Error("get report error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	if report == nil {
		return xhttp.AppErrorResponse(c, xhttp.NotFoundErrorf("report %s not found", id))
	}
	return xhttp.SuccessResponse(c, report)
}

func (h *ReportsHandler) ListRecentReports(c echo.Context) error {
	limit := xhttp.ParseIntDefault(c.QueryParam("limit"), 50)
	offset := xhttp.ParseIntDefault(c.QueryParam("offset"), 0)

	rows, err := h.gen.ListRecentReports(c.Request().Context(), limit, offset)
	if err != nil {
		metrics.APIErrors.WithLabelValues("list_reports").Inc()
		h.logger.Error("list reports error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.ListResponse(c, rows, int64(len(rows)))
}

func (h *ReportsHandler) ListReports(c echo.Context) error {
	propertyID := c.Param("id")
	rows, err := h.gen.ListReports(c.Request().Context(), propertyID)
	if err != nil {
		metrics.APIErrors.WithLabelValues("list_reports").Inc()
		h.logger.Error("list reports error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.ListResponse(c, rows, int64(len(rows)))
}
