package api

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	models "PropSight/internal/domain/models"
	icache "PropSight/internal/service/cache"
	"PropSight/internal/service/metrics"
	"PropSight/internal/service/ratelimit"
	"PropSight/internal/usecase"
	xhttp "PropSight/pkg/http"
	xlogger "PropSight/pkg/logger"
)

// ListingsHandler serves scored listing reads: filtered lists, single
// snapshots, market summaries, and CSV export.
type ListingsHandler struct {
	logger *xlogger.Logger
	query  *usecase.ListingQuery
	cache  icache.BytesCache
	rl     *ratelimit.Limiter
}

func NewListingsHandler(logger *xlogger.Logger, query *usecase.ListingQuery) *ListingsHandler {
	metrics.Register()
	return &ListingsHandler{logger: logger, query: query, rl: ratelimit.New()}
}

// SetCache injects a cache for rendered CSV exports.
func (h *ListingsHandler) SetCache(c icache.BytesCache) { h.cache = c }

func (h *ListingsHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/listings", h.List)
	g.GET("/listings/export.csv", h.ExportCSV)
	g.GET("/listings/:id", h.Get)
	g.GET("/market/summary", h.Summary)
}

func (h *ListingsHandler) List(c echo.Context) error {
	start := time.Now()
	req := &models.ListListingsRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	rows, err := h.query.List(c.Request().Context(), *req)
	if err != nil {
		metrics.APIErrors.WithLabelValues("list_listings").Inc()
		h.logger.Error("list listings error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}

	metrics.APILatency.WithLabelValues("list_listings").Observe(time.Since(start).Seconds())
	c.Response().Header().Set(echo.HeaderCacheControl, "private, max-age=15")
	return xhttp.ListResponse(c, rows, int64(len(rows)))
}

func (h *ListingsHandler) Get(c echo.Context) error {
	id := c.Param("id")
	s, err := h.query.Get(c.Request().Context(), id)
	if err != nil {
		metrics.APIErrors.WithLabelValues("get_listing").Inc()
		h.logger.Error("get listing error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	if s == nil {
		return xhttp.AppErrorResponse(c, xhttp.NotFoundErrorf("listing %s not found", id))
	}
	return xhttp.SuccessResponse(c, s)
}

func (h *ListingsHandler) Summary(c echo.Context) error {
	start := time.Now()
	req := &models.MarketSummaryRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	sum, err := h.query.Summary(c.Request().Context(), *req)
	if err != nil {
		metrics.APIErrors.WithLabelValues("market_summary").Inc()
		h.logger.Error("market summary error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}

	metrics.APILatency.WithLabelValues("market_summary").Observe(time.Since(start).Seconds())
	return xhttp.SuccessResponse(c, sum)
}

// ExportCSV streams the latest filtered snapshots as CSV. The render is
// rate-limited per caller and cached briefly since it scans the full result
// set.
func (h *ListingsHandler) ExportCSV(c echo.Context) error {
	start := time.Now()
	endpoint := "export_csv"
	defer func() { metrics.APILatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds()) }()

	if !h.rl.Allow(c.RealIP()+":export", 3, 1) {
		h.logger.Warn("export rate_limited", xlogger.String("remote", c.RealIP()))
		return echo.NewHTTPError(http.StatusTooManyRequests, "rate limited")
	}

	req := models.ListListingsRequest{
		City:     c.QueryParam("city"),
		ZipCode:  c.QueryParam("zipCode"),
		Type:     c.QueryParam("type"),
		Flag:     c.QueryParam("flag"),
		Page:     1,
		PageSize: xhttp.ParseIntDefault(c.QueryParam("limit"), 500),
	}

	cacheKey := fmt.Sprintf("export:%s:%s:%s:%s:%d", req.City, req.ZipCode, req.Type, req.Flag, req.PageSize)
	if h.cache != nil {
		if b, ok, err := h.cache.GetBytes(cacheKey); err == nil && ok {
			metrics.CacheHits.WithLabelValues(endpoint).Inc()
			return c.Blob(http.StatusOK, "text/csv", b)
		}
	}

	rows, err := h.query.List(c.Request().Context(), req)
	if err != nil {
		metrics.APIErrors.WithLabelValues(endpoint).Inc()
		h.logger.Error("export listings error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}

	b, err := renderCSV(rows)
	if err != nil {
		metrics.APIErrors.WithLabelValues(endpoint).Inc()
		h.logger.Error("export render error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}

	if h.cache != nil {
		_ = h.cache.SetBytes(cacheKey, b, 30*time.Second)
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="listings.csv"`)
	return c.Blob(http.StatusOK, "text/csv", b)
}

func renderCSV(rows []*models.ScoredListing) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	header := []string{
		"id", "address", "city", "zip", "type", "price", "sqft", "price_per_sqft",
		"score", "comp_gap", "zestimate_gap", "rent_yield", "confidence", "flag", "scored_at",
	}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, s := range rows {
		rec := []string{
			s.Listing.ID,
			s.Listing.Address,
			s.Listing.City,
			s.Listing.ZipCode,
			string(s.Listing.ListingType),
			strconv.FormatFloat(s.Listing.ListingPrice, 'f', 2, 64),
			strconv.FormatFloat(s.Listing.Sqft, 'f', 0, 64),
			strconv.FormatFloat(s.Listing.PricePerSqft, 'f', 2, 64),
			strconv.FormatFloat(s.Score.Total, 'f', 1, 64),
			strconv.FormatFloat(s.Score.CompGap, 'f', 1, 64),
			strconv.FormatFloat(s.Score.ZestimateGap, 'f', 1, 64),
			strconv.FormatFloat(s.Score.RentYield, 'f', 1, 64),
			string(s.Score.Confidence),
			string(s.Flag),
			s.ScoredAt.UTC().Format(time.RFC3339),
		}
		if err := w.Write(rec); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
