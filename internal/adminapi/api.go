package adminapi

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/Mustagiz/Aleen/internal/pos"
	"github.com/Mustagiz/Aleen/internal/webserver"
)

// Initialize registers every admin API route. Call after webserver.Init.
func Initialize() {
	registerAuthRoutes()
	registerProductRoutes()
	registerSalesRoutes()
	registerReportRoutes()
	registerSettingsRoutes()
}

// GetDB returns the request-scoped database handle.
func GetDB(c echo.Context) *gorm.DB {
	return webserver.GetDB(c)
}

func ok(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, data)
}

func created(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusCreated, data)
}

func fail(c echo.Context, status int, code, message string, detail interface{}) error {
	body := echo.Map{"code": code, "message": message}
	if detail != nil {
		body["detail"] = detail
	}
	return c.JSON(status, body)
}

func paged(c echo.Context, rows interface{}, total int64, page, pageSize int) error {
	return c.JSON(http.StatusOK, echo.Map{
		"items":    rows,
		"total":    total,
		"page":     page,
		"per_page": pageSize,
	})
}

func parsePagination(c echo.Context) (page, pageSize int) {
	page = 1
	pageSize = 20
	if p, err := strconv.Atoi(c.QueryParam("page")); err == nil && p > 0 {
		page = p
	}
	if ps, err := strconv.Atoi(c.QueryParam("pageSize")); err == nil && ps > 0 && ps <= 500 {
		pageSize = ps
	}
	return page, pageSize
}

func parseIDParam(c echo.Context, name string) (int64, error) {
	return strconv.ParseInt(c.Param(name), 10, 64)
}

// parseDateRange reads the optional inclusive startDate/endDate query
// pair. A date-only endDate is pushed to the end of that day so the
// whole day is included.
func parseDateRange(c echo.Context) (*time.Time, *time.Time, error) {
	startStr := strings.TrimSpace(c.QueryParam("startDate"))
	endStr := strings.TrimSpace(c.QueryParam("endDate"))
	if startStr == "" || endStr == "" {
		return nil, nil, nil
	}
	start, err := dateparse.ParseIn(startStr, time.Local)
	if err != nil {
		return nil, nil, err
	}
	end, err := dateparse.ParseIn(endStr, time.Local)
	if err != nil {
		return nil, nil, err
	}
	if len(endStr) <= 10 {
		end = end.Add(24*time.Hour - time.Nanosecond)
	}
	return &start, &end, nil
}

// failServiceError maps core errors onto the HTTP taxonomy.
func failServiceError(c echo.Context, err error) error {
	if ise, yes := pos.IsInsufficientStock(err); yes {
		return fail(c, http.StatusBadRequest, "INSUFFICIENT_STOCK", ise.Error(), echo.Map{
			"product_id": strconv.FormatInt(ise.ProductID, 10),
			"product":    ise.ProductName,
			"requested":  ise.Requested,
			"available":  ise.Available,
		})
	}
	switch {
	case errors.Is(err, pos.ErrProductNotFound):
		return fail(c, http.StatusBadRequest, "PRODUCT_NOT_FOUND", err.Error(), nil)
	case errors.Is(err, pos.ErrSaleNotFound):
		return fail(c, http.StatusNotFound, "SALE_NOT_FOUND", "Sale not found", nil)
	case errors.Is(err, pos.ErrEmptyCart):
		return fail(c, http.StatusBadRequest, "EMPTY_CART", "Cart must contain at least one item", nil)
	default:
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", err.Error(), nil)
	}
}
