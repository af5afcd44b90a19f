// Package adminapi implements the password-gated admin endpoints:
// product CRUD, media upload, order listing and export, storefront
// settings and operational metrics.
package adminapi

import (
	"strconv"

	jsoniter "github.com/json-iterator/go"
	"github.com/labstack/echo/v4"

	"github.com/tilazone/tilazone/internal/webserver"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// InitRouter registers all admin routes. Call after webserver.Init.
func InitRouter() {
	registerAuthRoutes()
	registerProductRoutes()
	registerMediaRoutes()
	registerOrderRoutes()
	registerSettingsRoutes()
	registerMetricsRoutes()
}

func ok(c echo.Context, data interface{}) error {
	return c.JSON(200, map[string]interface{}{
		"code": 0,
		"data": data,
	})
}

func fail(c echo.Context, status int, code, msg string, detail interface{}) error {
	return c.JSON(status, map[string]interface{}{
		"code":   code,
		"msg":    msg,
		"detail": detail,
	})
}

func paged(c echo.Context, data interface{}, total int64, page, pageSize int) error {
	return c.JSON(200, map[string]interface{}{
		"code":      0,
		"data":      data,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
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

// GetApp resolves the injected application context.
var GetApp = webserver.GetApp
