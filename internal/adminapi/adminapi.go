// Package adminapi implements the dashboard endpoints under /admin/api.
// Everything except login requires a valid admin token.
package adminapi

import (
	"github.com/labstack/echo/v4"

	"github.com/lahorisamosa/lahorisamosa/internal/webserver"
)

// RegisterRoutes attaches all admin endpoints to the web server
func RegisterRoutes() {
	registerLoginRoutes()
	registerOrderRoutes()
	registerMessageRoutes()
	registerSubscriberRoutes()
	registerDashboardRoutes()
}

func ok(c echo.Context, data interface{}) error {
	return webserver.OK(c, data)
}

func fail(c echo.Context, status int, code, msg string, detail interface{}) error {
	return webserver.Fail(c, status, code, msg, detail)
}

func paged(c echo.Context, data interface{}, total int64, page, pageSize int) error {
	return webserver.Paged(c, data, total, page, pageSize)
}
