// Package storeapi implements the public storefront endpoints under /api:
// catalog, cart, checkout, contact, subscribe, and the email relay.
package storeapi

import (
	"github.com/labstack/echo/v4"

	"github.com/lahorisamosa/lahorisamosa/internal/webserver"
)

// RegisterRoutes attaches all public endpoints to the web server
func RegisterRoutes() {
	registerProductRoutes()
	registerCartRoutes()
	registerCheckoutRoutes()
	registerContactRoutes()
	registerRelayRoutes()
}

func ok(c echo.Context, data interface{}) error {
	return webserver.OK(c, data)
}

func fail(c echo.Context, status int, code, msg string, detail interface{}) error {
	return webserver.Fail(c, status, code, msg, detail)
}
