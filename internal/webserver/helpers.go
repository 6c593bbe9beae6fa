package webserver

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/lahorisamosa/lahorisamosa/internal/app"
	"github.com/lahorisamosa/lahorisamosa/internal/cart"
	"github.com/lahorisamosa/lahorisamosa/internal/checkout"
	"github.com/lahorisamosa/lahorisamosa/internal/mailer"
	"github.com/lahorisamosa/lahorisamosa/internal/realtime"
)

// Context keys for the per-request application handles. Handlers read them
// through the Get* helpers; tests may set fakes directly.
const (
	ctxKeyApp        = "lahori.app"
	ctxKeyDB         = "lahori.db"
	ctxKeyBus        = "lahori.bus"
	ctxKeyMailer     = "lahori.mailer"
	ctxKeyDispatcher = "lahori.dispatcher"
	ctxKeyCarts      = "lahori.carts"
	ctxKeyCheckout   = "lahori.checkout"
)

func injectApp(a *app.Application) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(ctxKeyApp, a)
			c.Set(ctxKeyDB, a.DB())
			c.Set(ctxKeyBus, a.Bus())
			c.Set(ctxKeyMailer, a.Mailer())
			c.Set(ctxKeyDispatcher, a.Dispatcher())
			c.Set(ctxKeyCarts, a.Carts())
			c.Set(ctxKeyCheckout, a.Checkout())
			return next(c)
		}
	}
}

func GetApp(c echo.Context) *app.Application {
	a, _ := c.Get(ctxKeyApp).(*app.Application)
	return a
}

func GetDB(c echo.Context) *gorm.DB {
	db, _ := c.Get(ctxKeyDB).(*gorm.DB)
	return db
}

func GetBus(c echo.Context) *realtime.Bus {
	b, _ := c.Get(ctxKeyBus).(*realtime.Bus)
	return b
}

func GetMailer(c echo.Context) *mailer.Mailer {
	m, _ := c.Get(ctxKeyMailer).(*mailer.Mailer)
	return m
}

func GetDispatcher(c echo.Context) *mailer.Dispatcher {
	d, _ := c.Get(ctxKeyDispatcher).(*mailer.Dispatcher)
	return d
}

func GetCarts(c echo.Context) *cart.Store {
	s, _ := c.Get(ctxKeyCarts).(*cart.Store)
	return s
}

func GetCheckout(c echo.Context) *checkout.Service {
	s, _ := c.Get(ctxKeyCheckout).(*checkout.Service)
	return s
}

type apiError struct {
	Code   string      `json:"code"`
	Msg    string      `json:"msg"`
	Detail interface{} `json:"detail,omitempty"`
}

type apiResponse struct {
	Data interface{} `json:"data"`
}

type pagedResponse struct {
	Data     interface{} `json:"data"`
	Total    int64       `json:"total"`
	Page     int         `json:"page"`
	PageSize int         `json:"pageSize"`
}

// OK / Fail / Paged are the shared response envelope; handler packages
// alias them locally.

func OK(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, apiResponse{Data: data})
}

func Fail(c echo.Context, status int, code, msg string, detail interface{}) error {
	return c.JSON(status, apiError{Code: code, Msg: msg, Detail: detail})
}

func Paged(c echo.Context, data interface{}, total int64, page, pageSize int) error {
	return c.JSON(http.StatusOK, pagedResponse{Data: data, Total: total, Page: page, PageSize: pageSize})
}

// ParsePagination reads page/perPage query params with sane bounds
func ParsePagination(c echo.Context) (page, pageSize int) {
	page = 1
	if p, err := strconv.Atoi(c.QueryParam("page")); err == nil && p > 0 {
		page = p
	}
	pageSize = 20
	if ps, err := strconv.Atoi(c.QueryParam("perPage")); err == nil && ps > 0 && ps <= 500 {
		pageSize = ps
	}
	return page, pageSize
}
