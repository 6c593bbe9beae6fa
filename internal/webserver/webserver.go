// Package webserver hosts the echo HTTP server: the public store API under
// /api and the JWT-protected admin API under /admin/api.
package webserver

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/random"
	"go.uber.org/zap"

	"github.com/lahorisamosa/lahorisamosa/internal/app"
)

type WebServer struct {
	root  *echo.Echo
	app   *app.Application
	pub   *echo.Group
	admin *echo.Group
}

var server *WebServer

// Init builds the global web server around the application container
func Init(application *app.Application) *WebServer {
	cfg := application.Config()

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	secret := cfg.Web.JwtSecret
	if secret == "" {
		secret = random.String(32)
		cfg.Web.JwtSecret = secret
		zap.L().Warn("web.jwt_secret not configured, admin sessions will not survive a restart")
	}

	e.Use(middleware.Recover())
	e.Use(zapLogger())
	e.Use(session.Middleware(sessions.NewCookieStore([]byte(secret))))
	e.Use(injectApp(application))

	pub := e.Group("/api")
	admin := e.Group("/admin/api")
	admin.Use(echojwt.WithConfig(echojwt.Config{
		SigningKey: []byte(secret),
		Skipper: func(c echo.Context) bool {
			return strings.HasSuffix(c.Path(), "/login")
		},
	}))

	server = &WebServer{root: e, app: application, pub: pub, admin: admin}
	return server
}

// Instance returns the initialized server
func Instance() *WebServer {
	return server
}

func (ws *WebServer) Start() error {
	cfg := ws.app.Config()
	addr := fmt.Sprintf("%s:%d", cfg.Web.Host, cfg.Web.Port)
	zap.L().Info("web server listening", zap.String("addr", addr))
	return ws.root.Start(addr)
}

func (ws *WebServer) Shutdown(ctx context.Context) error {
	return ws.root.Shutdown(ctx)
}

// Echo exposes the underlying router (used in tests)
func (ws *WebServer) Echo() *echo.Echo {
	return ws.root
}

func zapLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}
			zap.L().Debug("http request",
				zap.String("method", c.Request().Method),
				zap.String("path", c.Request().URL.Path),
				zap.Int("status", c.Response().Status),
				zap.Duration("latency", time.Since(start)))
			return err
		}
	}
}

// Public route registration, used by the store API

func PubGET(path string, h echo.HandlerFunc) {
	server.pub.GET(path, h)
}

func PubPOST(path string, h echo.HandlerFunc) {
	server.pub.POST(path, h)
}

func PubPUT(path string, h echo.HandlerFunc) {
	server.pub.PUT(path, h)
}

func PubDELETE(path string, h echo.HandlerFunc) {
	server.pub.DELETE(path, h)
}

// Admin route registration, JWT-protected except the login path

func ApiGET(path string, h echo.HandlerFunc) {
	server.admin.GET(path, h)
}

func ApiPOST(path string, h echo.HandlerFunc) {
	server.admin.POST(path, h)
}

func ApiPUT(path string, h echo.HandlerFunc) {
	server.admin.PUT(path, h)
}

func ApiDELETE(path string, h echo.HandlerFunc) {
	server.admin.DELETE(path, h)
}
