// Package webserver owns the echo instance and exposes the route
// registration helpers used by the API packages.
package webserver

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/random"
	"go.uber.org/zap"

	"github.com/tilazone/tilazone/config"
	"github.com/tilazone/tilazone/internal/app"
	"github.com/tilazone/tilazone/pkg/metrics"
)

// AppContextKey is the echo context key the application context is
// injected under.
const AppContextKey = "tilazone_app"

var server *WebServer

// WebServer wraps echo with the public and admin route groups.
type WebServer struct {
	cfg   *config.AppConfig
	root  *echo.Echo
	api   *echo.Group
	admin *echo.Group
}

// Init builds the package server: session middleware for cart binding,
// request logging and metrics, and a JWT guard on the admin group
// signed with the per-process admin key.
func Init(cfg *config.AppConfig, appCtx app.AppContext, jwtKey []byte) *WebServer {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = JSONErrorHandler
	e.Use(middleware.Recover())

	secret := cfg.Web.Secret
	if secret == "" {
		// sessions do not survive a restart without a configured secret
		secret = random.String(32)
	}
	e.Use(session.Middleware(sessions.NewCookieStore([]byte(secret))))

	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(AppContextKey, appCtx)
			start := time.Now()
			err := next(c)
			metrics.Incr(metrics.MetricHTTPRequests)
			zap.L().Debug("http request",
				zap.String("method", c.Request().Method),
				zap.String("path", c.Request().URL.Path),
				zap.Int("status", c.Response().Status),
				zap.Duration("elapsed", time.Since(start)))
			return err
		}
	})

	api := e.Group("/api")
	admin := e.Group("/api/admin")
	admin.Use(echojwt.WithConfig(echojwt.Config{
		SigningKey: jwtKey,
	}))

	server = &WebServer{cfg: cfg, root: e, api: api, admin: admin}
	return server
}

// Listen starts serving and blocks until shutdown.
func (s *WebServer) Listen() error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Web.Host, s.cfg.Web.Port)
	zap.L().Info("web server listening", zap.String("addr", addr))
	return s.root.Start(addr)
}

// Echo exposes the underlying instance for shutdown handling.
func (s *WebServer) Echo() *echo.Echo {
	return s.root
}

// GetApp returns the application context injected into every request.
func GetApp(c echo.Context) app.AppContext {
	return c.Get(AppContextKey).(app.AppContext)
}

func ApiGET(path string, h echo.HandlerFunc) {
	server.api.GET(path, h)
}

func ApiPOST(path string, h echo.HandlerFunc) {
	server.api.POST(path, h)
}

func ApiPUT(path string, h echo.HandlerFunc) {
	server.api.PUT(path, h)
}

func ApiDELETE(path string, h echo.HandlerFunc) {
	server.api.DELETE(path, h)
}

func AdminGET(path string, h echo.HandlerFunc) {
	server.admin.GET(path, h)
}

func AdminPOST(path string, h echo.HandlerFunc) {
	server.admin.POST(path, h)
}

func AdminPUT(path string, h echo.HandlerFunc) {
	server.admin.PUT(path, h)
}

func AdminDELETE(path string, h echo.HandlerFunc) {
	server.admin.DELETE(path, h)
}

// JSONErrorHandler is installed as the echo error handler so API consumers
// always get the response envelope.
func JSONErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	code := http.StatusInternalServerError
	if he, ok := err.(*echo.HTTPError); ok {
		code = he.Code
	}
	_ = c.JSON(code, map[string]interface{}{
		"code": code,
		"msg":  err.Error(),
	})
}
