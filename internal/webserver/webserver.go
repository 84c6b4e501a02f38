// Package webserver hosts the echo instance serving the admin JSON API.
// Handlers register themselves through the Api*/Pub* helpers, keeping
// route wiring next to each handler file.
package webserver

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Mustagiz/Aleen/internal/app"
)

// DBContextKey carries the gorm handle into request context.
const DBContextKey = "aleenpos_db"

var server *WebServer

type WebServer struct {
	appCtx app.AppContext
	root   *echo.Echo
	api    *echo.Group
}

// Init creates the package-level server instance.
func Init(appCtx app.AppContext) *WebServer {
	server = NewWebServer(appCtx)
	return server
}

func NewWebServer(appCtx app.AppContext) *WebServer {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.JSONSerializer = NewJsoniterSerializer()
	e.Validator = NewApiValidator()

	e.Use(middleware.Recover())
	e.Use(ZapLoggerMiddleware())

	e.GET("/status", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]interface{}{"status": "ok", "time": time.Now()})
	})

	// product images
	e.Static("/uploads", appCtx.Config().UploadsDir())

	api := e.Group("/api")
	api.Use(middleware.BodyLimit("8M"))
	api.Use(echojwt.WithConfig(echojwt.Config{
		SigningKey: []byte(appCtx.Config().Web.Secret),
		Skipper: func(c echo.Context) bool {
			p := c.Request().URL.Path
			return strings.HasPrefix(p, "/api/auth/login") ||
				strings.HasPrefix(p, "/api/auth/register")
		},
	}))
	api.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(DBContextKey, appCtx.DB())
			return next(c)
		}
	})

	return &WebServer{appCtx: appCtx, root: e, api: api}
}

// Echo exposes the root instance, mainly for handler tests.
func (ws *WebServer) Echo() *echo.Echo {
	return ws.root
}

func (ws *WebServer) Start() error {
	cfg := ws.appCtx.Config().Web
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	zap.S().Infof("admin api listening on %s", addr)
	return ws.root.Start(addr)
}

func (ws *WebServer) Shutdown(timeout time.Duration) error {
	ctx, cancel := shutdownContext(timeout)
	defer cancel()
	return ws.root.Shutdown(ctx)
}

// AppCtx returns the application context behind the package server.
func AppCtx() app.AppContext {
	return server.appCtx
}

// ApiGET registers an authenticated GET route.
func ApiGET(path string, h echo.HandlerFunc) {
	server.api.GET(path, h)
}

// ApiPOST registers an authenticated POST route.
func ApiPOST(path string, h echo.HandlerFunc) {
	server.api.POST(path, h)
}

// ApiPUT registers an authenticated PUT route.
func ApiPUT(path string, h echo.HandlerFunc) {
	server.api.PUT(path, h)
}

// ApiDELETE registers an authenticated DELETE route.
func ApiDELETE(path string, h echo.HandlerFunc) {
	server.api.DELETE(path, h)
}

// GetDB extracts the request-scoped gorm handle.
func GetDB(c echo.Context) *gorm.DB {
	return c.Get(DBContextKey).(*gorm.DB)
}

// OperatorClaims is the JWT payload issued at login.
type OperatorClaims struct {
	OperatorID int64  `json:"uid,string"`
	Email      string `json:"email"`
	jwt.RegisteredClaims
}

// NewToken signs a token for an operator.
func NewToken(secret string, operatorID int64, email string, lifetime time.Duration) (string, error) {
	claims := &OperatorClaims{
		OperatorID: operatorID,
		Email:      email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(lifetime)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// CurrentOperatorID reads the authenticated operator from the verified
// token, 0 when the route was unauthenticated.
func CurrentOperatorID(c echo.Context) int64 {
	token, ok := c.Get("user").(*jwt.Token)
	if !ok {
		return 0
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0
	}
	switch v := claims["uid"].(type) {
	case string:
		var id int64
		_, _ = fmt.Sscan(v, &id)
		return id
	case float64:
		return int64(v)
	}
	return 0
}
