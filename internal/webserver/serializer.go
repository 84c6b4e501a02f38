package webserver

import (
	"context"
	"fmt"
	"net/http"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// JsoniterSerializer swaps echo's encoding/json for json-iterator.
type JsoniterSerializer struct {
	json jsoniter.API
}

func NewJsoniterSerializer() *JsoniterSerializer {
	return &JsoniterSerializer{json: jsoniter.ConfigCompatibleWithStandardLibrary}
}

func (s *JsoniterSerializer) Serialize(c echo.Context, i interface{}, indent string) error {
	enc := s.json.NewEncoder(c.Response())
	if indent != "" {
		enc.SetIndent("", indent)
	}
	return enc.Encode(i)
}

func (s *JsoniterSerializer) Deserialize(c echo.Context, i interface{}) error {
	err := s.json.NewDecoder(c.Request().Body).Decode(i)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("unmarshal error: %v", err)).SetInternal(err)
	}
	return nil
}

// ZapLoggerMiddleware logs one line per request through the global zap
// logger.
func ZapLoggerMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}
			req := c.Request()
			res := c.Response()
			zap.L().Debug("http request",
				zap.String("method", req.Method),
				zap.String("uri", req.RequestURI),
				zap.Int("status", res.Status),
				zap.Duration("latency", time.Since(start)),
				zap.String("remote_ip", c.RealIP()))
			return nil
		}
	}
}

func shutdownContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}
