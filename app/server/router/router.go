package router

import (
	"book-library/app/server/apidocs"
	"book-library/app/server/handlers"
	"book-library/app/server/jwt"
	"book-library/app/server/middlewares"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type Options struct {
	Logger      *zap.Logger
	App         *handlers.App
	JWT         *jwt.JWT
	Users       middlewares.UserLookup
	CORSOrigins []string

	// 为 nil 时不暴露 /metrics
	Registry *prometheus.Registry
	// 非空时在 /api 下提供 API 文档
	APISpecJSON []byte
}

func New(opts Options) (*echo.Echo, error) {
	l := opts.Logger

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:       true,
		LogMethod:    true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			l.Info("request",
				zap.String("method", v.Method),
				zap.String("URI", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
				zap.String("requestID", v.RequestID),
			)

			return nil
		},
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: opts.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAuthorization},
	}))

	if opts.Registry != nil {
		metrics, err := middlewares.NewMetrics(opts.Registry)
		if err != nil {
			return nil, err
		}
		e.Use(metrics.Middleware())
		e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(opts.Registry, promhttp.HandlerOpts{})))
	}

	if len(opts.APISpecJSON) > 0 {
		e.Pre(apidocs.Doc("/api", opts.APISpecJSON, apidocs.WithTitle("Book Library API")))
	}

	a := opts.App
	auth := middlewares.UserAuth(opts.JWT, opts.Users, l)

	e.GET("/healthcheck", a.HealthCheck)

	// 公开接口
	e.POST("/register", a.AuthRegister)
	e.POST("/login", a.AuthLogin)
	e.GET("/books", a.BookList)
	e.GET("/books/:id", a.BookInfoGet)

	// 需要登录，角色由 handler 检查
	e.POST("/books", a.BookCreate, auth)
	e.PUT("/books/:id", a.BookInfoUpdate, auth)
	e.DELETE("/books/:id", a.BookDelete, auth)

	return e, nil
}
