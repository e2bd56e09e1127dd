package handlers

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"net/http"
)

// HealthCheck 同时确认书目存储可读
func (a *App) HealthCheck(c echo.Context) error {
	if _, err := a.books.List(c.Request().Context()); err != nil {
		a.l.Error("health check failed", zap.Error(err))
		return a.er(c, http.StatusServiceUnavailable)
	}
	return c.NoContent(http.StatusOK)
}
