package handlers

import (
	"github.com/labstack/echo/v4"
	"net/http"
)

// er 返回统一的错误结构，未指定信息时使用状态码的标准描述
func (a *App) er(c echo.Context, statusCode int, message ...string) error {
	msg := http.StatusText(statusCode)
	if len(message) > 0 {
		msg = message[0]
	}

	return c.JSON(statusCode, &MessageResponse{
		Message: msg,
	})
}
