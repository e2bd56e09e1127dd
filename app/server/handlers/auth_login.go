package handlers

import (
	"book-library/app/server/constants"
	"book-library/app/server/credentials"
	"errors"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"net/http"
)

func (a *App) AuthLogin(c echo.Context) error {
	rctx := c.Request().Context()

	// 绑定请求体
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		a.l.Debug("failed to bind json body", zap.Error(err))
		return a.er(c, http.StatusBadRequest)
	}

	// 用户不存在和密码错误返回同样的信息
	user, err := a.users.Verify(rctx, req.Username, req.Password)
	if err != nil {
		if errors.Is(err, credentials.ErrBadCredentials) {
			return a.er(c, http.StatusUnauthorized, constants.MessageInvalidCredentials)
		}
		a.l.Error("failed to verify credentials", zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	// 签出 JWT
	token, _, err := a.jwt.SignToken(user.Username)
	if err != nil {
		a.l.Error("failed to sign token", zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	// 返回
	return c.JSON(http.StatusOK, &LoginToken{
		Token: token,
	})
}
