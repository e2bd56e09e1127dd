package handlers

import (
	"book-library/app/server/constants"
	"book-library/app/server/credentials"
	"book-library/app/server/models"
	"book-library/app/server/stores"
	"errors"
	"fmt"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"net/http"
)

func (a *App) AuthRegister(c echo.Context) error {
	rctx := c.Request().Context()

	// 绑定请求体
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		a.l.Debug("failed to bind json body", zap.Error(err))
		return a.er(c, http.StatusBadRequest, constants.MessageUserFieldsRequired)
	}

	// 没有写用户名或密码
	if req.Username == "" || req.Password == "" {
		return a.er(c, http.StatusBadRequest, constants.MessageUserFieldsRequired)
	}

	user, err := a.users.Register(rctx, req.Username, req.Password, models.Role(req.Role))
	if err != nil {
		switch {
		case errors.Is(err, stores.ErrDuplicate):
			return a.er(c, http.StatusBadRequest, constants.MessageUserExists)
		case errors.Is(err, credentials.ErrInvalidInput):
			return a.er(c, http.StatusBadRequest, constants.MessageInvalidRole)
		default:
			a.l.Error("failed to register user", zap.String("username", req.Username), zap.Error(err))
			return a.er(c, http.StatusInternalServerError)
		}
	}

	a.l.Info("user registered", zap.String("username", user.Username), zap.String("role", string(user.Role)))

	return c.JSON(http.StatusCreated, &MessageResponse{
		Message: fmt.Sprintf(constants.MessageUserRegistered, user.Username),
	})
}
