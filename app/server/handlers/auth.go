package handlers

import (
	"book-library/app/server/constants"
	"book-library/app/server/middlewares"
	"book-library/app/server/models"
	"fmt"
	"github.com/labstack/echo/v4"
	"net/http"
)

// requireAdmin 在身份验证之后检查角色，身份有效并不代表拥有权限
func (a *App) requireAdmin(c echo.Context) (*models.User, error, int, string) {
	user, ok := middlewares.CurrentUser(c)
	if !ok {
		// 路由没有挂上 UserAuth
		return nil, fmt.Errorf("missing authenticated user"), http.StatusUnauthorized, constants.MessageTokenMissing
	}

	if !user.IsAdmin() {
		return nil, fmt.Errorf("user %s requires admin role", user.Username), http.StatusForbidden, constants.MessageAdminRequired
	}

	return user, nil, http.StatusOK, ""
}
