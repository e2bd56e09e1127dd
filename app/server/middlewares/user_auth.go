package middlewares

import (
	"book-library/app/server/constants"
	"book-library/app/server/jwt"
	"book-library/app/server/models"
	"book-library/app/server/stores"
	"context"
	"errors"
	"fmt"
	"net/http"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

var errUserLookup = errors.New("user lookup failed")

type UserLookup interface {
	Lookup(ctx context.Context, username string) (*models.User, error)
}

// UserAuth 只负责身份验证：验证 Bearer token 并确认用户仍然存在，
// 成功后把 *models.User 放进 context，角色检查留给具体的 handler。
func UserAuth(j *jwt.JWT, users UserLookup, l *zap.Logger) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContextKey:  constants.AuthContextUserKey,
		TokenLookup: "header:" + echo.HeaderAuthorization + ":Bearer ",
		ParseTokenFunc: func(c echo.Context, auth string) (interface{}, error) {
			// 验证 token
			jwtUser, err := j.ParseUser(auth)
			if err != nil {
				return nil, err
			}

			// 用户必须仍然存在
			user, err := users.Lookup(c.Request().Context(), jwtUser.Username)
			if err != nil {
				if errors.Is(err, stores.ErrNotFound) {
					return nil, fmt.Errorf("%w: user %s no longer exists", jwt.ErrInvalid, jwtUser.Username)
				}
				return nil, fmt.Errorf("%w: %w", errUserLookup, err)
			}

			return user, nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			if errors.Is(err, errUserLookup) {
				l.Error("failed to look up token user", zap.Error(err))
				return c.JSON(http.StatusInternalServerError, echo.Map{
					"message": http.StatusText(http.StatusInternalServerError),
				})
			}

			// echo-jwt 在提取阶段不区分缺失和格式错误，这里自己判断
			message := constants.MessageTokenInvalid
			if _, headerErr := jwt.BearerToken(c.Request().Header.Get(echo.HeaderAuthorization)); errors.Is(headerErr, jwt.ErrMissing) {
				message = constants.MessageTokenMissing
			} else if headerErr != nil {
				message = constants.MessageTokenMalformed
			}

			l.Debug("failed to authenticate request",
				zap.String("URI", c.Request().RequestURI),
				zap.String("reason", message),
				zap.Error(err),
			)

			return c.JSON(http.StatusUnauthorized, echo.Map{
				"message": message,
			})
		},
	})
}

// CurrentUser 取出 UserAuth 保存的用户
func CurrentUser(c echo.Context) (*models.User, bool) {
	user, ok := c.Get(constants.AuthContextUserKey).(*models.User)
	return user, ok && user != nil
}
