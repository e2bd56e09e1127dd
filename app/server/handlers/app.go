package handlers

import (
	"book-library/app/server/catalog"
	"book-library/app/server/credentials"
	"book-library/app/server/jwt"
	"go.uber.org/zap"
)

type App struct {
	l     *zap.Logger          // 日志
	users *credentials.Service // 用户与密码
	books *catalog.Catalog     // 书目
	jwt   *jwt.JWT             // JWT ，用于无状态验证
}

func NewApp(l *zap.Logger, users *credentials.Service, books *catalog.Catalog, j *jwt.JWT) *App {
	return &App{
		l:     l,
		users: users,
		books: books,
		jwt:   j,
	}
}
