package handlers

import (
	"book-library/app/smoke/config"
	"net/http"

	"go.uber.org/zap"
)

type App struct {
	cfg    *config.Config
	l      *zap.Logger
	client *http.Client

	token string  // 登录后获得
	added []int64 // 本次创建的书目
}

func NewApp(cfg *config.Config, l *zap.Logger) *App {
	return &App{
		cfg: cfg,
		l:   l,
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}
