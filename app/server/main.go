package main

import (
	"book-library/app/server/apidocs"
	"book-library/app/server/catalog"
	"book-library/app/server/credentials"
	"book-library/app/server/handlers"
	"book-library/app/server/inits"
	"book-library/app/server/jwt"
	"book-library/app/server/router"
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
)

func main() {
	// 初始化配置
	cfg, err := inits.Config()
	if err != nil {
		log.Fatal(fmt.Errorf("error loading config: %w", err))
	}

	// 初始化日志
	l, err := inits.Logger(!cfg.System.IsProd)
	if err != nil {
		log.Fatal(fmt.Errorf("error initializing logger: %w", err))
	}
	defer l.Sync()

	// 切换日志系统
	l.Debug("logger initialized")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 初始化存储
	userStore, bookStore, closeStores, err := inits.Stores(cfg, l)
	if err != nil {
		l.Fatal("error initializing stores", zap.Error(err))
	}
	defer closeStores()

	// 初始化 JWT
	j, err := jwt.New(cfg.Security.SignatureSecretKey, cfg.Security.TokenTTL)
	if err != nil {
		l.Fatal("error initializing JWT", zap.Error(err))
	}

	users, err := credentials.New(userStore, nil)
	if err != nil {
		l.Fatal("error initializing credentials", zap.Error(err))
	}
	books := catalog.New(bookStore)

	// 初始化启动数据
	if err = inits.InitData(ctx, cfg, users, l); err != nil {
		l.Fatal("error initializing data", zap.Error(err))
	}

	// 准备 handler app
	handlerApp := handlers.NewApp(l, users, books, j)

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	// 添加 API 文档
	var specJSON []byte
	if !cfg.System.IsProd {
		if specJSON, err = apidocs.SpecJSON(ctx, ""); err != nil {
			l.Error("error initializing api docs", zap.Error(err))
		}
	}

	// 准备 echo 服务
	e, err := router.New(router.Options{
		Logger:      l,
		App:         handlerApp,
		JWT:         j,
		Users:       users,
		CORSOrigins: cfg.System.CORSOrigins,
		Registry:    registry,
		APISpecJSON: specJSON,
	})
	if err != nil {
		l.Fatal("error initializing router", zap.Error(err))
	}

	// 启动 echo 服务
	go func() {
		l.Info("starting server", zap.String("listen", cfg.System.Listen))
		if err := e.Start(cfg.System.Listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
			l.Error("server stopped unexpectedly", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()

	// 数据都在进程内存中（memory 驱动），退出即丢失
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		l.Error("error shutting down the server", zap.Error(err))
	}
	l.Info("server stopped")
}
