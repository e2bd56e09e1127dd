package inits

import (
	"book-library/app/server/config"
	"book-library/app/server/credentials"
	"book-library/app/server/models"
	"book-library/app/server/stores"
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// InitData 在配置了管理员账号时创建它，已存在则跳过
func InitData(ctx context.Context, cfg *config.Config, users *credentials.Service, l *zap.Logger) error {
	if cfg.Security.AdminUsername == "" {
		return nil
	}

	if _, err := users.Lookup(ctx, cfg.Security.AdminUsername); err == nil {
		l.Debug("admin user already exists", zap.String("username", cfg.Security.AdminUsername))
		return nil
	} else if !errors.Is(err, stores.ErrNotFound) {
		return fmt.Errorf("failed to look up admin user: %w", err)
	}

	if _, err := users.Register(ctx, cfg.Security.AdminUsername, cfg.Security.AdminPassword, models.RoleAdmin); err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	l.Info("admin user created", zap.String("username", cfg.Security.AdminUsername))

	return nil
}
