package inits

import (
	"book-library/app/server/config"
	"book-library/app/server/constants"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

func Config() (*config.Config, error) {
	// 允许使用 .env 文件，不存在时忽略
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	return configFrom(viper.New())
}

func configFrom(v *viper.Viper) (*config.Config, error) {
	v.AutomaticEnv()
	v.SetDefault("LISTEN", ":5001")
	v.SetDefault("TOKEN_TTL", constants.AuthTokenDuration)
	v.SetDefault("DB_DRIVER", constants.StorageDriverMemory)
	v.SetDefault("CORS_ORIGINS", "*")

	var cfg config.Config

	cfg.System.IsProd = strings.HasPrefix(strings.ToLower(v.GetString("MODE")), "p")
	cfg.System.Listen = v.GetString("LISTEN")
	for _, origin := range strings.Split(v.GetString("CORS_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.System.CORSOrigins = append(cfg.System.CORSOrigins, origin)
		}
	}

	cfg.Storage.Driver = strings.ToLower(v.GetString("DB_DRIVER"))
	cfg.Storage.DBConnectionString = v.GetString("DB_CONN")
	cfg.Storage.RedisConnectionString = v.GetString("REDIS_CONN")
	switch cfg.Storage.Driver {
	case constants.StorageDriverMemory:
	case constants.StorageDriverSQLite, constants.StorageDriverPostgres:
		if cfg.Storage.DBConnectionString == "" {
			return nil, fmt.Errorf("DB_CONN environment variable not set for driver %s", cfg.Storage.Driver)
		}
	default:
		return nil, fmt.Errorf("unknown DB_DRIVER %q", cfg.Storage.Driver)
	}

	if cfg.Security.SignatureSecretKey = v.GetString("SIGNATURE_SECRET_KEY"); cfg.Security.SignatureSecretKey == "" {
		return nil, fmt.Errorf("SIGNATURE_SECRET_KEY environment variable not set")
	}

	if cfg.Security.TokenTTL = v.GetDuration("TOKEN_TTL"); cfg.Security.TokenTTL <= 0 {
		return nil, fmt.Errorf("TOKEN_TTL should be a positive duration")
	}

	cfg.Security.AdminUsername = v.GetString("ADMIN_USERNAME")
	cfg.Security.AdminPassword = v.GetString("ADMIN_PASSWORD")
	if (cfg.Security.AdminUsername == "") != (cfg.Security.AdminPassword == "") {
		return nil, fmt.Errorf("ADMIN_USERNAME and ADMIN_PASSWORD must be set together")
	}

	return &cfg, nil
}
