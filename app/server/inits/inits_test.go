package inits

import (
	"book-library/app/server/config"
	"book-library/app/server/constants"
	"book-library/app/server/credentials"
	"book-library/app/server/models"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alexedwards/argon2id"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var configVars = []string{
	"MODE", "LISTEN", "SIGNATURE_SECRET_KEY", "TOKEN_TTL", "DB_DRIVER", "DB_CONN",
	"REDIS_CONN", "ADMIN_USERNAME", "ADMIN_PASSWORD", "CORS_ORIGINS",
}

// setEnv 清空所有配置变量，再写入给定的值
func setEnv(t *testing.T, env map[string]string) {
	t.Helper()
	for _, k := range configVars {
		t.Setenv(k, "")
	}
	for k, v := range env {
		t.Setenv(k, v)
	}
}

func TestConfigDefaults(t *testing.T) {
	setEnv(t, map[string]string{"SIGNATURE_SECRET_KEY": "k"})

	cfg, err := configFrom(viper.New())
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	if cfg.System.IsProd || cfg.System.Listen != ":5001" {
		t.Fatalf("unexpected system config %+v", cfg.System)
	}
	if len(cfg.System.CORSOrigins) != 1 || cfg.System.CORSOrigins[0] != "*" {
		t.Fatalf("unexpected origins %v", cfg.System.CORSOrigins)
	}
	if cfg.Storage.Driver != constants.StorageDriverMemory {
		t.Fatalf("default driver should be memory, got %q", cfg.Storage.Driver)
	}
	if cfg.Security.TokenTTL != time.Hour {
		t.Fatalf("default ttl should be 1h, got %s", cfg.Security.TokenTTL)
	}
}

func TestConfigFromEnvironment(t *testing.T) {
	setEnv(t, map[string]string{
		"MODE":                 "Production",
		"LISTEN":               "127.0.0.1:8080",
		"SIGNATURE_SECRET_KEY": "k",
		"TOKEN_TTL":            "15m",
		"DB_DRIVER":            "SQLite",
		"DB_CONN":              "library.db",
		"ADMIN_USERNAME":       "admin",
		"ADMIN_PASSWORD":       "admin123",
		"CORS_ORIGINS":         "https://a.example, https://b.example,",
	})

	cfg, err := configFrom(viper.New())
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	if !cfg.System.IsProd || cfg.System.Listen != "127.0.0.1:8080" {
		t.Fatalf("unexpected system config %+v", cfg.System)
	}
	if strings.Join(cfg.System.CORSOrigins, "|") != "https://a.example|https://b.example" {
		t.Fatalf("unexpected origins %v", cfg.System.CORSOrigins)
	}
	if cfg.Storage.Driver != constants.StorageDriverSQLite || cfg.Storage.DBConnectionString != "library.db" {
		t.Fatalf("unexpected storage config %+v", cfg.Storage)
	}
	if cfg.Security.TokenTTL != 15*time.Minute || cfg.Security.AdminUsername != "admin" {
		t.Fatalf("unexpected security config %+v", cfg.Security)
	}
}

func TestConfigErrors(t *testing.T) {
	cases := map[string]map[string]string{
		"missing key":       {},
		"unknown driver":    {"SIGNATURE_SECRET_KEY": "k", "DB_DRIVER": "mongo"},
		"missing dsn":       {"SIGNATURE_SECRET_KEY": "k", "DB_DRIVER": "postgres"},
		"negative ttl":      {"SIGNATURE_SECRET_KEY": "k", "TOKEN_TTL": "-1m"},
		"admin no password": {"SIGNATURE_SECRET_KEY": "k", "ADMIN_USERNAME": "admin"},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			setEnv(t, env)
			if _, err := configFrom(viper.New()); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestStoresAndInitData(t *testing.T) {
	ctx := context.Background()
	l := zap.NewNop()

	for driver, conn := range map[string]string{
		constants.StorageDriverMemory: "",
		constants.StorageDriverSQLite: filepath.Join(t.TempDir(), "library.db"),
	} {
		t.Run(driver, func(t *testing.T) {
			cfg := &config.Config{}
			cfg.Storage.Driver = driver
			cfg.Storage.DBConnectionString = conn

			users, books, closer, err := Stores(cfg, l)
			if err != nil {
				t.Fatalf("stores: %v", err)
			}
			t.Cleanup(closer)

			if list, err := books.List(ctx); err != nil || len(list) != 0 {
				t.Fatalf("fresh book store: %v %v", list, err)
			}

			svc, err := credentials.New(users, &argon2id.Params{Memory: 1024, Iterations: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32})
			if err != nil {
				t.Fatalf("credentials: %v", err)
			}

			cfg.Security.AdminUsername = "admin"
			cfg.Security.AdminPassword = "admin123"

			// 重复执行不应该报错
			for i := 0; i < 2; i++ {
				if err := InitData(ctx, cfg, svc, l); err != nil {
					t.Fatalf("init data #%d: %v", i, err)
				}
			}

			user, err := svc.Verify(ctx, "admin", "admin123")
			if err != nil {
				t.Fatalf("seeded admin cannot log in: %v", err)
			}
			if user.Role != models.RoleAdmin {
				t.Fatalf("seeded user has role %q", user.Role)
			}
		})
	}
}
