package inits

import (
	"book-library/app/server/config"
	"book-library/app/server/constants"
	"book-library/app/server/models"
	"book-library/app/server/stores"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Stores 根据配置准备用户与书目存储，返回的 closer 用于在退出时释放连接
func Stores(cfg *config.Config, l *zap.Logger) (users stores.UserStore, books stores.BookStore, closer func(), err error) {
	closers := []func(){}
	closer = func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	switch cfg.Storage.Driver {
	case constants.StorageDriverMemory:
		users, books = stores.NewMemoryUsers(), stores.NewMemoryBooks()
	default:
		db, err := DB(cfg.Storage.Driver, cfg.Storage.DBConnectionString, !cfg.System.IsProd)
		if err != nil {
			return nil, nil, nil, err
		}
		closers = append(closers, func() {
			if sqlDB, err := db.DB(); err == nil {
				_ = sqlDB.Close()
			}
		})
		users, books = stores.NewGormUsers(db), stores.NewGormBooks(db)
	}

	// 可选的书目读缓存
	if cfg.Storage.RedisConnectionString != "" {
		rdb, err := Redis(cfg.Storage.RedisConnectionString)
		if err != nil {
			closer()
			return nil, nil, nil, err
		}
		closers = append(closers, func() { _ = rdb.Close() })
		books = stores.NewCachedBooks(books, rdb, l)
	}

	l.Debug("stores initialized",
		zap.String("driver", cfg.Storage.Driver),
		zap.Bool("cache", cfg.Storage.RedisConnectionString != ""),
	)

	return users, books, closer, nil
}

func DB(driver string, conn string, debug bool) (db *gorm.DB, err error) {
	var dialector gorm.Dialector
	switch driver {
	case constants.StorageDriverSQLite:
		dialector = sqlite.Open(conn)
	case constants.StorageDriverPostgres:
		dialector = postgres.Open(conn)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	gormCfg := &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
	}
	if debug {
		gormCfg.Logger = logger.Default.LogMode(logger.Info)
	}

	// 打开连接
	if db, err = gorm.Open(dialector, gormCfg); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// 迁移
	if err = mig(db); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	// 返回
	return db, nil
}

func mig(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Book{},
	)
}
