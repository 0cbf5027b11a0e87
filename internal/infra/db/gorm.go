package db

import (
	"fmt"

	"bookstore/internal/config"
	"bookstore/internal/domain/model"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect はDBに接続して *gorm.DB を返す。
func Connect(cfg config.Config) (*gorm.DB, error) {
	gcfg := &gorm.Config{TranslateError: true}
	if !cfg.IsDev() {
		gcfg.Logger = logger.Default.LogMode(logger.Silent)
	}

	if cfg.DBDriver == "sqlite" {
		return gorm.Open(sqlite.Open(cfg.SQLitePath), gcfg)
	}

	// DATABASE_URL があれば最優先で使う
	if cfg.DatabaseURL != "" {
		return gorm.Open(postgres.Open(cfg.DatabaseURL), gcfg)
	}

	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.PostgresHost, cfg.PostgresPort, cfg.PostgresUser, cfg.PostgresPassword, cfg.PostgresDB, cfg.PostgresSSLMode,
	)
	return gorm.Open(postgres.Open(dsn), gcfg)
}

// Migrate はテーブルを作る。
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Book{},
		&model.Purchase{},
		&model.StockAdjustment{},
	)
}
