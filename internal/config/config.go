package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Configはアプリ全体の設定
type Config struct {
	Port  string // サーバーポート（8080）
	GoEnv string // dev/prod

	DBDriver    string // postgres / sqlite
	DatabaseURL string // あれば POSTGRES_* より優先
	SQLitePath  string

	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresHost     string
	PostgresPort     int
	PostgresSSLMode  string

	JWTSecret string // JWT署名シークレット

	RabbitURL   string // 空なら購入イベントを送らない
	RabbitQueue string

	BookCacheSize int
	BookCacheTTL  time.Duration
}

func (c Config) IsDev() bool {
	return c.GoEnv == "" || c.GoEnv == "dev"
}

// Loadは環境変数
func Load() (Config, error) {
	cfg := Config{
		Port:  getenv("PORT", "8080"),
		GoEnv: getenv("GO_ENV", "dev"),

		DBDriver:    getenv("DB_DRIVER", "postgres"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		SQLitePath:  getenv("SQLITE_PATH", "bookstore.db"),

		PostgresUser:     getenv("POSTGRES_USER", "postgres"),
		PostgresPassword: getenv("POSTGRES_PASSWORD", "postgres"),
		PostgresDB:       getenv("POSTGRES_DB", "bookstore"),
		PostgresHost:     getenv("POSTGRES_HOST", "localhost"),
		PostgresSSLMode:  getenv("POSTGRES_SSLMODE", "disable"),

		JWTSecret: os.Getenv("JWT_SECRET"),

		RabbitURL:   os.Getenv("RABBITMQ_URL"),
		RabbitQueue: getenv("RABBITMQ_QUEUE", "bookstore.book.bought"),
	}

	var err error
	if cfg.PostgresPort, err = atoiDefault("POSTGRES_PORT", 5432); err != nil {
		return Config{}, err
	}
	if cfg.BookCacheSize, err = atoiDefault("BOOK_CACHE_SIZE", 1024); err != nil {
		return Config{}, err
	}
	ttl := getenv("BOOK_CACHE_TTL", "30s")
	if cfg.BookCacheTTL, err = time.ParseDuration(ttl); err != nil {
		return Config{}, fmt.Errorf("BOOK_CACHE_TTL must be duration: %w", err)
	}

	//必須チェック
	switch cfg.DBDriver {
	case "postgres", "sqlite":
	default:
		return Config{}, fmt.Errorf("DB_DRIVER must be postgres or sqlite")
	}
	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.BookCacheSize < 0 {
		return Config{}, fmt.Errorf("BOOK_CACHE_SIZE must be >= 0")
	}

	return cfg, nil
}

func getenv(key string, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func atoiDefault(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be number: %w", key, err)
	}
	return i, nil
}
