package config

import (
	"errors"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Server   ServerConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Redis    RedisConfig
	Report   ReportConfig
}

type AppConfig struct {
	Name            string
	Version         string
	Environment     string
	AppShareLinkKey string
}

type ServerConfig struct {
	Port string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

type JWTConfig struct {
	SecretKey string
}

type RedisConfig struct {
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
}

type ReportConfig struct {
	// DataSource selects where sales_data rows come from: "postgres" or "csv".
	DataSource string
	CSVPath    string
	// CacheTTLSeconds is how long rendered reports live in Redis.
	CacheTTLSeconds int
	// ShareLinkTTLMinutes bounds the lifetime of shared report codes.
	ShareLinkTTLMinutes int
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, errors.New("invalid redis database")
	}

	cacheTTL, err := strconv.Atoi(getEnv("REPORT_CACHE_TTL_SECONDS", "300"))
	if err != nil {
		return nil, errors.New("invalid report cache ttl")
	}

	shareTTL, err := strconv.Atoi(getEnv("REPORT_SHARE_TTL_MINUTES", "60"))
	if err != nil {
		return nil, errors.New("invalid report share ttl")
	}

	cfg := &Config{
		App: AppConfig{
			Name:            getEnv("APP_NAME", "Sales Desk API"),
			Version:         getEnv("APP_VERSION", "1.0.0"),
			Environment:     getEnv("APP_ENV", "development"),
			AppShareLinkKey: getEnv("APP_SHARE_LINK_KEY", ""),
		},
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "sales_desk"),
			SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		},
		JWT: JWTConfig{
			SecretKey: getEnv("JWT_SECRET", ""),
		},
		Redis: RedisConfig{
			RedisHost:     getEnv("REDIS_HOST", "localhost"),
			RedisPort:     getEnv("REDIS_PORT", "6379"),
			RedisPassword: getEnv("REDIS_PASSWORD", ""),
			RedisDB:       redisDB,
		},
		Report: ReportConfig{
			DataSource:          getEnv("REPORT_DATA_SOURCE", "postgres"),
			CSVPath:             getEnv("REPORT_CSV_PATH", "sales_data.csv"),
			CacheTTLSeconds:     cacheTTL,
			ShareLinkTTLMinutes: shareTTL,
		},
	}

	if cfg.JWT.SecretKey == "" {
		return nil, errors.New("missing jwt secret")
	}

	if cfg.App.AppShareLinkKey == "" {
		return nil, errors.New("missing share link key")
	}

	// AES-CBC needs a 16, 24 or 32 byte key
	switch len(cfg.App.AppShareLinkKey) {
	case 16, 24, 32:
	default:
		return nil, errors.New("share link key must be 16, 24 or 32 bytes")
	}

	if cfg.Report.DataSource != "postgres" && cfg.Report.DataSource != "csv" {
		return nil, errors.New("report data source must be postgres or csv")
	}

	// users always live in postgres, even when sales data comes from csv
	if cfg.Database.Password == "" {
		return nil, errors.New("missing database password")
	}

	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}

	return defaultVal
}
