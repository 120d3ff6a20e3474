package utils

import (
	"github.com/spf13/viper"
)

type Config struct {
	App         AppConfig
	Database    DatabaseConfig
	Session     SessionConfig
	Reservation ReservationConfig
	Redis       RedisConfig
}

type AppConfig struct {
	Name    string
	Port    string
	Debug   bool
	LogPath string

	// Reason recorded when a cancel request carries no reason of its own.
	DefaultCancellationReason string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	MaxConns int32
}

type SessionConfig struct {
	ExpiryHours int
}

type ReservationConfig struct {
	// AllowOversell keeps the legacy behavior where a reservation may drive
	// occurrence vacancies negative. When false, oversized reservations are
	// rejected with a conflict.
	AllowOversell bool
}

type RedisConfig struct {
	Addr           string
	Password       string
	DB             int
	ReportCacheTTL int // seconds, 0 disables the report cache
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("SESSION_EXPIRY_HOURS", 24)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("DEFAULT_CANCELLATION_REASON", "Cancelled by issuer")
	viper.SetDefault("RESERVATION_ALLOW_OVERSELL", false)
	viper.SetDefault("REPORT_CACHE_TTL", 0)

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	viper.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:                      viper.GetString("APP_NAME"),
			Port:                      viper.GetString("PORT"),
			Debug:                     viper.GetBool("DEBUG"),
			LogPath:                   viper.GetString("LOG_PATH"),
			DefaultCancellationReason: viper.GetString("DEFAULT_CANCELLATION_REASON"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASS"),
			MaxConns: viper.GetInt32("DB_MAX_CONNS"),
		},
		Session: SessionConfig{
			ExpiryHours: viper.GetInt("SESSION_EXPIRY_HOURS"),
		},
		Reservation: ReservationConfig{
			AllowOversell: viper.GetBool("RESERVATION_ALLOW_OVERSELL"),
		},
		Redis: RedisConfig{
			Addr:           viper.GetString("REDIS_ADDR"),
			Password:       viper.GetString("REDIS_PASSWORD"),
			DB:             viper.GetInt("REDIS_DB"),
			ReportCacheTTL: viper.GetInt("REPORT_CACHE_TTL"),
		},
	}

	return config, nil
}
