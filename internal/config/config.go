package config

import (
	"fmt"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
)

// Config конфигурация сервиса
// Загружается из TOML-файла, значения можно переопределить переменными окружения
type Config struct {
	Server       ServerConfig       `toml:"server"`
	Database     DatabaseConfig     `toml:"database"`
	Logs         LogsConfig         `toml:"logs"`
	Metrics      MetricsConfig      `toml:"metrics"`
	Booking      BookingConfig      `toml:"booking"`
	VenueService IntegrationConfig  `toml:"venue_service"`
	UserService  IntegrationConfig  `toml:"user_service"`
}

type ServerConfig struct {
	HTTPPort        int    `toml:"http_port" env:"SERVER_HTTP_PORT"`
	ReadTimeout     int    `toml:"read_timeout" env:"SERVER_READ_TIMEOUT"`
	WriteTimeout    int    `toml:"write_timeout" env:"SERVER_WRITE_TIMEOUT"`
	IdleTimeout     int    `toml:"idle_timeout" env:"SERVER_IDLE_TIMEOUT"`
	ShutdownTimeout int    `toml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT"`
	Timezone        string `toml:"timezone" env:"SERVER_TIMEZONE"`
}

type DatabaseConfig struct {
	Host            string `toml:"host" env:"DB_HOST"`
	Port            int    `toml:"port" env:"DB_PORT"`
	User            string `toml:"user" env:"DB_USER"`
	Password        string `toml:"password" env:"DB_PASSWORD"`
	DBName          string `toml:"dbname" env:"DB_NAME"`
	SSLMode         string `toml:"sslmode" env:"DB_SSLMODE"`
	MaxOpenConns    int    `toml:"max_open_conns" env:"DB_MAX_OPEN_CONNS"`
	MaxIdleConns    int    `toml:"max_idle_conns" env:"DB_MAX_IDLE_CONNS"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME"`
}

// DSN собирает строку подключения к PostgreSQL
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

type LogsConfig struct {
	File  string `toml:"file" env:"LOG_FILE"`
	Level string `toml:"level" env:"LOG_LEVEL"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled" env:"METRICS_ENABLED"`
	ServiceName string `toml:"service_name" env:"METRICS_SERVICE_NAME"`
	Path        string `toml:"path" env:"METRICS_PATH"`
}

// BookingConfig политики бронирования
// Порог окна отмены - внешний параметр политики, не константа движка
type BookingConfig struct {
	CancellationNoticeMinutes int     `toml:"cancellation_notice_minutes" env:"BOOKING_CANCELLATION_NOTICE_MINUTES"`
	MinDurationHours          float64 `toml:"min_duration_hours" env:"BOOKING_MIN_DURATION_HOURS"`
	MaxDurationHours          float64 `toml:"max_duration_hours" env:"BOOKING_MAX_DURATION_HOURS"`
}

type IntegrationConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"`
}

// Load читает конфигурацию из TOML-файла и применяет env-переопределения
func Load(path string) (*Config, error) {
	cfg := defaults()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: failed to decode %s: %w", path, err)
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Location возвращает локальную временную зону сервиса
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Server.Timezone)
	if err != nil {
		return nil, fmt.Errorf("config: invalid timezone %q: %w", c.Server.Timezone, err)
	}
	return loc, nil
}

func (c *Config) validate() error {
	if c.Server.HTTPPort <= 0 {
		return fmt.Errorf("config: server.http_port must be positive")
	}
	if c.Booking.CancellationNoticeMinutes < 0 {
		return fmt.Errorf("config: booking.cancellation_notice_minutes must be non-negative")
	}
	if c.Booking.MinDurationHours <= 0 || c.Booking.MaxDurationHours < c.Booking.MinDurationHours {
		return fmt.Errorf("config: invalid booking duration limits")
	}
	return nil
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     10,
			WriteTimeout:    10,
			IdleTimeout:     60,
			ShutdownTimeout: 15,
			Timezone:        "Europe/Moscow",
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			ServiceName: "booking-service",
			Path:        "/metrics",
		},
		Booking: BookingConfig{
			CancellationNoticeMinutes: 24 * 60,
			MinDurationHours:          1,
			MaxDurationHours:          24,
		},
	}
}
