package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
	_ "time/tzdata" // часовые пояса в образе без системной tzdata

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/m04kA/SMC-TableBookingService/internal/domain"
	"github.com/m04kA/SMC-TableBookingService/pkg/types"
)

// Config конфигурация сервиса из config.toml.
// Секреты можно переопределить переменными окружения (в т.ч. из .env)
type Config struct {
	Server          ServerConfig          `toml:"server"`
	Database        DatabaseConfig        `toml:"database"`
	Logs            LogsConfig            `toml:"logs"`
	Metrics         MetricsConfig         `toml:"metrics"`
	Redis           RedisConfig           `toml:"redis"`
	Broker          BrokerConfig          `toml:"broker"`
	Auth            AuthConfig            `toml:"auth"`
	CustomerService CustomerServiceConfig `toml:"customer_service"`
	Booking         BookingConfig         `toml:"booking"`
	CORS            CORSConfig            `toml:"cors"`
	RateLimit       RateLimitConfig       `toml:"ratelimit"`
}

// ServerConfig таймауты в секундах
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
}

// DSN строка подключения для lib/pq
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// RedisConfig пустой addr выключает кеш доступности
type RedisConfig struct {
	Addr       string `toml:"addr"`
	Password   string `toml:"password"`
	DB         int    `toml:"db"`
	Prefix     string `toml:"prefix"`
	TTLSeconds int    `toml:"ttl_seconds"`
}

func (c RedisConfig) Enabled() bool {
	return c.Addr != ""
}

func (c RedisConfig) TTL() time.Duration {
	return time.Duration(c.TTLSeconds) * time.Second
}

// BrokerConfig пустой url выключает публикацию событий
type BrokerConfig struct {
	URL   string `toml:"url"`
	Queue string `toml:"queue"`
}

func (c BrokerConfig) Enabled() bool {
	return c.URL != ""
}

type AuthConfig struct {
	JWTSecret string `toml:"jwt_secret"`
}

type CustomerServiceConfig struct {
	URL     string `toml:"url"`
	Token   string `toml:"token"`
	Timeout int    `toml:"timeout"` // секунды
}

// BookingConfig политика по умолчанию, пока менеджер не сохранил свою
type BookingConfig struct {
	Timezone                string  `toml:"timezone"`
	OpeningTime             string  `toml:"opening_time"`
	ClosingTime             string  `toml:"closing_time"`
	SlotStepMinutes         int     `toml:"slot_step_minutes"`
	DefaultDurationMinutes  int     `toml:"default_duration_minutes"`
	AdvanceBookingDays      int     `toml:"advance_booking_days"`
	MinBookingNoticeMinutes int     `toml:"min_booking_notice_minutes"`
	RecommendationLimit     int     `toml:"recommendation_limit"`
	CollisionThreshold      float64 `toml:"collision_threshold"`
}

// Location часовой пояс ресторана
func (c BookingConfig) Location() (*time.Location, error) {
	return time.LoadLocation(c.Timezone)
}

func (c BookingConfig) DefaultPolicy() domain.BookingPolicy {
	return domain.BookingPolicy{
		OpeningTime:             types.TimeString(c.OpeningTime),
		ClosingTime:             types.TimeString(c.ClosingTime),
		SlotStepMinutes:         c.SlotStepMinutes,
		DefaultDurationMinutes:  c.DefaultDurationMinutes,
		AdvanceBookingDays:      c.AdvanceBookingDays,
		MinBookingNoticeMinutes: c.MinBookingNoticeMinutes,
	}
}

type CORSConfig struct {
	AllowedOrigins []string `toml:"allowed_origins"`
}

// RateLimitConfig лимит публичного приёма броней на клиента
type RateLimitConfig struct {
	Enabled           bool `toml:"enabled"`
	RequestsPerMinute int  `toml:"requests_per_minute"`
	Burst             int  `toml:"burst"`
}

// Переменные окружения с секретами
const (
	envDBPassword           = "DB_PASSWORD"
	envJWTSecret            = "JWT_SECRET"
	envRedisPassword        = "REDIS_PASSWORD"
	envBrokerURL            = "BROKER_URL"
	envCustomerServiceToken = "CUSTOMER_SERVICE_TOKEN"
)

// Load читает toml, затем .env (если есть) и переменные окружения
func Load(path string) (*Config, error) {
	cfg := defaults()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 30,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{Level: "info"},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "table-booking-service",
		},
		Redis: RedisConfig{
			Prefix:     "availability",
			TTLSeconds: 30,
		},
		CustomerService: CustomerServiceConfig{Timeout: 5},
		Booking: BookingConfig{
			Timezone:                "UTC",
			OpeningTime:             domain.DefaultOpeningTime,
			ClosingTime:             domain.DefaultClosingTime,
			SlotStepMinutes:         domain.DefaultSlotStepMinutes,
			DefaultDurationMinutes:  domain.DefaultDurationMinutes,
			AdvanceBookingDays:      domain.DefaultAdvanceBookingDays,
			MinBookingNoticeMinutes: domain.DefaultMinBookingNoticeMinutes,
			RecommendationLimit:     domain.DefaultRecommendationLimit,
			CollisionThreshold:      domain.DefaultCollisionThreshold,
		},
		RateLimit: RateLimitConfig{
			RequestsPerMinute: 30,
			Burst:             5,
		},
	}
}

func applyEnv(cfg *Config) {
	override(&cfg.Database.Password, envDBPassword)
	override(&cfg.Auth.JWTSecret, envJWTSecret)
	override(&cfg.Redis.Password, envRedisPassword)
	override(&cfg.Broker.URL, envBrokerURL)
	override(&cfg.CustomerService.Token, envCustomerServiceToken)
}

func override(dst *string, env string) {
	if v, ok := os.LookupEnv(env); ok && strings.TrimSpace(v) != "" {
		*dst = v
	}
}

// Validate проверяет то, без чего сервис не стартует
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("server.http_port: invalid port %d", c.Server.HTTPPort)
	}
	if c.Database.DBName == "" {
		return errors.New("database.dbname is required")
	}
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("auth.jwt_secret is required (or %s)", envJWTSecret)
	}
	if c.CustomerService.URL == "" {
		return errors.New("customer_service.url is required")
	}
	if _, err := c.Booking.Location(); err != nil {
		return fmt.Errorf("booking.timezone: %w", err)
	}
	if err := types.TimeString(c.Booking.OpeningTime).Validate(); err != nil {
		return fmt.Errorf("booking.opening_time: %w", err)
	}
	if err := types.TimeString(c.Booking.ClosingTime).Validate(); err != nil {
		return fmt.Errorf("booking.closing_time: %w", err)
	}
	if c.Booking.CollisionThreshold < 0 {
		return errors.New("booking.collision_threshold must not be negative")
	}
	if c.RateLimit.Enabled && c.RateLimit.RequestsPerMinute <= 0 {
		return errors.New("ratelimit.requests_per_minute must be positive")
	}
	return nil
}
