package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

type Mode string

const (
	ModeLive Mode = "live"
	ModeMock Mode = "mock"
)

// placeholderValues are the sample values shipped in .env.example.
var placeholderValues = map[string]bool{
	"":                       true,
	"changeme":               true,
	"your_database_url_here": true,
	"your_db_password_here":  true,
}

type Config struct {
	Server   ServerConfig
	DB       DBConfig
	Redis    RedisConfig
	RabbitMQ RabbitMQConfig
	JWT      JWTConfig
	Store    StoreConfig
	Shop     ShopConfig
}

type ServerConfig struct {
	Port            int           `env:"SERVER_PORT" envDefault:"8080"`
	ReadTimeout     time.Duration `env:"SERVER_READ_TIMEOUT" envDefault:"10s"`
	WriteTimeout    time.Duration `env:"SERVER_WRITE_TIMEOUT" envDefault:"10s"`
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" envDefault:"10s"`
	AllowedOrigin   string        `env:"SERVER_ALLOWED_ORIGIN" envDefault:"http://localhost:3000"`
}

// DBConfig holds the PostgreSQL connection. URL wins over the discrete fields.
type DBConfig struct {
	URL      string `env:"DATABASE_URL"`
	Host     string `env:"DB_HOST"`
	Port     int    `env:"DB_PORT" envDefault:"5432"`
	User     string `env:"DB_USER" envDefault:"postgres"`
	Password string `env:"DB_PASSWORD"`
	Name     string `env:"DB_NAME" envDefault:"carcare"`
	SSLMode  string `env:"DB_SSLMODE" envDefault:"disable"`
	MaxConns int32  `env:"DB_MAX_CONNS" envDefault:"10"`
}

func (c DBConfig) DSN() string {
	if c.URL != "" {
		return c.URL
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.Name, c.SSLMode,
	)
}

// Configured reports whether real database credentials were supplied.
func (c DBConfig) Configured() bool {
	if !placeholderValues[strings.TrimSpace(c.URL)] {
		return true
	}
	return !placeholderValues[strings.TrimSpace(c.Host)] && !placeholderValues[strings.TrimSpace(c.Password)]
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR"`
	Password string `env:"REDIS_PASSWORD" envDefault:""`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
}

func (c RedisConfig) Enabled() bool { return c.Addr != "" }

type RabbitMQConfig struct {
	URL string `env:"RABBITMQ_URL"`
}

func (c RabbitMQConfig) Enabled() bool { return c.URL != "" }

type JWTConfig struct {
	Secret     string        `env:"JWT_SECRET" envDefault:"super-secret-key"`
	Expiration time.Duration `env:"JWT_EXPIRATION" envDefault:"24h"`
}

type StoreConfig struct {
	ForceMock   bool   `env:"STORE_FORCE_MOCK" envDefault:"false"`
	SessionFile string `env:"STORE_MOCK_SESSION_FILE" envDefault:".mock-session.json"`
}

type ShopConfig struct {
	AdminEmail        string        `env:"SHOP_ADMIN_EMAIL" envDefault:"admin@carpolish.com"`
	ProfileGrace      time.Duration `env:"SHOP_PROFILE_GRACE" envDefault:"2s"`
	DashboardCacheTTL time.Duration `env:"SHOP_DASHBOARD_CACHE_TTL" envDefault:"30s"`
	LoginRateLimit    int           `env:"SHOP_LOGIN_RATE_LIMIT" envDefault:"10"`
	LoginRateWindow   time.Duration `env:"SHOP_LOGIN_RATE_WINDOW" envDefault:"1m"`
}

// Mode picks the data backend: live only when not forced to mock and the
// database is actually configured.
func (c *Config) Mode() Mode {
	if c.Store.ForceMock || !c.DB.Configured() {
		return ModeMock
	}
	return ModeLive
}

// ModeReason explains Mode for the startup log line.
func (c *Config) ModeReason() string {
	switch {
	case c.Store.ForceMock:
		return "forced by STORE_FORCE_MOCK"
	case !c.DB.Configured():
		return "database credentials not configured"
	default:
		return "database configured"
	}
}

// Load reads an optional .env file and then parses the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	return Parse()
}

// Parse reads the configuration from the process environment only.
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}
