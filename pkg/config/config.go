package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"
)

// EnvPrefix namespaces every gateway environment variable.
const EnvPrefix = "SMARTSHOP"

// Environment variable names shared with tests and deployment manifests.
const (
	EnvAppEnv        = "SMARTSHOP_APP_ENV"
	EnvPort          = "SMARTSHOP_APP_PORT"
	EnvUpstreamURL   = "SMARTSHOP_UPSTREAM_BASE_URL"
	EnvRedisURL      = "SMARTSHOP_REDIS_URL"
	EnvSessionSecret = "SMARTSHOP_SESSION_SECRET"
	EnvSessionIssuer = "SMARTSHOP_SESSION_ISSUER"
	EnvCartTaxRate   = "SMARTSHOP_CART_TAX_RATE"
)

const (
	AppEnvDev  = "dev"
	AppEnvProd = "production"
)

type Config struct {
	App      AppConfig
	Upstream UpstreamConfig
	Redis    RedisConfig
	Session  SessionConfig
	Cart     CartConfig
	CORS     CORSConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if _, err := cfg.Cart.Rate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"SMARTSHOP_APP_ENV" required:"true"`
	Port         string `envconfig:"SMARTSHOP_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"SMARTSHOP_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"SMARTSHOP_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// UpstreamConfig locates the SmartShop commerce API the gateway brokers to.
type UpstreamConfig struct {
	BaseURL       string        `envconfig:"SMARTSHOP_UPSTREAM_BASE_URL" required:"true"`
	Timeout       time.Duration `envconfig:"SMARTSHOP_UPSTREAM_TIMEOUT" default:"10s"`
	RetryAttempts int           `envconfig:"SMARTSHOP_UPSTREAM_RETRY_ATTEMPTS" default:"3"`
	RetryBaseWait time.Duration `envconfig:"SMARTSHOP_UPSTREAM_RETRY_BASE_WAIT" default:"250ms"`
}

type RedisConfig struct {
	URL          string        `envconfig:"SMARTSHOP_REDIS_URL" required:"true"`
	Address      string        `envconfig:"SMARTSHOP_REDIS_ADDR"`
	Password     string        `envconfig:"SMARTSHOP_REDIS_PASSWORD"`
	DB           int           `envconfig:"SMARTSHOP_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"SMARTSHOP_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"SMARTSHOP_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"SMARTSHOP_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"SMARTSHOP_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"SMARTSHOP_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// SessionConfig governs the browser-facing session cookie and its cached copy.
type SessionConfig struct {
	Secret     string `envconfig:"SMARTSHOP_SESSION_SECRET" required:"true"`
	Issuer     string `envconfig:"SMARTSHOP_SESSION_ISSUER" required:"true"`
	CookieName string `envconfig:"SMARTSHOP_SESSION_COOKIE_NAME" default:"smartshop_session"`
	TTLMinutes int    `envconfig:"SMARTSHOP_SESSION_TTL_MINUTES" default:"10080"`
	Secure     bool   `envconfig:"SMARTSHOP_SESSION_COOKIE_SECURE" default:"true"`
}

// TTL returns the session lifetime configured in minutes.
func (s SessionConfig) TTL() time.Duration {
	if s.TTLMinutes <= 0 {
		return 0
	}
	return time.Duration(s.TTLMinutes) * time.Minute
}

// CartConfig carries the checkout tax rate applied on top of the cart subtotal.
type CartConfig struct {
	TaxRate       string        `envconfig:"SMARTSHOP_CART_TAX_RATE" default:"0.20"`
	SubmitLockTTL time.Duration `envconfig:"SMARTSHOP_CART_SUBMIT_LOCK_TTL" default:"30s"`
}

// Rate parses the configured tax rate into an exact decimal.
func (c CartConfig) Rate() (decimal.Decimal, error) {
	rate, err := decimal.NewFromString(strings.TrimSpace(c.TaxRate))
	if err != nil {
		return decimal.Zero, fmt.Errorf("parsing %s: %w", EnvCartTaxRate, err)
	}
	if rate.IsNegative() {
		return decimal.Zero, fmt.Errorf("%s must not be negative", EnvCartTaxRate)
	}
	return rate, nil
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"SMARTSHOP_CORS_ALLOWED_ORIGINS" default:"http://localhost:5173"`
}
