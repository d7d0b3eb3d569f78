package config

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Store backends.
const (
	StoreMemory = "memory"
	StoreRedis  = "redis"
	StoreMongo  = "mongo"
)

// External opener modes.
const (
	OpenerSystem = "system"
	OpenerLog    = "log"
)

type Config struct {
	Env        string `env:"SHELL_ENV,       default=development"`
	HTTPAddr   string `env:"SHELL_HTTP_ADDR, default=127.0.0.1:8090"`
	LogLevel   string `env:"LOG_LEVEL,       default=info"`
	AppVersion string `env:"APP_VERSION,     default=1.0"`
	DevHost    string `env:"DEV_HOST,        default=localhost"`
	Opener     string `env:"EXTERNAL_OPENER, default=log"`

	API       APIConfig
	Store     StoreConfig
	Provision ProvisionConfig
}

type APIConfig struct {
	BaseURL          string        `env:"API_BASE_URL,       default=http://localhost:8080/api"`
	AuthPath         string        `env:"AUTH_PATH,          default=/auth"`
	BillsPaymentPath string        `env:"BILLS_PAYMENT_PATH, default=/bills-payment/v1"`
	SeedDemoPath     string        `env:"SEED_DEMO_PATH,     default=/bills/seed-demo"`
	Timeout          time.Duration `env:"HTTP_TIMEOUT,       default=30s"`
	RetryMax         int           `env:"HTTP_RETRY_MAX,     default=2"`
}

type StoreConfig struct {
	Backend string `env:"STORE_BACKEND, default=memory"`

	Redis RedisConfig
	Mongo MongoConfig
}

type RedisConfig struct {
	Addr      string `env:"REDIS_ADDR,       default=localhost:6379"`
	DB        int    `env:"REDIS_DB,         default=0"`
	KeyPrefix string `env:"REDIS_KEY_PREFIX, default=hybrid-shell:session:"`
}

type MongoConfig struct {
	URI        string `env:"MONGO_URI,        default=mongodb://localhost:27017"`
	Database   string `env:"MONGO_DB,         default=hybrid_shell"`
	Collection string `env:"MONGO_COLLECTION, default=session_mirror"`
}

type ProvisionConfig struct {
	Enabled bool          `env:"PROVISION_ENABLED, default=true"`
	Workers int           `env:"PROVISION_WORKERS, default=1"`
	Timeout time.Duration `env:"PROVISION_TIMEOUT, default=10s"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	var errs []error

	base, err := url.Parse(c.API.BaseURL)
	if err != nil || base.Scheme == "" || base.Host == "" {
		errs = append(errs, fmt.Errorf("API_BASE_URL %q is not an absolute url", c.API.BaseURL))
	} else if c.Production() && base.Scheme != "https" {
		errs = append(errs, errors.New("API_BASE_URL must use https in production"))
	}

	switch c.Store.Backend {
	case StoreMemory, StoreRedis, StoreMongo:
	default:
		errs = append(errs, fmt.Errorf("STORE_BACKEND %q: want memory, redis or mongo", c.Store.Backend))
	}

	switch c.Opener {
	case OpenerSystem, OpenerLog:
	default:
		errs = append(errs, fmt.Errorf("EXTERNAL_OPENER %q: want system or log", c.Opener))
	}

	return errors.Join(errs...)
}

func (c *Config) Production() bool {
	switch strings.ToLower(c.Env) {
	case "production", "prod":
		return true
	}
	return false
}

// UserAgent is sent on remote calls and handed to content views.
func (c *Config) UserAgent() string {
	return "EWBMobile-Shell/" + c.AppVersion
}

func (c *Config) AuthBaseURL() string {
	return joinURL(c.API.BaseURL, c.API.AuthPath)
}

func (c *Config) BillsPaymentBaseURL() string {
	return joinURL(c.API.BaseURL, c.API.BillsPaymentPath)
}

// DevAuthConfig configures the development auth and module server.
type DevAuthConfig struct {
	Addr      string        `env:"DEVAUTH_ADDR,      default=:8080"`
	JWTSecret string        `env:"JWT_SECRET,        required"`
	TokenTTL  time.Duration `env:"DEVAUTH_TOKEN_TTL, default=24h"`
	LogLevel  string        `env:"LOG_LEVEL,         default=info"`
	Env       string        `env:"SHELL_ENV,         default=development"`
}

func LoadDevAuth(ctx context.Context) (*DevAuthConfig, error) {
	var cfg DevAuthConfig
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

func joinURL(base, path string) string {
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(path, "/")
}
