package config

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Backend names accepted by the *_BACKEND variables.
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
	BackendMongo  = "mongo"
)

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`
	LogPretty bool   `env:"LOG_PRETTY, default=false"`

	Auth    AuthConfig
	Session SessionConfig
	Mongo   MongoConfig
	Redis   RedisConfig
}

type AuthConfig struct {
	JWTSecret string        `env:"JWT_SECRET"`
	TokenTTL  time.Duration `env:"TOKEN_TTL,        default=24h"`
	Accounts  string        `env:"ACCOUNTS_BACKEND, default=memory"`
	SeedDemo  bool          `env:"SEED_DEMO_ACCOUNTS, default=true"`
}

type SessionConfig struct {
	// Backend of the session-scoped tier: memory or redis.
	Backend string `env:"SESSION_BACKEND, default=memory"`

	// DurableBackend of the durable tier: memory or mongo.
	DurableBackend string `env:"DURABLE_BACKEND, default=memory"`

	TabTTL          time.Duration `env:"SESSION_TAB_TTL,   default=12h"`
	DeviceCookieTTL time.Duration `env:"DEVICE_COOKIE_TTL, default=720h"`
	CookieSecure    bool          `env:"COOKIE_SECURE,     default=false"`

	// SweepInterval is how often durable records older than DeviceCookieTTL
	// are pruned.
	SweepInterval time.Duration `env:"SESSION_SWEEP_INTERVAL, default=1h"`
}

type MongoConfig struct {
	URI string `env:"MONGO_URI, default=mongodb://localhost:27017"`

	// Database falls back to the URI path, then to steel_dashboard.
	Database string `env:"MONGO_DB"`

	MaxPoolSize uint64        `env:"MONGO_MAX_POOL_SIZE, default=100"`
	Timeout     time.Duration `env:"MONGO_TIMEOUT,       default=10s"`
}

type RedisConfig struct {
	// URL overrides REDIS_ADDR, REDIS_PASSWORD and REDIS_DB when set.
	URL string `env:"REDIS_URL"`

	Addr     string        `env:"REDIS_ADDR,      default=localhost:6379"`
	Password string        `env:"REDIS_PASSWORD"`
	DB       int           `env:"REDIS_DB,        default=0"`
	PoolSize int           `env:"REDIS_POOL_SIZE, default=0"`
	Timeout  time.Duration `env:"REDIS_TIMEOUT,   default=5s"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

// UsesMongo reports whether any component needs a MongoDB connection.
func (c *Config) UsesMongo() bool {
	return c.Session.DurableBackend == BackendMongo || c.Auth.Accounts == BackendMongo
}

// UsesRedis reports whether any component needs a Redis connection.
func (c *Config) UsesRedis() bool {
	return c.Session.Backend == BackendRedis
}

func (c *Config) validate() error {
	var errs []error
	if c.Auth.JWTSecret == "" && c.Env != "development" {
		errs = append(errs, errors.New("JWT_SECRET is required outside development"))
	}
	if b := c.Session.Backend; b != BackendMemory && b != BackendRedis {
		errs = append(errs, fmt.Errorf("SESSION_BACKEND %q: want memory or redis", b))
	}
	if b := c.Session.DurableBackend; b != BackendMemory && b != BackendMongo {
		errs = append(errs, fmt.Errorf("DURABLE_BACKEND %q: want memory or mongo", b))
	}
	if b := c.Auth.Accounts; b != BackendMemory && b != BackendMongo {
		errs = append(errs, fmt.Errorf("ACCOUNTS_BACKEND %q: want memory or mongo", b))
	}
	return errors.Join(errs...)
}
