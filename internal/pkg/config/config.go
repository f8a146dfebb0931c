package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Session SessionConfig
	Store   StoreConfig
	Mongo   MongoConfig
	Redis   RedisConfig
	Insight InsightConfig
}

// SessionConfig signs the bearer tokens handed out at login and signup.
type SessionConfig struct {
	Secret string        `env:"SESSION_SECRET"`
	TTL    time.Duration `env:"SESSION_TTL, default=24h"`
}

// StoreConfig selects where the state document lives.
type StoreConfig struct {
	Driver         string `env:"STORE_DRIVER,           default=file"`
	Key            string `env:"STORE_KEY,              default=accountability_tracker_state"`
	FileDir        string `env:"STORE_FILE_DIR,         default=./data"`
	ResetOnCorrupt bool   `env:"STORE_RESET_ON_CORRUPT, default=false"`
	SeedFile       string `env:"SEED_FILE"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=accountability_tracker"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// InsightConfig drives the text-generation collaborator. An empty APIKey
// disables it and every insight falls back to a fixed text.
type InsightConfig struct {
	Cache   string        `env:"INSIGHT_CACHE,   default=memory"`
	APIKey  string        `env:"GEMINI_API_KEY"`
	Model   string        `env:"GEMINI_MODEL,    default=gemini-2.0-flash"`
	Timeout time.Duration `env:"INSIGHT_TIMEOUT, default=15s"`
	Workers int           `env:"INSIGHT_WORKERS, default=2"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	cfg, err := LoadFrom(context.Background(), envconfig.OsLookuper())
	if err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return cfg
}

// LoadFrom reads configuration through lookuper and validates it.
func LoadFrom(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.Store.Driver {
	case "file", "redis", "mongo":
	default:
		return fmt.Errorf("STORE_DRIVER must be file, redis or mongo, got %q", c.Store.Driver)
	}
	switch c.Insight.Cache {
	case "memory", "redis":
	default:
		return fmt.Errorf("INSIGHT_CACHE must be memory or redis, got %q", c.Insight.Cache)
	}
	if c.Session.Secret == "" && c.Env == "production" {
		return fmt.Errorf("SESSION_SECRET is required in production")
	}
	if c.Session.TTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive")
	}
	return nil
}

// IsDevelopment reports whether pretty console logging should be used.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}
