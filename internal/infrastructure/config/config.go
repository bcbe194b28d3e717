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

	Backend BackendConfig
	Session SessionConfig
	Drafts  DraftConfig
	Nav     NavConfig
}

// BackendConfig points the portal at the green-lending REST API.
type BackendConfig struct {
	BaseURL string        `env:"API_BASE_URL, default=http://localhost:8000"`
	Timeout time.Duration `env:"API_TIMEOUT,  default=10s"`
}

type SessionConfig struct {
	Secret string        `env:"SESSION_SECRET"`
	TTL    time.Duration `env:"SESSION_TTL, default=12h"`
}

// DraftConfig selects where form drafts are kept. Store is "redis",
// "mongo" or "memory"; memory drops drafts on restart and suits
// single-node dev runs.
type DraftConfig struct {
	Store string `env:"DRAFT_STORE, default=redis"`
	Redis RedisConfig
	Mongo MongoConfig
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI,      default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DATABASE, default=glc_portal"`
}

// NavConfig sets the per-role landing pages and how long an idle portal
// visit keeps its navigation state server-side.
type NavConfig struct {
	LenderHome   string        `env:"LENDER_HOME,   default=dashboard"`
	BorrowerHome string        `env:"BORROWER_HOME, default=my-applications"`
	VisitTTL     time.Duration `env:"VISIT_TTL,     default=2h"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
