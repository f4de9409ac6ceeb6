// Package config loads service configuration from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Store backends.
const (
	StoreArango = "arango"
	StoreMemory = "memory"
)

// Config is the full service configuration.
type Config struct {
	Port     string `env:"MS_PORT" envDefault:"3000"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	Store    string `env:"GOVERNANCE_STORE" envDefault:"arango"`
	SeedPath string `env:"GOVERNANCE_SEED_PATH" envDefault:"/etc/governance/seed.yaml"`

	JWTSecret string        `env:"JWT_SECRET" envDefault:"your-secret-key-change-this-in-production"`
	JWTTTL    time.Duration `env:"JWT_TTL" envDefault:"24h"`

	Arango Arango
	Kafka  Kafka

	CORSOrigins string `env:"CORS_ORIGINS" envDefault:"http://localhost:3000,http://localhost:4000"`
}

// Arango holds the document store connection settings.
type Arango struct {
	Host     string `env:"ARANGO_HOST" envDefault:"localhost"`
	Port     string `env:"ARANGO_PORT" envDefault:"8529"`
	User     string `env:"ARANGO_USER" envDefault:"root"`
	Pass     string `env:"ARANGO_PASS" envDefault:"mypassword"`
	URL      string `env:"ARANGO_URL"`
	Database string `env:"ARANGO_DATABASE" envDefault:"governance"`
}

// Endpoint returns URL, or one built from Host and Port.
func (a Arango) Endpoint() string {
	if a.URL != "" {
		return a.URL
	}
	return "http://" + a.Host + ":" + a.Port
}

// Kafka holds the broker settings. No brokers disables messaging.
type Kafka struct {
	Brokers      []string `env:"KAFKA_BROKERS" envSeparator:","`
	APIKey       string   `env:"KAFKA_API_KEY"`
	APISecret    string   `env:"KAFKA_API_SECRET"`
	EventsTopic  string   `env:"KAFKA_EVENTS_TOPIC" envDefault:"governance-events"`
	DepositTopic string   `env:"KAFKA_DEPOSIT_TOPIC" envDefault:"treasury-deposits"`
	GroupID      string   `env:"KAFKA_GROUP_ID" envDefault:"governance-backend-worker"`
}

// Enabled reports whether any broker is configured.
func (k Kafka) Enabled() bool {
	return len(k.Brokers) > 0
}

// Load parses the environment into a Config.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.Store != StoreArango && cfg.Store != StoreMemory {
		return Config{}, fmt.Errorf("unknown GOVERNANCE_STORE %q", cfg.Store)
	}
	return cfg, nil
}
