package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds all service configuration, parsed from environment variables.
type Config struct {
	HTTPAddr string `env:"HTTP_ADDR" envDefault:":5000"`

	Mongo MongoConfig
	Token TokenConfig
}

// MongoConfig holds the document-store connection settings.
type MongoConfig struct {
	URI      string `env:"MONGO_URI"`
	Database string `env:"MONGO_DATABASE" envDefault:"foodshare"`
}

// TokenConfig holds the bearer-credential signing settings.
type TokenConfig struct {
	Secret    string        `env:"TOKEN_SECRET"`
	ExpiresIn time.Duration `env:"TOKEN_EXPIRES_IN" envDefault:"24h"`
	Issuer    string        `env:"TOKEN_ISSUER"     envDefault:"foodshare-api"`
}

// Parse creates a Config instance from environment variables.
func Parse() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// validate checks that required settings are present.
func (c *Config) validate() error {
	if c.Mongo.URI == "" {
		return fmt.Errorf("missing MONGO_URI environment variable")
	}
	if c.Token.Secret == "" {
		return fmt.Errorf("missing TOKEN_SECRET environment variable")
	}

	return nil
}
