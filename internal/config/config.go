package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Addr         string        `env:"ADDR" envDefault:":8080"`
	DatabasePath string        `env:"DATABASE_PATH" envDefault:"liga.db"`
	JWTSecret    string        `env:"JWT_SECRET" envDefault:"change-me-in-production"`
	TokenTTL     time.Duration `env:"TOKEN_TTL" envDefault:"168h"`
	CORSOrigins  []string      `env:"CORS_ORIGINS" envSeparator:"," envDefault:"*"`

	AdminUsername string `env:"ADMIN_USERNAME" envDefault:"admin"`
	AdminPassword string `env:"ADMIN_PASSWORD" envDefault:"admin123"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
