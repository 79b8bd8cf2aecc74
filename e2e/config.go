package e2e

import (
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	// Addr of a running chat server, e.g. "localhost:8080".
	// Leave empty to skip the e2e suite.
	Addr      string `envconfig:"CHAT_ADDR"`
	JWTSecret string `envconfig:"CHAT_JWT_SECRET"`

	Colours bool `envconfig:"E2E_COLOURS" default:"true"`
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	return cfg, err
}
