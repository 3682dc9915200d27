package config

import (
	"fmt"
	"net/url"
	"time"
)

type RelayerConfig struct {
	Url       string        `mapstructure:"url"`
	ApiKeyEnv string        `mapstructure:"api-key-env"`
	Timeout   time.Duration `mapstructure:"timeout"`
}

func (cfg *RelayerConfig) Validate() error {
	if _, err := url.ParseRequestURI(cfg.Url); err != nil {
		return fmt.Errorf("invalid relayer url: %w", err)
	}
	if cfg.Timeout <= 0 {
		return fmt.Errorf("relayer timeout must be positive")
	}
	return nil
}
