package config

import (
	"fmt"
	"net/url"
	"time"
)

type BridgeApiConfig struct {
	StatusUrl   string        `mapstructure:"status-url"`
	GuardianUrl string        `mapstructure:"guardian-url"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

func (cfg *BridgeApiConfig) Validate() error {
	if _, err := url.ParseRequestURI(cfg.StatusUrl); err != nil {
		return fmt.Errorf("invalid bridge status url: %w", err)
	}
	if _, err := url.ParseRequestURI(cfg.GuardianUrl); err != nil {
		return fmt.Errorf("invalid guardian url: %w", err)
	}
	if cfg.Timeout <= 0 {
		return fmt.Errorf("bridge api timeout must be positive")
	}
	return nil
}
