package config

import (
	"fmt"
	"time"
)

type MonitorConfig struct {
	Interval        time.Duration `mapstructure:"interval"`
	AutoStart       bool          `mapstructure:"auto-start"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown-timeout"`
}

func (cfg *MonitorConfig) Validate() error {
	if cfg.Interval < time.Second {
		return fmt.Errorf("monitor interval must be at least one second")
	}
	if cfg.ShutdownTimeout <= 0 {
		return fmt.Errorf("monitor shutdown timeout must be positive")
	}
	return nil
}
