package config

import (
	"fmt"
	"time"
)

// RedisConfig backs the relayer nonce lock. An empty address disables the
// distributed lock and only the in-process lock is used.
type RedisConfig struct {
	Address string        `mapstructure:"address"`
	LockTTL time.Duration `mapstructure:"lock-ttl"`
}

func (cfg *RedisConfig) Enabled() bool {
	return cfg.Address != ""
}

func (cfg *RedisConfig) Validate() error {
	if !cfg.Enabled() {
		return nil
	}
	if cfg.LockTTL <= 0 {
		return fmt.Errorf("redis lock ttl must be positive")
	}
	return nil
}
