package config

import (
	"fmt"
	"time"
)

type SagaConfig struct {
	BridgePollInterval time.Duration `mapstructure:"bridge-poll-interval"`
	BridgeTimeout      time.Duration `mapstructure:"bridge-timeout"`
	VaaPollInterval    time.Duration `mapstructure:"vaa-poll-interval"`
	VaaTimeout         time.Duration `mapstructure:"vaa-timeout"`
	AnnualRate         float64       `mapstructure:"annual-rate"`
	MinStakingDays     int64         `mapstructure:"min-staking-days"`
	NativeDecimals     int32         `mapstructure:"native-decimals"`
}

func DefaultSagaConfig() SagaConfig {
	return SagaConfig{
		BridgePollInterval: 30 * time.Second,
		BridgeTimeout:      30 * time.Minute,
		VaaPollInterval:    30 * time.Second,
		VaaTimeout:         20 * time.Minute,
		AnnualRate:         0.05,
		MinStakingDays:     7,
		NativeDecimals:     9,
	}
}

func (cfg *SagaConfig) Validate() error {
	if cfg.BridgePollInterval <= 0 || cfg.VaaPollInterval <= 0 {
		return fmt.Errorf("saga poll intervals must be positive")
	}
	if cfg.BridgeTimeout < cfg.BridgePollInterval {
		return fmt.Errorf("bridge timeout must be at least one poll interval")
	}
	if cfg.VaaTimeout < cfg.VaaPollInterval {
		return fmt.Errorf("vaa timeout must be at least one poll interval")
	}
	if cfg.AnnualRate <= 0 || cfg.AnnualRate >= 1 {
		return fmt.Errorf("annual rate must be between 0 and 1")
	}
	if cfg.MinStakingDays <= 0 {
		return fmt.Errorf("min staking days must be positive")
	}
	if cfg.NativeDecimals < 0 {
		return fmt.Errorf("native decimals cannot be negative")
	}
	return nil
}
