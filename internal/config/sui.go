package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/suistake/bridge-saga-service/internal/utils"
)

type SuiConfig struct {
	RpcUrl         string        `mapstructure:"rpc-url"`
	RequestTimeout time.Duration `mapstructure:"request-timeout"`
	UsdcCoinType   string        `mapstructure:"usdc-coin-type"`
	// Validators are picked from this allow-list when any of them is active.
	PreferredValidators []string `mapstructure:"preferred-validators"`
	WormholeChainId     uint16   `mapstructure:"wormhole-chain-id"`
	// Hex token bridge emitter on Sui, used to look up return-leg VAAs.
	WormholeEmitter string `mapstructure:"wormhole-emitter"`
}

func (cfg *SuiConfig) Validate() error {
	if _, err := url.ParseRequestURI(cfg.RpcUrl); err != nil {
		return fmt.Errorf("invalid sui rpc url: %w", err)
	}
	if cfg.RequestTimeout <= 0 {
		return fmt.Errorf("sui request timeout must be positive")
	}
	if cfg.UsdcCoinType == "" {
		return fmt.Errorf("missing sui usdc coin type")
	}
	if len(cfg.PreferredValidators) == 0 {
		return fmt.Errorf("at least one preferred validator must be configured")
	}
	for _, v := range cfg.PreferredValidators {
		if !utils.IsValidSuiAddress(v) {
			return fmt.Errorf("invalid preferred validator address: %q", v)
		}
	}
	if cfg.WormholeChainId == 0 {
		return fmt.Errorf("missing sui wormhole chain id")
	}
	if cfg.WormholeEmitter == "" {
		return fmt.Errorf("missing sui wormhole emitter")
	}
	return nil
}
