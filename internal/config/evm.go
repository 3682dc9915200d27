package config

import (
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// EvmChainConfig describes one source chain the escrow contract is deployed on.
type EvmChainConfig struct {
	ChainId         int64    `mapstructure:"chain-id"`
	RpcUrls         []string `mapstructure:"rpc-urls"`
	EscrowAddress   string   `mapstructure:"escrow-address"`
	TokenBridge     string   `mapstructure:"token-bridge-address"`
	UsdcAddress     string   `mapstructure:"usdc-address"`
	WormholeChainId uint16   `mapstructure:"wormhole-chain-id"`
	// Name of the env variable holding the relayer private key (hex).
	RelayerKeyEnv string `mapstructure:"relayer-key-env"`
}

type EvmConfig struct {
	Chains         map[string]EvmChainConfig `mapstructure:"chains"`
	RequestTimeout time.Duration             `mapstructure:"request-timeout"`
	GasLimit       uint64                    `mapstructure:"gas-limit"`
	// Receipt polling used when waiting on relayer transactions.
	ReceiptPollInterval time.Duration `mapstructure:"receipt-poll-interval"`
	ReceiptTimeout      time.Duration `mapstructure:"receipt-timeout"`
}

func (c *EvmChainConfig) RelayerKey() string {
	return os.Getenv(c.RelayerKeyEnv)
}

func (cfg *EvmConfig) Validate() error {
	if len(cfg.Chains) == 0 {
		return fmt.Errorf("at least one evm chain must be configured")
	}
	for name, chain := range cfg.Chains {
		if chain.ChainId <= 0 {
			return fmt.Errorf("evm chain %s: invalid chain id", name)
		}
		if len(chain.RpcUrls) == 0 {
			return fmt.Errorf("evm chain %s: missing rpc urls", name)
		}
		for field, addr := range map[string]string{
			"escrow-address":       chain.EscrowAddress,
			"token-bridge-address": chain.TokenBridge,
			"usdc-address":         chain.UsdcAddress,
		} {
			if !common.IsHexAddress(addr) {
				return fmt.Errorf("evm chain %s: invalid %s: %q", name, field, addr)
			}
		}
		if chain.WormholeChainId == 0 {
			return fmt.Errorf("evm chain %s: missing wormhole chain id", name)
		}
		if chain.RelayerKeyEnv == "" {
			return fmt.Errorf("evm chain %s: missing relayer key env", name)
		}
	}
	if cfg.RequestTimeout <= 0 {
		return fmt.Errorf("evm request timeout must be positive")
	}
	if cfg.GasLimit == 0 {
		return fmt.Errorf("evm gas limit must be positive")
	}
	if cfg.ReceiptPollInterval <= 0 {
		return fmt.Errorf("evm receipt poll interval must be positive")
	}
	if cfg.ReceiptTimeout < cfg.ReceiptPollInterval {
		return fmt.Errorf("evm receipt timeout must not be shorter than the poll interval")
	}
	return nil
}

// ChainIDs returns the configured chain keys in a stable order.
func (cfg *EvmConfig) ChainIDs() []string {
	ids := make([]string, 0, len(cfg.Chains))
	for id := range cfg.Chains {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
