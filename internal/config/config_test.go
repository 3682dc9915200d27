package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suistake/bridge-saga-service/internal/config"
)

const localConfigPath = "../../config/config-local.yml"

func TestNewLoadsLocalConfig(t *testing.T) {
	cfg, err := config.New(localConfigPath)
	require.NoError(t, err)

	assert.Equal(t, []string{"base", "ethereum"}, cfg.Evm.ChainIDs())
	assert.Equal(t, int64(8453), cfg.Evm.Chains["base"].ChainId)
	assert.Equal(t, 10*time.Minute, cfg.Evm.ReceiptTimeout)
	assert.Equal(t, int32(5), cfg.Queue.MaxRetryAttempts)
	assert.Equal(t, time.Hour, cfg.Monitor.Interval)
	assert.False(t, cfg.Redis.Enabled())
	assert.Len(t, cfg.Sui.PreferredValidators, 2)
}

func TestNewEnvOverridesNestedKeys(t *testing.T) {
	t.Setenv("SAGA_MIN__STAKING__DAYS", "14")
	t.Setenv("QUEUE_QUEUE_USER", "saga")

	cfg, err := config.New(localConfigPath)
	require.NoError(t, err)
	assert.Equal(t, int64(14), cfg.Saga.MinStakingDays)
	assert.Equal(t, "saga", cfg.Queue.QueueUser)
}

func TestNewMissingFile(t *testing.T) {
	_, err := config.New("does-not-exist.yml")
	assert.Error(t, err)
}

func TestSagaConfigValidate(t *testing.T) {
	cfg := config.DefaultSagaConfig()
	require.NoError(t, cfg.Validate())

	cfg.MinStakingDays = 0
	assert.Error(t, cfg.Validate())
}

func TestEvmConfigValidate(t *testing.T) {
	valid := func() config.EvmConfig {
		return config.EvmConfig{
			Chains: map[string]config.EvmChainConfig{
				"ethereum": {
					ChainId:         1,
					RpcUrls:         []string{"http://localhost:8545"},
					EscrowAddress:   "0x0000000000000000000000000000000000000001",
					TokenBridge:     "0x3ee18B2214AFF97000D974cf647E7C347E8fa585",
					UsdcAddress:     "0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48",
					WormholeChainId: 2,
					RelayerKeyEnv:   "ETHEREUM_RELAYER_KEY",
				},
			},
			RequestTimeout:      time.Second,
			GasLimit:            600000,
			ReceiptPollInterval: time.Second,
			ReceiptTimeout:      time.Minute,
		}
	}
	cfg := valid()
	require.NoError(t, cfg.Validate())

	tests := []struct {
		name   string
		mutate func(*config.EvmConfig)
	}{
		{"no chains", func(c *config.EvmConfig) { c.Chains = nil }},
		{"bad escrow", func(c *config.EvmConfig) {
			chain := c.Chains["ethereum"]
			chain.EscrowAddress = "0x1234"
			c.Chains["ethereum"] = chain
		}},
		{"receipt timeout below poll", func(c *config.EvmConfig) { c.ReceiptTimeout = time.Millisecond }},
		{"zero gas limit", func(c *config.EvmConfig) { c.GasLimit = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestSuiConfigRequiresValidValidators(t *testing.T) {
	cfg := config.SuiConfig{
		RpcUrl:              "https://fullnode.mainnet.sui.io:443",
		RequestTimeout:      time.Second,
		UsdcCoinType:        "0x5d4b::coin::COIN",
		PreferredValidators: []string{"0xabc"},
		WormholeChainId:     21,
		WormholeEmitter:     "0xccce",
	}
	require.NoError(t, cfg.Validate())

	cfg.PreferredValidators = []string{"validator-1"}
	assert.ErrorContains(t, cfg.Validate(), "invalid preferred validator address")
}

func TestQueueConfigRejectsNegativeRetries(t *testing.T) {
	cfg := config.QueueConfig{
		QueueUser: "user", QueuePassword: "password", Url: "localhost:5672",
		QueueProcessingTimeout: 60, MaxRetryAttempts: -1,
	}
	assert.ErrorContains(t, cfg.Validate(), "max retry attempts")
}

func TestDbConfigValidate(t *testing.T) {
	tests := []struct {
		address string
		valid   bool
	}{
		{"mongodb://localhost:27017", true},
		{"mongodb+srv://cluster0.example.net", true},
		{"mongodb+srv://cluster0.example.net:27017", false},
		{"mongodb://localhost", false},
		{"mongodb://localhost:80", false},
		{"postgres://localhost:5432", false},
	}
	for _, tt := range tests {
		t.Run(tt.address, func(t *testing.T) {
			cfg := config.DbConfig{DbName: "saga", Address: tt.address, MaxPaginationLimit: 10}
			if tt.valid {
				assert.NoError(t, cfg.Validate())
			} else {
				assert.Error(t, cfg.Validate())
			}
		})
	}
}

func TestServerConfigAddr(t *testing.T) {
	cfg := config.ServerConfig{Host: "127.0.0.1", Port: 8090}
	assert.Equal(t, "127.0.0.1:8090", cfg.Addr())
	metrics := config.DefaultMetricsConfig()
	assert.Equal(t, "0.0.0.0:2112", metrics.Addr())
}
