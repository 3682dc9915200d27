package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Db        DbConfig        `mapstructure:"db"`
	Queue     QueueConfig     `mapstructure:"queue"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Evm       EvmConfig       `mapstructure:"evm"`
	Sui       SuiConfig       `mapstructure:"sui"`
	Relayer   RelayerConfig   `mapstructure:"relayer"`
	BridgeApi BridgeApiConfig `mapstructure:"bridge-api"`
	Saga      SagaConfig      `mapstructure:"saga"`
	Monitor   MonitorConfig   `mapstructure:"monitor"`
}

type validator interface {
	Validate() error
}

// Validate checks every section. Sections are validated in dependency order,
// the first failure wins.
func (cfg *Config) Validate() error {
	sections := []struct {
		name string
		v    validator
	}{
		{"server", &cfg.Server},
		{"db", &cfg.Db},
		{"metrics", &cfg.Metrics},
		{"queue", &cfg.Queue},
		{"redis", &cfg.Redis},
		{"evm", &cfg.Evm},
		{"sui", &cfg.Sui},
		{"relayer", &cfg.Relayer},
		{"bridge-api", &cfg.BridgeApi},
		{"saga", &cfg.Saga},
		{"monitor", &cfg.Monitor},
	}
	for _, section := range sections {
		if err := section.v.Validate(); err != nil {
			return fmt.Errorf("invalid %s config: %w", section.name, err)
		}
	}
	return nil
}

// New returns a fully parsed Config object from a given file directory
func New(cfgFile string) (*Config, error) {
	_, err := os.Stat(cfgFile)
	if err != nil {
		return nil, err
	}

	viper.SetConfigFile(cfgFile)

	viper.AutomaticEnv()
	/*
		Below code will replace nested fields in yml into `_` and any `-` into `__` when you try to override this config via env variable
		To give an example:
		1. `some.config.a` can be overriden by `SOME_CONFIG_A`
		2. `some.config-a` can be overriden by `SOME_CONFIG__A`
		This is to avoid using `-` in the environment variable as it's not supported in all os terminal/bash
		Note: vipner package use `.` as delimitter by default. Read more here: https://pkg.go.dev/github.com/spf13/viper#readme-accessing-nested-keys
	*/
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "__"))

	err = viper.ReadInConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err = viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	if err = cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}
