package config

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/rs/zerolog"
)

// ServerConfig is the public HTTP surface. Submissions are asynchronous, so
// the timeouts only bound request handling, never a saga.
type ServerConfig struct {
	Host                string        `mapstructure:"host"`
	Port                int           `mapstructure:"port"`
	WriteTimeout        time.Duration `mapstructure:"write-timeout"`
	ReadTimeout         time.Duration `mapstructure:"read-timeout"`
	IdleTimeout         time.Duration `mapstructure:"idle-timeout"`
	AllowedOrigins      []string      `mapstructure:"allowed-origins"`
	LogLevel            string        `mapstructure:"log-level"`
	MaxContentLength    int64         `mapstructure:"max-content-length"`
	HealthCheckInterval int           `mapstructure:"health-check-interval"`
}

func (cfg *ServerConfig) Addr() string {
	return net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))
}

func (cfg *ServerConfig) Validate() error {
	if net.ParseIP(cfg.Host) == nil {
		return fmt.Errorf("invalid host: %v", cfg.Host)
	}
	if cfg.Port < 0 || cfg.Port > 65535 {
		return errors.New("invalid port")
	}

	for name, d := range map[string]time.Duration{
		"write": cfg.WriteTimeout,
		"read":  cfg.ReadTimeout,
		"idle":  cfg.IdleTimeout,
	} {
		if d < 0 {
			return fmt.Errorf("%s timeout cannot be negative", name)
		}
	}

	if len(cfg.AllowedOrigins) == 0 {
		return errors.New("at least one allowed origin must be configured")
	}
	// A stake request is three short fields.
	if cfg.MaxContentLength <= 0 {
		return errors.New("max content length must be a positive integer")
	}
	if cfg.HealthCheckInterval <= 0 {
		return errors.New("health check interval must be a positive integer")
	}

	return cfg.ValidateServerLogLevel()
}

// ValidateServerLogLevel accepts an empty level, which leaves the zerolog default.
func (cfg *ServerConfig) ValidateServerLogLevel() error {
	if cfg.LogLevel == "" {
		return nil
	}
	parsedLevel, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	if parsedLevel < zerolog.DebugLevel || parsedLevel > zerolog.FatalLevel {
		return fmt.Errorf("only log levels from debug to fatal are supported")
	}
	return nil
}
