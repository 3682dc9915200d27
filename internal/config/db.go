package config

import (
	"fmt"
	"net/url"
	"strconv"
)

type DbConfig struct {
	DbName             string `mapstructure:"db-name"`
	Address            string `mapstructure:"address"`
	MaxPaginationLimit int64  `mapstructure:"max-pagination-limit"`
}

// Validate accepts mongodb:// addresses with an explicit port and
// mongodb+srv:// addresses, which resolve hosts and ports through DNS.
func (cfg *DbConfig) Validate() error {
	if cfg.DbName == "" {
		return fmt.Errorf("missing db name")
	}
	if cfg.Address == "" {
		return fmt.Errorf("missing db address")
	}
	u, err := url.Parse(cfg.Address)
	if err != nil {
		return fmt.Errorf("invalid db address: %w", err)
	}
	if u.Hostname() == "" {
		return fmt.Errorf("missing host in db address")
	}

	switch u.Scheme {
	case "mongodb+srv":
		if u.Port() != "" {
			return fmt.Errorf("mongodb+srv address must not carry a port")
		}
	case "mongodb":
		portNum, err := strconv.Atoi(u.Port())
		if err != nil {
			return fmt.Errorf("invalid or missing port in db address: %q", u.Port())
		}
		if portNum < 1024 || portNum > 65535 {
			return fmt.Errorf("port number must be between 1024 and 65535 (inclusive)")
		}
	default:
		return fmt.Errorf("unsupported db scheme: %s", u.Scheme)
	}

	// Position pages are newest first, a page of one would make the
	// continuation token the only content.
	if cfg.MaxPaginationLimit < 2 {
		return fmt.Errorf("max pagination limit must be greater than 1")
	}
	return nil
}
