package config

import (
	"fmt"
)

type QueueConfig struct {
	QueueUser              string `mapstructure:"queue_user"`
	QueuePassword          string `mapstructure:"queue_password"`
	Url                    string `mapstructure:"url"`
	QueueProcessingTimeout int    `mapstructure:"processing_timeout"`
	// Deliveries beyond this are parked as unprocessable messages.
	MaxRetryAttempts int32 `mapstructure:"max_retry_attempts"`
}

func (cfg *QueueConfig) Validate() error {
	if cfg.QueueUser == "" {
		return fmt.Errorf("missing queue user")
	}

	if cfg.QueuePassword == "" {
		return fmt.Errorf("missing queue password")
	}

	if cfg.Url == "" {
		return fmt.Errorf("missing queue url")
	}

	// Sagas wait on bridges for tens of minutes, the timeout covers a whole run.
	if cfg.QueueProcessingTimeout <= 0 {
		return fmt.Errorf("invalid queue processing timeout")
	}
	if cfg.MaxRetryAttempts < 0 {
		return fmt.Errorf("queue max retry attempts cannot be negative")
	}

	return nil
}
