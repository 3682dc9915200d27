package healthcheck

import (
	"context"
	"fmt"
	"os"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var logger zerolog.Logger = log.Logger

// terminate is swapped in tests so a failing check does not exit the process.
var terminate = func() {
	logger.Fatal().Msg("Terminating service due to health check failure.")
	os.Exit(1)
}

// Check is a named liveness probe. A failing check terminates the service so
// the orchestrator restarts it with fresh connections.
type Check struct {
	Name  string
	Probe func() error
}

func SetLogger(customLogger zerolog.Logger) {
	logger = customLogger
}

func StartHealthCheckCron(ctx context.Context, cronTime int, checks ...Check) error {
	c := cron.New()
	logger.Info().Msg("Initiated Health Check Cron")

	if cronTime == 0 {
		cronTime = 60
	}

	cronSpec := fmt.Sprintf("@every %ds", cronTime)

	_, err := c.AddFunc(cronSpec, func() {
		runChecks(checks)
	})
	if err != nil {
		return err
	}

	c.Start()

	go func() {
		<-ctx.Done()
		logger.Info().Msg("Stopping Health Check Cron")
		c.Stop()
	}()

	return nil
}

func runChecks(checks []Check) {
	for _, check := range checks {
		if err := check.Probe(); err != nil {
			logger.Error().Err(err).Str("check", check.Name).Msg("Health check failed.")
			terminate()
			return
		}
	}
}
