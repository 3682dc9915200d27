package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/suistake/bridge-saga-service/cmd/bridge-saga-service/cli"
	"github.com/suistake/bridge-saga-service/cmd/bridge-saga-service/scripts"
	"github.com/suistake/bridge-saga-service/internal/api"
	"github.com/suistake/bridge-saga-service/internal/clients"
	"github.com/suistake/bridge-saga-service/internal/config"
	"github.com/suistake/bridge-saga-service/internal/db"
	"github.com/suistake/bridge-saga-service/internal/db/model"
	"github.com/suistake/bridge-saga-service/internal/locker"
	"github.com/suistake/bridge-saga-service/internal/observability/healthcheck"
	"github.com/suistake/bridge-saga-service/internal/observability/metrics"
	"github.com/suistake/bridge-saga-service/internal/queue"
	"github.com/suistake/bridge-saga-service/internal/scheduler"
	"github.com/suistake/bridge-saga-service/internal/services"
)

func init() {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("failed to load .env file")
	}
}

func main() {
	zerolog.DefaultContextLogger = &log.Logger
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// setup cli commands and flags
	if err := cli.Setup(); err != nil {
		log.Fatal().Err(err).Msg("error while setting up cli")
	}

	// load config
	cfgPath := cli.GetConfigPath()
	cfg, err := config.New(cfgPath)
	if err != nil {
		log.Fatal().Err(err).Msg(fmt.Sprintf("error while loading config file: %s", cfgPath))
	}

	metrics.Init(cfg.Metrics.Addr())

	if err := model.Setup(ctx, cfg.Db); err != nil {
		log.Fatal().Err(err).Msg("error while setting up saga db collections")
	}
	dbClient, err := db.New(ctx, cfg.Db)
	if err != nil {
		log.Fatal().Err(err).Msg("error while setting up saga db")
	}

	// The relayer signs on every chain with one key, nonces are serialized
	// across replicas when redis is configured.
	var nonceLocker locker.Locker = locker.NewLocalLocker()
	var redisLocker *locker.RedisLocker
	if cfg.Redis.Enabled() {
		redisLocker = locker.NewRedisLocker(cfg.Redis.Address, cfg.Redis.LockTTL)
		nonceLocker = redisLocker
	}

	upstreams, err := clients.New(cfg, nonceLocker)
	if err != nil {
		log.Fatal().Err(err).Msg("error while setting up chain clients")
	}
	pingCtx, pingCancel := context.WithTimeout(ctx, 10*time.Second)
	if err := upstreams.Ping(pingCtx); err != nil {
		// Upstreams recover on their own, sagas fail with gateway errors meanwhile.
		log.Warn().Err(err).Msg("upstream not reachable at startup")
	}
	pingCancel()

	sched := scheduler.New(log.Logger)
	// A finalization outlives any sensible redis lock ttl, so the per-user
	// lock stays in process.
	svc := services.New(cfg, dbClient, &services.Gateways{
		Loans:        upstreams.Evm,
		Bridge:       upstreams.Bridge,
		Wallet:       upstreams.Wallet,
		Swap:         upstreams.Relayer,
		Stakes:       upstreams.Relayer,
		Validators:   upstreams.Sui,
		Rewards:      upstreams.Sui,
		ReturnBridge: upstreams.ReturnBridge,
	}, sched, locker.NewLocalLocker())

	queues := queue.New(cfg.Queue, svc)
	svc.SetEventPublisher(queues)

	// Check if the replay flag is set
	if cli.GetReplayFlag() {
		log.Info().Msg("Replay flag is set. Starting replay of unprocessable messages.")
		if err := scripts.ReplayUnprocessableMessages(ctx, queues, svc.DbClient); err != nil {
			log.Fatal().Err(err).Msg("error while replaying unprocessable messages")
		}
		return
	}

	restored, err := svc.RestoreMonitoring(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("error while restoring monitored users")
	}
	log.Info().Int("count", restored).Msg("Restored reward monitors")

	queues.StartReceivingMessages()

	checks := []healthcheck.Check{
		{Name: "queues", Probe: queues.IsConnectionHealthy},
		{Name: "db", Probe: func() error {
			pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			defer cancel()
			return dbClient.Ping(pingCtx)
		}},
	}
	if redisLocker != nil {
		checks = append(checks, healthcheck.Check{Name: "redis", Probe: redisLocker.Ping})
	}
	if err := healthcheck.StartHealthCheckCron(ctx, cfg.Server.HealthCheckInterval, checks...); err != nil {
		log.Fatal().Err(err).Msg("error while starting health check cron")
	}

	apiServer, err := api.New(ctx, cfg, svc)
	if err != nil {
		log.Fatal().Err(err).Msg("error while setting up bridge saga api service")
	}

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- apiServer.Start()
	}()

	select {
	case err := <-serverErr:
		if !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("error while running bridge saga api service")
		}
	case <-ctx.Done():
		log.Info().Msg("Shutdown signal received")
	}

	shutdown(cfg, apiServer, queues, svc, dbClient, redisLocker)
}

func shutdown(
	cfg *config.Config, apiServer *api.Server, queues *queue.Queues,
	svc *services.Services, dbClient *db.Database, redisLocker *locker.RedisLocker,
) {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Monitor.ShutdownTimeout+10*time.Second)
	defer cancel()

	if err := apiServer.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("error while stopping http server")
	}
	queues.StopReceivingMessages()

	monitorCtx, monitorCancel := context.WithTimeout(ctx, cfg.Monitor.ShutdownTimeout)
	defer monitorCancel()
	if err := svc.Monitor.Shutdown(monitorCtx); err != nil {
		log.Error().Err(err).Msg("reward monitors did not stop in time")
	}

	if err := dbClient.Close(ctx); err != nil {
		log.Error().Err(err).Msg("error while closing db connection")
	}
	if redisLocker != nil {
		if err := redisLocker.Close(); err != nil {
			log.Error().Err(err).Msg("error while closing redis pool")
		}
	}
	log.Info().Msg("Bridge saga service stopped")
}
