package services

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/suistake/bridge-saga-service/internal/config"
	"github.com/suistake/bridge-saga-service/internal/db"
	"github.com/suistake/bridge-saga-service/internal/locker"
	"github.com/suistake/bridge-saga-service/internal/monitor"
	"github.com/suistake/bridge-saga-service/internal/observability/tracing"
	"github.com/suistake/bridge-saga-service/internal/saga"
	"github.com/suistake/bridge-saga-service/internal/scheduler"
	"github.com/suistake/bridge-saga-service/internal/types"
	"github.com/suistake/bridge-saga-service/internal/utils"
)

// EventPublisher hands events to the queue named queueName.
type EventPublisher interface {
	Publish(ctx context.Context, queueName string, event any) error
}

// Gateways are the chain and relayer adapters the sagas run against.
type Gateways struct {
	Loans        saga.LoanStatusGateway
	Bridge       saga.BridgeGateway
	Wallet       saga.DestinationWallet
	Swap         saga.SwapGateway
	Stakes       saga.StakeExecutor
	Validators   saga.ValidatorSource
	Rewards      saga.StakingRewardsReader
	ReturnBridge saga.ReturnBridge
}

type stakeRunner interface {
	Stake(ctx context.Context, request types.StakeRequest) *types.StakeResult
}

type bridgeQuoter interface {
	Quote(ctx context.Context, asset types.Asset) (*types.BridgeQuote, error)
}

// Service layer contains the business logic and is used to interact with
// the database and other external clients (if any).
type Services struct {
	DbClient db.DBClient
	Monitor  *monitor.RewardsMonitor

	cfg          *config.Config
	chains       []string
	stakes       stakeRunner
	finalizer    monitor.Finalizer
	snapshots    saga.SnapshotProvider
	bridge       bridgeQuoter
	publisher    EventPublisher
	now          func() time.Time
	newRequestId func() string
}

func New(
	cfg *config.Config, dbClient db.DBClient, gateways *Gateways,
	sched *scheduler.Scheduler, finalizeLocker locker.Locker,
) *Services {
	selector := saga.NewValidatorSelector(gateways.Validators, cfg.Sui.PreferredValidators)
	snapshots := saga.NewRewardSnapshotter(
		gateways.Loans, gateways.Wallet, gateways.Rewards, gateways.Swap, cfg.Saga.MinStakingDays,
	)
	outbound := saga.NewOutboundStakingSaga(
		cfg.Saga, gateways.Loans, gateways.Bridge, gateways.Wallet, gateways.Swap, gateways.Stakes, selector,
	)
	inbound := saga.NewInboundFinalizationSaga(
		cfg.Saga, snapshots, gateways.Loans, gateways.Wallet, gateways.Stakes, gateways.Swap, gateways.ReturnBridge,
	)
	finalizer := &serializedFinalizer{next: inbound, locker: finalizeLocker}
	return newServices(cfg, dbClient, outbound, finalizer, snapshots, gateways.Bridge, sched)
}

func newServices(
	cfg *config.Config, dbClient db.DBClient, stakes stakeRunner, finalizer monitor.Finalizer,
	snapshots saga.SnapshotProvider, bridge bridgeQuoter, sched *scheduler.Scheduler,
) *Services {
	s := &Services{
		DbClient:     dbClient,
		cfg:          cfg,
		chains:       cfg.Evm.ChainIDs(),
		stakes:       stakes,
		finalizer:    finalizer,
		snapshots:    snapshots,
		bridge:       bridge,
		now:          time.Now,
		newRequestId: uuid.NewString,
	}
	s.Monitor = monitor.New(sched, snapshots, finalizer, cfg.Monitor.Interval, s.onMonitorFinalized)
	return s
}

// SetEventPublisher must be called before any request is submitted.
func (s *Services) SetEventPublisher(publisher EventPublisher) {
	s.publisher = publisher
}

// DoHealthCheck checks the health of the services by ping the database.
func (s *Services) DoHealthCheck(ctx context.Context) error {
	return s.DbClient.Ping(ctx)
}

func (s *Services) SaveUnprocessableMessages(ctx context.Context, messageBody, receipt string) error {
	err := s.DbClient.SaveUnprocessableMessage(ctx, messageBody, receipt)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("error while saving unprocessable message")
		return types.NewErrorWithMsg(http.StatusInternalServerError, types.InternalServiceError, "error while saving unprocessable message")
	}
	return nil
}

// QuoteBridge prices moving amount of USDC from chainID to the destination chain.
func (s *Services) QuoteBridge(ctx context.Context, chainID, amount string) (*types.BridgeQuote, *types.Error) {
	if err := s.validateChain(chainID); err != nil {
		return nil, err
	}
	value, err := parseAmount(amount)
	if err != nil {
		return nil, err
	}
	quote, quoteErr := tracing.WrapWithSpan(ctx, "bridgeQuote", func() (*types.BridgeQuote, error) {
		return s.bridge.Quote(ctx, types.Asset{ChainId: chainID, Symbol: "USDC", Amount: value})
	})
	if quoteErr != nil {
		log.Ctx(ctx).Error().Err(quoteErr).Msg("Failed to quote bridge")
		return nil, types.NewError(http.StatusBadGateway, types.GatewayError, quoteErr)
	}
	return quote, nil
}

func parseAmount(amount string) (decimal.Decimal, *types.Error) {
	value, err := utils.ParsePositiveAmount(amount)
	if err != nil {
		return decimal.Zero, types.NewErrorWithMsg(
			http.StatusBadRequest, types.ValidationError, "Invalid USDC amount: "+err.Error(),
		)
	}
	return value, nil
}

func (s *Services) validateChain(chainID string) *types.Error {
	if !utils.Contains(s.chains, chainID) {
		return types.NewErrorWithMsg(
			http.StatusBadRequest, types.ValidationError, "Unsupported source chain: "+chainID,
		)
	}
	return nil
}

func validateUser(user string) *types.Error {
	if !utils.IsValidEvmAddress(user) {
		return types.NewErrorWithMsg(
			http.StatusBadRequest, types.ValidationError, "Invalid user address: must be a 20 byte hex address",
		)
	}
	return nil
}
