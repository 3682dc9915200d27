package saga

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/suistake/bridge-saga-service/internal/config"
	"github.com/suistake/bridge-saga-service/internal/observability/metrics"
	"github.com/suistake/bridge-saga-service/internal/types"
	"github.com/suistake/bridge-saga-service/internal/utils"
)

const (
	stakeSagaName    = "stake"
	stableSymbol     = "USDC"
	outboundStepWait = "await_bridge"
)

var errBridgeFailed = errors.New("bridge reported failure")

// OutboundStakingSaga bridges USDC to the destination chain, swaps it to the
// native asset and stakes it with the best scored validator. A failed step
// does not undo the steps before it.
type OutboundStakingSaga struct {
	cfg       config.SagaConfig
	loans     LoanStatusGateway
	bridge    BridgeGateway
	wallet    DestinationWallet
	swap      SwapGateway
	stakes    StakeExecutor
	validator *ValidatorSelector
}

func NewOutboundStakingSaga(
	cfg config.SagaConfig, loans LoanStatusGateway, bridge BridgeGateway,
	wallet DestinationWallet, swap SwapGateway, stakes StakeExecutor,
	validator *ValidatorSelector,
) *OutboundStakingSaga {
	return &OutboundStakingSaga{
		cfg:       cfg,
		loans:     loans,
		bridge:    bridge,
		wallet:    wallet,
		swap:      swap,
		stakes:    stakes,
		validator: validator,
	}
}

// Stake runs the outbound pipeline. It never returns a Go error, failures are
// reported through the result.
func (s *OutboundStakingSaga) Stake(ctx context.Context, request types.StakeRequest) *types.StakeResult {
	logger := log.Ctx(ctx).With().
		Str("saga", stakeSagaName).
		Str("user", request.UserAddress).
		Str("sourceChainId", request.SourceChainId).
		Logger()
	ctx = logger.WithContext(ctx)

	result := s.stake(ctx, request)
	metrics.RecordSagaOutcome(stakeSagaName, result.Success, result.ErrorCode.String())
	if !result.Success {
		logger.Error().Str("errorCode", result.ErrorCode.String()).Msg(result.Error)
	} else {
		logger.Info().
			Str("bridgeTxHash", result.BridgeTransactionHash).
			Str("stakeTxHash", result.StakingTransactionHash).
			Str("validator", result.ValidatorAddress).
			Msg("stake saga completed")
	}
	return result
}

func (s *OutboundStakingSaga) stake(ctx context.Context, request types.StakeRequest) *types.StakeResult {
	amount, err := utils.ParsePositiveAmount(request.UsdcAmountToStake)
	if err != nil {
		return types.NewFailedStakeResult(types.ValidationError, "Invalid USDC amount to stake.")
	}

	status, err := s.loans.GetAccountStatus(ctx, request.SourceChainId, request.UserAddress)
	if err != nil {
		return types.NewFailedStakeResult(
			types.GatewayError, fmt.Sprintf("Failed to check account status: %v", err),
		)
	}
	// Collateral backing a debt must never be at risk on another chain at the same time.
	if !status.OutstandingDebt.IsZero() {
		return types.NewFailedStakeResult(types.ValidationError, fmt.Sprintf(
			"Outstanding debt of %s USDC must be repaid before staking.", status.OutstandingDebt.String(),
		))
	}

	done := metrics.StartSagaStepTimer(stakeSagaName, "bridge")
	owner, err := s.wallet.Address(ctx, request.UserAddress)
	if err != nil {
		done(metrics.Error)
		return types.NewFailedStakeResult(types.GatewayError, fmt.Sprintf("Bridge to SUI failed: %v", err))
	}
	asset := types.Asset{ChainId: request.SourceChainId, Symbol: stableSymbol, Amount: amount}
	operation, err := s.bridge.ExecuteSponsoredBridge(ctx, asset, request.UserAddress, owner)
	if err != nil {
		done(metrics.Error)
		return types.NewFailedStakeResult(types.GatewayError, fmt.Sprintf("Bridge to SUI failed: %v", err))
	}
	done(metrics.Success)
	log.Ctx(ctx).Info().Str("bridgeTxHash", operation.SourceTxHash).Msg("bridge transaction submitted")

	done = metrics.StartSagaStepTimer(stakeSagaName, outboundStepWait)
	bridged, err := s.awaitBridgeCompletion(ctx, operation, owner)
	if err != nil {
		code := types.GatewayError
		outcome := metrics.Error
		if utils.IsTimeout(err) {
			code = types.TimeoutError
			outcome = metrics.Timeout
		}
		done(outcome)
		log.Ctx(ctx).Warn().Err(err).Str("bridgeTxHash", operation.SourceTxHash).Msg("bridge did not complete")
		return types.NewFailedStakeResult(code, "Bridge completion failed or timed out")
	}
	done(metrics.Success)

	done = metrics.StartSagaStepTimer(stakeSagaName, "swap")
	swapped, err := s.swap.Swap(ctx, owner, bridged, types.UsdcToNative)
	if err != nil || swapped == nil || !swapped.AmountOut.IsPositive() {
		done(metrics.Error)
		log.Ctx(ctx).Warn().Err(err).Str("amountIn", bridged.String()).Msg("swap to native failed")
		return types.NewFailedStakeResult(types.GatewayError, "USDC to SUI swap failed")
	}
	done(metrics.Success)

	done = metrics.StartSagaStepTimer(stakeSagaName, "stake")
	validator := s.validator.SelectBest(ctx)
	receipt, err := s.stakes.Stake(ctx, owner, swapped.AmountOut, validator)
	if err != nil {
		done(metrics.Error)
		return types.NewFailedStakeResult(types.GatewayError, fmt.Sprintf("SUI staking failed: %v", err))
	}
	done(metrics.Success)
	if receipt.ValidatorAddress != "" {
		validator = receipt.ValidatorAddress
	}

	estimated := EstimateRewards(
		swapped.AmountOut, decimal.NewFromFloat(s.cfg.AnnualRate), s.cfg.MinStakingDays, s.cfg.NativeDecimals,
	)
	return &types.StakeResult{
		Success:                true,
		BridgeTransactionHash:  operation.SourceTxHash,
		StakingTransactionHash: receipt.TxHash,
		StakedAmount:           swapped.AmountOut.String(),
		ValidatorAddress:       validator,
		EstimatedRewards:       estimated.String(),
	}
}

// awaitBridgeCompletion polls the bridge until it completes and the bridged
// funds are visible on the destination account. Some bridges flag completion
// before the balance settles, so a zero balance keeps the poll going.
func (s *OutboundStakingSaga) awaitBridgeCompletion(
	ctx context.Context, operation *types.BridgeOperation, owner string,
) (decimal.Decimal, error) {
	var bridged decimal.Decimal
	err := utils.PollUntil(ctx, s.cfg.BridgePollInterval, s.cfg.BridgeTimeout, func(ctx context.Context) (bool, error) {
		status, err := s.bridge.CheckStatus(ctx, operation.SourceTxHash)
		if err != nil {
			log.Ctx(ctx).Warn().Err(err).Msg("failed to check bridge status, will retry")
			return false, nil
		}
		operation.Status = status
		switch status {
		case types.BridgeFailed:
			return false, errBridgeFailed
		case types.BridgePending:
			return false, nil
		}

		details, err := s.bridge.GetDetails(ctx, operation.SourceTxHash)
		if err != nil {
			log.Ctx(ctx).Warn().Err(err).Msg("failed to fetch bridge details, will retry")
			return false, nil
		}
		balance, err := s.wallet.StableBalance(ctx, owner)
		if err != nil {
			log.Ctx(ctx).Warn().Err(err).Msg("failed to read destination balance, will retry")
			return false, nil
		}
		if !balance.IsPositive() {
			log.Ctx(ctx).Debug().Msg("bridge completed but destination balance not settled yet")
			return false, nil
		}

		operation.DestinationTxHash = details.DestinationTxHash
		bridged = balance
		if details.DestinationAmount != nil && details.DestinationAmount.IsPositive() {
			bridged = decimal.Min(*details.DestinationAmount, balance)
		}
		operation.DestinationAmount = bridged
		return true, nil
	})
	return bridged, err
}
