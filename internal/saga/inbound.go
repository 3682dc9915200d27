package saga

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/suistake/bridge-saga-service/internal/config"
	"github.com/suistake/bridge-saga-service/internal/observability/metrics"
	"github.com/suistake/bridge-saga-service/internal/types"
	"github.com/suistake/bridge-saga-service/internal/utils"
)

const finalizeSagaName = "finalize"

var errNullReceipt = errors.New("transaction receipt is null")

// InboundFinalizationSaga unwinds a stake and settles the user's loan on the
// source chain. Like the outbound leg it has no compensation step.
type InboundFinalizationSaga struct {
	cfg       config.SagaConfig
	snapshots SnapshotProvider
	loans     LoanStatusGateway
	wallet    DestinationWallet
	stakes    StakeExecutor
	swap      SwapGateway
	bridge    ReturnBridge
	now       func() time.Time
}

func NewInboundFinalizationSaga(
	cfg config.SagaConfig, snapshots SnapshotProvider, loans LoanStatusGateway,
	wallet DestinationWallet, stakes StakeExecutor, swap SwapGateway, bridge ReturnBridge,
) *InboundFinalizationSaga {
	return &InboundFinalizationSaga{
		cfg:       cfg,
		snapshots: snapshots,
		loans:     loans,
		wallet:    wallet,
		stakes:    stakes,
		swap:      swap,
		bridge:    bridge,
		now:       time.Now,
	}
}

func (s *InboundFinalizationSaga) Finalize(ctx context.Context, user, sourceChainId string) *types.FinalizationResult {
	logger := log.Ctx(ctx).With().
		Str("saga", finalizeSagaName).
		Str("user", user).
		Str("sourceChainId", sourceChainId).
		Logger()
	ctx = logger.WithContext(ctx)

	result := s.finalize(ctx, user, sourceChainId)
	metrics.RecordSagaOutcome(finalizeSagaName, result.Success, result.ErrorCode.String())
	if !result.Success {
		logger.Error().Str("errorCode", result.ErrorCode.String()).Msg(result.Error)
	} else {
		logger.Info().
			Str("txHash", result.TransactionHash).
			Str("repaid", result.RepaidAmount).
			Str("payout", result.PayoutAmount).
			Msg("finalize saga completed")
	}
	return result
}

func (s *InboundFinalizationSaga) finalize(ctx context.Context, user, sourceChainId string) *types.FinalizationResult {
	snapshot, err := s.snapshots.Compute(ctx, user)
	if err != nil {
		return types.NewFailedFinalizationResult(
			types.GatewayError, fmt.Sprintf("Failed to compute reward snapshot: %v", err),
		)
	}
	if !snapshot.CanFinalize {
		return types.NewFailedFinalizationResult(types.ValidationError, "Rewards are not ready for finalization")
	}

	done := metrics.StartSagaStepTimer(finalizeSagaName, "claim")
	owner, err := s.wallet.Address(ctx, user)
	if err != nil {
		done(metrics.Error)
		return claimFailed(err)
	}
	claim, err := s.stakes.ClaimRewards(ctx, owner)
	if err != nil {
		done(metrics.Error)
		return claimFailed(err)
	}
	if !claim.Amount.IsPositive() {
		done(metrics.Error)
		return claimFailed(errors.New("nothing was claimed"))
	}
	done(metrics.Success)
	log.Ctx(ctx).Info().Str("claimTxHash", claim.TxHash).Str("amount", claim.Amount.String()).Msg("rewards claimed")

	done = metrics.StartSagaStepTimer(finalizeSagaName, "swap")
	swapped, err := s.swap.Swap(ctx, owner, claim.Amount, types.NativeToUsdc)
	if err != nil || swapped == nil || !swapped.AmountOut.IsPositive() {
		done(metrics.Error)
		log.Ctx(ctx).Warn().Err(err).Str("amountIn", claim.Amount.String()).Msg("swap to stable failed")
		return types.NewFailedFinalizationResult(types.GatewayError, "SUI to USDC swap failed")
	}
	done(metrics.Success)

	done = metrics.StartSagaStepTimer(finalizeSagaName, "bridge")
	bridged, err := s.bridge.BridgeToSource(ctx, owner, sourceChainId, swapped.AmountOut)
	if err != nil {
		done(metrics.Error)
		return types.NewFailedFinalizationResult(
			types.GatewayError, fmt.Sprintf("Bridge to source chain failed: %v", err),
		)
	}
	done(metrics.Success)
	log.Ctx(ctx).Info().
		Str("bridgeTxHash", bridged.TxHash).
		Uint64("sequence", bridged.Sequence).
		Msg("return bridge submitted")

	done = metrics.StartSagaStepTimer(finalizeSagaName, "await_vaa")
	vaa, err := s.awaitVAA(ctx, *bridged)
	if err != nil {
		done(metrics.Timeout)
		log.Ctx(ctx).Warn().Err(err).Msg("vaa not available")
		return types.NewFailedFinalizationResult(types.TimeoutError, "Failed to get VAA proof for bridge transaction")
	}
	done(metrics.Success)

	done = metrics.StartSagaStepTimer(finalizeSagaName, "redeem")
	if err := s.redeem(ctx, sourceChainId, vaa); err != nil {
		done(metrics.Error)
		return types.NewFailedFinalizationResult(
			types.GatewayError, fmt.Sprintf("Failed to redeem bridged funds: %v", err),
		)
	}
	done(metrics.Success)

	done = metrics.StartSagaStepTimer(finalizeSagaName, "settle")
	repay, payout := snapshot.EstimatedRepayment, snapshot.EstimatedPayout
	tx, err := s.loans.Finalize(ctx, sourceChainId, user, repay, payout)
	if err != nil {
		done(metrics.Error)
		return types.NewFailedFinalizationResult(
			types.SettlementError, fmt.Sprintf("Finalize transaction failed: %v", err),
		)
	}
	receipt, err := tx.Wait(ctx)
	if err != nil {
		done(metrics.Error)
		return types.NewFailedFinalizationResult(
			types.SettlementError, fmt.Sprintf("Finalize transaction failed: %v", err),
		)
	}
	if receipt == nil {
		done(metrics.Error)
		return types.NewFailedFinalizationResult(types.SettlementError, "Transaction receipt is null")
	}
	if !receipt.Succeeded {
		done(metrics.Error)
		return types.NewFailedFinalizationResult(
			types.SettlementError, fmt.Sprintf("Finalize transaction reverted: %s", receipt.TxHash),
		)
	}
	done(metrics.Success)

	return &types.FinalizationResult{
		Success:         true,
		RepaidAmount:    repay.String(),
		PayoutAmount:    payout.String(),
		TransactionHash: receipt.TxHash,
		FinalizedAt:     s.now().UTC(),
	}
}

func (s *InboundFinalizationSaga) awaitVAA(ctx context.Context, receipt types.ReturnBridgeReceipt) ([]byte, error) {
	var vaa []byte
	err := utils.PollUntil(ctx, s.cfg.VaaPollInterval, s.cfg.VaaTimeout, func(ctx context.Context) (bool, error) {
		signed, err := s.bridge.FetchVAA(ctx, receipt)
		if err != nil {
			log.Ctx(ctx).Warn().Err(err).Msg("failed to fetch vaa, will retry")
			return false, nil
		}
		if len(signed) == 0 {
			return false, nil
		}
		vaa = signed
		return true, nil
	})
	return vaa, err
}

func (s *InboundFinalizationSaga) redeem(ctx context.Context, chainID string, vaa []byte) error {
	tx, err := s.bridge.RedeemVAA(ctx, chainID, vaa)
	if err != nil {
		return err
	}
	receipt, err := tx.Wait(ctx)
	if err != nil {
		return err
	}
	if receipt == nil {
		return errNullReceipt
	}
	if !receipt.Succeeded {
		return fmt.Errorf("transaction %s reverted", receipt.TxHash)
	}
	return nil
}

func claimFailed(err error) *types.FinalizationResult {
	return types.NewFailedFinalizationResult(
		types.GatewayError, fmt.Sprintf("Failed to claim staking rewards: %v", err),
	)
}
