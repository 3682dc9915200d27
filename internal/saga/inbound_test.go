package saga_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/suistake/bridge-saga-service/internal/saga"
	"github.com/suistake/bridge-saga-service/internal/types"
	"github.com/suistake/bridge-saga-service/tests/mocks"
)

type inboundMocks struct {
	snapshots *mocks.SnapshotProvider
	loans     *mocks.LoanStatusGateway
	wallet    *mocks.DestinationWallet
	stakes    *mocks.StakeExecutor
	swap      *mocks.SwapGateway
	bridge    *mocks.ReturnBridge
}

func newInbound(t *testing.T) (*saga.InboundFinalizationSaga, *inboundMocks) {
	m := &inboundMocks{
		snapshots: mocks.NewSnapshotProvider(t),
		loans:     mocks.NewLoanStatusGateway(t),
		wallet:    mocks.NewDestinationWallet(t),
		stakes:    mocks.NewStakeExecutor(t),
		swap:      mocks.NewSwapGateway(t),
		bridge:    mocks.NewReturnBridge(t),
	}
	inbound := saga.NewInboundFinalizationSaga(
		testSagaConfig(), m.snapshots, m.loans, m.wallet, m.stakes, m.swap, m.bridge,
	)
	return inbound, m
}

func minedTx(t *testing.T, hash string, succeeded bool) *mocks.PendingTransaction {
	tx := mocks.NewPendingTransaction(t)
	tx.On("Wait", mock.Anything).Return(&types.TxReceipt{TxHash: hash, Succeeded: succeeded}, nil)
	return tx
}

var returnReceipt = types.ReturnBridgeReceipt{TxHash: "0xR", EmitterChain: 21, Emitter: "0xemitter", Sequence: 7}

func (m *inboundMocks) readySnapshot() {
	m.snapshots.On("Compute", mock.Anything, "0xU").Return(&types.RewardSnapshot{
		StakedAmount:       dec("100"),
		RewardsEarned:      dec("2"),
		TotalValueUsdc:     dec("100"),
		TotalDebt:          dec("80"),
		EstimatedRepayment: dec("80"),
		EstimatedPayout:    dec("20"),
		CanFinalize:        true,
	}, nil)
}

func (m *inboundMocks) untilSwap() {
	m.readySnapshot()
	m.wallet.On("Address", mock.Anything, "0xU").Return("0xSUI", nil)
	m.stakes.On("ClaimRewards", mock.Anything, "0xSUI").Return(&types.ClaimReceipt{TxHash: "0xC", Amount: dec("102")}, nil)
}

func (m *inboundMocks) untilBridge() {
	m.untilSwap()
	m.swap.On("Swap", mock.Anything, "0xSUI", decEq("102"), types.NativeToUsdc).
		Return(&types.SwapResult{AmountOut: dec("100"), TxHash: "0xW"}, nil)
}

func (m *inboundMocks) untilVAA() {
	m.untilBridge()
	m.bridge.On("BridgeToSource", mock.Anything, "0xSUI", "1", decEq("100")).Return(&returnReceipt, nil)
}

func (m *inboundMocks) untilSettle(t *testing.T) {
	m.untilVAA()
	m.bridge.On("FetchVAA", mock.Anything, returnReceipt).Return(nil, nil).Once()
	m.bridge.On("FetchVAA", mock.Anything, returnReceipt).Return([]byte("signed-vaa"), nil)
	m.bridge.On("RedeemVAA", mock.Anything, "1", []byte("signed-vaa")).Return(minedTx(t, "0xRedeem", true), nil)
}

func TestFinalizeEndToEnd(t *testing.T) {
	inbound, m := newInbound(t)
	m.untilSettle(t)
	m.loans.On("Finalize", mock.Anything, "1", "0xU", decEq("80"), decEq("20")).Return(minedTx(t, "0xF", true), nil)

	result := inbound.Finalize(context.Background(), "0xU", "1")

	require.True(t, result.Success, result.Error)
	assert.Equal(t, "0xF", result.TransactionHash)
	assert.Equal(t, "80", result.RepaidAmount)
	assert.Equal(t, "20", result.PayoutAmount)
	assert.False(t, result.FinalizedAt.IsZero())
}

func TestFinalizeRequiresReadyRewards(t *testing.T) {
	inbound, m := newInbound(t)
	m.snapshots.On("Compute", mock.Anything, "0xU").Return(&types.RewardSnapshot{CanFinalize: false}, nil)

	result := inbound.Finalize(context.Background(), "0xU", "1")

	assert.False(t, result.Success)
	assert.Equal(t, "Rewards are not ready for finalization", result.Error)
	assert.Equal(t, types.ValidationError, result.ErrorCode)
	m.stakes.AssertNotCalled(t, "ClaimRewards", mock.Anything, mock.Anything)
	m.swap.AssertNotCalled(t, "Swap", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	m.bridge.AssertNotCalled(t, "BridgeToSource", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestFinalizeSnapshotFailure(t *testing.T) {
	inbound, m := newInbound(t)
	m.snapshots.On("Compute", mock.Anything, "0xU").Return(nil, errors.New("rpc down"))

	result := inbound.Finalize(context.Background(), "0xU", "1")

	assert.False(t, result.Success)
	assert.Equal(t, types.GatewayError, result.ErrorCode)
	assert.Contains(t, result.Error, "rpc down")
}

func TestFinalizeClaimFailure(t *testing.T) {
	inbound, m := newInbound(t)
	m.readySnapshot()
	m.wallet.On("Address", mock.Anything, "0xU").Return("0xSUI", nil)
	m.stakes.On("ClaimRewards", mock.Anything, "0xSUI").Return(nil, errors.New("stake locked"))

	result := inbound.Finalize(context.Background(), "0xU", "1")

	assert.False(t, result.Success)
	assert.Equal(t, "Failed to claim staking rewards: stake locked", result.Error)
	assert.Equal(t, types.GatewayError, result.ErrorCode)
}

func TestFinalizeSwapFailure(t *testing.T) {
	inbound, m := newInbound(t)
	m.untilSwap()
	m.swap.On("Swap", mock.Anything, "0xSUI", mock.Anything, types.NativeToUsdc).Return(nil, errors.New("slippage"))

	result := inbound.Finalize(context.Background(), "0xU", "1")

	assert.False(t, result.Success)
	assert.Equal(t, "SUI to USDC swap failed", result.Error)
}

func TestFinalizeBridgeFailure(t *testing.T) {
	inbound, m := newInbound(t)
	m.untilBridge()
	m.bridge.On("BridgeToSource", mock.Anything, "0xSUI", "1", mock.Anything).Return(nil, errors.New("gas budget"))

	result := inbound.Finalize(context.Background(), "0xU", "1")

	assert.False(t, result.Success)
	assert.Equal(t, "Bridge to source chain failed: gas budget", result.Error)
	assert.Equal(t, types.GatewayError, result.ErrorCode)
}

func TestFinalizeVAATimeout(t *testing.T) {
	inbound, m := newInbound(t)
	m.untilVAA()
	m.bridge.On("FetchVAA", mock.Anything, returnReceipt).Return(nil, nil)

	result := inbound.Finalize(context.Background(), "0xU", "1")

	assert.False(t, result.Success)
	assert.Equal(t, "Failed to get VAA proof for bridge transaction", result.Error)
	assert.Equal(t, types.TimeoutError, result.ErrorCode)
	m.bridge.AssertNotCalled(t, "RedeemVAA", mock.Anything, mock.Anything, mock.Anything)
	m.loans.AssertNotCalled(t, "Finalize", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestFinalizeRetriesTransientVAAErrors(t *testing.T) {
	inbound, m := newInbound(t)
	m.untilVAA()
	m.bridge.On("FetchVAA", mock.Anything, returnReceipt).Return(nil, errors.New("guardian 502")).Twice()
	m.bridge.On("FetchVAA", mock.Anything, returnReceipt).Return([]byte("signed-vaa"), nil)
	m.bridge.On("RedeemVAA", mock.Anything, "1", []byte("signed-vaa")).Return(minedTx(t, "0xRedeem", false), nil)

	result := inbound.Finalize(context.Background(), "0xU", "1")

	assert.False(t, result.Success)
	assert.Equal(t, "Failed to redeem bridged funds: transaction 0xRedeem reverted", result.Error)
	assert.Equal(t, types.GatewayError, result.ErrorCode)
}

func TestFinalizeNullReceipt(t *testing.T) {
	inbound, m := newInbound(t)
	m.untilSettle(t)
	tx := mocks.NewPendingTransaction(t)
	tx.On("Wait", mock.Anything).Return(nil, nil)
	m.loans.On("Finalize", mock.Anything, "1", "0xU", mock.Anything, mock.Anything).Return(tx, nil)

	result := inbound.Finalize(context.Background(), "0xU", "1")

	assert.False(t, result.Success)
	assert.Equal(t, "Transaction receipt is null", result.Error)
	assert.Equal(t, types.SettlementError, result.ErrorCode)
}

func TestFinalizeReverted(t *testing.T) {
	inbound, m := newInbound(t)
	m.untilSettle(t)
	m.loans.On("Finalize", mock.Anything, "1", "0xU", mock.Anything, mock.Anything).Return(minedTx(t, "0xF", false), nil)

	result := inbound.Finalize(context.Background(), "0xU", "1")

	assert.False(t, result.Success)
	assert.Equal(t, "Finalize transaction reverted: 0xF", result.Error)
	assert.Equal(t, types.SettlementError, result.ErrorCode)
}

func TestFinalizeSubmissionFailure(t *testing.T) {
	inbound, m := newInbound(t)
	m.untilSettle(t)
	m.loans.On("Finalize", mock.Anything, "1", "0xU", mock.Anything, mock.Anything).Return(nil, errors.New("nonce too low"))

	result := inbound.Finalize(context.Background(), "0xU", "1")

	assert.False(t, result.Success)
	assert.Equal(t, "Finalize transaction failed: nonce too low", result.Error)
	assert.Equal(t, types.SettlementError, result.ErrorCode)
}
