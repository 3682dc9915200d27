package saga_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/suistake/bridge-saga-service/internal/saga"
	"github.com/suistake/bridge-saga-service/internal/types"
	"github.com/suistake/bridge-saga-service/tests/mocks"
)

type snapshotMocks struct {
	loans   *mocks.LoanStatusGateway
	wallet  *mocks.DestinationWallet
	rewards *mocks.StakingRewardsReader
	swap    *mocks.SwapGateway
}

func newSnapshotter(t *testing.T) (*saga.RewardSnapshotter, *snapshotMocks) {
	m := &snapshotMocks{
		loans:   mocks.NewLoanStatusGateway(t),
		wallet:  mocks.NewDestinationWallet(t),
		rewards: mocks.NewStakingRewardsReader(t),
		swap:    mocks.NewSwapGateway(t),
	}
	m.wallet.On("Address", mock.Anything, "0xU").Return("0xSUI", nil).Maybe()
	return saga.NewRewardSnapshotter(m.loans, m.wallet, m.rewards, m.swap, 7), m
}

func (m *snapshotMocks) withDebts(debts map[string]string) {
	var chains []string
	for chainID, debt := range debts {
		chains = append(chains, chainID)
		m.loans.On("GetAccountStatus", mock.Anything, chainID, "0xU").
			Return(&types.AccountStatus{OutstandingDebt: dec(debt)}, nil)
	}
	m.loans.On("ChainIDs").Return(chains)
}

func TestSnapshotSumsDebtAcrossChains(t *testing.T) {
	snapshotter, m := newSnapshotter(t)
	m.rewards.On("StakingRewards", mock.Anything, "0xSUI").Return(&types.StakingRewards{
		StakedAmount: dec("100"), RewardsEarned: dec("2"), HasActiveStake: true, StakingDurationDays: 10,
	}, nil)
	m.withDebts(map[string]string{"1": "50", "8453": "30"})
	m.swap.On("Quote", mock.Anything, decEq("102"), types.NativeToUsdc).Return(dec("204"), nil)

	snapshot, err := snapshotter.Compute(context.Background(), "0xU")
	require.NoError(t, err)

	assert.True(t, snapshot.TotalValue.Equal(dec("102")))
	assert.True(t, snapshot.TotalValueUsdc.Equal(dec("204")))
	assert.True(t, snapshot.TotalDebt.Equal(dec("80")))
	assert.True(t, snapshot.EstimatedRepayment.Equal(dec("80")))
	assert.True(t, snapshot.EstimatedPayout.Equal(dec("124")))
	assert.True(t, snapshot.CanFinalize)
	assert.Equal(t, int64(10), snapshot.StakingDurationDays)
}

func TestSnapshotDebtExceedingValue(t *testing.T) {
	snapshotter, m := newSnapshotter(t)
	m.rewards.On("StakingRewards", mock.Anything, "0xSUI").Return(&types.StakingRewards{
		StakedAmount: dec("10"), RewardsEarned: dec("0.1"), HasActiveStake: true, StakingDurationDays: 7,
	}, nil)
	m.withDebts(map[string]string{"1": "500"})
	m.swap.On("Quote", mock.Anything, mock.Anything, types.NativeToUsdc).Return(dec("20.2"), nil)

	snapshot, err := snapshotter.Compute(context.Background(), "0xU")
	require.NoError(t, err)

	assert.True(t, snapshot.EstimatedRepayment.Equal(dec("20.2")))
	assert.True(t, snapshot.EstimatedPayout.IsZero())
	assert.True(t, snapshot.CanFinalize)
}

func TestSnapshotNotReadyBeforeMinimumPeriod(t *testing.T) {
	snapshotter, m := newSnapshotter(t)
	m.rewards.On("StakingRewards", mock.Anything, "0xSUI").Return(&types.StakingRewards{
		StakedAmount: dec("100"), RewardsEarned: dec("0.5"), HasActiveStake: true, StakingDurationDays: 3,
	}, nil)
	m.withDebts(map[string]string{"1": "0"})
	m.swap.On("Quote", mock.Anything, mock.Anything, types.NativeToUsdc).Return(dec("201"), nil)

	snapshot, err := snapshotter.Compute(context.Background(), "0xU")
	require.NoError(t, err)
	assert.False(t, snapshot.CanFinalize)
}

func TestSnapshotWithoutStakeSkipsQuote(t *testing.T) {
	snapshotter, m := newSnapshotter(t)
	m.rewards.On("StakingRewards", mock.Anything, "0xSUI").Return(&types.StakingRewards{
		StakedAmount: decimal.Zero, RewardsEarned: decimal.Zero,
	}, nil)
	m.withDebts(map[string]string{"1": "10"})

	snapshot, err := snapshotter.Compute(context.Background(), "0xU")
	require.NoError(t, err)

	assert.False(t, snapshot.CanFinalize)
	assert.True(t, snapshot.TotalValueUsdc.IsZero())
	assert.True(t, snapshot.EstimatedRepayment.IsZero())
	m.swap.AssertNotCalled(t, "Quote", mock.Anything, mock.Anything, mock.Anything)
}

func TestSnapshotPropagatesAccountStatusError(t *testing.T) {
	snapshotter, m := newSnapshotter(t)
	m.rewards.On("StakingRewards", mock.Anything, "0xSUI").Return(&types.StakingRewards{
		StakedAmount: dec("1"), HasActiveStake: true, StakingDurationDays: 8,
	}, nil)
	m.loans.On("ChainIDs").Return([]string{"1"})
	m.loans.On("GetAccountStatus", mock.Anything, "1", "0xU").Return(nil, errors.New("rpc down"))

	_, err := snapshotter.Compute(context.Background(), "0xU")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rpc down")
}
