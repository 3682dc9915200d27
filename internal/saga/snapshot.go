package saga

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/suistake/bridge-saga-service/internal/types"
)

// SnapshotProvider computes a fresh RewardSnapshot for a user.
type SnapshotProvider interface {
	Compute(ctx context.Context, user string) (*types.RewardSnapshot, error)
}

// RewardSnapshotter combines the destination-chain stake view with the
// outstanding debt summed over every source chain. Debt is chain scoped,
// rewards are not.
type RewardSnapshotter struct {
	loans          LoanStatusGateway
	wallet         DestinationWallet
	rewards        StakingRewardsReader
	swap           SwapGateway
	minStakingDays int64
}

func NewRewardSnapshotter(
	loans LoanStatusGateway, wallet DestinationWallet, rewards StakingRewardsReader,
	swap SwapGateway, minStakingDays int64,
) *RewardSnapshotter {
	return &RewardSnapshotter{
		loans:          loans,
		wallet:         wallet,
		rewards:        rewards,
		swap:           swap,
		minStakingDays: minStakingDays,
	}
}

func (r *RewardSnapshotter) Compute(ctx context.Context, user string) (*types.RewardSnapshot, error) {
	owner, err := r.wallet.Address(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve destination account: %w", err)
	}
	stake, err := r.rewards.StakingRewards(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch staking rewards: %w", err)
	}

	totalDebt := decimal.Zero
	for _, chainID := range r.loans.ChainIDs() {
		status, err := r.loans.GetAccountStatus(ctx, chainID, user)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch account status on chain %s: %w", chainID, err)
		}
		totalDebt = totalDebt.Add(status.OutstandingDebt)
	}

	// Claiming withdraws the whole stake, so the principal is part of the value.
	totalValue := stake.StakedAmount.Add(stake.RewardsEarned)
	totalValueUsdc := decimal.Zero
	if totalValue.IsPositive() {
		totalValueUsdc, err = r.swap.Quote(ctx, totalValue, types.NativeToUsdc)
		if err != nil {
			return nil, fmt.Errorf("failed to quote stake value: %w", err)
		}
	}

	payout := totalValueUsdc.Sub(totalDebt)
	if payout.IsNegative() {
		payout = decimal.Zero
	}
	ready := stake.HasActiveStake && stake.StakingDurationDays >= r.minStakingDays

	return &types.RewardSnapshot{
		StakedAmount:        stake.StakedAmount,
		RewardsEarned:       stake.RewardsEarned,
		TotalValue:          totalValue,
		TotalValueUsdc:      totalValueUsdc,
		TotalDebt:           totalDebt,
		EstimatedRepayment:  decimal.Min(totalValueUsdc, totalDebt),
		EstimatedPayout:     payout,
		CanFinalize:         ready && totalValueUsdc.IsPositive(),
		StakingDurationDays: stake.StakingDurationDays,
	}, nil
}
