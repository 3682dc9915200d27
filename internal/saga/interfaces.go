package saga

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/suistake/bridge-saga-service/internal/types"
)

// LoanStatusGateway reads and settles the escrow contract on a source chain.
type LoanStatusGateway interface {
	// ChainIDs lists every source chain the escrow is deployed on.
	ChainIDs() []string
	GetAccountStatus(ctx context.Context, chainID, user string) (*types.AccountStatus, error)
	// Finalize submits repay + payout. The caller awaits the returned transaction.
	Finalize(
		ctx context.Context, chainID, user string, repay, payout decimal.Decimal,
	) (types.PendingTransaction, error)
}

// BridgeGateway moves stablecoins from a source chain to the destination chain
// with gas paid by the relayer.
type BridgeGateway interface {
	Quote(ctx context.Context, asset types.Asset) (*types.BridgeQuote, error)
	ExecuteSponsoredBridge(ctx context.Context, asset types.Asset, from, to string) (*types.BridgeOperation, error)
	CheckStatus(ctx context.Context, sourceTxHash string) (types.BridgeStatus, error)
	GetDetails(ctx context.Context, sourceTxHash string) (*types.BridgeDetails, error)
}

// DestinationWallet resolves the relayer-managed destination account of a
// user and reads its stablecoin balance.
type DestinationWallet interface {
	Address(ctx context.Context, user string) (string, error)
	StableBalance(ctx context.Context, owner string) (decimal.Decimal, error)
}

type SwapGateway interface {
	Quote(ctx context.Context, amount decimal.Decimal, direction types.SwapDirection) (decimal.Decimal, error)
	Swap(
		ctx context.Context, owner string, amount decimal.Decimal, direction types.SwapDirection,
	) (*types.SwapResult, error)
}

type StakeExecutor interface {
	Stake(ctx context.Context, owner string, amount decimal.Decimal, validator string) (*types.StakeReceipt, error)
	// ClaimRewards withdraws every stake of owner, principal included.
	ClaimRewards(ctx context.Context, owner string) (*types.ClaimReceipt, error)
}

type ValidatorSource interface {
	ActiveValidators(ctx context.Context) ([]types.ValidatorInfo, error)
}

type StakingRewardsReader interface {
	StakingRewards(ctx context.Context, owner string) (*types.StakingRewards, error)
}

// ReturnBridge carries funds from the destination chain back to a source chain.
type ReturnBridge interface {
	// BridgeToSource sends amount from owner to the relayer account on chainID,
	// which later funds the escrow settlement.
	BridgeToSource(
		ctx context.Context, owner, chainID string, amount decimal.Decimal,
	) (*types.ReturnBridgeReceipt, error)
	// FetchVAA returns nil without error while the guardians have not signed yet.
	FetchVAA(ctx context.Context, receipt types.ReturnBridgeReceipt) ([]byte, error)
	RedeemVAA(ctx context.Context, chainID string, vaa []byte) (types.PendingTransaction, error)
}
