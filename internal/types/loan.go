package types

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// AccountStatus is the escrow contract's view of a user on one chain, in USDC.
type AccountStatus struct {
	EscrowedAmount  decimal.Decimal
	OutstandingDebt decimal.Decimal
	Reputation      uint64
	Blacklisted     bool
}

type TxReceipt struct {
	TxHash      string
	BlockNumber uint64
	Succeeded   bool
}

// PendingTransaction is a submitted transaction whose receipt has not been awaited yet.
type PendingTransaction interface {
	Hash() string
	// Wait blocks until the transaction is mined. A nil receipt with a nil
	// error means the node returned nothing.
	Wait(ctx context.Context) (*TxReceipt, error)
}

// RewardSnapshot is recomputed on every read and never persisted.
type RewardSnapshot struct {
	StakedAmount        decimal.Decimal `json:"staked_amount"`
	RewardsEarned       decimal.Decimal `json:"rewards_earned"`
	TotalValue          decimal.Decimal `json:"total_value"`
	TotalValueUsdc      decimal.Decimal `json:"total_value_usdc"`
	TotalDebt           decimal.Decimal `json:"total_debt"`
	EstimatedRepayment  decimal.Decimal `json:"estimated_repayment"`
	EstimatedPayout     decimal.Decimal `json:"estimated_payout"`
	CanFinalize         bool            `json:"can_finalize"`
	StakingDurationDays int64           `json:"staking_duration_days"`
}

type FinalizationResult struct {
	Success         bool      `json:"success"`
	RepaidAmount    string    `json:"repaid_amount,omitempty"`
	PayoutAmount    string    `json:"payout_amount,omitempty"`
	TransactionHash string    `json:"transaction_hash,omitempty"`
	FinalizedAt     time.Time `json:"finalized_at,omitempty"`
	Error           string    `json:"error,omitempty"`
	ErrorCode       ErrorCode `json:"error_code,omitempty"`
}

func NewFailedFinalizationResult(code ErrorCode, msg string) *FinalizationResult {
	return &FinalizationResult{Success: false, Error: msg, ErrorCode: code}
}
