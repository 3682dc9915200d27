package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// StakeRequest is consumed once by the outbound saga.
type StakeRequest struct {
	UserAddress       string `json:"user_address"`
	UsdcAmountToStake string `json:"usdc_amount_to_stake"`
	SourceChainId     string `json:"source_chain_id"`
}

type StakeResult struct {
	Success                bool      `json:"success"`
	BridgeTransactionHash  string    `json:"bridge_transaction_hash,omitempty"`
	StakingTransactionHash string    `json:"staking_transaction_hash,omitempty"`
	StakedAmount           string    `json:"staked_amount,omitempty"`
	ValidatorAddress       string    `json:"validator_address,omitempty"`
	EstimatedRewards       string    `json:"estimated_rewards,omitempty"`
	Error                  string    `json:"error,omitempty"`
	ErrorCode              ErrorCode `json:"error_code,omitempty"`
}

func NewFailedStakeResult(code ErrorCode, msg string) *StakeResult {
	return &StakeResult{Success: false, Error: msg, ErrorCode: code}
}

// StakingPosition is append-only. A re-stake creates a new position which
// supersedes the previous one.
type StakingPosition struct {
	UserAddress      string    `json:"user_address"`
	ValidatorAddress string    `json:"validator_address"`
	StakedAmount     string    `json:"staked_amount"`
	StakeTxHash      string    `json:"stake_tx_hash"`
	SourceChainId    string    `json:"source_chain_id"`
	CreatedAt        time.Time `json:"created_at"`
}

type StakeReceipt struct {
	TxHash           string
	ValidatorAddress string
}

type ClaimReceipt struct {
	TxHash string
	Amount decimal.Decimal
}

// StakingRewards is the destination-chain view of a user's stakes, in native units.
type StakingRewards struct {
	StakedAmount        decimal.Decimal
	RewardsEarned       decimal.Decimal
	HasActiveStake      bool
	StakingDurationDays int64
}

type ValidatorInfo struct {
	Address                  string  `json:"address"`
	CommissionPercent        float64 `json:"commission_percent"`
	APYPercent               float64 `json:"apy_percent"`
	WillParticipateNextEpoch bool    `json:"will_participate_next_epoch"`
}
