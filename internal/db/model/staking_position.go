package model

import (
	"time"

	"github.com/suistake/bridge-saga-service/internal/types"
)

const StakingPositionCollection = "staking_positions"

type StakingPositionDocument struct {
	StakeTxHash      string `bson:"_id"` // Primary key
	UserAddress      string `bson:"user_address"`
	ValidatorAddress string `bson:"validator_address"`
	StakedAmount     string `bson:"staked_amount"`
	SourceChainId    string `bson:"source_chain_id"`
	CreatedAt        int64  `bson:"created_at"`
}

func NewStakingPositionDocument(position types.StakingPosition) *StakingPositionDocument {
	return &StakingPositionDocument{
		StakeTxHash:      position.StakeTxHash,
		UserAddress:      position.UserAddress,
		ValidatorAddress: position.ValidatorAddress,
		StakedAmount:     position.StakedAmount,
		SourceChainId:    position.SourceChainId,
		CreatedAt:        position.CreatedAt.Unix(),
	}
}

func (d *StakingPositionDocument) ToStakingPosition() types.StakingPosition {
	return types.StakingPosition{
		UserAddress:      d.UserAddress,
		ValidatorAddress: d.ValidatorAddress,
		StakedAmount:     d.StakedAmount,
		StakeTxHash:      d.StakeTxHash,
		SourceChainId:    d.SourceChainId,
		CreatedAt:        time.Unix(d.CreatedAt, 0).UTC(),
	}
}

type StakingPositionPagination struct {
	StakeTxHash string `json:"stake_tx_hash"`
	CreatedAt   int64  `json:"created_at"`
}

func BuildStakingPositionPaginationToken(d StakingPositionDocument) (string, error) {
	return GetPaginationToken(StakingPositionPagination{
		StakeTxHash: d.StakeTxHash,
		CreatedAt:   d.CreatedAt,
	})
}
