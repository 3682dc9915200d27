package model

import (
	"github.com/suistake/bridge-saga-service/internal/types"
)

const SagaRunCollection = "saga_runs"

// SagaRunDocument tracks one stake or finalize request from acceptance to its
// terminal state. Failed runs keep the error so stranded funds stay visible.
type SagaRunDocument struct {
	RequestId          string                    `bson:"_id"` // Primary key
	Kind               types.SagaKind            `bson:"kind"`
	UserAddress        string                    `bson:"user_address"`
	SourceChainId      string                    `bson:"source_chain_id"`
	Amount             string                    `bson:"amount,omitempty"`
	State              types.SagaRunState        `bson:"state"`
	ErrorCode          string                    `bson:"error_code,omitempty"`
	Error              string                    `bson:"error,omitempty"`
	StakeResult        *types.StakeResult        `bson:"stake_result,omitempty"`
	FinalizationResult *types.FinalizationResult `bson:"finalization_result,omitempty"`
	CreatedAt          int64                     `bson:"created_at"`
	UpdatedAt          int64                     `bson:"updated_at"`
}

func NewSagaRunDocument(
	requestId string, kind types.SagaKind, userAddress, sourceChainId, amount string, now int64,
) *SagaRunDocument {
	return &SagaRunDocument{
		RequestId:     requestId,
		Kind:          kind,
		UserAddress:   userAddress,
		SourceChainId: sourceChainId,
		Amount:        amount,
		State:         types.SagaRunPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}
