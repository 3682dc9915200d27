package client

import (
	"github.com/suistake/bridge-saga-service/internal/types"
)

const (
	StakeRequestQueueName    string = "stake_request_queue"
	FinalizeRequestQueueName string = "finalize_request_queue"
	SagaOutcomeQueueName     string = "saga_outcome_queue"
)

const (
	StakeRequestEventType    EventType = 1
	FinalizeRequestEventType EventType = 2
	SagaOutcomeEventType     EventType = 3
)

type EventType int

type StakeRequestEvent struct {
	EventType EventType `json:"event_type"` // always 1
	RequestId string    `json:"request_id"`
	types.StakeRequest
}

func NewStakeRequestEvent(requestId string, request types.StakeRequest) StakeRequestEvent {
	return StakeRequestEvent{
		EventType:    StakeRequestEventType,
		RequestId:    requestId,
		StakeRequest: request,
	}
}

type FinalizeRequestEvent struct {
	EventType     EventType `json:"event_type"` // always 2
	RequestId     string    `json:"request_id"`
	UserAddress   string    `json:"user_address"`
	SourceChainId string    `json:"source_chain_id"`
}

func NewFinalizeRequestEvent(requestId, userAddress, sourceChainId string) FinalizeRequestEvent {
	return FinalizeRequestEvent{
		EventType:     FinalizeRequestEventType,
		RequestId:     requestId,
		UserAddress:   userAddress,
		SourceChainId: sourceChainId,
	}
}

// SagaOutcomeEvent is published once per consumed request, success or not.
type SagaOutcomeEvent struct {
	EventType          EventType                 `json:"event_type"` // always 3
	RequestId          string                    `json:"request_id"`
	Kind               types.SagaKind            `json:"kind"`
	UserAddress        string                    `json:"user_address"`
	Success            bool                      `json:"success"`
	ErrorCode          types.ErrorCode           `json:"error_code,omitempty"`
	Error              string                    `json:"error,omitempty"`
	StakeResult        *types.StakeResult        `json:"stake_result,omitempty"`
	FinalizationResult *types.FinalizationResult `json:"finalization_result,omitempty"`
}

func NewStakeOutcomeEvent(requestId, userAddress string, result *types.StakeResult) SagaOutcomeEvent {
	return SagaOutcomeEvent{
		EventType:   SagaOutcomeEventType,
		RequestId:   requestId,
		Kind:        types.StakeSaga,
		UserAddress: userAddress,
		Success:     result.Success,
		ErrorCode:   result.ErrorCode,
		Error:       result.Error,
		StakeResult: result,
	}
}

func NewFinalizeOutcomeEvent(requestId, userAddress string, result *types.FinalizationResult) SagaOutcomeEvent {
	return SagaOutcomeEvent{
		EventType:          SagaOutcomeEventType,
		RequestId:          requestId,
		Kind:               types.FinalizeSaga,
		UserAddress:        userAddress,
		Success:            result.Success,
		ErrorCode:          result.ErrorCode,
		Error:              result.Error,
		FinalizationResult: result,
	}
}
