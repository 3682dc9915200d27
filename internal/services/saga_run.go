package services

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/suistake/bridge-saga-service/internal/db"
	"github.com/suistake/bridge-saga-service/internal/db/model"
	"github.com/suistake/bridge-saga-service/internal/queue/client"
	"github.com/suistake/bridge-saga-service/internal/types"
	"github.com/suistake/bridge-saga-service/internal/utils"
)

type SagaRunPublic struct {
	RequestId          string                    `json:"request_id"`
	Kind               string                    `json:"kind"`
	UserAddress        string                    `json:"user_address"`
	SourceChainId      string                    `json:"source_chain_id"`
	Amount             string                    `json:"amount,omitempty"`
	State              string                    `json:"state"`
	ErrorCode          string                    `json:"error_code,omitempty"`
	Error              string                    `json:"error,omitempty"`
	StakeResult        *types.StakeResult        `json:"stake_result,omitempty"`
	FinalizationResult *types.FinalizationResult `json:"finalization_result,omitempty"`
	CreatedAt          string                    `json:"created_at"`
	UpdatedAt          string                    `json:"updated_at"`
}

func fromSagaRunDocument(d *model.SagaRunDocument) *SagaRunPublic {
	return &SagaRunPublic{
		RequestId:          d.RequestId,
		Kind:               d.Kind.ToString(),
		UserAddress:        d.UserAddress,
		SourceChainId:      d.SourceChainId,
		Amount:             d.Amount,
		State:              d.State.ToString(),
		ErrorCode:          d.ErrorCode,
		Error:              d.Error,
		StakeResult:        d.StakeResult,
		FinalizationResult: d.FinalizationResult,
		CreatedAt:          time.Unix(d.CreatedAt, 0).UTC().Format(time.RFC3339),
		UpdatedAt:          time.Unix(d.UpdatedAt, 0).UTC().Format(time.RFC3339),
	}
}

// SubmitStake records a pending stake run and enqueues it for the outbound saga.
func (s *Services) SubmitStake(ctx context.Context, request types.StakeRequest) (*SagaRunPublic, *types.Error) {
	if err := validateUser(request.UserAddress); err != nil {
		return nil, err
	}
	if err := s.validateChain(request.SourceChainId); err != nil {
		return nil, err
	}
	amount, err := parseAmount(request.UsdcAmountToStake)
	if err != nil {
		return nil, err
	}
	request.UserAddress = utils.NormalizeAddress(request.UserAddress)
	request.UsdcAmountToStake = amount.String()

	run := model.NewSagaRunDocument(
		s.newRequestId(), types.StakeSaga, request.UserAddress, request.SourceChainId,
		request.UsdcAmountToStake, s.now().Unix(),
	)
	if err := s.submit(ctx, run, client.StakeRequestQueueName, client.NewStakeRequestEvent(run.RequestId, request)); err != nil {
		return nil, err
	}
	return fromSagaRunDocument(run), nil
}

// SubmitFinalize records a pending finalize run and enqueues it for the inbound saga.
func (s *Services) SubmitFinalize(ctx context.Context, user, sourceChainId string) (*SagaRunPublic, *types.Error) {
	if err := validateUser(user); err != nil {
		return nil, err
	}
	if err := s.validateChain(sourceChainId); err != nil {
		return nil, err
	}
	user = utils.NormalizeAddress(user)

	run := model.NewSagaRunDocument(s.newRequestId(), types.FinalizeSaga, user, sourceChainId, "", s.now().Unix())
	event := client.NewFinalizeRequestEvent(run.RequestId, user, sourceChainId)
	if err := s.submit(ctx, run, client.FinalizeRequestQueueName, event); err != nil {
		return nil, err
	}
	return fromSagaRunDocument(run), nil
}

func (s *Services) submit(ctx context.Context, run *model.SagaRunDocument, queueName string, event any) *types.Error {
	if err := s.DbClient.SaveSagaRun(ctx, run); err != nil {
		if db.IsDuplicateKeyError(err) {
			return types.NewError(http.StatusConflict, types.Conflict, err)
		}
		log.Ctx(ctx).Error().Err(err).Str("requestId", run.RequestId).Msg("Failed to save saga run")
		return types.NewInternalServiceError(err)
	}

	if err := s.publish(ctx, queueName, event); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("requestId", run.RequestId).Msg("Failed to enqueue saga run")
		// Nothing was consumed yet, the run can be failed safely.
		if transitionErr := s.DbClient.TransitionSagaRunState(
			ctx, run.RequestId, types.SagaRunFailed, utils.QualifiedStatesToRunning(),
		); transitionErr != nil {
			log.Ctx(ctx).Error().Err(transitionErr).Str("requestId", run.RequestId).
				Msg("Failed to mark unqueued saga run as failed")
		}
		return types.NewErrorWithMsg(
			http.StatusServiceUnavailable, types.InternalServiceError, "Failed to enqueue request, please retry",
		)
	}
	return nil
}

func (s *Services) publish(ctx context.Context, queueName string, event any) error {
	if s.publisher == nil {
		return errors.New("event publisher is not configured")
	}
	return s.publisher.Publish(ctx, queueName, event)
}

func (s *Services) GetSagaRun(ctx context.Context, requestId string) (*SagaRunPublic, *types.Error) {
	run, err := s.DbClient.FindSagaRunByRequestId(ctx, requestId)
	if err != nil {
		if db.IsNotFoundError(err) {
			return nil, types.NewErrorWithMsg(http.StatusNotFound, types.NotFound, "Saga run not found")
		}
		log.Ctx(ctx).Error().Err(err).Msg("Failed to find saga run by request id")
		return nil, types.NewInternalServiceError(err)
	}
	return fromSagaRunDocument(run), nil
}

// ProcessStakeRequest runs the outbound saga for a queued request. Requests
// that already left the pending state are skipped, so a redelivered message
// never moves funds twice.
func (s *Services) ProcessStakeRequest(ctx context.Context, event client.StakeRequestEvent) error {
	started, err := s.startRun(ctx, event.RequestId)
	if err != nil || !started {
		return err
	}

	result := s.stakes.Stake(ctx, event.StakeRequest)
	var position *types.StakingPosition
	if result.Success {
		position = &types.StakingPosition{
			UserAddress:      event.UserAddress,
			ValidatorAddress: result.ValidatorAddress,
			StakedAmount:     result.StakedAmount,
			StakeTxHash:      result.StakingTransactionHash,
			SourceChainId:    event.SourceChainId,
			CreatedAt:        s.now().UTC(),
		}
	}

	completeErr := s.DbClient.CompleteStakeRun(ctx, event.RequestId, result, position)
	if completeErr != nil {
		log.Ctx(ctx).Error().Err(completeErr).Str("requestId", event.RequestId).
			Bool("success", result.Success).Str("stakeTxHash", result.StakingTransactionHash).
			Msg("Failed to record stake outcome")
	}
	if result.Success && s.cfg.Monitor.AutoStart {
		if err := s.StartMonitoring(ctx, event.UserAddress, event.SourceChainId); err != nil {
			log.Ctx(ctx).Error().Err(err).Str("user", event.UserAddress).Msg("Failed to start rewards monitoring")
		}
	}
	s.publishOutcome(ctx, client.NewStakeOutcomeEvent(event.RequestId, event.UserAddress, result))

	if completeErr != nil {
		return types.NewInternalServiceError(completeErr)
	}
	return nil
}

// ProcessFinalizeRequest runs the inbound saga for a queued request.
func (s *Services) ProcessFinalizeRequest(ctx context.Context, event client.FinalizeRequestEvent) error {
	started, err := s.startRun(ctx, event.RequestId)
	if err != nil || !started {
		return err
	}

	result := s.finalizer.Finalize(ctx, event.UserAddress, event.SourceChainId)
	completeErr := s.DbClient.CompleteFinalizeRun(ctx, event.RequestId, result)
	if completeErr != nil {
		log.Ctx(ctx).Error().Err(completeErr).Str("requestId", event.RequestId).
			Bool("success", result.Success).Str("txHash", result.TransactionHash).
			Msg("Failed to record finalization outcome")
	}
	if result.Success {
		if _, err := s.StopMonitoring(ctx, event.UserAddress); err != nil {
			log.Ctx(ctx).Error().Err(err).Str("user", event.UserAddress).Msg("Failed to stop rewards monitoring")
		}
	}
	s.publishOutcome(ctx, client.NewFinalizeOutcomeEvent(event.RequestId, event.UserAddress, result))

	if completeErr != nil {
		return types.NewInternalServiceError(completeErr)
	}
	return nil
}

// startRun reports false when the run was already consumed.
func (s *Services) startRun(ctx context.Context, requestId string) (bool, error) {
	err := s.DbClient.TransitionSagaRunState(
		ctx, requestId, types.SagaRunRunning, utils.QualifiedStatesToRunning(),
	)
	if err != nil {
		if db.IsNotFoundError(err) {
			log.Ctx(ctx).Warn().Str("requestId", requestId).Msg("Skip saga request as it was already consumed")
			return false, nil
		}
		log.Ctx(ctx).Error().Err(err).Str("requestId", requestId).Msg("Failed to start saga run")
		return false, types.NewInternalServiceError(err)
	}
	return true, nil
}

func (s *Services) publishOutcome(ctx context.Context, event client.SagaOutcomeEvent) {
	if err := s.publish(ctx, client.SagaOutcomeQueueName, event); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("requestId", event.RequestId).Msg("Failed to publish saga outcome")
	}
}
