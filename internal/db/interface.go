package db

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/suistake/bridge-saga-service/internal/db/model"
	"github.com/suistake/bridge-saga-service/internal/types"
)

type DBClient interface {
	Ping(ctx context.Context) error
	// SaveSagaRun returns a DuplicateKeyError when the request id was seen before.
	SaveSagaRun(ctx context.Context, run *model.SagaRunDocument) error
	FindSagaRunByRequestId(ctx context.Context, requestId string) (*model.SagaRunDocument, error)
	// TransitionSagaRunState returns a NotFoundError when the run does not
	// exist or is not in one of the eligible states.
	TransitionSagaRunState(
		ctx context.Context, requestId string, newState types.SagaRunState, eligiblePreviousState []types.SagaRunState,
	) error
	// CompleteStakeRun records the outcome of a stake run and, on success,
	// the resulting staking position in a single transaction.
	CompleteStakeRun(ctx context.Context, requestId string, result *types.StakeResult, position *types.StakingPosition) error
	CompleteFinalizeRun(ctx context.Context, requestId string, result *types.FinalizationResult) error
	FindStakingPositionsByUser(
		ctx context.Context, userAddress string, paginationToken string,
	) (*DbResultMap[model.StakingPositionDocument], error)
	FindLatestStakingPosition(ctx context.Context, userAddress string) (*model.StakingPositionDocument, error)
	SaveMonitoredUser(ctx context.Context, userAddress, sourceChainId string) error
	DeleteMonitoredUser(ctx context.Context, userAddress string) error
	FindMonitoredUsers(ctx context.Context) ([]model.MonitoredUserDocument, error)
	SaveUnprocessableMessage(ctx context.Context, messageBody, receipt string) error
	FindUnprocessableMessages(ctx context.Context) ([]model.UnprocessableMessageDocument, error)
	DeleteUnprocessableMessage(ctx context.Context, id interface{}) error
}

// DBTransactionClient starts sessions for multi-document transactions.
type DBTransactionClient interface {
	StartSession() (DBSession, error)
}

type DBSession interface {
	EndSession(ctx context.Context)
	WithTransaction(
		ctx context.Context, fn func(sessCtx mongo.SessionContext) (interface{}, error),
		opts ...*options.TransactionOptions,
	) (interface{}, error)
}
