package db

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/suistake/bridge-saga-service/internal/db/model"
	"github.com/suistake/bridge-saga-service/internal/types"
	"github.com/suistake/bridge-saga-service/internal/utils"
)

func (db *Database) SaveSagaRun(ctx context.Context, run *model.SagaRunDocument) error {
	_, err := db.collection(model.SagaRunCollection).InsertOne(ctx, run)
	if err != nil {
		return asDuplicateKeyError(err, run.RequestId, "Saga run already exists")
	}
	return nil
}

func (db *Database) FindSagaRunByRequestId(ctx context.Context, requestId string) (*model.SagaRunDocument, error) {
	filter := bson.M{"_id": requestId}
	var run model.SagaRunDocument
	err := db.collection(model.SagaRunCollection).FindOne(ctx, filter).Decode(&run)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, &NotFoundError{
				Key:     requestId,
				Message: "Saga run not found",
			}
		}
		return nil, err
	}
	return &run, nil
}

func (db *Database) TransitionSagaRunState(
	ctx context.Context, requestId string, newState types.SagaRunState, eligiblePreviousState []types.SagaRunState,
) error {
	return transitionSagaRun(
		ctx, db.collection(model.SagaRunCollection), requestId, eligiblePreviousState,
		bson.M{"state": newState, "updated_at": time.Now().Unix()},
	)
}

func (db *Database) CompleteStakeRun(
	ctx context.Context, requestId string, result *types.StakeResult, position *types.StakingPosition,
) error {
	runs := db.collection(model.SagaRunCollection)
	positions := db.collection(model.StakingPositionCollection)
	update := completionUpdate(result.Success, result.ErrorCode, result.Error)
	update["stake_result"] = result

	_, err := TxWithRetries(ctx, &dbTransactionClient{db.Client}, func(sessCtx mongo.SessionContext) (interface{}, error) {
		if err := transitionSagaRun(
			sessCtx, runs, requestId, utils.QualifiedStatesToCompleted(), update,
		); err != nil {
			return nil, err
		}
		if position == nil {
			return nil, nil
		}
		if _, err := positions.InsertOne(sessCtx, model.NewStakingPositionDocument(*position)); err != nil {
			return nil, asDuplicateKeyError(err, position.StakeTxHash, "Staking position already exists")
		}
		return nil, nil
	})
	return err
}

func (db *Database) CompleteFinalizeRun(ctx context.Context, requestId string, result *types.FinalizationResult) error {
	update := completionUpdate(result.Success, result.ErrorCode, result.Error)
	update["finalization_result"] = result
	return transitionSagaRun(
		ctx, db.collection(model.SagaRunCollection), requestId, utils.QualifiedStatesToCompleted(), update,
	)
}

func completionUpdate(success bool, code types.ErrorCode, msg string) bson.M {
	state := types.SagaRunSucceeded
	if !success {
		state = types.SagaRunFailed
	}
	return bson.M{
		"state":      state,
		"error_code": code.String(),
		"error":      msg,
		"updated_at": time.Now().Unix(),
	}
}

// transitionSagaRun returns a NotFoundError when the run is missing or not in
// an eligible state to transition.
func transitionSagaRun(
	ctx context.Context, client *mongo.Collection, requestId string,
	eligiblePreviousState []types.SagaRunState, set bson.M,
) error {
	filter := bson.M{"_id": requestId, "state": bson.M{"$in": eligiblePreviousState}}
	result, err := client.UpdateOne(ctx, filter, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return &NotFoundError{
			Key:     requestId,
			Message: "Saga run not found or not in eligible state to transition",
		}
	}
	return nil
}
