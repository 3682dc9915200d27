package db

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/suistake/bridge-saga-service/internal/db/model"
)

// FindStakingPositionsByUser pages through a user's positions, newest first.
func (db *Database) FindStakingPositionsByUser(
	ctx context.Context, userAddress string, paginationToken string,
) (*DbResultMap[model.StakingPositionDocument], error) {
	client := db.collection(model.StakingPositionCollection)

	filter := bson.M{"user_address": userAddress}
	options := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: 1}})
	options.SetLimit(db.pageFetchLimit())

	// Resume strictly after the last position of the previous page.
	if paginationToken != "" {
		decodedToken, err := model.DecodePaginationToken[model.StakingPositionPagination](paginationToken)
		if err != nil {
			return nil, &InvalidPaginationTokenError{
				Message: "Invalid pagination token",
			}
		}
		filter = bson.M{
			"user_address": userAddress,
			"$or": []bson.M{
				{"created_at": bson.M{"$lt": decodedToken.CreatedAt}},
				{"created_at": decodedToken.CreatedAt, "_id": bson.M{"$gt": decodedToken.StakeTxHash}},
			},
		}
	}

	cursor, err := client.Find(ctx, filter, options)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var positions []model.StakingPositionDocument
	if err = cursor.All(ctx, &positions); err != nil {
		return nil, err
	}

	return toPage(db.cfg.MaxPaginationLimit, positions, model.BuildStakingPositionPaginationToken)
}

// FindLatestStakingPosition returns the position that supersedes all earlier ones.
func (db *Database) FindLatestStakingPosition(ctx context.Context, userAddress string) (*model.StakingPositionDocument, error) {
	filter := bson.M{"user_address": userAddress}
	opts := options.FindOne().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: 1}})

	var position model.StakingPositionDocument
	err := db.collection(model.StakingPositionCollection).FindOne(ctx, filter, opts).Decode(&position)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, &NotFoundError{
				Key:     userAddress,
				Message: "Staking position not found",
			}
		}
		return nil, err
	}
	return &position, nil
}
