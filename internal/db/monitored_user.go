package db

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/suistake/bridge-saga-service/internal/db/model"
)

// SaveMonitoredUser upserts so a restart of monitoring only refreshes the record.
func (db *Database) SaveMonitoredUser(ctx context.Context, userAddress, sourceChainId string) error {
	filter := bson.M{"_id": userAddress}
	update := bson.M{"$set": bson.M{
		"source_chain_id": sourceChainId,
		"started_at":      time.Now().Unix(),
	}}
	_, err := db.collection(model.MonitoredUserCollection).UpdateOne(
		ctx, filter, update, options.Update().SetUpsert(true),
	)
	return err
}

func (db *Database) DeleteMonitoredUser(ctx context.Context, userAddress string) error {
	_, err := db.collection(model.MonitoredUserCollection).DeleteOne(ctx, bson.M{"_id": userAddress})
	return err
}

func (db *Database) FindMonitoredUsers(ctx context.Context) ([]model.MonitoredUserDocument, error) {
	cursor, err := db.collection(model.MonitoredUserCollection).Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var users []model.MonitoredUserDocument
	if err = cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}
