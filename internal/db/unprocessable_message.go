package db

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/suistake/bridge-saga-service/internal/db/model"
)

func (db *Database) SaveUnprocessableMessage(ctx context.Context, messageBody, receipt string) error {
	doc := model.NewUnprocessableMessageDocument(messageBody, receipt, time.Now().Unix())
	_, err := db.collection(model.UnprocessableMsgCollection).InsertOne(ctx, doc)
	return err
}

// FindUnprocessableMessages returns parked messages oldest first, so a replay
// re-enqueues requests in the order they were first received.
func (db *Database) FindUnprocessableMessages(ctx context.Context) ([]model.UnprocessableMessageDocument, error) {
	opts := options.Find().SetSort(bson.D{{Key: "stored_at", Value: 1}})
	cursor, err := db.collection(model.UnprocessableMsgCollection).Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var messages []model.UnprocessableMessageDocument
	if err = cursor.All(ctx, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

// DeleteUnprocessableMessage removes a parked message by its document id.
func (db *Database) DeleteUnprocessableMessage(ctx context.Context, id interface{}) error {
	_, err := db.collection(model.UnprocessableMsgCollection).DeleteOne(ctx, bson.M{"_id": id})
	return err
}
