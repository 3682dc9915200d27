package model

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/suistake/bridge-saga-service/internal/config"
)

const setupTimeout = 10 * time.Second

// Indexes per collection. Primary keys are request ids, user addresses and
// stake tx hashes, so uniqueness comes from _id and none of these are unique.
var collectionIndexes = map[string][]mongo.IndexModel{
	SagaRunCollection: {
		{Keys: bson.D{{Key: "user_address", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "state", Value: 1}, {Key: "updated_at", Value: 1}}},
	},
	StakingPositionCollection: {
		{Keys: bson.D{{Key: "user_address", Value: 1}, {Key: "created_at", Value: -1}, {Key: "_id", Value: 1}}},
	},
	MonitoredUserCollection:    nil,
	UnprocessableMsgCollection: {{Keys: bson.D{{Key: "stored_at", Value: 1}}}},
}

// Setup creates the collections and their indexes. It is idempotent and runs
// on every start before the database client is opened.
func Setup(ctx context.Context, cfg config.DbConfig) error {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.Address))
	if err != nil {
		return err
	}
	defer client.Disconnect(ctx) // nolint:errcheck

	ctx, cancel := context.WithTimeout(ctx, setupTimeout)
	defer cancel()

	database := client.Database(cfg.DbName)
	existing, err := database.ListCollectionNames(ctx, bson.D{})
	if err != nil {
		return err
	}
	known := make(map[string]bool, len(existing))
	for _, name := range existing {
		known[name] = true
	}

	for name, indexes := range collectionIndexes {
		if !known[name] {
			if err := database.CreateCollection(ctx, name); err != nil {
				return err
			}
			log.Debug().Str("collection", name).Msg("collection created")
		}
		if len(indexes) == 0 {
			continue
		}
		// Creating an index that already exists with the same keys is a no-op.
		if _, err := database.Collection(name).Indexes().CreateMany(ctx, indexes); err != nil {
			return err
		}
	}

	log.Info().Msg("Collections and indexes are in place")
	return nil
}
