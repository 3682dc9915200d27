package db

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/suistake/bridge-saga-service/internal/config"
)

const (
	appName                = "bridge-saga-service"
	serverSelectionTimeout = 10 * time.Second
)

type Database struct {
	DbName string
	Client *mongo.Client
	cfg    config.DbConfig
}

// DbResultMap is one page of results. An empty PaginationToken marks the last page.
type DbResultMap[T any] struct {
	Data            []T    `json:"data"`
	PaginationToken string `json:"paginationToken"`
}

// New opens a lazily connected client. Connectivity is checked by Ping.
func New(ctx context.Context, cfg config.DbConfig) (*Database, error) {
	clientOps := options.Client().
		ApplyURI(cfg.Address).
		SetAppName(appName).
		SetServerSelectionTimeout(serverSelectionTimeout)
	client, err := mongo.Connect(ctx, clientOps)
	if err != nil {
		return nil, err
	}

	return &Database{
		DbName: cfg.DbName,
		Client: client,
		cfg:    cfg,
	}, nil
}

func (db *Database) Ping(ctx context.Context) error {
	return db.Client.Ping(ctx, readpref.Primary())
}

func (db *Database) Close(ctx context.Context) error {
	return db.Client.Disconnect(ctx)
}

func (db *Database) collection(name string) *mongo.Collection {
	return db.Client.Database(db.DbName).Collection(name)
}

// pageFetchLimit is one more than the page size, the extra row only tells
// whether another page exists.
func (db *Database) pageFetchLimit() int64 {
	return db.cfg.MaxPaginationLimit + 1
}

// toPage trims a result fetched with pageFetchLimit to one page and builds
// the token from the last row kept.
func toPage[T any](pageSize int64, result []T, tokenBuilder func(T) (string, error)) (*DbResultMap[T], error) {
	if int64(len(result)) <= pageSize {
		return &DbResultMap[T]{Data: result}, nil
	}
	page := result[:pageSize]
	token, err := tokenBuilder(page[len(page)-1])
	if err != nil {
		return nil, err
	}
	return &DbResultMap[T]{Data: page, PaginationToken: token}, nil
}
