package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"clothing-shop/pkg/utils"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// ErrUnavailable marks connection-level failures at the store boundary.
var ErrUnavailable = errors.New("document store unavailable")

// DB wraps the process-wide client and the application database.
type DB struct {
	client   *mongo.Client
	database *mongo.Database
}

// Collection returns a handle to the named collection
func (db *DB) Collection(name string) *mongo.Collection {
	return db.database.Collection(name)
}

// Database exposes the underlying handle for index management
func (db *DB) Database() *mongo.Database {
	return db.database
}

// Ping checks the primary is reachable
func (db *DB) Ping(ctx context.Context) error {
	if err := db.client.Ping(ctx, readpref.Primary()); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

// Close disconnects the client
func (db *DB) Close(ctx context.Context) error {
	return db.client.Disconnect(ctx)
}

// InitDB opens the Mongo client once and verifies it with a ping.
func InitDB(config utils.DatabaseConfig) (*DB, error) {
	timeout := time.Duration(config.ConnectTimeoutSeconds) * time.Second

	clientOpts := options.Client().
		ApplyURI(config.URI).
		SetConnectTimeout(timeout).
		SetServerSelectionTimeout(timeout)
	if config.MaxPoolSize > 0 {
		clientOpts.SetMaxPoolSize(config.MaxPoolSize)
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w: %v", ErrUnavailable, err)
	}

	db := &DB{
		client:   client,
		database: client.Database(config.Name),
	}

	pingCtx, pingCancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer pingCancel()

	if err := db.Ping(pingCtx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping database failed: %w", err)
	}

	return db, nil
}
