package repository

import (
	"context"
	"errors"
	"fmt"

	"clothing-shop/pkg/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// indexPlan lists the indexes each collection needs. Record ids are unique at
// the store level so concurrent writers cannot duplicate them.
func indexPlan() map[string][]mongo.IndexModel {
	uniqueID := mongo.IndexModel{
		Keys:    bson.D{{Key: "id", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("id_unique"),
	}

	return map[string][]mongo.IndexModel{
		AccountsCollection: {
			{
				Keys:    bson.D{{Key: "email", Value: 1}},
				Options: options.Index().SetUnique(true).SetName("email_unique"),
			},
		},
		ProductsCollection: {
			uniqueID,
			{
				Keys:    bson.D{{Key: "product_name", Value: "text"}},
				Options: options.Index().SetName("product_name_text"),
			},
		},
		UsersCollection: {uniqueID},
		OrdersCollection: {
			uniqueID,
			{
				Keys:    bson.D{{Key: "user_id", Value: 1}},
				Options: options.Index().SetName("user_id"),
			},
		},
	}
}

// EnsureIndexes creates every planned index. It keeps going after a failure
// and returns all of them joined.
func EnsureIndexes(ctx context.Context, db *database.DB, log *zap.Logger) error {
	var errs []error

	for name, models := range indexPlan() {
		created, err := db.Collection(name).Indexes().CreateMany(ctx, models)
		if err != nil {
			log.Error("Failed to create indexes",
				zap.String("collection", name),
				zap.Error(err))
			errs = append(errs, fmt.Errorf("indexes on %s: %w", name, classify(err)))
			continue
		}

		log.Debug("Indexes ready",
			zap.String("collection", name),
			zap.Strings("indexes", created))
	}

	return errors.Join(errs...)
}
