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

// Filter selects documents by exact field equality. Dotted names reach into
// embedded documents.
type Filter map[string]any

// ByID matches the application-assigned integer id.
func ByID(id int) Filter {
	return Filter{"id": id}
}

// Collection is the typed document-store contract shared by the API and the
// import tool.
type Collection[T any] interface {
	Name() string
	FindAll(ctx context.Context) ([]T, error)
	// FindOne returns (nil, nil) when nothing matches.
	FindOne(ctx context.Context, filter Filter) (*T, error)
	Insert(ctx context.Context, doc *T) error
	// InsertMany is unordered: documents rejected as duplicates are skipped,
	// counted out of the result and reported as ErrDuplicate.
	InsertMany(ctx context.Context, docs []T) (int, error)
	Update(ctx context.Context, filter Filter, fields map[string]any) error
	Delete(ctx context.Context, filter Filter) error
}

type mongoCollection[T any] struct {
	coll *mongo.Collection
	log  *zap.Logger
}

func NewCollection[T any](db *database.DB, name string, log *zap.Logger) Collection[T] {
	return &mongoCollection[T]{
		coll: db.Collection(name),
		log:  log.With(zap.String("collection", name)),
	}
}

func (c *mongoCollection[T]) Name() string {
	return c.coll.Name()
}

func (c *mongoCollection[T]) FindAll(ctx context.Context) ([]T, error) {
	opts := options.Find().SetProjection(bson.M{"_id": 0})

	cursor, err := c.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		c.log.Error("Failed to find documents", zap.Error(err))
		return nil, fmt.Errorf("find all in %s: %w", c.Name(), classify(err))
	}

	docs, err := decodeAll[T](ctx, cursor, c.log)
	if err != nil {
		c.log.Error("Failed to read documents", zap.Error(err))
		return nil, fmt.Errorf("read %s: %w", c.Name(), classify(err))
	}

	return docs, nil
}

// documentCursor is the part of *mongo.Cursor that decodeAll walks.
type documentCursor interface {
	Next(ctx context.Context) bool
	Decode(val interface{}) error
	Err() error
	Close(ctx context.Context) error
}

// decodeAll decodes documents one at a time. Documents that do not fit T are
// logged and skipped so one stray record cannot hide the rest.
func decodeAll[T any](ctx context.Context, cursor documentCursor, log *zap.Logger) ([]T, error) {
	defer cursor.Close(ctx)

	docs := make([]T, 0)
	skipped := 0
	for cursor.Next(ctx) {
		var doc T
		if err := cursor.Decode(&doc); err != nil {
			skipped++
			log.Warn("Skipping undecodable document", zap.Error(err))
			continue
		}
		docs = append(docs, doc)
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}

	if skipped > 0 {
		log.Warn("Listing skipped documents", zap.Int("skipped", skipped), zap.Int("returned", len(docs)))
	}
	return docs, nil
}

func (c *mongoCollection[T]) FindOne(ctx context.Context, filter Filter) (*T, error) {
	opts := options.FindOne().SetProjection(bson.M{"_id": 0})

	var doc T
	err := c.coll.FindOne(ctx, bson.M(filter), opts).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		c.log.Error("Failed to find document", zap.Error(err), zap.Any("filter", filter))
		return nil, fmt.Errorf("find one in %s: %w", c.Name(), classify(err))
	}

	return &doc, nil
}

func (c *mongoCollection[T]) Insert(ctx context.Context, doc *T) error {
	if _, err := c.coll.InsertOne(ctx, doc); err != nil {
		err = classify(err)
		if errors.Is(err, ErrDuplicate) {
			c.log.Warn("Duplicate document rejected", zap.Error(err))
		} else {
			c.log.Error("Failed to insert document", zap.Error(err))
		}
		return fmt.Errorf("insert into %s: %w", c.Name(), err)
	}

	return nil
}

func (c *mongoCollection[T]) InsertMany(ctx context.Context, docs []T) (int, error) {
	if len(docs) == 0 {
		return 0, nil
	}

	batch := make([]interface{}, len(docs))
	for i := range docs {
		batch[i] = docs[i]
	}

	res, err := c.coll.InsertMany(ctx, batch, options.InsertMany().SetOrdered(false))
	if err == nil {
		return len(res.InsertedIDs), nil
	}

	var bwe mongo.BulkWriteException
	if !errors.As(err, &bwe) || bwe.WriteConcernError != nil {
		c.log.Error("Failed to insert documents", zap.Error(err), zap.Int("count", len(docs)))
		return 0, fmt.Errorf("insert many into %s: %w", c.Name(), classify(err))
	}

	inserted := len(docs) - len(bwe.WriteErrors)
	for _, we := range bwe.WriteErrors {
		if !isDuplicateCode(we.Code) {
			c.log.Error("Bulk insert partially failed", zap.Error(err), zap.Int("inserted", inserted))
			return inserted, fmt.Errorf("insert many into %s: %w", c.Name(), err)
		}
	}

	c.log.Warn("Bulk insert skipped duplicates",
		zap.Int("inserted", inserted),
		zap.Int("duplicates", len(bwe.WriteErrors)))
	return inserted, fmt.Errorf("insert many into %s: %d duplicates skipped: %w",
		c.Name(), len(bwe.WriteErrors), ErrDuplicate)
}

func (c *mongoCollection[T]) Update(ctx context.Context, filter Filter, fields map[string]any) error {
	res, err := c.coll.UpdateOne(ctx, bson.M(filter), bson.M{"$set": bson.M(fields)})
	if err != nil {
		c.log.Error("Failed to update document", zap.Error(err), zap.Any("filter", filter))
		return fmt.Errorf("update in %s: %w", c.Name(), classify(err))
	}

	if res.MatchedCount == 0 {
		return fmt.Errorf("update in %s: %w", c.Name(), ErrNotFound)
	}

	return nil
}

func (c *mongoCollection[T]) Delete(ctx context.Context, filter Filter) error {
	res, err := c.coll.DeleteOne(ctx, bson.M(filter))
	if err != nil {
		c.log.Error("Failed to delete document", zap.Error(err), zap.Any("filter", filter))
		return fmt.Errorf("delete from %s: %w", c.Name(), classify(err))
	}

	if res.DeletedCount == 0 {
		return fmt.Errorf("delete from %s: %w", c.Name(), ErrNotFound)
	}

	c.log.Info("Document deleted", zap.Any("filter", filter))
	return nil
}

func isDuplicateCode(code int) bool {
	return code == 11000 || code == 11001 || code == 12582
}
