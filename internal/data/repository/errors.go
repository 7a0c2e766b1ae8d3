package repository

import (
	"errors"
	"fmt"

	"clothing-shop/pkg/database"

	"go.mongodb.org/mongo-driver/mongo"
)

var (
	// ErrNotFound is returned when an update or delete matched nothing.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a unique index rejects a write.
	ErrDuplicate = errors.New("record already exists")
)

// classify maps driver errors onto the package sentinels.
func classify(err error) error {
	switch {
	case err == nil:
		return nil
	case mongo.IsDuplicateKeyError(err):
		return fmt.Errorf("%w: %v", ErrDuplicate, err)
	case mongo.IsNetworkError(err), mongo.IsTimeout(err),
		errors.Is(err, mongo.ErrClientDisconnected):
		return fmt.Errorf("%w: %v", database.ErrUnavailable, err)
	default:
		return err
	}
}
