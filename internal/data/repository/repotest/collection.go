// Package repotest provides an in-memory repository.Collection for tests.
package repotest

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"clothing-shop/internal/data/repository"

	"go.mongodb.org/mongo-driver/bson"
)

// Collection keeps documents as bson maps so filters and partial updates
// behave like the Mongo implementation, including dotted field names.
type Collection[T any] struct {
	mu     sync.Mutex
	name   string
	unique []string
	docs   []bson.M

	// Err, when set, is returned by every operation.
	Err error
}

var _ repository.Collection[struct{}] = (*Collection[struct{}])(nil)

// NewCollection returns an empty collection enforcing the given unique fields.
func NewCollection[T any](name string, unique ...string) *Collection[T] {
	return &Collection[T]{name: name, unique: unique}
}

func (c *Collection[T]) Name() string {
	return c.name
}

// Len reports the number of stored documents.
func (c *Collection[T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.docs)
}

func (c *Collection[T]) FindAll(_ context.Context) ([]T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.Err != nil {
		return nil, c.Err
	}

	// undecodable documents are skipped, as the Mongo implementation does
	out := make([]T, 0, len(c.docs))
	for _, doc := range c.docs {
		v, err := decode[T](doc)
		if err != nil {
			continue
		}
		out = append(out, v)
	}
	return out, nil
}

func (c *Collection[T]) FindOne(_ context.Context, filter repository.Filter) (*T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.Err != nil {
		return nil, c.Err
	}

	i := c.index(filter)
	if i < 0 {
		return nil, nil
	}

	v, err := decode[T](c.docs[i])
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (c *Collection[T]) Insert(_ context.Context, doc *T) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.Err != nil {
		return c.Err
	}

	return c.insert(doc)
}

func (c *Collection[T]) InsertMany(_ context.Context, docs []T) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.Err != nil {
		return 0, c.Err
	}

	inserted, duplicates := 0, 0
	for i := range docs {
		if err := c.insert(&docs[i]); err != nil {
			duplicates++
			continue
		}
		inserted++
	}

	if duplicates > 0 {
		return inserted, fmt.Errorf("%d duplicates skipped: %w", duplicates, repository.ErrDuplicate)
	}
	return inserted, nil
}

func (c *Collection[T]) Update(_ context.Context, filter repository.Filter, fields map[string]any) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.Err != nil {
		return c.Err
	}

	i := c.index(filter)
	if i < 0 {
		return repository.ErrNotFound
	}

	updated := clone(c.docs[i])
	for field, value := range fields {
		set(updated, field, value)
	}
	if _, err := decode[T](updated); err != nil {
		return err
	}

	c.docs[i] = updated
	return nil
}

func (c *Collection[T]) Delete(_ context.Context, filter repository.Filter) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.Err != nil {
		return c.Err
	}

	i := c.index(filter)
	if i < 0 {
		return repository.ErrNotFound
	}

	c.docs = append(c.docs[:i], c.docs[i+1:]...)
	return nil
}

func (c *Collection[T]) insert(v *T) error {
	doc, err := encode(v)
	if err != nil {
		return err
	}

	for _, key := range c.unique {
		want, ok := lookup(doc, key)
		if !ok {
			continue
		}
		if c.index(repository.Filter{key: want}) >= 0 {
			return fmt.Errorf("%s %v: %w", key, want, repository.ErrDuplicate)
		}
	}

	c.docs = append(c.docs, doc)
	return nil
}

func (c *Collection[T]) index(filter repository.Filter) int {
	for i, doc := range c.docs {
		if matches(doc, filter) {
			return i
		}
	}
	return -1
}

func matches(doc bson.M, filter repository.Filter) bool {
	for field, want := range filter {
		got, ok := lookup(doc, field)
		if !ok || fmt.Sprint(got) != fmt.Sprint(want) {
			return false
		}
	}
	return true
}

func lookup(doc bson.M, field string) (any, bool) {
	head, rest, nested := strings.Cut(field, ".")
	v, ok := doc[head]
	if !ok || !nested {
		return v, ok
	}

	sub, ok := asMap(v)
	if !ok {
		return nil, false
	}
	return lookup(sub, rest)
}

func set(doc bson.M, field string, value any) {
	head, rest, nested := strings.Cut(field, ".")
	if !nested {
		doc[head] = value
		return
	}

	sub, ok := asMap(doc[head])
	if !ok {
		sub = bson.M{}
	}
	set(sub, rest, value)
	doc[head] = sub
}

func asMap(v any) (bson.M, bool) {
	switch m := v.(type) {
	case bson.M:
		return m, true
	case map[string]any:
		return bson.M(m), true
	case bson.D:
		out := bson.M{}
		for _, e := range m {
			out[e.Key] = e.Value
		}
		return out, true
	default:
		return nil, false
	}
}

func clone(doc bson.M) bson.M {
	out := make(bson.M, len(doc))
	for k, v := range doc {
		if sub, ok := asMap(v); ok {
			out[k] = clone(sub)
			continue
		}
		out[k] = v
	}
	return out
}

func encode[T any](v *T) (bson.M, error) {
	raw, err := bson.Marshal(v)
	if err != nil {
		return nil, err
	}

	var doc bson.M
	if err := bson.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func decode[T any](doc bson.M) (T, error) {
	var v T

	raw, err := bson.Marshal(doc)
	if err != nil {
		return v, err
	}
	err = bson.Unmarshal(raw, &v)
	return v, err
}
