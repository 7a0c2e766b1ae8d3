package importer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"clothing-shop/internal/data/entity"
	"clothing-shop/internal/data/repository"

	"go.uber.org/zap"
)

var (
	// ErrMalformed marks fixture or markup input that cannot be parsed.
	ErrMalformed     = errors.New("malformed input")
	ErrUnknownField  = errors.New("unknown field")
	ErrNoFields      = errors.New("no fields to update")
	ErrUnsupported   = errors.New("operation not supported")
	ErrNothingToSave = errors.New("no data to save")
)

// Record is any catalog document keyed by an application-assigned id.
type Record interface {
	RecordID() int
}

type FieldKind int

const (
	KindString FieldKind = iota
	KindInt
	// KindCount is a non-negative integer such as stock.
	KindCount
	KindFloat
)

// Store runs the tool's record operations against one collection.
type Store[T Record] struct {
	label      string
	coll       repository.Collection[T]
	fields     map[string]FieldKind
	nameFilter func(name string) repository.Filter
	log        *zap.Logger
}

func NewProductStore(coll repository.Collection[entity.Product], log *zap.Logger) *Store[entity.Product] {
	return &Store[entity.Product]{
		label: "product",
		coll:  coll,
		fields: map[string]FieldKind{
			"id":               KindInt,
			"product_name":     KindString,
			"product_category": KindString,
			"size":             KindString,
			"price":            KindFloat,
			"stock":            KindCount,
			"brand":            KindString,
			"color":            KindString,
			"material":         KindString,
			"release_date":     KindString,
		},
		nameFilter: func(name string) repository.Filter {
			return repository.Filter{"product_name": name}
		},
		log: log.With(zap.String("store", "product")),
	}
}

func NewUserStore(coll repository.Collection[entity.User], log *zap.Logger) *Store[entity.User] {
	return &Store[entity.User]{
		label: "user",
		coll:  coll,
		fields: map[string]FieldKind{
			"id":                KindInt,
			"first_name":        KindString,
			"last_name":         KindString,
			"email":             KindString,
			"gender":            KindString,
			"phone":             KindString,
			"address.street":    KindString,
			"address.city":      KindString,
			"address.state":     KindString,
			"address.zip":       KindString,
			"registration_date": KindString,
		},
		nameFilter: userNameFilter,
		log:        log.With(zap.String("store", "user")),
	}
}

func NewOrderStore(coll repository.Collection[entity.Order], log *zap.Logger) *Store[entity.Order] {
	return &Store[entity.Order]{
		label: "order",
		coll:  coll,
		fields: map[string]FieldKind{
			"id":               KindInt,
			"user_id":          KindInt,
			"order_date":       KindString,
			"status":           KindString,
			"total_price":      KindFloat,
			"shipping_address": KindString,
			"payment_method":   KindString,
		},
		log: log.With(zap.String("store", "order")),
	}
}

// userNameFilter matches "First Last" on both name fields, or a single word on first_name.
func userNameFilter(name string) repository.Filter {
	first, last, found := strings.Cut(strings.TrimSpace(name), " ")
	if !found {
		return repository.Filter{"first_name": first}
	}
	return repository.Filter{
		"first_name": first,
		"last_name":  strings.TrimSpace(last),
	}
}

func (s *Store[T]) Label() string {
	return s.label
}

// LoadFromFile bulk-inserts a JSON array fixture. Duplicate ids are skipped and
// reported through an ErrDuplicate-wrapping error alongside the inserted count.
func (s *Store[T]) LoadFromFile(ctx context.Context, path string) (int, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read %s: %w", path, err)
	}

	var docs []T
	if err := json.Unmarshal(raw, &docs); err != nil {
		s.log.Warn("Fixture rejected", zap.String("path", path), zap.Error(err))
		return 0, fmt.Errorf("%w: %s: %v", ErrMalformed, path, err)
	}

	inserted, err := s.coll.InsertMany(ctx, docs)
	s.log.Info("Fixture loaded",
		zap.String("path", path),
		zap.Int("records", len(docs)),
		zap.Int("inserted", inserted))
	return inserted, err
}

// Create inserts rec unless its id is taken, in which case ErrDuplicate is
// returned. The lookup covers collections whose unique index is missing; the
// index still catches concurrent writers.
func (s *Store[T]) Create(ctx context.Context, rec T) error {
	existing, err := s.coll.FindOne(ctx, repository.ByID(rec.RecordID()))
	if err != nil {
		return fmt.Errorf("look up %s %d: %w", s.label, rec.RecordID(), err)
	}
	if existing != nil {
		s.log.Warn("Record id already taken", zap.Int("id", rec.RecordID()))
		return fmt.Errorf("create %s %d: %w", s.label, rec.RecordID(), repository.ErrDuplicate)
	}

	if err := s.coll.Insert(ctx, &rec); err != nil {
		return fmt.Errorf("create %s %d: %w", s.label, rec.RecordID(), err)
	}

	s.log.Info("Record created", zap.Int("id", rec.RecordID()))
	return nil
}

func (s *Store[T]) All(ctx context.Context) ([]T, error) {
	return s.coll.FindAll(ctx)
}

// Dump writes every record as one JSON line and returns how many were written.
func (s *Store[T]) Dump(ctx context.Context, w io.Writer) (int, error) {
	records, err := s.All(ctx)
	if err != nil {
		return 0, err
	}

	enc := json.NewEncoder(w)
	for i := range records {
		if err := enc.Encode(records[i]); err != nil {
			return i, err
		}
	}
	return len(records), nil
}

func (s *Store[T]) UpdateByID(ctx context.Context, id int, fields map[string]any) error {
	if len(fields) == 0 {
		return ErrNoFields
	}

	if err := s.coll.Update(ctx, repository.ByID(id), fields); err != nil {
		return fmt.Errorf("update %s %d: %w", s.label, id, err)
	}

	s.log.Info("Record updated", zap.Int("id", id), zap.Any("fields", fields))
	return nil
}

func (s *Store[T]) DeleteByName(ctx context.Context, name string) error {
	if s.nameFilter == nil {
		return fmt.Errorf("delete %s by name: %w", s.label, ErrUnsupported)
	}

	if err := s.coll.Delete(ctx, s.nameFilter(name)); err != nil {
		return fmt.Errorf("delete %s %q: %w", s.label, name, err)
	}

	s.log.Info("Record deleted", zap.String("name", name))
	return nil
}

func (s *Store[T]) DeleteByID(ctx context.Context, id int) error {
	if err := s.coll.Delete(ctx, repository.ByID(id)); err != nil {
		return fmt.Errorf("delete %s %d: %w", s.label, id, err)
	}

	s.log.Info("Record deleted", zap.Int("id", id))
	return nil
}

// ParseField converts raw console input to the stored type of field.
func (s *Store[T]) ParseField(field, raw string) (any, error) {
	kind, ok := s.fields[field]
	if !ok {
		return nil, fmt.Errorf("%w %q for %s", ErrUnknownField, field, s.label)
	}

	raw = strings.TrimSpace(raw)
	switch kind {
	case KindInt, KindCount:
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("%s must be a whole number", field)
		}
		if kind == KindCount && n < 0 {
			return nil, fmt.Errorf("%s cannot be negative", field)
		}
		return n, nil
	case KindFloat:
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("%s must be a number", field)
		}
		return f, nil
	default:
		return raw, nil
	}
}
