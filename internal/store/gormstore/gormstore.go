// Package gormstore implements store.Store on top of GORM. Each Store serves
// one collection, mapped to the table of its model type.
package gormstore

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"cashflow/internal/events"
	"cashflow/internal/logger"
	"cashflow/internal/store"
)

// VersionColumn is the column checked by store.IfVersion preconditions.
const VersionColumn = "version"

var idColumn = clause.Column{Name: "id"}

// Store is a GORM-backed store.Store. Writes are reported to the notifier after
// they commit; Subscribe listens on the source for the same collection.
type Store[T any] struct {
	db         *gorm.DB
	collection string
	notifier   events.Notifier
	source     events.Source
	versioned  bool
	log        *zap.SugaredLogger
}

var _ store.Store[struct{}] = (*Store[struct{}])(nil)

// New creates a Store for the given collection. notifier and source may be nil,
// in which case writes are not announced and Subscribe is unavailable.
func New[T any](db *gorm.DB, collection string, notifier events.Notifier, source events.Source) *Store[T] {
	_, versioned := any(new(T)).(store.Versioned)
	return &Store[T]{
		db:         db,
		collection: collection,
		notifier:   notifier,
		source:     source,
		versioned:  versioned,
		log:        logger.Named("store").With("collection", collection),
	}
}

// Collection implements store.Store.
func (s *Store[T]) Collection() string {
	return s.collection
}

// Create implements store.Store.
func (s *Store[T]) Create(ctx context.Context, rec *T) (string, error) {
	if err := s.db.WithContext(ctx).Create(rec).Error; err != nil {
		return "", fmt.Errorf("create %s: %w", s.collection, err)
	}
	id := recordID(rec)
	s.publish(ctx, events.OpCreate, id)
	return id, nil
}

// Get implements store.Store.
func (s *Store[T]) Get(ctx context.Context, id string) (*T, error) {
	var rec T
	err := s.db.WithContext(ctx).Where(clause.Eq{Column: idColumn, Value: id}).First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("get %s %s: %w", s.collection, id, err)
	}
	return &rec, nil
}

// Update implements store.Store. When an IfVersion precondition is given and no
// row matches, Update distinguishes a missing record from a stale version.
func (s *Store[T]) Update(ctx context.Context, id string, fields map[string]any, opts ...store.UpdateOption) error {
	o := store.ApplyUpdateOptions(opts...)

	q := s.db.WithContext(ctx).Model(new(T)).Where(clause.Eq{Column: idColumn, Value: id})
	if o.IfVersion != nil {
		q = q.Where(clause.Eq{Column: clause.Column{Name: VersionColumn}, Value: *o.IfVersion})
	}

	if _, set := fields[VersionColumn]; s.versioned && !set {
		bumped := make(map[string]any, len(fields)+1)
		for k, v := range fields {
			bumped[k] = v
		}
		bumped[VersionColumn] = gorm.Expr(VersionColumn + " + 1")
		fields = bumped
	}

	result := q.Updates(fields)
	if result.Error != nil {
		return fmt.Errorf("update %s %s: %w", s.collection, id, result.Error)
	}
	if result.RowsAffected == 0 {
		if o.IfVersion == nil {
			return store.ErrNotFound
		}
		if _, err := s.Get(ctx, id); err != nil {
			return err
		}
		return store.ErrVersionConflict
	}

	s.publish(ctx, events.OpUpdate, id)
	return nil
}

// Delete implements store.Store.
func (s *Store[T]) Delete(ctx context.Context, id string) error {
	result := s.db.WithContext(ctx).Where(clause.Eq{Column: idColumn, Value: id}).Delete(new(T))
	if result.Error != nil {
		return fmt.Errorf("delete %s %s: %w", s.collection, id, result.Error)
	}
	if result.RowsAffected == 0 {
		return store.ErrNotFound
	}
	s.publish(ctx, events.OpDelete, id)
	return nil
}

// QueryByField implements store.Store. field is a column name.
func (s *Store[T]) QueryByField(ctx context.Context, field string, value any) ([]T, error) {
	var recs []T
	err := s.db.WithContext(ctx).
		Where(clause.Eq{Column: clause.Column{Name: field}, Value: value}).
		Order(clause.OrderByColumn{Column: idColumn}).
		Find(&recs).Error
	if err != nil {
		return nil, fmt.Errorf("query %s by %s: %w", s.collection, field, err)
	}
	return recs, nil
}

// List implements store.Store.
func (s *Store[T]) List(ctx context.Context, opts store.ListOptions) ([]T, int64, error) {
	var total int64
	if err := s.db.WithContext(ctx).Model(new(T)).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count %s: %w", s.collection, err)
	}

	q := s.ordered(s.db.WithContext(ctx), opts.OrderBy)
	if opts.Limit > 0 {
		q = q.Offset(opts.Offset).Limit(opts.Limit)
	}

	var recs []T
	if err := q.Find(&recs).Error; err != nil {
		return nil, 0, fmt.Errorf("list %s: %w", s.collection, err)
	}
	return recs, total, nil
}

// Subscribe implements store.Store.
func (s *Store[T]) Subscribe(ctx context.Context, opts store.SubscribeOptions) (*store.Subscription[T], error) {
	if s.source == nil {
		return nil, fmt.Errorf("subscribe %s: no change source configured", s.collection)
	}

	changes, release := s.source.Listen(s.collection)
	load := func(ctx context.Context) ([]T, error) {
		recs, _, err := s.List(ctx, store.ListOptions{OrderBy: opts.OrderBy})
		return recs, err
	}
	onError := func(err error) {
		s.log.Errorw("failed to load snapshot", "error", err)
	}
	return store.NewSubscription(ctx, changes, load, onError, release), nil
}

// ordered sorts by the requested column, breaking ties by primary key so
// snapshots are stable.
func (s *Store[T]) ordered(q *gorm.DB, ob store.OrderBy) *gorm.DB {
	if ob.Field != "" {
		q = q.Order(clause.OrderByColumn{Column: clause.Column{Name: ob.Field}, Desc: ob.Desc})
	}
	return q.Order(clause.OrderByColumn{Column: idColumn, Desc: ob.Desc})
}

func (s *Store[T]) publish(ctx context.Context, op events.Op, id string) {
	if s.notifier == nil {
		return
	}
	s.notifier.Publish(ctx, events.NewChange(s.collection, op, id))
}

func recordID(rec any) string {
	if r, ok := rec.(store.Record); ok {
		return r.GetID()
	}
	return ""
}
