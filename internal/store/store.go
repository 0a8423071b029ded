// Package store defines the document-store contract the core depends on.
// Records live in named collections and are addressed by string identity.
package store

import (
	"context"
	"errors"
)

// Record is implemented by every stored model.
type Record interface {
	GetID() string
}

// Versioned is implemented by records carrying an optimistic concurrency
// version. Every Update of a Versioned record increments its version.
type Versioned interface {
	GetVersion() int64
}

// ErrNotFound is returned when no record has the requested identity.
var ErrNotFound = errors.New("record not found")

// ErrVersionConflict is returned by Update when an IfVersion precondition fails.
var ErrVersionConflict = errors.New("record version conflict")

// Store is durable keyed storage for one collection of T.
type Store[T any] interface {
	// Collection returns the collection name this store writes to.
	Collection() string
	// Create persists rec and returns its identity. A client-generated identity
	// already set on rec is kept.
	Create(ctx context.Context, rec *T) (string, error)
	Get(ctx context.Context, id string) (*T, error)
	// Update applies a partial update. Keys are column names. For Versioned
	// records the version is incremented unless fields sets it explicitly.
	Update(ctx context.Context, id string, fields map[string]any, opts ...UpdateOption) error
	Delete(ctx context.Context, id string) error
	QueryByField(ctx context.Context, field string, value any) ([]T, error)
	List(ctx context.Context, opts ListOptions) ([]T, int64, error)
	// Subscribe streams full snapshots of the collection, starting with the
	// current state. Release it with Unsubscribe or by cancelling ctx.
	Subscribe(ctx context.Context, opts SubscribeOptions) (*Subscription[T], error)
}

// OrderBy sorts listings and snapshots by a column.
type OrderBy struct {
	Field string
	Desc  bool
}

// ListOptions controls List. A zero Limit returns every record.
type ListOptions struct {
	OrderBy OrderBy
	Offset  int
	Limit   int
}

// SubscribeOptions controls Subscribe.
type SubscribeOptions struct {
	OrderBy OrderBy
}

// UpdateOptions holds preconditions collected from UpdateOption values.
type UpdateOptions struct {
	IfVersion *int64
}

// UpdateOption configures an Update call.
type UpdateOption func(*UpdateOptions)

// IfVersion makes the update succeed only if the stored version column equals v.
func IfVersion(v int64) UpdateOption {
	return func(o *UpdateOptions) {
		o.IfVersion = &v
	}
}

// ApplyUpdateOptions folds opts into an UpdateOptions value.
func ApplyUpdateOptions(opts ...UpdateOption) UpdateOptions {
	var o UpdateOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
