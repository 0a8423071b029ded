package store

import (
	"context"
	"sync"
)

// Subscription is a live stream of full collection snapshots. Snapshots are
// delivered in store-write order; a burst of writes may arrive as a single
// snapshot reflecting all of them.
type Subscription[T any] struct {
	snapshots chan []T
	cancel    context.CancelFunc
	done      chan struct{}
	once      sync.Once
}

// Loader reads one full snapshot.
type Loader[T any] func(ctx context.Context) ([]T, error)

// ErrorHandler receives snapshot load failures. The subscription stays open.
type ErrorHandler func(err error)

// NewSubscription starts a subscription that emits an initial snapshot and then
// reloads after every signal on changes. release is called once the
// subscription ends, to detach the change listener.
func NewSubscription[T any](
	ctx context.Context,
	changes <-chan struct{},
	load Loader[T],
	onError ErrorHandler,
	release func(),
) *Subscription[T] {
	ctx, cancel := context.WithCancel(ctx)
	s := &Subscription[T]{
		snapshots: make(chan []T),
		cancel:    cancel,
		done:      make(chan struct{}),
	}

	go func() {
		defer close(s.done)
		defer close(s.snapshots)
		if release != nil {
			defer release()
		}

		if !s.emit(ctx, load, onError) {
			return
		}
		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-changes:
				if !ok {
					return
				}
				if !s.emit(ctx, load, onError) {
					return
				}
			}
		}
	}()

	return s
}

func (s *Subscription[T]) emit(ctx context.Context, load Loader[T], onError ErrorHandler) bool {
	snapshot, err := load(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return false
		}
		if onError != nil {
			onError(err)
		}
		return true
	}
	select {
	case s.snapshots <- snapshot:
		return true
	case <-ctx.Done():
		return false
	}
}

// Snapshots returns the snapshot channel. It is closed when the subscription ends.
func (s *Subscription[T]) Snapshots() <-chan []T {
	return s.snapshots
}

// Unsubscribe stops the subscription and waits for its goroutine to exit.
// It is safe to call more than once.
func (s *Subscription[T]) Unsubscribe() {
	s.once.Do(s.cancel)
	<-s.done
}
