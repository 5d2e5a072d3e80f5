// Package rangeview provides lazy, composable traversal over chain collections.
//
// A Seq is pull-based: nothing is read from storage until the consumer ranges over it, and each
// element is produced only when the consumer advances. An error element terminates the traversal.
// Whether a Seq can be traversed more than once depends on its source: storage-backed and slice
// sources are restartable, sources built with FromIterator are single-pass.
package rangeview

import (
	"context"
	"errors"
	"sync/atomic"
)

// ErrSourceConsumed is yielded when a single-pass source is traversed a second time.
var ErrSourceConsumed = errors.New("single-pass source already consumed")

// Seq is a lazy sequence of T. It is range-able as `for v, err := range seq`.
type Seq[T any] func(yield func(T, error) bool)

// Iterator is a single-pass pull iterator, e.g. a cursor over an external stream.
// Next returns false once the iterator is exhausted.
type Iterator[T any] interface {
	Next(ctx context.Context) (T, bool, error)
}

// Of returns a restartable sequence over the given items.
func Of[T any](items ...T) Seq[T] {
	return FromSlice(items)
}

// FromSlice returns a restartable sequence over items. The slice is not copied.
func FromSlice[T any](items []T) Seq[T] {
	return func(yield func(T, error) bool) {
		for _, item := range items {
			if !yield(item, nil) {
				return
			}
		}
	}
}

// Empty returns a sequence with no elements.
func Empty[T any]() Seq[T] {
	return func(func(T, error) bool) {}
}

// Fail returns a sequence that yields err and stops.
func Fail[T any](err error) Seq[T] {
	return func(yield func(T, error) bool) {
		var zero T
		yield(zero, err)
	}
}

// FromIterator adapts a single-pass iterator. Traversing the result a second time yields ErrSourceConsumed.
func FromIterator[T any](ctx context.Context, it Iterator[T]) Seq[T] {
	var started atomic.Bool
	return func(yield func(T, error) bool) {
		var zero T
		if !started.CompareAndSwap(false, true) {
			yield(zero, ErrSourceConsumed)
			return
		}
		for {
			item, ok, err := it.Next(ctx)
			if err != nil {
				yield(zero, err)
				return
			}
			if !ok {
				return
			}
			if !yield(item, nil) {
				return
			}
		}
	}
}

// Collect materializes the sequence. It stops at the first error.
func (s Seq[T]) Collect() ([]T, error) {
	var items []T
	for item, err := range s {
		if err != nil {
			return items, err
		}
		items = append(items, item)
	}
	return items, nil
}

// Count pulls the whole sequence and returns the number of elements.
func (s Seq[T]) Count() (int, error) {
	n := 0
	for _, err := range s {
		if err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}
