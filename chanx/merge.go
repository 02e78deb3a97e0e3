package chanx

import (
	"context"

	"github.com/baxromumarov/mpmc"
)

// Merge combines several channels into a single [Stream] (fan-in). C is
// closed when every input is shut down and drained, or as soon as ctx is
// cancelled. Values from one input keep their relative order; the
// interleaving across inputs is non-deterministic. Values received but
// not delivered before cancellation are returned by [Stream.Wait].
func Merge[T any](ctx context.Context, cs ...*mpmc.Channel[T]) *Stream[T] {
	return newStream(ctx, cs)
}
