package chanx

import (
	"context"

	"github.com/baxromumarov/mpmc"
)

// Out returns a [Stream] whose C yields every value received from c. C is
// closed once c is shut down and drained, c is poisoned, or ctx is
// cancelled. A value received but not delivered before cancellation is
// returned by [Stream.Wait].
func Out[T any](ctx context.Context, c *mpmc.Channel[T]) *Stream[T] {
	return newStream(ctx, []*mpmc.Channel[T]{c})
}

// In sends every value read from in to c, blocking while c is full. When
// in is closed, In shuts c down and returns nil. It returns
// [mpmc.ErrClosed] (or the poisoning error) if c stops accepting values,
// and ctx.Err() if ctx is cancelled while waiting on in; c is left open
// in both of those cases.
func In[T any](ctx context.Context, in <-chan T, c *mpmc.Channel[T]) error {
	for {
		select {
		case v, ok := <-in:
			if !ok {
				return c.Shutdown()
			}
			if err := c.Send(v); err != nil {
				return err
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
