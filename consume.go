package mpmc

import "iter"

// Consumer processes values received from a [Channel].
type Consumer[T any] interface {
	Consume(v T) error
}

// ConsumerFunc adapts an ordinary function to the [Consumer] interface.
type ConsumerFunc[T any] func(v T) error

// Consume calls f(v).
func (f ConsumerFunc[T]) Consume(v T) error {
	return f(v)
}

// ForEach receives values and passes each one to consumer until the
// channel is shut down and drained, in which case it returns nil. If
// consumer returns an error, ForEach stops and returns it; the channel is
// left as is. The consumer runs outside the channel lock.
//
// Several goroutines may run ForEach on the same channel; each value is
// delivered to exactly one of them.
func (c *Channel[T]) ForEach(consumer Consumer[T]) error {
	for {
		v, err := c.Recv()
		if err != nil {
			if IsClosed(err) {
				return nil
			}
			return err
		}
		if err := consumer.Consume(v); err != nil {
			return err
		}
	}
}

// All returns an iterator over received values. Iteration ends when the
// channel is shut down and drained, or poisoned; use [Channel.ForEach]
// when the failure must be observed.
//
//	for v := range ch.All() {
//	    process(v)
//	}
func (c *Channel[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for {
			v, err := c.Recv()
			if err != nil {
				return
			}
			if !yield(v) {
				return
			}
		}
	}
}
