package chanx

import (
	"context"
	"slices"
	"sync"

	"github.com/baxromumarov/mpmc"
)

// Stream is the native side of [Out] and [Merge]: pump goroutines receive
// from one or more [mpmc.Channel] values and forward to C.
//
// A value is never lost to cancellation. Once a pump has received a value
// it either delivers it on C or keeps it for [Stream.Wait].
type Stream[T any] struct {
	// C yields forwarded values. It is closed when every source is shut
	// down and drained, or as soon as the context is cancelled.
	C <-chan T

	out   chan T
	pumps sync.WaitGroup
	once  sync.Once

	mu      sync.Mutex
	closing bool
	sending sync.WaitGroup // pumps currently inside a send on out
	held    []T
}

func newStream[T any](ctx context.Context, srcs []*mpmc.Channel[T]) *Stream[T] {
	out := make(chan T)
	s := &Stream[T]{C: out, out: out}

	s.pumps.Add(len(srcs))
	for _, c := range srcs {
		go func() {
			defer s.pumps.Done()
			s.pump(ctx, c)
		}()
	}

	stop := context.AfterFunc(ctx, s.close)
	go func() {
		s.pumps.Wait()
		stop()
		s.close()
	}()
	return s
}

func (s *Stream[T]) pump(ctx context.Context, c *mpmc.Channel[T]) {
	for {
		if ctx.Err() != nil {
			return
		}
		v, err := c.Recv()
		if err != nil {
			return
		}
		if !s.deliver(ctx, v) {
			return
		}
	}
}

// deliver sends v on out, or holds it for Wait if the stream is closing
// or ctx is cancelled first. Reports whether v was delivered.
func (s *Stream[T]) deliver(ctx context.Context, v T) bool {
	s.mu.Lock()
	if s.closing {
		s.held = append(s.held, v)
		s.mu.Unlock()
		return false
	}
	s.sending.Add(1)
	s.mu.Unlock()
	defer s.sending.Done()

	select {
	case s.out <- v:
		return true
	case <-ctx.Done():
		s.mu.Lock()
		s.held = append(s.held, v)
		s.mu.Unlock()
		return false
	}
}

// close closes out once no pump can send on it any more. Sends in flight
// finish promptly: either a reader takes the value or ctx is done.
func (s *Stream[T]) close() {
	s.once.Do(func() {
		s.mu.Lock()
		s.closing = true
		s.mu.Unlock()

		s.sending.Wait()
		close(s.out)
	})
}

// Wait blocks until every pump goroutine has exited and returns the
// values that were received from a source but not delivered on C because
// the context was cancelled. Values from one source keep their order and
// precede anything still buffered in that source.
//
// Cancellation cannot interrupt a pump parked in Recv on an empty, open
// source. Such a pump exits on the source's next value, which Wait then
// returns, or on its shutdown.
func (s *Stream[T]) Wait() []T {
	s.pumps.Wait()
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.held)
}
