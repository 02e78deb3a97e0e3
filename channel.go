package mpmc

import (
	"sync"

	"github.com/sirupsen/logrus"
)

const (
	opSend     = "send"
	opRecv     = "recv"
	opTrySend  = "try-send"
	opTryRecv  = "try-recv"
	opDrain    = "drain"
	opShutdown = "shutdown"
)

// Channel is a bounded FIFO queue shared by any number of producer and
// consumer goroutines.
//
// Send blocks while the buffer is full and Recv blocks while it is empty.
// Blocked goroutines sleep on a condition variable and consume no CPU.
// Shutdown closes the channel irreversibly: pending and future sends fail
// with [ErrClosed], while receivers keep draining buffered values and get
// [ErrClosed] only once the buffer is empty.
//
// A Channel must be created with [New] and shared by pointer.
type Channel[T any] struct {
	mu       sync.Locker
	notFull  *sync.Cond // producers wait here while the buffer is full
	notEmpty *sync.Cond // consumers wait here while the buffer is empty

	// Guarded by mu.
	buf      ring[T]
	open     bool
	poisoned *LockError

	sent             int64
	received         int64
	rejected         int64
	blockedSenders   int
	blockedReceivers int

	capacity int
	wake     WakeStrategy
	log      logrus.FieldLogger
}

// New creates an empty, open channel that buffers up to capacity values.
// Panics if capacity <= 0.
func New[T any](capacity int, opts ...Option) *Channel[T] {
	if capacity <= 0 {
		panic("mpmc: New requires capacity > 0")
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	mu := cfg.newLocker()
	return &Channel[T]{
		mu:       mu,
		notFull:  sync.NewCond(mu),
		notEmpty: sync.NewCond(mu),
		buf:      newRing[T](capacity),
		open:     true,
		capacity: capacity,
		wake:     cfg.wake,
		log:      cfg.log,
	}
}

// Send appends v to the tail of the buffer, blocking while the buffer is
// full. It returns nil once v is enqueued, or [ErrClosed] if the channel
// is shut down before or while Send waits for space. A send that fails
// never enqueues v.
func (c *Channel[T]) Send(v T) (err error) {
	c.mu.Lock()
	defer c.unlock(opSend, &err)

	if !c.open {
		return c.reject()
	}
	for c.open && c.buf.full() {
		c.blockedSenders++
		c.notFull.Wait()
		c.blockedSenders--
	}
	// Shutdown may have run while we were waiting.
	if !c.open {
		return c.reject()
	}

	c.buf.push(v)
	c.sent++
	c.notify(c.notEmpty)
	return nil
}

// Recv removes and returns the value at the head of the buffer, blocking
// while the buffer is empty and the channel is open. Buffered values are
// returned even after [Channel.Shutdown]; Recv reports [ErrClosed] only
// when the channel is shut down and empty.
func (c *Channel[T]) Recv() (v T, err error) {
	c.mu.Lock()
	defer c.unlock(opRecv, &err)

	for c.open && c.buf.empty() {
		c.blockedReceivers++
		c.notEmpty.Wait()
		c.blockedReceivers--
	}
	if c.poisoned != nil {
		return v, c.poisoned
	}
	if c.buf.empty() {
		return v, ErrClosed
	}

	v = c.buf.pop()
	c.received++
	c.notify(c.notFull)
	return v, nil
}

// TrySend is the non-blocking form of [Channel.Send]. It returns
// [ErrFull] instead of waiting for space.
func (c *Channel[T]) TrySend(v T) (err error) {
	c.mu.Lock()
	defer c.unlock(opTrySend, &err)

	if !c.open {
		return c.reject()
	}
	if c.buf.full() {
		return ErrFull
	}

	c.buf.push(v)
	c.sent++
	c.notify(c.notEmpty)
	return nil
}

// TryRecv is the non-blocking form of [Channel.Recv]. It returns
// [ErrEmpty] if the buffer is empty but the channel is still open, and
// [ErrClosed] if it is shut down and drained.
func (c *Channel[T]) TryRecv() (v T, err error) {
	c.mu.Lock()
	defer c.unlock(opTryRecv, &err)

	if c.poisoned != nil {
		return v, c.poisoned
	}
	if c.buf.empty() {
		if c.open {
			return v, ErrEmpty
		}
		return v, ErrClosed
	}

	v = c.buf.pop()
	c.received++
	c.notify(c.notFull)
	return v, nil
}

// Drain removes every value currently in the buffer without blocking and
// returns them in FIFO order. It works on open and shut down channels
// alike and wakes every blocked producer.
func (c *Channel[T]) Drain() (values []T, err error) {
	c.mu.Lock()
	defer c.unlock(opDrain, &err)

	if c.poisoned != nil {
		return nil, c.poisoned
	}
	if c.buf.empty() {
		return nil, nil
	}

	values = make([]T, 0, c.buf.len())
	for !c.buf.empty() {
		values = append(values, c.buf.pop())
	}
	c.received += int64(len(values))
	c.notFull.Broadcast()
	return values, nil
}

// Shutdown marks the channel closed and wakes every blocked goroutine.
// Blocked senders return [ErrClosed]; blocked receivers drain what is
// left in the buffer first. Buffered values are neither discarded nor
// drained by Shutdown itself.
//
// Safe to call multiple times; calls after the first are no-ops.
func (c *Channel[T]) Shutdown() error {
	first, n, err := c.shutdown()
	if first {
		c.log.WithFields(logrus.Fields{
			"op":  opShutdown,
			"len": n,
			"cap": c.capacity,
		}).Debug("mpmc: channel shut down")
	}
	return err
}

func (c *Channel[T]) shutdown() (first bool, n int, err error) {
	c.mu.Lock()
	defer c.unlock(opShutdown, &err)

	if c.poisoned != nil {
		return false, 0, c.poisoned
	}

	first = c.open
	c.open = false
	c.notFull.Broadcast()
	c.notEmpty.Broadcast()
	return first, c.buf.len(), nil
}

// Len returns the number of buffered values.
// The value may be stale in concurrent contexts.
func (c *Channel[T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.buf.len()
}

// Cap returns the capacity the channel was created with.
func (c *Channel[T]) Cap() int {
	return c.capacity
}

// Closed reports whether [Channel.Shutdown] has been called (or the
// channel has been poisoned).
func (c *Channel[T]) Closed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return !c.open
}

// State returns the current lifecycle state.
func (c *Channel[T]) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return stateOf(c.open, c.buf.len(), c.capacity)
}

// reject accounts for a refused send. Called with mu held on a closed
// channel.
func (c *Channel[T]) reject() error {
	if c.poisoned != nil {
		return c.poisoned
	}
	c.rejected++
	return ErrClosed
}

func (c *Channel[T]) notify(cond *sync.Cond) {
	if c.wake == Signal {
		cond.Signal()
		return
	}
	cond.Broadcast()
}

// unlock ends a critical section. A panic unwinding through the critical
// section is recovered here: the channel is poisoned, every waiter is
// woken, and the failure is reported through err instead of propagating.
func (c *Channel[T]) unlock(op string, err *error) {
	r := recover()
	if r == nil {
		c.mu.Unlock()
		return
	}

	if c.poisoned == nil {
		c.poisoned = newLockError(op, r)
	}
	le := c.poisoned
	c.open = false
	c.notFull.Broadcast()
	c.notEmpty.Broadcast()
	c.mu.Unlock()

	c.log.WithFields(logrus.Fields{
		"op":    op,
		"cap":   c.capacity,
		"panic": r,
	}).Error("mpmc: channel poisoned")
	*err = le
}
