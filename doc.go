// Package mpmc provides a bounded multi-producer/multi-consumer blocking
// channel with cooperative shutdown.
//
// A [Channel] is a fixed-capacity FIFO buffer built on a mutex and
// condition variables rather than on a Go channel. Any number of
// goroutines may send and receive concurrently:
//
//	ch := mpmc.New[int](2)
//
//	go func() {
//	    for i := range 10 {
//	        if err := ch.Send(i); err != nil {
//	            return // mpmc.ErrClosed
//	        }
//	    }
//	    ch.Shutdown()
//	}()
//
//	for v := range ch.All() {
//	    fmt.Println(v)
//	}
//
// # Blocking
//
// [Channel.Send] blocks while the buffer is full and [Channel.Recv] blocks
// while it is empty. Waiting goroutines sleep on a condition variable and
// re-check their predicate on every wake, so spurious wake-ups and
// goroutines racing in between are harmless. The only way to release a
// waiter without data is [Channel.Shutdown]; there are no timeouts.
//
// # Shutdown
//
// Shutdown is irreversible and idempotent. After it:
//
//   - pending and future sends return [ErrClosed] without enqueuing;
//   - receivers keep getting buffered values in FIFO order;
//   - once the buffer is empty every receive returns [ErrClosed]
//     immediately (state [ClosedEmpty]).
//
// Close is a normal value, not an exceptional condition. Use [IsClosed]
// to branch on it.
//
// # Non-blocking and Bulk Operations
//
// [Channel.TrySend] and [Channel.TryRecv] never block and report
// [ErrFull] / [ErrEmpty] instead. [Channel.SendBatch],
// [Channel.RecvBatch] and [Channel.Drain] move several values per call.
//
// # Consumers
//
// [Channel.ForEach] feeds a [Consumer] (or a [ConsumerFunc]) until the
// channel is shut down and drained. [Channel.All] exposes the same loop
// as a range-over-func iterator.
//
// # Wake Strategy
//
// By default every send and receive broadcasts to all waiters on the
// opposite side ([Broadcast]). [WithWakeStrategy]([Signal]) wakes exactly
// one instead. Neither strategy orders wake-ups; FIFO applies to data,
// not to goroutines.
//
// # Internal Failures
//
// A panic that unwinds through a critical section, which only happens if
// the guarded state was corrupted, is recovered inside the channel. The
// channel is poisoned: it behaves as closed, every waiter is woken, and
// every operation returns the same [*LockError]. Nothing in the package
// panics out of an operation. Use [IsPoisoned] or errors.Is with
// [ErrPoisoned] to detect it.
//
// # Observability
//
// [Channel.Stats] returns a consistent snapshot of counters and waiter
// counts. The [github.com/baxromumarov/mpmc/mpmcprom] subpackage exports
// it as Prometheus metrics. [WithLogger] logs shutdown and poisoning, and
// [WithDeadlockDetection] swaps in a go-deadlock mutex for debugging.
//
// The [github.com/baxromumarov/mpmc/chanx] subpackage bridges a Channel
// to native Go channels for use in select statements.
package mpmc
