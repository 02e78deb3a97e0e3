package mpmc

import (
	"fmt"
	"runtime"
)

// LockError reports that a panic unwound through one of the channel's
// critical sections, leaving the guarded state in an unknown condition.
//
// The panic is recovered inside the channel and never propagates. The
// channel is poisoned from that point on: it behaves as closed, every
// waiter is woken, and every operation returns the same *LockError.
type LockError struct {
	// Op is the operation that was running when the panic occurred.
	Op string

	// Value is the original value passed to panic().
	Value any

	// Stack is the goroutine stack trace at the point of panic.
	Stack string
}

// Error returns a human-readable representation of the failure,
// including the panic value and the stack trace.
func (e *LockError) Error() string {
	return fmt.Sprintf("mpmc: %s: lock state corrupted: %v\n\n%s", e.Op, e.Value, e.Stack)
}

// Is reports whether target is [ErrPoisoned].
func (e *LockError) Is(target error) bool {
	return target == ErrPoisoned
}

func newLockError(op string, v any) *LockError {
	// Only the recovering goroutine's stack; runtime.Stack cuts it off
	// at len(stack) rather than failing.
	stack := make([]byte, 4<<10)
	stack = stack[:runtime.Stack(stack, false)]
	return &LockError{Op: op, Value: v, Stack: string(stack)}
}
