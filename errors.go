package mpmc

import "errors"

var (
	// ErrClosed is returned by send operations once the channel has been
	// shut down, and by receive operations once it is shut down and drained.
	ErrClosed = errors.New("mpmc: channel closed")

	// ErrFull is returned by [Channel.TrySend] when the buffer is full.
	ErrFull = errors.New("mpmc: buffer is full")

	// ErrEmpty is returned by [Channel.TryRecv] when the buffer is empty
	// and the channel is still open.
	ErrEmpty = errors.New("mpmc: buffer is empty")

	// ErrPoisoned matches every [*LockError] via errors.Is.
	ErrPoisoned = errors.New("mpmc: channel poisoned")
)

// IsClosed reports whether err signals normal end of stream.
func IsClosed(err error) bool {
	return errors.Is(err, ErrClosed)
}

// IsPoisoned reports whether err (or any error in its chain) is a
// [*LockError].
func IsPoisoned(err error) bool {
	if err == nil {
		return false
	}
	var le *LockError
	return errors.As(err, &le)
}

// LockErrorOf extracts the first [*LockError] from err's chain.
// Returns false if none is found.
func LockErrorOf(err error) (*LockError, bool) {
	if err == nil {
		return nil, false
	}
	var le *LockError
	if errors.As(err, &le) {
		return le, true
	}
	return nil, false
}
