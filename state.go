package mpmc

// State is the observable lifecycle state of a [Channel].
type State int

const (
	OpenEmpty State = iota
	OpenPartial
	OpenFull
	ClosedNonEmpty
	// ClosedEmpty is terminal: every Send and Recv returns ErrClosed
	// without blocking.
	ClosedEmpty
)

func (s State) String() string {
	switch s {
	case OpenEmpty:
		return "open-empty"
	case OpenPartial:
		return "open-partial"
	case OpenFull:
		return "open-full"
	case ClosedNonEmpty:
		return "closed-nonempty"
	case ClosedEmpty:
		return "closed-empty"
	default:
		return "unknown"
	}
}

// Open reports whether s is one of the open states.
func (s State) Open() bool {
	return s <= OpenFull
}

func stateOf(open bool, n, capacity int) State {
	switch {
	case !open && n == 0:
		return ClosedEmpty
	case !open:
		return ClosedNonEmpty
	case n == 0:
		return OpenEmpty
	case n == capacity:
		return OpenFull
	default:
		return OpenPartial
	}
}
