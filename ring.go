package mpmc

// ring is a fixed-size FIFO buffer. It is not safe for concurrent use;
// Channel guards every access with its lock.
type ring[T any] struct {
	items []T
	head  int // index of the oldest element
	count int
}

func newRing[T any](capacity int) ring[T] {
	return ring[T]{items: make([]T, capacity)}
}

func (r *ring[T]) len() int { return r.count }

func (r *ring[T]) empty() bool { return r.count == 0 }

func (r *ring[T]) full() bool { return r.count == len(r.items) }

// push appends v at the tail. The caller checks full first.
func (r *ring[T]) push(v T) {
	r.items[(r.head+r.count)%len(r.items)] = v
	r.count++
}

// pop removes the head element. The slot is zeroed so the buffer never
// keeps a reference to a value once it has been handed to a receiver.
// The caller checks empty first.
func (r *ring[T]) pop() T {
	var zero T
	v := r.items[r.head]
	r.items[r.head] = zero
	r.head = (r.head + 1) % len(r.items)
	r.count--
	return v
}
