package mpmc

// SendBatch sends each value in values with [Channel.Send], blocking as
// needed, and stops at the first failure. It returns the number of values
// accepted and nil, or the count so far and the error that stopped it.
func (c *Channel[T]) SendBatch(values []T) (int, error) {
	for i, v := range values {
		if err := c.Send(v); err != nil {
			return i, err
		}
	}
	return len(values), nil
}

// RecvBatch receives up to n values with [Channel.Recv]. If the channel
// is shut down and drained after at least one value was collected, it
// returns the values so far with a nil error; if nothing could be
// collected it returns [ErrClosed]. Other consumers may interleave, so
// the batch is in FIFO order but not necessarily contiguous.
//
// RecvBatch panics if n is not positive.
func (c *Channel[T]) RecvBatch(n int) ([]T, error) {
	if n <= 0 {
		panic("mpmc: RecvBatch requires n > 0")
	}
	result := make([]T, 0, n)
	for len(result) < n {
		v, err := c.Recv()
		if err != nil {
			if IsClosed(err) && len(result) > 0 {
				return result, nil
			}
			return result, err
		}
		result = append(result, v)
	}
	return result, nil
}
