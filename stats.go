package mpmc

// Stats provides a point-in-time snapshot of channel activity.
type Stats struct {
	Len              int   // values currently buffered
	Cap              int   // capacity (fixed at creation)
	Closed           bool  // Shutdown has been called or the channel is poisoned
	Poisoned         bool  // an internal failure poisoned the channel
	Sent             int64 // values accepted by Send, TrySend and SendBatch
	Received         int64 // values handed out by Recv, TryRecv and Drain
	Rejected         int64 // sends refused because the channel was closed
	BlockedSenders   int   // goroutines waiting for space
	BlockedReceivers int   // goroutines waiting for data
}

// State derives the lifecycle state from the snapshot.
func (s Stats) State() State {
	return stateOf(!s.Closed, s.Len, s.Cap)
}

// Stats returns a snapshot of the channel's counters, taken atomically
// under the channel lock. Safe to call concurrently.
func (c *Channel[T]) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Stats{
		Len:              c.buf.len(),
		Cap:              c.capacity,
		Closed:           !c.open,
		Poisoned:         c.poisoned != nil,
		Sent:             c.sent,
		Received:         c.received,
		Rejected:         c.rejected,
		BlockedSenders:   c.blockedSenders,
		BlockedReceivers: c.blockedReceivers,
	}
}
