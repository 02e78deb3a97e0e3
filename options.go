package mpmc

import (
	"io"
	"sync"

	"github.com/sasha-s/go-deadlock"
	"github.com/sirupsen/logrus"
)

// WakeStrategy determines how many waiters a [Channel] wakes when data
// moves through the buffer.
type WakeStrategy int

const (
	// Broadcast wakes every waiter on the relevant side after each send or
	// receive. Woken goroutines re-check their predicate and go back to
	// sleep if another goroutine won the race.
	Broadcast WakeStrategy = iota

	// Signal wakes exactly one waiter on the relevant side after each send
	// or receive.
	Signal
)

func (s WakeStrategy) String() string {
	switch s {
	case Broadcast:
		return "broadcast"
	case Signal:
		return "signal"
	default:
		return "unknown"
	}
}

// ParseWakeStrategy maps "broadcast" or "signal" to a [WakeStrategy].
func ParseWakeStrategy(s string) (WakeStrategy, bool) {
	switch s {
	case "broadcast":
		return Broadcast, true
	case "signal":
		return Signal, true
	default:
		return Broadcast, false
	}
}

type config struct {
	wake     WakeStrategy
	deadlock bool
	log      logrus.FieldLogger
}

// Option configures a [Channel].
type Option func(*config)

func defaultConfig() config {
	return config{
		wake: Broadcast,
		log:  nopLogger,
	}
}

// WithWakeStrategy selects how waiters are woken on send and receive.
// Shutdown always wakes every waiter regardless of the strategy.
// It panics if s is not a known WakeStrategy value.
func WithWakeStrategy(s WakeStrategy) Option {
	return func(c *config) {
		switch s {
		case Broadcast, Signal:
			c.wake = s
		default:
			panic("mpmc: invalid wake strategy")
		}
	}
}

// WithLogger sets the logger used for lifecycle events (shutdown and
// poisoning). Nothing is logged while the channel lock is held.
// A nil logger restores the default, which discards output.
func WithLogger(l logrus.FieldLogger) Option {
	return func(c *config) {
		if l == nil {
			l = nopLogger
		}
		c.log = l
	}
}

// WithDeadlockDetection guards the channel with a go-deadlock mutex
// instead of a sync.Mutex. Reporting is controlled process-wide through
// deadlock.Opts.
func WithDeadlockDetection() Option {
	return func(c *config) {
		c.deadlock = true
	}
}

func (c config) newLocker() sync.Locker {
	if c.deadlock {
		return new(deadlock.Mutex)
	}
	return new(sync.Mutex)
}

var nopLogger = func() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}()
