package mpmc

import (
	"context"
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/qmuntal/stateless"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	triggerSend     = "send"
	triggerRecv     = "recv"
	triggerShutdown = "shutdown"
)

// lifecycleModel builds the reference state machine for a channel of the
// given capacity. n reports how many values the model expects to be
// buffered before the trigger is applied.
func lifecycleModel(capacity int, n func() int) *stateless.StateMachine {
	afterSend := func(full bool) stateless.GuardFunc {
		return func(_ context.Context, _ ...any) bool { return (n()+1 == capacity) == full }
	}
	afterRecv := func(empty bool) stateless.GuardFunc {
		return func(_ context.Context, _ ...any) bool { return (n()-1 == 0) == empty }
	}

	sm := stateless.NewStateMachine(OpenEmpty)

	sm.Configure(OpenEmpty).
		Permit(triggerSend, OpenFull, afterSend(true)).
		Permit(triggerSend, OpenPartial, afterSend(false)).
		Ignore(triggerRecv).
		Permit(triggerShutdown, ClosedEmpty)

	sm.Configure(OpenPartial).
		Permit(triggerSend, OpenFull, afterSend(true)).
		PermitReentry(triggerSend, afterSend(false)).
		Permit(triggerRecv, OpenEmpty, afterRecv(true)).
		PermitReentry(triggerRecv, afterRecv(false)).
		Permit(triggerShutdown, ClosedNonEmpty)

	sm.Configure(OpenFull).
		Ignore(triggerSend).
		Permit(triggerRecv, OpenEmpty, afterRecv(true)).
		Permit(triggerRecv, OpenPartial, afterRecv(false)).
		Permit(triggerShutdown, ClosedNonEmpty)

	sm.Configure(ClosedNonEmpty).
		Ignore(triggerSend).
		Permit(triggerRecv, ClosedEmpty, afterRecv(true)).
		PermitReentry(triggerRecv, afterRecv(false)).
		Ignore(triggerShutdown)

	sm.Configure(ClosedEmpty).
		Ignore(triggerSend).
		Ignore(triggerRecv).
		Ignore(triggerShutdown)

	return sm
}

func TestLifecycleMatchesModel(t *testing.T) {
	for _, capacity := range []int{1, 2, 5} {
		t.Run(fmt.Sprintf("cap=%d", capacity), func(t *testing.T) {
			rng := rand.New(rand.NewPCG(uint64(capacity), 7))
			ch := New[int](capacity)

			var model []int
			sm := lifecycleModel(capacity, func() int { return len(model) })
			triggers := []string{triggerSend, triggerSend, triggerRecv, triggerRecv, triggerShutdown}

			for step := range 400 {
				// Shut down rarely so most of the walk stays in the open states.
				trigger := triggers[rng.IntN(len(triggers)-1)]
				if rng.IntN(100) == 0 {
					trigger = triggerShutdown
				}
				before := sm.MustState().(State)
				require.NoError(t, sm.Fire(trigger), "step %d: %s from %s", step, trigger, before)

				switch trigger {
				case triggerSend:
					err := ch.TrySend(step)
					switch {
					case !before.Open():
						assert.ErrorIs(t, err, ErrClosed)
					case before == OpenFull:
						assert.ErrorIs(t, err, ErrFull)
					default:
						require.NoError(t, err)
						model = append(model, step)
					}
				case triggerRecv:
					v, err := ch.TryRecv()
					switch before {
					case ClosedEmpty:
						assert.ErrorIs(t, err, ErrClosed)
					case OpenEmpty:
						assert.ErrorIs(t, err, ErrEmpty)
					default:
						require.NoError(t, err)
						assert.Equal(t, model[0], v, "FIFO violation")
						model = model[1:]
					}
				case triggerShutdown:
					require.NoError(t, ch.Shutdown())
				}

				require.Equal(t, sm.MustState(), ch.State(), "step %d after %s", step, trigger)
				require.Equal(t, len(model), ch.Len())
			}
		})
	}
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "open-empty", OpenEmpty.String())
	assert.Equal(t, "open-partial", OpenPartial.String())
	assert.Equal(t, "open-full", OpenFull.String())
	assert.Equal(t, "closed-nonempty", ClosedNonEmpty.String())
	assert.Equal(t, "closed-empty", ClosedEmpty.String())
	assert.Equal(t, "unknown", State(42).String())

	assert.True(t, OpenFull.Open())
	assert.False(t, ClosedNonEmpty.Open())
}
