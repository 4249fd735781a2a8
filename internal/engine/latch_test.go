package engine

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLatch_SetConsume(t *testing.T) {
	l := newReloadLatch()

	assert.False(t, l.Consume())

	l.Set()
	assert.True(t, l.Consume())
	assert.False(t, l.Consume())
}

// Many notifications coalesce into one pending rebuild: an OR-latch, not
// a counter.
func TestLatch_CoalescesStorm(t *testing.T) {
	l := newReloadLatch()

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			l.Set()
		}()
	}
	wg.Wait()

	assert.True(t, l.Consume())
	assert.False(t, l.Consume())
}

func TestLatch_SignalCoalesces(t *testing.T) {
	l := newReloadLatch()

	l.Set()
	l.Set()
	l.Set()

	// Exactly one signal is buffered; further Sets must not block.
	select {
	case <-l.Wait():
	default:
		t.Fatal("expected a buffered signal")
	}
	select {
	case <-l.Wait():
		t.Fatal("expected signals to coalesce into one")
	default:
	}
}

// A notification arriving after the flag was consumed (mid-rebuild) must
// re-arm the latch so the follow-up pass is scheduled.
func TestLatch_SetDuringRebuildNotLost(t *testing.T) {
	l := newReloadLatch()

	l.Set()
	require.True(t, l.Consume())

	// Rebuild in progress; a new notification arrives.
	l.Set()

	select {
	case <-l.Wait():
	default:
		t.Fatal("expected signal for notification during rebuild")
	}
	assert.True(t, l.Consume())
}
