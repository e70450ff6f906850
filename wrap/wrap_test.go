package wrap_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pawurb/channels-console-go/collector"
	"github.com/pawurb/channels-console-go/wrap"
)

func waitFor(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	require.True(t, cond(), "condition not met within %s", timeout)
}

func findChannelByLabel(label string) (collector.ChannelStat, bool) {
	for _, cs := range collector.Global().SortedChannelStats() {
		if cs.Label == label {
			return cs, true
		}
	}
	return collector.ChannelStat{}, false
}

// A basic bounded channel roundtrip shows up in the stats with matching
// sent and received counts.
func TestBasicBoundedChannelRoundTrip(t *testing.T) {
	real := wrap.NewPair[int](4)
	wrapped := wrap.Channel[int](real, "wrap_test.go:basic", wrap.Label("basic-bounded"))

	for i := 0; i < 3; i++ {
		require.NoError(t, wrapped.Tx.Send(i))
	}
	for i := 0; i < 3; i++ {
		v, ok := wrapped.Rx.Recv()
		require.True(t, ok)
		assert.Equal(t, i, v)
	}

	waitFor(t, time.Second, func() bool {
		cs, found := findChannelByLabel("basic-bounded")
		return found && cs.SentCount == 3 && cs.ReceivedCount == 3
	})
}

// A oneshot that delivers its value ends up notified.
func TestOneshotHappyPath(t *testing.T) {
	real := wrap.NewPair[string](0)
	wrapped := wrap.Oneshot[string](real, "wrap_test.go:oneshot-happy", wrap.Label("oneshot-happy"))

	require.NoError(t, wrapped.Tx.Send("hello"))
	v, ok := wrapped.Rx.Recv()
	require.True(t, ok)
	assert.Equal(t, "hello", v)

	waitFor(t, time.Second, func() bool {
		cs, found := findChannelByLabel("oneshot-happy")
		return found && cs.State == "notified"
	})
}

// A oneshot canceled before any value flows ends up closed, and the
// pending send fails.
func TestOneshotCanceled(t *testing.T) {
	real := wrap.NewPair[int](0)
	wrapped := wrap.Oneshot[int](real, "wrap_test.go:oneshot-canceled", wrap.Label("oneshot-canceled"))
	wrapped.Rx.Close()

	waitFor(t, time.Second, func() bool {
		cs, found := findChannelByLabel("oneshot-canceled")
		return found && cs.State == "closed"
	})

	result := make(chan error, 1)
	go func() { result <- wrapped.Tx.Send(99) }()
	select {
	case err := <-result:
		assert.ErrorIs(t, err, wrap.ErrClosed)
	case <-time.After(time.Second):
		t.Fatal("Send did not return after oneshot receiver was canceled")
	}
}

// A oneshot whose value is sent but never consumed still transitions to
// notified: the handoff completes the send, not the consumption.
func TestOneshotSentButUnconsumedIsNotified(t *testing.T) {
	real := wrap.NewPair[int](0)
	wrapped := wrap.Oneshot[int](real, "wrap_test.go:oneshot-unconsumed", wrap.Label("oneshot-unconsumed"))

	require.NoError(t, wrapped.Tx.Send(7))

	waitFor(t, time.Second, func() bool {
		cs, found := findChannelByLabel("oneshot-unconsumed")
		return found && cs.State == "notified" && cs.ReceivedCount == 0
	})
}

// A producer outrunning its consumer builds a visible queue backlog.
func TestBackpressureReportsQueuedBacklog(t *testing.T) {
	real := wrap.NewPair[int](1)
	wrapped := wrap.Channel[int](real, "wrap_test.go:backpressure", wrap.Label("slow-reader"))

	go func() {
		for i := 0; i < 5; i++ {
			wrapped.Tx.Send(i)
		}
	}()

	waitFor(t, time.Second, func() bool {
		cs, found := findChannelByLabel("slow-reader")
		return found && cs.Queued > 0
	})

	for i := 0; i < 5; i++ {
		_, ok := wrapped.Rx.Recv()
		require.True(t, ok)
	}
}

// Channels wrapped in a loop at one source line get disambiguated labels.
func TestAutoLabelLoopDisambiguatesBySourceIter(t *testing.T) {
	const src = "wrap_test.go:auto-label-loop"
	for i := 0; i < 3; i++ {
		real := wrap.NewPair[int](1)
		wrap.Channel[int](real, src)
	}

	waitFor(t, time.Second, func() bool {
		count := 0
		for _, cs := range collector.Global().SortedChannelStats() {
			if cs.Source == src {
				count++
			}
		}
		return count >= 3
	})

	labels := map[string]bool{}
	for _, cs := range collector.Global().SortedChannelStats() {
		if cs.Source == src {
			labels[cs.Label] = true
		}
	}
	assert.True(t, labels[src])
	assert.True(t, labels[src+"-2"])
	assert.True(t, labels[src+"-3"])
}

// Log history is capped at the configured limit, keeping the newest
// entries.
func TestLogRingEvictionUnderDefaultLimit(t *testing.T) {
	real := wrap.NewPair[int](1)
	wrapped := wrap.ChannelLog[int](real, "wrap_test.go:log-eviction", wrap.Label("log-eviction"))

	go func() {
		for i := 0; i < 60; i++ {
			wrapped.Tx.Send(i)
		}
	}()
	for i := 0; i < 60; i++ {
		_, ok := wrapped.Rx.Recv()
		require.True(t, ok)
	}

	var id uint64
	waitFor(t, 2*time.Second, func() bool {
		for _, cs := range collector.Global().SortedChannelStats() {
			if cs.Label == "log-eviction" {
				id = cs.ID
				return cs.SentCount == 60 && cs.ReceivedCount == 60
			}
		}
		return false
	})

	logs, ok := collector.Global().ChannelLogsFor(id)
	require.True(t, ok)
	assert.LessOrEqual(t, len(logs.SentLogs), 50)
	assert.LessOrEqual(t, len(logs.ReceivedLogs), 50)
}

func TestChannelCapacityMismatchPanics(t *testing.T) {
	real := wrap.NewPair[int](4)
	assert.Panics(t, func() {
		wrap.Channel[int](real, "wrap_test.go:cap-mismatch", wrap.Capacity(8))
	})
}

func TestUnboundedNeverGoesFull(t *testing.T) {
	real := wrap.NewUnboundedPair[int]()
	wrapped := wrap.Unbounded[int](real, "wrap_test.go:unbounded", wrap.Label("unbounded-flood"))

	go func() {
		for i := 0; i < 20; i++ {
			wrapped.Tx.Send(i)
		}
	}()

	waitFor(t, time.Second, func() bool {
		cs, found := findChannelByLabel("unbounded-flood")
		return found && cs.SentCount > 0
	})

	cs, _ := findChannelByLabel("unbounded-flood")
	assert.NotEqual(t, "full", cs.State)

	for i := 0; i < 20; i++ {
		wrapped.Rx.Recv()
	}
}

func TestReceiverCloseSignalsForwarders(t *testing.T) {
	real := wrap.NewPair[int](4)
	wrapped := wrap.Channel[int](real, "wrap_test.go:close-signal", wrap.Label("close-signal"))

	wrapped.Rx.Close()

	waitFor(t, time.Second, func() bool {
		cs, found := findChannelByLabel("close-signal")
		return found && cs.State == "closed"
	})
}

// Dropping the receiver must eventually make new sends fail locally rather
// than block forever waiting on a forwarder that has already exited.
func TestReceiverCloseFailsSubsequentSends(t *testing.T) {
	real := wrap.NewPair[int](2)
	wrapped := wrap.Channel[int](real, "wrap_test.go:close-then-send", wrap.Label("close-then-send"))

	wrapped.Rx.Close()

	waitFor(t, time.Second, func() bool {
		cs, found := findChannelByLabel("close-then-send")
		return found && cs.State == "closed"
	})

	result := make(chan error, 1)
	go func() { result <- wrapped.Tx.Send(1) }()

	select {
	case err := <-result:
		assert.ErrorIs(t, err, wrap.ErrClosed)
	case <-time.After(time.Second):
		t.Fatal("Send did not return after receiver was closed")
	}
}
