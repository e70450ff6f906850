package collector

import (
	"os"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/pawurb/channels-console-go/stats"
)

const (
	defaultLogLimit   = 50
	defaultEventQueue = 4096
)

// Collector is a single-writer aggregation actor: one goroutine drains an
// ordered event channel and mutates the endpoint table; every other caller
// takes a read lock on a snapshot and never touches the table directly.
type Collector struct {
	mu        sync.RWMutex
	endpoints map[uint64]*stats.Endpoint
	bySource  map[string]uint32 // count of endpoints created per source, for Iter assignment

	events chan Event

	logLimit  int
	startTime time.Time

	nextID atomic.Uint64

	closeOnce sync.Once
	done      chan struct{}
}

// New constructs a Collector and starts its draining goroutine. logLimit
// defaults to 50, overridable via CHANNELS_CONSOLE_LOG_LIMIT (see
// ResolveLogLimit).
func New() *Collector {
	c := &Collector{
		endpoints: make(map[uint64]*stats.Endpoint),
		bySource:  make(map[string]uint32),
		events:    make(chan Event, defaultEventQueue),
		logLimit:  ResolveLogLimit(),
		startTime: time.Now(),
		done:      make(chan struct{}),
	}
	go c.run()
	return c
}

// ResolveLogLimit reads CHANNELS_CONSOLE_LOG_LIMIT, falling back to 50.
func ResolveLogLimit() int {
	if raw := os.Getenv("CHANNELS_CONSOLE_LOG_LIMIT"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n >= 0 {
			return n
		}
	}
	return defaultLogLimit
}

// NextID hands out process-unique, monotonically increasing endpoint IDs.
func (c *Collector) NextID() uint64 {
	return c.nextID.Add(1)
}

// StartTime is the process-wide anchor every LogEntry.Timestamp is relative to.
func (c *Collector) StartTime() time.Time { return c.startTime }

// Emit enqueues an event for the collector goroutine. The collector is
// best-effort: if the queue is saturated the event is silently dropped
// rather than blocking the caller, since observed program behavior must
// never be degraded by an unavailable observer.
func (c *Collector) Emit(ev Event) {
	select {
	case c.events <- ev:
	default:
		log.WithField("component", "collector").Debug("event dropped: queue full")
	}
}

// Close stops the draining goroutine. Safe to call multiple times.
func (c *Collector) Close() {
	c.closeOnce.Do(func() {
		close(c.done)
	})
}

func (c *Collector) run() {
	for {
		select {
		case ev := <-c.events:
			c.apply(ev)
		case <-c.done:
			return
		}
	}
}

func (c *Collector) apply(ev Event) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch e := ev.(type) {
	case Created:
		iter := c.bySource[e.Source]
		c.bySource[e.Source] = iter + 1
		ep := &stats.Endpoint{
			ID:             e.ID,
			Source:         e.Source,
			Label:          e.Label,
			HasCustomLabel: e.Label != "",
			Iter:           iter,
			Kind:           e.Kind,
			Channel:        e.Channel,
			State:          stats.StateActive,
			TypeName:       e.TypeName,
			TypeSize:       e.TypeSize,
		}
		if e.Kind == stats.KindChannel {
			ep.SentLogs = stats.NewLogRing(c.logLimit)
			ep.ReceivedLogs = stats.NewLogRing(c.logLimit)
		} else {
			ep.YieldedLogs = stats.NewLogRing(c.logLimit)
		}
		c.endpoints[e.ID] = ep

	case MessageSent:
		if ep, ok := c.endpoints[e.ID]; ok {
			ep.SentCount++
			ep.UpdateChannelState()
			ep.SentLogs.Push(stats.LogEntry{Index: ep.SentCount, Timestamp: e.Timestamp, Message: e.Log})
		}

	case MessageReceived:
		if ep, ok := c.endpoints[e.ID]; ok {
			ep.ReceivedCount++
			ep.UpdateChannelState()
			ep.ReceivedLogs.Push(stats.LogEntry{Index: ep.ReceivedCount, Timestamp: e.Timestamp})
		}

	case Closed:
		if ep, ok := c.endpoints[e.ID]; ok && !ep.State.Terminal() {
			ep.State = stats.StateClosed
		}

	case Notified:
		if ep, ok := c.endpoints[e.ID]; ok && !ep.State.Terminal() {
			ep.State = stats.StateNotified
		}

	case Yielded:
		if ep, ok := c.endpoints[e.ID]; ok {
			ep.ItemsYielded++
			ep.YieldedLogs.Push(stats.LogEntry{Index: ep.ItemsYielded, Timestamp: e.Timestamp, Message: e.Log})
		}

	case Completed:
		if ep, ok := c.endpoints[e.ID]; ok && !ep.State.Terminal() {
			ep.State = stats.StateClosed
		}
	}
}

// clone returns a deep-enough copy of the endpoint table under a read lock.
func (c *Collector) clone() map[uint64]*stats.Endpoint {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make(map[uint64]*stats.Endpoint, len(c.endpoints))
	for id, ep := range c.endpoints {
		out[id] = ep.Clone()
	}
	return out
}

// ElapsedNanos is now minus the start-time anchor, the current_elapsed_ns
// field of the JSON wrapper objects.
func (c *Collector) ElapsedNanos() uint64 {
	return uint64(time.Since(c.startTime).Nanoseconds())
}
