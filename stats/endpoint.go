package stats

// Endpoint is one wrapped channel or stream. The collector is the sole
// mutator; every other reader sees a cloned snapshot (see Endpoint.Clone).
type Endpoint struct {
	ID             uint64
	Source         string
	Label          string
	HasCustomLabel bool
	Iter           uint32

	Kind    Kind
	Channel ChannelType // meaningful when Kind == KindChannel

	State State

	SentCount     uint64
	ReceivedCount uint64
	ItemsYielded  uint64

	TypeName string
	TypeSize uint64

	SentLogs     *LogRing
	ReceivedLogs *LogRing
	YieldedLogs  *LogRing
}

// Queued is the channel invariant sent-received, clamped at zero. For a
// channel whose forwarder pair has exactly one message in flight between
// the two forwarder goroutines, this is the externally observed queue
// depth described by the "+1 in flight" design note.
func (e *Endpoint) Queued() uint64 {
	if e.ReceivedCount >= e.SentCount {
		return 0
	}
	return e.SentCount - e.ReceivedCount
}

func (e *Endpoint) QueuedBytes() uint64 {
	return e.Queued() * e.TypeSize
}

// Clone returns a deep-enough copy safe to hand to a reader outside the
// collector's write lock: log rings are copied by value (their slices are
// independent snapshots), everything else is a value type.
func (e *Endpoint) Clone() *Endpoint {
	c := *e
	if e.SentLogs != nil {
		c.SentLogs = &LogRing{cap: e.SentLogs.cap, entries: e.SentLogs.Snapshot()}
	}
	if e.ReceivedLogs != nil {
		c.ReceivedLogs = &LogRing{cap: e.ReceivedLogs.cap, entries: e.ReceivedLogs.Snapshot()}
	}
	if e.YieldedLogs != nil {
		c.YieldedLogs = &LogRing{cap: e.YieldedLogs.cap, entries: e.YieldedLogs.Snapshot()}
	}
	return &c
}

// UpdateChannelState derives Active/Full from the current queue depth,
// never downgrading a terminal state. Unbounded channels never go Full.
func (e *Endpoint) UpdateChannelState() {
	if e.State.Terminal() {
		return
	}
	queued := e.Queued()
	switch e.Channel.Variant {
	case VariantBounded:
		if queued >= uint64(e.Channel.Capacity) {
			e.State = StateFull
			return
		}
	case VariantOneshot:
		if queued >= 1 {
			e.State = StateFull
			return
		}
	}
	e.State = StateActive
}
