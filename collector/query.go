package collector

import (
	"sort"
	"strconv"

	"github.com/pawurb/channels-console-go/stats"
)

func idString(id uint64) string {
	return strconv.FormatUint(id, 10)
}

// ChannelStat is the external (JSON/table) projection of a channel endpoint.
type ChannelStat struct {
	ID             uint64 `json:"id"`
	Source         string `json:"source"`
	Label          string `json:"label"`
	HasCustomLabel bool   `json:"has_custom_label"`
	ChannelType    string `json:"channel_type"`
	State          string `json:"state"`
	SentCount      uint64 `json:"sent_count"`
	ReceivedCount  uint64 `json:"received_count"`
	Queued         uint64 `json:"queued"`
	TypeName       string `json:"type_name"`
	TypeSize       uint64 `json:"type_size"`
	QueuedBytes    uint64 `json:"queued_bytes"`
	Iter           uint32 `json:"iter"`
}

// StreamStat is the external projection of a stream endpoint.
type StreamStat struct {
	ID             uint64 `json:"id"`
	Source         string `json:"source"`
	Label          string `json:"label"`
	HasCustomLabel bool   `json:"has_custom_label"`
	State          string `json:"state"`
	ItemsYielded   uint64 `json:"items_yielded"`
	TypeName       string `json:"type_name"`
	TypeSize       uint64 `json:"type_size"`
	Iter           uint32 `json:"iter"`
}

type ChannelsJSON struct {
	CurrentElapsedNs uint64        `json:"current_elapsed_ns"`
	Channels         []ChannelStat `json:"channels"`
}

type StreamsJSON struct {
	CurrentElapsedNs uint64       `json:"current_elapsed_ns"`
	Streams          []StreamStat `json:"streams"`
}

type ChannelLogs struct {
	ID           string           `json:"id"`
	SentLogs     []stats.LogEntry `json:"sent_logs"`
	ReceivedLogs []stats.LogEntry `json:"received_logs"`
}

type StreamLogs struct {
	ID          string           `json:"id"`
	YieldedLogs []stats.LogEntry `json:"yielded_logs"`
}

func toChannelStat(ep *stats.Endpoint) ChannelStat {
	return ChannelStat{
		ID:             ep.ID,
		Source:         ep.Source,
		Label:          resolveLabel(ep.Source, ep.Label, ep.Iter),
		HasCustomLabel: ep.HasCustomLabel,
		ChannelType:    ep.Channel.String(),
		State:          ep.State.String(),
		SentCount:      ep.SentCount,
		ReceivedCount:  ep.ReceivedCount,
		Queued:         ep.Queued(),
		TypeName:       ep.TypeName,
		TypeSize:       ep.TypeSize,
		QueuedBytes:    ep.QueuedBytes(),
		Iter:           ep.Iter,
	}
}

func toStreamStat(ep *stats.Endpoint) StreamStat {
	return StreamStat{
		ID:             ep.ID,
		Source:         ep.Source,
		Label:          resolveLabel(ep.Source, ep.Label, ep.Iter),
		HasCustomLabel: ep.HasCustomLabel,
		State:          ep.State.String(),
		ItemsYielded:   ep.ItemsYielded,
		TypeName:       ep.TypeName,
		TypeSize:       ep.TypeSize,
		Iter:           ep.Iter,
	}
}

// labelOrdered reports whether a sorts before b under the rule:
// has_custom_label desc, label asc, iter asc.
func labelOrdered(aCustom, bCustom bool, aLabel, bLabel string, aIter, bIter uint32) bool {
	if aCustom != bCustom {
		return aCustom // custom labels sort first
	}
	if aLabel != bLabel {
		return aLabel < bLabel
	}
	return aIter < bIter
}

// SortedChannelStats returns every channel endpoint, sorted per the rule
// above.
func (c *Collector) SortedChannelStats() []ChannelStat {
	table := c.clone()
	out := make([]ChannelStat, 0, len(table))
	for _, ep := range table {
		if ep.Kind == stats.KindChannel {
			out = append(out, toChannelStat(ep))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return labelOrdered(
			out[i].HasCustomLabel, out[j].HasCustomLabel,
			out[i].Label, out[j].Label,
			out[i].Iter, out[j].Iter,
		)
	})
	return out
}

// SortedStreamStats returns every stream endpoint, sorted per the same rule.
func (c *Collector) SortedStreamStats() []StreamStat {
	table := c.clone()
	out := make([]StreamStat, 0, len(table))
	for _, ep := range table {
		if ep.Kind == stats.KindStream {
			out = append(out, toStreamStat(ep))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return labelOrdered(
			out[i].HasCustomLabel, out[j].HasCustomLabel,
			out[i].Label, out[j].Label,
			out[i].Iter, out[j].Iter,
		)
	})
	return out
}

// ChannelsJSON builds the {current_elapsed_ns, channels} wrapper object.
func (c *Collector) ChannelsJSON() ChannelsJSON {
	return ChannelsJSON{CurrentElapsedNs: c.ElapsedNanos(), Channels: c.SortedChannelStats()}
}

// StreamsJSON builds the {current_elapsed_ns, streams} wrapper object.
func (c *Collector) StreamsJSON() StreamsJSON {
	return StreamsJSON{CurrentElapsedNs: c.ElapsedNanos(), Streams: c.SortedStreamStats()}
}

// ChannelLogsFor returns the sent/received log rings for a channel id,
// ok=false if the id is unknown or refers to a stream.
func (c *Collector) ChannelLogsFor(id uint64) (ChannelLogs, bool) {
	c.mu.RLock()
	ep, found := c.endpoints[id]
	if found {
		ep = ep.Clone()
	}
	c.mu.RUnlock()
	if !found || ep.Kind != stats.KindChannel {
		return ChannelLogs{}, false
	}
	return ChannelLogs{
		ID:           idString(id),
		SentLogs:     ep.SentLogs.SnapshotDescending(),
		ReceivedLogs: ep.ReceivedLogs.SnapshotDescending(),
	}, true
}

// StreamLogsFor returns the yielded log ring for a stream id, ok=false if
// the id is unknown or refers to a channel.
func (c *Collector) StreamLogsFor(id uint64) (StreamLogs, bool) {
	c.mu.RLock()
	ep, found := c.endpoints[id]
	if found {
		ep = ep.Clone()
	}
	c.mu.RUnlock()
	if !found || ep.Kind != stats.KindStream {
		return StreamLogs{}, false
	}
	return StreamLogs{
		ID:          idString(id),
		YieldedLogs: ep.YieldedLogs.SnapshotDescending(),
	}, true
}
