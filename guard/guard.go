// Package guard provides a scoped handle whose construction lazily starts
// the process-wide collector and HTTP query server, and whose Close prints
// a final summary of every endpoint observed during the process's
// lifetime.
package guard

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/pawurb/channels-console-go/collector"
	"github.com/pawurb/channels-console-go/httpapi"
)

const defaultMetricsPort = "6770"

// Guard owns no state of its own beyond output formatting; the collector
// and HTTP server are process-wide singletons so that wrapping a channel
// before a Guard exists still gets observed.
type Guard struct {
	format Format
	out    io.Writer
	coll   *collector.Collector
}

// Option customizes a Guard.
type Option func(*Guard)

// WithFormat selects the final-summary rendering.
func WithFormat(f Format) Option {
	return func(g *Guard) { g.format = f }
}

// WithWriter overrides the destination for the final summary (default
// os.Stdout); mainly useful for tests.
func WithWriter(w io.Writer) Option {
	return func(g *Guard) { g.out = w }
}

// WithCollector overrides the process-wide collector, letting tests observe
// an isolated instance instead of the shared global one.
func WithCollector(c *collector.Collector) Option {
	return func(g *Guard) { g.coll = c }
}

var serverOnce sync.Once

// New constructs a Guard, starting the process-wide collector and HTTP
// server on first call.
func New(opts ...Option) *Guard {
	g := &Guard{format: FormatTable, out: os.Stdout, coll: collector.Global()}
	for _, opt := range opts {
		opt(g)
	}
	serverOnce.Do(func() {
		server := httpapi.New(g.coll)
		go server.ListenAndServe(metricsAddr())
	})
	return g
}

func metricsAddr() string {
	port := defaultMetricsPort
	if raw := os.Getenv("CHANNELS_CONSOLE_METRICS_PORT"); raw != "" {
		port = raw
	}
	return "127.0.0.1:" + port
}

// Close prints the final summary in the configured format. Safe to call
// once, at the end of the guarded scope (typically via defer).
func (g *Guard) Close() {
	channels := g.coll.SortedChannelStats()
	streams := g.coll.SortedStreamStats()

	if len(channels) == 0 && len(streams) == 0 {
		fmt.Fprintln(g.out, "channels-console: no endpoints were observed")
		return
	}

	switch g.format {
	case FormatJSON:
		g.writeJSON(channels, streams, false)
	case FormatJSONPretty:
		g.writeJSON(channels, streams, true)
	default:
		g.writeTables(channels, streams)
	}
}

func (g *Guard) writeJSON(channels []collector.ChannelStat, streams []collector.StreamStat, pretty bool) {
	body := struct {
		Channels []collector.ChannelStat `json:"channels"`
		Streams  []collector.StreamStat  `json:"streams"`
	}{Channels: channels, Streams: streams}

	var out []byte
	var err error
	if pretty {
		out, err = json.MarshalIndent(body, "", "  ")
	} else {
		out, err = json.Marshal(body)
	}
	if err != nil {
		log.WithField("component", "guard").WithError(err).Error("failed to serialize final summary")
		return
	}
	fmt.Fprintln(g.out, string(out))
}
