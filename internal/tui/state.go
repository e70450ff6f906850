// Package tui implements the terminal dashboard: a termbox-go render loop
// polling the local HTTP query server, with a two-pane channels/logs view,
// an inspect overlay, and focus-aware key handling.
package tui

import (
	"time"

	"github.com/pawurb/channels-console-go/collector"
	"github.com/pawurb/channels-console-go/stats"
)

// Focus names which panel currently owns key input.
type Focus int

const (
	FocusChannels Focus = iota
	FocusLogs
	FocusInspect
)

// logRow is one displayed row of the logs panel: a sent entry, optionally
// paired with the received entry sharing its index.
type logRow struct {
	Sent     stats.LogEntry
	Received *stats.LogEntry
}

// CachedLogs holds the last successfully fetched log bundle for one
// selected channel.
type CachedLogs struct {
	ChannelID uint64
	Rows      []logRow
}

// App owns every piece of mutable dashboard state. A single goroutine (Run)
// ever touches it; the input-poll goroutine only ever sends events over a
// channel, never touching App fields directly.
type App struct {
	metricsPort string

	channels []collector.ChannelStat
	err      error

	selected     int
	logsSelected int

	focus    Focus
	showLogs bool
	paused   bool

	logs         *CachedLogs
	inspectedLog *stats.LogEntry

	lastRefresh    time.Time
	lastSuccess    time.Time
	everSucceeded  bool
	lastRenderTime time.Duration

	exit bool
}

// NewApp constructs dashboard state targeting the local query server on
// metricsPort.
func NewApp(metricsPort string) *App {
	return &App{
		metricsPort: metricsPort,
		focus:       FocusChannels,
		selected:    0,
	}
}
