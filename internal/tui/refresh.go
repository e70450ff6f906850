package tui

import (
	"time"

	"github.com/pawurb/channels-console-go/stats"
)

const refreshInterval = 200 * time.Millisecond

func (a *App) refreshData() {
	channels, err := a.fetchChannels()
	a.lastRefresh = time.Now()
	if err != nil {
		a.err = err
		return
	}
	a.channels = channels
	a.err = nil
	a.lastSuccess = time.Now()
	a.everSucceeded = true

	if a.selected >= len(a.channels) && len(a.channels) > 0 {
		a.selected = len(a.channels) - 1
	}

	if a.showLogs {
		a.refreshLogs()
	}
}

func (a *App) refreshLogs() {
	if a.selected < 0 || a.selected >= len(a.channels) {
		a.logs = nil
		return
	}
	id := a.channels[a.selected].ID
	body, err := a.fetchChannelLogs(id)
	if err != nil {
		a.logs = nil
		return
	}

	received := make(map[uint64]stats.LogEntry)
	for _, r := range body.ReceivedLogs {
		received[r.Index] = r
	}

	rows := make([]logRow, 0, len(body.SentLogs))
	for _, sent := range body.SentLogs {
		row := logRow{Sent: sent}
		if recv, ok := received[sent.Index]; ok {
			recvCopy := recv
			row.Received = &recvCopy
		}
		rows = append(rows, row)
	}

	a.logs = &CachedLogs{ChannelID: id, Rows: rows}
	if a.logsSelected >= len(rows) {
		a.logsSelected = len(rows) - 1
	}
}

func (a *App) toggleLogs() {
	if a.focus != FocusChannels {
		return
	}
	a.showLogs = !a.showLogs
	if a.showLogs {
		a.refreshLogs()
	} else {
		a.logs = nil
		a.logsSelected = 0
	}
}

func (a *App) hideLogs() {
	a.showLogs = false
	a.logs = nil
	a.logsSelected = 0
	a.focus = FocusChannels
}

func (a *App) togglePause() {
	a.paused = !a.paused
}

func (a *App) focusChannels() {
	a.focus = FocusChannels
	a.logsSelected = 0
}

func (a *App) focusLogs() {
	if !a.showLogs || a.logs == nil || len(a.logs.Rows) == 0 {
		return
	}
	a.focus = FocusLogs
	if a.logsSelected < 0 {
		a.logsSelected = 0
	}
}

func (a *App) selectPreviousLog() {
	if a.logsSelected > 0 {
		a.logsSelected--
	}
	a.syncInspected()
}

func (a *App) selectNextLog() {
	if a.logs != nil && a.logsSelected < len(a.logs.Rows)-1 {
		a.logsSelected++
	}
	a.syncInspected()
}

func (a *App) toggleInspect() {
	switch a.focus {
	case FocusLogs:
		if a.logs == nil || a.logsSelected >= len(a.logs.Rows) {
			return
		}
		entry := a.logs.Rows[a.logsSelected].Sent
		a.inspectedLog = &entry
		a.focus = FocusInspect
	case FocusInspect:
		a.inspectedLog = nil
		a.focus = FocusLogs
	}
}

func (a *App) closeInspectAndRefocusChannels() {
	a.inspectedLog = nil
	a.hideLogs()
}

// closeInspectToChannels dismisses the inspect overlay and hands focus back
// to the channels panel, leaving the logs pane open.
func (a *App) closeInspectToChannels() {
	a.inspectedLog = nil
	a.focusChannels()
}

func (a *App) closeInspectOnly() {
	a.inspectedLog = nil
	a.focus = FocusLogs
}

func (a *App) syncInspected() {
	if a.focus != FocusInspect || a.logs == nil || a.logsSelected >= len(a.logs.Rows) {
		return
	}
	entry := a.logs.Rows[a.logsSelected].Sent
	a.inspectedLog = &entry
}

func (a *App) moveChannelSelection(delta int) {
	if len(a.channels) == 0 {
		return
	}
	a.selected += delta
	if a.selected < 0 {
		a.selected = 0
	}
	if a.selected >= len(a.channels) {
		a.selected = len(a.channels) - 1
	}
	if a.showLogs {
		if a.paused {
			a.logs = nil
		} else {
			a.refreshLogs()
		}
	}
}
