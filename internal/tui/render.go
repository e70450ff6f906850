package tui

import (
	"fmt"
	"time"

	"github.com/mattn/go-runewidth"
	"github.com/nsf/termbox-go"

	"github.com/pawurb/channels-console-go/collector"
	"github.com/pawurb/channels-console-go/stats"
)

func (a *App) render() {
	termbox.Clear(termbox.ColorDefault, termbox.ColorDefault)
	w, h := termbox.Size()

	a.renderStatusBar(w)

	logsHeight := 0
	if a.showLogs {
		logsHeight = h / 3
	}
	channelsHeight := h - 1 - logsHeight

	a.renderChannelsPanel(0, 1, w, channelsHeight)
	if a.showLogs {
		a.renderLogsPanel(0, 1+channelsHeight, w, logsHeight)
	}
	if a.focus == FocusInspect && a.inspectedLog != nil {
		a.renderInspectOverlay(w, h)
	}

	termbox.Flush()
}

func (a *App) renderStatusBar(w int) {
	var indicator string
	switch {
	case a.paused:
		indicator = "⏸ PAUSED"
	case a.err != nil:
		indicator = fmt.Sprintf("⚠ %ds", int(time.Since(a.lastSuccess).Seconds()))
	case a.everSucceeded:
		indicator = fmt.Sprintf("🔄 %ds", int(time.Since(a.lastSuccess).Seconds()))
	default:
		indicator = fmt.Sprintf("connecting to 127.0.0.1:%s", a.metricsPort)
	}
	drawText(0, 0, w, indicator, termbox.ColorCyan)
}

func (a *App) renderChannelsPanel(x, y, w, h int) {
	focused := a.focus == FocusChannels
	drawBorder(x, y, w, h, focused)

	if len(a.channels) == 0 {
		msg := "no endpoints reported yet"
		if !a.everSucceeded {
			msg = fmt.Sprintf("waiting for server on port %s", a.metricsPort)
		}
		drawText(x+2, y+2, w-4, msg, termbox.ColorDefault)
		return
	}

	header := fmt.Sprintf("%-24s %-12s %-8s %8s %8s %12s %8s", "Channel", "Type", "State", "Sent", "Recv", "Queue", "Mem")
	drawText(x+1, y+1, w-2, header, termbox.ColorWhite|termbox.AttrBold)

	row := y + 2
	for i, c := range a.channels {
		if row >= y+h-1 {
			break
		}
		fg := termbox.ColorDefault
		if i == a.selected && focused {
			fg = termbox.ColorBlack
		}
		bg := termbox.ColorDefault
		if i == a.selected {
			bg = termbox.ColorWhite
		}
		line := fmt.Sprintf("%-24s %-12s %-8s %8d %8d %12s %8s",
			runewidth.Truncate(c.Label, 24, "…"),
			c.ChannelType, c.State, c.SentCount, c.ReceivedCount,
			queueCell(c), stats.FormatBytes(c.QueuedBytes))
		drawTextBg(x+1, row, w-2, line, fg, bg)
		row++
	}
}

func queueCell(c collector.ChannelStat) string {
	typ, err := stats.ParseChannelType(c.ChannelType)
	if err != nil || typ.Variant != stats.VariantBounded || typ.Capacity == 0 {
		return "N/A"
	}
	return fmt.Sprintf("[%d/%d]", c.Queued, typ.Capacity)
}

func (a *App) renderLogsPanel(x, y, w, h int) {
	focused := a.focus == FocusLogs
	drawBorder(x, y, w, h, focused)

	if a.logs == nil || len(a.logs.Rows) == 0 {
		drawText(x+2, y+2, w-4, "no logs for this channel", termbox.ColorDefault)
		return
	}

	header := fmt.Sprintf("%-8s %-12s %-40s %10s", "Index", "Timestamp", "Message", "Delay")
	drawText(x+1, y+1, w-2, header, termbox.ColorWhite|termbox.AttrBold)

	row := y + 2
	for i, r := range a.logs.Rows {
		if row >= y+h-1 {
			break
		}
		msg := "-"
		if r.Sent.Message != nil {
			msg = *r.Sent.Message
		}
		var recvTs *uint64
		if r.Received != nil {
			recvTs = &r.Received.Timestamp
		}
		fg := termbox.ColorDefault
		bg := termbox.ColorDefault
		if i == a.logsSelected && focused {
			bg = termbox.ColorWhite
			fg = termbox.ColorBlack
		}
		line := fmt.Sprintf("%-8d %-12s %-40s %10s",
			r.Sent.Index, formatTimestamp(r.Sent.Timestamp),
			runewidth.Truncate(msg, 40, "…"), formatDelay(r.Sent.Timestamp, recvTs))
		drawTextBg(x+1, row, w-2, line, fg, bg)
		row++
	}
}

func (a *App) renderInspectOverlay(w, h int) {
	boxW := w * 8 / 10
	boxH := h * 8 / 10
	x := (w - boxW) / 2
	y := (h - boxH) / 2
	drawBorder(x, y, boxW, boxH, true)

	msg := "(no message)"
	if a.inspectedLog.Message != nil {
		msg = *a.inspectedLog.Message
	}
	drawWrapped(x+2, y+2, boxW-4, boxH-4, msg)
}

func drawText(x, y, maxW int, s string, fg termbox.Attribute) {
	drawTextBg(x, y, maxW, s, fg, termbox.ColorDefault)
}

func drawTextBg(x, y, maxW int, s string, fg, bg termbox.Attribute) {
	s = runewidth.Truncate(s, maxW, "")
	col := x
	for _, r := range s {
		termbox.SetCell(col, y, r, fg, bg)
		col += runewidth.RuneWidth(r)
	}
}

func drawBorder(x, y, w, h int, thick bool) {
	fg := termbox.ColorDefault
	if thick {
		fg = termbox.ColorCyan | termbox.AttrBold
	}
	for i := x; i < x+w; i++ {
		termbox.SetCell(i, y, '─', fg, termbox.ColorDefault)
		termbox.SetCell(i, y+h-1, '─', fg, termbox.ColorDefault)
	}
	for j := y; j < y+h; j++ {
		termbox.SetCell(x, j, '│', fg, termbox.ColorDefault)
		termbox.SetCell(x+w-1, j, '│', fg, termbox.ColorDefault)
	}
	termbox.SetCell(x, y, '┌', fg, termbox.ColorDefault)
	termbox.SetCell(x+w-1, y, '┐', fg, termbox.ColorDefault)
	termbox.SetCell(x, y+h-1, '└', fg, termbox.ColorDefault)
	termbox.SetCell(x+w-1, y+h-1, '┘', fg, termbox.ColorDefault)
}

func drawWrapped(x, y, w, h int, s string) {
	row := 0
	line := ""
	flush := func() {
		drawText(x, y+row, w, line, termbox.ColorDefault)
		row++
		line = ""
	}
	for _, word := range splitWords(s) {
		candidate := word
		if line != "" {
			candidate = line + " " + word
		}
		if runewidth.StringWidth(candidate) > w {
			flush()
			line = word
		} else {
			line = candidate
		}
		if row >= h {
			return
		}
	}
	if line != "" && row < h {
		flush()
	}
}

func splitWords(s string) []string {
	var words []string
	word := ""
	for _, r := range s {
		if r == ' ' || r == '\n' || r == '\t' {
			if word != "" {
				words = append(words, word)
				word = ""
			}
			continue
		}
		word += string(r)
	}
	if word != "" {
		words = append(words, word)
	}
	return words
}
