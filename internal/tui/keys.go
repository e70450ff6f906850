package tui

import "github.com/nsf/termbox-go"

// handleKeyEvent implements the key-binding table: all keys are
// case-insensitive, and effect depends on the current Focus.
func (a *App) handleKeyEvent(ev termbox.Event) {
	key := normalizeKey(ev)

	switch key {
	case "q":
		a.exit = true
		return
	case "p":
		a.togglePause()
		return
	}

	switch a.focus {
	case FocusChannels:
		switch key {
		case "o":
			a.toggleLogs()
		case "up", "k":
			a.moveChannelSelection(-1)
		case "down", "j":
			a.moveChannelSelection(1)
		case "right", "l":
			if a.showLogs && a.logs != nil && len(a.logs.Rows) > 0 {
				a.focusLogs()
				if a.logsSelected < 0 {
					a.logsSelected = 0
				}
			}
		case "left", "h":
			a.focusChannels()
		}
	case FocusLogs:
		switch key {
		case "o":
			a.hideLogs()
		case "i":
			a.toggleInspect()
		case "up", "k":
			a.selectPreviousLog()
		case "down", "j":
			a.selectNextLog()
		case "left", "h":
			a.focusChannels()
		}
	case FocusInspect:
		switch key {
		case "o":
			a.closeInspectAndRefocusChannels()
		case "i":
			a.closeInspectOnly()
		case "left", "h":
			a.closeInspectToChannels()
		case "up", "k":
			a.selectPreviousLog()
		case "down", "j":
			a.selectNextLog()
		}
	}
}

func normalizeKey(ev termbox.Event) string {
	switch ev.Key {
	case termbox.KeyArrowUp:
		return "up"
	case termbox.KeyArrowDown:
		return "down"
	case termbox.KeyArrowLeft:
		return "left"
	case termbox.KeyArrowRight:
		return "right"
	case termbox.KeyEsc:
		return "esc"
	case termbox.KeyEnter:
		return "enter"
	}
	if ev.Ch == 0 {
		return ""
	}
	ch := ev.Ch
	if ch >= 'A' && ch <= 'Z' {
		ch = ch - 'A' + 'a'
	}
	return string(ch)
}
