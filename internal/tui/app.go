package tui

import (
	"time"

	"github.com/nsf/termbox-go"
)

// Run initializes termbox, drives the render/input loop, and restores the
// terminal on exit. One goroutine polls termbox.PollEvent (itself blocking)
// and forwards events over a channel, while the main goroutine owns a
// refresh ticker and redraws every frame.
func (a *App) Run() error {
	if err := termbox.Init(); err != nil {
		return err
	}
	defer termbox.Close()

	events := make(chan termbox.Event)
	go pollInput(events)

	a.refreshData()
	ticker := time.NewTicker(refreshInterval)
	defer ticker.Stop()

	for !a.exit {
		renderStart := time.Now()
		a.render()
		a.lastRenderTime = time.Since(renderStart)

		select {
		case ev := <-events:
			if ev.Type == termbox.EventKey {
				a.handleKeyEvent(ev)
			}
		case <-ticker.C:
			if !a.paused {
				a.refreshData()
			}
		}
	}
	return nil
}

func pollInput(out chan<- termbox.Event) {
	for {
		ev := termbox.PollEvent()
		out <- ev
	}
}
