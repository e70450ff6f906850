package tui

import "fmt"

// formatTimestamp renders a nanosecond offset as MM:SS.mmm.
func formatTimestamp(ns uint64) string {
	ms := ns / 1_000_000
	totalSeconds := ms / 1000
	minutes := totalSeconds / 60
	seconds := totalSeconds % 60
	millis := ms % 1000
	return fmt.Sprintf("%02d:%02d.%03d", minutes, seconds, millis)
}

// formatDelay computes recv.ts - sent.ts, auto-scaled to ns/µs/ms/s, "queued"
// if recv is absent, and a leading warning mark if recv predates sent.
func formatDelay(sentTs uint64, recvTs *uint64) string {
	if recvTs == nil {
		return "queued"
	}
	if *recvTs < sentTs {
		return "⚠ " + formatDuration(sentTs-*recvTs)
	}
	return formatDuration(*recvTs - sentTs)
}

func formatDuration(ns uint64) string {
	switch {
	case ns < 1_000:
		return fmt.Sprintf("%dns", ns)
	case ns < 1_000_000:
		return fmt.Sprintf("%.1fµs", float64(ns)/1_000)
	case ns < 1_000_000_000:
		return fmt.Sprintf("%.1fms", float64(ns)/1_000_000)
	default:
		return fmt.Sprintf("%.2fs", float64(ns)/1_000_000_000)
	}
}
