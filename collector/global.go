package collector

import "sync"

var (
	globalOnce sync.Once
	global     *Collector
)

// Global returns the process-wide Collector, constructing it lazily on
// first use. wrap.* and guard.New both call this rather than owning a
// Collector themselves, so wrapping a channel before a guard is ever
// constructed still works.
func Global() *Collector {
	globalOnce.Do(func() {
		global = New()
	})
	return global
}
