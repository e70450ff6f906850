package wrap

import (
	"github.com/pawurb/channels-console-go/collector"
	"github.com/pawurb/channels-console-go/stats"
)

// Stream wraps a pull-style iterator, the idiomatic Go analogue of
// futures::Stream: calling next() steps the sequence directly, no
// cooperative poll machinery required. The wrapped function has the same
// shape as its input, so it drops in wherever the original was used.
func Stream[T any](next func() (T, bool), source string, opts ...Option) func() (T, bool) {
	return wrapStream[T](next, source, false, opts...)
}

// StreamLog is Stream with debug rendering of every yielded item.
func StreamLog[T any](next func() (T, bool), source string, opts ...Option) func() (T, bool) {
	return wrapStream[T](next, source, true, opts...)
}

func wrapStream[T any](next func() (T, bool), source string, logging bool, opts ...Option) func() (T, bool) {
	cfg := applyOptions(opts)

	id := collector.Global().NextID()
	collector.Global().Emit(collector.Created{
		ID:       id,
		Source:   source,
		Label:    cfg.label,
		Kind:     stats.KindStream,
		TypeName: typeName[T](),
		TypeSize: typeSize[T](),
	})

	emitCompleted := onceEmitter(func() { collector.Global().Emit(collector.Completed{ID: id}) })

	return func() (T, bool) {
		v, ok := next()
		if !ok {
			emitCompleted()
			var zero T
			return zero, false
		}
		collector.Global().Emit(collector.Yielded{ID: id, Timestamp: elapsed(), Log: debugLog(v, logging)})
		return v, true
	}
}
